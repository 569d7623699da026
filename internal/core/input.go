package core

import "math/bits"

// PlayerID is a seat in a match. Player1 is the local player; Player2 is the
// CPU or a remote session.
type PlayerID int

const (
	Player1 PlayerID = iota + 1
	Player2
)

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	}
	return "P?"
}

// Opponent returns the other seat.
func (p PlayerID) Opponent() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Action is what a key means to a game, independent of the key itself.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionRotate
	ActionSoftDrop
	ActionSoftDropHeld // down held this tick; speeds up gravity
	ActionHardDrop
	ActionPressLeft // starts auto-repeat
	ActionReleaseLeft
	ActionPressRight
	ActionReleaseRight
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause

	actionCount
)

var actionNames = [actionCount]string{
	"None", "MoveLeft", "MoveRight", "Rotate", "SoftDrop", "SoftDropHeld",
	"HardDrop", "PressLeft", "ReleaseLeft", "PressRight", "ReleaseRight",
	"Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame is the set of actions one player triggered during a tick. The
// zero value is an empty frame and frames copy by value.
type InputFrame struct {
	set uint32
}

// NewInputFrame returns a frame holding actions.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set adds a to the frame. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.set |= 1 << a
	}
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.set&(1<<a) != 0
}

// Merge adds every action of other.
func (f *InputFrame) Merge(other InputFrame) {
	f.set |= other.set
}

// Clear empties the frame.
func (f *InputFrame) Clear() {
	f.set = 0
}

// Clone returns a copy.
func (f InputFrame) Clone() InputFrame {
	return f
}

// Len is the number of distinct actions in the frame.
func (f InputFrame) Len() int {
	return bits.OnesCount32(f.set)
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.set == 0
}

// MultiInputFrame holds one frame per seat for a single tick. Games consume
// it without knowing whether a seat is a keyboard, the CPU or a remote
// session.
type MultiInputFrame struct {
	seats [2]InputFrame
}

// NewMultiInputFrame returns a tick with no input from either seat.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{}
}

// Player returns the frame of seat id, empty for an unknown seat.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if id != Player1 && id != Player2 {
		return InputFrame{}
	}
	return m.seats[id-1]
}

// SetPlayer replaces the frame of seat id.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if id == Player1 || id == Player2 {
		m.seats[id-1] = frame
	}
}

// Clear empties both seats.
func (m *MultiInputFrame) Clear() {
	m.seats = [2]InputFrame{}
}
