package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame(ActionRotate)
	if !f.Has(ActionRotate) {
		t.Error("Has(Rotate) = false, expected true")
	}
	if f.Has(ActionHardDrop) {
		t.Error("Has(HardDrop) = true, expected false")
	}

	f.Merge(NewInputFrame(ActionHardDrop, ActionMoveLeft))
	if !f.Has(ActionHardDrop) || !f.Has(ActionMoveLeft) {
		t.Error("Merge should add the other frame's actions")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionRotate) {
		t.Error("Clear should drop all actions")
	}
	if !clone.Has(ActionRotate) {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionQuit) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionQuit)
	zero.Set(ActionQuit)
	zero.Set(ActionNone)
	if !zero.Has(ActionQuit) || zero.Len() != 1 {
		t.Errorf("zero frame after Set: Len() = %d, expected 1", zero.Len())
	}
	if zero.Has(Action(200)) {
		t.Error("unknown actions are never set")
	}
	if !NewInputFrame().Empty() {
		t.Error("NewInputFrame() should be empty")
	}
}

func TestMultiInputFrame(t *testing.T) {
	m := NewMultiInputFrame()
	m.SetPlayer(Player2, NewInputFrame(ActionSoftDrop))

	if !m.Player(Player2).Has(ActionSoftDrop) {
		t.Error("Player2 should have SoftDrop")
	}
	if m.Player(Player1).Has(ActionSoftDrop) {
		t.Error("Player1 should have no input")
	}

	m.Clear()
	if m.Player(Player2).Has(ActionSoftDrop) {
		t.Error("Clear should reset every player")
	}
}

func TestPlayerID(t *testing.T) {
	if Player1.Opponent() != Player2 || Player2.Opponent() != Player1 {
		t.Error("Opponent() should swap seats")
	}
	if Player1.String() != "P1" {
		t.Errorf("String() = %q, expected P1", Player1.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("String() = %q, expected Unknown", Action(99).String())
	}
	if ActionHardDrop.String() != "HardDrop" {
		t.Errorf("String() = %q, expected HardDrop", ActionHardDrop.String())
	}
}
