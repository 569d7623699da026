package blocks

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Probabilities for one AI decision.
const (
	aiRotateChance = 0.1
	aiPressChance  = 0.5
)

// RandomAI is the screensaver player: at every decision it rotates with a
// small probability, presses or releases each direction at random, and always
// holds soft drop.
type RandomAI struct {
	rng   *rand.Rand
	think time.Duration
	acc   time.Duration

	left, right bool
}

// NewRandomAI creates an AI that decides every think interval (every call
// when think is zero).
func NewRandomAI(rng *rand.Rand, think time.Duration) *RandomAI {
	return &RandomAI{rng: rng, think: think}
}

// Next returns the input for a tick of length dt.
func (a *RandomAI) Next(dt time.Duration) core.InputFrame {
	in := core.NewInputFrame(core.ActionSoftDropHeld)

	a.acc += dt
	if a.acc < a.think {
		return in
	}
	a.acc = 0

	if a.rng.Float64() < aiRotateChance {
		in.Set(core.ActionRotate)
	}
	a.left = a.hold(&in, a.left, core.ActionPressLeft, core.ActionReleaseLeft)
	a.right = a.hold(&in, a.right, core.ActionPressRight, core.ActionReleaseRight)
	return in
}

// hold rolls the direction and emits an action only when its state changes,
// so a held direction keeps auto-repeating.
func (a *RandomAI) hold(in *core.InputFrame, held bool, press, release core.Action) bool {
	want := a.rng.Float64() < aiPressChance
	switch {
	case want && !held:
		in.Set(press)
	case !want && held:
		in.Set(release)
	}
	return want
}

// Reset releases both directions.
func (a *RandomAI) Reset() {
	a.left, a.right = false, false
	a.acc = 0
}
