package engine

import (
	"errors"
	"math/rand"
)

// ErrNilRand is returned when a constructor is given no random source.
var ErrNilRand = errors.New("random source is nil")

// Bag deals piece ids in shuffled rounds: every id of the set appears once
// per round before any repeats.
type Bag struct {
	rng   *rand.Rand
	set   []PieceID
	queue []PieceID
}

// NewBag creates a bag over the given set.
func NewBag(set []PieceID, rng *rand.Rand) (*Bag, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if len(set) == 0 {
		return nil, errors.New("bag: empty piece set")
	}
	b := &Bag{rng: rng, set: make([]PieceID, len(set))}
	copy(b.set, set)
	return b, nil
}

func (b *Bag) refill() {
	round := make([]PieceID, len(b.set))
	copy(round, b.set)
	b.rng.Shuffle(len(round), func(i, j int) {
		round[i], round[j] = round[j], round[i]
	})
	b.queue = append(b.queue, round...)
}

// Next removes and returns the next id.
func (b *Bag) Next() PieceID {
	if len(b.queue) == 0 {
		b.refill()
	}
	id := b.queue[0]
	b.queue = b.queue[1:]
	return id
}

// Peek returns the next id without consuming it.
func (b *Bag) Peek() PieceID {
	if len(b.queue) == 0 {
		b.refill()
	}
	return b.queue[0]
}

// Remaining returns how many ids are left in the current round.
func (b *Bag) Remaining() int {
	return len(b.queue)
}
