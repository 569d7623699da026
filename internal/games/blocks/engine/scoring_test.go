package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreForClear(t *testing.T) {
	tests := []struct {
		lines, level, expected int
	}{
		{0, 0, 0},
		{1, 0, 40},
		{2, 0, 100},
		{3, 0, 300},
		{4, 0, 1200},
		{5, 0, 1200},
		{4, 2, 3600},
		{1, 9, 400},
		{-1, 3, 0},
	}
	for _, tt := range tests {
		got := ScoreForClear(tt.lines, tt.level)
		assert.Equal(t, tt.expected, got, "ScoreForClear(%d, %d)", tt.lines, tt.level)
	}
}

func TestAttackForClear(t *testing.T) {
	for n, expected := range []int{0, 0, 1, 2, 4, 4} {
		assert.Equal(t, expected, AttackForClear(n), "AttackForClear(%d)", n)
	}
}

func TestGarbageQueue(t *testing.T) {
	q := NewGarbageQueue()
	q.Push(0)
	q.Push(-2)
	assert.Zero(t, q.Pending())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Push(2)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, q.Pending())
	assert.Equal(t, 100, q.Drain())
	assert.Zero(t, q.Drain())
}
