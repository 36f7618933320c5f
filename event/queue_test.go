package event

import (
	"testing"

	"github.com/katalvlaran/marblesim/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueOrdersByDateThenSeq(t *testing.T) {
	q := NewQueue()
	q.Push(NewTick(quantity.At(5), 2))
	q.Push(NewTick(quantity.At(1), 0))
	q.Push(NewTick(quantity.At(5), 1))
	q.Push(NewTick(quantity.At(3), 3))

	var order []quantity.Instant
	var seqs []uint64
	for q.Len() > 0 {
		e, ok := q.Pop()
		require.True(t, ok)
		order = append(order, e.At)
		seqs = append(seqs, e.Seq)
	}

	assert.Equal(t, []quantity.Instant{1, 3, 5, 5}, order)
	// The two events at t=5 must come out in Seq order, not in the order
	// they were pushed (Seq 2 was pushed before Seq 1).
	assert.Equal(t, []uint64{0, 3, 1, 2}, seqs)
}

func TestQueuePeekDoesNotRemove(t *testing.T) {
	q := NewQueue()
	q.Push(NewTick(quantity.At(1), 0))

	first, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, quantity.At(1), first.At)
	assert.Equal(t, 1, q.Len())

	second, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, first, second)
	assert.Equal(t, 0, q.Len())
}

func TestQueueEmptyPeekAndPop(t *testing.T) {
	q := NewQueue()
	_, ok := q.Peek()
	assert.False(t, ok)
	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestEventHasM1AndM2(t *testing.T) {
	wall := NewWallHit(0, 0, 3, 7, true, false)
	assert.True(t, wall.HasM1())
	assert.False(t, wall.HasM2())

	pair := NewPairHit(0, 0, 1, 0, 2, 0)
	assert.True(t, pair.HasM1())
	assert.True(t, pair.HasM2())

	tick := NewTick(0, 0)
	assert.False(t, tick.HasM1())
	assert.False(t, tick.HasM2())
}
