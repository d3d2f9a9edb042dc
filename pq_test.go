package astar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontierOrdersByFThenHThenDiscovery(t *testing.T) {
	f := newFrontier()
	f.Push(pos(0, 0), 30, 20) // f50 h20
	f.Push(pos(1, 0), 40, 10) // f50 h10
	f.Push(pos(2, 0), 10, 10) // f20
	f.Push(pos(3, 0), 45, 5)  // f50 h5, later
	f.Push(pos(4, 0), 45, 5)  // identical, latest

	var order []Position
	for f.Len() > 0 {
		order = append(order, f.PopBest().Pos)
	}
	assert.Equal(t, []Position{pos(2, 0), pos(3, 0), pos(4, 0), pos(1, 0), pos(0, 0)}, order)
}

func TestFrontierUpdateInPlace(t *testing.T) {
	f := newFrontier()
	f.Push(pos(0, 0), 10, 10)
	item := f.Push(pos(1, 1), 50, 10)

	f.Update(item, 0, 10)
	require.Equal(t, 2, f.Len())

	got, ok := f.Get(pos(1, 1))
	require.True(t, ok)
	assert.Same(t, item, got)
	assert.Equal(t, pos(1, 1), f.PopBest().Pos)

	_, ok = f.Get(pos(1, 1))
	assert.False(t, ok)
	assert.Equal(t, -1, item.IndexInQueue)
}

func TestFrontierPushKeepsIndices(t *testing.T) {
	f := newFrontier()
	for i := 0; i < 6; i++ {
		f.Push(pos(i, 0), 100-i, 0)
	}
	for i, item := range f.queue {
		assert.Equal(t, i, item.IndexInQueue)
	}
}
