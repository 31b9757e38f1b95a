package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueBufferEvictsOldest(t *testing.T) {
	b := NewValueBuffer(3)
	for i := 1; i <= 7; i++ {
		b.Push(float64(i))
	}
	assert.Equal(t, []float64{5, 6, 7}, b.Snapshot())
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 3, b.Cap())
}

func TestValueBufferBelowCapacity(t *testing.T) {
	b := NewValueBuffer(5)
	b.Push(1)
	b.Push(2)
	assert.Equal(t, []float64{1, 2}, b.Snapshot())

	last, ok := b.Last()
	assert.True(t, ok)
	assert.Equal(t, 2.0, last)
}

func TestValueBufferZeroCapacityHoldsOne(t *testing.T) {
	for _, capacity := range []int{0, -4} {
		b := NewValueBuffer(capacity)
		assert.Equal(t, 1, b.Cap())
		b.Push(1)
		b.Push(2)
		assert.Equal(t, []float64{2}, b.Snapshot())
	}
}

func TestValueBufferSnapshotIsDetached(t *testing.T) {
	b := NewValueBuffer(2)
	b.Push(1)
	snap := b.Snapshot()
	snap[0] = 99
	assert.Equal(t, []float64{1}, b.Snapshot())

	_, ok := NewValueBuffer(2).Last()
	assert.False(t, ok)
}
