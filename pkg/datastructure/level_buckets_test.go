package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelBucketsFifo(t *testing.T) {
	lb := NewLevelBuckets(6)
	for i := 0; i < 6; i++ {
		lb.PushBack(Index(i), 0)
	}
	assert.Equal(t, 6, lb.Len(0))

	x, ok := lb.PopFront(0)
	assert.True(t, ok)
	assert.Equal(t, Index(0), x)
	assert.Equal(t, 0, lb.Level(x))
	assert.False(t, lb.isQueued(x))

	lb.PushBack(x, 1)
	assert.Equal(t, []Index{1, 2, 3, 4, 5}, lb.items(0))
	assert.Equal(t, []Index{0}, lb.items(1))
}

func TestLevelBucketsRemoveMiddle(t *testing.T) {
	lb := NewLevelBuckets(5)
	for i := 0; i < 5; i++ {
		lb.PushBack(Index(i), 2)
	}

	lb.Remove(2)
	assert.Equal(t, []Index{0, 1, 3, 4}, lb.items(2))
	lb.Remove(0)
	lb.Remove(4)
	assert.Equal(t, []Index{1, 3}, lb.items(2))
	assert.Equal(t, 2, lb.Len(2))

	// removing twice is a no-op
	lb.Remove(4)
	assert.Equal(t, 2, lb.Len(2))

	lb.PushBack(4, 2)
	assert.Equal(t, []Index{1, 3, 4}, lb.items(2))
}

func TestLevelBucketsMoveAndPark(t *testing.T) {
	lb := NewLevelBuckets(3)
	lb.PushBack(0, 3)
	lb.PushBack(1, 3)
	lb.PushBack(2, 4)

	// moving re-links into the new bucket
	lb.PushBack(1, 0)
	assert.Equal(t, []Index{0}, lb.items(3))
	assert.Equal(t, []Index{1}, lb.items(0))

	lb.Park(2)
	assert.Equal(t, PARKED_LEVEL, lb.Level(2))
	assert.Equal(t, 0, lb.Len(4))
	assert.False(t, lb.isQueued(2))

	_, ok := lb.PopFront(4)
	assert.False(t, ok)

	assert.Panics(t, func() { lb.PushBack(0, -1) })
}
