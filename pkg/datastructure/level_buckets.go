package datastructure

import "github.com/lintang-b-s/prmincut/pkg/util"

const (
	NUM_LEVELS   = 5
	PARKED_LEVEL = NUM_LEVELS // tested at every level, in no bucket
)

/*
LevelBuckets. NUM_LEVELS fifo worklists over the indices 0..n-1.

the lists are intrusive: next/prev are stored per element, so removing an element from the middle of a
bucket is O(1). an element keeps its level while it is out of every bucket (e.g. while it is being tested).
*/
type LevelBuckets struct {
	next     []Index
	prev     []Index
	level    []uint8
	inBucket []bool

	head [NUM_LEVELS]Index
	tail [NUM_LEVELS]Index
	size [NUM_LEVELS]int
}

func NewLevelBuckets(n int) *LevelBuckets {
	lb := &LevelBuckets{
		next:     make([]Index, n),
		prev:     make([]Index, n),
		level:    make([]uint8, n),
		inBucket: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		lb.next[i] = INVALID_INDEX
		lb.prev[i] = INVALID_INDEX
	}
	for l := 0; l < NUM_LEVELS; l++ {
		lb.head[l] = INVALID_INDEX
		lb.tail[l] = INVALID_INDEX
	}
	return lb
}

func (lb *LevelBuckets) Level(x Index) int {
	return int(lb.level[x])
}

func (lb *LevelBuckets) isQueued(x Index) bool {
	return lb.inBucket[x]
}

func (lb *LevelBuckets) Len(level int) int {
	return lb.size[level]
}

// PushBack removes x from its current bucket and appends it to the bucket of level.
func (lb *LevelBuckets) PushBack(x Index, level int) {
	util.AssertPanic(level >= 0, "level buckets: negative level")
	lb.Remove(x)
	lb.level[x] = uint8(level)
	if level >= NUM_LEVELS {
		return
	}

	t := lb.tail[level]
	lb.prev[x] = t
	lb.next[x] = INVALID_INDEX
	if t == INVALID_INDEX {
		lb.head[level] = x
	} else {
		lb.next[t] = x
	}
	lb.tail[level] = x
	lb.size[level]++
	lb.inBucket[x] = true
}

// PopFront removes and returns the oldest element of the bucket of level.
func (lb *LevelBuckets) PopFront(level int) (Index, bool) {
	x := lb.head[level]
	if x == INVALID_INDEX {
		return INVALID_INDEX, false
	}
	lb.Remove(x)
	return x, true
}

// Remove unlinks x from its bucket, if any. the level of x is kept.
func (lb *LevelBuckets) Remove(x Index) {
	if !lb.inBucket[x] {
		return
	}
	level := lb.level[x]
	p, n := lb.prev[x], lb.next[x]
	if p == INVALID_INDEX {
		lb.head[level] = n
	} else {
		lb.next[p] = n
	}
	if n == INVALID_INDEX {
		lb.tail[level] = p
	} else {
		lb.prev[n] = p
	}
	lb.prev[x] = INVALID_INDEX
	lb.next[x] = INVALID_INDEX
	lb.inBucket[x] = false
	lb.size[level]--
}

// Park removes x from every bucket for the rest of the run.
func (lb *LevelBuckets) Park(x Index) {
	lb.Remove(x)
	lb.level[x] = PARKED_LEVEL
}

// items returns the elements of the bucket of level in fifo order.
func (lb *LevelBuckets) items(level int) []Index {
	items := make([]Index, 0, lb.size[level])
	for x := lb.head[level]; x != INVALID_INDEX; x = lb.next[x] {
		items = append(items, x)
	}
	return items
}
