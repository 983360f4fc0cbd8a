package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDs(t *testing.T) {
	rng := NewRNG(4711)

	ids := rng.IDs(100, 512)

	assert.Equal(t, 100, len(ids))
	for _, id := range ids {
		assert.Less(t, id, uint32(512))
	}
}

func TestClusteredIDs(t *testing.T) {
	rng := NewRNG(4711)

	ids := rng.ClusteredIDs(200, 3, 64)

	assert.Equal(t, 200, len(ids))
	for _, id := range ids {
		assert.Less(t, id, uint32(3*4096))
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.IDs(10, 1000)
	rng.Reset()
	v2 := rng.IDs(10, 1000)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestSortedUnique(t *testing.T) {
	assert.Equal(t, []uint32{1, 3, 5}, SortedUnique([]uint32{5, 1, 3, 1, 5}))
	assert.Equal(t, []uint32{}, SortedUnique(nil))
}

func TestIntersectUnion(t *testing.T) {
	a := []uint32{9, 1, 3, 7}
	b := []uint32{7, 256, 1}

	assert.Equal(t, []uint32{1, 7}, Intersect(a, b))
	assert.Equal(t, []uint32{1, 3, 7, 9, 256}, Union(a, b))
}
