package testutil

import (
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint32n returns a pseudo-random uint32 in [0,n).
func (r *RNG) Uint32n(n uint32) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint32(r.rand.Int63n(int64(n)))
}

// IDs returns num ids drawn uniformly from [0, universe).
// Duplicates are possible.
func (r *RNG) IDs(num int, universe uint32) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint32, num)
	for i := range out {
		out[i] = uint32(r.rand.Int63n(int64(universe)))
	}
	return out
}

// ClusteredIDs returns num ids grouped around clusters random centers spaced
// far apart, each id within spread of its center. Produces bitsets with long
// runs of empty words between dense regions.
func (r *RNG) ClusteredIDs(num, clusters int, spread uint32) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers := make([]uint32, clusters)
	for i := range centers {
		centers[i] = uint32(i)*4096 + uint32(r.rand.Intn(1024))
	}

	out := make([]uint32, num)
	for i := range out {
		c := centers[r.rand.Intn(clusters)]
		out[i] = c + uint32(r.rand.Int63n(int64(spread)))
	}
	return out
}

// SortedUnique returns a sorted copy of ids without duplicates.
// The result is never nil.
func SortedUnique(ids []uint32) []uint32 {
	out := make([]uint32, len(ids))
	copy(out, ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// Intersect returns the sorted intersection of two id lists.
func Intersect(a, b []uint32) []uint32 {
	set := make(map[uint32]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}
	out := make([]uint32, 0)
	for _, id := range SortedUnique(a) {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Union returns the sorted union of two id lists.
func Union(a, b []uint32) []uint32 {
	return SortedUnique(append(slices.Clone(a), b...))
}
