package bitset

import (
	"iter"
	"math/bits"
	"strconv"
	"strings"
)

// WordBits is the number of bits per word.
const WordBits = 32

// wordShift converts an id to its word index (id >> 5 = id / 32).
const wordShift = 5

// bitMask selects the bit position inside a word (id & 31 = id % 32).
const bitMask = WordBits - 1

// Bitset is a growable set of uint32 ids packed into 32-bit words.
type Bitset struct {
	// words is the backing storage. len(words) is floor(maxID/32)+1 for the
	// largest id ever inserted.
	words []uint32
}

// New creates an empty bitset.
func New() *Bitset {
	return &Bitset{}
}

// FromWords creates a bitset holding a copy of words.
func FromWords(words []uint32) *Bitset {
	b := &Bitset{words: make([]uint32, len(words))}
	copy(b.words, words)
	return b
}

// grow appends zero words until wordIdx is addressable.
func (b *Bitset) grow(wordIdx int) {
	if wordIdx < len(b.words) {
		return
	}
	b.words = append(b.words, make([]uint32, wordIdx+1-len(b.words))...)
}

// Insert sets the bit for id, growing the word sequence if needed.
func (b *Bitset) Insert(id uint32) {
	wordIdx := int(id >> wordShift)
	b.grow(wordIdx)
	b.words[wordIdx] |= uint32(1) << (id & bitMask)
}

// Contains reports whether id is set. It never grows the bitset.
func (b *Bitset) Contains(id uint32) bool {
	wordIdx := int(id >> wordShift)
	if wordIdx >= len(b.words) {
		return false
	}
	return b.words[wordIdx]&(uint32(1)<<(id&bitMask)) != 0
}

// Len returns the number of words.
func (b *Bitset) Len() int {
	return len(b.words)
}

// Word returns word i, or zero if i is out of range.
func (b *Bitset) Word(i int) uint32 {
	if i < 0 || i >= len(b.words) {
		return 0
	}
	return b.words[i]
}

// Words returns a copy of the underlying words.
func (b *Bitset) Words() []uint32 {
	out := make([]uint32, len(b.words))
	copy(out, b.words)
	return out
}

// Cardinality returns the number of set bits.
func (b *Bitset) Cardinality() int {
	count := 0
	for _, w := range b.words {
		count += bits.OnesCount32(w)
	}
	return count
}

// ForEach calls fn for every set id in ascending order.
// Returns early if fn returns false.
func (b *Bitset) ForEach(fn func(uint32) bool) {
	for i, word := range b.words {
		base := uint32(i) << wordShift
		for word != 0 {
			if !fn(base + uint32(bits.TrailingZeros32(word))) {
				return
			}
			word &= word - 1 // Clear lowest bit
		}
	}
}

// All returns an iterator over the set ids in ascending order.
func (b *Bitset) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		b.ForEach(yield)
	}
}

// ToSlice returns all set ids in ascending order. The result is never nil.
func (b *Bitset) ToSlice() []uint32 {
	out := make([]uint32, 0, b.Cardinality())
	b.ForEach(func(id uint32) bool {
		out = append(out, id)
		return true
	})
	return out
}

// BinaryStrings renders each word as a 32-character string, most significant
// bit first.
func (b *Bitset) BinaryStrings() []string {
	out := make([]string, len(b.words))
	for i, w := range b.words {
		out[i] = FormatWord(w)
	}
	return out
}

// FormatWord renders w as a zero-padded 32-character binary string, MSB first.
func FormatWord(w uint32) string {
	s := strconv.FormatUint(uint64(w), 2)
	if len(s) == WordBits {
		return s
	}
	return strings.Repeat("0", WordBits-len(s)) + s
}
