package bitset

import "math/bits"

// And returns the ids present in both a and b, in ascending order.
//
// Word positions are bounded by a's length, not by min(len(a), len(b)).
// Words of b beyond its length read as zero.
func And(a, b *Bitset) []uint32 {
	out := make([]uint32, 0)
	for i, wa := range a.words {
		out = appendWord(out, i, wa&b.Word(i))
	}
	return out
}

// Or returns the ids present in a or b, in ascending order and without
// duplicates. The shorter operand is treated as zero-extended.
func Or(a, b *Bitset) []uint32 {
	n := max(len(a.words), len(b.words))
	out := make([]uint32, 0)
	for i := 0; i < n; i++ {
		out = appendWord(out, i, a.Word(i)|b.Word(i))
	}
	return out
}

// IntersectionCount returns len(And(a, b)) without materializing the ids.
func IntersectionCount(a, b *Bitset) int {
	count := 0
	for i, wa := range a.words {
		count += bits.OnesCount32(wa & b.Word(i))
	}
	return count
}

// UnionCount returns len(Or(a, b)) without materializing the ids.
func UnionCount(a, b *Bitset) int {
	n := max(len(a.words), len(b.words))
	count := 0
	for i := 0; i < n; i++ {
		count += bits.OnesCount32(a.Word(i) | b.Word(i))
	}
	return count
}

// appendWord expands the set bits of word at position wordIdx into ids.
func appendWord(dst []uint32, wordIdx int, word uint32) []uint32 {
	base := uint32(wordIdx) << wordShift
	for word != 0 {
		dst = append(dst, base+uint32(bits.TrailingZeros32(word)))
		word &= word - 1
	}
	return dst
}
