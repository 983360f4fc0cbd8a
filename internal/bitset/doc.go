// Package bitset provides the growable word-packed bitset backing every key of
// the index.
//
// # Memory Layout
//
//	┌──────────────┬───────────────┬───────────────┬─────┐
//	│ Word 0 (u32) │ Word 1 (u32)  │ Word 2 (u32)  │ ... │
//	│ ids [0,31]   │ ids [32,63]   │ ids [64,95]   │     │
//	└──────────────┴───────────────┴───────────────┴─────┘
//
// Bit j of word i (0 = least significant) represents id i*32+j. A bitset grows
// by appending zero words up to the word holding the largest inserted id and
// never shrinks.
//
// # Set Operations
//
// And and Or combine two bitsets word by word and expand the result directly
// into an ascending id slice:
//
//	a := bitset.New()
//	a.Insert(7)
//	b := bitset.New()
//	b.Insert(7)
//	b.Insert(1024)
//
//	bitset.And(a, b) // [7]
//	bitset.Or(a, b)  // [7 1024]
//
// A Bitset is not safe for concurrent use.
package bitset
