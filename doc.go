// Package bitdex provides a compact bitmap-backed inverted index for Go.
//
// Bitdex maps string keys (flags or attribute names) to the set of uint32 ids
// holding that attribute. Each set is a growable sequence of 32-bit words, so
// membership tests, enumeration and two-key set algebra run directly over
// packed bits.
//
// # Quick Start
//
//	ix := bitdex.New()
//	ix.BatchInsert("pending", []uint32{1, 3, 5, 7, 9})
//	ix.BatchInsert("admin", []uint32{7, 256, 512, 1024})
//
//	ix.Get("admin", 512)              // true
//	ix.List("pending")                // [1 3 5 7 9]
//	both, _ := ix.And("pending", "admin") // [7]
//	either := ix.Or("admin", "pending")   // [1 3 5 7 9 256 512 1024]
//
// # Absent Keys
//
// A key exists once something was inserted for it. Operations differ in how
// they treat a key that was never inserted:
//
//	Get, List, ListRawWords -> false / empty
//	Or                      -> empty, even if the other key exists
//	GetAsBinary, And        -> error wrapping ErrKeyNotFound
//
// # Inspection
//
//	words := ix.ListRawWords("pending")  // [682]
//	bin, _ := ix.GetAsBinary("pending")  // ["00000000000000000000001010101010"]
//	dump, _ := ix.Dump()                 // JSON rendering of every key
//
// # Snapshots
//
// An index can be encoded into any io.Writer and restored from any io.Reader:
//
//	ix := bitdex.New(bitdex.WithCompression(snapshot.CompressionZSTD))
//	_, _ = ix.WriteTo(&buf)
//
//	restored := bitdex.New()
//	_, _ = restored.ReadFrom(&buf)
//
// # Concurrency
//
// An Index is designed for exclusive single-owner access and performs no
// internal locking.
package bitdex
