// Package index implements the key to bitset inverted index.
//
// A Map associates each string key (a flag or attribute name) with exactly one
// growable bitset of uint32 ids. Keys are created implicitly on first insert and
// are never removed.
//
// # Absent Keys
//
// Lookups treat a never-inserted key in one of two ways:
//
//	Get, List, ListRawWords, Or  -> false / empty result
//	GetAsBinary, And             -> ErrKeyNotFound
//
// Use Has to tell an absent key apart from a key whose ids are all unset.
//
// # Usage
//
//	m := index.New()
//	m.BatchInsert("pending", []uint32{1, 3, 5, 7, 9})
//	m.BatchInsert("admin", []uint32{7, 256, 512, 1024})
//
//	m.Get("admin", 512)          // true
//	ids, _ := m.And("pending", "admin") // [7]
//	m.Or("admin", "pending")     // [1 3 5 7 9 256 512 1024]
//
// A Map is not safe for concurrent use.
package index
