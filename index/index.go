package index

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/bitdex/internal/bitset"
)

var (
	// ErrKeyNotFound is returned when an operation that requires an existing key
	// references a key that was never inserted.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidWords is returned by Restore for word sequences that could not
	// have been produced by inserts.
	ErrInvalidWords = errors.New("invalid word sequence")
)

// Map maps keys to bitsets.
type Map struct {
	// key -> ids
	keys map[string]*bitset.Bitset
}

// New creates an empty map.
func New() *Map {
	return &Map{keys: make(map[string]*bitset.Bitset)}
}

// KeyError reports the key that caused ErrKeyNotFound.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%v: %q", ErrKeyNotFound, e.Key)
}

func (e *KeyError) Unwrap() error { return ErrKeyNotFound }

func keyNotFound(key string) error {
	return &KeyError{Key: key}
}

// Insert adds id to the bitset of key, creating the key if needed.
func (m *Map) Insert(key string, id uint32) {
	b, ok := m.keys[key]
	if !ok {
		b = bitset.New()
		m.keys[key] = b
	}
	b.Insert(id)
}

// BatchInsert inserts every id in ids for key, in order.
// An empty ids slice does not create the key.
func (m *Map) BatchInsert(key string, ids []uint32) {
	for _, id := range ids {
		m.Insert(key, id)
	}
}

// Get reports whether id is set for key. An absent key yields false.
func (m *Map) Get(key string, id uint32) bool {
	b, ok := m.keys[key]
	if !ok {
		return false
	}
	return b.Contains(id)
}

// Has reports whether key has ever been inserted into.
func (m *Map) Has(key string) bool {
	_, ok := m.keys[key]
	return ok
}

// List returns the ids of key in ascending order, or an empty slice if key is
// absent.
func (m *Map) List(key string) []uint32 {
	b, ok := m.keys[key]
	if !ok {
		return []uint32{}
	}
	return b.ToSlice()
}

// ListRawWords returns a copy of the packed words of key, or an empty slice if
// key is absent.
func (m *Map) ListRawWords(key string) []uint32 {
	b, ok := m.keys[key]
	if !ok {
		return []uint32{}
	}
	return b.Words()
}

// GetAsBinary renders every word of key as a 32-character binary string, most
// significant bit first. Returns ErrKeyNotFound if key is absent.
func (m *Map) GetAsBinary(key string) ([]string, error) {
	b, ok := m.keys[key]
	if !ok {
		return nil, keyNotFound(key)
	}
	return b.BinaryStrings(), nil
}

// And returns the ids set for both key1 and key2. Word positions are bounded by
// key1's bitset. Returns ErrKeyNotFound if either key is absent.
func (m *Map) And(key1, key2 string) ([]uint32, error) {
	a, b, err := m.pair(key1, key2)
	if err != nil {
		return nil, err
	}
	return bitset.And(a, b), nil
}

// AndCount returns len(And(key1, key2)) without materializing the ids.
func (m *Map) AndCount(key1, key2 string) (int, error) {
	a, b, err := m.pair(key1, key2)
	if err != nil {
		return 0, err
	}
	return bitset.IntersectionCount(a, b), nil
}

// Or returns the ids set for key1 or key2. If either key is absent the result
// is empty, even when the other key is present.
func (m *Map) Or(key1, key2 string) []uint32 {
	a, b, err := m.pair(key1, key2)
	if err != nil {
		return []uint32{}
	}
	return bitset.Or(a, b)
}

// OrCount returns len(Or(key1, key2)) without materializing the ids.
func (m *Map) OrCount(key1, key2 string) int {
	a, b, err := m.pair(key1, key2)
	if err != nil {
		return 0
	}
	return bitset.UnionCount(a, b)
}

func (m *Map) pair(key1, key2 string) (*bitset.Bitset, *bitset.Bitset, error) {
	a, ok := m.keys[key1]
	if !ok {
		return nil, nil, keyNotFound(key1)
	}
	b, ok := m.keys[key2]
	if !ok {
		return nil, nil, keyNotFound(key2)
	}
	return a, b, nil
}

// Cardinality returns the number of ids set for key, or 0 if key is absent.
func (m *Map) Cardinality(key string) int {
	b, ok := m.keys[key]
	if !ok {
		return 0
	}
	return b.Cardinality()
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns all keys in ascending order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.keys))
	for k := range m.keys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Range calls fn for every key in ascending order with a copy of its words.
// Returns early if fn returns false.
func (m *Map) Range(fn func(key string, words []uint32) bool) {
	for _, k := range m.Keys() {
		if !fn(k, m.keys[k].Words()) {
			return
		}
	}
}

// Restore replaces the bitset of key with a copy of words.
//
// words must be non-empty and end in a non-zero word, matching what a sequence
// of inserts produces. Otherwise ErrInvalidWords is returned and the map is left
// unchanged.
func (m *Map) Restore(key string, words []uint32) error {
	if len(words) == 0 {
		return fmt.Errorf("%w: key %q has no words", ErrInvalidWords, key)
	}
	if words[len(words)-1] == 0 {
		return fmt.Errorf("%w: key %q ends in a zero word", ErrInvalidWords, key)
	}
	m.keys[key] = bitset.FromWords(words)
	return nil
}
