package bitdex

import (
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/bitdex/index"
	"github.com/hupe1980/bitdex/internal/bitset"
	"github.com/hupe1980/bitdex/snapshot"
)

// Index is a bitmap-backed inverted index from string keys to sets of uint32 ids.
//
// An Index is not safe for concurrent use. It is meant to be owned by a single
// goroutine; callers that share one must synchronize externally.
type Index struct {
	m    *index.Map
	opts options
}

// New creates an empty index.
func New(optFns ...Option) *Index {
	return &Index{
		m:    index.New(),
		opts: applyOptions(optFns),
	}
}

// Insert adds id to the set of key, creating key on first use.
func (ix *Index) Insert(key string, id uint32) {
	start := time.Now()
	created := !ix.m.Has(key)
	ix.m.Insert(key, id)
	ix.opts.metricsCollector.RecordInsert(time.Since(start))
	ix.opts.logger.LogInsert(key, id, created)
}

// BatchInsert adds every id in ids to the set of key, in order.
// The final state does not depend on order or duplicates. An empty ids slice
// leaves the index unchanged.
func (ix *Index) BatchInsert(key string, ids []uint32) {
	start := time.Now()
	created := len(ids) > 0 && !ix.m.Has(key)
	ix.m.BatchInsert(key, ids)
	ix.opts.metricsCollector.RecordBatchInsert(len(ids), time.Since(start))
	ix.opts.logger.LogBatchInsert(key, len(ids), created)
}

// Get reports whether id is in the set of key. An absent key yields false.
func (ix *Index) Get(key string, id uint32) bool {
	start := time.Now()
	ok := ix.m.Get(key, id)
	ix.opts.metricsCollector.RecordLookup("get", time.Since(start), nil)
	return ok
}

// List returns the ids of key in ascending order, or an empty slice if key was
// never inserted into.
func (ix *Index) List(key string) []uint32 {
	start := time.Now()
	ids := ix.m.List(key)
	ix.opts.metricsCollector.RecordLookup("list", time.Since(start), nil)
	return ids
}

// ListRawWords returns a copy of the packed 32-bit words of key, or an empty
// slice if key was never inserted into. Word i holds ids [i*32, i*32+31].
func (ix *Index) ListRawWords(key string) []uint32 {
	start := time.Now()
	words := ix.m.ListRawWords(key)
	ix.opts.metricsCollector.RecordLookup("list_raw_words", time.Since(start), nil)
	return words
}

// GetAsBinary renders each word of key as a 32-character binary string with
// the most significant bit first.
//
// Unlike List, an absent key is an error: the result wraps ErrKeyNotFound.
func (ix *Index) GetAsBinary(key string) ([]string, error) {
	start := time.Now()
	strs, err := ix.m.GetAsBinary(key)
	err = translateError("get_as_binary", err)
	ix.opts.metricsCollector.RecordLookup("get_as_binary", time.Since(start), err)
	ix.opts.logger.LogLookup("get_as_binary", key, err)
	return strs, err
}

// And returns the ids present for both key1 and key2 in ascending order.
//
// Only word positions within key1's bitset are compared, so ids of key2 beyond
// key1's highest word never appear (they could not be in the intersection).
// Returns an error wrapping ErrKeyNotFound if either key is absent.
func (ix *Index) And(key1, key2 string) ([]uint32, error) {
	start := time.Now()
	ids, err := ix.m.And(key1, key2)
	err = translateError("and", err)
	ix.opts.metricsCollector.RecordSetOp("and", len(ids), time.Since(start), err)
	ix.opts.logger.LogSetOp("and", key1, key2, len(ids), err)
	return ids, err
}

// AndCount returns the size of And(key1, key2) without materializing ids.
func (ix *Index) AndCount(key1, key2 string) (int, error) {
	start := time.Now()
	n, err := ix.m.AndCount(key1, key2)
	err = translateError("and_count", err)
	ix.opts.metricsCollector.RecordSetOp("and_count", n, time.Since(start), err)
	ix.opts.logger.LogSetOp("and_count", key1, key2, n, err)
	return n, err
}

// Or returns the ids present for key1 or key2 in ascending order.
//
// If either key is absent the result is empty, even when the other key exists.
func (ix *Index) Or(key1, key2 string) []uint32 {
	start := time.Now()
	ids := ix.m.Or(key1, key2)
	ix.opts.metricsCollector.RecordSetOp("or", len(ids), time.Since(start), nil)
	ix.opts.logger.LogSetOp("or", key1, key2, len(ids), nil)
	return ids
}

// OrCount returns the size of Or(key1, key2) without materializing ids.
func (ix *Index) OrCount(key1, key2 string) int {
	start := time.Now()
	n := ix.m.OrCount(key1, key2)
	ix.opts.metricsCollector.RecordSetOp("or_count", n, time.Since(start), nil)
	ix.opts.logger.LogSetOp("or_count", key1, key2, n, nil)
	return n
}

// Has reports whether key was ever inserted into.
func (ix *Index) Has(key string) bool {
	return ix.m.Has(key)
}

// Keys returns all keys in ascending order.
func (ix *Index) Keys() []string {
	return ix.m.Keys()
}

// Len returns the number of keys.
func (ix *Index) Len() int {
	return ix.m.Len()
}

// Cardinality returns the number of ids of key.
func (ix *Index) Cardinality(key string) int {
	return ix.m.Cardinality(key)
}

// WriteTo encodes the whole index as a snapshot using the configured
// compression. It implements io.WriterTo.
func (ix *Index) WriteTo(w io.Writer) (int64, error) {
	n, err := snapshot.Write(w, ix.m, ix.opts.compression)
	if err != nil {
		err = fmt.Errorf("write snapshot: %w", err)
	}
	ix.opts.logger.LogSnapshot(ix.m.Len(), n, ix.opts.compression.String(), err)
	return n, err
}

// ReadFrom replaces the contents of the index with a snapshot read from r.
// It implements io.ReaderFrom. On error the index is left unchanged.
func (ix *Index) ReadFrom(r io.Reader) (int64, error) {
	m := index.New()
	_, n, err := snapshot.Read(r, m)
	err = translateError("read_from", err)
	keys := 0
	if err == nil {
		ix.m = m
		keys = m.Len()
	}
	ix.opts.logger.LogRestore(keys, n, err)
	return n, err
}

// DumpEntry is the rendering of one key in Dump.
type DumpEntry struct {
	IDs    []uint32 `json:"ids"`
	Binary []string `json:"binary"`
}

// Dump renders every key with its ids and binary words using the configured
// codec.
func (ix *Index) Dump() ([]byte, error) {
	out := make(map[string]DumpEntry, ix.m.Len())
	ix.m.Range(func(key string, words []uint32) bool {
		b := bitset.FromWords(words)
		out[key] = DumpEntry{IDs: b.ToSlice(), Binary: b.BinaryStrings()}
		return true
	})

	data, err := ix.opts.codec.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("dump with codec %s: %w", ix.opts.codec.Name(), err)
	}
	return data, nil
}

// Load builds a new index from a dump produced by Dump with the same codec.
// Only the ids of each entry are used.
func Load(data []byte, optFns ...Option) (*Index, error) {
	ix := New(optFns...)

	var in map[string]DumpEntry
	if err := ix.opts.codec.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("load with codec %s: %w", ix.opts.codec.Name(), err)
	}
	for key, e := range in {
		ix.m.BatchInsert(key, e.IDs)
	}
	return ix, nil
}
