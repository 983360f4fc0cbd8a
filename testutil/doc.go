// Package testutil provides testing utilities for bitdex.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random id sets and computing their
// expected sorted, duplicate-free form.
//
// # Random Id Generation
//
//	rng := testutil.NewRNG(seed)
//	ids := rng.IDs(1000, 1<<16)      // uniform ids in [0, 65536), may repeat
//	skewed := rng.ClusteredIDs(1000, 4, 64)
//
// # Expected Results
//
//	want := testutil.SortedUnique(ids)
package testutil
