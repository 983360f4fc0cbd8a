// Package hash provides fast hashing utilities for data integrity.
//
// # XXH3
//
// Snapshot checksums use the 64-bit XXH3 hash, which provides:
//
//   - SIMD-accelerated hashing on x86 (AVX2, SSE2) and ARM (NEON)
//   - Strong avalanche behavior for detecting corrupted payloads
//
// # Usage
//
//	checksum := hash.Checksum(data)
package hash
