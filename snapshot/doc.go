// Package snapshot encodes a whole index into a self-describing binary stream.
//
// Snapshots are written to and read from caller-supplied io.Writer and
// io.Reader values; the package never touches the filesystem.
//
// # Format
//
// All integers are little-endian.
//
//	┌────────────┬─────────┬─────────────┬─────────┬────────────┬──────────┬─────────┐
//	│ magic (4B) │ ver (1) │ compr. (1)  │ raw (8) │ stored (8) │ xxh3 (8) │ payload │
//	│ "BDEX"     │ 1       │ 0/1/2       │ u64     │ u64        │ u64      │ stored B│
//	└────────────┴─────────┴─────────────┴─────────┴────────────┴──────────┴─────────┘
//
// The checksum covers the uncompressed body. The body is:
//
//	uvarint keyCount
//	repeat keyCount times, keys ascending:
//	    uvarint keyLen | key bytes | uvarint wordCount | wordCount × u32
//
// # Compression
//
//	CompressionNone  raw body
//	CompressionLZ4   LZ4 block (fast, good for dense bitsets)
//	CompressionZSTD  ZSTD frame (better ratio for sparse bitsets)
//
// If the selected compressor does not shrink the body it is stored raw and the
// header records CompressionNone.
package snapshot
