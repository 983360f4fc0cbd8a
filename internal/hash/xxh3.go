package hash

import "github.com/zeebo/xxh3"

// Checksum computes the 64-bit XXH3 checksum of data.
func Checksum(data []byte) uint64 {
	return xxh3.Hash(data)
}
