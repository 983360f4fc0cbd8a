package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/bitdex/internal/hash"
)

// Serialization constants and errors.
const (
	// Magic identifies a snapshot stream.
	Magic = "BDEX"

	// Version is the current serialization format version.
	Version byte = 1

	// HeaderSize is the size of the header in bytes.
	// Magic (4) + Version (1) + Compression (1) + RawLen (8) + StoredLen (8) + Checksum (8)
	HeaderSize = 30

	// maxBodySize bounds allocations driven by header fields.
	maxBodySize = uint64(1) << 36

	// maxWordsPerKey is the word count needed to hold id math.MaxUint32.
	maxWordsPerKey = uint64(1) << 27

	// maxLZ4Ratio is the largest expansion an LZ4 block can encode.
	maxLZ4Ratio = 255
)

var (
	// ErrInvalidData is returned when the serialized data is invalid or corrupted.
	ErrInvalidData = errors.New("snapshot: invalid data")

	// ErrUnsupportedVersion is returned when the serialization version is not supported.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrUnsupportedCompression is returned for an unknown compression identifier.
	ErrUnsupportedCompression = errors.New("snapshot: unsupported compression")

	// ErrChecksumMismatch is returned when the body checksum does not match the header.
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")
)

// Source is anything that can enumerate keys with their packed words.
type Source interface {
	Range(fn func(key string, words []uint32) bool)
}

// Sink is anything that can receive decoded keys.
type Sink interface {
	Restore(key string, words []uint32) error
}

// Header describes a snapshot stream.
type Header struct {
	Version     byte
	Compression Compression
	RawLen      uint64
	StoredLen   uint64
	Checksum    uint64
}

func (h *Header) marshal() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], Magic)
	buf[4] = h.Version
	buf[5] = byte(h.Compression)
	binary.LittleEndian.PutUint64(buf[6:14], h.RawLen)
	binary.LittleEndian.PutUint64(buf[14:22], h.StoredLen)
	binary.LittleEndian.PutUint64(buf[22:30], h.Checksum)
	return buf
}

func parseHeader(buf []byte) (*Header, error) {
	if string(buf[0:4]) != Magic {
		return nil, fmt.Errorf("%w: invalid magic %q", ErrInvalidData, buf[0:4])
	}
	h := &Header{
		Version:     buf[4],
		Compression: Compression(buf[5]),
		RawLen:      binary.LittleEndian.Uint64(buf[6:14]),
		StoredLen:   binary.LittleEndian.Uint64(buf[14:22]),
		Checksum:    binary.LittleEndian.Uint64(buf[22:30]),
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: got version %d, expected %d", ErrUnsupportedVersion, h.Version, Version)
	}
	if h.Compression > CompressionZSTD {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, h.Compression)
	}
	if h.RawLen > maxBodySize || h.StoredLen > maxBodySize {
		return nil, fmt.Errorf("%w: body too large (raw %d, stored %d)", ErrInvalidData, h.RawLen, h.StoredLen)
	}
	switch h.Compression {
	case CompressionNone:
		if h.RawLen != h.StoredLen {
			return nil, fmt.Errorf("%w: raw length %d differs from stored length %d", ErrInvalidData, h.RawLen, h.StoredLen)
		}
	case CompressionLZ4:
		if h.RawLen > maxLZ4Ratio*h.StoredLen {
			return nil, fmt.Errorf("%w: raw length %d exceeds lz4 bound for %d stored bytes", ErrInvalidData, h.RawLen, h.StoredLen)
		}
	}
	return h, nil
}

// Write encodes src to w using compression c.
// Returns the number of bytes written.
func Write(w io.Writer, src Source, c Compression) (int64, error) {
	body := encodeBody(src)

	stored, applied, err := compress(body, c)
	if err != nil {
		return 0, err
	}

	h := &Header{
		Version:     Version,
		Compression: applied,
		RawLen:      uint64(len(body)),
		StoredLen:   uint64(len(stored)),
		Checksum:    hash.Checksum(body),
	}

	n, err := w.Write(h.marshal())
	total := int64(n)
	if err != nil {
		return total, fmt.Errorf("failed to write header: %w", err)
	}

	n, err = w.Write(stored)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("failed to write body: %w", err)
	}
	return total, nil
}

// Read decodes one snapshot from r into dst.
// Returns the header and the number of bytes consumed.
//
// On error dst may have received a prefix of the keys; callers that need
// all-or-nothing semantics should decode into a fresh sink.
func Read(r io.Reader, dst Sink) (*Header, int64, error) {
	hdr := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, hdr)
	total := int64(n)
	if err != nil {
		return nil, total, fmt.Errorf("%w: failed to read header: %w", ErrInvalidData, err)
	}

	h, err := parseHeader(hdr)
	if err != nil {
		return nil, total, err
	}

	// Grow with the bytes that actually arrive, not with the header's claim.
	var stored bytes.Buffer
	copied, err := io.CopyN(&stored, r, int64(h.StoredLen))
	total += copied
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return h, total, fmt.Errorf("%w: failed to read body: %w", ErrInvalidData, err)
	}

	body, err := decompress(stored.Bytes(), h.Compression, h.RawLen)
	if err != nil {
		return h, total, err
	}

	if sum := hash.Checksum(body); sum != h.Checksum {
		return h, total, fmt.Errorf("%w: got %016x, expected %016x", ErrChecksumMismatch, sum, h.Checksum)
	}

	if err := decodeBody(body, dst); err != nil {
		return h, total, err
	}
	return h, total, nil
}

func encodeBody(src Source) []byte {
	type entry struct {
		key   string
		words []uint32
	}

	var entries []entry
	src.Range(func(key string, words []uint32) bool {
		entries = append(entries, entry{key: key, words: words})
		return true
	})

	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	putUvarint := func(v uint64) {
		n := binary.PutUvarint(tmp[:], v)
		buf.Write(tmp[:n])
	}

	putUvarint(uint64(len(entries)))
	for _, e := range entries {
		putUvarint(uint64(len(e.key)))
		buf.WriteString(e.key)
		putUvarint(uint64(len(e.words)))
		for _, w := range e.words {
			binary.LittleEndian.PutUint32(tmp[:4], w)
			buf.Write(tmp[:4])
		}
	}
	return buf.Bytes()
}

func decodeBody(body []byte, dst Sink) error {
	r := bytes.NewReader(body)

	keyCount, err := binary.ReadUvarint(r)
	if err != nil {
		return fmt.Errorf("%w: key count: %w", ErrInvalidData, err)
	}
	if keyCount > uint64(len(body)) {
		return fmt.Errorf("%w: key count %d exceeds body size", ErrInvalidData, keyCount)
	}

	for i := uint64(0); i < keyCount; i++ {
		keyLen, err := binary.ReadUvarint(r)
		if err != nil {
			return fmt.Errorf("%w: key %d length: %w", ErrInvalidData, i, err)
		}
		if keyLen > uint64(r.Len()) {
			return fmt.Errorf("%w: key %d length %d exceeds remaining %d bytes", ErrInvalidData, i, keyLen, r.Len())
		}
		key := make([]byte, keyLen)
		if _, err := io.ReadFull(r, key); err != nil {
			return fmt.Errorf("%w: key %d: %w", ErrInvalidData, i, err)
		}

		wordCount, err := binary.ReadUvarint(r)
		if err != nil {
			return fmt.Errorf("%w: key %q word count: %w", ErrInvalidData, key, err)
		}
		if wordCount > maxWordsPerKey || wordCount*4 > uint64(r.Len()) {
			return fmt.Errorf("%w: key %q word count %d exceeds remaining %d bytes", ErrInvalidData, key, wordCount, r.Len())
		}

		words := make([]uint32, wordCount)
		var tmp [4]byte
		for j := range words {
			if _, err := io.ReadFull(r, tmp[:]); err != nil {
				return fmt.Errorf("%w: key %q word %d: %w", ErrInvalidData, key, j, err)
			}
			words[j] = binary.LittleEndian.Uint32(tmp[:])
		}

		if err := dst.Restore(string(key), words); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
	}

	if r.Len() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidData, r.Len())
	}
	return nil
}
