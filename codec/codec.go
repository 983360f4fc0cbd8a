// Package codec centralizes encoding of human-readable index dumps.
//
// Dumps are meant for inspection and debugging; they are not a stable
// interchange format. Use the snapshot package for a versioned binary encoding.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}
