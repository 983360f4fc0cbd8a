package bitdex

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bitdex/index"
	"github.com/hupe1980/bitdex/snapshot"
)

var (
	// ErrKeyNotFound is returned by GetAsBinary, And and AndCount when a
	// referenced key was never inserted into.
	ErrKeyNotFound = index.ErrKeyNotFound

	// ErrCorruptSnapshot is returned by ReadFrom when the stream is not a valid
	// snapshot.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// ErrKeyMissing indicates the operation and key that produced ErrKeyNotFound.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrKeyMissing struct {
	Op    string
	Key   string
	cause error
}

func (e *ErrKeyMissing) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.cause)
}

func (e *ErrKeyMissing) Unwrap() error { return e.cause }

func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	var ke *index.KeyError
	if errors.As(err, &ke) {
		return &ErrKeyMissing{Op: op, Key: ke.Key, cause: err}
	}

	if errors.Is(err, snapshot.ErrInvalidData) ||
		errors.Is(err, snapshot.ErrChecksumMismatch) ||
		errors.Is(err, snapshot.ErrUnsupportedVersion) ||
		errors.Is(err, snapshot.ErrUnsupportedCompression) {
		return fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	return err
}
