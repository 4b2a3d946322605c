package pass

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is matched by DuplicateKeyError.
	ErrDuplicateKey = errors.New("pass: duplicate field key")
	// ErrInvalidFormat is matched by InvalidFormatError.
	ErrInvalidFormat = errors.New("pass: invalid format")
	// ErrMissingKey is returned when a field without a key is added.
	ErrMissingKey = errors.New("pass: field key is required")
	// ErrInvalidDecimal is returned by ParseDecimal for malformed input.
	ErrInvalidDecimal = errors.New("pass: invalid decimal")
)

// DuplicateKeyError reports a field key that already exists in one of the
// request's field sections.
type DuplicateKeyError struct {
	Key     string
	Section Section
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("pass: duplicate field key %q (already in %s fields)", e.Key, e.Section)
}

// Is lets errors.Is match against ErrDuplicateKey.
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// InvalidFormatError reports a value that cannot be encoded, such as a colour
// that is neither #rgb nor #rrggbb.
type InvalidFormatError struct {
	Value  string
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("pass: invalid format %q: %s", e.Value, e.Reason)
}

func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}
