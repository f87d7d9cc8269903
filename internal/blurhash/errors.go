package blurhash

import "github.com/pkg/errors"

var (
	// ErrMalformedInput is returned when a hash string is too short, has the
	// wrong length for its component count, or contains a character outside
	// the base83 alphabet.
	ErrMalformedInput = errors.New("malformed blurhash")

	// ErrInvalidGeometry is returned for a width or height below 1, or for
	// component counts outside [1, 9].
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidBuffer is returned when the pixel buffer is missing, too short
	// for the declared dimensions, or uses an unsupported pixel stride.
	ErrInvalidBuffer = errors.New("invalid pixel buffer")
)
