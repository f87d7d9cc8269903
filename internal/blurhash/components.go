package blurhash

import "github.com/pkg/errors"

const (
	minComponents = 1
	maxComponents = 9

	// header: components(1) + max AC(1) + DC(4)
	headerLen = 6
)

func packComponents(x, y int) int {
	return (x - 1) + (y-1)*9
}

func unpackComponents(v int) (x, y int) {
	return v%9 + 1, v/9 + 1
}

func validComponents(x, y int) bool {
	return x >= minComponents && x <= maxComponents &&
		y >= minComponents && y <= maxComponents
}

// hashLen is the exact string length for an x by y coefficient grid.
func hashLen(x, y int) int {
	return headerLen + (x*y-1)*2
}

// Components returns the coefficient grid size encoded in hash after
// checking the length law.  It does not inspect the remaining characters.
func Components(hash string) (x, y int, err error) {
	if len(hash) < headerLen {
		return 0, 0, errors.Wrapf(ErrMalformedInput, "hash too short: %d chars", len(hash))
	}
	v, err := decode83(hash[:1])
	if err != nil {
		return 0, 0, err
	}
	x, y = unpackComponents(v)
	if !validComponents(x, y) {
		return 0, 0, errors.Wrapf(ErrMalformedInput, "components %dx%d out of range", x, y)
	}
	if want := hashLen(x, y); len(hash) != want {
		return 0, 0, errors.Wrapf(ErrMalformedInput,
			"hash length %d does not match %dx%d components (want %d)", len(hash), x, y, want)
	}
	return x, y, nil
}

// Validate performs every structural check Decode would, without
// synthesising pixels.
func Validate(hash string) error {
	if _, _, err := Components(hash); err != nil {
		return err
	}
	return checkAlphabet(hash)
}
