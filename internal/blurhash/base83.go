package blurhash

import "github.com/pkg/errors"

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz#$%*+,-.:;=?@[]^_{|}~"

// ─── base83 lookup table ─────────────────────────────────────
// Built once at init; -1 marks bytes outside the alphabet.
var b83Index [256]int8

func init() {
	for i := range b83Index {
		b83Index[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		b83Index[alphabet[i]] = int8(i)
	}
}

// encode83 renders value most-significant digit first, left-padded with
// '0' to width.  Never truncates.
func encode83(value, width int) string {
	var buf [16]byte
	i := len(buf)
	for {
		i--
		buf[i] = alphabet[value%83]
		value /= 83
		if value == 0 {
			break
		}
	}
	for len(buf)-i < width && i > 0 {
		i--
		buf[i] = '0'
	}
	return string(buf[i:])
}

// decode83 parses s as a big-endian base83 number.
func decode83(s string) (int, error) {
	v := 0
	for i := 0; i < len(s); i++ {
		d := b83Index[s[i]]
		if d < 0 {
			return 0, errors.Wrapf(ErrMalformedInput, "invalid character %q at offset %d", s[i], i)
		}
		v = v*83 + int(d)
	}
	return v, nil
}

// checkAlphabet reports the first byte of s outside the alphabet.
func checkAlphabet(s string) error {
	for i := 0; i < len(s); i++ {
		if b83Index[s[i]] < 0 {
			return errors.Wrapf(ErrMalformedInput, "invalid character %q at offset %d", s[i], i)
		}
	}
	return nil
}
