// Package hasher computes xxHash64 content fingerprints.  Sources are
// fingerprinted so a manifest can tell when an image changed, and preview
// files are content-addressed by the same digest.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Digest is a 64-bit xxHash value.
type Digest uint64

// Sum hashes data in one shot.
func Sum(data []byte) Digest {
	return Digest(xxhash.Sum64(data))
}

// SumReader hashes everything read from r.
func SumReader(r io.Reader) (Digest, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return 0, err
	}
	return Digest(h.Sum64()), nil
}

// Hex returns the big-endian hex form truncated to n characters
// (n <= 0 or n >= 16 returns all 16).
func (d Digest) Hex(n int) string {
	full := hex.EncodeToString(binary.BigEndian.AppendUint64(nil, uint64(d)))
	if n > 0 && n < len(full) {
		return full[:n]
	}
	return full
}

func (d Digest) String() string {
	return d.Hex(0)
}
