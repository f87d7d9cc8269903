// Package blurhash implements the BlurHash placeholder codec: a truncated
// 2-D cosine transform of an sRGB image, quantised into a short base83
// string, and the inverse synthesis of a blurred image from that string.
//
// Design notes:
//   - float32 throughout (basis tables, accumulators, quantiser)
//   - basis tables are per call; no shared mutable state, safe for
//     concurrent use on disjoint buffers
//   - all preconditions are checked before any work; failures wrap one of
//     ErrMalformedInput, ErrInvalidGeometry or ErrInvalidBuffer
//   - deterministic: identical input → identical output
package blurhash

import (
	"strings"

	"github.com/pkg/errors"
)

// Encode computes the BlurHash of a row-major pixel buffer.  Each pixel is
// bytesPerPixel (3 or 4) bytes wide; only the leading R, G, B bytes are read.
func Encode(pix []byte, width, height, componentsX, componentsY, bytesPerPixel int) (string, error) {
	if width < 1 || height < 1 {
		return "", errors.Wrapf(ErrInvalidGeometry, "image size %dx%d", width, height)
	}
	if !validComponents(componentsX, componentsY) {
		return "", errors.Wrapf(ErrInvalidGeometry,
			"components %dx%d must be in the range 1-9", componentsX, componentsY)
	}
	if err := checkBuffer(pix, width, height, bytesPerPixel); err != nil {
		return "", err
	}

	factors := analyse(pix, width, height, componentsX, componentsY, bytesPerPixel)
	dc, ac := factors[0], factors[1:]

	var sb strings.Builder
	sb.Grow(hashLen(componentsX, componentsY))
	sb.WriteString(encode83(packComponents(componentsX, componentsY), 1))

	maxValue := float32(1)
	if len(ac) > 0 {
		var actualMax float32
		for _, c := range ac {
			actualMax = max(actualMax, abs32(c.r), abs32(c.g), abs32(c.b))
		}
		q := encodeMaxAC(actualMax)
		maxValue = decodeMaxAC(q)
		sb.WriteString(encode83(q, 1))
	} else {
		sb.WriteString(encode83(0, 1))
	}

	sb.WriteString(encode83(encodeDC(dc), 4))
	for _, c := range ac {
		sb.WriteString(encode83(encodeAC(c, maxValue), 2))
	}
	return sb.String(), nil
}

// analyse projects the image onto the cosine basis.  The 1/width half of
// the area normalisation is applied per pixel so sums stay in float32
// range on large images; the 1/height half is applied at the end.
func analyse(pix []byte, width, height, cx, cy, bpp int) []linearRGB {
	basisX := basesFor(width, cx)
	basisY := basesFor(height, cy)
	factors := make([]linearRGB, cx*cy)
	invW := 1 / float32(width)

	for y := 0; y < height; y++ {
		row := pix[y*width*bpp:]
		by := basisY[y*cy : y*cy+cy]
		for x := 0; x < width; x++ {
			off := x * bpp
			lin := linearRGB{
				srgbToLinear(row[off]),
				srgbToLinear(row[off+1]),
				srgbToLinear(row[off+2]),
			}.scale(invW)

			bx := basisX[x*cx : x*cx+cx]
			for ny := 0; ny < cy; ny++ {
				for nx := 0; nx < cx; nx++ {
					factors[ny*cx+nx].addScaled(lin, bx[nx]*by[ny])
				}
			}
		}
	}

	for i := range factors {
		norm := float32(2)
		if i == 0 {
			norm = 1
		}
		factors[i] = factors[i].scale(norm / float32(height))
	}
	return factors
}

func checkBuffer(pix []byte, width, height, bpp int) error {
	if bpp != 3 && bpp != 4 {
		return errors.Wrapf(ErrInvalidBuffer, "bytes per pixel must be 3 or 4, got %d", bpp)
	}
	if len(pix) == 0 {
		return errors.Wrap(ErrInvalidBuffer, "empty pixel buffer")
	}
	if need := width * height * bpp; len(pix) < need {
		return errors.Wrapf(ErrInvalidBuffer, "pixel buffer is %d bytes, need %d for %dx%dx%d",
			len(pix), need, width, height, bpp)
	}
	return nil
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
