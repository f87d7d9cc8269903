package blurhash

import (
	"image/color"

	"github.com/pkg/errors"
)

// Decode renders hash into a fresh width×height buffer with bytesPerPixel
// (3 or 4) bytes per pixel.  The buffer starts at 255, so a fourth byte
// is left opaque.
func Decode(hash string, width, height, bytesPerPixel int) ([]byte, error) {
	cx, cy, values, err := parse(hash)
	if err != nil {
		return nil, err
	}
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(ErrInvalidGeometry, "output size %dx%d", width, height)
	}
	if bytesPerPixel != 3 && bytesPerPixel != 4 {
		return nil, errors.Wrapf(ErrInvalidBuffer, "bytes per pixel must be 3 or 4, got %d", bytesPerPixel)
	}

	pix := make([]byte, width*height*bytesPerPixel)
	for i := range pix {
		pix[i] = 255
	}
	synthesise(pix, width, height, cx, cy, bytesPerPixel, values)
	return pix, nil
}

// parse validates hash and dequantises its coefficient grid.
func parse(hash string) (cx, cy int, values []linearRGB, err error) {
	cx, cy, err = Components(hash)
	if err != nil {
		return 0, 0, nil, err
	}
	if err := checkAlphabet(hash); err != nil {
		return 0, 0, nil, err
	}

	// Alphabet already checked; the decode83 errors below cannot fire.
	qMax, _ := decode83(hash[1:2])
	maxValue := decodeMaxAC(qMax)
	dc, _ := decode83(hash[2:6])

	values = make([]linearRGB, 0, cx*cy)
	values = append(values, decodeDC(dc))
	for i := headerLen; i < len(hash); i += 2 {
		v, _ := decode83(hash[i : i+2])
		values = append(values, decodeAC(v, maxValue))
	}
	return cx, cy, values, nil
}

func synthesise(pix []byte, width, height, cx, cy, bpp int, values []linearRGB) {
	basisX := basesFor(width, cx)
	basisY := basesFor(height, cy)

	for y := 0; y < height; y++ {
		by := basisY[y*cy : y*cy+cy]
		off := y * width * bpp
		for x := 0; x < width; x++ {
			bx := basisX[x*cx : x*cx+cx]
			var c linearRGB
			for ny := 0; ny < cy; ny++ {
				for nx := 0; nx < cx; nx++ {
					c.addScaled(values[ny*cx+nx], bx[nx]*by[ny])
				}
			}
			pix[off] = linearToSrgb(c.r)
			pix[off+1] = linearToSrgb(c.g)
			pix[off+2] = linearToSrgb(c.b)
			off += bpp
		}
	}
}

// AverageColor returns the DC term of hash as an opaque sRGB colour.
func AverageColor(hash string) (color.NRGBA, error) {
	if _, _, err := Components(hash); err != nil {
		return color.NRGBA{}, err
	}
	v, err := decode83(hash[2:6])
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := splitDC(v)
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
