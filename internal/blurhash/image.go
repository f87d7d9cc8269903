package blurhash

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// EncodeImage computes the BlurHash of any image.Image.  Alpha is ignored;
// premultiplied sources are un-premultiplied first.
func EncodeImage(img image.Image, componentsX, componentsY int) (string, error) {
	if img == nil {
		return "", errors.Wrap(ErrInvalidBuffer, "nil image")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 1 || h < 1 {
		return "", errors.Wrapf(ErrInvalidGeometry, "image size %dx%d", w, h)
	}

	// Tightly packed NRGBA at the origin can be read in place.
	if n, ok := img.(*image.NRGBA); ok && n.Stride == w*4 {
		off := n.PixOffset(b.Min.X, b.Min.Y)
		return Encode(n.Pix[off:], w, h, componentsX, componentsY, 4)
	}
	return Encode(packRGB(img), w, h, componentsX, componentsY, 3)
}

// DecodeImage renders hash as an opaque width×height NRGBA image.
func DecodeImage(hash string, width, height int) (*image.NRGBA, error) {
	pix, err := Decode(hash, width, height, 4)
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// ─── pixel extraction (3 bytes per pixel, row-major) ─────────

func packRGB(img image.Image) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h*3)
	di := 0

	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			for x := 0; x < w; x++ {
				copy(out[di:di+3], src.Pix[off:off+3])
				off += 4
				di += 3
			}
		}
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			for x := 0; x < w; x++ {
				a := uint32(src.Pix[off+3])
				if a == 255 {
					copy(out[di:di+3], src.Pix[off:off+3])
				} else if a > 0 {
					out[di] = uint8(uint32(src.Pix[off]) * 255 / a)
					out[di+1] = uint8(uint32(src.Pix[off+1]) * 255 / a)
					out[di+2] = uint8(uint32(src.Pix[off+2]) * 255 / a)
				}
				off += 4
				di += 3
			}
		}
	case *image.YCbCr:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				yi := src.YOffset(x, y)
				ci := src.COffset(x, y)
				out[di], out[di+1], out[di+2] = color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				di += 3
			}
		}
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			for x := 0; x < w; x++ {
				v := src.Pix[off+x]
				out[di], out[di+1], out[di+2] = v, v, v
				di += 3
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				out[di], out[di+1], out[di+2] = c.R, c.G, c.B
				di += 3
			}
		}
	}
	return out
}

// HasAlpha reports whether any pixel is less than fully opaque.
func HasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case *image.NRGBA:
		return anyBelowOpaque(src.Pix)
	case *image.RGBA:
		return anyBelowOpaque(src.Pix)
	case *image.YCbCr, *image.Gray:
		return false
	default:
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a < 0xffff {
					return true
				}
			}
		}
		return false
	}
}

func anyBelowOpaque(pix []byte) bool {
	for i := 3; i < len(pix); i += 4 {
		if pix[i] < 255 {
			return true
		}
	}
	return false
}
