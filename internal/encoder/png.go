package encoder

import (
	"bytes"
	"image"
	"image/png"
)

// PNGEncoder encodes previews to PNG using Go's standard library.
// Blurred placeholders are smooth gradients, which deflate well.
type PNGEncoder struct {
	Level png.CompressionLevel // zero value is png.DefaultCompression
}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) Available() bool   { return true }

func (e *PNGEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(8 * 1024)

	enc := &png.Encoder{CompressionLevel: e.Level}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
