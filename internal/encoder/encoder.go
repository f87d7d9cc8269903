package encoder

import (
	"image"
	"path/filepath"
	"strings"
)

// Encoder writes a rendered placeholder in a specific file format.
type Encoder interface {
	// Format returns the output format name ("jpeg" or "png").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	// Lossless formats ignore quality.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}

// FormatFromPath maps a file name to a format name by extension.
// Unknown or missing extensions yield "".
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	}
	return ""
}
