package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/encoder"
	"github.com/AnyUserName/blurhash-cli/internal/hasher"
	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage handles a single source image: fingerprint, decode,
// downsample, blurhash, previews.
func processImage(src Source, cfg Config, registry *encoder.Registry) processResult {
	result := processResult{key: src.Key}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	cx, cy := cfg.Profile.Components(origW, origH)

	hash, err := blurhash.EncodeImage(Downsample(img, cfg.Profile.MaxDim), cx, cy)
	if err != nil {
		result.err = fmt.Errorf("blurhash %s: %w", src.RelPath, err)
		return result
	}

	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:    origW,
			Height:   origH,
			Format:   src.Format,
			Size:     src.Size,
			HasAlpha: blurhash.HasAlpha(img),
			Hash:     hasher.Sum(data).Hex(16),
		},
		BlurHash:    hash,
		ComponentsX: cx,
		ComponentsY: cy,
		AspectRatio: float64(origW) / float64(origH),
	}
	if avg, err := blurhash.AverageColor(hash); err == nil {
		result.asset.AvgColor = &[3]uint8{avg.R, avg.G, avg.B}
	}

	sizes := cfg.Profile.PreviewSizes(origW, origH)
	if len(sizes) == 0 {
		return result
	}
	outFormats := registry.ResolveFormats(cfg.Profile.PreviewFormats)

	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755); err != nil {
			result.err = fmt.Errorf("mkdir %s: %w", keyDir, err)
			return result
		}
	}

	for _, size := range sizes {
		placeholder, err := blurhash.DecodeImage(hash, size.Width, size.Height)
		if err != nil {
			result.err = fmt.Errorf("render %s@%dx%d: %w", src.Key, size.Width, size.Height, err)
			return result
		}

		for _, format := range outFormats {
			enc := registry.Get(format)
			if enc == nil {
				continue
			}

			out, err := enc.Encode(placeholder, cfg.Profile.Quality)
			if err != nil {
				if cfg.Verbose {
					fmt.Fprintf(os.Stderr, "[blurhash] warn: encode %s@%dx%d as %s: %v\n",
						src.Key, size.Width, size.Height, format, err)
				}
				continue
			}

			digest := hasher.Sum(out).Hex(16)

			// key.w.h.hash.ext
			fileName := fmt.Sprintf("%s.%d.%d.%s.%s",
				filepath.Base(src.Key), size.Width, size.Height, digest[:8], enc.Extension())
			relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

			if err := os.WriteFile(filepath.Join(cfg.OutputDir, relPath), out, 0o644); err != nil {
				result.err = fmt.Errorf("write %s: %w", relPath, err)
				return result
			}

			result.asset.Previews = append(result.asset.Previews, manifest.Preview{
				Format: format,
				Width:  size.Width,
				Height: size.Height,
				Size:   int64(len(out)),
				Hash:   digest,
				Path:   relPath,
			})
		}
	}

	return result
}

// Downsample shrinks img so its longest side is at most maxDim, keeping
// the aspect ratio.  The blur discards high frequencies anyway, so a box
// filter is enough.  maxDim <= 0 or a small image returns img unchanged.
func Downsample(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	if maxDim <= 0 || (b.Dx() <= maxDim && b.Dy() <= maxDim) {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Box)
}
