package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/hasher"
	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a manifest: hashes decode and previews exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.Read(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	errs := validateManifest(m, filepath.Dir(path))
	if len(errs) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d assets, %d previews, all hashes decode\n", m.Stats.TotalAssets, m.Stats.TotalPreviews)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	keys := make([]string, 0, len(m.Assets))
	for key := range m.Assets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		asset := m.Assets[key]

		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}
		if asset.AspectRatio <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid aspect ratio %.4f", key, asset.AspectRatio))
		}

		if err := blurhash.Validate(asset.BlurHash); err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: %v", key, err))
		} else {
			x, y, _ := blurhash.Components(asset.BlurHash)
			if x != asset.ComponentsX || y != asset.ComponentsY {
				errs = append(errs, fmt.Sprintf("asset %q: hash encodes %dx%d components, manifest says %dx%d",
					key, x, y, asset.ComponentsX, asset.ComponentsY))
			}
			if asset.AvgColor != nil {
				avg, _ := blurhash.AverageColor(asset.BlurHash)
				if *asset.AvgColor != [3]uint8{avg.R, avg.G, avg.B} {
					errs = append(errs, fmt.Sprintf("asset %q: avg_color %v does not match hash", key, *asset.AvgColor))
				}
			}
		}

		seenPaths := map[string]bool{}
		for i, p := range asset.Previews {
			if p.Format == "" {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: empty format", key, i))
			}
			if p.Width <= 0 || p.Height <= 0 {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: invalid dimensions %dx%d",
					key, i, p.Width, p.Height))
			}
			if p.Path == "" {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: missing path", key, i))
				continue
			}
			if seenPaths[p.Path] {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: duplicate path %q", key, i, p.Path))
			}
			seenPaths[p.Path] = true

			data, err := os.ReadFile(filepath.Join(baseDir, p.Path))
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: file not found: %s", key, i, p.Path))
				continue
			}
			if int64(len(data)) != p.Size {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: size mismatch: manifest=%d, disk=%d",
					key, i, p.Size, len(data)))
			}
			if p.Hash != "" && hasher.Sum(data).Hex(len(p.Hash)) != p.Hash {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: content hash mismatch", key, i))
			}
		}
	}

	// Verify stats consistency.
	previews := 0
	for _, a := range m.Assets {
		previews += len(a.Previews)
	}
	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, len(m.Assets)))
	}
	if m.Stats.TotalPreviews != previews {
		errs = append(errs, fmt.Sprintf("stats.total_previews mismatch: %d != %d", m.Stats.TotalPreviews, previews))
	}

	return errs
}
