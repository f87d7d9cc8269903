package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a built placeholder directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// manifestPath resolves a directory argument to the manifest inside it,
// preferring the compressed form when only that exists.
func manifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	plain := filepath.Join(path, manifest.DefaultName)
	if _, err := os.Stat(plain); err == nil {
		return plain, nil
	}
	if _, err := os.Stat(plain + ".zst"); err == nil {
		return plain + ".zst", nil
	}
	return plain, nil
}

func runStats(_ *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.Read(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Printf("  Downsample:       %d px\n", m.BuildInfo.MaxDim)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	fmt.Printf("  Total previews:   %d\n", s.TotalPreviews)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Preview size:     %s\n", formatBytes(s.TotalPreviewBytes))
	fmt.Printf("  Hash payload:     %s\n", formatBytes(int64(s.TotalHashBytes)))
	fmt.Println()

	// Per-grid breakdown.
	grids := map[string]int{}
	for _, a := range m.Assets {
		grids[fmt.Sprintf("%dx%d", a.ComponentsX, a.ComponentsY)]++
	}
	var names []string
	for g := range grids {
		names = append(names, g)
	}
	sort.Strings(names)
	fmt.Println("  Components breakdown:")
	for _, g := range names {
		fmt.Printf("    %-5s  %4d assets\n", g, grids[g])
	}
	fmt.Println()

	// Per-format preview breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range m.Assets {
		for _, p := range a.Previews {
			fs := formatStats[p.Format]
			fs.count++
			fs.bytes += p.Size
			formatStats[p.Format] = fs
		}
	}
	if len(formatStats) > 0 {
		fmt.Println("  Preview formats:")
		for _, f := range []string{"png", "jpeg"} {
			if fs, ok := formatStats[f]; ok {
				fmt.Printf("    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
			}
		}
		fmt.Println()
	}

	var warnings []string
	for key, a := range m.Assets {
		if a.BlurHash == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q missing blurhash", key))
		}
		if a.Original.HasAlpha {
			warnings = append(warnings, fmt.Sprintf("asset %q has transparency; placeholder is opaque", key))
		}
	}
	if len(warnings) > 0 {
		sort.Strings(warnings)
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}
