package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/AnyUserName/blurhash-cli/internal/pipeline"
	"github.com/AnyUserName/blurhash-cli/internal/profile"
	"github.com/spf13/cobra"
)

var (
	buildOutDir       string
	buildProfile      string
	buildWorkers      int
	buildX            int
	buildY            int
	buildMaxDim       int
	buildPreviews     []int
	buildManifestName string
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Compute placeholders for a directory and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, gif, webp, bmp, tiff),
computes a BlurHash for each, renders decoded placeholder previews, and
writes a manifest file.

Preview filenames are content-addressed: <key>.<w>.<h>.<hash>.ext
A manifest name ending in .zst is written zstd-compressed.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./blurhash_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", "default", "processing profile")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().IntVarP(&buildX, "components-x", "x", 0, "horizontal components 1-9 (0 = profile default)")
	buildCmd.Flags().IntVarP(&buildY, "components-y", "y", 0, "vertical components 1-9 (0 = profile default)")
	buildCmd.Flags().IntVar(&buildMaxDim, "downsample", -1, "max side before encoding (-1 = profile default, 0 = full size)")
	buildCmd.Flags().IntSliceVar(&buildPreviews, "previews", nil, "preview widths (overrides profile)")
	buildCmd.Flags().StringVar(&buildManifestName, "manifest-name", manifest.DefaultName, "manifest file name inside --out")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof, err := resolveProfile()
	if err != nil {
		return err
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (components=%dx%d, aspect=%v, max_dim=%d, previews=%v)",
		prof.Name, prof.ComponentsX, prof.ComponentsY, prof.AspectAware, prof.MaxDim, prof.PreviewWidths)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   buildWorkers,
		Verbose:   verbose,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, buildManifestName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(m, buildManifestName, time.Since(start))
	return nil
}

// resolveProfile applies command-line overrides to the named profile.
func resolveProfile() (profile.Profile, error) {
	prof := profile.Get(buildProfile)
	if buildX != 0 || buildY != 0 {
		if buildX != 0 {
			prof.ComponentsX = buildX
		}
		if buildY != 0 {
			prof.ComponentsY = buildY
		}
		// Explicit counts are used as given.
		prof.AspectAware = false
	}
	if prof.ComponentsX < 1 || prof.ComponentsX > 9 || prof.ComponentsY < 1 || prof.ComponentsY > 9 {
		return prof, fmt.Errorf("components %dx%d must be in the range 1-9", prof.ComponentsX, prof.ComponentsY)
	}
	if buildMaxDim >= 0 {
		prof.MaxDim = buildMaxDim
	}
	if buildPreviews != nil {
		prof.PreviewWidths = buildPreviews
	}
	return prof, nil
}

func printBuildReport(m *manifest.Manifest, manifestName string, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║             blurhash build complete              ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	fmt.Printf("  Assets:        %d\n", stats.TotalAssets)
	fmt.Printf("  Previews:      %d\n", stats.TotalPreviews)
	fmt.Printf("  Input size:    %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Preview size:  %s\n", formatBytes(stats.TotalPreviewBytes))
	if stats.TotalAssets > 0 {
		fmt.Printf("  Avg hash:      %.1f chars\n", float64(stats.TotalHashBytes)/float64(stats.TotalAssets))
	}
	fmt.Printf("  Time:          %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:       %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	// Largest sources with their hashes.
	if len(m.Assets) > 0 {
		keys := make([]string, 0, len(m.Assets))
		for key := range m.Assets {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			return m.Assets[keys[i]].Original.Size > m.Assets[keys[j]].Original.Size
		})
		n := min(len(keys), 10)
		fmt.Printf("  Top %d heaviest:\n", n)
		for _, key := range keys[:n] {
			a := m.Assets[key]
			fmt.Printf("    %-32s %8s  %s\n",
				truncKey(key, 32), formatBytes(a.Original.Size), a.BlurHash)
		}
		fmt.Println()
	}

	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:      %s (%s uncompressed)\n", manifestName, formatBytes(int64(len(data))))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n+3:]
}
