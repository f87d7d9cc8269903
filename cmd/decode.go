package cmd

import (
	"fmt"
	"os"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/encoder"
	"github.com/spf13/cobra"
)

var (
	decodeWidth   int
	decodeHeight  int
	decodeOut     string
	decodeFormat  string
	decodeQuality int
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hash>",
	Short: "Render a BlurHash to an image file",
	Long: `Renders the placeholder encoded in <hash> at the requested size and
writes it as PNG or JPEG.  The format follows --format, or the --out
extension when --format is empty.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().IntVarP(&decodeWidth, "width", "W", 32, "output width in pixels")
	decodeCmd.Flags().IntVarP(&decodeHeight, "height", "H", 32, "output height in pixels")
	decodeCmd.Flags().StringVarP(&decodeOut, "out", "o", "placeholder.png", "output file")
	decodeCmd.Flags().StringVarP(&decodeFormat, "format", "f", "", "png or jpeg (default: from --out)")
	decodeCmd.Flags().IntVarP(&decodeQuality, "quality", "q", 82, "jpeg quality 1-100")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	hash := args[0]

	format := decodeFormat
	if format == "" {
		format = encoder.FormatFromPath(decodeOut)
	}
	if format == "" {
		format = "png"
	}
	enc := encoder.NewRegistry().Get(format)
	if enc == nil {
		return fmt.Errorf("unsupported output format %q", format)
	}

	img, err := blurhash.DecodeImage(hash, decodeWidth, decodeHeight)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	x, y, _ := blurhash.Components(hash)
	logVerbose("%s: %dx%d components, rendering %dx%d %s", hash, x, y, decodeWidth, decodeHeight, enc.Format())

	data, err := enc.Encode(img, decodeQuality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", enc.Format(), err)
	}
	if err := os.WriteFile(decodeOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", decodeOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ %s (%dx%d, %s)\n", decodeOut, decodeWidth, decodeHeight, formatBytes(int64(len(data))))
	return nil
}
