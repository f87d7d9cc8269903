package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/pipeline"
	"github.com/spf13/cobra"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	encodeX          int
	encodeY          int
	encodeDownsample int
)

var encodeCmd = &cobra.Command{
	Use:   "encode <image>",
	Short: "Print the BlurHash of an image",
	Long: `Decodes an image file (png, jpeg, gif, webp, bmp, tiff), optionally
shrinks it so the longest side is at most --downsample pixels, and prints
its BlurHash with the given component counts.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().IntVarP(&encodeX, "components-x", "x", 4, "horizontal components (1-9)")
	encodeCmd.Flags().IntVarP(&encodeY, "components-y", "y", 3, "vertical components (1-9)")
	encodeCmd.Flags().IntVar(&encodeDownsample, "downsample", 64, "max side before encoding (0 = full size)")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}
	b := img.Bounds()
	logVerbose("%s: %s %dx%d", args[0], format, b.Dx(), b.Dy())

	small := pipeline.Downsample(img, encodeDownsample)
	if sb := small.Bounds(); sb != b {
		logVerbose("downsampled to %dx%d", sb.Dx(), sb.Dy())
	}

	hash, err := blurhash.EncodeImage(small, encodeX, encodeY)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
