package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/AnyUserName/blurhash-cli/internal/pipeline"
	"github.com/AnyUserName/blurhash-cli/internal/profile"
)

func writeFixture(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestEncodeDecodeCommands(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writeFixture(t, src, 120, 80)

	hash := strings.TrimSpace(execute(t, "encode", src, "-x", "5", "-y", "4"))
	x, y, err := blurhash.Components(hash)
	if err != nil {
		t.Fatalf("encode printed %q: %v", hash, err)
	}
	if x != 5 || y != 4 {
		t.Errorf("components = %dx%d, want 5x4", x, y)
	}

	out := filepath.Join(dir, "out.png")
	execute(t, "decode", hash, "-W", "16", "-H", "8", "-o", out)

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("output bounds = %v", b)
	}
}

func TestValidateManifest(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFixture(t, filepath.Join(in, "a.png"), 64, 48)
	writeFixture(t, filepath.Join(in, "b.png"), 30, 90)

	m, err := pipeline.New(pipeline.Config{InputDir: in, OutputDir: out, Profile: profile.Get("default")}).Run()
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	path := filepath.Join(out, manifest.DefaultName+".zst")
	if err := manifest.WriteJSON(m, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	resolved, err := manifestPath(out)
	if err != nil || resolved != path {
		t.Fatalf("manifestPath(dir) = %q, %v; want %q", resolved, err, path)
	}
	m, err = manifest.Read(resolved)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if errs := validateManifest(m, out); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	a := m.Assets["a"]
	a.BlurHash = a.BlurHash[:len(a.BlurHash)-1]
	m.Assets["a"] = a
	b := m.Assets["b"]
	if len(b.Previews) == 0 {
		t.Fatal("default profile should render previews")
	}
	if err := os.Remove(filepath.Join(out, b.Previews[0].Path)); err != nil {
		t.Fatal(err)
	}

	errs := validateManifest(m, out)
	if len(errs) != 2 {
		t.Fatalf("errors: got %d, want 2: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0], `asset "a"`) || !strings.Contains(errs[1], "file not found") {
		t.Errorf("unexpected errors: %v", errs)
	}
}
