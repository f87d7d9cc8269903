package blurhash

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

const referenceHash = "LEHV6nWB2yk0pyo0adR*.7kCMdnj"

// ─── test image generators ───────────────────────────────────

func solidRGB(w, h int, r, g, b uint8) []byte {
	pix := make([]byte, w*h*3)
	for i := 0; i < len(pix); i += 3 {
		pix[i], pix[i+1], pix[i+2] = r, g, b
	}
	return pix
}

// gradientRGB stays well inside [0, 255] so the blurred reconstruction
// never clips.
func gradientRGB(w, h, bpp int) []byte {
	pix := make([]byte, w*h*bpp)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * bpp
			pix[off] = uint8(64 + x*128/w)
			pix[off+1] = uint8(64 + y*128/h)
			pix[off+2] = uint8(96 + (x+y)*64/(w+h))
			if bpp == 4 {
				pix[off+3] = uint8(x * 7)
			}
		}
	}
	return pix
}

func meanAbsDiff(a, b []byte) float64 {
	var sum int
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return float64(sum) / float64(len(a))
}

// ─── encode ──────────────────────────────────────────────────

func TestEncode_Deterministic(t *testing.T) {
	pix := gradientRGB(40, 30, 3)
	h1, err := Encode(pix, 40, 30, 4, 3, 3)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	h2, err := Encode(pix, 40, 30, 4, 3, 3)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("non-deterministic: %q vs %q", h1, h2)
	}
}

func TestEncode_LengthAndAlphabet(t *testing.T) {
	pix := gradientRGB(17, 13, 3)
	for cy := 1; cy <= 9; cy++ {
		for cx := 1; cx <= 9; cx++ {
			hash, err := Encode(pix, 17, 13, cx, cy, 3)
			if err != nil {
				t.Fatalf("encode %dx%d: %v", cx, cy, err)
			}
			if want := 6 + 2*(cx*cy-1); len(hash) != want {
				t.Errorf("%dx%d: len = %d, want %d", cx, cy, len(hash), want)
			}
			for i := 0; i < len(hash); i++ {
				if strings.IndexByte(alphabet, hash[i]) < 0 {
					t.Errorf("%dx%d: symbol %q outside alphabet", cx, cy, hash[i])
				}
			}
			gx, gy, err := Components(hash)
			if err != nil || gx != cx || gy != cy {
				t.Errorf("Components(%q) = %d, %d, %v; want %d, %d", hash, gx, gy, err, cx, cy)
			}
		}
	}
}

func TestEncode_UniformGray(t *testing.T) {
	pix := solidRGB(32, 32, 128, 128, 128)
	hash, err := Encode(pix, 32, 32, 1, 1, 3)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(hash) != 6 {
		t.Fatalf("len = %d, want 6", len(hash))
	}
	if hash[0] != '0' {
		t.Errorf("components symbol = %q, want '0'", hash[0])
	}
	if got := hash[1:2]; got != encode83(0, 1) {
		t.Errorf("max AC symbol = %q, want %q", got, encode83(0, 1))
	}

	v, err := decode83(hash[2:6])
	if err != nil {
		t.Fatalf("decode DC: %v", err)
	}
	dc := decodeDC(v)
	want := srgbToLinear(128)
	for i, ch := range []float32{dc.r, dc.g, dc.b} {
		if d := ch - want; d < -1.0/255 || d > 1.0/255 {
			t.Errorf("channel %d: DC %v, want %v ± 1/255", i, ch, want)
		}
	}
}

func TestEncode_Header(t *testing.T) {
	pix := solidRGB(32, 32, 40, 90, 200)
	hash, err := Encode(pix, 32, 32, 4, 3, 3)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if hash[0] != referenceHash[0] {
		t.Errorf("components symbol = %q, want %q", hash[0], referenceHash[0])
	}
	c, err := AverageColor(hash)
	if err != nil {
		t.Fatalf("AverageColor: %v", err)
	}
	for i, pair := range [][2]uint8{{40, c.R}, {90, c.G}, {200, c.B}} {
		if d := int(pair[1]) - int(pair[0]); d < 0 || d > 1 {
			t.Errorf("channel %d: average %d, want %d", i, pair[1], pair[0])
		}
	}
}

func TestEncode_BytesPerPixel4IgnoresAlpha(t *testing.T) {
	rgba := gradientRGB(24, 16, 4)
	rgb := make([]byte, 0, 24*16*3)
	for i := 0; i < len(rgba); i += 4 {
		rgb = append(rgb, rgba[i], rgba[i+1], rgba[i+2])
	}
	h4, err := Encode(rgba, 24, 16, 5, 4, 4)
	if err != nil {
		t.Fatalf("encode bpp=4: %v", err)
	}
	h3, err := Encode(rgb, 24, 16, 5, 4, 3)
	if err != nil {
		t.Fatalf("encode bpp=3: %v", err)
	}
	if h3 != h4 {
		t.Errorf("bpp=4 %q differs from bpp=3 %q", h4, h3)
	}
}

func TestEncode_Errors(t *testing.T) {
	pix := solidRGB(8, 8, 1, 2, 3)
	tests := []struct {
		name         string
		pix          []byte
		w, h, cx, cy int
		bpp          int
		want         error
	}{
		{"zero components", pix, 8, 8, 0, 3, 3, ErrInvalidGeometry},
		{"ten components", pix, 8, 8, 10, 3, 3, ErrInvalidGeometry},
		{"ten components y", pix, 8, 8, 3, 10, 3, ErrInvalidGeometry},
		{"zero width", pix, 0, 8, 3, 3, 3, ErrInvalidGeometry},
		{"negative height", pix, 8, -1, 3, 3, 3, ErrInvalidGeometry},
		{"nil buffer", nil, 8, 8, 3, 3, 3, ErrInvalidBuffer},
		{"short buffer", pix[:len(pix)-1], 8, 8, 3, 3, 3, ErrInvalidBuffer},
		{"buffer too short for bpp 4", pix, 8, 8, 3, 3, 4, ErrInvalidBuffer},
		{"bad bpp", pix, 8, 8, 3, 3, 2, ErrInvalidBuffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := Encode(tt.pix, tt.w, tt.h, tt.cx, tt.cy, tt.bpp)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if hash != "" {
				t.Errorf("partial output %q", hash)
			}
		})
	}
}

// ─── decode ──────────────────────────────────────────────────

func TestDecode_Reference(t *testing.T) {
	pix, err := Decode(referenceHash, 32, 32, 3)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(pix) != 32*32*3 {
		t.Fatalf("len = %d, want %d", len(pix), 32*32*3)
	}
	x, y, err := Components(referenceHash)
	if err != nil || x != 4 || y != 3 {
		t.Errorf("Components = %d, %d, %v; want 4, 3", x, y, err)
	}
}

func TestDecode_AlphaStaysOpaque(t *testing.T) {
	pix, err := Decode(referenceHash, 7, 5, 4)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 255 {
			t.Fatalf("alpha at pixel %d = %d", i/4, pix[i])
		}
	}
	rgb, err := Decode(referenceHash, 7, 5, 3)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for p := 0; p < 7*5; p++ {
		for c := 0; c < 3; c++ {
			if pix[p*4+c] != rgb[p*3+c] {
				t.Fatalf("pixel %d channel %d: bpp4=%d bpp3=%d", p, c, pix[p*4+c], rgb[p*3+c])
			}
		}
	}
}

func TestDecode_DCOnlyIsFlat(t *testing.T) {
	pix := solidRGB(16, 16, 200, 30, 90)
	hash, err := Encode(pix, 16, 16, 1, 1, 3)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(hash, 9, 4, 3)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := 3; i < len(out); i++ {
		if out[i] != out[i%3] {
			t.Fatalf("byte %d = %d, want %d", i, out[i], out[i%3])
		}
	}
	for c, want := range []uint8{200, 30, 90} {
		if d := int(out[c]) - int(want); d < -2 || d > 2 {
			t.Errorf("channel %d = %d, want %d ± 2", c, out[c], want)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		hash string
		w, h int
		bpp  int
		want error
	}{
		{"empty", "", 32, 32, 3, ErrMalformedInput},
		{"five chars", "12345", 32, 32, 3, ErrMalformedInput},
		{"length mismatch", referenceHash[:len(referenceHash)-2], 32, 32, 3, ErrMalformedInput},
		{"trailing byte", referenceHash + "0", 32, 32, 3, ErrMalformedInput},
		{"bad symbol", referenceHash[:10] + " " + referenceHash[11:], 32, 32, 3, ErrMalformedInput},
		{"bad components symbol", "/" + referenceHash[1:], 32, 32, 3, ErrMalformedInput},
		{"components past 9", "~00000" + strings.Repeat("00", 9), 32, 32, 3, ErrMalformedInput},
		{"zero width", referenceHash, 0, 32, 3, ErrInvalidGeometry},
		{"zero height", referenceHash, 32, 0, 3, ErrInvalidGeometry},
		{"bad bpp", referenceHash, 32, 32, 5, ErrInvalidBuffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pix, err := Decode(tt.hash, tt.w, tt.h, tt.bpp)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if pix != nil {
				t.Errorf("partial output of %d bytes", len(pix))
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(referenceHash); err != nil {
		t.Errorf("Validate(reference): %v", err)
	}
	if err := Validate(referenceHash[:27] + "!"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("Validate(bad symbol): got %v", err)
	}
	if err := Validate("0000"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("Validate(short): got %v", err)
	}
}

func TestAverageColor(t *testing.T) {
	c, err := AverageColor(referenceHash)
	if err != nil {
		t.Fatalf("AverageColor: %v", err)
	}
	if c.R != 151 || c.G != 150 || c.B != 149 || c.A != 255 {
		t.Errorf("AverageColor = %+v, want {151 150 149 255}", c)
	}
}

// ─── roundtrip ───────────────────────────────────────────────

func TestRoundtrip_Idempotent(t *testing.T) {
	const w, h = 64, 64
	src := gradientRGB(w, h, 3)

	hash1, err := Encode(src, w, h, 4, 3, 3)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	blur1, err := Decode(hash1, w, h, 3)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	hash2, err := Encode(blur1, w, h, 4, 3, 3)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	blur2, err := Decode(hash2, w, h, 3)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}

	if hash1[0] != hash2[0] {
		t.Errorf("components changed: %q -> %q", hash1[0], hash2[0])
	}
	if d := meanAbsDiff(blur1, blur2); d > 8 {
		t.Errorf("mean abs diff after second application = %.2f (hashes %q, %q)", d, hash1, hash2)
	}
	if d := meanAbsDiff(src, blur1); d > 32 {
		t.Errorf("blur drifted from source: mean abs diff %.2f", d)
	}
}

func TestConcurrentUse(t *testing.T) {
	src := gradientRGB(48, 32, 3)
	want, err := Encode(src, 48, 32, 5, 4, 3)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			h, _ := Encode(src, 48, 32, 5, 4, 3)
			done <- h
		}()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != want {
			t.Errorf("goroutine hash %q, want %q", got, want)
		}
	}
}
