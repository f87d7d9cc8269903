package blurhash

import "math"

// linearRGB is a linear-light RGB triple.  AC terms are signed and unbounded.
type linearRGB struct {
	r, g, b float32
}

func (c linearRGB) scale(s float32) linearRGB {
	return linearRGB{c.r * s, c.g * s, c.b * s}
}

func (c *linearRGB) addScaled(o linearRGB, s float32) {
	c.r += o.r * s
	c.g += o.g * s
	c.b += o.b * s
}

// ─── sRGB <-> linear lookup ──────────────────────────────────
// Every 8-bit input maps to exactly one linear value, so the forward
// transform is tabulated once at init.  256 × 4 bytes = 1 KB.
var srgbLUT [256]float32

func init() {
	for i := range srgbLUT {
		srgbLUT[i] = srgbToLinearF(float32(i) / 255)
	}
}

func srgbToLinearF(x float32) float32 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	case x < 0.04045:
		return x / 12.92
	default:
		return float32(math.Pow(float64((x+0.055)/1.055), 2.4))
	}
}

// srgbToLinear converts an 8-bit sRGB channel to linear light in [0, 1].
func srgbToLinear(v uint8) float32 {
	return srgbLUT[v]
}

// linearToSrgb converts linear light back to an 8-bit sRGB channel.
// Out-of-range input saturates.
func linearToSrgb(v float32) uint8 {
	var x float32
	switch {
	case v <= 0:
		x = 0
	case v >= 1:
		x = 1
	case v < 0.0031308:
		x = v * 12.92
	default:
		x = float32(math.Pow(float64(v), 1/2.4))*1.055 - 0.055
	}
	return uint8(clampInt(int(math.Round(float64(x*255+0.5))), 0, 255))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
