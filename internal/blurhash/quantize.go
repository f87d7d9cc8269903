package blurhash

import "math"

// acLevels is the number of buckets per channel for AC terms.
const acLevels = 19

// encodeDC packs the average colour into a 24-bit sRGB integer.
func encodeDC(c linearRGB) int {
	return int(linearToSrgb(c.r))<<16 | int(linearToSrgb(c.g))<<8 | int(linearToSrgb(c.b))
}

func decodeDC(v int) linearRGB {
	r, g, b := splitDC(v)
	return linearRGB{r: srgbToLinear(r), g: srgbToLinear(g), b: srgbToLinear(b)}
}

// splitDC extracts the sRGB bytes of a packed DC value.  The top field
// saturates, since four base83 digits reach past 24 bits.
func splitDC(v int) (r, g, b uint8) {
	return uint8(min(v>>16, 255)), uint8(v >> 8), uint8(v)
}

// encodeAC quantises each channel of c (relative to maxValue) into 19
// buckets and combines them as a base-19 number in [0, 6858].
func encodeAC(c linearRGB, maxValue float32) int {
	q := func(v float32) int {
		f := math.Floor(float64(signPow(v/maxValue, 0.5)*9 + 9.5))
		return clampInt(int(f), 0, acLevels-1)
	}
	return q(c.r)*acLevels*acLevels + q(c.g)*acLevels + q(c.b)
}

func decodeAC(v int, maxValue float32) linearRGB {
	dq := func(q int) float32 {
		return signPow((float32(q)-9)/9, 2) * maxValue
	}
	return linearRGB{
		r: dq(v / (acLevels * acLevels)),
		g: dq((v / acLevels) % acLevels),
		b: dq(v % acLevels),
	}
}

func encodeMaxAC(maxAC float32) int {
	return clampInt(int(math.Floor(float64(maxAC*166-0.5))), 0, 82)
}

func decodeMaxAC(q int) float32 {
	return float32(q+1) / 166
}

// signPow raises |v| to exp and restores the sign of v.
func signPow(v, exp float32) float32 {
	return float32(math.Copysign(math.Pow(math.Abs(float64(v)), float64(exp)), float64(v)))
}
