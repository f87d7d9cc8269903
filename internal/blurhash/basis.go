package blurhash

import "math"

// basesFor returns the cosine table for one axis, laid out
// table[p*components+n] = cos(π·n·p / dimension).
//
// Evaluated in float32, same as the accumulators.  Changing the precision
// changes exact output strings, not visual quality.
func basesFor(dimension, components int) []float32 {
	table := make([]float32, dimension*components)
	scale := float32(math.Pi) / float32(dimension)
	for p := 0; p < dimension; p++ {
		base := p * components
		for n := 0; n < components; n++ {
			table[base+n] = float32(math.Cos(float64(scale * float32(n*p))))
		}
	}
	return table
}
