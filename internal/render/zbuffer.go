package render

import "math"

// ZBuffer holds the nearest wall distance for every screen column. Columns
// where no wall was hit hold +Inf.
type ZBuffer []float64

// NewZBuffer creates a buffer for width columns, all at +Inf.
func NewZBuffer(width int) ZBuffer {
	z := make(ZBuffer, width)
	z.Reset()
	return z
}

// Reset sets every column back to +Inf.
func (z ZBuffer) Reset() {
	for i := range z {
		z[i] = math.Inf(1)
	}
}

// At returns the depth of column x clamped into the buffer.
func (z ZBuffer) At(x int) float64 {
	if len(z) == 0 {
		return math.Inf(1)
	}
	if x < 0 {
		x = 0
	} else if x >= len(z) {
		x = len(z) - 1
	}
	return z[x]
}

// Occludes reports whether a sprite at distance is hidden behind the wall
// on column x.
func (z ZBuffer) Occludes(x int, distance float64) bool {
	return distance >= z.At(x)
}
