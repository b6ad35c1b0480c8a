package mathutil

// Clamp limits x to the inclusive range [lo, hi]. NaN collapses to lo.
func Clamp(x, lo, hi float64) float64 {
	if x >= lo && x <= hi {
		return x
	}
	if x > hi {
		return hi
	}
	return lo
}

// FloorIndex converts a continuous coordinate to a texel/cell index clamped
// into [0, size). size must be positive.
func FloorIndex(v float64, size int) int {
	if !(v >= 0) {
		return 0
	}
	if v >= float64(size) {
		return size - 1
	}
	return int(v)
}
