package mathutil

import (
	"math"
	"testing"
)

func TestIntMinMax(t *testing.T) {
	if got := IntMin(3, -2); got != -2 {
		t.Errorf("IntMin(3, -2) = %d", got)
	}
	if got := IntMax(3, -2); got != 3 {
		t.Errorf("IntMax(3, -2) = %d", got)
	}
}

func TestClampNaN(t *testing.T) {
	if got := Clamp(math.NaN(), 1, 2); got != 1 {
		t.Errorf("Clamp(NaN) = %v, want 1", got)
	}
	if got := Clamp(math.Inf(1), 1, 2); got != 2 {
		t.Errorf("Clamp(+Inf) = %v, want 2", got)
	}
}

func TestFloorIndex(t *testing.T) {
	tests := []struct {
		v    float64
		size int
		want int
	}{
		{0, 4, 0},
		{3.99, 4, 3},
		{4, 4, 3},
		{-0.5, 4, 0},
		{math.NaN(), 4, 0},
		{math.Inf(1), 4, 3},
		{1.5, 1, 0},
	}
	for _, tc := range tests {
		if got := FloorIndex(tc.v, tc.size); got != tc.want {
			t.Errorf("FloorIndex(%v, %d) = %d, want %d", tc.v, tc.size, got, tc.want)
		}
	}
}
