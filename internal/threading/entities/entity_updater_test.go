package entities

import (
	"sync/atomic"
	"testing"
)

func TestUpdateAppliesInOrder(t *testing.T) {
	for _, threshold := range []int{0, 1, 1000} {
		eu := &EntityUpdater{ParallelThreshold: threshold}
		var planned atomic.Int64
		var order []int

		applied := eu.Update(100, func(i int) Step {
			planned.Add(1)
			return Step{DX: float64(i), Move: i%2 == 0}
		}, func(i int, s Step) bool {
			if s.DX != float64(i) {
				t.Errorf("step %d carries DX %v", i, s.DX)
			}
			order = append(order, i)
			return i%4 == 0
		})

		if planned.Load() != 100 {
			t.Errorf("threshold %d: planned %d entities, want 100", threshold, planned.Load())
		}
		if len(order) != 50 {
			t.Fatalf("threshold %d: applied %d moves, want 50", threshold, len(order))
		}
		for k := 1; k < len(order); k++ {
			if order[k] <= order[k-1] {
				t.Fatalf("threshold %d: apply order %v not increasing", threshold, order)
			}
		}
		if applied != 25 {
			t.Errorf("threshold %d: applied = %d, want 25", threshold, applied)
		}
	}
}

func TestUpdateEmpty(t *testing.T) {
	eu := NewEntityUpdater()
	got := eu.Update(0, func(int) Step {
		t.Fatal("plan called for empty update")
		return Step{}
	}, func(int, Step) bool { return true })
	if got != 0 {
		t.Errorf("Update(0) = %d", got)
	}
}
