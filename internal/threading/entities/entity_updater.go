package entities

import (
	"raystein/internal/threading/core"
)

// DefaultParallelThreshold is the entity count from which planning runs on
// several goroutines.
const DefaultParallelThreshold = 16

// Step is the move planned for one entity.
type Step struct {
	DX, DY float64
	Move   bool
}

// EntityUpdater updates entities in two phases. Planning may run in
// parallel and must only read shared state; applying runs on the calling
// goroutine in index order, so it may mutate shared state freely.
type EntityUpdater struct {
	ParallelThreshold int
}

// NewEntityUpdater creates a new entity updater
func NewEntityUpdater() *EntityUpdater {
	return &EntityUpdater{ParallelThreshold: DefaultParallelThreshold}
}

// Update plans a step for each of n entities and applies the ones that
// move. It returns how many steps were applied successfully.
func (eu *EntityUpdater) Update(n int, plan func(i int) Step, apply func(i int, s Step) bool) int {
	if n <= 0 {
		return 0
	}

	steps := eu.plan(n, plan)

	applied := 0
	for i, s := range steps {
		if s.Move && apply(i, s) {
			applied++
		}
	}
	return applied
}

func (eu *EntityUpdater) plan(n int, plan func(i int) Step) []Step {
	if eu.ParallelThreshold <= 0 || n < eu.ParallelThreshold {
		steps := make([]Step, n)
		for i := range steps {
			steps[i] = plan(i)
		}
		return steps
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return core.ParallelMap(indices, plan)
}
