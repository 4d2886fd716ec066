package strategy

import (
	"math/rand"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/cost"
)

// SolverSeed identifies a reproducible run of RandomDecision.
type SolverSeed int64

// RandomDecision is a seeded-RNG baseline absent from spec.md's distillation
// but present in the original implementation as a fourth debug variant
// (SPEC_FULL "Supplemented features", original_source CostSolver.h,
// Debug_RandomDecision). It exists for tests to use as a sanity floor that
// every real strategy should beat; it is never wired into the CLI.
func RandomDecision(in Input, cfg solver.CostConfig, seed SolverSeed) (solver.Decision, cost.Breakdown, error) {
	rng := rand.New(rand.NewSource(int64(seed)))
	d := solver.NewDecision(in.Pool.Len(), solver.CPU)
	for i := range d {
		if rng.Intn(2) == 1 {
			d[i] = solver.PIM
		}
	}
	b, err := in.evaluate(cfg, d)
	return d, b, err
}
