package strategy

import (
	"github.com/pimprof/solver"
	"github.com/pimprof/solver/cost"
)

// Greedy implements spec §4.6: per BblId, PIM iff strictly cheaper on
// max-elapsed-time than CPU; CPU otherwise (including ties).
func Greedy(in Input, cfg solver.CostConfig) (solver.Decision, cost.Breakdown, error) {
	d := solver.NewDecision(in.Pool.Len(), solver.Invalid)
	d.FillGreedy(in.Pool)
	b, err := in.evaluate(cfg, d)
	return d, b, err
}
