package strategy

import (
	"github.com/pimprof/solver"
	"github.com/pimprof/solver/cost"
)

// MPKI implements spec §4.5: assign PIM iff the BBL's memory intensity,
// parallelism, and instruction-count share all clear their thresholds and
// the BBL is not the GLOBAL sentinel; otherwise CPU.
func MPKI(in Input, cfg solver.CostConfig) (solver.Decision, cost.Breakdown, error) {
	n := in.Pool.Len()
	d := solver.NewDecision(n, solver.CPU)

	var pimTotalInstr int64
	for i := 0; i < n; i++ {
		pimTotalInstr += in.Pool.PIM(solver.BblId(i)).InstructionCount
	}
	instrThreshold := 0.01 * float64(pimTotalInstr)

	for i := 0; i < n; i++ {
		id := solver.BblId(i)
		ps := in.Pool.PIM(id)
		if ps.BblHash == solver.HashGlobal {
			continue
		}
		if ps.MPKI() > cfg.MPKIThreshold &&
			float64(ps.Parallelism()) > float64(cfg.ParallelismThreshold) &&
			float64(ps.InstructionCount) > instrThreshold {
			d[i] = solver.PIM
		}
	}
	b, err := in.evaluate(cfg, d)
	return d, b, err
}
