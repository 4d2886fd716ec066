package strategy

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/cost"
)

// SCAResult is one evaluated point of the §4.7 parameter sweep. All grid
// points are kept (not just the winner) so the reporter can surface
// runner-up configurations (SPEC_FULL "bestSCAResult ordering" supplement,
// grounded on original_source's bestSCAResult/operator<).
type SCAResult struct {
	Decision             solver.Decision
	Breakdown            cost.Breakdown
	MPKIThreshold        int
	ParallelismThreshold int
	InstrFraction        float64
}

// SCASweep runs the full grid of spec §4.7 — mpki_threshold ∈ {0,10,…,90},
// parallelism_threshold ∈ {0,…,9}, instr_fraction ∈ {0.000,0.002,…,0.018}
// — and returns every evaluated point sorted ascending by oracle cost
// (index 0 is the winner). The instr_fraction axis is built with
// gonum/floats.Span rather than a hand-rolled float accumulation loop.
func SCASweep(in Input, cfg solver.CostConfig) ([]SCAResult, error) {
	mpkiGrid := intRange(0, 90, 10)
	parallelismGrid := intRange(0, 9, 1)
	instrGrid := floats.Span(make([]float64, 10), 0.000, 0.018)

	results := make([]SCAResult, 0, len(mpkiGrid)*len(parallelismGrid)*len(instrGrid))
	for _, mpki := range mpkiGrid {
		for _, par := range parallelismGrid {
			for _, frac := range instrGrid {
				d := scaDecide(in, float64(mpki), par, frac)
				b, err := in.evaluate(cfg, d)
				if err != nil {
					return nil, err
				}
				results = append(results, SCAResult{
					Decision:             d,
					Breakdown:            b,
					MPKIThreshold:        mpki,
					ParallelismThreshold: par,
					InstrFraction:        frac,
				})
			}
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Breakdown.Total() < results[j].Breakdown.Total()
	})
	return results, nil
}

// SCA runs the full sweep and returns only the winning assignment (spec
// §4.7 "Retain the assignment with minimum oracle cost").
func SCA(in Input, cfg solver.CostConfig) (solver.Decision, cost.Breakdown, error) {
	results, err := SCASweep(in, cfg)
	if err != nil {
		return nil, cost.Breakdown{}, err
	}
	if len(results) == 0 {
		return nil, cost.Breakdown{}, fmt.Errorf("SCA sweep produced an empty grid")
	}
	best := results[0]
	return best.Decision, best.Breakdown, nil
}

func scaDecide(in Input, mpkiThreshold float64, parallelismThreshold int, instrFraction float64) solver.Decision {
	n := in.Pool.Len()
	d := solver.NewDecision(n, solver.CPU)

	var pimTotalInstr int64
	for i := 0; i < n; i++ {
		pimTotalInstr += in.Pool.PIM(solver.BblId(i)).InstructionCount
	}
	instrThreshold := instrFraction * float64(pimTotalInstr)

	for i := 0; i < n; i++ {
		id := solver.BblId(i)
		ps := in.Pool.PIM(id)
		if ps.BblHash == solver.HashGlobal {
			continue
		}
		if ps.MPKI() >= mpkiThreshold &&
			float64(ps.Parallelism()) >= float64(parallelismThreshold) &&
			float64(ps.InstructionCount) >= instrThreshold {
			d[i] = solver.PIM
		}
	}
	return d
}

func intRange(lo, hi, step int) []int {
	out := make([]int, 0, (hi-lo)/step+1)
	for v := lo; v <= hi; v += step {
		out = append(out, v)
	}
	return out
}
