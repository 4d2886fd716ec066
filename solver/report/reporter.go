// Package report renders the solver's final decision table and diagnostic
// subsections (spec §4.10): the per-BBL table, top-N offenders under the
// primary strategy and under SCA, the "Incorrect CPU/PIM Decisions" tables,
// and the "Optimize potential" ratio.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/cost"
)

// HorizontalLine opens the report, matching the table framing used
// throughout the stats/reuse file formats (solver/parse.HorizontalLine).
const HorizontalLine = "===================================================================="

// topNFraction is the §4.10 threshold for the "top offenders" subsections:
// a BBL is listed iff its max-elapsed time under that strategy exceeds this
// fraction of the strategy's total cost.
const topNFraction = 0.005

// incorrectThresholdStart and incorrectThresholdShrink implement §4.10's
// "threshold starts at 1e7 and shrinks by 10x until the set is non-empty".
const incorrectThresholdStart = solver.Cost(1e7)
const incorrectThresholdShrink = 10
const maxThresholdShrinks = 30

// Input bundles everything the reporter needs: the aligned pool, the
// primary strategy's decision and breakdown, and the optional CTS/SCA
// decisions used for the diff columns and the SCA top-N subsection.
type Input struct {
	Pool        *solver.StatsPool
	PrimaryName string
	Primary     solver.Decision
	PrimaryCost cost.Breakdown

	HasCTS bool
	CTS    solver.Decision

	HasSCA  bool
	SCA     solver.Decision
	SCACost cost.Breakdown
}

// Write renders the full report to w; diag receives diagnostic notes (e.g.
// the threshold-shrink trace) on a separate sink per spec §7 so they never
// interleave with the structured table.
func Write(w io.Writer, diag io.Writer, in Input) error {
	if err := in.Primary.Validate(); err != nil {
		return fmt.Errorf("report: primary decision: %w", err)
	}

	writeTable(w, in)
	writeTopN(w, "Primary strategy top offenders", in.Pool, in.Primary, in.PrimaryCost.Total())
	if in.HasSCA {
		writeTopN(w, "SCA top offenders", in.Pool, in.SCA, in.SCACost.Total())
	}
	writeIncorrect(w, diag, in.Pool, in.Primary, "primary")
	if in.HasSCA {
		writeIncorrect(w, diag, in.Pool, in.SCA, "SCA")
	}
	writeOptimizePotential(w, in.Pool, in.Primary, in.PrimaryCost)
	return nil
}

func writeTable(w io.Writer, in Input) {
	fmt.Fprintln(w, HorizontalLine)
	fmt.Fprintf(w, "%7s%10s%12s%12s%12s%10s%15s%15s%15s%18s%18s\n",
		"BBLID", "Decision", "ctsDecision", "scaDecision", "Parallelism", "bbCount",
		"CPU", "PIM", "Difference", "Hash(hi)", "Hash(lo)")

	for i := 0; i < in.Pool.Len(); i++ {
		id := solver.BblId(i)
		hash := in.Pool.Hash(id)
		cpuStats := in.Pool.CPU(id)
		pimStats := in.Pool.PIM(id)
		diff := cpuStats.MaxElapsedTime() - pimStats.MaxElapsedTime()

		cts := "-"
		if in.HasCTS {
			cts = in.CTS[i].String()
		}
		sca := "-"
		if in.HasSCA {
			sca = in.SCA[i].String()
		}

		fmt.Fprintf(w, "%7d%10s%12s%12s%12d%10d%15.2f%15.2f%15.2f%18s%18s\n",
			i, in.Primary[i].String(), cts, sca,
			pimStats.Parallelism(), cpuStats.InstructionCount,
			float64(cpuStats.MaxElapsedTime()), float64(pimStats.MaxElapsedTime()), float64(diff),
			fmt.Sprintf("%016x", hash.Hi), fmt.Sprintf("%016x", hash.Lo))
	}
}

type offender struct {
	id  solver.BblId
	max solver.Cost
}

func writeTopN(w io.Writer, title string, pool *solver.StatsPool, d solver.Decision, total solver.Cost) {
	cutoff := solver.Cost(topNFraction) * total

	var offenders []offender
	for i := 0; i < pool.Len(); i++ {
		id := solver.BblId(i)
		m := pool.Stats(id, d[i]).MaxElapsedTime()
		if m > cutoff {
			offenders = append(offenders, offender{id: id, max: m})
		}
	}
	sort.Slice(offenders, func(i, j int) bool { return offenders[i].max < offenders[j].max })

	fmt.Fprintln(w, HorizontalLine)
	fmt.Fprintf(w, "%s (> %.4f of total cost %.2f)\n", title, topNFraction, float64(total))
	for _, o := range offenders {
		fmt.Fprintf(w, "  bblid %d: max_elapsed_time=%.2f\n", o.id, float64(o.max))
	}
}

func writeIncorrect(w io.Writer, diag io.Writer, pool *solver.StatsPool, d solver.Decision, label string) {
	incorrect, threshold, shrinks := findIncorrect(pool, d)
	fmt.Fprintf(diag, "incorrect-decisions[%s]: settled at threshold=%.0e after %d shrink(s)\n", label, float64(threshold), shrinks)

	fmt.Fprintln(w, HorizontalLine)
	fmt.Fprintf(w, "Incorrect CPU/PIM Decisions (%s, threshold=%.0e)\n", label, float64(threshold))
	for _, i := range incorrect {
		id := solver.BblId(i)
		diff := pool.CPU(id).MaxElapsedTime() - pool.PIM(id).MaxElapsedTime()
		fmt.Fprintf(w, "  bblid %d: decision=%s diff=%.2f\n", i, d[i].String(), float64(diff))
	}
}

// findIncorrect implements the §4.10 shrinking-threshold search: a BBL is
// "incorrect" if |cpu_time - pim_time| exceeds the current threshold and
// its decision disagrees with the cheaper site. Threshold starts at 1e7 and
// shrinks by 10x until the incorrect set is non-empty (bounded by
// maxThresholdShrinks to guarantee termination on an all-tied input).
func findIncorrect(pool *solver.StatsPool, d solver.Decision) ([]int, solver.Cost, int) {
	threshold := incorrectThresholdStart
	for shrink := 0; shrink < maxThresholdShrinks; shrink++ {
		var incorrect []int
		for i := 0; i < pool.Len(); i++ {
			id := solver.BblId(i)
			diff := pool.CPU(id).MaxElapsedTime() - pool.PIM(id).MaxElapsedTime()
			if solver.Cost(math.Abs(float64(diff))) <= threshold {
				continue
			}
			expectPIM := diff > 0 // pim strictly cheaper
			isPIM := d[i] == solver.PIM
			if expectPIM != isPIM {
				incorrect = append(incorrect, i)
			}
		}
		if len(incorrect) > 0 {
			return incorrect, threshold, shrink
		}
		threshold /= incorrectThresholdShrink
	}
	return nil, threshold, maxThresholdShrinks
}

func writeOptimizePotential(w io.Writer, pool *solver.StatsPool, d solver.Decision, b cost.Breakdown) {
	incorrect, _, _ := findIncorrect(pool, d)
	var sumDiff solver.Cost
	for _, i := range incorrect {
		id := solver.BblId(i)
		diff := pool.CPU(id).MaxElapsedTime() - pool.PIM(id).MaxElapsedTime()
		sumDiff += solver.Cost(math.Abs(float64(diff)))
	}

	denom := b.CPUTime + b.PIMTime
	var ratio float64
	if denom != 0 {
		ratio = float64(sumDiff) / float64(denom)
	}

	fmt.Fprintln(w, HorizontalLine)
	fmt.Fprintf(w, "Optimize potential: %.6f\n", ratio)
}
