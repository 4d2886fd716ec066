package strategy

import (
	"fmt"
	"sort"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/cost"
	"github.com/pimprof/solver/trie"
)

// maxBatchBits is the hard limit from spec §4.4 ("Permutation enumeration:
// |batch| < 64 is required").
const maxBatchBits = 64

// reuseOptions parameterizes the three near-identical Reuse routines
// spec §9 calls out as "dead/duplicated strategies": the production
// sweep-all-seeds variant, the Hierarchical-Debug variant (no seed sweep),
// and the StartFromUnimportant variant (no switch-table widening).
type reuseOptions struct {
	seeds      []solver.CostSite
	widenBatch bool
}

// Reuse is the production strategy (spec §4.4): tries all three seed
// initializations and keeps the globally best outcome. Implementers are
// told to prefer this variant as the default solver path.
func Reuse(in Input, cfg solver.CostConfig) (solver.Decision, cost.Breakdown, error) {
	return runReuse(in, cfg, reuseOptions{
		seeds:      []solver.CostSite{solver.CPU, solver.PIM, solver.Invalid},
		widenBatch: true,
	})
}

// ReuseHierarchicalDebug omits the seed sweep, running the batch+refine
// procedure once from an all-Invalid seed (spec §9, §4.4 "Hierarchical-
// Debug variant"). Kept as a labeled, non-default variant for reference and
// comparison testing — never wired into the CLI's default path.
func ReuseHierarchicalDebug(in Input, cfg solver.CostConfig) (solver.Decision, cost.Breakdown, error) {
	return runReuse(in, cfg, reuseOptions{
		seeds:      []solver.CostSite{solver.Invalid},
		widenBatch: true,
	})
}

// ReuseStartFromUnimportant omits the switch-table widening of step 2c
// (spec §9, §4.4 "StartFromUnimportant variant"). Kept as a labeled,
// non-default variant.
func ReuseStartFromUnimportant(in Input, cfg solver.CostConfig) (solver.Decision, cost.Breakdown, error) {
	return runReuse(in, cfg, reuseOptions{
		seeds:      []solver.CostSite{solver.CPU, solver.PIM, solver.Invalid},
		widenBatch: false,
	})
}

func runReuse(in Input, cfg solver.CostConfig, opts reuseOptions) (solver.Decision, cost.Breakdown, error) {
	var best solver.Decision
	var bestBreakdown cost.Breakdown
	haveBest := false

	for _, seed := range opts.seeds {
		d, err := reusePass(in, cfg, seed, opts.widenBatch)
		if err != nil {
			return nil, cost.Breakdown{}, err
		}
		b, err := in.evaluate(cfg, d)
		if err != nil {
			return nil, cost.Breakdown{}, err
		}
		if !haveBest || b.Total() < bestBreakdown.Total() {
			best, bestBreakdown, haveBest = d, b, true
		}
	}
	return best, bestBreakdown, nil
}

// reusePass runs one full seed's worth of §4.4 steps 1-4 and returns the
// resulting Decision (not yet re-evaluated against the caller's breakdown —
// callers re-run the oracle themselves so every seed is scored identically).
func reusePass(in Input, cfg solver.CostConfig, seed solver.CostSite, widenBatch bool) (solver.Decision, error) {
	n := in.Pool.Len()
	d := solver.NewDecision(n, seed)

	unit := cfg.SingleSegMaxReuseCost()
	leaves := in.Trie.Leaves(unit)

	minElapsed := minCost(
		cost.SiteTime(in.Pool, solver.NewDecision(n, solver.CPU), solver.CPU),
		cost.SiteTime(in.Pool, solver.NewDecision(n, solver.PIM), solver.PIM),
	)
	cutoff := solver.Cost(cfg.BatchThreshold) * minElapsed

	// Step 1: find the tail — first leaf whose importance drops below cutoff.
	tail := len(leaves)
	for i, leaf := range leaves {
		importance := solver.Cost(leaf.Count()) * unit
		if importance < cutoff {
			tail = i
			break
		}
	}

	partial := trie.New()

	// Step 2: iterate leaves from the tail back toward the most important.
	for i := tail - 1; i >= 0; i-- {
		leaf := leaves[i]
		seg := trie.ExportSegment(leaf)
		partial.Insert(seg)

		if len(seg.Members) >= cfg.BatchSize {
			continue // too wide to exhaustively enumerate
		}

		batch := append([]solver.BblId(nil), seg.Members...)
		if widenBatch {
			batch = widenBatchWithSwitchTable(batch, in.Switch, cfg.BatchSize)
		}
		if len(batch) == 0 || len(batch) >= maxBatchBits {
			continue
		}

		if err := permuteAndCommit(cfg, in, partial, d, batch); err != nil {
			return nil, err
		}
	}

	// Step 3: greedy-fill any BblId still Invalid.
	d.FillGreedy(in.Pool)

	// Step 4: two passes of strict-improvement local refinement.
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < n; i++ {
			before, err := in.evaluate(cfg, d)
			if err != nil {
				return nil, err
			}
			flipped := d.Clone()
			flipped[i] = flipped[i].Other()
			after, err := in.evaluate(cfg, flipped)
			if err != nil {
				return nil, err
			}
			if after.Total() < before.Total() {
				d = flipped
			}
		}
	}

	if d.HasInvalid() {
		return nil, fmt.Errorf("reuse strategy left bblid(s) unassigned after greedy fill")
	}
	return d, nil
}

// widenBatchWithSwitchTable implements spec §4.4 step 2c: collect outgoing
// switch counts from the segment's members, aggregate by to-bblid, and add
// the hottest candidates until the batch reaches batchSize (or runs out).
func widenBatchWithSwitchTable(segment []solver.BblId, table *solver.SwitchTable, batchSize int) []solver.BblId {
	inBatch := make(map[solver.BblId]bool, len(segment))
	batch := append([]solver.BblId(nil), segment...)
	for _, id := range batch {
		inBatch[id] = true
	}

	agg := table.OutgoingFrom(segment)
	type candidate struct {
		id    solver.BblId
		count int64
	}
	cands := make([]candidate, 0, len(agg))
	for id, c := range agg {
		if inBatch[id] {
			continue
		}
		cands = append(cands, candidate{id, c})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].count != cands[j].count {
			return cands[i].count > cands[j].count
		}
		return cands[i].id < cands[j].id
	})

	for _, c := range cands {
		if len(batch) >= batchSize {
			break
		}
		batch = append(batch, c.id)
		inBatch[c.id] = true
	}
	return batch
}

// permuteAndCommit enumerates all 2^|batch| assignments restricted to
// batch members (rest of d held fixed), evaluates the oracle against the
// partial trie and the full switch table, and commits the argmin back into
// d. Iteration is descending over permute so that on a cost tie the later-
// tried (lower permute) assignment wins (spec §4.4 "Determinism").
func permuteAndCommit(cfg solver.CostConfig, in Input, partial *trie.Trie, d solver.Decision, batch []solver.BblId) error {
	k := len(batch)
	total := 1 << uint(k)

	working := d.Clone()
	var bestPermute int
	var bestCost solver.Cost
	haveBest := false

	for permute := total - 1; permute >= 0; permute-- {
		for j, id := range batch {
			if permute&(1<<uint(j)) != 0 {
				working[id] = solver.PIM
			} else {
				working[id] = solver.CPU
			}
		}
		b, err := cost.Cost(cfg, in.Pool, working, partial, in.Switch)
		if err != nil {
			return err
		}
		if !haveBest || b.Total() <= bestCost {
			bestCost, bestPermute, haveBest = b.Total(), permute, true
		}
	}

	for j, id := range batch {
		if bestPermute&(1<<uint(j)) != 0 {
			d[id] = solver.PIM
		} else {
			d[id] = solver.CPU
		}
	}
	return nil
}

func minCost(a, b solver.Cost) solver.Cost {
	if a < b {
		return a
	}
	return b
}
