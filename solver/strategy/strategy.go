// Package strategy implements the site-assignment algorithms of spec §4.4–
// §4.9: MPKI, Greedy, Reuse (batched permutation search + local search),
// CTS/SCA-from-file, and the SCA parameter sweep with cache-line-traffic
// coalescing.
//
// Every strategy shares one input shape (spec §9 "Model strategies as
// tagged variants") and returns a concrete Decision plus the cost.Breakdown
// the reporter consumes uniformly.
package strategy

import (
	"github.com/pimprof/solver"
	"github.com/pimprof/solver/cost"
	"github.com/pimprof/solver/trie"
)

// Input bundles everything a strategy needs: the aligned stats pool, the
// reuse trie, the switch-count table, and any externally-supplied decision
// files (CTS/SCA), per SPEC_FULL's "Input struct".
type Input struct {
	Pool   *solver.StatsPool
	Trie   *trie.Trie
	Switch *solver.SwitchTable
	CTS    solver.DecisionFromFile
	SCA    solver.DecisionFromFile
}

// evaluate computes the canonical oracle breakdown for a completed decision
// against the full trie and switch table.
func (in Input) evaluate(cfg solver.CostConfig, d solver.Decision) (cost.Breakdown, error) {
	return cost.Cost(cfg, in.Pool, d, in.Trie, in.Switch)
}
