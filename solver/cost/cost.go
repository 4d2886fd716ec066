// Package cost implements the composite cost oracle (spec §4.3): the
// canonical function every strategy's own cost breakdown is checked
// against (spec §7 "Logic invariants").
package cost

import (
	"fmt"
	"sort"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/trie"
)

// Breakdown carries every term of the oracle so a strategy's self-check is
// a single struct comparison rather than a re-derivation (SPEC_FULL §7).
type Breakdown struct {
	CPUTime    solver.Cost
	PIMTime    solver.Cost
	ReuseCost  solver.Cost
	SwitchCost solver.Cost
}

// Total is the sum of all four terms — the canonical oracle value.
func (b Breakdown) Total() solver.Cost {
	return b.CPUTime + b.PIMTime + b.ReuseCost + b.SwitchCost
}

// SiteTime sums MaxElapsedTime over every BblId assigned to site under d
// (spec §4.3 "Site-time").
func SiteTime(pool *solver.StatsPool, d solver.Decision, site solver.CostSite) solver.Cost {
	var total solver.Cost
	for i, s := range d {
		if s != site {
			continue
		}
		total += pool.Stats(solver.BblId(i), site).MaxElapsedTime()
	}
	return total
}

// SwitchCost sums, over every switch-table row, c * cfg.Switch[D[from]] for
// every (to, c) pair where D[from] != D[to]. A row whose from-BblId is
// still Invalid contributes zero (spec §4.3 "Switch cost").
func SwitchCost(cfg solver.CostConfig, d solver.Decision, table *solver.SwitchTable) solver.Cost {
	var total solver.Cost
	for _, row := range table.Rows() {
		from := d[row.From]
		if from == solver.Invalid {
			continue
		}
		for to, c := range row.To {
			if from != d[to] {
				total += solver.Cost(c) * cfg.Switch[from]
			}
		}
	}
	return total
}

// ReuseContribution records which trie leaf charged reuse cost and why, for
// the verbose diagnostics trace (SPEC_FULL "ReuseCostPrint"/"TrieBFS with
// ofs param" supplement).
type ReuseContribution struct {
	Head  solver.BblId
	Count int64
	Site  solver.CostSite
	Cost  solver.Cost
}

// ReuseCost traverses t and charges, for every non-monochromatic segment, a
// single term at its leaf: leaf.count * (flush[s] + fetch[other(s)]) where
// s is the leaf's own site. isDifferent is threaded down from root's
// children exactly as spec §4.3 describes: it becomes true the first time
// two adjacent nodes on a path disagree in D, and stays true for the rest
// of that path (spec invariant: a monochromatic segment contributes 0).
func ReuseCost(cfg solver.CostConfig, d solver.Decision, t *trie.Trie) solver.Cost {
	var total solver.Cost
	for id, child := range t.Root().Children() {
		total += walkReuse(cfg, d, id, child, false, nil)
	}
	return total
}

// ReuseCostTrace is ReuseCost's verbose sibling: it also returns every
// non-zero contribution, in deterministic BblId order. The CLI does not
// call it.
func ReuseCostTrace(cfg solver.CostConfig, d solver.Decision, t *trie.Trie) (solver.Cost, []ReuseContribution) {
	var total solver.Cost
	var contribs []ReuseContribution
	for _, id := range sortedChildIDs(t.Root()) {
		total += walkReuse(cfg, d, id, t.Root().Children()[id], false, &contribs)
	}
	return total, contribs
}

func walkReuse(cfg solver.CostConfig, d solver.Decision, bblid solver.BblId, node *trie.Node, isDifferent bool, trace *[]ReuseContribution) solver.Cost {
	var total solver.Cost
	if node.IsLeaf() && isDifferent {
		site := d[bblid]
		c := solver.Cost(node.Count()) * (cfg.Flush[site] + cfg.Fetch[site.Other()])
		total += c
		if trace != nil {
			*trace = append(*trace, ReuseContribution{Head: bblid, Count: node.Count(), Site: site, Cost: c})
		}
	}
	var ids []solver.BblId
	if trace != nil {
		ids = sortedChildIDs(node)
	} else {
		for id := range node.Children() {
			ids = append(ids, id)
		}
	}
	for _, childID := range ids {
		child := node.Children()[childID]
		childDifferent := isDifferent || d[bblid] != d[childID]
		total += walkReuse(cfg, d, childID, child, childDifferent, trace)
	}
	return total
}

func sortedChildIDs(n *trie.Node) []solver.BblId {
	ids := make([]solver.BblId, 0, len(n.Children()))
	for id := range n.Children() {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Cost computes the canonical oracle: CPUTime + PIMTime + ReuseCost +
// SwitchCost (spec §4.3 "Total"). Final-answer callers should first check
// d.Validate(); partial-trie evaluation during strategy construction may
// still pass a Decision containing Invalid entries (those slots simply
// never match CPU or PIM in SiteTime/SwitchCost, per spec §4.3's note that
// the oracle "tolerates" Invalid for partial evaluation).
func Cost(cfg solver.CostConfig, pool *solver.StatsPool, d solver.Decision, t *trie.Trie, table *solver.SwitchTable) (Breakdown, error) {
	if len(d) != pool.Len() {
		return Breakdown{}, fmt.Errorf("decision length %d does not match pool length %d", len(d), pool.Len())
	}
	return Breakdown{
		CPUTime:    SiteTime(pool, d, solver.CPU),
		PIMTime:    SiteTime(pool, d, solver.PIM),
		ReuseCost:  ReuseCost(cfg, d, t),
		SwitchCost: SwitchCost(cfg, d, table),
	}, nil
}
