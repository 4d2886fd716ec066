package strategy

import (
	"sort"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/cost"
	"github.com/pimprof/solver/unionfind"
)

// CTSFromFile resolves the externally-supplied compile-time-scheduling
// decision file against the pool (spec §4.9: hash match uses the file's
// site, a Follower inherits its predecessor, an unnamed MAIN falls back to
// Greedy-style comparison, anything else defaults to CPU) and scores it
// against the oracle.
func CTSFromFile(in Input, cfg solver.CostConfig) (solver.Decision, cost.Breakdown, error) {
	d := in.CTS.Resolve(in.Pool)
	b, err := in.evaluate(cfg, d)
	return d, b, err
}

// SCAFromFile is CTSFromFile's counterpart for a manually-supplied SCA
// decision file (spec §4.9).
func SCAFromFile(in Input, cfg solver.CostConfig) (solver.Decision, cost.Breakdown, error) {
	d := in.SCA.Resolve(in.Pool)
	b, err := in.evaluate(cfg, d)
	return d, b, err
}

// RedecideSCAByCLDM implements spec §4.8: coalesce BblIds connected by
// heavy cache-line or register data movement into components, then
// recolor each component by majority vote of the seed decision's site.
//
//	total_cost(a,b) = CL[a,b]*(flush[CPU]+fetch[PIM]) + REG[a,b]*switch[CPU]
//
// Pairs are unioned when total_cost(a,b) >= dataMoveThreshold * top, where
// top is the maximum observed total_cost. A component is recolored PIM iff
// its PIM votes are at least half its non-PIM votes (so an untouched
// singleton always keeps the seed's own site).
func RedecideSCAByCLDM(cfg solver.CostConfig, dataMoveThreshold float64, n int, seed solver.Decision, cl, reg solver.InterBBTraffic) solver.Decision {
	type pairCost struct {
		pair solver.BblPair
		cost solver.Cost
	}

	seen := make(map[solver.BblPair]bool, len(cl)+len(reg))
	for p := range cl {
		seen[p] = true
	}
	for p := range reg {
		seen[p] = true
	}

	pairs := make([]pairCost, 0, len(seen))
	for p := range seen {
		c := solver.Cost(cl[p])*(cfg.Flush[solver.CPU]+cfg.Fetch[solver.PIM]) + solver.Cost(reg[p])*cfg.Switch[solver.CPU]
		pairs = append(pairs, pairCost{pair: p, cost: c})
	}

	result := seed.Clone()
	if len(pairs) == 0 {
		return result
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].cost > pairs[j].cost })
	top := pairs[0].cost

	ds := unionfind.New(n)
	for _, pc := range pairs {
		if pc.cost >= solver.Cost(dataMoveThreshold)*top {
			ds.Union(pc.pair.A, pc.pair.B)
		}
	}

	for _, comp := range ds.Components() {
		pimVotes, nonPimVotes := 0, 0
		for _, id := range comp {
			if seed[id] == solver.PIM {
				pimVotes++
			} else {
				nonPimVotes++
			}
		}
		site := solver.CPU
		if float64(pimVotes) >= float64(nonPimVotes)/2 {
			site = solver.PIM
		}
		for _, id := range comp {
			result[id] = site
		}
	}
	return result
}
