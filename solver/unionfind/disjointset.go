// Package unionfind implements a path-compressed, union-by-rank disjoint-set
// over BblIds, used by the SCA cache-line-traffic coalescing strategy
// (spec §3/§4.8).
package unionfind

import (
	"fmt"
	"sort"

	"github.com/pimprof/solver"
)

// DisjointSet is classical union-find over solver.BblId.
type DisjointSet struct {
	parent []solver.BblId
	rank   []int
}

// New returns a DisjointSet over ids 0..n-1, each its own singleton set.
func New(n int) *DisjointSet {
	ds := &DisjointSet{
		parent: make([]solver.BblId, n),
		rank:   make([]int, n),
	}
	for i := range ds.parent {
		ds.parent[i] = solver.BblId(i)
	}
	return ds
}

// Find returns the representative of id's set, compressing the path
// traversed.
func (ds *DisjointSet) Find(id solver.BblId) solver.BblId {
	if ds.parent[id] != id {
		ds.parent[id] = ds.Find(ds.parent[id])
	}
	return ds.parent[id]
}

// Union merges the sets containing a and b, attaching the lower-rank root
// under the higher-rank one.
func (ds *DisjointSet) Union(a, b solver.BblId) {
	ra, rb := ds.Find(a), ds.Find(b)
	if ra == rb {
		return
	}
	if ds.rank[ra] < ds.rank[rb] {
		ra, rb = rb, ra
	}
	ds.parent[rb] = ra
	if ds.rank[ra] == ds.rank[rb] {
		ds.rank[ra]++
	}
}

// Components groups every id by its set representative, returning the
// groups sorted by representative id for deterministic iteration.
func (ds *DisjointSet) Components() [][]solver.BblId {
	groups := make(map[solver.BblId][]solver.BblId)
	for i := range ds.parent {
		id := solver.BblId(i)
		root := ds.Find(id)
		groups[root] = append(groups[root], id)
	}
	roots := make([]solver.BblId, 0, len(groups))
	for r := range groups {
		roots = append(roots, r)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	out := make([][]solver.BblId, 0, len(roots))
	for _, r := range roots {
		out = append(out, groups[r])
	}
	return out
}

// String renders each component for the diagnostics sink (supplemented
// from original_source's PrintDisjointSets, CostSolver.h line 263).
func (ds *DisjointSet) String() string {
	s := ""
	for i, comp := range ds.Components() {
		s += fmt.Sprintf("component %d: %v\n", i, comp)
	}
	return s
}
