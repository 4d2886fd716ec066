package solver

import "sort"

// StatsPool owns all RunStats for one solver run. It replaces the original's
// parallel raw-pointer hash maps (design note, spec §9 "Cyclic ownership
// between CPU/PIM stats maps") with two slices (cpu, pim) indexed by the
// same BblId plus one hash lookup shared by both.
type StatsPool struct {
	byHash map[BblHash]BblId
	cpu    []*RunStats
	pim    []*RunStats
}

// NewStatsPool builds a pool by aligning independently-ingested CPU and PIM
// stats maps (spec §4.1 "Alignment"). It sorts CPU entries by BblHash
// ascending, assigns BblIds 0..n-1 in that order, and fills in zero-valued
// placeholders on either side for hashes missing from the other site.
// Alignment is deterministic and idempotent: re-running NewStatsPool on the
// same inputs yields the same assignment.
func NewStatsPool(cpuByHash, pimByHash map[BblHash]*RunStats) *StatsPool {
	hashes := make([]BblHash, 0, len(cpuByHash)+len(pimByHash))
	seen := make(map[BblHash]bool, len(cpuByHash)+len(pimByHash))
	for h := range cpuByHash {
		if !seen[h] {
			seen[h] = true
			hashes = append(hashes, h)
		}
	}
	// PIM-only hashes (no CPU sighting) still need a BblId; they sort after
	// all CPU hashes to keep the common case (CPU-ordered ids) stable.
	pimOnly := make([]BblHash, 0)
	for h := range pimByHash {
		if !seen[h] {
			seen[h] = true
			pimOnly = append(pimOnly, h)
		}
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i].Less(hashes[j]) })
	sort.Slice(pimOnly, func(i, j int) bool { return pimOnly[i].Less(pimOnly[j]) })
	hashes = append(hashes, pimOnly...)

	p := &StatsPool{
		byHash: make(map[BblHash]BblId, len(hashes)),
		cpu:    make([]*RunStats, len(hashes)),
		pim:    make([]*RunStats, len(hashes)),
	}
	for i, h := range hashes {
		id := BblId(i)
		p.byHash[h] = id

		cs, ok := cpuByHash[h]
		if !ok {
			cs = placeholderStats(id, h)
		}
		cs.BblId = id
		p.cpu[i] = cs

		ps, ok := pimByHash[h]
		if !ok {
			ps = placeholderStats(id, h)
		}
		ps.BblId = id
		p.pim[i] = ps
	}
	return p
}

// Len returns the number of aligned BblIds.
func (p *StatsPool) Len() int { return len(p.cpu) }

// CPU returns the CPU-site RunStats for id.
func (p *StatsPool) CPU(id BblId) *RunStats { return p.cpu[id] }

// PIM returns the PIM-site RunStats for id.
func (p *StatsPool) PIM(id BblId) *RunStats { return p.pim[id] }

// IDFor looks up the BblId assigned to a BblHash, if any.
func (p *StatsPool) IDFor(h BblHash) (BblId, bool) {
	id, ok := p.byHash[h]
	return id, ok
}

// Hash returns the BblHash for id (identical on both projections post-alignment).
func (p *StatsPool) Hash(id BblId) BblHash { return p.cpu[id].BblHash }

// Stats returns the RunStats for id on the given site (CPU or PIM only).
func (p *StatsPool) Stats(id BblId, site CostSite) *RunStats {
	if site == PIM {
		return p.pim[id]
	}
	return p.cpu[id]
}

// Aligned reports whether the alignment invariant holds (spec §8): equal
// lengths and identical (BblId, BblHash) at every index on both sides.
func (p *StatsPool) Aligned() bool {
	if len(p.cpu) != len(p.pim) {
		return false
	}
	for i := range p.cpu {
		if p.cpu[i].BblHash != p.pim[i].BblHash {
			return false
		}
		if p.cpu[i].BblId != BblId(i) || p.pim[i].BblId != BblId(i) {
			return false
		}
	}
	return true
}
