package solver

// BblPair is an unordered pair of BblIds, normalized so A <= B, used as the
// key for the inter-BBL data-movement maps (spec §3 "InterBB data-movement
// maps").
type BblPair struct {
	A, B BblId
}

// NewBblPair normalizes (x, y) into a BblPair with A <= B.
func NewBblPair(x, y BblId) BblPair {
	if x > y {
		x, y = y, x
	}
	return BblPair{A: x, B: y}
}

// InterBBTraffic accumulates a count per unordered BblId pair. Two
// instances are populated during reuse-file parsing:
//   - CL (interBB_CL_DM): cache-line traffic, summed over adjacent members
//     of each reuse segment.
//   - REG (interBB_REG_DM): register/context-transfer traffic, summed over
//     each observed (from, to) switch-table pair.
type InterBBTraffic map[BblPair]int64

// Add accumulates count onto the pair (x, y).
func (m InterBBTraffic) Add(x, y BblId, count int64) {
	m[NewBblPair(x, y)] += count
}

// AddSegmentAdjacent sums count onto every adjacent-member pair of a reuse
// segment's members, in insertion order (spec §3 "sums reuse-segment
// counts over adjacent members of each segment").
func (m InterBBTraffic) AddSegmentAdjacent(members []BblId, count int64) {
	for i := 0; i+1 < len(members); i++ {
		m.Add(members[i], members[i+1], count)
	}
}
