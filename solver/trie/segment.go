// Package trie implements the reuse trie (spec §3/§4.2): a prefix tree over
// sequences of BblIds where a root-to-leaf path spells one cache-line reuse
// segment, and common prefixes across segments are merged.
package trie

import "github.com/pimprof/solver"

// Segment is an unordered set of BblIds (in first-insertion order, with
// duplicates suppressed) plus a distinguished Head and an occurrence Count
// (spec §3 "ReuseSegment").
type Segment struct {
	Head    solver.BblId
	Members []solver.BblId // insertion order, deduplicated
	Count   int64
}

// NewSegment builds a Segment from bblids in encounter order, deduplicating
// and recording the first id as Head.
func NewSegment(bblids []solver.BblId, count int64) Segment {
	seen := make(map[solver.BblId]bool, len(bblids))
	members := make([]solver.BblId, 0, len(bblids))
	for _, id := range bblids {
		if seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, id)
	}
	var head solver.BblId
	if len(members) > 0 {
		head = members[0]
	}
	return Segment{Head: head, Members: members, Count: count}
}
