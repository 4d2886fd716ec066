package solver

import "sort"

// SwitchCountRow is the sparse to→count mapping for one from-BblId (spec §3
// "SwitchCountRow").
type SwitchCountRow struct {
	From BblId
	To   map[BblId]int64
}

// SwitchTable is an ordered sequence of rows, sorted by From after
// ingestion for deterministic traversal (spec §3 "SwitchCountTable").
type SwitchTable struct {
	rows    []SwitchCountRow
	byFrom  map[BblId]int
	sorted  bool
}

// NewSwitchTable returns an empty table ready for Add.
func NewSwitchTable() *SwitchTable {
	return &SwitchTable{byFrom: make(map[BblId]int)}
}

// Add accumulates count into the (from, to) cell, creating the row if
// needed. The table is marked unsorted; call Finalize before traversal.
func (t *SwitchTable) Add(from, to BblId, count int64) {
	if count < 0 {
		panic("switch count must be non-negative; caller must validate before Add")
	}
	idx, ok := t.byFrom[from]
	if !ok {
		idx = len(t.rows)
		t.byFrom[from] = idx
		t.rows = append(t.rows, SwitchCountRow{From: from, To: make(map[BblId]int64)})
	}
	t.rows[idx].To[to] += count
	t.sorted = false
}

// Finalize sorts rows by From ascending, matching spec §3's "sorted by
// from_bblid for deterministic traversal".
func (t *SwitchTable) Finalize() {
	if t.sorted {
		return
	}
	sort.Slice(t.rows, func(i, j int) bool { return t.rows[i].From < t.rows[j].From })
	t.byFrom = make(map[BblId]int, len(t.rows))
	for i, r := range t.rows {
		t.byFrom[r.From] = i
	}
	t.sorted = true
}

// Rows returns the sorted rows. Callers must not mutate the returned slice.
func (t *SwitchTable) Rows() []SwitchCountRow {
	t.Finalize()
	return t.rows
}

// Row returns the row for a given from-id, if present.
func (t *SwitchTable) Row(from BblId) (SwitchCountRow, bool) {
	t.Finalize()
	idx, ok := t.byFrom[from]
	if !ok {
		return SwitchCountRow{}, false
	}
	return t.rows[idx], true
}

// OutgoingFrom aggregates (to_bblid -> count) across every row whose From
// is in members, used by the §4.4 batch-widening step (2c) to find the
// hottest successors of a reuse segment without strategy code re-scanning
// the table itself.
func (t *SwitchTable) OutgoingFrom(members []BblId) map[BblId]int64 {
	t.Finalize()
	agg := make(map[BblId]int64)
	for _, m := range members {
		row, ok := t.Row(m)
		if !ok {
			continue
		}
		for to, c := range row.To {
			agg[to] += c
		}
	}
	return agg
}
