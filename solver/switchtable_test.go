package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pimprof/solver"
)

func TestSwitchTable_AddAccumulatesAndSorts(t *testing.T) {
	st := solver.NewSwitchTable()
	st.Add(5, 0, 1)
	st.Add(2, 1, 3)
	st.Add(5, 0, 2) // accumulate onto the same (from, to)

	rows := st.Rows()
	if assert.Len(t, rows, 2) {
		assert.Equal(t, solver.BblId(2), rows[0].From)
		assert.Equal(t, solver.BblId(5), rows[1].From)
		assert.Equal(t, int64(3), rows[0].To[1])
		assert.Equal(t, int64(3), rows[1].To[0])
	}
}

func TestSwitchTable_OutgoingFrom_AggregatesAcrossMembers(t *testing.T) {
	st := solver.NewSwitchTable()
	st.Add(0, 9, 4)
	st.Add(1, 9, 6)
	st.Add(1, 8, 1)

	agg := st.OutgoingFrom([]solver.BblId{0, 1})
	assert.Equal(t, int64(10), agg[9])
	assert.Equal(t, int64(1), agg[8])
}

func TestInterBBTraffic_AddSegmentAdjacent_SumsAdjacentPairsOnly(t *testing.T) {
	m := solver.InterBBTraffic{}
	m.AddSegmentAdjacent([]solver.BblId{0, 1, 2}, 10)
	assert.Equal(t, int64(10), m[solver.NewBblPair(0, 1)])
	assert.Equal(t, int64(10), m[solver.NewBblPair(1, 2)])
	assert.Equal(t, int64(0), m[solver.NewBblPair(0, 2)])
}

func TestNewBblPair_Normalizes(t *testing.T) {
	assert.Equal(t, solver.NewBblPair(1, 2), solver.NewBblPair(2, 1))
}
