package cost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/cost"
	"github.com/pimprof/solver/trie"
)

func hashN(n uint64) solver.BblHash { return solver.BblHash{Hi: 0, Lo: n} }

func poolOf(cpuTimes, pimTimes []solver.Cost) *solver.StatsPool {
	cpu := make(map[solver.BblHash]*solver.RunStats, len(cpuTimes))
	pim := make(map[solver.BblHash]*solver.RunStats, len(pimTimes))
	for i, t := range cpuTimes {
		h := hashN(uint64(i))
		cpu[h] = &solver.RunStats{BblHash: h, ElapsedTime: t, ThreadElapsedTime: []solver.Cost{t}}
	}
	for i, t := range pimTimes {
		h := hashN(uint64(i))
		pim[h] = &solver.RunStats{BblHash: h, ElapsedTime: t, ThreadElapsedTime: []solver.Cost{t}}
	}
	return solver.NewStatsPool(cpu, pim)
}

// Scenario 1: Two-BB trivial (spec §8.1).
func TestCost_TwoBBTrivial(t *testing.T) {
	pool := poolOf([]solver.Cost{100, 100}, []solver.Cost{50, 50})
	cfg := solver.DefaultCostConfig()
	tr := trie.New()
	st := solver.NewSwitchTable()

	d := solver.Decision{solver.PIM, solver.PIM}
	b, err := cost.Cost(cfg, pool, d, tr, st)
	require.NoError(t, err)
	assert.Equal(t, solver.Cost(100), b.Total())
}

// Scenario 2: monochromatic reuse segment contributes zero (spec §8.2).
func TestCost_MonochromaticReuseContributesZero(t *testing.T) {
	pool := poolOf([]solver.Cost{100, 100}, []solver.Cost{200, 200})
	cfg := solver.DefaultCostConfig()
	tr := trie.New()
	tr.Insert(trie.NewSegment([]solver.BblId{0, 1}, 10))
	st := solver.NewSwitchTable()

	d := solver.Decision{solver.CPU, solver.CPU}
	b, err := cost.Cost(cfg, pool, d, tr, st)
	require.NoError(t, err)
	assert.Equal(t, solver.Cost(0), b.ReuseCost)
	assert.Equal(t, solver.Cost(200), b.Total())
}

// Scenario 3: reuse forces grouping away from the naive greedy choice
// (spec §8.3). Greedy would pick [PIM, CPU] (cost 90060); a correct
// assignment that honors the reuse segment is [CPU, CPU] (cost 110).
func TestCost_ReuseForcesGrouping(t *testing.T) {
	pool := poolOf([]solver.Cost{100, 10}, []solver.Cost{50, 200})
	cfg := solver.DefaultCostConfig()
	tr := trie.New()
	tr.Insert(trie.NewSegment([]solver.BblId{0, 1}, 1000))
	st := solver.NewSwitchTable()

	greedy, err := cost.Cost(cfg, pool, solver.Decision{solver.PIM, solver.CPU}, tr, st)
	require.NoError(t, err)
	assert.Equal(t, solver.Cost(90060), greedy.Total())

	grouped, err := cost.Cost(cfg, pool, solver.Decision{solver.CPU, solver.CPU}, tr, st)
	require.NoError(t, err)
	assert.Equal(t, solver.Cost(110), grouped.Total())
	assert.Less(t, grouped.Total(), greedy.Total())
}

// Scenario 5: switch penalty must be weighed against per-site time
// (spec §8.5).
func TestCost_SwitchPenalty(t *testing.T) {
	pool := poolOf([]solver.Cost{100, 100}, []solver.Cost{90, 90})
	cfg := solver.DefaultCostConfig()
	tr := trie.New()
	st := solver.NewSwitchTable()
	st.Add(0, 1, 5)
	st.Add(1, 0, 5)

	split, err := cost.Cost(cfg, pool, solver.Decision{solver.PIM, solver.CPU}, tr, st)
	require.NoError(t, err)
	assert.Equal(t, solver.Cost(8190), split.Total())

	together, err := cost.Cost(cfg, pool, solver.Decision{solver.PIM, solver.PIM}, tr, st)
	require.NoError(t, err)
	assert.Equal(t, solver.Cost(180), together.Total())
}

// Invalid decision length is rejected rather than silently mis-indexing.
func TestCost_LengthMismatchIsError(t *testing.T) {
	pool := poolOf([]solver.Cost{100}, []solver.Cost{50})
	cfg := solver.DefaultCostConfig()
	tr := trie.New()
	st := solver.NewSwitchTable()

	_, err := cost.Cost(cfg, pool, solver.Decision{solver.CPU, solver.CPU}, tr, st)
	assert.Error(t, err)
}

// A switch row whose from-BblId is Invalid contributes zero (spec §4.3).
func TestCost_SwitchCost_InvalidFromContributesZero(t *testing.T) {
	pool := poolOf([]solver.Cost{10, 10}, []solver.Cost{10, 10})
	cfg := solver.DefaultCostConfig()
	st := solver.NewSwitchTable()
	st.Add(0, 1, 100)

	d := solver.Decision{solver.Invalid, solver.PIM}
	got := cost.SwitchCost(cfg, d, st)
	assert.Equal(t, solver.Cost(0), got)
}
