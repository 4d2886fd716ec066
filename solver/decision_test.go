package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimprof/solver"
)

func TestDecision_Validate_RejectsInvalidAndFollower(t *testing.T) {
	require.Error(t, solver.Decision{solver.CPU, solver.Invalid}.Validate())
	require.Error(t, solver.Decision{solver.CPU, solver.Follower}.Validate())
	require.NoError(t, solver.Decision{solver.CPU, solver.PIM}.Validate())
}

func TestDecision_FillGreedy_PicksCheaperSite(t *testing.T) {
	h0, h1 := solver.BblHash{Lo: 0}, solver.BblHash{Lo: 1}
	cpu := map[solver.BblHash]*solver.RunStats{
		h0: {BblHash: h0, ThreadElapsedTime: []solver.Cost{100}},
		h1: {BblHash: h1, ThreadElapsedTime: []solver.Cost{10}},
	}
	pim := map[solver.BblHash]*solver.RunStats{
		h0: {BblHash: h0, ThreadElapsedTime: []solver.Cost{50}},
		h1: {BblHash: h1, ThreadElapsedTime: []solver.Cost{10}},
	}
	pool := solver.NewStatsPool(cpu, pim)

	d := solver.NewDecision(2, solver.Invalid)
	d.FillGreedy(pool)
	assert.Equal(t, solver.PIM, d[0]) // 50 < 100
	assert.Equal(t, solver.CPU, d[1]) // tie -> CPU
}

// Scenario 6: Follower resolution (spec §8.6).
func TestDecisionFromFile_Resolve_FollowerInheritsPredecessor(t *testing.T) {
	h0 := solver.BblHash{Lo: 0}
	h1 := solver.BblHash{Lo: 1}
	h2 := solver.BblHash{Lo: 2}
	h3 := solver.BblHash{Lo: 3}

	stats := map[solver.BblHash]*solver.RunStats{
		h0: {BblHash: h0, ThreadElapsedTime: []solver.Cost{1}},
		h1: {BblHash: h1, ThreadElapsedTime: []solver.Cost{1}},
		h2: {BblHash: h2, ThreadElapsedTime: []solver.Cost{1}},
		h3: {BblHash: h3, ThreadElapsedTime: []solver.Cost{1}},
	}
	// Force BblId order h0,h1,h2,h3 by construction order since hashes sort by Lo.
	pool := solver.NewStatsPool(stats, stats)

	file := solver.DecisionFromFile{
		h0: solver.CPU,
		h1: solver.Follower,
		h2: solver.Follower,
		h3: solver.PIM,
	}
	got := file.Resolve(pool)
	assert.Equal(t, solver.Decision{solver.CPU, solver.CPU, solver.CPU, solver.PIM}, got)
}

func TestDecisionFromFile_Resolve_UnnamedHashDefaultsToCPU(t *testing.T) {
	h0 := solver.BblHash{Lo: 0}
	stats := map[solver.BblHash]*solver.RunStats{
		h0: {BblHash: h0, ThreadElapsedTime: []solver.Cost{1}},
	}
	pool := solver.NewStatsPool(stats, stats)
	got := solver.DecisionFromFile{}.Resolve(pool)
	assert.Equal(t, solver.Decision{solver.CPU}, got)
}
