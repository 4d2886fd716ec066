package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/strategy"
)

func TestCTSFromFile_UsesFileSiteAndResolvesFollower(t *testing.T) {
	pool := poolOf([]solver.Cost{100, 100}, []solver.Cost{10, 10})
	in := inputOf(pool)
	in.CTS = solver.DecisionFromFile{
		hashN(0): solver.PIM,
		hashN(1): solver.Follower,
	}
	cfg := solver.DefaultCostConfig()

	d, _, err := strategy.CTSFromFile(in, cfg)
	require.NoError(t, err)
	require.NoError(t, d.Validate())
	assert.Equal(t, solver.PIM, d[0])
	assert.Equal(t, solver.PIM, d[1]) // Follower inherits bblid 0's resolved site
}

func TestSCAFromFile_DefaultsUnnamedHashToCPU(t *testing.T) {
	pool := poolOf([]solver.Cost{100}, []solver.Cost{10})
	in := inputOf(pool)
	in.SCA = solver.DecisionFromFile{}
	cfg := solver.DefaultCostConfig()

	d, _, err := strategy.SCAFromFile(in, cfg)
	require.NoError(t, err)
	assert.Equal(t, solver.CPU, d[0])
}
