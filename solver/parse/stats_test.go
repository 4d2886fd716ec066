package parse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/parse"
)

const statsFixture = `====================================================================
tid 0
bblid elapsed_time instr mem hash_hi hash_lo
0 100.5 1000 50 0 1
1 10 500 10 0 2
====================================================================
tid 1
bblid elapsed_time instr mem hash_hi hash_lo
0 90 1000 50 0 1
`

func TestStats_MergesAcrossThreadSections(t *testing.T) {
	out, err := parse.Stats(strings.NewReader(statsFixture))
	require.NoError(t, err)
	require.Len(t, out, 2)

	h0 := solver.BblHash{Hi: 0, Lo: 1}
	rs, ok := out[h0]
	require.True(t, ok)
	assert.Equal(t, solver.Cost(190.5), rs.ElapsedTime)
	assert.Equal(t, int64(2000), rs.InstructionCount)
	assert.Equal(t, 2, rs.Parallelism())

	h1 := solver.BblHash{Hi: 0, Lo: 2}
	rs1, ok := out[h1]
	require.True(t, ok)
	assert.Equal(t, solver.Cost(10), rs1.ElapsedTime)
	assert.Equal(t, 1, rs1.Parallelism())
}

func TestStats_NegativeElapsedTimeIsFatal(t *testing.T) {
	const bad = `====================================================================
tid 0
bblid elapsed_time instr mem hash_hi hash_lo
0 -5 1000 50 0 1
`
	_, err := parse.Stats(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestStats_MalformedRowIsFatal(t *testing.T) {
	const bad = `====================================================================
tid 0
bblid elapsed_time instr mem hash_hi hash_lo
not-a-row
`
	_, err := parse.Stats(strings.NewReader(bad))
	assert.Error(t, err)
}
