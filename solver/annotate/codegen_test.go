package annotate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/annotate"
)

func TestModule_EmitsHeadAndTailWithMetadataKey(t *testing.T) {
	m := annotate.Module{BblId: solver.BblId(42)}

	head, err := m.EmitHead()
	require.NoError(t, err)
	assert.Contains(t, head, "PIMProfAnnotationHead")
	assert.Contains(t, head, annotate.MetadataKey)
	assert.Contains(t, head, "42")

	tail, err := m.EmitTail()
	require.NoError(t, err)
	assert.Contains(t, tail, "PIMProfAnnotationTail")
	assert.Contains(t, tail, annotate.MetadataKey)
}

func TestModule_StringOrdersHeadBeforeTail(t *testing.T) {
	m := annotate.Module{BblId: solver.BblId(1)}
	s := m.String()

	headIdx := strings.Index(s, "PIMProfAnnotationHead")
	tailIdx := strings.Index(s, "PIMProfAnnotationTail")
	require.NotEqual(t, -1, headIdx)
	require.NotEqual(t, -1, tailIdx)
	assert.Less(t, headIdx, tailIdx)
	assert.Contains(t, s, "NoInline")
}
