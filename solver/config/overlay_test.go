package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/config"
)

func TestLoad_ParsesPartialOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flush_cpu: 120\nmpki_threshold: 8\n"), 0o644))

	o, err := config.Load(path)
	require.NoError(t, err)
	require.NotNil(t, o.FlushCPU)
	assert.Equal(t, 120.0, *o.FlushCPU)
	require.NotNil(t, o.MPKIThreshold)
	assert.Equal(t, 8.0, *o.MPKIThreshold)
	assert.Nil(t, o.BatchSize)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flush_cppu: 1\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestOverlay_ApplyOnlyOverridesSetFields(t *testing.T) {
	base := solver.DefaultCostConfig()
	flushCPU := 120.0
	o := &config.Overlay{FlushCPU: &flushCPU}

	merged := o.Apply(base)
	assert.Equal(t, solver.Cost(120), merged.Flush[solver.CPU])
	assert.Equal(t, base.Flush[solver.PIM], merged.Flush[solver.PIM])
	assert.Equal(t, base.MPKIThreshold, merged.MPKIThreshold)
}

func TestOverlay_ApplyNilOverlayReturnsBaseUnchanged(t *testing.T) {
	base := solver.DefaultCostConfig()
	var o *config.Overlay
	assert.Equal(t, base, o.Apply(base))
}
