package unionfind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/unionfind"
)

func TestDisjointSet_StartsAsSingletons(t *testing.T) {
	ds := unionfind.New(3)
	assert.Equal(t, solver.BblId(0), ds.Find(0))
	assert.Equal(t, solver.BblId(1), ds.Find(1))
	assert.NotEqual(t, ds.Find(0), ds.Find(1))
}

func TestDisjointSet_UnionMergesSets(t *testing.T) {
	ds := unionfind.New(4)
	ds.Union(0, 1)
	ds.Union(2, 3)
	assert.Equal(t, ds.Find(0), ds.Find(1))
	assert.Equal(t, ds.Find(2), ds.Find(3))
	assert.NotEqual(t, ds.Find(0), ds.Find(2))

	ds.Union(1, 2)
	assert.Equal(t, ds.Find(0), ds.Find(3))
}

func TestDisjointSet_Components_CoversEveryID(t *testing.T) {
	ds := unionfind.New(5)
	ds.Union(0, 1)
	ds.Union(3, 4)

	comps := ds.Components()
	total := 0
	for _, c := range comps {
		total += len(c)
	}
	assert.Equal(t, 5, total)
	assert.Len(t, comps, 3) // {0,1}, {2}, {3,4}
}
