package trie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/trie"
)

func ids(xs ...uint64) []solver.BblId {
	out := make([]solver.BblId, len(xs))
	for i, x := range xs {
		out[i] = solver.BblId(x)
	}
	return out
}

func TestTrie_Insert_MergesCommonPrefix(t *testing.T) {
	tr := trie.New()
	tr.Insert(trie.NewSegment(ids(0, 1, 2), 3))
	tr.Insert(trie.NewSegment(ids(0, 1, 5), 7))

	root := tr.Root()
	child0 := root.Children()[0]
	assert.NotNil(t, child0)
	assert.False(t, child0.IsLeaf())
	child1 := child0.Children()[1]
	assert.NotNil(t, child1)
	assert.False(t, child1.IsLeaf())
	assert.Len(t, child1.Children(), 2)
}

func TestTrie_Insert_DuplicateSegmentSumsCount(t *testing.T) {
	tr := trie.New()
	tr.Insert(trie.NewSegment(ids(0, 1), 3))
	tr.Insert(trie.NewSegment(ids(0, 1), 4))

	leaves := tr.Leaves(1)
	if assert.Len(t, leaves, 1) {
		assert.Equal(t, int64(7), leaves[0].Count())
	}
}

func TestTrie_PrefixCanAlsoBeLeaf(t *testing.T) {
	tr := trie.New()
	tr.Insert(trie.NewSegment(ids(0, 1), 1))
	tr.Insert(trie.NewSegment(ids(0, 1, 2), 1))

	node1 := tr.Root().Children()[0].Children()[1]
	assert.True(t, node1.IsLeaf(), "0->1 terminates one segment")
	assert.NotEmpty(t, node1.Children(), "0->1 is also a prefix of 0->1->2")
}

func TestTrie_ExportSegment_RoundTripsInsertionOrder(t *testing.T) {
	tr := trie.New()
	seg := trie.NewSegment(ids(4, 2, 9), 11)
	tr.Insert(seg)

	leaves := tr.Leaves(1)
	got := trie.ExportSegment(leaves[0])
	assert.Equal(t, seg.Members, got.Members)
	assert.Equal(t, seg.Count, got.Count)
	assert.Equal(t, solver.BblId(4), got.Head)
}

func TestTrie_LeavesSortedByImportanceDescending(t *testing.T) {
	tr := trie.New()
	tr.Insert(trie.NewSegment(ids(0), 1))  // importance 1*unit
	tr.Insert(trie.NewSegment(ids(1), 10)) // importance 10*unit
	tr.Insert(trie.NewSegment(ids(2), 5))  // importance 5*unit

	leaves := tr.Leaves(solver.Cost(1))
	var counts []int64
	for _, l := range leaves {
		counts = append(counts, l.Count())
	}
	assert.Equal(t, []int64{10, 5, 1}, counts)
}

func TestTrie_Equal_RoundTripThroughReinsertion(t *testing.T) {
	tr := trie.New()
	tr.Insert(trie.NewSegment(ids(0, 1, 2), 3))
	tr.Insert(trie.NewSegment(ids(0, 1, 5), 7))
	tr.Insert(trie.NewSegment(ids(9), 2))

	reinserted := trie.New()
	for _, seg := range tr.AllLeafSegments() {
		reinserted.Insert(seg)
	}

	assert.True(t, tr.Equal(reinserted))
}

func TestTrie_Equal_DetectsDifference(t *testing.T) {
	a := trie.New()
	a.Insert(trie.NewSegment(ids(0, 1), 3))
	b := trie.New()
	b.Insert(trie.NewSegment(ids(0, 1), 4))
	assert.False(t, a.Equal(b))
}

func TestNewSegment_DeduplicatesAndSetsHead(t *testing.T) {
	seg := trie.NewSegment(ids(3, 1, 3, 2), 5)
	assert.Equal(t, ids(3, 1, 2), seg.Members)
	assert.Equal(t, solver.BblId(3), seg.Head)
}
