package trie

import (
	"fmt"
	"sort"

	"github.com/pimprof/solver"
)

// Node is one edge-endpoint in the trie. The edge leading to it is labeled
// by the BblId in label (meaningless for the root, which has no parent).
type Node struct {
	parent   *Node
	label    solver.BblId
	children map[solver.BblId]*Node
	isLeaf   bool
	count    int64
}

func newNode(parent *Node, label solver.BblId) *Node {
	return &Node{parent: parent, label: label, children: make(map[solver.BblId]*Node)}
}

// Children exposes the child edges, keyed by BblId (spec: "sibling edges
// are keyed uniquely by BblId").
func (n *Node) Children() map[solver.BblId]*Node { return n.children }

// IsLeaf reports whether a segment terminates at this node. A node can be
// both an internal node and a leaf when one segment's path is a prefix of
// another's.
func (n *Node) IsLeaf() bool { return n.isLeaf }

// Count is the summed occurrence count of segments terminating here.
func (n *Node) Count() int64 { return n.count }

// Trie is a rooted prefix tree over reuse segments (spec §3 "ReuseTrie").
type Trie struct {
	root *Node
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: newNode(nil, 0)}
}

// Root returns the trie's root node. The root is never itself a leaf.
func (t *Trie) Root() *Node { return t.root }

// Insert descends from root following or creating a child per segment
// element in insertion order, merging common prefixes. At the terminal
// node it sets isLeaf and adds seg.Count to that node's count (spec §4.2).
func (t *Trie) Insert(seg Segment) {
	cur := t.root
	for _, id := range seg.Members {
		child, ok := cur.children[id]
		if !ok {
			child = newNode(cur, id)
			cur.children[id] = child
		}
		cur = child
	}
	cur.isLeaf = true
	cur.count += seg.Count
}

// ExportSegment walks from leaf up to root collecting edge labels, then
// reverses them to recover the segment in original insertion order (spec
// §4.2 "Segment export").
func ExportSegment(leaf *Node) Segment {
	var members []solver.BblId
	for n := leaf; n.parent != nil; n = n.parent {
		members = append(members, n.label)
	}
	for i, j := 0, len(members)-1; i < j; i, j = i+1, j-1 {
		members[i], members[j] = members[j], members[i]
	}
	var head solver.BblId
	if len(members) > 0 {
		head = members[0]
	}
	return Segment{Head: head, Members: members, Count: leaf.count}
}

// Leaves returns every leaf node, sorted descending by importance:
// count * maxReuseUnit, the maximum possible reuse cost the segment could
// contribute (spec §4.2 "Leaf sort key").
func (t *Trie) Leaves(maxReuseUnit solver.Cost) []*Node {
	var leaves []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n.isLeaf {
			leaves = append(leaves, n)
		}
		// Deterministic iteration: sort children by BblId before recursing.
		ids := make([]solver.BblId, 0, len(n.children))
		for id := range n.children {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			walk(n.children[id])
		}
	}
	walk(t.root)
	sort.SliceStable(leaves, func(i, j int) bool {
		ci := solver.Cost(leaves[i].count) * maxReuseUnit
		cj := solver.Cost(leaves[j].count) * maxReuseUnit
		return ci > cj
	})
	return leaves
}

// Walk performs a pre-order traversal from root's children, invoking visit
// at every node reached with its parent node and the node itself, visiting
// siblings in ascending BblId order. It carries no decision state; cost
// tracking such as solver/cost's ReuseCost does its own recursion.
func (t *Trie) Walk(visit func(parent *Node, n *Node)) {
	var walk func(*Node)
	walk = func(n *Node) {
		ids := make([]solver.BblId, 0, len(n.children))
		for id := range n.children {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			child := n.children[id]
			visit(n, child)
			walk(child)
		}
	}
	walk(t.root)
}

// AllLeafSegments enumerates every leaf's exported segment, used by the
// round-trip structural-isomorphism property test (spec §8).
func (t *Trie) AllLeafSegments() []Segment {
	var segs []Segment
	for _, leaf := range t.Leaves(1) {
		segs = append(segs, ExportSegment(leaf))
	}
	return segs
}

// Equal compares two tries for structural isomorphism: the same set of
// (path, count) pairs, ignoring node identity and insertion order (spec §8
// "Round-trip").
func (t *Trie) Equal(other *Trie) bool {
	a := t.AllLeafSegments()
	b := other.AllLeafSegments()
	if len(a) != len(b) {
		return false
	}
	key := func(s Segment) string {
		return fmt.Sprintf("%v#%d", s.Members, s.Count)
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[key(s)]++
	}
	for _, s := range b {
		k := key(s)
		if counts[k] == 0 {
			return false
		}
		counts[k]--
	}
	return true
}
