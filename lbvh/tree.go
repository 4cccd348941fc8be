package lbvh

import (
	"math"
	"math/bits"
	"sort"
	"sync"

	"trace-engine/geometry"
)

// maxChildren is the fan-out of an inner node: up to three successive
// Morton bit-splits per level, one octant per child slot.
const maxChildren = 8

// DefaultLeafCapacity is the leaf size the renderer uses; any positive
// capacity builds a correct tree.
const DefaultLeafCapacity = 8

type nodeKind uint8

const (
	leafKind nodeKind = iota
	innerKind
)

// node is one arena slot. A leaf fills items from slot 0 up; an inner node
// keeps each child in the slot of the sub-run it was built from, so an empty
// sub-run leaves a gap. Unused slots hold -1.
type node struct {
	bb       geometry.AABB
	kind     nodeKind
	items    []int32 // leaf only; fixed length = leaf capacity
	children [maxChildren]int32
}

func newLeafNode(capacity int) node {
	n := node{bb: geometry.EmptyAABB(), kind: leafKind, items: make([]int32, capacity)}
	for i := range n.items {
		n.items[i] = -1
	}
	for i := range n.children {
		n.children[i] = -1
	}
	return n
}

func newInnerNode() node {
	n := node{bb: geometry.EmptyAABB(), kind: innerKind}
	for i := range n.children {
		n.children[i] = -1
	}
	return n
}

func (n *node) setChild(slot int, idx int32) {
	if n.kind != innerKind {
		panic("lbvh: leaf node cannot take children")
	}
	n.children[slot] = idx
}

// Tree is a linear BVH over an immutable primitive sequence. All nodes live
// in one contiguous arena and reference each other by index; an inner node
// is appended before its children are built, so every parent index is
// smaller than its child indices. The arena is read-only after construction
// and safe for concurrent traversal.
type Tree struct {
	nodes   []node
	leafCap int
	prims   []geometry.Primitive
	root    int32
}

// Build constructs the tree: Morton-linearize, sort, then recursively
// bit-split the sorted run. The primitive slice is retained, not copied;
// it must stay unchanged for the tree's lifetime.
func Build(prims []geometry.Primitive, leafCap int) *Tree {
	t := newTree(prims, leafCap)
	items := Linearize(prims)
	sortByKey(items)
	t.root = t.build(items)
	return t
}

// BuildParallel is Build with the top-level octant subtrees constructed on
// separate goroutines. Each worker appends into a private arena; the arenas
// are then concatenated with child indices relocated by the subtree's
// offset, which preserves parent < child ordering within every subtree.
// The resulting arena is identical to the sequential one.
func BuildParallel(prims []geometry.Primitive, leafCap int) *Tree {
	t := newTree(prims, leafCap)
	items := Linearize(prims)
	sortByKey(items)

	// Too small for an 8-way top split: nothing to fork.
	if len(items) <= 4*leafCap {
		t.root = t.build(items)
		return t
	}

	runs := splitRuns(items, leafCap)
	subtrees := make([]*Tree, len(runs))
	var wg sync.WaitGroup
	for i, run := range runs {
		if len(run) == 0 {
			continue
		}
		wg.Add(1)
		go func(i int, run []Item) {
			defer wg.Done()
			sub := newTree(prims, leafCap)
			sub.root = sub.build(run)
			subtrees[i] = sub
		}(i, run)
	}
	wg.Wait()

	t.nodes = append(t.nodes, newInnerNode())
	bb := geometry.EmptyAABB()
	for slot, sub := range subtrees {
		if sub == nil || sub.root < 0 {
			continue
		}
		offset := int32(len(t.nodes))
		for _, n := range sub.nodes {
			if n.kind == innerKind {
				for j, c := range n.children {
					if c >= 0 {
						n.children[j] = c + offset
					}
				}
			}
			t.nodes = append(t.nodes, n)
		}
		t.nodes[0].setChild(slot, offset+sub.root)
		bb = bb.Union(sub.nodes[sub.root].bb)
	}
	t.nodes[0].bb = bb
	t.root = 0
	return t
}

func newTree(prims []geometry.Primitive, leafCap int) *Tree {
	if leafCap < 1 {
		panic("lbvh: leaf capacity must be positive")
	}
	return &Tree{
		nodes:   make([]node, 0, minNodeCount(len(prims), leafCap)),
		leafCap: leafCap,
		prims:   prims,
		root:    -1,
	}
}

// minNodeCount estimates the arena size to reserve. For the octree-shaped
// capacity-8 case the bound is the full-tree node count (8^(d+1)−1)/7;
// otherwise n² is a safe over-estimate. Both are hints only.
func minNodeCount(n, leafCap int) int {
	if n < 2 {
		return 1
	}
	if leafCap == 8 {
		depth := math.Ceil(math.Log2(float64(n)) / math.Log2(float64(leafCap)))
		return int((math.Pow(8, depth+1) - 1) / 7)
	}
	return n * n
}

// build appends the subtree for a sorted key run and returns its root
// index, or -1 for an empty run.
func (t *Tree) build(items []Item) int32 {
	if len(items) == 0 {
		return -1
	}
	if len(items) <= t.leafCap {
		return t.pushLeaf(items)
	}

	// Reserve the inner node before recursing so the parent's index is
	// below every descendant's.
	inner := t.pushInner()
	bb := geometry.EmptyAABB()
	for slot, run := range splitRuns(items, t.leafCap) {
		child := t.build(run)
		if child < 0 {
			continue
		}
		t.nodes[inner].setChild(slot, child)
		bb = bb.Union(t.nodes[child].bb)
	}
	t.nodes[inner].bb = bb
	return inner
}

// splitRuns cuts a sorted run into 2, 4, or 8 sub-runs by successive
// most-significant-differing-bit splits, widening the fan-out only while
// the run is too big for that many leaves. The cascade keeps Morton order,
// so slots 0..7 read as the (x, y, z) bit triple of the split plane.
func splitRuns(items []Item, leafCap int) [][]Item {
	left, right := splitOnTopBit(items)
	if len(items) <= 2*leafCap {
		return [][]Item{left, right}
	}

	leftBot, leftTop := splitOnTopBit(left)
	rightBot, rightTop := splitOnTopBit(right)
	if len(items) <= 4*leafCap {
		return [][]Item{leftBot, leftTop, rightBot, rightTop}
	}

	quads := [4][]Item{leftBot, leftTop, rightBot, rightTop}
	runs := make([][]Item, 0, maxChildren)
	for _, q := range quads {
		near, far := splitOnTopBit(q)
		runs = append(runs, near, far)
	}
	return runs
}

// splitOnTopBit partitions a sorted run at the most significant bit where
// the first and last keys differ. With all keys equal there is no such bit
// and the run is halved instead, which keeps degenerate inputs balanced.
func splitOnTopBit(items []Item) (below, above []Item) {
	if len(items) == 0 {
		return nil, nil
	}
	splitAt := len(items) / 2
	if diff := items[0].Key ^ items[len(items)-1].Key; diff != 0 {
		mask := uint64(0x8000000000000000) >> uint(bits.LeadingZeros64(diff))
		splitAt = sort.Search(len(items), func(i int) bool {
			return items[i].Key&mask != 0
		})
	}
	return items[:splitAt], items[splitAt:]
}

// pushLeaf appends a leaf holding the run's primitives in sorted key order.
func (t *Tree) pushLeaf(items []Item) int32 {
	leaf := newLeafNode(t.leafCap)
	for slot, it := range items {
		leaf.items[slot] = int32(it.Index)
		leaf.bb = leaf.bb.Union(t.prims[it.Index].BoundingBox())
	}
	t.nodes = append(t.nodes, leaf)
	return int32(len(t.nodes) - 1)
}

func (t *Tree) pushInner() int32 {
	t.nodes = append(t.nodes, newInnerNode())
	return int32(len(t.nodes) - 1)
}

// NodeCount reports the arena size.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// LeafCapacity reports the leaf slot count the tree was built with.
func (t *Tree) LeafCapacity() int {
	return t.leafCap
}
