package lbvh

import (
	"fmt"
	"strings"

	"trace-engine/geometry"
)

// Hit identifies the nearest primitive struck by a ray: the primitive's
// index in the scene sequence and the parametric distance along the ray.
type Hit struct {
	Index    int
	Distance float32
}

// Traverse finds the nearest primitive hit for the ray. It walks the arena
// with an explicit stack, skipping any subtree whose bounding box is missed
// or lies beyond the best hit so far. Traversal is read-only and reentrant,
// so rays can be traced from many goroutines against one tree.
func (t *Tree) Traverse(r geometry.Ray) (Hit, bool) {
	if t.root < 0 {
		return Hit{}, false
	}

	best := Hit{}
	found := false

	stack := make([]int32, 1, 64)
	stack[0] = t.root
	for len(stack) > 0 {
		n := &t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if n.kind == leafKind {
			for _, idx := range n.items {
				if idx < 0 {
					break
				}
				d, ok := t.prims[idx].DistanceTo(r)
				if !ok {
					continue
				}
				if !found || d < best.Distance {
					best = Hit{Index: int(idx), Distance: d}
					found = true
				}
			}
			continue
		}

		// Children are pushed in slot order, not nearest-first: a
		// distance sort here measured slower than the extra pops it
		// avoids. Pruning against the best hit already rejects far
		// subtrees.
		for _, c := range n.children {
			if c < 0 {
				continue
			}
			d, ok := t.nodes[c].bb.DistanceTo(r)
			if !ok {
				continue
			}
			if found && d >= best.Distance {
				continue
			}
			stack = append(stack, c)
		}
	}

	if !found {
		return Hit{}, false
	}
	return best, true
}

// String renders the arena as an indented tree, one node per line.
func (t *Tree) String() string {
	var sb strings.Builder
	if t.root < 0 {
		sb.WriteString("<empty>\n")
		return sb.String()
	}

	type frame struct {
		idx   int32
		depth int
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i := 0; i < f.depth-1; i++ {
			sb.WriteString("|  ")
		}
		if f.depth > 0 {
			sb.WriteString("|-")
		}
		n := &t.nodes[f.idx]
		if n.kind == innerKind {
			fmt.Fprintf(&sb, "<%d>: %v\n", f.idx, n.bb)
			for _, c := range n.children {
				if c >= 0 {
					stack = append(stack, frame{c, f.depth + 1})
				}
			}
		} else {
			fmt.Fprintf(&sb, "<%d>: %v, items:%v\n", f.idx, n.bb, n.items)
		}
	}
	return sb.String()
}
