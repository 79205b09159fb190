package symgraph

import "sort"

// Cycles returns disjoint groups of exactly order residues, each of which
// lies on a directed cycle of length order.
//
// Residues are tried as starting points in increasing order. From each
// residue not already in a group, a depth first search follows edges to
// residues that are neither on the current path nor in a group, never going
// deeper than order residues. The first path whose last residue has an edge
// back to the start is accepted; alternatives are not explored. Residues
// for which no such path exists are left out. Residues in components
// smaller than order are skipped outright.
//
// Each group is returned sorted by residue index, and groups are ordered by
// their starting residue.
func (g *Graph) Cycles(order int) [][]int {
	n := len(g.adj)
	if order < 2 || n < order {
		return nil
	}

	small := newBitset(n)
	for _, comp := range g.Components() {
		if len(comp) < order {
			for _, u := range comp {
				small.set(u)
			}
		}
	}

	type frame struct {
		v    int
		next int
	}
	visited := newBitset(n)
	onPath := newBitset(n)
	stack := make([]frame, 0, order)

	var groups [][]int
	for start := 0; start < n; start++ {
		if visited.has(start) || small.has(start) {
			continue
		}
		stack = append(stack[:0], frame{v: start})
		onPath.set(start)
		found := false
		for len(stack) > 0 && !found {
			top := &stack[len(stack)-1]
			if top.next >= len(g.adj[top.v]) {
				onPath.clear(top.v)
				stack = stack[:len(stack)-1]
				continue
			}
			w := g.adj[top.v][top.next]
			top.next++

			if len(stack) == order {
				found = w == start
				continue
			}
			if onPath.has(w) || visited.has(w) {
				continue
			}
			stack = append(stack, frame{v: w})
			onPath.set(w)
		}
		if !found {
			continue
		}

		group := make([]int, len(stack))
		for i, f := range stack {
			group[i] = f.v
			visited.set(f.v)
			onPath.clear(f.v)
		}
		sort.Ints(group)
		groups = append(groups, group)
	}
	return groups
}

// bitset is a fixed size set of residue indices.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << uint(i%64)
}

func (b bitset) clear(i int) {
	b[i/64] &^= 1 << uint(i%64)
}

func (b bitset) has(i int) bool {
	return b[i/64]&(1<<uint(i%64)) != 0
}
