// Package symgraph merges several self-alignments of a structure into one
// directed graph over its residues and extracts groups of residues that the
// alignments consistently relate to each other.
//
// Each edge u -> v says that some alignment maps residue u onto residue v.
// For a structure with K repeats aligned at K-1 rotational offsets, every
// residue of the symmetric core lies on a cycle of length K that visits one
// residue in each repeat. Those cycles are the repeat groups.
package symgraph

import (
	"fmt"
	"sort"

	"github.com/biogo/graph"

	"github.com/TuftsBCB/symmetry/alignment"
)

// Graph is a directed graph over residues 0..n-1 without self loops or
// duplicate edges.
type Graph struct {
	adj [][]int
}

// New returns a graph with n residues and no edges.
func New(n int) *Graph {
	return &Graph{adj: make([][]int, n)}
}

// FromAlignments adds an edge for every aligned pair of every alignment.
// Duplicated residue indices are folded back onto the n physical residues.
// An alignment that maps one residue to two partners yields
// alignment.ErrAmbiguous.
func FromAlignments(n int, alns []*alignment.Alignment) (*Graph, error) {
	g := New(n)
	for _, a := range alns {
		mapping, err := a.Mapping(n)
		if err != nil {
			return nil, err
		}
		for u, v := range mapping {
			if v >= 0 {
				g.AddEdge(u, v)
			}
		}
	}
	return g, nil
}

// Len is the number of residues.
func (g *Graph) Len() int {
	return len(g.adj)
}

// AddEdge adds the edge u -> v and reports whether it is new. Self loops
// are ignored.
func (g *Graph) AddEdge(u, v int) bool {
	if u < 0 || u >= len(g.adj) || v < 0 || v >= len(g.adj) {
		panic(fmt.Sprintf("edge %d -> %d is out of range for a graph with "+
			"%d residues", u, v, len(g.adj)))
	}
	if u == v {
		return false
	}
	for _, w := range g.adj[u] {
		if w == v {
			return false
		}
	}
	g.adj[u] = append(g.adj[u], v)
	return true
}

// Neighbors returns the residues u has an edge to, in insertion order. The
// slice must not be modified.
func (g *Graph) Neighbors(u int) []int {
	return g.adj[u]
}

// Edges is the number of edges.
func (g *Graph) Edges() int {
	n := 0
	for _, vs := range g.adj {
		n += len(vs)
	}
	return n
}

// Components returns the connected components of the graph with edge
// direction ignored. Each component is sorted, and components are ordered
// by their smallest residue. Residues without edges form their own
// component.
func (g *Graph) Components() [][]int {
	ug := graph.NewUndirected()
	nodes := make([]graph.Node, len(g.adj))
	index := make(map[graph.Node]int, len(g.adj))
	for u := range g.adj {
		nodes[u] = ug.NewNode()
		ug.Add(nodes[u])
		index[nodes[u]] = u
	}
	seen := make(map[[2]int]bool)
	for u, vs := range g.adj {
		for _, v := range vs {
			key := [2]int{u, v}
			if v < u {
				key = [2]int{v, u}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			// Both endpoints were added above, so this cannot fail.
			if err := ug.ConnectWith(nodes[u], nodes[v], graph.NewEdge()); err != nil {
				panic(err)
			}
		}
	}

	ccs := graph.ConnectedComponents(ug, func(graph.Edge) bool { return true })
	comps := make([][]int, 0, len(ccs))
	covered := make([]bool, len(g.adj))
	for _, cc := range ccs {
		if len(cc) == 0 {
			continue
		}
		comp := make([]int, len(cc))
		for i, n := range cc {
			comp[i] = index[n]
			covered[comp[i]] = true
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	for u, ok := range covered {
		if !ok {
			comps = append(comps, []int{u})
		}
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })
	return comps
}
