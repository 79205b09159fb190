package symgraph

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/TuftsBCB/symmetry/alignment"
)

func ExampleGraph_Cycles() {
	g := New(8)
	for u := 0; u < 8; u++ {
		g.AddEdge(u, (u+2)%8)
	}
	fmt.Println(g.Cycles(4))
	// Output:
	// [[0 2 4 6] [1 3 5 7]]
}

func TestAddEdge(t *testing.T) {
	g := New(3)
	if !g.AddEdge(0, 1) {
		t.Fatal("A new edge was reported as a duplicate.")
	}
	if g.AddEdge(0, 1) {
		t.Fatal("A duplicate edge was added.")
	}
	if g.AddEdge(2, 2) {
		t.Fatal("A self loop was added.")
	}
	g.AddEdge(1, 0)
	if g.Edges() != 2 || len(g.Neighbors(0)) != 1 || len(g.Neighbors(2)) != 0 {
		t.Fatalf("Unexpected adjacency: %v", g.adj)
	}
}

func TestComponents(t *testing.T) {
	g := New(7)
	g.AddEdge(0, 3)
	g.AddEdge(3, 0)
	g.AddEdge(5, 3)
	g.AddEdge(1, 2)
	comps := g.Components()
	want := [][]int{{0, 3, 5}, {1, 2}, {4}, {6}}
	if fmt.Sprint(comps) != fmt.Sprint(want) {
		t.Fatalf("Expected components %v but got %v.", want, comps)
	}
}

func TestFromAlignments(t *testing.T) {
	n := 80
	var alns []*alignment.Alignment
	for _, off := range []int{20, 40, 60} {
		var pairs []alignment.Pair
		for i := 0; i < n; i++ {
			pairs = append(pairs, alignment.Pair{I: i, J: i + off})
		}
		alns = append(alns, alignment.FromPairs(pairs))
	}
	g, err := FromAlignments(n, alns)
	if err != nil {
		t.Fatal(err)
	}
	if g.Edges() != 3*n {
		t.Fatalf("Expected %d edges but got %d.", 3*n, g.Edges())
	}

	groups := g.Cycles(4)
	if len(groups) != 20 {
		t.Fatalf("Expected 20 groups but got %d.", len(groups))
	}
	for a, group := range groups {
		want := fmt.Sprint([]int{a, a + 20, a + 40, a + 60})
		if fmt.Sprint(group) != want {
			t.Fatalf("Expected group %s but got %v.", want, group)
		}
	}
}

func TestFromAlignmentsAmbiguous(t *testing.T) {
	a := &alignment.Alignment{Blocks: []alignment.Block{
		{Pairs: []alignment.Pair{{I: 0, J: 5}, {I: 1, J: 9}}},
	}}
	if _, err := FromAlignments(4, []*alignment.Alignment{a}); err != alignment.ErrAmbiguous {
		t.Fatalf("Expected ErrAmbiguous but got %v.", err)
	}
}

func TestCyclesExactLength(t *testing.T) {
	// A single 6-cycle contains no cycle of length 3.
	g := New(6)
	for u := 0; u < 6; u++ {
		g.AddEdge(u, (u+1)%6)
	}
	if groups := g.Cycles(3); len(groups) != 0 {
		t.Fatalf("Found %v in a 6-cycle.", groups)
	}
	if groups := g.Cycles(6); len(groups) != 1 || len(groups[0]) != 6 {
		t.Fatalf("Expected the whole 6-cycle, got %v.", groups)
	}
	if groups := g.Cycles(1); groups != nil {
		t.Fatalf("Order 1 has no cycles, got %v.", groups)
	}
}

func TestCyclesIncomplete(t *testing.T) {
	// 0 -> 1 -> 2 -> 3 is a path, not a cycle. 4 <-> 5 is a 2-cycle.
	g := New(6)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddEdge(4, 5)
	g.AddEdge(5, 4)
	groups := g.Cycles(2)
	if fmt.Sprint(groups) != "[[4 5]]" {
		t.Fatalf("Expected only [4 5], got %v.", groups)
	}
	if groups := g.Cycles(4); len(groups) != 0 {
		t.Fatalf("Expected no groups, got %v.", groups)
	}
}

func TestCyclesFirstFound(t *testing.T) {
	// Both 0 -> 1 -> 0 and 0 -> 2 -> 0 close; the first edge wins and 2 is
	// left for nobody.
	g := New(3)
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 0)
	g.AddEdge(2, 0)
	if groups := g.Cycles(2); fmt.Sprint(groups) != "[[0 1]]" {
		t.Fatalf("Expected [[0 1]], got %v.", groups)
	}
}

func TestCyclesRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 200; trial++ {
		n := 5 + rng.Intn(40)
		g := New(n)
		edges := n * (1 + rng.Intn(3))
		for e := 0; e < edges; e++ {
			g.AddEdge(rng.Intn(n), rng.Intn(n))
		}
		for order := 2; order <= 5; order++ {
			groups := g.Cycles(order)
			seen := make(map[int]bool)
			for _, group := range groups {
				if len(group) != order {
					t.Fatalf("Group %v does not have %d residues.", group, order)
				}
				for _, u := range group {
					if seen[u] {
						t.Fatalf("Residue %d is in two groups: %v", u, groups)
					}
					seen[u] = true
				}
				if !closes(g, group) {
					t.Fatalf("Group %v is not a cycle in %v.", group, g.adj)
				}
			}
		}
	}
}

// closes reports whether the residues of group can be ordered into a
// directed cycle that starts and ends at group[0] after len(group) steps.
func closes(g *Graph, group []int) bool {
	in := make(map[int]bool)
	for _, u := range group {
		in[u] = true
	}
	used := map[int]bool{group[0]: true}
	var walk func(u, steps int) bool
	walk = func(u, steps int) bool {
		if steps == len(group)-1 {
			for _, v := range g.Neighbors(u) {
				if v == group[0] {
					return true
				}
			}
			return false
		}
		for _, v := range g.Neighbors(u) {
			if in[v] && !used[v] {
				used[v] = true
				if walk(v, steps+1) {
					return true
				}
				used[v] = false
			}
		}
		return false
	}
	return walk(group[0], 0)
}

func BenchmarkCycles(b *testing.B) {
	n := 400
	g := New(n)
	for _, off := range []int{100, 200, 300} {
		for u := 0; u < n; u++ {
			g.AddEdge(u, (u+off)%n)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Cycles(4)
	}
}
