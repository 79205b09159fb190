package alignment

import (
	"fmt"
	"math"
	"testing"

	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/symmetry/internal/synth"
	"github.com/TuftsBCB/symmetry/simmat"
)

func ExampleFromPairs() {
	a := FromPairs([]Pair{{I: 0, J: 20}, {I: 1, J: 21}, {I: 2, J: 22}, {I: 4, J: 23}, {I: 5, J: 24}})
	for _, b := range a.Blocks {
		fmt.Println(b.Pairs)
	}
	// Output:
	// [{0 20} {1 21} {2 22}]
	// [{4 23} {5 24}]
}

func TestPhysical(t *testing.T) {
	tests := []struct{ j, n, want int }{
		{0, 10, 0}, {9, 10, 9}, {10, 10, 0}, {19, 10, 9}, {-1, 10, 9},
	}
	for _, test := range tests {
		if got := Physical(test.j, test.n); got != test.want {
			t.Fatalf("Physical(%d, %d) = %d, want %d.",
				test.j, test.n, got, test.want)
		}
	}
}

func TestMapping(t *testing.T) {
	a := FromPairs([]Pair{{I: 0, J: 3}, {I: 1, J: 4}, {I: 2, J: 5}, {I: 3, J: 6}})
	got, err := a.Mapping(4)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{3, 0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected mapping %v but got %v.", want, got)
		}
	}

	partial, err := FromPairs([]Pair{{I: 1, J: 2}}).Mapping(4)
	if err != nil {
		t.Fatal(err)
	}
	if partial[0] != -1 || partial[1] != 2 {
		t.Fatalf("Unexpected partial mapping %v.", partial)
	}
}

func TestMappingAmbiguous(t *testing.T) {
	tests := [][]Pair{
		// residue 0 has partners 1 and 2
		{{I: 0, J: 1}, {I: 0, J: 2}},
		// residue 3 is the partner of both 0 and 1, once via the duplicate
		{{I: 0, J: 3}, {I: 1, J: 7}},
	}
	for _, test := range tests {
		a := &Alignment{Blocks: []Block{{test}}}
		if _, err := a.Mapping(4); err != ErrAmbiguous {
			t.Fatalf("Expected ErrAmbiguous for %v, got %v.", test, err)
		}
	}
}

func TestClone(t *testing.T) {
	a := FromPairs([]Pair{{I: 0, J: 5}, {I: 1, J: 6}})
	c := a.Clone()
	c.Blocks[0].Pairs[0].J = 9
	if a.Blocks[0].Pairs[0].J != 5 {
		t.Fatal("Clone shares pairs with the original.")
	}
	if (*Alignment)(nil).Clone() != nil || !(*Alignment)(nil).Empty() {
		t.Fatal("A nil alignment should clone to nil and be empty.")
	}
}

// handMatrix returns a rows x 2*rows matrix filled with -1.
func handMatrix(rows int) (*simmat.Matrix, []structure.Coords, []structure.Coords) {
	ca := synth.Random(1, rows, 10)
	m := simmat.New(ca, 8, 3)
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			m.Set(i, j, -1)
		}
	}
	return m, ca, append(append([]structure.Coords{}, ca...), ca...)
}

func TestGotohGap(t *testing.T) {
	m, ca1, ca2 := handMatrix(6)
	for _, c := range []Pair{{I: 0, J: 0}, {I: 1, J: 1}, {I: 2, J: 2}, {I: 3, J: 5}, {I: 4, J: 6}, {I: 5, J: 7}} {
		m.Set(c.I, c.J, 3)
	}

	a, err := DefaultGotoh.Align(m, ca1, ca2)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Blocks) != 2 || a.Len() != 6 {
		t.Fatalf("Expected two blocks of three, got %s.", a)
	}
	if math.Abs(a.Score-12.5) > 1e-12 {
		t.Fatalf("Expected score 12.5 but got %f.", a.Score)
	}

	short := Gotoh{GapOpen: 5, GapExtend: 0.5, MaxGap: 1}
	a, err = short.Align(m, ca1, ca2)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Blocks) != 1 || a.Len() != 3 || a.Blocks[0].Pairs[0] != (Pair{I: 0, J: 0}) {
		t.Fatalf("A gap of two should not be allowed, got %s.", a)
	}
}

func TestGotohEmpty(t *testing.T) {
	m, ca1, ca2 := handMatrix(5)
	a, err := DefaultGotoh.Align(m, ca1, ca2)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Empty() {
		t.Fatalf("Nothing scores above zero, but got %s.", a)
	}
}

func TestGotohShape(t *testing.T) {
	m, ca1, _ := handMatrix(5)
	_, err := DefaultGotoh.Align(m, ca1, ca1)
	if _, ok := err.(*ShapeError); !ok {
		t.Fatalf("Expected a shape error, got %v.", err)
	}
}

func TestSelfAlignment(t *testing.T) {
	ca := synth.Repeats(5, 4, 20, 0)
	ca2 := append(append([]structure.Coords{}, ca...), ca...)
	m := simmat.New(ca, 8, 3).MaskDiagonal(8, simmat.HardMask)
	mean, std := m.Stats()

	a, err := DefaultGotoh.Align(m, ca, ca2)
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() < 70 || len(a.Blocks) != 1 {
		t.Fatalf("Expected one long block, got %s.", a)
	}
	offset := a.Blocks[0].Pairs[0].J - a.Blocks[0].Pairs[0].I
	if offset%20 != 0 {
		t.Fatalf("Offset %d is not a whole number of repeats.", offset)
	}

	if err := a.Evaluate(ca, ca2, m, Background{mean, std}); err != nil {
		t.Fatal(err)
	}
	if a.RMSD > 0.01 || a.TMScore < 0.85 || a.Probability < 3.5 {
		t.Fatalf("Expected a perfect, significant alignment: %s", a)
	}
}

func TestEvaluateTooFew(t *testing.T) {
	m, ca1, ca2 := handMatrix(5)
	a := FromPairs([]Pair{{I: 0, J: 1}, {I: 1, J: 2}})
	if err := a.Evaluate(ca1, ca2, m, Background{0, 1}); err == nil {
		t.Fatal("Expected an error for two pairs.")
	}
}

func TestProbability(t *testing.T) {
	if p := Probability(48, 16, Background{1, 2}); math.Abs(p-4) > 1e-12 {
		t.Fatalf("Expected Z 4 but got %f.", p)
	}
	if p := Probability(48, 16, Background{1, 0}); p != 0 {
		t.Fatalf("Expected Z 0 without spread but got %f.", p)
	}

	// At the same mean score, four times the pairs doubles Z.
	short := Probability(3*16, 16, Background{1, 2})
	long := Probability(3*64, 64, Background{1, 2})
	if math.Abs(long-2*short) > 1e-12 {
		t.Fatalf("Expected Z %f for 64 pairs but got %f.", 2*short, long)
	}
}

func BenchmarkGotoh(b *testing.B) {
	ca := synth.Repeats(5, 4, 40, 0)
	ca2 := append(append([]structure.Coords{}, ca...), ca...)
	m := simmat.New(ca, 8, 3).MaskDiagonal(8, simmat.HardMask)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DefaultGotoh.Align(m, ca, ca2)
	}
}
