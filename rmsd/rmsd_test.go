package rmsd

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/TuftsBCB/structure"

	matrix "github.com/skelterjohn/go.matrix"
)

var rng = rand.New(rand.NewSource(42))

func ExampleRMSD() {
	// If you add a test, make sure you add a corresponding "RMSD: ..."
	// to the output test at the end of this function.
	tests := [][2][]structure.Coords{
		{
			{
				atom(-2.803, -15.373, 24.556),
				atom(0.893, -16.062, 25.147),
				atom(1.368, -12.371, 25.885),
				atom(-1.651, -12.153, 28.177),
				atom(-0.440, -15.218, 30.068),
				atom(2.551, -13.273, 31.372),
				atom(0.105, -11.330, 33.567),
			},
			{
				atom(-14.739, -18.673, 15.040),
				atom(-12.473, -15.810, 16.074),
				atom(-14.802, -13.307, 14.408),
				atom(-17.782, -14.852, 16.171),
				atom(-16.124, -14.617, 19.584),
				atom(-15.029, -11.037, 18.902),
				atom(-18.577, -10.001, 17.996),
			},
		},
	}
	for _, test := range tests {
		rms := RMSD(test[0], test[1])
		fmt.Printf("RMSD: %f\n", rms)
	}
	// Output:
	// RMSD: 0.719106
}

func TestSuperposeRecoversTransform(t *testing.T) {
	for i := 0; i < 200; i++ {
		atoms := randomAtoms(11)
		want := Transform{
			Rot:   randomRotation(),
			Trans: randomAtom(),
		}
		moved := want.ApplyAll(atoms)

		got, err := Superpose(atoms, moved)
		if err != nil {
			t.Fatal(err)
		}
		for j := range want.Rot {
			if math.Abs(want.Rot[j]-got.Rot[j]) > 1e-6 {
				t.Fatalf("Expected rotation\n%s\nbut got\n%s", want, got)
			}
		}
		if d := Deviation(atoms, moved, got); d > 1e-6 {
			t.Fatalf("Expected zero deviation but got %f.", d)
		}
	}
}

func TestSuperposeProper(t *testing.T) {
	for i := 0; i < 200; i++ {
		tr, err := Superpose(randomAtoms(9), randomAtoms(9))
		if err != nil {
			t.Fatal(err)
		}
		if det := tr.Rot.Det(); math.Abs(det-1) > 1e-9 {
			t.Fatalf("Rotation has determinant %f, not 1.", det)
		}
	}
}

func TestSuperposeErrors(t *testing.T) {
	if _, err := Superpose(randomAtoms(2), randomAtoms(2)); err != ErrTooFew {
		t.Fatalf("Expected ErrTooFew, got %v.", err)
	}
	if _, err := Superpose(randomAtoms(4), randomAtoms(5)); err == nil {
		t.Fatal("Expected an error for mismatched lengths.")
	}
}

func TestTMScore(t *testing.T) {
	atoms := randomAtoms(40)
	if tm := TMScore(atoms, atoms, Identity(), 40); math.Abs(tm-1) > 1e-12 {
		t.Fatalf("Identical structures have TM-score %f, not 1.", tm)
	}
	if tm := TMScore(atoms, atoms, Identity(), 80); math.Abs(tm-0.5) > 1e-12 {
		t.Fatalf("Half coverage should give TM-score 0.5, got %f.", tm)
	}
	if tm := TMScore(nil, nil, Identity(), 0); tm != 0 {
		t.Fatalf("Empty TM-score should be 0, got %f.", tm)
	}
}

func TestTMSuperpose(t *testing.T) {
	atoms := randomAtoms(30)
	want := Transform{Rot: randomRotation(), Trans: randomAtom()}
	moved := want.ApplyAll(atoms)

	// A third of the pairs are off by 10 along x.
	for i := 20; i < 30; i++ {
		moved[i].X += 10
	}

	got, tm, err := TMSuperpose(atoms, moved, 30)
	if err != nil {
		t.Fatal(err)
	}
	if d := Deviation(atoms[:20], moved[:20], got); d > 1e-6 {
		t.Fatalf("The unperturbed pairs deviate by %f.", d)
	}
	lsq, err := Superpose(atoms, moved)
	if err != nil {
		t.Fatal(err)
	}
	if lsqTM := TMScore(atoms, moved, lsq, 30); tm <= lsqTM {
		t.Fatalf("TM-score %f should beat the least squares fit's %f.", tm, lsqTM)
	}
	if tm < 20.0/30.0 {
		t.Fatalf("TM-score %f is below the unperturbed fraction.", tm)
	}
}

func TestDet(t *testing.T) {
	for _, test := range randomMatrices(1000, 3, 3) {
		var m Matrix3
		copy(m[:], test)

		// Laplace expansion along the first row.
		want := m[0]*(m[4]*m[8]-m[5]*m[7]) -
			m[1]*(m[3]*m[8]-m[5]*m[6]) +
			m[2]*(m[3]*m[7]-m[4]*m[6])
		scale := 0.0
		for _, x := range m {
			scale = math.Max(scale, math.Abs(x))
		}
		if math.Abs(m.Det()-want) > 1e-9*scale*scale*scale {
			t.Fatalf("The determinant of\n%s\nis %f but we said %f.",
				tmat(test), want, m.Det())
		}
	}
	if d := randomRotation().Det(); !near(d, 1) {
		t.Fatalf("A rotation should have determinant 1, not %f.", d)
	}
}

func TestCovariant(t *testing.T) {
	cols := 11
	tests1 := randomMatrices(10000, 3, cols)
	tests2 := randomMatrices(10000, 3, cols)
	for i, test1 := range tests1 {
		test2 := tests2[i]

		// Compute our covariant
		tC_ := covariant_3x3(cols, test1, test2)
		tC := tmat(tC_[:])

		// Now compute the "correct" covariant.
		mat1 := matrix.MakeDenseMatrix(test1, 3, cols)
		mat2 := matrix.MakeDenseMatrix(test2, 3, cols)
		aC_, _ := mat1.TimesDense(mat2.Transpose())
		aC := tmat(aC_.Array())

		if !tC.equal(aC) {
			t.Fatalf("The covariant of\n%s\nand\n%s\nis\n%s\nbut we said\n%s\n",
				tmat(test1), tmat(test2), aC, tC)
		}
	}
}

func Test_3x3_times_3xN(t *testing.T) {
	cols := 11
	tests1 := randomMatrices(10000, 3, 3)
	tests2 := randomMatrices(10000, 3, cols)
	for i, test1 := range tests1 {
		test2 := tests2[i]

		// Compute our product.
		tC_ := mult_3x3_3xN(cols, test1, test2)
		tC := tmat(tC_[:])

		// Now compute the "correct" product.
		mat1 := matrix.MakeDenseMatrix(test1, 3, 3)
		mat2 := matrix.MakeDenseMatrix(test2, 3, cols)
		aC_, _ := mat1.TimesDense(mat2)
		aC := tmat(aC_.Array())

		if !tC.equal(aC) {
			t.Fatalf("The product of\n%s\nand\n%s\nis\n%s\nbut we said\n%s\n",
				tmat(test1), tmat(test2), aC, tC)
		}
	}
}

func BenchmarkSuperpose(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		atoms1 := randomAtoms(11)
		atoms2 := randomAtoms(11)
		b.StartTimer()
		Superpose(atoms1, atoms2)
	}
}

type tmat []float64

func (m tmat) String() string {
	s := ""
	for r := 0; r*3 < len(m) && r < 3; r++ {
		s += fmt.Sprintf("|%f  %f  %f|\n", m[r*3], m[r*3+1], m[r*3+2])
	}
	return s
}

func (m1 tmat) equal(m2 tmat) bool {
	if len(m1) != len(m2) {
		return false
	}
	for i := range m1 {
		if !near(m1[i], m2[i]) {
			return false
		}
	}
	return true
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// randomRotation builds a proper rotation from a random unit quaternion.
func randomRotation() Matrix3 {
	w, x, y, z := rng.NormFloat64(), rng.NormFloat64(),
		rng.NormFloat64(), rng.NormFloat64()
	n := math.Sqrt(w*w + x*x + y*y + z*z)
	w, x, y, z = w/n, x/n, y/n, z/n
	return Matrix3{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w),
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w),
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y),
	}
}

func randomMatrices(cnt, rows, cols int) [][]float64 {
	ms := make([][]float64, cnt)
	for i := 0; i < cnt; i++ {
		ms[i] = randomMatrix(rows, cols)
	}
	return ms
}

func randomMatrix(rows, cols int) (m []float64) {
	m = make([]float64, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m[r*cols+c] = rng.Float64() * float64(rng.Intn(100000))
		}
	}
	return
}

func randomAtoms(cnt int) []structure.Coords {
	atoms := make([]structure.Coords, cnt)
	for i := 0; i < cnt; i++ {
		atoms[i] = randomAtom()
	}
	return atoms
}

func randomAtom() structure.Coords {
	return atom(rng.Float64()*50, rng.Float64()*50, rng.Float64()*50)
}

func atom(x, y, z float64) structure.Coords {
	return structure.Coords{X: x, Y: y, Z: z}
}
