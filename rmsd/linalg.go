package rmsd

import (
	"github.com/TuftsBCB/structure"
)

// Matrix3 represents a 3x3 matrix, in row-major order
// | 0 1 2 |
// | 3 4 5 |
// | 6 7 8 |
type Matrix3 [9]float64

// Identity3 is the 3x3 identity matrix.
var Identity3 = Matrix3{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

func (a Matrix3) Mult(b Matrix3) Matrix3 {
	return Matrix3{
		a[0]*b[0] + a[1]*b[3] + a[2]*b[6],
		a[0]*b[1] + a[1]*b[4] + a[2]*b[7],
		a[0]*b[2] + a[1]*b[5] + a[2]*b[8],

		a[3]*b[0] + a[4]*b[3] + a[5]*b[6],
		a[3]*b[1] + a[4]*b[4] + a[5]*b[7],
		a[3]*b[2] + a[4]*b[5] + a[5]*b[8],

		a[6]*b[0] + a[7]*b[3] + a[8]*b[6],
		a[6]*b[1] + a[7]*b[4] + a[8]*b[7],
		a[6]*b[2] + a[7]*b[5] + a[8]*b[8],
	}
}

func (a Matrix3) Transpose() Matrix3 {
	return Matrix3{
		a[0], a[3], a[6],
		a[1], a[4], a[7],
		a[2], a[5], a[8],
	}
}

func (a Matrix3) Det() float64 {
	// 048 + 156 + 237 - 246 - 138 - 057
	return a[0]*a[4]*a[8] +
		a[1]*a[5]*a[6] +
		a[2]*a[3]*a[7] -
		a[2]*a[4]*a[6] -
		a[1]*a[3]*a[8] -
		a[0]*a[5]*a[7]
}

func (a Matrix3) Trace() float64 {
	return a[0] + a[4] + a[8]
}

// Apply multiplies the column vector c by a.
func (a Matrix3) Apply(c structure.Coords) structure.Coords {
	return structure.Coords{
		X: a[0]*c.X + a[1]*c.Y + a[2]*c.Z,
		Y: a[3]*c.X + a[4]*c.Y + a[5]*c.Z,
		Z: a[6]*c.X + a[7]*c.Y + a[8]*c.Z,
	}
}

func mult_3x3_3xN(cols int, a, b []float64) []float64 {
	var index int

	m := make([]float64, 3*cols)
	for r := 0; r < 3; r++ {
		for c := 0; c < cols; c++ {
			index = r*cols + c
			m[index] = 0
			for i := 0; i < 3; i++ {
				m[index] += a[r*3+i] * b[i*cols+c]
			}
		}
	}
	return m
}

func covariant_3x3(cols int, a, b []float64) Matrix3 {
	var C Matrix3
	var index int
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			index = r*3 + c
			C[index] = 0
			for i := 0; i < cols; i++ {
				C[index] += a[r*cols+i] * b[c*cols+i]
			}
		}
	}
	return C
}

// centered returns the coordinates as a 3xN row-major matrix after
// subtracting the centroid, along with the centroid itself.
func centered(atoms []structure.Coords) ([]float64, structure.Coords) {
	cent := centroid(atoms)
	cols := len(atoms)
	m := make([]float64, 3*cols)
	for i, a := range atoms {
		m[0*cols+i] = a.X - cent.X
		m[1*cols+i] = a.Y - cent.Y
		m[2*cols+i] = a.Z - cent.Z
	}
	return m, cent
}

// centroid calculates the average position of a set of atoms.
func centroid(atoms []structure.Coords) structure.Coords {
	var xs, ys, zs float64
	for _, atom := range atoms {
		xs += atom.X
		ys += atom.Y
		zs += atom.Z
	}
	n := float64(len(atoms))
	return structure.Coords{X: xs / n, Y: ys / n, Z: zs / n}
}
