// Package simmat builds and masks the residue similarity matrix used to align
// a structure against a duplicated copy of itself.
//
// Rows index the N residues of the structure. Columns index the 2N residues
// of the duplicated structure, so that an alignment wrapping around the end
// of the chain (a circular permutation) is still a contiguous path through
// the matrix. Column j corresponds to residue j mod N; the seam between the
// two copies is the breakpoint N.
package simmat

import (
	"fmt"
	"math"

	"github.com/TuftsBCB/structure"
	matrix "github.com/skelterjohn/go.matrix"
)

// Floor is the score of a cell that has been masked out completely. It is
// absorbing: masking a floored cell again leaves it at Floor.
const Floor = -1e9

// Matrix is an N x 2N similarity matrix. It is mutated in place by masking
// and must not be shared between analyses.
type Matrix struct {
	*matrix.DenseMatrix
	n int
}

// New builds the similarity matrix of ca against its duplicate.
//
// Cell (i, j) compares the window of fragLen residues centred on residue i
// with the window centred on duplicated residue j. The comparison is over
// intra-window distances, which makes it independent of the relative
// orientation of the two windows:
//
//	score = cutoff - mean |d(i+a, i+b) - d(j+a, j+b)|
//
// where the mean runs over the window offsets a < b that are in range on
// both sides. Cells with no such offsets score 0.
func New(ca []structure.Coords, fragLen int, cutoff float64) *Matrix {
	n := len(ca)
	m := &Matrix{
		DenseMatrix: matrix.Zeros(n, 2*n),
		n:           n,
	}
	if n == 0 {
		return m
	}
	if fragLen < 2 {
		fragLen = 2
	}

	// Distances are computed once on the physical chain. A distance in the
	// duplicate between j+a and j+b is the physical distance between
	// (j+a) mod n and (j+b) mod n.
	dists := make([]float64, n*n)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			d := dist(ca[a], ca[b])
			dists[a*n+b], dists[b*n+a] = d, d
		}
	}

	lo := -fragLen / 2
	hi := lo + fragLen
	for i := 0; i < n; i++ {
		for j := 0; j < 2*n; j++ {
			var sum float64
			var count int
			for a := lo; a < hi; a++ {
				ia, ja := i+a, j+a
				if ia < 0 || ia >= n || ja < 0 || ja >= 2*n {
					continue
				}
				for b := a + 1; b < hi; b++ {
					ib, jb := i+b, j+b
					if ib >= n || jb >= 2*n {
						break
					}
					d1 := dists[ia*n+ib]
					d2 := dists[(ja%n)*n+jb%n]
					sum += math.Abs(d1 - d2)
					count++
				}
			}
			if count > 0 {
				m.Set(i, j, cutoff-sum/float64(count))
			}
		}
	}
	return m
}

// Breakpoint is the column at which the duplicate starts.
func (m *Matrix) Breakpoint() int {
	return m.n
}

// At returns the score of cell (i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.Get(i, j)
}

// Masked reports whether cell (i, j) has been floored.
func (m *Matrix) Masked(i, j int) bool {
	return m.Get(i, j) <= Floor
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{DenseMatrix: m.Copy(), n: m.n}
}

// Stats returns the mean and standard deviation of every cell that has not
// been floored. Both are zero when no such cell exists.
func (m *Matrix) Stats() (mean, std float64) {
	var sum, sumsq float64
	var count int
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v := m.Get(i, j)
			if v <= Floor {
				continue
			}
			sum += v
			sumsq += v * v
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	mean = sum / float64(count)
	variance := sumsq/float64(count) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

func (m *Matrix) String() string {
	return fmt.Sprintf("%dx%d similarity matrix (breakpoint %d)",
		m.Rows(), m.Cols(), m.n)
}

func dist(a, b structure.Coords) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
