package simmat

import (
	"math"
)

// Cell addresses one entry of the matrix: residue I against duplicated
// residue J.
type Cell struct {
	I, J int
}

// Decay describes how strongly a cell is penalised as a function of its
// residue distance d from the center being masked:
//
//	penalty(d) = Exp * e^(-d) + sum_p Poly[p] * d^(-p)
//
// Zero coefficients are skipped, so a zero distance is only infinite for
// the polynomial terms that are actually used. Negative penalties are
// treated as zero.
type Decay struct {
	Exp  float64
	Poly []float64
}

// HardMask excludes every cell in the window outright by driving it to
// Floor.
var HardMask = Decay{Poly: []float64{math.MaxFloat64}}

// Penalty returns the amount subtracted from a cell at distance d.
func (dec Decay) Penalty(d int) float64 {
	fd := float64(d)
	penalty := 0.0
	if dec.Exp != 0 {
		penalty += dec.Exp * math.Exp(-fd)
	}
	for p, coef := range dec.Poly {
		if coef == 0 {
			continue
		}
		penalty += coef * math.Pow(fd, -float64(p))
	}
	if math.IsNaN(penalty) || penalty < 0 {
		return 0
	}
	return penalty
}

// MaskDiagonal penalises every cell within window residues of the trivial
// self alignment: j = i, and its mirrors j = i + N and j = i - N.
func (m *Matrix) MaskDiagonal(window int, decay Decay) *Matrix {
	field := m.newField()
	m.diagonalField(field, window)
	m.apply(field, window, decay)
	return m
}

// MaskAlignment penalises every cell within window residues (Chebyshev
// distance) of an aligned pair (a, b) or of its mirrors (a, b - N) and
// (a, b + N). A cell covered by several centers is penalised once, at its
// distance to the nearest one. An empty alignment is a no-op.
func (m *Matrix) MaskAlignment(prev []Cell, window int, decay Decay) *Matrix {
	if len(prev) == 0 {
		return m
	}
	field := m.newField()
	m.alignmentField(field, prev, window)
	m.apply(field, window, decay)
	return m
}

// Mask penalises the diagonal and the previous alignment in one pass. The
// matrix is modified in place and returned; callers that still need the
// unmasked scores must Clone first.
func (m *Matrix) Mask(prev []Cell, window int, decay Decay) *Matrix {
	field := m.newField()
	m.diagonalField(field, window)
	m.alignmentField(field, prev, window)
	m.apply(field, window, decay)
	return m
}

// newField returns a distance field for every cell, initialized past any
// window.
func (m *Matrix) newField() []int {
	field := make([]int, m.Rows()*m.Cols())
	for i := range field {
		field[i] = math.MaxInt32
	}
	return field
}

func (m *Matrix) diagonalField(field []int, window int) {
	if window < 0 {
		return
	}
	rows, cols, n := m.Rows(), m.Cols(), m.n
	for i := 0; i < rows; i++ {
		for _, center := range [3]int{i - n, i, i + n} {
			for j := center - window; j <= center+window; j++ {
				if j < 0 || j >= cols {
					continue
				}
				d := j - center
				if d < 0 {
					d = -d
				}
				if d < field[i*cols+j] {
					field[i*cols+j] = d
				}
			}
		}
	}
}

func (m *Matrix) alignmentField(field []int, prev []Cell, window int) {
	if window < 0 {
		return
	}
	rows, cols, n := m.Rows(), m.Cols(), m.n
	for _, p := range prev {
		for _, b := range [3]int{p.J - n, p.J, p.J + n} {
			for i := p.I - window; i <= p.I+window; i++ {
				if i < 0 || i >= rows {
					continue
				}
				di := i - p.I
				if di < 0 {
					di = -di
				}
				for j := b - window; j <= b+window; j++ {
					if j < 0 || j >= cols {
						continue
					}
					dj := j - b
					if dj < 0 {
						dj = -dj
					}
					d := di
					if dj > d {
						d = dj
					}
					if d < field[i*cols+j] {
						field[i*cols+j] = d
					}
				}
			}
		}
	}
}

func (m *Matrix) apply(field []int, window int, decay Decay) {
	cols := m.Cols()
	for k, d := range field {
		if d > window {
			continue
		}
		i, j := k/cols, k%cols
		m.Set(i, j, math.Max(Floor, m.Get(i, j)-decay.Penalty(d)))
	}
}
