package alignment

import (
	"math"

	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/symmetry/simmat"
)

// Aligner finds a best scoring correspondence between ca1 and ca2 through
// the similarity matrix m. For self-alignment ca2 is the duplicate of ca1.
// Implementations may return an empty alignment when nothing scores above
// zero. Errors are numerical failures.
type Aligner interface {
	Align(m *simmat.Matrix, ca1, ca2 []structure.Coords) (*Alignment, error)
}

// Gotoh is a local alignment with affine gap penalties. Opening a gap costs
// GapOpen and each further residue in it costs GapExtend. Gaps are not
// extended beyond MaxGap residues; MaxGap <= 0 means unbounded.
type Gotoh struct {
	GapOpen   float64
	GapExtend float64
	MaxGap    int
}

// DefaultGotoh is a reasonable set of gap penalties for similarity scores
// on the order of a few units.
var DefaultGotoh = Gotoh{
	GapOpen:   5,
	GapExtend: 0.5,
	MaxGap:    30,
}

// traceback pointers
const (
	fromStart byte = iota
	fromMatch
	fromRowGap
	fromColGap
)

// Align runs the dynamic program over every cell of m. ca1 and ca2 are only
// checked against the shape of m; the scores come from the matrix.
//
// Three tables are kept, one for paths ending in a match, one for paths
// ending in a gap that skips columns (rowGap) and one for paths ending in a
// gap that skips rows (colGap). A gap never switches direction.
func (g Gotoh) Align(
	m *simmat.Matrix,
	ca1, ca2 []structure.Coords,
) (*Alignment, error) {
	rows, cols := m.Rows(), m.Cols()
	if len(ca1) != rows || len(ca2) != cols {
		return nil, &ShapeError{rows, cols, len(ca1), len(ca2)}
	}
	if rows == 0 || cols == 0 {
		return &Alignment{}, nil
	}

	w := cols + 1
	size := (rows + 1) * w
	match := make([]float64, size)
	rowGap := make([]float64, size)
	colGap := make([]float64, size)
	rowLen := make([]int32, size)
	colLen := make([]int32, size)
	ptrMatch := make([]byte, size)
	ptrRow := make([]byte, size)
	ptrCol := make([]byte, size)

	inf := math.Inf(-1)
	for k := range match {
		match[k], rowGap[k], colGap[k] = inf, inf, inf
	}

	best, bi, bj := 0.0, -1, -1
	for i := 1; i <= rows; i++ {
		for j := 1; j <= cols; j++ {
			k := i*w + j

			// Match: extend the best path ending at (i-1, j-1) or start.
			d := k - w - 1
			prev, from := 0.0, fromStart
			if match[d] > prev {
				prev, from = match[d], fromMatch
			}
			if rowGap[d] > prev {
				prev, from = rowGap[d], fromRowGap
			}
			if colGap[d] > prev {
				prev, from = colGap[d], fromColGap
			}
			match[k] = prev + m.Get(i-1, j-1)
			ptrMatch[k] = from
			if match[k] > best {
				best, bi, bj = match[k], i, j
			}

			// Gap skipping column j.
			l := k - 1
			rowGap[k], ptrRow[k], rowLen[k] = match[l]-g.GapOpen, fromMatch, 1
			if g.canExtend(rowLen[l]) && rowGap[l]-g.GapExtend > rowGap[k] {
				rowGap[k], ptrRow[k], rowLen[k] =
					rowGap[l]-g.GapExtend, fromRowGap, rowLen[l]+1
			}

			// Gap skipping row i.
			u := k - w
			colGap[k], ptrCol[k], colLen[k] = match[u]-g.GapOpen, fromMatch, 1
			if g.canExtend(colLen[u]) && colGap[u]-g.GapExtend > colGap[k] {
				colGap[k], ptrCol[k], colLen[k] =
					colGap[u]-g.GapExtend, fromColGap, colLen[u]+1
			}
		}
	}
	if bi < 0 {
		return &Alignment{}, nil
	}
	if math.IsInf(best, 0) {
		return nil, &NumericalError{"dynamic programming score", best}
	}

	var pairs []Pair
	i, j, state := bi, bj, fromMatch
	for state != fromStart && i > 0 && j > 0 {
		k := i*w + j
		switch state {
		case fromMatch:
			pairs = append(pairs, Pair{I: i - 1, J: j - 1})
			state = ptrMatch[k]
			i, j = i-1, j-1
		case fromRowGap:
			state = ptrRow[k]
			j--
		case fromColGap:
			state = ptrCol[k]
			i--
		}
	}
	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	a := FromPairs(pairs)
	a.Score = best
	return a, nil
}

func (g Gotoh) canExtend(length int32) bool {
	return g.MaxGap <= 0 || int(length) < g.MaxGap
}
