package alignment

import (
	"math"

	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/symmetry/rmsd"
	"github.com/TuftsBCB/symmetry/simmat"
)

// Background is the distribution of similarity scores that an alignment's
// scores are compared against.
type Background struct {
	Mean, Std float64
}

// Evaluate superposes the aligned residues of ca1 onto their partners in
// ca2 and fills in the transform, RMSD, TM-score and probability of a.
//
// The RMSD is that of the least squares fit of every pair. The transform is
// the one maximizing the TM-score, normalised by the length of ca1, so that
// a few badly fitting pairs do not tilt it. The probability is the
// Z-score of the summed aligned similarity score in m against the sum of
// as many cells drawn from bg:
//
//	Z = (sum - len*bg.Mean) / (bg.Std * sqrt(len))
//
// Alignments with fewer than three pairs cannot be superposed and yield
// rmsd.ErrTooFew.
func (a *Alignment) Evaluate(
	ca1, ca2 []structure.Coords,
	m *simmat.Matrix,
	bg Background,
) error {
	pairs := a.Pairs()
	if len(pairs) < 3 {
		return rmsd.ErrTooFew
	}
	moving := make([]structure.Coords, len(pairs))
	fixed := make([]structure.Coords, len(pairs))
	var sum float64
	for i, p := range pairs {
		moving[i], fixed[i] = ca1[p.I], ca2[p.J]
		sum += m.At(p.I, p.J)
	}

	lsq, err := rmsd.Superpose(moving, fixed)
	if err != nil {
		return err
	}
	t, tm, err := rmsd.TMSuperpose(moving, fixed, len(ca1))
	if err != nil {
		return err
	}
	a.Transform, a.Superposed = t, true
	a.RMSD = rmsd.Deviation(moving, fixed, lsq)
	a.TMScore = tm
	a.Probability = Probability(sum, len(pairs), bg)
	if math.IsNaN(a.RMSD) || math.IsNaN(a.TMScore) {
		return &NumericalError{"superposition score", math.NaN()}
	}
	return nil
}

// Probability is the Z-score of a sum of length aligned similarity scores.
// It is zero when the background has no spread.
func Probability(sum float64, length int, bg Background) float64 {
	if bg.Std <= 0 || length <= 0 {
		return 0
	}
	n := float64(length)
	return (sum - n*bg.Mean) / (bg.Std * math.Sqrt(n))
}
