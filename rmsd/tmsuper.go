package rmsd

import (
	"fmt"

	"github.com/TuftsBCB/structure"
)

// TMSuperpose searches for the transform that maximizes the TM-score of
// the pairs (moving[i], fixed[i]), normalized by norm residues. The best
// transform found is returned with its TM-score.
//
// Unlike Superpose, which weighs every pair equally, the TM-score rewards
// a transform for fitting a large subset very well. The search seeds a
// least squares fit from all pairs and from contiguous runs of half and a
// quarter of the pairs. Each fit is then refined by keeping only the pairs
// within a distance cutoff and fitting again, until the kept set stops
// changing.
func TMSuperpose(moving, fixed []structure.Coords, norm int) (Transform, float64, error) {
	n := len(moving)
	if n != len(fixed) {
		return Transform{}, 0, fmt.Errorf("Superposition requires two sets of "+
			"equal length, but got %d and %d.", n, len(fixed))
	}
	best, err := Superpose(moving, fixed)
	if err != nil {
		return Transform{}, 0, err
	}
	bestTM := TMScore(moving, fixed, best, norm)

	cutoff := D0(norm)
	if cutoff < 4.5 {
		cutoff = 4.5
	} else if cutoff > 8 {
		cutoff = 8
	}

	sel1 := make([]structure.Coords, 0, n)
	sel2 := make([]structure.Coords, 0, n)
	for length := n; length >= 3; length /= 2 {
		step := length / 2
		if step < 1 {
			step = 1
		}
		for start := 0; start+length <= n; start += step {
			idx := make([]int, length)
			for i := range idx {
				idx[i] = start + i
			}
			for iter := 0; iter < 20; iter++ {
				sel1, sel2 = sel1[:0], sel2[:0]
				for _, i := range idx {
					sel1 = append(sel1, moving[i])
					sel2 = append(sel2, fixed[i])
				}
				t, err := Superpose(sel1, sel2)
				if err != nil {
					break
				}
				if tm := TMScore(moving, fixed, t, norm); tm > bestTM {
					best, bestTM = t, tm
				}
				next := closePairs(moving, fixed, t, cutoff)
				if sameIndices(idx, next) {
					break
				}
				idx = next
			}
			if length == n {
				break
			}
		}
		if length < 12 {
			break
		}
	}
	return best, bestTM, nil
}

// closePairs returns the indices of the pairs within cutoff of each other
// under t, widening the cutoff until at least three pairs qualify.
func closePairs(moving, fixed []structure.Coords, t Transform, cutoff float64) []int {
	d2 := make([]float64, len(moving))
	for i := range moving {
		d2[i] = dist2(t.Apply(moving[i]), fixed[i])
	}
	for {
		var idx []int
		for i, d := range d2 {
			if d < cutoff*cutoff {
				idx = append(idx, i)
			}
		}
		if len(idx) >= 3 || len(idx) == len(moving) {
			return idx
		}
		cutoff += 0.5
	}
}

func sameIndices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
