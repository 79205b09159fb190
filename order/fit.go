package order

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// candidate is one order with the scores of its fit.
type candidate struct {
	order int
	amp   float64
	sse   float64
}

// rank fits the curve with the detector's method and returns every order
// from 1 to MaxOrder, best first.
func (d Detector) rank(angles, dists []float64) ([]candidate, error) {
	var cands []candidate
	var err error
	if d.Method.single() {
		cands, err = d.fitSingle(angles, dists)
	} else {
		cands, err = d.fitMulti(angles, dists)
	}
	if err != nil {
		return nil, err
	}
	if d.Method.bySSE() {
		sort.SliceStable(cands, func(i, j int) bool {
			return cands[i].sse < cands[j].sse
		})
	} else {
		sort.SliceStable(cands, func(i, j int) bool {
			return cands[i].amp > cands[j].amp
		})
	}
	return cands, nil
}

// fitMulti fits every order's basis function in one regression.
func (d Detector) fitMulti(angles, dists []float64) ([]candidate, error) {
	intercept := d.Method == HarmonicFloating
	cols := d.MaxOrder
	if intercept {
		cols++
	}
	X := mat.NewDense(len(angles), cols, nil)
	for k := 1; k <= d.MaxOrder; k++ {
		f := d.Method.basis(k)
		for i, theta := range angles {
			X.Set(i, k-1, f(theta))
		}
	}
	if intercept {
		for i := range angles {
			X.Set(i, cols-1, 1)
		}
	}
	beta, sse, err := leastSquares(X, dists)
	if err != nil {
		return nil, err
	}
	cands := make([]candidate, d.MaxOrder)
	for k := 1; k <= d.MaxOrder; k++ {
		cands[k-1] = candidate{order: k, amp: beta.AtVec(k - 1), sse: sse}
	}
	return cands, nil
}

// fitSingle fits D = a + b*f_k separately for each order k.
func (d Detector) fitSingle(angles, dists []float64) ([]candidate, error) {
	cands := make([]candidate, 0, d.MaxOrder)
	X := mat.NewDense(len(angles), 2, nil)
	for k := 1; k <= d.MaxOrder; k++ {
		f := d.Method.basis(k)
		for i, theta := range angles {
			X.Set(i, 0, 1)
			X.Set(i, 1, f(theta))
		}
		beta, sse, err := leastSquares(X, dists)
		if err != nil {
			return nil, fmt.Errorf("fitting order %d: %s", k, err)
		}
		cands = append(cands, candidate{order: k, amp: beta.AtVec(1), sse: sse})
	}
	return cands, nil
}

// leastSquares solves the normal equations (X^T X) beta = X^T y and returns
// beta with the residual sum of squares. An ill-conditioned system is
// tolerated; the solution is still the best available.
func leastSquares(X *mat.Dense, ys []float64) (*mat.VecDense, float64, error) {
	rows, _ := X.Dims()
	y := mat.NewVecDense(rows, append([]float64(nil), ys...))

	var xtx mat.Dense
	xtx.Mul(X.T(), X)
	var xty mat.VecDense
	xty.MulVec(X.T(), y)

	var beta mat.VecDense
	if err := beta.SolveVec(&xtx, &xty); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, 0, err
		}
	}

	var fitted mat.VecDense
	fitted.MulVec(X, &beta)
	var sse float64
	for i := 0; i < rows; i++ {
		r := y.AtVec(i) - fitted.AtVec(i)
		sse += r * r
	}
	return &beta, sse, nil
}
