package rmsd

import (
	"errors"
	"fmt"
	"math"

	"github.com/TuftsBCB/structure"

	matrix "github.com/skelterjohn/go.matrix"
)

// ErrTooFew is returned by Superpose when fewer than three pairs of
// coordinates are given. A rotation is not determined by less.
var ErrTooFew = errors.New("at least three coordinate pairs are required")

// Transform is a rigid body motion. A point x is mapped to Rot*x + Trans.
type Transform struct {
	Rot   Matrix3
	Trans structure.Coords
}

// Identity returns the transform that leaves every point in place.
func Identity() Transform {
	return Transform{Rot: Identity3}
}

// Apply maps a single point.
func (t Transform) Apply(c structure.Coords) structure.Coords {
	r := t.Rot.Apply(c)
	return structure.Coords{
		X: r.X + t.Trans.X,
		Y: r.Y + t.Trans.Y,
		Z: r.Z + t.Trans.Z,
	}
}

// ApplyAll returns a new slice with every point mapped by t.
func (t Transform) ApplyAll(atoms []structure.Coords) []structure.Coords {
	cols := len(atoms)
	X := make([]float64, 3*cols)
	for i, a := range atoms {
		X[0*cols+i] = a.X
		X[1*cols+i] = a.Y
		X[2*cols+i] = a.Z
	}
	M := mult_3x3_3xN(cols, t.Rot[:], X)

	moved := make([]structure.Coords, cols)
	for i := range moved {
		moved[i] = structure.Coords{
			X: M[0*cols+i] + t.Trans.X,
			Y: M[1*cols+i] + t.Trans.Y,
			Z: M[2*cols+i] + t.Trans.Z,
		}
	}
	return moved
}

func (t Transform) String() string {
	r := t.Rot
	return fmt.Sprintf(
		"|%0.3f %0.3f %0.3f|   |%0.3f|\n"+
			"|%0.3f %0.3f %0.3f| + |%0.3f|\n"+
			"|%0.3f %0.3f %0.3f|   |%0.3f|",
		r[0], r[1], r[2], t.Trans.X,
		r[3], r[4], r[5], t.Trans.Y,
		r[6], r[7], r[8], t.Trans.Z)
}

// Superpose computes the transform that best maps moving onto fixed in the
// least squares sense:
//
// Build the 3xN matrices X and Y containing, for the sets moving and fixed
// respectively, the coordinates for each of the N atoms after centering
// the atoms by subtracting the centroids.
//
// Compute the covariance matrix C=X(Y^T)
//
// Compute the SVD (Singular Value Decomposition) of C=US(V^T)
//
// Compute d=sign(det(V(U^T)))
//
// Compute the optimal rotation R as R = V([1 0 0] [0 1 0] [0 0 d])(U^T)
//
// The translation then carries the rotated centroid of moving onto the
// centroid of fixed.
func Superpose(moving, fixed []structure.Coords) (Transform, error) {
	if len(moving) != len(fixed) {
		return Transform{}, fmt.Errorf("Superposition requires two sets of "+
			"equal length, but got %d and %d.", len(moving), len(fixed))
	}
	if len(moving) < 3 {
		return Transform{}, ErrTooFew
	}

	cols := len(moving)
	X, cm := centered(moving)
	Y, cf := centered(fixed)
	C := covariant_3x3(cols, X, Y)

	U, _, V, err := matrix.MakeDenseMatrix(C[:], 3, 3).SVD()
	if err != nil {
		return Transform{}, fmt.Errorf("Could not compute SVD of covariance "+
			"matrix: %s", err)
	}
	u, v := fromDense(U), fromDense(V)
	ut := u.Transpose()

	// If the determinant is negative, the rotation would be improper (a
	// reflection). Flipping the sign of the smallest singular direction
	// makes it proper.
	if v.Mult(ut).Det() < 0 {
		adjust := Matrix3{
			1, 0, 0,
			0, 1, 0,
			0, 0, -1,
		}
		v = v.Mult(adjust)
	}
	R := v.Mult(ut)
	for _, x := range R {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Transform{}, errors.New("Superposition produced a " +
				"non-finite rotation matrix.")
		}
	}

	rc := R.Apply(cm)
	return Transform{
		Rot:   R,
		Trans: structure.Coords{X: cf.X - rc.X, Y: cf.Y - rc.Y, Z: cf.Z - rc.Z},
	}, nil
}

// RMSD returns the root mean square deviation of struct1 and struct2 after
// optimal superposition.
//
// Note that RMSD will panic if the lengths of struct1 and struct2 differ.
// Sets with fewer than three atoms are compared without superposition.
func RMSD(struct1, struct2 []structure.Coords) float64 {
	if len(struct1) != len(struct2) {
		panic(fmt.Sprintf("Computing the RMSD of two structures require that "+
			"they have equal length. But the lengths of the two structures "+
			"provided are %d and %d.", len(struct1), len(struct2)))
	}
	t, err := Superpose(struct1, struct2)
	if err != nil {
		t = Identity()
	}
	return Deviation(struct1, struct2, t)
}

// Deviation returns the RMSD between moving mapped by t and fixed. No fitting
// is done.
func Deviation(moving, fixed []structure.Coords, t Transform) float64 {
	if len(moving) == 0 {
		return 0
	}
	var sum float64
	for i := range moving {
		sum += dist2(t.Apply(moving[i]), fixed[i])
	}
	return math.Sqrt(sum / float64(len(moving)))
}

// D0 is the TM-score distance scale for a structure of the given length.
// It is bounded below by 0.5 so that short structures still get a sensible
// scale.
func D0(length int) float64 {
	if length <= 21 {
		return 0.5
	}
	d0 := 1.24*math.Cbrt(float64(length-15)) - 1.8
	if d0 < 0.5 {
		return 0.5
	}
	return d0
}

// TMScore computes the TM-score of the pairs (moving[i], fixed[i]) after
// applying t to moving, normalized by norm residues.
func TMScore(moving, fixed []structure.Coords, t Transform, norm int) float64 {
	if norm <= 0 || len(moving) == 0 {
		return 0
	}
	d0 := D0(norm)
	var sum float64
	for i := range moving {
		sum += 1.0 / (1.0 + dist2(t.Apply(moving[i]), fixed[i])/(d0*d0))
	}
	return sum / float64(norm)
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b structure.Coords) float64 {
	return math.Sqrt(dist2(a, b))
}

func dist2(a, b structure.Coords) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return dx*dx + dy*dy + dz*dz
}

func fromDense(A *matrix.DenseMatrix) Matrix3 {
	var m Matrix3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*3+c] = A.Get(r, c)
		}
	}
	return m
}
