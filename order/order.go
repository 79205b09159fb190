// Package order estimates the number of repeats in a structure from the
// axis of one of its self-alignments.
//
// The structure is rotated about the axis through a range of angles and,
// at each angle, compared with itself by a superposition distance. A
// structure with K-fold symmetry about the axis comes back onto itself at
// every multiple of 2*pi/K, so the distance curve dips there. The order is
// read off the curve by fitting periodic basis functions, one per candidate
// order, and checking that the chosen order's dips are really there.
package order

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/symmetry/axis"
)

// ErrMultipass is returned by Detect when the detector is configured for
// multipass counting, which needs a self-alignment driver rather than an
// axis.
var ErrMultipass = errors.New("multipass order detection requires the " +
	"self-alignment driver")

// Detector estimates symmetry order by rotation sampling.
type Detector struct {
	Method Method

	// MaxOrder is the largest order considered.
	MaxOrder int

	// AngleIncrement is the sampling step in degrees.
	AngleIncrement float64

	// DipRatio is the largest distance at a candidate dip, as a fraction of
	// the distance where the candidate order predicts a peak, that still
	// counts as the structure coming back onto itself.
	DipRatio float64
}

// DefaultDetector samples every 5 degrees and considers orders up to 8.
var DefaultDetector = Detector{
	Method:         Harmonic,
	MaxOrder:       8,
	AngleIncrement: 5,
	DipRatio:       0.5,
}

// Validate checks that the detector can sample a curve.
func (d Detector) Validate() error {
	if d.MaxOrder < 1 {
		return fmt.Errorf("maximum order must be at least 1, got %d", d.MaxOrder)
	}
	if d.AngleIncrement <= 0 || d.AngleIncrement > 180 {
		return fmt.Errorf("angle increment must be in (0, 180], got %f",
			d.AngleIncrement)
	}
	if d.DipRatio <= 0 || d.DipRatio >= 1 {
		return fmt.Errorf("dip ratio must be in (0, 1), got %f", d.DipRatio)
	}
	return nil
}

// Detect returns the symmetry order of ca about ax, between 1 and
// MaxOrder. An undefined axis always has order 1.
//
// The method's fit only picks which order is tested first; an order is
// returned only if the curve dips at each of its angles, and is then promoted
// to its largest multiple that also dips.
func (d Detector) Detect(ca []structure.Coords, ax axis.Axis) (int, error) {
	if d.Method == Multipass {
		return 1, ErrMultipass
	}
	if err := d.Validate(); err != nil {
		return 1, err
	}
	if !ax.Defined || len(ca) == 0 {
		return 1, nil
	}

	angles, dists := d.Curve(ca, ax)
	if len(angles) < 2 || maxOf(dists) <= 1e-9 {
		// Flat curve: rotation does not move the structure at all.
		return 1, nil
	}

	cands, err := d.rank(angles, dists)
	if err != nil {
		return 1, err
	}
	for _, c := range cands {
		if c.order < 2 {
			continue
		}
		if d.dips(c.order, angles, dists) {
			return d.promote(c.order, angles, dists), nil
		}
	}
	return 1, nil
}

// Curve samples the superposition distance of ca against itself rotated
// about ax, at every multiple of the angle increment from the method's
// minimum angle up to pi.
func (d Detector) Curve(
	ca []structure.Coords,
	ax axis.Axis,
) (angles, dists []float64) {
	angles = d.angles()
	dists = make([]float64, len(angles))
	for i, theta := range angles {
		dists[i] = SuperpositionDistance(ca, ax.Rotate(ca, theta))
	}
	return angles, dists
}

// angles returns m*step for every integer m with min <= m*step <= pi. The
// grid is anchored at zero so that any angle that is a multiple of the step
// is sampled exactly.
func (d Detector) angles() []float64 {
	const eps = 1e-9
	step := d.AngleIncrement * math.Pi / 180
	lo := int(math.Ceil(d.Method.minAngle(d.MaxOrder)/step - eps))
	hi := int(math.Floor(math.Pi/step + eps))
	if lo < 0 {
		lo = 0
	}
	if hi < lo {
		return nil
	}
	angles := make([]float64, 0, hi-lo+1)
	for m := lo; m <= hi; m++ {
		angles = append(angles, math.Min(float64(m)*step, math.Pi))
	}
	return angles
}

// dips reports whether the curve comes back down at every multiple of
// 2*pi/k up to pi. At a dip, the distance must be at most DipRatio times the
// mean distance halfway to the neighbouring dips, where order k predicts the
// curve to peak. Comparing locally rather than against the whole curve keeps
// helical repeats, whose dips never reach zero, detectable.
func (d Detector) dips(k int, angles, dists []float64) bool {
	const eps = 1e-9
	half := math.Pi / float64(k)
	for j := 1; ; j++ {
		theta := 2 * float64(j) * half
		if theta > math.Pi+eps {
			break
		}
		var peak float64
		var count int
		for _, h := range [2]float64{theta - half, theta + half} {
			if h > math.Pi+eps {
				continue
			}
			peak += interpolate(angles, dists, h)
			count++
		}
		peak /= float64(count)
		if interpolate(angles, dists, theta) > d.DipRatio*peak {
			return false
		}
	}
	return true
}

// promote returns the largest multiple of k whose dips are all present. A
// curve with 6-fold dips also has 2-fold and 3-fold dips, and the fit may
// rank those first.
func (d Detector) promote(k int, angles, dists []float64) int {
	best := k
	for mult := 2 * k; mult <= d.MaxOrder; mult += k {
		if d.dips(mult, angles, dists) {
			best = mult
		}
	}
	return best
}

// SuperpositionDistance compares two point sets without a correspondence:
// every point in each set is matched with its nearest neighbour in the
// other set, and the distances are averaged over both directions.
func SuperpositionDistance(a, b []structure.Coords) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var sum float64
	for _, p := range a {
		sum += nearest(p, b)
	}
	for _, p := range b {
		sum += nearest(p, a)
	}
	return sum / float64(len(a)+len(b))
}

func nearest(p structure.Coords, set []structure.Coords) float64 {
	best := math.Inf(1)
	for _, q := range set {
		dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
		if d := dx*dx + dy*dy + dz*dz; d < best {
			best = d
		}
	}
	return math.Sqrt(best)
}

// interpolate evaluates the piecewise linear curve through (xs, ys) at x,
// clamping outside the sampled range. xs must be increasing.
func interpolate(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	i := sort.SearchFloat64s(xs, x)
	if xs[i] == x {
		return ys[i]
	}
	x0, x1 := xs[i-1], xs[i]
	t := (x - x0) / (x1 - x0)
	return ys[i-1] + t*(ys[i]-ys[i-1])
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		m = math.Max(m, x)
	}
	return m
}
