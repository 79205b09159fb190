// Package axis recovers the screw axis of a rigid body transform and rotates
// coordinates about such an axis.
//
// Every proper rigid motion can be written as a rotation about some line
// followed by a translation along that same line (Chasles' theorem). For a
// self-alignment of a symmetric structure, the angle tells how far one repeat
// is turned onto the next, and the translation along the line (the screw)
// tells whether the repeats close into a ring (screw near zero) or stack up
// like a helix.
package axis

import (
	"fmt"
	"math"

	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/symmetry/rmsd"
)

// MinAngle is the smallest rotation angle (in radians) for which the axis
// direction is considered defined.
const MinAngle = 0.01

// Axis describes a rigid transform as a screw motion: a rotation of Angle
// radians about the line through Point with unit direction Direction,
// followed by a translation of Screw along Direction.
type Axis struct {
	Angle     float64
	Direction structure.Coords
	Point     structure.Coords
	Screw     float64

	// Defined is false when the rotation is too small for the direction to
	// mean anything.
	Defined bool
}

// New computes the screw axis of t.
func New(t rmsd.Transform) Axis {
	R := t.Rot
	c := clamp((R.Trace()-1)/2, -1, 1)
	angle := math.Acos(c)
	if angle < MinAngle {
		ax := Axis{Angle: angle}
		if n := norm(t.Trans); n > 0 {
			ax.Direction = scale(t.Trans, 1/n)
			ax.Screw = n
		}
		return ax
	}

	// The symmetric part of R minus cos(angle)*I is (1-cos)*uu^T. Its
	// largest diagonal entry gives the most stable column to read u from,
	// even when the angle is close to pi and the skew part vanishes.
	sym := func(i, j int) float64 {
		v := (R[i*3+j] + R[j*3+i]) / 2
		if i == j {
			v -= c
		}
		return v
	}
	k := 0
	for i := 1; i < 3; i++ {
		if sym(i, i) > sym(k, k) {
			k = i
		}
	}
	den := math.Sqrt(math.Max(sym(k, k)*(1-c), 1e-300))
	u := structure.Coords{X: sym(0, k) / den, Y: sym(1, k) / den, Z: sym(2, k) / den}
	u = scale(u, 1/norm(u))

	// The skew part is 2*sin(angle)*u, which fixes the sign of u.
	skew := structure.Coords{X: R[7] - R[5], Y: R[2] - R[6], Z: R[3] - R[1]}
	if dot(u, skew) < 0 {
		u = scale(u, -1)
	}

	screw := dot(t.Trans, u)
	perp := sub(t.Trans, scale(u, screw))
	cot := 1 / math.Tan(angle/2)
	point := scale(add(perp, scale(cross(u, perp), cot)), 0.5)
	return Axis{
		Angle:     angle,
		Direction: u,
		Point:     point,
		Screw:     screw,
		Defined:   true,
	}
}

// ScrewMagnitude is the absolute translation along the axis.
func (ax Axis) ScrewMagnitude() float64 {
	return math.Abs(ax.Screw)
}

// ScrewVector is the translation component parallel to the axis.
func (ax Axis) ScrewVector() structure.Coords {
	return scale(ax.Direction, ax.Screw)
}

// Rotation returns the transform rotating points by theta radians about the
// axis line. The screw translation is not included.
func (ax Axis) Rotation(theta float64) rmsd.Transform {
	u := ax.Direction
	c, s := math.Cos(theta), math.Sin(theta)
	t := 1 - c
	R := rmsd.Matrix3{
		c + u.X*u.X*t, u.X*u.Y*t - u.Z*s, u.X*u.Z*t + u.Y*s,
		u.Y*u.X*t + u.Z*s, c + u.Y*u.Y*t, u.Y*u.Z*t - u.X*s,
		u.Z*u.X*t - u.Y*s, u.Z*u.Y*t + u.X*s, c + u.Z*u.Z*t,
	}
	return rmsd.Transform{Rot: R, Trans: sub(ax.Point, R.Apply(ax.Point))}
}

// Rotate returns a copy of atoms rotated by theta radians about the axis.
// The input is not modified.
func (ax Axis) Rotate(atoms []structure.Coords, theta float64) []structure.Coords {
	return ax.Rotation(theta).ApplyAll(atoms)
}

func (ax Axis) String() string {
	if !ax.Defined {
		return fmt.Sprintf("undefined (angle %0.2f deg)", ax.Angle*180/math.Pi)
	}
	return fmt.Sprintf("angle %0.2f deg, direction %v, point %v, screw %0.3f",
		ax.Angle*180/math.Pi, ax.Direction, ax.Point, ax.Screw)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func dot(a, b structure.Coords) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func cross(a, b structure.Coords) structure.Coords {
	return structure.Coords{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func add(a, b structure.Coords) structure.Coords {
	return structure.Coords{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

func sub(a, b structure.Coords) structure.Coords {
	return structure.Coords{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

func scale(a structure.Coords, f float64) structure.Coords {
	return structure.Coords{X: a.X * f, Y: a.Y * f, Z: a.Z * f}
}

func norm(a structure.Coords) float64 {
	return math.Sqrt(dot(a, a))
}
