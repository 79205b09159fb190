// Package synth generates synthetic alpha-carbon traces with known symmetry
// for tests.
//
// Fragments are irregular, compact random walks rather than ideal helices
// or strands, since those are self-similar under translation along the
// chain and would produce spurious self-alignments.
package synth

import (
	"math"
	"math/rand"

	"github.com/TuftsBCB/structure"
)

const (
	// Bond is the distance between consecutive alpha-carbons.
	Bond = 3.8

	// Spacing is the minimum distance between non-consecutive residues of
	// a fragment.
	Spacing = 3.0

	// FragmentRadius bounds every fragment residue's distance from the
	// fragment's first residue.
	FragmentRadius = 7.0

	// Radius is the default distance of a fragment's centroid from the
	// symmetry axis.
	Radius = 18.0
)

// Fragment returns a random compact chain of n residues starting at the
// origin.
func Fragment(rng *rand.Rand, n int) []structure.Coords {
	atoms := make([]structure.Coords, 0, n)
	if n == 0 {
		return atoms
	}
	atoms = append(atoms, structure.Coords{})
	for len(atoms) < n {
		last := atoms[len(atoms)-1]
		var next structure.Coords
		for try := 0; try < 1000; try++ {
			next = add(last, scale(randomUnit(rng), Bond))
			if fits(atoms, next) {
				break
			}
		}
		atoms = append(atoms, next)
	}
	return atoms
}

func fits(atoms []structure.Coords, next structure.Coords) bool {
	if norm(next) > FragmentRadius {
		return false
	}
	for _, a := range atoms[:len(atoms)-1] {
		if norm(sub(a, next)) < Spacing {
			return false
		}
	}
	return true
}

// Cyclic places k copies of frag around the z axis. The fragment is
// centred at distance radius from the axis, and copy c is rotated by
// 2*pi*c/k about the axis and raised by c*rise along it. A rise of zero
// gives closed (point group) symmetry; anything else gives a helix.
func Cyclic(frag []structure.Coords, k int, radius, rise float64) []structure.Coords {
	centre := centroid(frag)
	base := make([]structure.Coords, len(frag))
	for i, a := range frag {
		base[i] = sub(a, centre)
		base[i].X += radius
	}

	atoms := make([]structure.Coords, 0, k*len(frag))
	for c := 0; c < k; c++ {
		theta := 2 * math.Pi * float64(c) / float64(k)
		cos, sin := math.Cos(theta), math.Sin(theta)
		for _, a := range base {
			atoms = append(atoms, structure.Coords{
				X: cos*a.X - sin*a.Y,
				Y: sin*a.X + cos*a.Y,
				Z: a.Z + float64(c)*rise,
			})
		}
	}
	return atoms
}

// Repeats is a convenience for Cyclic(Fragment(...), ...) with a fixed
// seed and the default radius.
func Repeats(seed int64, k, n int, rise float64) []structure.Coords {
	rng := rand.New(rand.NewSource(seed))
	return Cyclic(Fragment(rng, n), k, Radius, rise)
}

// Random returns n points drawn uniformly from a cube with the given side
// length. Nothing about them repeats.
func Random(seed int64, n int, side float64) []structure.Coords {
	rng := rand.New(rand.NewSource(seed))
	atoms := make([]structure.Coords, n)
	for i := range atoms {
		atoms[i] = structure.Coords{
			X: rng.Float64() * side,
			Y: rng.Float64() * side,
			Z: rng.Float64() * side,
		}
	}
	return atoms
}

func randomUnit(rng *rand.Rand) structure.Coords {
	for {
		v := structure.Coords{
			X: rng.NormFloat64(),
			Y: rng.NormFloat64(),
			Z: rng.NormFloat64(),
		}
		if n := norm(v); n > 1e-6 {
			return scale(v, 1/n)
		}
	}
}

func centroid(atoms []structure.Coords) structure.Coords {
	var c structure.Coords
	for _, a := range atoms {
		c = add(c, a)
	}
	return scale(c, 1/float64(len(atoms)))
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
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}
