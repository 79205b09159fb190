package symm

import (
	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/symmetry/alignment"
	"github.com/TuftsBCB/symmetry/simmat"
)

// Driver repeatedly self-aligns a structure, masking every accepted
// alignment out of the similarity matrix so that the next round finds a
// different rotational offset.
type Driver struct {
	Config  Config
	Aligner alignment.Aligner
}

// NewDriver returns a driver using the dynamic programming aligner with the
// gap penalties of conf.
func NewDriver(conf Config) *Driver {
	return &Driver{Config: conf, Aligner: conf.aligner()}
}

// Run is the outcome of one driver run.
type Run struct {
	// Best is the last accepted alignment, or nil if none was significant.
	Best *alignment.Alignment

	// Accepted holds every significant alignment in the order found.
	Accepted []*alignment.Alignment

	// Iterations is the number of alignment rounds performed, including the
	// final insignificant one.
	Iterations int

	// Background holds the similarity score statistics of the matrix after
	// the diagonal was masked.
	Background alignment.Background
}

// Significant reports whether any round produced a significant alignment.
func (r *Run) Significant() bool {
	return len(r.Accepted) > 0
}

// First returns the first accepted alignment, or nil.
func (r *Run) First() *alignment.Alignment {
	if len(r.Accepted) == 0 {
		return nil
	}
	return r.Accepted[0]
}

// Run self-aligns ca for at most maxIterations rounds. A round that fails
// numerically or produces an insignificant alignment ends the run; that is
// not an error. Errors are only returned for unusable input.
func (d *Driver) Run(ca []structure.Coords, maxIterations int) (*Run, error) {
	if err := checkCoords(ca, d.Config.FragmentLength); err != nil {
		return nil, err
	}
	conf := d.Config
	ca2 := duplicate(ca)

	m := simmat.New(ca, conf.FragmentLength, conf.Cutoff)
	m.MaskDiagonal(conf.WindowSize, conf.Decay)
	mean, std := m.Stats()
	run := &Run{Background: alignment.Background{Mean: mean, Std: std}}

	for run.Iterations < maxIterations {
		run.Iterations++
		cand, err := d.Aligner.Align(m, ca, ca2)
		if err != nil || cand.Empty() {
			break
		}
		err = cand.Evaluate(ca, ca2, m, run.Background)
		if err != nil || !conf.Significant(cand) {
			break
		}
		run.Best = cand
		run.Accepted = append(run.Accepted, cand)
		m.MaskAlignment(cand.Pairs(), conf.WindowSize, conf.Decay)
	}
	return run, nil
}

// duplicate returns ca followed by a copy of itself.
func duplicate(ca []structure.Coords) []structure.Coords {
	ca2 := make([]structure.Coords, 2*len(ca))
	copy(ca2, ca)
	copy(ca2[len(ca):], ca)
	return ca2
}
