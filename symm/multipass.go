package symm

import (
	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/symmetry/symgraph"
)

// MultipassDetector estimates the order of a structure by counting how many
// distinct significant self-alignments it has. A structure with K repeats
// aligns onto itself at K-1 rotational offsets.
type MultipassDetector struct {
	Driver *Driver
}

// Detect runs the driver until an alignment is insignificant (at most
// MaxSymmOrder rounds) and returns the order together with the run.
//
// With r significant rounds the order is r+1 when r > 1. A single
// significant alignment is only taken as two-fold symmetry if refining it
// as such still gives a TM-score above the threshold.
func (md MultipassDetector) Detect(ca []structure.Coords) (int, *Run, error) {
	conf := md.Driver.Config
	run, err := md.Driver.Run(ca, conf.MaxSymmOrder)
	if err != nil {
		return 1, nil, err
	}

	r := len(run.Accepted)
	switch {
	case r > 1:
		k := r + 1
		if k > conf.MaxSymmOrder {
			k = conf.MaxSymmOrder
		}
		return k, run, nil
	case r == 1:
		g, err := symgraph.FromAlignments(len(ca), run.Accepted)
		if err != nil {
			return 1, run, nil
		}
		ref, err := conf.Refine(ca, g.Cycles(2), 2)
		if err != nil || ref.TMScore < conf.TMThreshold {
			return 1, run, nil
		}
		return 2, run, nil
	}
	return 1, run, nil
}
