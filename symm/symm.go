// Package symm detects internal rotational symmetry in a single protein
// chain.
//
// The chain's alpha-carbon trace is aligned against a duplicated copy of
// itself. A significant alignment that is not the trivial identity relates
// one part of the chain to another by a rigid rotation. From that rotation
// the number of repeats (the order) is estimated, further alignments at the
// other rotational offsets are collected, and the residues they
// consistently relate are assembled into one alignment of all repeats.
//
// Structures without symmetry are an expected outcome: they produce a
// Result with order 1 and a reason, not an error.
package symm

import (
	"fmt"

	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/symmetry/alignment"
	"github.com/TuftsBCB/symmetry/axis"
	"github.com/TuftsBCB/symmetry/order"
	"github.com/TuftsBCB/symmetry/symgraph"
)

// Result is the outcome of analyzing one structure.
type Result struct {
	// Order is the number of repeats; 1 means no symmetry was found.
	Order int
	Type  Type

	// Refined is the multi-repeat alignment. It is nil for order 1.
	Refined *Refined

	// Alignment is the first significant self-alignment, if any.
	Alignment *alignment.Alignment

	RMSD    float64
	TMScore float64
	Axis    axis.Axis

	// Reason explains an order 1 result.
	Reason string
}

// Symmetric reports whether more than one repeat was found.
func (r *Result) Symmetric() bool {
	return r.Order > 1
}

// Group is the symmetry group in Schoenflies-like notation: "C1" for no
// symmetry, "Cn" for closed n-fold symmetry and "Hn" for open (helical)
// symmetry with n repeats.
func (r *Result) Group() string {
	if r.Order < 2 {
		return "C1"
	}
	if r.Type == Open {
		return fmt.Sprintf("H%d", r.Order)
	}
	return fmt.Sprintf("C%d", r.Order)
}

// Repeats returns the residue range covered by each repeat, or nil for
// order 1.
func (r *Result) Repeats() []Repeat {
	return r.Refined.Repeats()
}

func (r *Result) String() string {
	if !r.Symmetric() {
		return fmt.Sprintf("%s (%s)", r.Group(), r.Reason)
	}
	return fmt.Sprintf("%s %s: RMSD %0.2f, TM-score %0.3f, %s",
		r.Group(), r.Type, r.RMSD, r.TMScore, r.Axis)
}

// Analyze looks for internal symmetry in ca using the dynamic programming
// aligner.
func (conf Config) Analyze(ca []structure.Coords) (*Result, error) {
	return conf.AnalyzeWith(conf.aligner(), ca)
}

// AnalyzeWith is Analyze with a different alignment primitive.
func (conf Config) AnalyzeWith(
	aligner alignment.Aligner,
	ca []structure.Coords,
) (*Result, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if err := checkCoords(ca, conf.FragmentLength); err != nil {
		return nil, err
	}
	d := &Driver{Config: conf, Aligner: aligner}

	// Find a first significant alignment and the order.
	var k int
	var run *Run
	var err error
	if conf.OrderMethod == order.Multipass {
		k, run, err = MultipassDetector{d}.Detect(ca)
		if err != nil {
			return nil, err
		}
	} else {
		if run, err = d.Run(ca, conf.MaxIterations); err != nil {
			return nil, err
		}
	}
	if !run.Significant() {
		return &Result{Order: 1, Reason: ReasonInsignificant}, nil
	}
	first := run.First()
	asymmetric := func(reason string) *Result {
		return &Result{
			Order:     1,
			Alignment: first,
			RMSD:      first.RMSD,
			TMScore:   first.TMScore,
			Axis:      axis.New(first.Transform),
			Reason:    reason,
		}
	}
	if conf.OrderMethod != order.Multipass {
		k, err = conf.detector().Detect(ca, axis.New(first.Transform))
		if err != nil {
			return nil, err
		}
	}
	if k < 2 {
		return asymmetric(ReasonNoOrder), nil
	}

	// Collect alignments at up to k-1 rotational offsets.
	alns := run.Accepted
	if conf.OrderMethod != order.Multipass {
		exhaustive, err := d.Run(ca, k-1)
		if err != nil {
			return nil, err
		}
		alns = exhaustive.Accepted
	}
	if len(alns) > k-1 {
		alns = alns[:k-1]
	}

	g, err := symgraph.FromAlignments(len(ca), alns)
	if err == alignment.ErrAmbiguous {
		return asymmetric(ReasonAmbiguous), nil
	} else if err != nil {
		return nil, err
	}
	ref, err := conf.Refine(ca, g.Cycles(k), k)
	if err != nil {
		return asymmetric(ReasonRefinement), nil
	}
	if ref.TMScore < conf.TMThreshold {
		return asymmetric(ReasonNotSignificant), nil
	}
	return &Result{
		Order:     k,
		Type:      ref.Type,
		Refined:   ref,
		Alignment: first,
		RMSD:      ref.RMSD,
		TMScore:   ref.TMScore,
		Axis:      ref.Axis,
	}, nil
}
