package symm

import (
	"fmt"

	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/symmetry/alignment"
	"github.com/TuftsBCB/symmetry/axis"
	"github.com/TuftsBCB/symmetry/rmsd"
)

// Type classifies a symmetry by its screw translation.
type Type int

const (
	// Closed symmetry returns to its start after Order rotations, like a
	// point group.
	Closed Type = iota

	// Open symmetry translates along the axis with every rotation, like a
	// helix.
	Open
)

func (t Type) String() string {
	if t == Open {
		return "open"
	}
	return "closed"
}

// Refined is a multi-repeat alignment assembled from repeat groups.
type Refined struct {
	Order int

	// Groups are the repeat groups, each sorted by residue index. Residue
	// Groups[g][k] belongs to repeat k.
	Groups [][]int

	// Alignment has Order blocks. Block k pairs repeat k with repeat k+1
	// (cyclically), one pair per group.
	Alignment *alignment.Alignment

	// Transform carries one repeat onto the next.
	Transform rmsd.Transform
	RMSD      float64
	TMScore   float64
	Axis      axis.Axis
	Type      Type
}

// Refine builds the multi-repeat alignment of ca from groups of k residues
// each.
//
// The transform is fitted to the pooled blocks 0 through k-2; the last
// block, from the final repeat back to the first, is left out of the fit
// since for open symmetry it is not related by the same motion. The
// TM-score is normalised by the (k-1)*N/k residues those blocks could cover
// at most.
func (conf Config) Refine(ca []structure.Coords, groups [][]int, k int) (*Refined, error) {
	if k < 2 {
		return nil, fmt.Errorf("cannot refine order %d", k)
	}
	least := conf.MinCoreLength
	if least < 2 {
		least = 2
	}
	if len(groups) < least {
		return nil, ErrInsufficientSignal
	}
	for _, g := range groups {
		if len(g) != k {
			return nil, fmt.Errorf("repeat group %v does not have %d residues",
				g, k)
		}
	}

	ref := &Refined{
		Order:     k,
		Groups:    groups,
		Alignment: &alignment.Alignment{Blocks: make([]alignment.Block, k)},
	}
	for b := 0; b < k; b++ {
		pairs := make([]alignment.Pair, len(groups))
		for i, g := range groups {
			pairs[i] = alignment.Pair{I: g[b], J: g[(b+1)%k]}
		}
		ref.Alignment.Blocks[b] = alignment.Block{Pairs: pairs}
	}

	var moving, fixed []structure.Coords
	for _, b := range ref.Alignment.Blocks[:k-1] {
		for _, p := range b.Pairs {
			moving = append(moving, ca[p.I])
			fixed = append(fixed, ca[p.J])
		}
	}
	t, err := rmsd.Superpose(moving, fixed)
	if err != nil {
		return nil, err
	}
	norm := (k - 1) * len(ca) / k
	ref.Transform = t
	ref.RMSD = rmsd.Deviation(moving, fixed, t)
	ref.TMScore = rmsd.TMScore(moving, fixed, t, norm)
	ref.Axis = axis.New(t)
	if ref.Axis.ScrewMagnitude() > conf.MaxScrew {
		ref.Type = Open
	}

	ref.Alignment.Transform, ref.Alignment.Superposed = t, true
	ref.Alignment.RMSD, ref.Alignment.TMScore = ref.RMSD, ref.TMScore
	return ref, nil
}

// Repeat is an inclusive range of residues covered by one repeat.
type Repeat struct {
	Start, End int
}

// Repeats returns the range of residues each repeat's core covers.
func (ref *Refined) Repeats() []Repeat {
	if ref == nil || len(ref.Groups) == 0 {
		return nil
	}
	reps := make([]Repeat, ref.Order)
	for k := range reps {
		reps[k] = Repeat{Start: ref.Groups[0][k], End: ref.Groups[0][k]}
		for _, g := range ref.Groups[1:] {
			if g[k] < reps[k].Start {
				reps[k].Start = g[k]
			}
			if g[k] > reps[k].End {
				reps[k].End = g[k]
			}
		}
	}
	return reps
}

func (r Repeat) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
