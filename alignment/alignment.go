// Package alignment describes self-alignments of a structure against its
// duplicate: the aligned residue pairs split into contiguous blocks, the
// superposition they imply and the scores used to judge them.
package alignment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/TuftsBCB/symmetry/rmsd"
	"github.com/TuftsBCB/symmetry/simmat"
)

// ErrAmbiguous is returned by Mapping when one residue is aligned to two
// different partners.
var ErrAmbiguous = errors.New("ambiguous alignment: a residue has two partners")

// Pair is one aligned residue pair: residue I of the structure against
// residue J of the duplicated structure. It is a cell on the alignment's
// path through the similarity matrix.
type Pair = simmat.Cell

// Block is a run of pairs in which both sides advance by one residue at a
// time.
type Block struct {
	Pairs []Pair
}

// Len is the number of pairs in the block.
func (b Block) Len() int {
	return len(b.Pairs)
}

// Alignment is an ordered list of blocks plus the scores derived from them.
// Scores are only meaningful after Evaluate.
type Alignment struct {
	Blocks []Block

	// Score is the raw dynamic programming score of the path.
	Score float64

	RMSD    float64
	TMScore float64

	// Probability is a Z-score of the aligned similarity scores against
	// the background of the matrix.
	Probability float64

	// Transform superposes the first side onto the second. It is only set
	// when Superposed is true.
	Transform  rmsd.Transform
	Superposed bool
}

// Physical maps an index into the duplicated structure of n residues back
// to the residue it copies.
func Physical(j, n int) int {
	if n <= 0 {
		return j
	}
	j %= n
	if j < 0 {
		j += n
	}
	return j
}

// FromPairs groups pairs into blocks, starting a new block whenever either
// side skips a residue.
func FromPairs(pairs []Pair) *Alignment {
	a := &Alignment{}
	var cur []Pair
	for _, p := range pairs {
		if len(cur) > 0 {
			last := cur[len(cur)-1]
			if p.I != last.I+1 || p.J != last.J+1 {
				a.Blocks = append(a.Blocks, Block{cur})
				cur = nil
			}
		}
		cur = append(cur, p)
	}
	if len(cur) > 0 {
		a.Blocks = append(a.Blocks, Block{cur})
	}
	return a
}

// Len is the total number of aligned pairs.
func (a *Alignment) Len() int {
	if a == nil {
		return 0
	}
	n := 0
	for _, b := range a.Blocks {
		n += b.Len()
	}
	return n
}

// Empty reports whether the alignment has no pairs. A nil alignment is
// empty.
func (a *Alignment) Empty() bool {
	return a.Len() == 0
}

// Pairs returns every aligned pair in block order.
func (a *Alignment) Pairs() []Pair {
	if a == nil {
		return nil
	}
	pairs := make([]Pair, 0, a.Len())
	for _, b := range a.Blocks {
		pairs = append(pairs, b.Pairs...)
	}
	return pairs
}

// Clone returns a deep copy of a.
func (a *Alignment) Clone() *Alignment {
	if a == nil {
		return nil
	}
	c := *a
	c.Blocks = make([]Block, len(a.Blocks))
	for i, b := range a.Blocks {
		c.Blocks[i] = Block{append([]Pair(nil), b.Pairs...)}
	}
	return &c
}

// Mapping returns, for each of the n residues, the residue it is aligned to
// (folding duplicated indices back with Physical), or -1 if it is not
// aligned. ErrAmbiguous is returned if any residue on either side is
// aligned to two different partners.
func (a *Alignment) Mapping(n int) ([]int, error) {
	forward := make([]int, n)
	backward := make([]int, n)
	for i := range forward {
		forward[i], backward[i] = -1, -1
	}
	for _, p := range a.Pairs() {
		if p.I < 0 || p.I >= n {
			return nil, fmt.Errorf("residue %d out of range for %d residues",
				p.I, n)
		}
		j := Physical(p.J, n)
		if forward[p.I] != -1 && forward[p.I] != j {
			return nil, ErrAmbiguous
		}
		if backward[j] != -1 && backward[j] != p.I {
			return nil, ErrAmbiguous
		}
		forward[p.I], backward[j] = j, p.I
	}
	return forward, nil
}

func (a *Alignment) String() string {
	if a.Empty() {
		return "empty alignment"
	}
	blocks := make([]string, len(a.Blocks))
	for i, b := range a.Blocks {
		first, last := b.Pairs[0], b.Pairs[len(b.Pairs)-1]
		blocks[i] = fmt.Sprintf("%d-%d:%d-%d", first.I, last.I, first.J, last.J)
	}
	return fmt.Sprintf("%d pairs [%s] (TM %0.3f, RMSD %0.3f, Z %0.2f)",
		a.Len(), strings.Join(blocks, " "), a.TMScore, a.RMSD, a.Probability)
}
