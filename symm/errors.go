package symm

import (
	"errors"
	"fmt"
	"math"

	"github.com/TuftsBCB/structure"
)

var (
	// ErrEmptyStructure is returned for a structure without residues.
	ErrEmptyStructure = errors.New("structure has no residues")

	// ErrTooShort is returned for a structure too short to fill two
	// similarity fragments.
	ErrTooShort = errors.New("structure is too short for self-alignment")

	// ErrInsufficientSignal is returned by Refine when too few repeat
	// groups survive to form a core.
	ErrInsufficientSignal = errors.New("insufficient signal: too few " +
		"residues in the symmetric core")
)

// Reasons given for an asymmetric (order 1) result.
const (
	ReasonInsignificant  = "Insignificant self-alignment"
	ReasonNoOrder        = "No symmetry order detected"
	ReasonAmbiguous      = "Ambiguous alignment"
	ReasonRefinement     = "Refinement failed"
	ReasonNotSignificant = "Result not significant"

	// ReasonError is used by batch tools for structures that could not be
	// analyzed at all.
	ReasonError = "Error"
)

// CoordsError reports an unusable coordinate.
type CoordsError struct {
	Residue int
	Coords  structure.Coords
}

func (e *CoordsError) Error() string {
	return fmt.Sprintf("residue %d has non-finite coordinates %v",
		e.Residue, e.Coords)
}

func checkCoords(ca []structure.Coords, fragLen int) error {
	if len(ca) == 0 {
		return ErrEmptyStructure
	}
	if len(ca) < 2*fragLen {
		return ErrTooShort
	}
	for i, c := range ca {
		for _, x := range [3]float64{c.X, c.Y, c.Z} {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return &CoordsError{i, c}
			}
		}
	}
	return nil
}
