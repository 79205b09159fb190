package alignment

import "fmt"

// ShapeError is returned by an Aligner when the coordinates do not match
// the similarity matrix.
type ShapeError struct {
	Rows, Cols int
	Len1, Len2 int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("a %dx%d similarity matrix cannot align %d residues "+
		"against %d", e.Rows, e.Cols, e.Len1, e.Len2)
}

// NumericalError is returned when a score or superposition is not a finite
// number.
type NumericalError struct {
	What  string
	Value float64
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("non-finite %s: %f", e.What, e.Value)
}
