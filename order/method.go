package order

import (
	"fmt"
	"math"
	"strings"
)

// Method selects how an order is read off the distance curve.
type Method int

const (
	// Harmonic fits every order's sin^2(k*theta/2) at once, without an
	// intercept, over angles from pi/MaxOrder, and picks the largest
	// amplitude.
	Harmonic Method = iota

	// HarmonicFloating is Harmonic with an intercept term, sampled from 0.
	HarmonicFloating

	// The single methods fit D = a + b*f_k(theta) for each order k on its
	// own, and pick either the largest amplitude b or the smallest residual.
	SingleHarmonicAmp
	SingleHarmonicSSE
	SingleCuspAmp
	SingleCuspSSE
	SingleCuspFixedAmp
	SingleCuspFixedSSE

	// Multipass counts significant self-alignment rounds instead of
	// sampling rotations.
	Multipass
)

var methodNames = []string{
	Harmonic:           "harmonic",
	HarmonicFloating:   "harmonic-floating",
	SingleHarmonicAmp:  "single-harmonic-amp",
	SingleHarmonicSSE:  "single-harmonic-sse",
	SingleCuspAmp:      "single-cusp-amp",
	SingleCuspSSE:      "single-cusp-sse",
	SingleCuspFixedAmp: "single-cusp-fixed-amp",
	SingleCuspFixedSSE: "single-cusp-fixed-sse",
	Multipass:          "multipass",
}

// Methods lists every method name accepted by ParseMethod.
func Methods() []string {
	return append([]string(nil), methodNames...)
}

// ParseMethod converts a method name to a Method. Case is ignored.
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range methodNames {
		if name == s {
			return Method(m), nil
		}
	}
	return 0, fmt.Errorf("unknown order detection method '%s' (expected "+
		"one of %s)", s, strings.Join(methodNames, ", "))
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// Set implements flag.Value.
func (m *Method) Set(s string) error {
	parsed, err := ParseMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Method) minAngle(maxOrder int) float64 {
	if m == Harmonic && maxOrder > 0 {
		return math.Pi / float64(maxOrder)
	}
	return 0
}

func (m Method) single() bool {
	return m >= SingleHarmonicAmp && m <= SingleCuspFixedSSE
}

func (m Method) bySSE() bool {
	return m == SingleHarmonicSSE || m == SingleCuspSSE || m == SingleCuspFixedSSE
}

// basis returns the periodic function of order k used by the method.
func (m Method) basis(k int) func(theta float64) float64 {
	fk := float64(k)
	switch m {
	case SingleCuspAmp, SingleCuspSSE:
		return func(theta float64) float64 {
			return math.Sqrt(math.Max(0, 1-math.Cos(fk*theta)))
		}
	case SingleCuspFixedAmp, SingleCuspFixedSSE:
		// Triangle wave with period 2*pi/k: zero at multiples of the
		// period, one halfway between.
		return func(theta float64) float64 {
			x := fk * theta / (2 * math.Pi)
			return 2 * math.Abs(x-math.Floor(x+0.5))
		}
	default:
		return func(theta float64) float64 {
			s := math.Sin(fk * theta / 2)
			return s * s
		}
	}
}
