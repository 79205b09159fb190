package symm

import (
	"fmt"

	"github.com/TuftsBCB/symmetry/alignment"
	"github.com/TuftsBCB/symmetry/order"
	"github.com/TuftsBCB/symmetry/simmat"
)

// Significance says how the three significance tests of a self-alignment
// are combined.
type Significance int

const (
	// All requires the TM-score, probability and RMSD tests to all pass.
	All Significance = iota

	// Any accepts an alignment passing at least one of the tests.
	Any
)

func (s Significance) String() string {
	switch s {
	case All:
		return "all"
	case Any:
		return "any"
	}
	return fmt.Sprintf("Significance(%d)", int(s))
}

// Set implements flag.Value.
func (s *Significance) Set(v string) error {
	switch v {
	case "all":
		*s = All
	case "any":
		*s = Any
	default:
		return fmt.Errorf("significance must be 'all' or 'any', not '%s'", v)
	}
	return nil
}

// DefaultConfig provides the settings used when nothing else is known about
// the structure. For example:
//
//	result, err := symm.DefaultConfig.Analyze(ca)
var DefaultConfig = Config{
	FragmentLength: 8,
	Cutoff:         3.0,
	WindowSize:     8,
	Decay:          simmat.HardMask,

	GapOpen:    5,
	GapExtend:  0.5,
	MaxGapSize: 30,

	MaxSymmOrder:   8,
	AngleIncrement: 5,
	OrderMethod:    order.Harmonic,
	DipRatio:       0.5,

	TMThreshold:          0.4,
	ProbabilityThreshold: 3.5,
	RMSDThreshold:        5.0,
	Significance:         All,

	MinCoreLength: 15,
	MaxScrew:      1.0,
	MaxIterations: 1,
}

// Config controls every stage of the analysis.
type Config struct {
	// FragmentLength is the window of residues compared when scoring one
	// cell of the similarity matrix.
	FragmentLength int

	// Cutoff is the mean distance deviation (in Angstroms) at which a pair
	// of fragments scores zero. Closer fragments score positive.
	Cutoff float64

	// WindowSize is the half width of the band masked around the diagonal
	// and around every accepted alignment.
	WindowSize int

	// Decay shapes the masking penalty. The default excludes masked cells
	// outright.
	Decay simmat.Decay

	// Gap penalties of the alignment. Gaps longer than MaxGapSize are not
	// allowed; zero or less means unbounded.
	GapOpen    float64
	GapExtend  float64
	MaxGapSize int

	// MaxSymmOrder is the largest order searched for.
	MaxSymmOrder int

	// AngleIncrement is the rotation sampling step in degrees.
	AngleIncrement float64

	// OrderMethod chooses how the order is estimated.
	OrderMethod order.Method

	// DipRatio is passed to the rotation sampling order detector.
	DipRatio float64

	// An alignment is significant when its TM-score is at least
	// TMThreshold, its probability is at least ProbabilityThreshold and its
	// RMSD is below RMSDThreshold. Significance says whether all of these
	// must hold or only one of them.
	TMThreshold          float64
	ProbabilityThreshold float64
	RMSDThreshold        float64
	Significance         Significance

	// MinCoreLength is the fewest repeat groups a refined alignment may
	// have.
	MinCoreLength int

	// MaxScrew is the largest translation along the axis (in Angstroms) of
	// a closed symmetry. Anything more is open (helical).
	MaxScrew float64

	// MaxIterations bounds the self-alignment rounds used to find the
	// first alignment. One is the single pass mode.
	MaxIterations int
}

// Validate reports the first setting that cannot work.
func (conf Config) Validate() error {
	switch {
	case conf.FragmentLength < 2:
		return fmt.Errorf("fragment length must be at least 2, got %d",
			conf.FragmentLength)
	case conf.WindowSize < 0:
		return fmt.Errorf("window size must not be negative, got %d",
			conf.WindowSize)
	case conf.GapOpen < 0 || conf.GapExtend < 0:
		return fmt.Errorf("gap penalties must not be negative, got %f and %f",
			conf.GapOpen, conf.GapExtend)
	case conf.MaxSymmOrder < 2:
		return fmt.Errorf("maximum symmetry order must be at least 2, got %d",
			conf.MaxSymmOrder)
	case conf.MinCoreLength < 0:
		return fmt.Errorf("minimum core length must not be negative, got %d",
			conf.MinCoreLength)
	case conf.MaxScrew < 0:
		return fmt.Errorf("maximum screw must not be negative, got %f",
			conf.MaxScrew)
	case conf.MaxIterations < 1:
		return fmt.Errorf("at least one iteration is required, got %d",
			conf.MaxIterations)
	case conf.Significance != All && conf.Significance != Any:
		return fmt.Errorf("unknown significance mode %s", conf.Significance)
	}
	if conf.OrderMethod != order.Multipass {
		if err := conf.detector().Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Significant applies the significance tests to an evaluated alignment.
func (conf Config) Significant(a *alignment.Alignment) bool {
	if a.Empty() || !a.Superposed {
		return false
	}
	tm := a.TMScore >= conf.TMThreshold
	prob := a.Probability >= conf.ProbabilityThreshold
	rmsd := a.RMSD < conf.RMSDThreshold
	if conf.Significance == Any {
		return tm || prob || rmsd
	}
	return tm && prob && rmsd
}

func (conf Config) aligner() alignment.Gotoh {
	return alignment.Gotoh{
		GapOpen:   conf.GapOpen,
		GapExtend: conf.GapExtend,
		MaxGap:    conf.MaxGapSize,
	}
}

func (conf Config) detector() order.Detector {
	return order.Detector{
		Method:         conf.OrderMethod,
		MaxOrder:       conf.MaxSymmOrder,
		AngleIncrement: conf.AngleIncrement,
		DipRatio:       conf.DipRatio,
	}
}
