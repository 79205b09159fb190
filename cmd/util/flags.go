package util

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/TuftsBCB/symmetry/order"
	"github.com/TuftsBCB/symmetry/simmat"
	"github.com/TuftsBCB/symmetry/symm"
)

var (
	FlagCpu = runtime.NumCPU()

	FlagVerbose = false

	// FlagConfig holds the analysis parameters. It starts as
	// symm.DefaultConfig and is updated by the "symm" flags.
	FlagConfig = symm.DefaultConfig

	flagSoftMask = 0.0
)

func init() {
	log.SetFlags(0)
}

type commonFlag struct {
	set, init func()
	use       bool
}

var commonFlags = map[string]*commonFlag{
	"cpu": {
		set: func() {
			flag.IntVar(&FlagCpu, "cpu", FlagCpu,
				"The max number of CPUs to use.")
		},
		init: func() {
			runtime.GOMAXPROCS(FlagCpu)
		},
	},
	"verbose": {
		set: func() {
			flag.BoolVar(&FlagVerbose, "verbose", FlagVerbose,
				"When set, progress and intermediate results are shown.")
		},
	},
	"symm": {
		set: setConfigFlags,
		init: func() {
			if flagSoftMask > 0 {
				FlagConfig.Decay = simmat.Decay{Exp: flagSoftMask}
			}
			Assert(FlagConfig.Validate(), "Invalid parameters")
		},
	},
}

func setConfigFlags() {
	c := &FlagConfig
	flag.IntVar(&c.FragmentLength, "frag-len", c.FragmentLength,
		"The number of residues in each fragment compared by the\n"+
			"similarity matrix.")
	flag.Float64Var(&c.Cutoff, "cutoff", c.Cutoff,
		"The mean distance difference (in Angstroms) at which two\n"+
			"fragments stop being similar.")
	flag.IntVar(&c.WindowSize, "window", c.WindowSize,
		"The number of cells around an alignment that are masked\n"+
			"before the next round.")
	flag.Float64Var(&flagSoftMask, "soft-mask", flagSoftMask,
		"When positive, masked cells are penalised by this value times\n"+
			"e^-d at distance d instead of being removed.")
	flag.Float64Var(&c.GapOpen, "gap-open", c.GapOpen,
		"The penalty for opening a gap.")
	flag.Float64Var(&c.GapExtend, "gap-extend", c.GapExtend,
		"The penalty for extending a gap by one residue.")
	flag.IntVar(&c.MaxGapSize, "max-gap", c.MaxGapSize,
		"The longest gap allowed in an alignment. Zero means unbounded.")
	flag.IntVar(&c.MaxSymmOrder, "max-order", c.MaxSymmOrder,
		"The largest symmetry order searched for.")
	flag.Float64Var(&c.AngleIncrement, "angle-step", c.AngleIncrement,
		"The step (in degrees) at which the superposition curve is\n"+
			"sampled during order detection.")
	flag.Var(&c.OrderMethod, "order-method",
		fmt.Sprintf("The order detection method. One of:\n%s",
			strings.Join(order.Methods(), ", ")))
	flag.Float64Var(&c.DipRatio, "dip-ratio", c.DipRatio,
		"How far the superposition curve must dip at a candidate order's\n"+
			"angles, relative to the angles half way between them.")
	flag.Float64Var(&c.TMThreshold, "tm", c.TMThreshold,
		"The minimum TM-score of a significant alignment.")
	flag.Float64Var(&c.ProbabilityThreshold, "prob", c.ProbabilityThreshold,
		"The minimum Z-score of a significant alignment.")
	flag.Float64Var(&c.RMSDThreshold, "rmsd", c.RMSDThreshold,
		"The maximum RMSD of a significant alignment.")
	flag.Var(&c.Significance, "significance",
		"Whether 'all' or 'any' of the thresholds must be met.")
	flag.IntVar(&c.MinCoreLength, "min-core", c.MinCoreLength,
		"The minimum number of residues per repeat in a refined alignment.")
	flag.Float64Var(&c.MaxScrew, "max-screw", c.MaxScrew,
		"The largest translation along the axis (in Angstroms) still\n"+
			"considered closed symmetry.")
	flag.IntVar(&c.MaxIterations, "iterations", c.MaxIterations,
		"The number of self-alignment rounds used to find the first\n"+
			"significant alignment.")
}

func FlagUse(names ...string) {
	for _, name := range names {
		commonFlags[name].use = true
	}
}

// Usage just calls `flag.Usage`. It's included here to avoid
// an extra import to `flag` just to call Usage.
func Usage() {
	flag.Usage()
}

// Arg just calls `flag.Arg`. It's included here to avoid
// an extra import to `flag` just to call Arg.
func Arg(i int) string {
	return flag.Arg(i)
}

// NArg just calls `flag.NArg`. It's included here to avoid
// an extra import to `flag` just to call NArg.
func NArg() int {
	return flag.NArg()
}

// Args just calls `flag.Args`.
func Args() []string {
	return flag.Args()
}

func FlagParse(positional string, desc string) {
	for _, fl := range commonFlags {
		if fl.use {
			fl.set()
		}
	}

	flag.Usage = func() {
		log.Printf("Usage: %s [flags] %s\n\n",
			path.Base(os.Args[0]), positional)
		if len(desc) > 0 {
			log.Printf("%s\n", desc)
		}
		flag.VisitAll(func(fl *flag.Flag) {
			var def string
			if len(fl.DefValue) > 0 {
				def = fmt.Sprintf(" (default: %s)", fl.DefValue)
			}

			usage := strings.Replace(fl.Usage, "\n", "\n    ", -1)
			log.Printf("-%s%s\n", fl.Name, def)
			log.Printf("    %s\n", usage)
		})
		os.Exit(1)
	}
	flag.Parse()

	for _, fl := range commonFlags {
		if fl.use && fl.init != nil {
			fl.init()
		}
	}
}
