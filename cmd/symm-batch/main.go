// Command symm-batch detects internal symmetry in many protein chains in
// parallel and writes one tab separated row per chain.
//
// Structures are given as PDB files on the command line or, one per line,
// in a list file. A structure may be followed by a colon and a chain
// identifier, as in "1abc.pdb:A". Chains whose analysis fails get a row with
// order 1 and an error message so that every input is accounted for.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/TuftsBCB/symmetry/cmd/util"
	"github.com/TuftsBCB/symmetry/symm"
)

var (
	flagCpuProfile = ""
	flagList       = ""
	flagOutput     = ""
	flagTimeout    = time.Duration(0)
)

var header = []string{
	"structure", "chain", "length", "order", "group", "type",
	"rmsd", "tm_score", "angle", "screw", "repeats", "reason",
}

func init() {
	flag.StringVar(&flagCpuProfile, "cpuprofile", flagCpuProfile,
		"When set, a CPU profile will be written to the file provided.")
	flag.StringVar(&flagList, "list", flagList,
		"A file listing one structure per line, read in addition to any\n"+
			"structures given as arguments.")
	flag.StringVar(&flagOutput, "o", flagOutput,
		"The file to write results to. Standard output is used by default.")
	flag.DurationVar(&flagTimeout, "timeout", flagTimeout,
		"The longest time spent on one chain. Zero means no limit.")
}

func main() {
	util.FlagUse("cpu", "verbose", "symm")
	util.FlagParse("[pdb-file[:chain-id] ...]", "")
	if util.NArg() == 0 && len(flagList) == 0 {
		util.Usage()
	}

	jobs := make([]job, 0, util.NArg())
	for _, arg := range util.Args() {
		jobs = append(jobs, parseJob(arg))
	}
	if len(flagList) > 0 {
		f := util.OpenFile(flagList)
		for _, line := range util.ReadLines(f) {
			jobs = append(jobs, parseJob(line))
		}
		f.Close()
	}

	var out io.Writer = os.Stdout
	if len(flagOutput) > 0 {
		f := util.CreateFile(flagOutput)
		defer f.Close()
		out = f
	}

	if len(flagCpuProfile) > 0 {
		f := util.CreateFile(flagCpuProfile)
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	pool := newSymmWorkers(util.FlagConfig, flagTimeout,
		max(1, runtime.GOMAXPROCS(0)))
	progress := util.NewProgress(len(jobs))
	doneWriting := writer(out, progress, pool)
	for _, j := range jobs {
		pool.enqueue(j)
	}
	pool.done()
	<-doneWriting
	progress.Close()
}

// writer is the only goroutine that writes rows, so rows are never
// interleaved.
func writer(out io.Writer, progress util.Progress, pool pool) chan struct{} {
	done := make(chan struct{}, 0)
	go func() {
		buf := bufio.NewWriter(out)
		fmt.Fprintln(buf, strings.Join(header, "\t"))
		for r := range pool.results {
			fmt.Fprintln(buf, strings.Join(row(r), "\t"))
			if r.err != nil {
				progress.JobDone(fmt.Errorf("%s: %s", r.path, r.err))
			} else {
				progress.JobDone(nil)
			}
		}
		util.Assert(buf.Flush(), "Could not write results")
		done <- struct{}{}
	}()
	return done
}

func row(r result) []string {
	chain := r.chain
	if len(chain) == 0 {
		chain = "-"
	}
	cols := []string{util.StructureID(r.path), chain, fmt.Sprintf("%d", r.length)}
	if r.err != nil {
		return append(cols, "1", "C1", "-", "-", "-", "-", "-", "-",
			fmt.Sprintf("%s: %s", symm.ReasonError, clean(r.err.Error())))
	}

	s := r.symm
	if !s.Symmetric() {
		return append(cols, "1", "C1", "-", "-", "-", "-", "-", "-", s.Reason)
	}
	reps := make([]string, len(s.Repeats()))
	for i, rep := range s.Repeats() {
		reps[i] = rep.String()
	}
	return append(cols,
		fmt.Sprintf("%d", s.Order),
		s.Group(),
		s.Type.String(),
		fmt.Sprintf("%0.3f", s.RMSD),
		fmt.Sprintf("%0.4f", s.TMScore),
		fmt.Sprintf("%0.2f", s.Axis.Angle*180/math.Pi),
		fmt.Sprintf("%0.3f", s.Axis.Screw),
		strings.Join(reps, ","),
		"-",
	)
}

func parseJob(arg string) job {
	if i := strings.LastIndex(arg, ":"); i > 0 && i == len(arg)-2 {
		return job{path: arg[:i], chain: arg[i+1:]}
	}
	return job{path: arg}
}

// clean keeps an error message on one row.
func clean(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ").Replace(s)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
