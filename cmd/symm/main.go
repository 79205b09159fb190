// Command symm looks for internal rotational symmetry in one protein chain
// and reports its order, axis and repeats.
package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/TuftsBCB/symmetry/cmd/util"
	"github.com/TuftsBCB/symmetry/symm"
)

var flagAlignment = false

func init() {
	flag.BoolVar(&flagAlignment, "alignment", flagAlignment,
		"When set, the residue pairs of the multi-repeat alignment are "+
			"printed.")

	util.FlagUse("cpu", "verbose", "symm")
	util.FlagParse("pdb-file [chain-id]",
		"Detects internal symmetry in the alpha-carbon trace of a chain.\n"+
			"When no chain is given, the first protein chain is used.")
	util.AssertLeastNArg(1)
}

func main() {
	pdbPath := util.Arg(0)
	chain := ""
	if util.NArg() > 1 {
		chain = util.Arg(1)
	}

	entry, err := util.PDBRead(pdbPath)
	util.Assert(err, "Could not read PDB file '%s'", pdbPath)
	ca, err := util.ChainCoords(entry, chain)
	util.Assert(err)
	util.Verbosef("Read %d alpha-carbons from '%s'.\n", len(ca), pdbPath)

	result, err := util.FlagConfig.Analyze(ca)
	util.Assert(err, "Could not analyze '%s'", pdbPath)
	if first := result.Alignment; first != nil {
		util.Verbosef("First self-alignment: %s\n", first)
		util.Verbosef("Its rotation axis: %s\n", result.Axis)
	}

	fmt.Printf("Order:    %d\n", result.Order)
	fmt.Printf("Group:    %s\n", result.Group())
	if !result.Symmetric() {
		fmt.Printf("Reason:   %s\n", result.Reason)
		return
	}
	fmt.Printf("Type:     %s\n", result.Type)
	fmt.Printf("RMSD:     %0.3f\n", result.RMSD)
	fmt.Printf("TM-score: %0.4f\n", result.TMScore)
	fmt.Printf("Axis:     %s\n", result.Axis)
	fmt.Printf("Repeats:  %s\n", repeats(result.Repeats()))
	if flagAlignment {
		for k, b := range result.Refined.Alignment.Blocks {
			fmt.Printf("\nRepeat %d -> %d:\n", k+1, (k+1)%result.Order+1)
			for _, p := range b.Pairs {
				fmt.Printf("%d\t%d\n", p.I, p.J)
			}
		}
	}
}

func repeats(reps []symm.Repeat) string {
	strs := make([]string, len(reps))
	for i, r := range reps {
		strs[i] = r.String()
	}
	return strings.Join(strs, ",")
}
