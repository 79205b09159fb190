package util

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/TuftsBCB/io/pdb"
	"github.com/TuftsBCB/structure"
)

func ReadLines(r io.Reader) []string {
	buf := bufio.NewReader(r)
	lines := make([]string, 0)
	for {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			Fatalf("Could not read line: %s.", err)
		}
		if line = strings.TrimSpace(line); len(line) > 0 {
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		}
	}
	return lines
}

func OpenFile(path string) *os.File {
	f, err := os.Open(path)
	Assert(err, "Could not open file '%s'", path)
	return f
}

func CreateFile(path string) *os.File {
	f, err := os.Create(path)
	Assert(err, "Could not create file '%s'", path)
	return f
}

// PDBRead reads a PDB entry from a file. Files ending in ".gz" are
// decompressed.
func PDBRead(fpath string) (*pdb.Entry, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if path.Ext(fpath) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("could not decompress '%s': %s", fpath, err)
		}
		defer gz.Close()
		r = gz
	}
	return pdb.Read(r, fpath)
}

// ChainCoords returns the alpha-carbon coordinates of a chain. An empty
// chain identifier selects the first protein chain.
func ChainCoords(entry *pdb.Entry, chain string) ([]structure.Coords, error) {
	var c *pdb.Chain
	if len(chain) == 0 {
		for _, candidate := range entry.Chains {
			if candidate.IsProtein() && len(candidate.Models) > 0 {
				c = candidate
				break
			}
		}
		if c == nil {
			return nil, fmt.Errorf("'%s' has no protein chains", entry.Path)
		}
	} else {
		if len(chain) != 1 {
			return nil, fmt.Errorf("chain identifier '%s' is not one "+
				"character", chain)
		}
		if c = entry.Chain(chain[0]); c == nil {
			return nil, fmt.Errorf("the chain '%s' could not be found in '%s'",
				chain, entry.Path)
		}
		if !c.IsProtein() {
			return nil, fmt.Errorf("the chain '%s' in '%s' is not a protein",
				chain, entry.Path)
		}
	}
	if len(c.Models) == 0 {
		return nil, fmt.Errorf("the chain '%c' in '%s' has no ATOM records",
			c.Ident, entry.Path)
	}
	return c.CaAtoms(), nil
}

// StructureID is the name of a structure file without directories and
// extensions.
func StructureID(fpath string) string {
	base := path.Base(fpath)
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, path.Ext(base))
}
