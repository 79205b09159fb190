package util

import (
	"testing"

	"github.com/TuftsBCB/io/pdb"
)

func TestChainCoordsWithoutModels(t *testing.T) {
	// A chain known only from SEQRES records has no models.
	entry := &pdb.Entry{Path: "seqres-only.pdb"}
	entry.Chains = []*pdb.Chain{
		{Entry: entry, Ident: 'A', SeqType: pdb.SeqProtein},
	}
	if _, err := ChainCoords(entry, "A"); err == nil {
		t.Fatal("Expected an error for a chain without models.")
	}
	if _, err := ChainCoords(entry, ""); err == nil {
		t.Fatal("Expected an error when no chain has models.")
	}
	if _, err := ChainCoords(entry, "B"); err == nil {
		t.Fatal("Expected an error for a missing chain.")
	}
}

func TestStructureID(t *testing.T) {
	tests := []struct {
		path, id string
	}{
		{"1abc.pdb", "1abc"},
		{"/data/pdb/ab/pdb1abc.ent.gz", "pdb1abc"},
		{"relative/2xyz", "2xyz"},
	}
	for _, test := range tests {
		if id := StructureID(test.path); id != test.id {
			t.Fatalf("Expected '%s' for '%s' but got '%s'.",
				test.id, test.path, id)
		}
	}
}
