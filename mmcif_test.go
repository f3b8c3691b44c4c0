/*
 * mmcif_test.go, part of goErrat.
 *
 * Copyright 2026 The goErrat authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package errat

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// The two minimal testdata files describe the same three atoms. Parsing
// either must accept the same single atom and write the same
// diagnostics, which is what makes the format choice invisible
// downstream.
func TestMMCIFMatchesPDB(t *testing.T) {
	pf, err := os.Open("testdata/minimal.pdb")
	if err != nil {
		t.Fatal(err)
	}
	defer pf.Close()
	var plog bytes.Buffer
	ps, err := ReadPDB(pf, &plog)
	if err != nil {
		t.Fatal(err)
	}

	cf, err := os.Open("testdata/minimal.cif")
	if err != nil {
		t.Fatal(err)
	}
	defer cf.Close()
	var clog bytes.Buffer
	cs, err := ReadMMCIF(cf, &clog)
	if err != nil {
		t.Fatal(err)
	}

	if ps.Len() != cs.Len() {
		t.Fatalf("PDB accepted %d atoms, mmCIF %d", ps.Len(), cs.Len())
	}
	if plog.String() != clog.String() {
		t.Errorf("diagnostics differ\nPDB:\n%s\nmmCIF:\n%s", plog.String(), clog.String())
	}
	pa := ps.Chains[0].Residues[0].Atoms[0]
	ca := cs.Chains[0].Residues[0].Atoms[0]
	if pa.Class != ca.Class || pa.Backbone != ca.Backbone {
		t.Errorf("atom classification differs between formats")
	}
	if pa.X != ca.X || pa.Y != ca.Y || pa.Z != ca.Z {
		t.Errorf("coordinates differ between formats")
	}
}

func TestMMCIFReorderedColumns(t *testing.T) {
	in := `data_x
loop_
_atom_site.Cartn_z
_atom_site.auth_seq_id
_atom_site.label_comp_id
_atom_site.label_atom_id
_atom_site.auth_asym_id
_atom_site.Cartn_x
_atom_site.Cartn_y
2.100 1 ALA N A 11.104 13.207
`
	var log bytes.Buffer
	s, err := ReadMMCIF(strings.NewReader(in), &log)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Fatalf("accepted %d atoms, want 1", s.Len())
	}
	a := s.Chains[0].Residues[0].Atoms[0]
	if a.X != 11.104 || a.Y != 13.207 || a.Z != 2.100 {
		t.Errorf("columns not matched by name: %v %v %v", a.X, a.Y, a.Z)
	}
	// Without a type_symbol column the element comes from the atom name.
	if a.Class != ClassN || !a.Backbone {
		t.Errorf("got class %d backbone %v, want backbone nitrogen", a.Class, a.Backbone)
	}
}

func TestMMCIFMissingColumns(t *testing.T) {
	in := `data_x
loop_
_atom_site.label_atom_id
_atom_site.label_comp_id
N ALA
`
	var log bytes.Buffer
	_, err := ReadMMCIF(strings.NewReader(in), &log)
	if err == nil {
		t.Fatal("expected an error for missing columns")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTokenizeCIF(t *testing.T) {
	in := "word 'quoted value' # comment\nnext\n;text\nblock\n;\nlast\n"
	tokens := tokenizeCIF(in)
	want := []string{"word", "quoted value", "next", "text\nblock", "last"}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens %q, want %d", len(tokens), tokens, len(want))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d: %q, want %q", i, tokens[i], want[i])
		}
	}
}
