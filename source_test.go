/*
 * source_test.go, part of goErrat.
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
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestFormatForPath(t *testing.T) {
	cases := []struct {
		path string
		want Format
	}{
		{"model.pdb", PDB},
		{"model.pdb.gz", PDB},
		{"model.cif", MMCIF},
		{"MODEL.CIF", MMCIF},
		{"model.mmcif.gz", MMCIF},
		{"model", PDB},
	}
	for _, c := range cases {
		if got := FormatForPath(c.path); got != c.want {
			t.Errorf("FormatForPath(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

// A gzipped file must parse exactly like the plain one, diagnostics
// included.
func TestReadGzip(t *testing.T) {
	raw, err := os.ReadFile("testdata/minimal.pdb")
	if err != nil {
		t.Fatal(err)
	}
	var plain bytes.Buffer
	ps, err := Read(bytes.NewReader(raw), PDB, &plain)
	if err != nil {
		t.Fatal(err)
	}

	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	if _, err := zw.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	var zlog bytes.Buffer
	zs, err := Read(&compressed, PDB, &zlog)
	if err != nil {
		t.Fatal(err)
	}

	if ps.Len() != zs.Len() {
		t.Errorf("plain accepted %d atoms, gzip %d", ps.Len(), zs.Len())
	}
	if plain.String() != zlog.String() {
		t.Errorf("diagnostics differ between plain and gzip input")
	}
}
