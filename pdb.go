/*
 * pdb.go, part of goErrat.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// classFromElement maps a one-letter element to a contact class.
func classFromElement(e byte) int {
	switch e {
	case 'C', 'c':
		return ClassC
	case 'N', 'n':
		return ClassN
	case 'O', 'o':
		return ClassO
	}
	return ClassOther
}

// ReadPDB reads the ATOM records of a legacy fixed-column PDB file and
// returns the structure they describe. Parse diagnostics (rejected
// alternate conformations, non-standard residues, chain increments,
// missing residues, residue-number decreases) go to logw in the exact
// format of the reference tool. HETATM records, headers and everything
// else are skipped.
func ReadPDB(r io.Reader, logw io.Writer) (*Structure, error) {
	b := newBuilder(logw)
	pdb := bufio.NewReader(r)
	for !b.stop {
		line, rerr := pdb.ReadString('\n')
		if len(line) == 0 && rerr != nil {
			break
		}
		if len(line) < 6 || line[:6] != "ATOM  " {
			if rerr != nil {
				break
			}
			continue
		}
		if b.full() {
			fmt.Fprintln(logw, "ERROR: PDB WITH TOO MANY ATOMS. CUT OFF FURTHER INPUT.")
			break
		}
		if len(line) < 54 {
			if rerr != nil {
				break
			}
			continue
		}
		var rec atomRecord
		rec.name = strings.TrimSpace(line[12:16])
		rec.class = classFromUpper(line[13])
		bb := line[13:16]
		rec.backbone = bb == "N  " || bb == "C  "
		rec.altLoc = line[16]
		rec.resName = line[17:20]
		rec.chain = line[21]
		// The sequence field is parsed as a float first, so trailing
		// garbage zeroes the number instead of erroring, like the
		// reference parser.
		seq, _ := strconv.ParseFloat(strings.TrimSpace(line[22:26]), 64)
		rec.seq = int(seq)
		rec.icode = line[26]
		rec.x, _ = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
		rec.y, _ = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
		rec.z, _ = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
		b.add(rec)
		if rerr != nil {
			break
		}
	}
	return b.done("ReadPDB")
}

// classFromUpper is the PDB variant of the class assignment: only the
// upper-case element letters that appear in column 14 of standard atom
// names are recognized.
func classFromUpper(e byte) int {
	switch e {
	case 'C':
		return ClassC
	case 'N':
		return ClassN
	case 'O':
		return ClassO
	}
	return ClassOther
}
