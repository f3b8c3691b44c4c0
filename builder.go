/*
 * builder.go, part of goErrat.
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
	"fmt"
	"io"
)

// The 20 canonical amino acids. Anything else is rejected at parse time,
// matching the reference tool.
var standardResidue = map[string]bool{
	"GLY": true, "ALA": true, "VAL": true, "LEU": true, "ILE": true,
	"TYR": true, "CYS": true, "MET": true, "TRP": true, "PHE": true,
	"HIS": true, "PRO": true, "SER": true, "THR": true, "LYS": true,
	"ARG": true, "GLU": true, "ASP": true, "GLN": true, "ASN": true,
}

// atomRecord is one candidate atom as extracted by a parser, before the
// shared acceptance rules run. Both the PDB and the mmCIF parser reduce
// their records to this form, which is what guarantees that equivalent
// content in either format yields an equivalent Structure.
type atomRecord struct {
	name     string
	class    int
	backbone bool
	altLoc   byte
	resName  string
	chain    byte
	seq      int
	icode    byte
	x, y, z  float64
}

// builder accumulates accepted atoms into a Structure while writing the
// legacy parse diagnostics. Its counters mirror the reference tool's
// 1-based bookkeeping so every logged atom number matches.
type builder struct {
	s    *Structure
	logw io.Writer
	n    int  // accepted-atom count; candidate index during add
	kadd int  // chain counter, offsets residue numbers by ChainDif
	stop bool // a residue-number decrease terminated the analysis

	prevChain byte
	prevRes   int // offset residue number of the last accepted atom
}

func newBuilder(logw io.Writer) *builder {
	return &builder{s: new(Structure), logw: logw}
}

// full reports whether the legacy atom cap has been reached.
func (b *builder) full() bool {
	return b.n+1 > MaxAtoms-1
}

// add runs the acceptance rules on one candidate record, logging any
// rejection or anomaly, and appends the atom to the structure if it
// survives. The rule order and the exact log strings (including the
// historical misspelling) reproduce the reference tool. A record can
// trip both rules; the index still moves back by one, where the
// reference tool underflowed its counter.
func (b *builder) add(rec atomRecord) {
	b.n++
	i := b.n
	reject := false
	if !(rec.altLoc == ' ' || rec.altLoc == 'A' || rec.altLoc == 'a' || rec.altLoc == 'P') {
		fmt.Fprintf(b.logw, "Reject 2' Conformation atom#\t%d\tchain\t%c\n", i, rec.chain)
		reject = true
	}
	if !standardResidue[rec.resName] {
		reject = true
		fmt.Fprintf(b.logw, "***Warning: Reject Nonstardard Residue - %s\n", rec.resName)
	}
	if reject {
		b.n--
	}
	if i >= 2 && !reject && rec.chain != b.prevChain {
		b.kadd++
		fmt.Fprintf(b.logw, "INCREMENTING CHAIN (kadd) %d\n", b.kadd)
	}
	if reject {
		return
	}
	resnum := rec.seq + b.kadd*ChainDif
	if i >= 2 && rec.chain == b.prevChain && resnum < b.prevRes {
		fmt.Fprintf(b.logw, "ERROR: RESNUM DECREASE. TERMINATE ANALYSIS%d\t%d\n", resnum, b.prevRes)
		b.stop = true
	}
	if i > 2 && rec.chain == b.prevChain && resnum != b.prevRes && resnum-b.prevRes > 1 {
		fmt.Fprintf(b.logw, "WARNING: Missing Residues%d>>>%d\n", b.prevRes, resnum)
	}
	b.append(rec)
	b.prevChain = rec.chain
	b.prevRes = resnum
}

// append places the accepted record into the chain/residue hierarchy.
// A chain-id change always opens a new chain, even if the same letter
// reappears later in the file.
func (b *builder) append(rec atomRecord) {
	var chain *Chain
	if len(b.s.Chains) == 0 || b.n == 1 || rec.chain != b.prevChain {
		chain = &Chain{ID: rec.chain, Offset: b.kadd * ChainDif}
		b.s.Chains = append(b.s.Chains, chain)
	} else {
		chain = b.s.Chains[len(b.s.Chains)-1]
	}
	var res *Residue
	if len(chain.Residues) == 0 || chain.Residues[len(chain.Residues)-1].Seq != rec.seq {
		res = &Residue{Seq: rec.seq, ICode: rec.icode, Name: rec.resName}
		chain.Residues = append(chain.Residues, res)
	} else {
		res = chain.Residues[len(chain.Residues)-1]
	}
	res.Atoms = append(res.Atoms, &Atom{
		Serial:   b.n,
		Name:     rec.name,
		AltLoc:   rec.altLoc,
		Class:    rec.class,
		Backbone: rec.backbone,
		X:        rec.x,
		Y:        rec.y,
		Z:        rec.z,
	})
}

// done finishes the build. A structure without a single accepted atom
// is a parse failure.
func (b *builder) done(caller string) (*Structure, error) {
	if b.n == 0 {
		err := NewParseError("no atom records found")
		err.Decorate(caller)
		return nil, err
	}
	return b.s, nil
}
