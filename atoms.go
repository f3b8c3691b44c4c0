/*
 * atoms.go, part of goErrat.
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

// Contact classes assigned to atoms from their element. Only carbon,
// nitrogen and oxygen take part in the contact statistics; everything
// else is ClassOther and is carried along but never counted.
const (
	ClassOther = iota
	ClassC
	ClassN
	ClassO
)

// ChainDif is the residue-number offset added per chain so that residue
// numbers never collide across chains. The value is part of the legacy
// calibration and also drives the per-chain plot segmentation.
const ChainDif = 10000

// MaxAtoms is the legacy cap on accepted atoms per structure. Input
// beyond it is cut off with a diagnostic in the analysis log.
const MaxAtoms = 250000

// Atom is one accepted atomic coordinate record. It is filled at parse
// time and never modified afterwards.
type Atom struct {
	Serial   int    // 1-based position in the accepted-atom sequence
	Name     string // atom name as read from the source
	AltLoc   byte
	Class    int  // ClassC, ClassN, ClassO or ClassOther
	Backbone bool // backbone amide N or carbonyl C
	X        float64
	Y        float64
	Z        float64
}

// Copy returns a copy of the Atom.
func (a *Atom) Copy() *Atom {
	na := new(Atom)
	*na = *a
	return na
}

// Residue is a run of atoms sharing a residue number within a chain.
// Seq and ICode form the composite key that distinguishes residues;
// the parsers keep residues in file order.
type Residue struct {
	Seq   int
	ICode byte
	Name  string
	Atoms []*Atom
}

// Len returns the number of atoms in the residue.
func (r *Residue) Len() int { return len(r.Atoms) }

// Chain is an ordered sequence of residues with a common chain
// identifier. Residues are kept in file order, not renumbered. Offset
// is the ChainDif multiple assigned when the chain was opened; Seq plus
// Offset gives the globally unique residue number the scorer and the
// plots work with.
type Chain struct {
	ID       byte
	Offset   int
	Residues []*Residue
}

// Len returns the number of residues in the chain.
func (c *Chain) Len() int { return len(c.Residues) }

// Structure is the root of the parsed model: an ordered sequence of
// chains plus a source identifier used only for labeling output.
type Structure struct {
	ID     string
	Chains []*Chain
}

// Len returns the total number of accepted atoms in the structure.
func (s *Structure) Len() int {
	n := 0
	for _, c := range s.Chains {
		for _, r := range c.Residues {
			n += len(r.Atoms)
		}
	}
	return n
}

// NResidues returns the total number of residues in the structure.
func (s *Structure) NResidues() int {
	n := 0
	for _, c := range s.Chains {
		n += len(c.Residues)
	}
	return n
}
