/*
 * score.go, part of goErrat.
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

package score

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/goerrat/errat"
)

// Entry is one scored window, reported at the window's fifth residue.
type Entry struct {
	Chain  byte
	Seq    int     // author residue number at the window start
	Resnum int     // offset residue number at the window start
	Value  float64 // error statistic of the window
}

// Profile is the scored result for one structure. Values, Resnum and
// ChainID keep the 1-based indexing of the legacy arrays because the
// plot layout math depends on it; Entries is the same information in a
// form ordinary Go code can range over.
type Profile struct {
	// Frames is the number of windows that were scored, Flagged the
	// number whose error statistic exceeded the 95% threshold.
	Frames  int
	Flagged int
	// Quality is the overall quality factor, 100*(1-Flagged/Frames).
	// Zero when Frames is zero.
	Quality float64
	// Values maps an offset residue number (window start + 4) to the
	// window's error statistic; unscored positions hold zero.
	Values []float64
	// Resnum and ChainID map a 1-based atom index to its offset residue
	// number and chain letter. NAtoms is the last valid index.
	Resnum  []int
	ChainID []byte
	NAtoms  int

	Entries []Entry
}

// table is the structure flattened into the 1-based parallel arrays the
// window scan runs over. Index 0 is unused and the arrays carry one
// trailing zero entry, which the scan relies on when it peeks past the
// last atom.
type table struct {
	n        int
	class    []int
	backbone []bool
	chain    []byte
	resnum   []int
	seq      []int
	x, y, z  []float64
}

func flatten(s *errat.Structure) *table {
	n := s.Len()
	t := &table{
		n:        n,
		class:    make([]int, n+2),
		backbone: make([]bool, n+2),
		chain:    make([]byte, n+2),
		resnum:   make([]int, n+2),
		seq:      make([]int, n+2),
		x:        make([]float64, n+2),
		y:        make([]float64, n+2),
		z:        make([]float64, n+2),
	}
	i := 0
	for _, c := range s.Chains {
		for _, r := range c.Residues {
			for _, a := range r.Atoms {
				i++
				t.class[i] = a.Class
				t.backbone[i] = a.Backbone
				t.chain[i] = c.ID
				t.seq[i] = r.Seq
				t.resnum[i] = r.Seq + c.Offset
				t.x[i] = a.X
				t.y[i] = a.Y
				t.z[i] = a.Z
			}
		}
	}
	return t
}

type windowOutcome struct {
	warn  bool
	frame int // offset residue number reported in the warning
	idx   int // Values index of a scored window
	value float64
	seq   int
	chain byte
}

// Compute scores every 9-residue window of s and returns the profile.
// Diagnostics (coordinate extrema, box overflows, low-interaction
// warnings, the frame summary) go to logw in the exact format of the
// reference tool.
func Compute(s *errat.Structure, logw io.Writer) (*Profile, error) {
	t := flatten(s)
	p := &Profile{
		Resnum:  t.resnum,
		ChainID: t.chain,
		NAtoms:  t.n,
	}
	if t.n == 0 {
		p.Values = make([]float64, 1)
		fmt.Fprintln(logw, "# Overall quality factor: undefined (no scorable window)")
		return p, nil
	}
	// Window values are stored at resnum+4, so negative numbering has
	// no place in the profile.
	if t.resnum[1] < 0 || t.resnum[t.n] < 0 {
		serr := errat.NewScoringError("negative residue numbering cannot be scored")
		serr.Decorate("Compute")
		return nil, serr
	}

	// The extrema scan is seeded at +-999 like the legacy arrays were.
	var min, max [4]float64
	min[1] = math.Min(999, floats.Min(t.x[1:t.n+1]))
	min[2] = math.Min(999, floats.Min(t.y[1:t.n+1]))
	min[3] = math.Min(999, floats.Min(t.z[1:t.n+1]))
	max[1] = math.Max(-999, floats.Max(t.x[1:t.n+1]))
	max[2] = math.Max(-999, floats.Max(t.y[1:t.n+1]))
	max[3] = math.Max(-999, floats.Max(t.z[1:t.n+1]))
	for j := 1; j <= 3; j++ {
		fmt.Fprintf(logw, "%s\t", errat.Sig6(min[j]))
	}
	for j := 1; j <= 3; j++ {
		fmt.Fprintf(logw, "%s\t", errat.Sig6(max[j]))
	}
	fmt.Fprintln(logw)

	var nbx [4]int
	for i := 1; i <= 3; i++ {
		nbx[i] = int((max[i]-min[i])/BoxSize) + 1
	}
	boxCount := int64(nbx[1]) * int64(nbx[2]) * int64(nbx[3])
	flag2 := false
	if boxCount > maxBoxes-1 {
		fmt.Fprintln(logw, "ERROR: TOO MANY BOXES")
		flag2 = true
	}

	boxLen := int(boxCount) + 1
	if boxLen < 1 || flag2 {
		boxLen = 1
	}
	counts := make([]int, boxLen)
	atoms := make([]int, boxLen*boxSlots)

	if !flag2 {
		for i := 1; i <= t.n; i++ {
			ix := int(math.Floor((t.x[i] - (min[1] - 0.00001)) / BoxSize))
			iy := int(math.Floor((t.y[i] - (min[2] - 0.00001)) / BoxSize))
			iz := int(math.Floor((t.z[i] - (min[3] - 0.00001)) / BoxSize))
			ind := 1 + ix + iy*nbx[1] + iz*nbx[1]*nbx[2]
			temp := counts[ind]
			counts[ind]++
			if temp < boxSlots {
				atoms[ind*boxSlots+temp] = i
			}
		}
		for i := 1; i < len(counts); i++ {
			if counts[i] > boxSlots {
				fmt.Fprintf(logw, "TOO MANY ATOMS IN BOX #:\t%d\n", counts[i])
				flag2 = true
			}
		}
	}

	maxRes := t.resnum[t.n]
	p.Values = make([]float64, maxRes+5)

	var stat, pstat, mtrxstat float64
	if !flag2 {
		rsq := Radius * Radius
		ssq := RadMin * RadMin
		ndelta := int(math.Ceil(Radius / BoxSize))
		for i := 1; i <= t.n; i++ {
			if !(i == 1 || t.resnum[i] > t.resnum[i-1]) {
				continue
			}
			o := computeWindow(t, i, &min, &nbx, counts, atoms, rsq, ssq, ndelta)
			if o == nil {
				continue
			}
			if o.warn {
				fmt.Fprintf(logw, "WARNING: Frame\t%d\tBelow Minimum Interaction Limit.\n", o.frame)
				continue
			}
			stat++
			mtrxstat += o.value
			if o.value > Lmt99 {
				pstat++
			} else if o.value > Lmt95 {
				pstat++
			}
			if o.idx >= len(p.Values) {
				grown := make([]float64, o.idx+1)
				copy(grown, p.Values)
				p.Values = grown
			}
			p.Values[o.idx] = o.value
			p.Entries = append(p.Entries, Entry{
				Chain:  o.chain,
				Seq:    o.seq,
				Resnum: o.idx - 4,
				Value:  o.value,
			})
		}
	}

	p.Frames = int(stat)
	p.Flagged = int(pstat)
	if stat > 0 {
		fmt.Fprintf(logw, "Total frames: %d\tP frames %d\tNumber: %s\n",
			int64(stat), int64(pstat), errat.Sig6(pstat/stat))
		fmt.Fprintln(logw)
		fmt.Fprintf(logw, "Avg Probability\t%s\n", errat.Sig6(mtrxstat/stat))
		p.Quality = 100.0 - (100.0 * pstat / stat)
		fmt.Fprintf(logw, "# Overall quality factor: %s\n", errat.Sig6(p.Quality))
	} else {
		fmt.Fprintln(logw, "# Overall quality factor: undefined (no scorable window)")
	}
	return p, nil
}

// computeWindow scores the 9-residue window whose first atom is i. It
// returns nil when no complete window starts there, a warning outcome
// when the window's total interaction weight is below MaxWin, and a
// value outcome otherwise. All arithmetic keeps the legacy evaluation
// order so scored values match the reference tool bit for bit.
func computeWindow(t *table, i int, min *[4]float64, nbx *[4]int, counts, boxAtoms []int, rsq, ssq float64, ndelta int) *windowOutcome {
	// Walk forward until nine residue transitions have been seen. A
	// jump of 100 or more residue numbers (a chain break) never counts
	// as a transition, so windows do not span chains.
	s := 1
	v := i
	for s < 10 && v <= t.n {
		diff := t.resnum[v+1] - t.resnum[v]
		if (diff < 100 && diff > 0) || v == t.n {
			s++
		}
		v++
	}
	if v > 0 {
		v--
	}
	if s != 10 || t.seq[v] <= t.seq[i] {
		return nil
	}

	var c [4][4]float64
	for rer := i; rer <= v; rer++ {
		jbx := int(math.Floor((t.x[rer] - (min[1] - 0.00001)) / BoxSize))
		jby := int(math.Floor((t.y[rer] - (min[2] - 0.00001)) / BoxSize))
		jbz := int(math.Floor((t.z[rer] - (min[3] - 0.00001)) / BoxSize))

		ibz1 := jbz - ndelta
		if ibz1 < 0 {
			ibz1 = 0
		}
		ibz2 := jbz + ndelta
		if ibz2 > nbx[3]-1 {
			ibz2 = nbx[3] - 1
		}
		iby1 := jby - ndelta
		if iby1 < 0 {
			iby1 = 0
		}
		iby2 := jby + ndelta
		if iby2 > nbx[2]-1 {
			iby2 = nbx[2] - 1
		}
		ibx1 := jbx - ndelta
		if ibx1 < 0 {
			ibx1 = 0
		}
		ibx2 := jbx + ndelta
		if ibx2 > nbx[1]-1 {
			ibx2 = nbx[1] - 1
		}

		rx, ry, rz := t.x[rer], t.y[rer], t.z[rer]
		for j := ibz1; j <= ibz2; j++ {
			for k := iby1; k <= iby2; k++ {
				for l := ibx1; l <= ibx2; l++ {
					ind := 1 + l + k*nbx[1] + j*nbx[1]*nbx[2]
					limit := counts[ind]
					if limit > boxSlots {
						limit = boxSlots
					}
					base := ind * boxSlots
					for m := 0; m < limit; m++ {
						n := boxAtoms[base+m]
						if t.resnum[rer] == t.resnum[n] {
							continue
						}
						dx := t.x[n] - rx
						dy := t.y[n] - ry
						dz := t.z[n] - rz
						dsq := dx*dx + dy*dy + dz*dz
						if dsq >= rsq {
							continue
						}
						// The peptide bond between backbone C and the
						// next residue's backbone N is covalent, not a
						// contact.
						if t.backbone[rer] && t.backbone[n] &&
							((t.resnum[n] == t.resnum[rer]+1 && t.class[rer] == errat.ClassC && t.class[n] == errat.ClassN) ||
								(t.resnum[rer] == t.resnum[n]+1 && t.class[rer] == errat.ClassN && t.class[n] == errat.ClassC)) {
							continue
						}
						if n >= i && n <= v {
							// Both atoms inside the window: count the
							// pair once, from the later residue.
							if t.resnum[rer] > t.resnum[n] {
								c[t.class[rer]][t.class[n]] += contactWeight(dsq, ssq)
							}
						} else {
							c[t.class[rer]][t.class[n]] += contactWeight(dsq, ssq)
						}
					}
				}
			}
		}
	}

	temp2 := 0.0
	for q := 1; q <= 3; q++ {
		for r := 1; r <= 3; r++ {
			temp2 += c[q][r]
		}
	}
	if temp2 <= MaxWin {
		return &windowOutcome{warn: true, frame: t.resnum[i] + 4}
	}
	var m [6]float64
	m[1] = c[1][1] / temp2
	m[2] = (c[1][2] + c[2][1]) / temp2
	m[3] = (c[1][3] + c[3][1]) / temp2
	m[4] = c[2][2] / temp2
	m[5] = (c[2][3] + c[3][2]) / temp2
	return &windowOutcome{
		idx:   t.resnum[i] + 4,
		value: errorValue(&m),
		seq:   t.seq[i],
		chain: t.chain[i],
	}
}

func contactWeight(dsq, ssq float64) float64 {
	if dsq <= ssq {
		return 1.0
	}
	return 2.0 * (Radius - math.Sqrt(dsq))
}
