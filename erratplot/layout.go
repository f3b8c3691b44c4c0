/*
 * layout.go, part of goErrat.
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

// Package erratplot renders a scored profile as the legacy per-chain
// bar plot, either as PostScript or as an uncompressed PDF. Both
// renderers produce the same geometry from the same layout and their
// byte streams match the reference tool exactly.
package erratplot

import (
	"fmt"
	"io"

	"github.com/goerrat/errat"
	"github.com/goerrat/errat/score"
)

// Axis constants of the legacy plot. e95 and e99 are the threshold
// lines as the plot rounds them, not the full-precision values the
// scorer cuts on.
const (
	scr = 3.0
	sce = 8.0
	e95 = 11.527
	e99 = 17.191
)

// plotLayout is the chain segmentation and scaling shared by the
// PostScript and the PDF renderer. The fixed-size arrays and the
// 1-based counters replicate the legacy layout pass, including its
// horizontal step quirk: mst is computed as n/(n/301), whose floating
// result can truncate to 300 or 301 depending on the chain length.
type plotLayout struct {
	ir1 [100]int  // first plotted residue number per segment
	ir2 [100]int  // last plotted residue number per segment
	ids [100]byte // chain letter per segment

	chainx int
	mst    float64
	sz     float64
}

// newLayout segments the profile by chain and derives the page scaling.
// The one-line chain notice on stdout is part of the legacy interface
// and is kept. A profile whose slices do not cover its declared atom
// and residue range cannot be plotted and is refused up front, as is
// one with more chain segments than the fixed layout tables hold.
func newLayout(p *score.Profile) (*plotLayout, error) {
	if p.NAtoms < 1 {
		return nil, errat.NewRenderError("profile describes no atoms")
	}
	if len(p.Resnum) <= p.NAtoms || len(p.ChainID) <= p.NAtoms {
		return nil, errat.NewRenderError("profile atom slices shorter than atom count %d", p.NAtoms)
	}
	if p.Resnum[1] < 0 {
		return nil, errat.NewRenderError("profile starts at negative residue number %d", p.Resnum[1])
	}
	if last := p.Resnum[p.NAtoms] - 4; last >= len(p.Values) {
		return nil, errat.NewRenderError("profile values cover %d positions, residue range needs %d",
			len(p.Values), last+1)
	}

	l := new(plotLayout)
	for i := range l.ids {
		l.ids[i] = ' '
	}
	l.chainx = 1 + (p.Resnum[p.NAtoms]-4)/errat.ChainDif
	if l.chainx >= len(l.ir1) {
		return nil, errat.NewRenderError("profile spans %d chains, layout holds %d", l.chainx, len(l.ir1)-1)
	}

	z2 := 1
	l.ir1[z2] = p.Resnum[1] + 4
	l.ir2[z2] = 0
	l.ids[z2] = p.ChainID[1]
	fmt.Printf("atn, chain#, chainID 1  %d  %c\n", z2, l.ids[z2])

	for z1 := 1; z1 < p.NAtoms; z1++ {
		if z1 == p.NAtoms-1 {
			l.ir2[z2] = p.Resnum[p.NAtoms] - 4
		} else if p.ChainID[z1] != p.ChainID[z1+1] && p.Resnum[z1] > 4 {
			if z2+1 >= len(l.ir1) {
				return nil, errat.NewRenderError("profile has more than %d chain segments", len(l.ir1)-1)
			}
			l.ir2[z2] = p.Resnum[z1] - 4
			z2++
			l.ir1[z2] = p.Resnum[z1+1] + 4
			l.ids[z2] = p.ChainID[z1+1]
		}
	}

	mst := 0.0
	for ich := 1; ich <= l.chainx; ich++ {
		n := float64(l.ir2[ich] - l.ir1[ich] + 1)
		ms := n / (300.0 + 1.0)
		ms = n / ms
		if ms > mst {
			mst = ms
		}
		if mst < 200.0 {
			mst = 200.0
		}
	}
	l.mst = mst
	l.sz = 200.0 / mst
	return l, nil
}

// barClass picks the bar color class for one error value: 1 below the
// 95% limit, 2 between the limits, 3 above the 99% limit.
func barClass(v float64) int {
	bar := 1
	if v > score.Lmt95 {
		bar = 2
	}
	if v > score.Lmt99 {
		bar = 3
	}
	return bar
}

// barHeight caps a value at the top of the plot's error axis.
func barHeight(v float64) float64 {
	if v > 27.0 {
		return 27.0
	}
	return v
}

// stickyWriter collects the first write error so the renderers can emit
// their long line sequences without a check per line.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (sw *stickyWriter) printf(format string, a ...interface{}) {
	if sw.err != nil {
		return
	}
	_, sw.err = fmt.Fprintf(sw.w, format, a...)
}
