/*
 * ps.go, part of goErrat.
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

package erratplot

import (
	"io"

	"github.com/goerrat/errat"
	"github.com/goerrat/errat/score"
)

// psProcs is the fixed prolog emitted at the top of every page. The
// trailing spaces and mid-procedure line breaks are part of the legacy
// byte stream and must not be reflowed.
const psProcs = `%!PS
%FIXED
/sce {8} def /scr {3} def
90 rotate 110 -380 translate /e95 {11.527} def /e99 {17.191} def
/Helvetica findfont 18 scalefont setfont 0.5 setlinewidth
/bar1 {/g {1 1 1} def bar} def /bar2 {/g {1 1 0} def bar} def
/bar3 {/g {1 0 0} def bar} def /bar {sce mul /yval exch def
 scr mul /xval exch def
newpath xval 0 moveto xval yval lineto scr -1 mul 0
 rlineto 0 yval -1 mul rlineto closepath gsave g setrgbcolor
 fill grestore stroke} def
/tick {newpath 0.5 sub scr mul 0 moveto 0 -3 rlineto
 currentpoint stroke moveto -10 -12 rmoveto} def
% VARIABLE
`

// psAxes draws the plot frame, threshold lines and captions after the
// per-page header.
const psAxes = `% FIXED
grestore newpath 0 0 moveto 0 27 sce mul rlineto stroke
newpath rlim scr mul 0 moveto 0 27 sce mul rlineto stroke
newpath 0  0 moveto rlim scr mul 0 rlineto stroke
newpath -3 e95 sce mul moveto rlim scr mul 3 add 0 rlineto
stroke newpath -3 e99 sce mul moveto rlim scr mul 3 add 0
 rlineto stroke
newpath 0  27  sce mul moveto rlim scr
 mul 0 rlineto stroke
rlim scr mul 2 div 100 sub -34
 moveto (Residue # (window center)) show
/Helvetica findfont 14 scalefont setfont 0.5 setlinewidth
-34 e95 sce mul 4 sub moveto (95\%) show
-34 e99 sce mul 4 sub moveto (99\%) show
/Helvetica findfont 12 scalefont setfont 0.5 setlinewidth
0 -70 moveto (*On the error axis, two lines are drawn to indicate the confidence with) show
0 -82 moveto (which it is possible to reject regions that exceed that error value.) show
0 -100 moveto (**Expressed as the percentage of the protein for which the calculated) show
0 -112 moveto (error value falls below the 95\% rejection limit.  Good high resolution) show
0 -124 moveto (structures generally produce values around 95\% or higher.  For lower) show
0 -136 moveto (resolutions (2.5 to 3A) the average overall quality factor is around 91\%. ) show
/Helvetica findfont 18 scalefont setfont 0.5 setlinewidth
gsave -40 -5 translate 90 rotate 80 0 moveto (Error value*)
show grestore
/Helvetica findfont 16 scalefont setfont 0.5 setlinewidth
`

// WritePS renders the profile to psw as the legacy PostScript plot, one
// page per 300-residue stretch of each chain, and writes the per-page
// residue-range lines to logw. name labels the plot; it is usually the
// input file name.
func WritePS(psw, logw io.Writer, name string, p *score.Profile) error {
	l, err := newLayout(p)
	if err != nil {
		if rerr, ok := err.(*errat.RenderError); ok {
			rerr.Decorate("WritePS")
		}
		return err
	}
	ps := &stickyWriter{w: psw}
	lg := &stickyWriter{w: logw}

	for ich := 1; ich <= l.chainx; ich++ {
		np := 1 + int(float64(l.ir2[ich]-l.ir1[ich]+1)/l.mst)
		for z1 := 1; z1 <= np; z1++ {
			ir0 := l.ir1[ich] + int(l.mst)*(z1-1)
			ir := ir0 + int(l.mst) - 1
			if ir > l.ir2[ich] {
				ir = l.ir2[ich]
			}

			lg.printf("# Chain Label %c:    Residue range %d to %d\n", l.ids[ich], ir0, ir)

			ps.printf("%s", psProcs)
			ps.printf("%.3f   %.3f scale /rlim {%d} def\n", l.sz, l.sz, ir-ir0+1)
			ps.printf("gsave 0 30 sce mul 20 add translate \n")
			ps.printf("0 30 moveto (Chain#:%c) show \n", l.ids[ich])
			ps.printf("0 50 moveto (File: %s) show \n", name)
			ps.printf("0 10 moveto (Overall quality factor**: %.3f)show\n", p.Quality)
			ps.printf("0 70 moveto (Program: ERRAT2) show\n")
			ps.printf("() show\n")
			ps.printf("%s", psAxes)

			for z2 := ir0; z2 <= ir; z2++ {
				if z2%20 == 0 {
					ps.printf("%d tick        \n", z2-ir0+1)
					ps.printf("(%d) show\t\n", z2-(errat.ChainDif*(z2/errat.ChainDif)))
				} else if z2%10 == 0 {
					ps.printf("%d tick\t\n", z2-ir0+1)
				}
			}
			for z2 := ir0; z2 <= ir; z2++ {
				bar := "bar1"
				switch barClass(p.Values[z2]) {
				case 2:
					bar = "bar2"
				case 3:
					bar = "bar3"
				}
				ps.printf("%d\t%.3f %s\n", z2-ir0+1, barHeight(p.Values[z2]), bar)
			}
			ps.printf("showpage\n")
		}
	}
	if lg.err != nil {
		rerr := errat.NewRenderError("writing analysis log: %v", lg.err)
		rerr.Decorate("WritePS")
		return rerr
	}
	if ps.err != nil {
		rerr := errat.NewRenderError("writing PostScript plot: %v", ps.err)
		rerr.Decorate("WritePS")
		return rerr
	}
	return nil
}
