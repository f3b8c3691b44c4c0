/*
 * pdf.go, part of goErrat.
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
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goerrat/errat"
	"github.com/goerrat/errat/score"
)

// WritePDF renders the profile to pdfw as a self-contained PDF with the
// same pages and geometry as the PostScript plot, and writes the same
// per-page residue-range lines to logw. The document is built with
// uncompressed content streams and a plain cross-reference table; no
// PDF library reproduces this byte stream, so it is assembled by hand.
func WritePDF(pdfw, logw io.Writer, name string, p *score.Profile) error {
	pages, err := buildPDFPages(logw, name, p)
	if err != nil {
		return err
	}
	doc := buildPDFDocument(pages)
	if _, err := pdfw.Write(doc); err != nil {
		rerr := errat.NewRenderError("writing PDF plot: %v", err)
		rerr.Decorate("WritePDF")
		return rerr
	}
	return nil
}

// buildPDFPages walks the same chain/page layout as the PostScript
// renderer and returns one content stream per page.
func buildPDFPages(logw io.Writer, name string, p *score.Profile) ([][]byte, error) {
	l, err := newLayout(p)
	if err != nil {
		if rerr, ok := err.(*errat.RenderError); ok {
			rerr.Decorate("buildPDFPages")
		}
		return nil, err
	}
	lg := &stickyWriter{w: logw}
	var pages [][]byte

	for ich := 1; ich <= l.chainx; ich++ {
		np := 1 + int(float64(l.ir2[ich]-l.ir1[ich]+1)/l.mst)
		for z1 := 1; z1 <= np; z1++ {
			ir0 := l.ir1[ich] + int(l.mst)*(z1-1)
			ir := ir0 + int(l.mst) - 1
			if ir > l.ir2[ich] {
				ir = l.ir2[ich]
			}

			lg.printf("# Chain Label %c:    Residue range %d to %d\n", l.ids[ich], ir0, ir)

			var page bytes.Buffer
			writePDFPage(&page, name, p, ir0, ir, l.ids[ich], l.sz)
			pages = append(pages, page.Bytes())
		}
	}
	if lg.err != nil {
		rerr := errat.NewRenderError("writing analysis log: %v", lg.err)
		rerr.Decorate("buildPDFPages")
		return nil, rerr
	}
	return pages, nil
}

// writePDFPage emits one page's content stream. Text placement and
// graph geometry mirror the PostScript page operator by operator; the
// outer transformation reproduces its 90-degree rotation, translation
// and scaling.
func writePDFPage(buf *bytes.Buffer, name string, p *score.Profile, ir0, ir int, chainID byte, sz float64) {
	rlim := float64(ir - ir0 + 1)

	fmt.Fprintf(buf, "q\n0 1 -1 0 0 0 cm\n1 0 0 1 110 -380 cm\n%.3f 0 0 %.3f 0 0 cm\n0.5 w\n0 0 0 RG\n0 0 0 rg\n", sz, sz)

	headerY := 30.0*sce + 20.0
	pdfText(buf, 0.0, headerY+30.0, 18.0, fmt.Sprintf("Chain#:%c", chainID))
	pdfText(buf, 0.0, headerY+50.0, 18.0, "File: "+name)
	pdfText(buf, 0.0, headerY+10.0, 18.0, fmt.Sprintf("Overall quality factor**: %.3f", p.Quality))
	pdfText(buf, 0.0, headerY+70.0, 18.0, "Program: ERRAT2")

	pdfLine(buf, 0.0, 0.0, 0.0, 27.0*sce)
	pdfLine(buf, rlim*scr, 0.0, rlim*scr, 27.0*sce)
	pdfLine(buf, 0.0, 0.0, rlim*scr, 0.0)
	pdfLine(buf, -3.0, e95*sce, rlim*scr+3.0, e95*sce)
	pdfLine(buf, -3.0, e99*sce, rlim*scr+3.0, e99*sce)
	pdfLine(buf, 0.0, 27.0*sce, rlim*scr, 27.0*sce)

	pdfText(buf, rlim*scr/2.0-100.0, -34.0, 18.0, "Residue # (window center)")
	pdfText(buf, -34.0, e95*sce-4.0, 14.0, "95%")
	pdfText(buf, -34.0, e99*sce-4.0, 14.0, "99%")

	pdfText(buf, 0.0, -70.0, 12.0, "*On the error axis, two lines are drawn to indicate the confidence with")
	pdfText(buf, 0.0, -82.0, 12.0, "which it is possible to reject regions that exceed that error value.")
	pdfText(buf, 0.0, -100.0, 12.0, "**Expressed as the percentage of the protein for which the calculated")
	pdfText(buf, 0.0, -112.0, 12.0, "error value falls below the 95% rejection limit.  Good high resolution")
	pdfText(buf, 0.0, -124.0, 12.0, "structures generally produce values around 95% or higher.  For lower")
	pdfText(buf, 0.0, -136.0, 12.0, "resolutions (2.5 to 3A) the average overall quality factor is around 91%. )")

	fmt.Fprintf(buf, "q 0 1 -1 0 -40 -5 cm\n")
	pdfText(buf, 80.0, 0.0, 18.0, "Error value*")
	fmt.Fprintf(buf, "Q\n")

	for z2 := ir0; z2 <= ir; z2++ {
		x := float64(z2 - ir0 + 1)
		if z2%20 == 0 {
			tickX := (x - 0.5) * scr
			pdfLine(buf, tickX, 0.0, tickX, -3.0)
			label := z2 - (errat.ChainDif * (z2 / errat.ChainDif))
			pdfText(buf, tickX-10.0, -15.0, 16.0, fmt.Sprintf("%d", label))
		} else if z2%10 == 0 {
			tickX := (x - 0.5) * scr
			pdfLine(buf, tickX, 0.0, tickX, -3.0)
		}
	}

	for z2 := ir0; z2 <= ir; z2++ {
		x := float64(z2-ir0+1) * scr
		y := barHeight(p.Values[z2]) * sce
		switch barClass(p.Values[z2]) {
		case 1:
			pdfSetFillRGB(buf, 1.0, 1.0, 1.0)
		case 2:
			pdfSetFillRGB(buf, 1.0, 1.0, 0.0)
		default:
			pdfSetFillRGB(buf, 1.0, 0.0, 0.0)
		}
		pdfRectFillStroke(buf, x-scr, 0.0, scr, y)
	}

	fmt.Fprintf(buf, "Q\n")
}

// buildPDFDocument assembles the content streams into a complete
// single-font document: catalog, page tree, shared Helvetica font, one
// page object and one stream object per page, then the xref table.
func buildPDFDocument(pages [][]byte) []byte {
	pageCount := len(pages)
	totalObjects := 3 + pageCount*2
	var buf bytes.Buffer
	offsets := make([]int, 0, totalObjects)

	fmt.Fprintf(&buf, "%%PDF-1.4\n%%????\n")

	const (
		catalogID   = 1
		pagesID     = 2
		fontID      = 3
		firstPageID = 4
	)
	firstContentID := firstPageID + pageCount

	offsets = append(offsets, buf.Len())
	fmt.Fprintf(&buf, "%d 0 obj\n<< /Type /Catalog /Pages %d 0 R >>\nendobj\n", catalogID, pagesID)

	var kids strings.Builder
	for i := 0; i < pageCount; i++ {
		fmt.Fprintf(&kids, "%d 0 R ", firstPageID+i)
	}
	offsets = append(offsets, buf.Len())
	fmt.Fprintf(&buf, "%d 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", pagesID, kids.String(), pageCount)

	offsets = append(offsets, buf.Len())
	fmt.Fprintf(&buf, "%d 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n", fontID)

	for i := 0; i < pageCount; i++ {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>\nendobj\n",
			firstPageID+i, pagesID, fontID, firstContentID+i)
	}

	for i, content := range pages {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n", firstContentID+i)
		fmt.Fprintf(&buf, "<< /Length %d >>\nstream\n", len(content)+1)
		buf.Write(content)
		buf.WriteByte('\n')
		buf.WriteString("endstream")
		buf.WriteString("\nendobj\n")
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", totalObjects+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		totalObjects+1, catalogID, xrefStart)

	return buf.Bytes()
}

// pdfEscape backslash-escapes the characters that delimit PDF string
// literals.
func pdfEscape(text string) string {
	var out strings.Builder
	out.Grow(len(text))
	for _, ch := range text {
		switch ch {
		case '\\':
			out.WriteString("\\\\")
		case '(':
			out.WriteString("\\(")
		case ')':
			out.WriteString("\\)")
		default:
			out.WriteRune(ch)
		}
	}
	return out.String()
}

func pdfText(buf *bytes.Buffer, x, y, size float64, text string) {
	fmt.Fprintf(buf, "BT /F1 %.2f Tf 1 0 0 1 %.3f %.3f Tm (%s) Tj ET\n", size, x, y, pdfEscape(text))
}

func pdfLine(buf *bytes.Buffer, x1, y1, x2, y2 float64) {
	fmt.Fprintf(buf, "%.3f %.3f m %.3f %.3f l S\n", x1, y1, x2, y2)
}

func pdfRectFillStroke(buf *bytes.Buffer, x, y, w, h float64) {
	fmt.Fprintf(buf, "%.3f %.3f %.3f %.3f re B\n", x, y, w, h)
}

func pdfSetFillRGB(buf *bytes.Buffer, r, g, b float64) {
	fmt.Fprintf(buf, "%.3f %.3f %.3f rg\n", r, g, b)
}
