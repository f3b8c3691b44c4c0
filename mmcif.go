/*
 * mmcif.go, part of goErrat.
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
	"strconv"
	"strings"
)

// ReadMMCIF reads the first _atom_site loop of an mmCIF file and returns
// the structure it describes. Fields are located by column name, never by
// position, so files with reordered or extra columns parse the same.
// Equivalent content in mmCIF and PDB form yields an equivalent
// Structure, with the same diagnostics written to logw.
func ReadMMCIF(r io.Reader, logw io.Writer) (*Structure, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		perr := NewParseError("reading mmCIF input: %v", err)
		perr.Decorate("ReadMMCIF")
		return nil, perr
	}
	tokens := tokenizeCIF(string(raw))
	b := newBuilder(logw)

	idx := 0
	for idx < len(tokens) {
		if tokens[idx] != "loop_" {
			idx++
			continue
		}
		idx++
		var cols []string
		for idx < len(tokens) && strings.HasPrefix(tokens[idx], "_") {
			cols = append(cols, tokens[idx])
			idx++
		}
		if len(cols) == 0 {
			continue
		}
		nc := len(cols)
		isAtomSite := false
		for _, c := range cols {
			if strings.HasPrefix(c, "_atom_site.") {
				isAtomSite = true
				break
			}
		}
		if !isAtomSite {
			// Skip this loop's data rows.
			for idx+nc <= len(tokens) {
				if cifTerminator(tokens[idx]) {
					break
				}
				idx += nc
			}
			continue
		}

		colIndex := func(name string) int {
			for j, c := range cols {
				if c == name {
					return j
				}
				if strings.HasPrefix(name, "_atom_site.") {
					continue
				}
				if strings.HasSuffix(c, "."+name) {
					return j
				}
			}
			return -1
		}
		idxGroup := colIndex("group_PDB")
		idxAtom := colIndex("label_atom_id")
		idxType := colIndex("type_symbol")
		idxAlt := colIndex("label_alt_id")
		idxRes := colIndex("label_comp_id")
		idxChain := colIndex("auth_asym_id")
		if idxChain < 0 {
			idxChain = colIndex("label_asym_id")
		}
		idxSeq := colIndex("auth_seq_id")
		if idxSeq < 0 {
			idxSeq = colIndex("label_seq_id")
		}
		idxX := colIndex("Cartn_x")
		idxY := colIndex("Cartn_y")
		idxZ := colIndex("Cartn_z")

		if idxAtom < 0 || idxRes < 0 || idxChain < 0 || idxSeq < 0 {
			perr := NewParseError("mmCIF missing required _atom_site columns")
			perr.Decorate("ReadMMCIF")
			return nil, perr
		}
		if idxX < 0 || idxY < 0 || idxZ < 0 {
			perr := NewParseError("mmCIF missing coordinate columns")
			perr.Decorate("ReadMMCIF")
			return nil, perr
		}

		for idx+nc <= len(tokens) {
			if cifTerminator(tokens[idx]) {
				break
			}
			row := tokens[idx : idx+nc]
			idx += nc

			if idxGroup >= 0 && row[idxGroup] != "ATOM" {
				continue
			}
			if b.full() {
				fmt.Fprintln(logw, "ERROR: PDB WITH TOO MANY ATOMS. CUT OFF FURTHER INPUT.")
				break
			}

			var rec atomRecord
			rec.name = row[idxAtom]
			element := rec.name
			if idxType >= 0 {
				element = row[idxType]
			}
			if element == "" {
				rec.class = ClassOther
			} else {
				rec.class = classFromElement(element[0])
			}
			rec.backbone = rec.name == "N" || rec.name == "C"

			alt := "."
			if idxAlt >= 0 {
				alt = row[idxAlt]
			}
			rec.altLoc = ' '
			if len(alt) > 0 && alt[0] != '.' && alt[0] != '?' {
				rec.altLoc = alt[0]
			}

			rec.resName = strings.ToUpper(row[idxRes])
			rec.chain = ' '
			if len(row[idxChain]) > 0 {
				rec.chain = row[idxChain][0]
			}
			rec.icode = ' '
			seq, _ := strconv.ParseFloat(row[idxSeq], 64)
			rec.seq = int(seq)
			rec.x, _ = strconv.ParseFloat(row[idxX], 64)
			rec.y, _ = strconv.ParseFloat(row[idxY], 64)
			rec.z, _ = strconv.ParseFloat(row[idxZ], 64)

			b.add(rec)
			if b.stop {
				break
			}
		}
		if b.n > 0 || b.stop {
			break
		}
	}
	return b.done("ReadMMCIF")
}

// cifTerminator reports whether a token ends the data rows of a loop.
func cifTerminator(t string) bool {
	return t == "loop_" || t == "stop_" ||
		strings.HasPrefix(t, "_") ||
		strings.HasPrefix(t, "data_") ||
		strings.HasPrefix(t, "save_")
}

// tokenizeCIF splits CIF input into data tokens: whitespace-separated
// words, quoted values, and semicolon-delimited multi-line text fields.
// Comments run to end of line.
func tokenizeCIF(input string) []string {
	var tokens []string
	i := 0
	atLineStart := true
	n := len(input)

	for i < n {
		c := input[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f' {
			if c == '\n' {
				atLineStart = true
			}
			i++
			continue
		}
		if c == '#' {
			for i < n && input[i] != '\n' {
				i++
			}
			atLineStart = true
			continue
		}
		if c == ';' && atLineStart {
			i++
			start := i
			end := -1
			for i+1 < n {
				if input[i] == '\n' && input[i+1] == ';' {
					end = i
					break
				}
				i++
			}
			if end >= 0 {
				tokens = append(tokens, input[start:end])
				i = end + 2
				for i < n && input[i] != '\n' {
					i++
				}
				atLineStart = true
				continue
			}
		}
		if c == '\'' || c == '"' {
			quote := c
			i++
			start := i
			for i < n && input[i] != quote {
				i++
			}
			tokens = append(tokens, input[start:i])
			i++
			atLineStart = false
			continue
		}
		start := i
		for i < n && !isCIFSpace(input[i]) {
			i++
		}
		tokens = append(tokens, input[start:i])
		atLineStart = false
	}
	return tokens
}

func isCIFSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
