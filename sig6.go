/*
 * sig6.go, part of goErrat.
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
	"math"
	"strconv"
	"strings"
)

// Sig6 formats a float the way the reference tool prints statistics:
// six significant digits in plain decimal notation, trailing zeros (and
// a bare trailing point) stripped, exact zero as "0" and negative zero
// folded to "0". The analysis log is compared byte for byte against the
// legacy output, so this routine must not be replaced by a
// general-purpose conversion.
func Sig6(value float64) string {
	if value == 0 {
		return "0"
	}
	abs := math.Abs(value)
	exp := int(math.Floor(math.Log10(abs)))
	decimals := 0
	if exp < 5 {
		decimals = 5 - exp
	}
	s := strconv.FormatFloat(value, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
