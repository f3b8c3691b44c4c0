/*
 * sig6_test.go, part of goErrat.
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

import "testing"

func TestSig6(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0.0, "0"},
		{1.0, "1"},
		{-1.0, "-1"},
		{100.0, "100"},
		{123.456789, "123.457"},
		{-123.456789, "-123.457"},
		{0.000123456789, "0.000123457"},
		{1234567.0, "1234567"},
		{99.9999999, "100"},
		{0.5, "0.5"},
		{-17.190823041860433, "-17.1908"},
		{11.526684477428809, "11.5267"},
	}
	for _, c := range cases {
		if got := Sig6(c.in); got != c.want {
			t.Errorf("Sig6(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
