/*
 * refmodel.go, part of goErrat.
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

// Package score counts classified non-bonded atomic contacts in sliding
// 9-residue windows along each chain and converts them into per-position
// error estimates against a fixed historical calibration.
package score

import "gonum.org/v1/gonum/mat"

// Calibration and geometry constants of the reference tool. These are
// historical data, not tunables: the analysis log is compared byte for
// byte against the legacy output.
const (
	// BoxSize is the edge of the spatial buckets used to find contact
	// partners, in Angstrom.
	BoxSize = 4.0
	// Radius is the contact cutoff distance.
	Radius = 3.75
	// RadMin is the distance below which a contact counts with full
	// weight; between RadMin and Radius the weight falls off linearly.
	RadMin = 3.25
	// MaxWin is the minimum total interaction weight a window needs to
	// be scored at all.
	MaxWin = 100.694
	// Lmt95 and Lmt99 are the 95% and 99% rejection thresholds for the
	// error statistic.
	Lmt95 = 11.526684477428809
	Lmt99 = 17.190823041860433

	boxSlots = 15
	maxBoxes = 200000
)

// refMean holds the calibrated mean contact fractions, 1-indexed in the
// order C-C, C-N, C-O, N-N, N-O.
var refMean = [6]float64{
	0,
	0.192765509919262,
	0.195575208778518,
	0.275322406824210,
	0.059102357035642,
	0.233154192767480,
}

// refWeight is the calibrated weighting matrix of the quadratic form,
// with a zero row and column so the historical 1-based indexing can be
// kept in the evaluation loops. The slight asymmetries in the last
// digits are present in the original data and are preserved.
var refWeight = mat.NewDense(6, 6, []float64{
	0, 0, 0, 0, 0, 0,
	0, 5040.279078850848, 3408.8051415836494, 4152.904423767301, 4236.20000417189, 5054.7812102046255,
	0, 3408.805141583649, 8491.906094010221, 5958.88177787795, 1521.3873527184862, 4304.078200827222,
	0, 4152.9044237673015, 5958.881777877952, 7637.16708933505, 6620.7157382230725, 5287.691183798411,
	0, 4236.20000417189, 1521.3873527184862, 6620.7157382230725, 18368.34377429841, 4050.7978111188067,
	0, 5054.7812102046255, 4304.078200827221, 5287.69118379841, 4050.7978111188067, 6666.856740479165,
})

// errorValue evaluates the quadratic form (m-mean)' W (m-mean) in the
// exact loop order of the reference implementation: row sums first, then
// the dot product with the deviation. The order matters because the
// result is printed to several digits and compared byte for byte.
func errorValue(m *[6]float64) float64 {
	var v [6]float64
	for u := 1; u < 6; u++ {
		v[u] = m[u] - refMean[u]
	}
	var c [6]float64
	for j := 1; j < 6; j++ {
		x := 0.0
		for k := 1; k < 6; k++ {
			x += v[k] * refWeight.At(k, j)
		}
		c[j] = x
	}
	total := 0.0
	for k := 1; k < 6; k++ {
		total += c[k] * v[k]
	}
	return total
}

// Mean returns the calibrated mean contact fractions in the order
// C-C, C-N, C-O, N-N, N-O.
func Mean() [5]float64 {
	var m [5]float64
	copy(m[:], refMean[1:])
	return m
}

// ErrorValue computes the error statistic for an observed
// contact-fraction vector in the order C-C, C-N, C-O, N-N, N-O. An
// observation equal to Mean() yields zero.
func ErrorValue(obs [5]float64) float64 {
	var m [6]float64
	copy(m[1:], obs[:])
	return errorValue(&m)
}
