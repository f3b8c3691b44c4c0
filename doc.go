/*
 * doc.go, part of goErrat.
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

/*Package errat evaluates the stereochemical quality of protein structures
from the statistics of non-bonded atomic contacts, reproducing the output
of the classic ERRAT program byte for byte.


	**goErrat capabilities**

    Reads protein structures in the legacy fixed-column PDB format and in
	mmCIF, including gzip-compressed files.

    Counts weighted carbon/nitrogen/oxygen contacts in sliding 9-residue
	windows along each chain, using the original spatial bucketing.

    Scores every window against the historical calibration (mean contact
	fractions and weighting matrix), producing a per-residue error profile
	and an overall quality factor.

    Writes the legacy analysis log, the legacy PostScript error plot, and
	a directly encoded single-file PDF with the same visual content.

    Processes batches of structures concurrently, one pipeline instance
	per structure.

The root package holds the structure model and the two parsers. Scoring
lives in the score subpackage, rendering in erratplot, and the pipeline
composition in pipeline.
*/
package errat
