/*
 * main.go, part of goErrat.
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

// errat scores the stereochemical quality of protein structures and
// writes, per structure, an analysis log and a per-chain error plot.
//
// Two invocation styles are supported. Given one or more structure
// files (PDB or mmCIF, optionally gzipped), each is analyzed in place:
//
//	errat model1.pdb model2.cif.gz
//
// Given a label and a job ID that do not name existing files, the
// legacy job-folder layout is used: the structure is read from
// <base>/<jobID>/errat.pdb and the outputs are written next to it,
// where <base> is $ERRAT_JOBS_PATH or ./outputs.
//
//	errat "model 1" 8842
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/goerrat/errat/pipeline"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("errat: ")

	out := flag.String("out", "", "directory for output files (default: next to each input)")
	pdf := flag.Bool("pdf", false, "write the plot as PDF instead of PostScript")
	workers := flag.Int("workers", runtime.NumCPU(), "number of structures analyzed concurrently")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	var jobs []pipeline.Job
	if len(args) == 2 && !isFile(args[0]) && !isFile(args[1]) {
		jobs = append(jobs, pipeline.JobPaths(pipeline.DefaultBasePath(), args[0], args[1], *pdf))
	} else {
		for _, a := range args {
			jobs = append(jobs, pipeline.OutputJob(a, *out, *pdf))
		}
	}

	failures := pipeline.RunBatch(jobs, *workers)
	for _, f := range failures {
		log.Printf("%s: %v", f.Job.Input, f.Err)
	}
	if len(failures) > 0 {
		os.Exit(1)
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  errat [flags] structure-file...
  errat [flags] 'plot label' jobID

In the second form the structure is read from <base>/<jobID>/errat.pdb,
where <base> is $ERRAT_JOBS_PATH or ./outputs.

flags:
`)
	flag.PrintDefaults()
}
