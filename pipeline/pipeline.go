/*
 * pipeline.go, part of goErrat.
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

// Package pipeline runs the full analysis for one structure: parse,
// score, render. It also knows the legacy job-folder layout and can run
// batches of independent analyses concurrently.
package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goerrat/errat"
	"github.com/goerrat/errat/erratplot"
	"github.com/goerrat/errat/score"
)

// Analyze parses a structure from r, scores it, and renders the plot.
// The analysis log goes to logw, the plot to plotw. name labels the
// plot pages. No plot is rendered when not a single window could be
// scored; the log then carries the explicit undefined-quality line.
func Analyze(r io.Reader, format errat.Format, name string, logw, plotw io.Writer, pdf bool) (*score.Profile, error) {
	s, err := errat.Read(r, format, logw)
	if err != nil {
		return nil, err
	}
	p, err := score.Compute(s, logw)
	if err != nil {
		return nil, err
	}
	if p.Frames > 0 {
		if pdf {
			err = erratplot.WritePDF(plotw, logw, name, p)
		} else {
			err = erratplot.WritePS(plotw, logw, name, p)
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Job is one self-contained analysis: a structure file in, a log file
// and a plot file out. Output files are written atomically, so a failed
// or interrupted job never leaves a truncated pair behind.
type Job struct {
	Input    string // structure file, PDB or mmCIF, optionally gzipped
	Name     string // label printed on the plot pages
	LogPath  string
	PlotPath string
	PDF      bool
}

// JobPaths fills in the legacy job-folder layout: the structure is
// expected at <base>/<jobID>/errat.pdb and the outputs go next to it as
// errat.logf and errat.ps or errat.pdf.
func JobPaths(base, name, jobID string, pdf bool) Job {
	dir := filepath.Join(base, jobID)
	plot := "errat.ps"
	if pdf {
		plot = "errat.pdf"
	}
	return Job{
		Input:    filepath.Join(dir, "errat.pdb"),
		Name:     name,
		LogPath:  filepath.Join(dir, "errat.logf"),
		PlotPath: filepath.Join(dir, plot),
		PDF:      pdf,
	}
}

// DefaultBasePath returns the job-folder root: $ERRAT_JOBS_PATH when
// set, otherwise ./outputs under the current directory.
func DefaultBasePath() string {
	if val := os.Getenv("ERRAT_JOBS_PATH"); val != "" {
		return val
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return filepath.Join(wd, "outputs")
}

// OutputJob derives a job from an input file name: <stem>.logf and
// <stem>.ps or <stem>.pdf in outDir, which defaults to the input's
// directory.
func OutputJob(input, outDir string, pdf bool) Job {
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(filepath.Base(input)))
	if stem == "" {
		stem = "errat"
	}
	ext := ".ps"
	if pdf {
		ext = ".pdf"
	}
	return Job{
		Input:    input,
		Name:     filepath.Base(input),
		LogPath:  filepath.Join(outDir, stem+".logf"),
		PlotPath: filepath.Join(outDir, stem+ext),
		PDF:      pdf,
	}
}

// Run executes the job. Both outputs are first written to temporary
// files in their target directory and renamed into place only after the
// whole analysis succeeded.
func (j Job) Run() error {
	if err := os.MkdirAll(filepath.Dir(j.LogPath), 0o755); err != nil {
		rerr := errat.NewRenderError("creating output directory: %v", err)
		rerr.Decorate("Job.Run")
		return rerr
	}

	in, err := os.Open(j.Input)
	if err != nil {
		perr := errat.NewParseError("opening %s: %v", j.Input, err)
		perr.Decorate("Job.Run")
		return perr
	}
	defer in.Close()

	logf, err := os.CreateTemp(filepath.Dir(j.LogPath), ".errat-log-*")
	if err != nil {
		rerr := errat.NewRenderError("creating log file: %v", err)
		rerr.Decorate("Job.Run")
		return rerr
	}
	plotf, err := os.CreateTemp(filepath.Dir(j.PlotPath), ".errat-plot-*")
	if err != nil {
		logf.Close()
		os.Remove(logf.Name())
		rerr := errat.NewRenderError("creating plot file: %v", err)
		rerr.Decorate("Job.Run")
		return rerr
	}
	discard := func() {
		logf.Close()
		plotf.Close()
		os.Remove(logf.Name())
		os.Remove(plotf.Name())
	}

	_, err = Analyze(in, errat.FormatForPath(j.Input), j.Name, logf, plotf, j.PDF)
	if err != nil {
		discard()
		return err
	}
	if err := logf.Close(); err != nil {
		discard()
		rerr := errat.NewRenderError("closing log file: %v", err)
		rerr.Decorate("Job.Run")
		return rerr
	}
	if err := plotf.Close(); err != nil {
		discard()
		rerr := errat.NewRenderError("closing plot file: %v", err)
		rerr.Decorate("Job.Run")
		return rerr
	}
	if err := os.Rename(logf.Name(), j.LogPath); err != nil {
		os.Remove(logf.Name())
		os.Remove(plotf.Name())
		rerr := errat.NewRenderError("placing log file: %v", err)
		rerr.Decorate("Job.Run")
		return rerr
	}
	if err := os.Rename(plotf.Name(), j.PlotPath); err != nil {
		os.Remove(plotf.Name())
		rerr := errat.NewRenderError("placing plot file: %v", err)
		rerr.Decorate("Job.Run")
		return rerr
	}
	return nil
}

// Failure pairs a failed job with its error.
type Failure struct {
	Job Job
	Err error
}

// RunBatch runs the jobs on a fixed pool of workers and returns the
// failures, in no particular order. Jobs share nothing, so a failure
// never affects the others.
func RunBatch(jobs []Job, workers int) []Failure {
	if workers < 1 {
		workers = 1
	}
	in := make(chan Job)
	out := make(chan Failure, len(jobs))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range in {
				if err := j.Run(); err != nil {
					out <- Failure{Job: j, Err: err}
				}
			}
		}()
	}
	for _, j := range jobs {
		in <- j
	}
	close(in)
	wg.Wait()
	close(out)
	var failures []Failure
	for f := range out {
		failures = append(failures, f)
	}
	return failures
}
