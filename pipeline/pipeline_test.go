/*
 * pipeline_test.go, part of goErrat.
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

package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goerrat/errat"
)

// sparsePDB builds a chain of n alanine CA atoms 20 Angstrom apart:
// enough residues for complete windows, too few contacts to score any.
func sparsePDB(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "ATOM  %5d  CA  ALA A%4d    %8.3f%8.3f%8.3f  1.00 20.00\n",
			i, i, float64(i-1)*20.0, 0.0, 0.0)
	}
	return b.String()
}

// sparseCIF is the same chain in mmCIF form.
func sparseCIF(n int) string {
	var b strings.Builder
	b.WriteString("data_chain\nloop_\n")
	b.WriteString("_atom_site.group_PDB\n_atom_site.label_atom_id\n_atom_site.label_comp_id\n")
	b.WriteString("_atom_site.auth_asym_id\n_atom_site.auth_seq_id\n")
	b.WriteString("_atom_site.Cartn_x\n_atom_site.Cartn_y\n_atom_site.Cartn_z\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "ATOM CA ALA A %d %.3f %.3f %.3f\n", i, float64(i-1)*20.0, 0.0, 0.0)
	}
	return b.String()
}

func TestAnalyzeDeterministic(t *testing.T) {
	var log1, plot1, log2, plot2 bytes.Buffer
	_, err := Analyze(strings.NewReader(sparsePDB(12)), errat.PDB, "m", &log1, &plot1, false)
	require.NoError(t, err)
	_, err = Analyze(strings.NewReader(sparsePDB(12)), errat.PDB, "m", &log2, &plot2, false)
	require.NoError(t, err)
	assert.Equal(t, log1.String(), log2.String())
	assert.Equal(t, plot1.String(), plot2.String())
}

// The same structure in PDB and mmCIF form must produce byte-identical
// artifacts.
func TestAnalyzeFormatIndependent(t *testing.T) {
	var pdbLog, pdbPlot, cifLog, cifPlot bytes.Buffer
	p1, err := Analyze(strings.NewReader(sparsePDB(12)), errat.PDB, "m", &pdbLog, &pdbPlot, false)
	require.NoError(t, err)
	p2, err := Analyze(strings.NewReader(sparseCIF(12)), errat.MMCIF, "m", &cifLog, &cifPlot, false)
	require.NoError(t, err)
	assert.Equal(t, p1.NAtoms, p2.NAtoms)
	assert.Equal(t, pdbLog.String(), cifLog.String())
	assert.Equal(t, pdbPlot.String(), cifPlot.String())
}

func TestAnalyzeSkipsPlotWithoutFrames(t *testing.T) {
	var log, plot bytes.Buffer
	p, err := Analyze(strings.NewReader(sparsePDB(12)), errat.PDB, "m", &log, &plot, false)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Frames)
	assert.Zero(t, plot.Len())
	assert.Contains(t, log.String(), "# Overall quality factor: undefined")
}

func TestJobPathsLayout(t *testing.T) {
	j := JobPaths("/jobs", "my model", "1234", false)
	assert.Equal(t, filepath.Join("/jobs", "1234", "errat.pdb"), j.Input)
	assert.Equal(t, filepath.Join("/jobs", "1234", "errat.logf"), j.LogPath)
	assert.Equal(t, filepath.Join("/jobs", "1234", "errat.ps"), j.PlotPath)
	assert.Equal(t, "my model", j.Name)

	j = JobPaths("/jobs", "m", "1234", true)
	assert.Equal(t, filepath.Join("/jobs", "1234", "errat.pdf"), j.PlotPath)
}

func TestOutputJob(t *testing.T) {
	j := OutputJob(filepath.Join("in", "model.pdb"), "", false)
	assert.Equal(t, filepath.Join("in", "model.logf"), j.LogPath)
	assert.Equal(t, filepath.Join("in", "model.ps"), j.PlotPath)
	assert.Equal(t, "model.pdb", j.Name)

	j = OutputJob(filepath.Join("in", "model.cif"), "out", true)
	assert.Equal(t, filepath.Join("out", "model.logf"), j.LogPath)
	assert.Equal(t, filepath.Join("out", "model.pdf"), j.PlotPath)
}

func TestDefaultBasePath(t *testing.T) {
	t.Setenv("ERRAT_JOBS_PATH", "/var/jobs")
	assert.Equal(t, "/var/jobs", DefaultBasePath())

	t.Setenv("ERRAT_JOBS_PATH", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "outputs"), DefaultBasePath())
}

func TestJobRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "model.pdb")
	require.NoError(t, os.WriteFile(input, []byte(sparsePDB(12)), 0o644))

	j := OutputJob(input, "", false)
	require.NoError(t, j.Run())

	log, err := os.ReadFile(j.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(log), "Below Minimum Interaction Limit.")

	// The plot file is placed even when nothing was drawn.
	_, err = os.Stat(j.PlotPath)
	assert.NoError(t, err)

	// No temporary files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".errat-"), "leftover temp file %s", e.Name())
	}
}

func TestJobRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	j := OutputJob(filepath.Join(dir, "absent.pdb"), "", false)
	err := j.Run()
	require.Error(t, err)
	if _, ok := err.(*errat.ParseError); !ok {
		t.Errorf("got %T, want *errat.ParseError", err)
	}
}

func TestRunBatch(t *testing.T) {
	const n = 8
	jobs := make([]Job, 0, n)
	for i := 0; i < n; i++ {
		dir := t.TempDir()
		input := filepath.Join(dir, "model.pdb")
		require.NoError(t, os.WriteFile(input, []byte(sparsePDB(12)), 0o644))
		jobs = append(jobs, OutputJob(input, "", false))
	}

	failures := RunBatch(jobs, 4)
	require.Empty(t, failures)

	// Concurrent jobs are independent: every log is identical.
	first, err := os.ReadFile(jobs[0].LogPath)
	require.NoError(t, err)
	for _, j := range jobs[1:] {
		log, err := os.ReadFile(j.LogPath)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(log))
	}
}

func TestRunBatchReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.pdb")
	require.NoError(t, os.WriteFile(good, []byte(sparsePDB(12)), 0o644))

	jobs := []Job{
		OutputJob(good, "", false),
		OutputJob(filepath.Join(dir, "missing.pdb"), "", false),
	}
	failures := RunBatch(jobs, 2)
	require.Len(t, failures, 1)
	assert.Equal(t, filepath.Join(dir, "missing.pdb"), failures[0].Job.Input)
}
