package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/bestfirst/config"
)

const testdata = "../../puzzles/testdata"

func runPlanner(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	// Never pick up a planner.yaml from the working directory.
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSolvePrintsPlan(t *testing.T) {
	stdout, _, err := runPlanner(t, "solve", filepath.Join(testdata, "eight.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "DR\n", stdout)
}

func TestSolveRendersGrid(t *testing.T) {
	stdout, _, err := runPlanner(t, "solve", "--render", "--frontier", config.FrontierBucket, filepath.Join(testdata, "corridor.yml"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "RRDDRRUURRRDD", lines[0])
	assert.Equal(t, "S**#****", lines[1])
}

func TestSolveRendersPushGoalState(t *testing.T) {
	stdout, _, err := runPlanner(t, "solve", "--render", "--heuristic", config.HeuristicNoveltyRGD, filepath.Join(testdata, "trivial.yaml"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 6)
	assert.NotEmpty(t, lines[0])
	assert.Contains(t, lines[2], "M0+G0")
}

func TestSolveWithoutSolution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swapped.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: slide\ntiles:\n  - [2, 1]\n  - [3, 0]\n"), 0o600))

	stdout, _, err := runPlanner(t, "solve", path)
	require.NoError(t, err)
	assert.Equal(t, noSolution+"\n", stdout)
}

func TestSolveLogsGoalReport(t *testing.T) {
	_, stderr, err := runPlanner(t, "solve", "--log-format", config.LogFormatJSON, filepath.Join(testdata, "eight.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"goal found"`)
	assert.Contains(t, stderr, `"plan_length":2`)
}

func TestSolveRejectsInvalidSettings(t *testing.T) {
	_, _, err := runPlanner(t, "solve", "--heuristic", "euclid", filepath.Join(testdata, "eight.yaml"))
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = runPlanner(t, "solve", filepath.Join(testdata, "missing.yaml"))
	assert.Error(t, err)
}

func TestBenchTabulatesDirectory(t *testing.T) {
	stdout, _, err := runPlanner(t, "bench", "--concurrency", "2", "--metrics", testdata)
	require.NoError(t, err)

	assert.Contains(t, stdout, "PUZZLE")
	// Rows follow the sorted file names.
	assert.Less(t, strings.Index(stdout, "corridor"), strings.Index(stdout, "easy-eight"))
	assert.Less(t, strings.Index(stdout, "easy-eight"), strings.Index(stdout, "trivial-push"))
	assert.Contains(t, stdout, `bestfirst_searches_total{result="found"} 3`)
}

func TestBenchRejectsZeroConcurrency(t *testing.T) {
	_, _, err := runPlanner(t, "bench", "--concurrency", "0", testdata)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestTraceWritesSpans(t *testing.T) {
	_, stderr, err := runPlanner(t, "solve", "--trace", filepath.Join(testdata, "eight.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "bestfirst.search")
}
