package config

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/bestfirst"
)

func TestDefaultIsValid(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate())

	order, err := config.Search.Order()
	require.NoError(t, err)
	assert.Equal(t, bestfirst.ShuffledActions, order)
	assert.Equal(t, uint64(42), config.Search.ActionSeed)
	assert.Equal(t, 1000, config.Search.ActionGroups)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
search:
  frontier: bucket
  heuristic: novelty+manhattan
  action_order: fixed
bench:
  concurrency: 2
observability:
  log_level: debug
`), 0o600))
	t.Setenv("PLANNER_CONCURRENCY", "8")
	t.Setenv("PLANNER_TRACING_ENABLED", "true")

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FrontierBucket, config.Search.Frontier)
	assert.Equal(t, HeuristicNoveltyManhattan, config.Search.Heuristic)
	assert.Equal(t, 8, config.Bench.Concurrency)
	assert.True(t, config.Observability.TracingEnabled)
	assert.Equal(t, 1e6, config.Search.NoveltyWeight, "unset keys keep their defaults")

	level, err := config.Observability.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"search": {"heuristic": "misplaced", "action_order": "random"}}`), 0o600))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, HeuristicMisplaced, config.Search.Heuristic)
	order, err := config.Search.Order()
	require.NoError(t, err)
	assert.Equal(t, bestfirst.RandomActions, order)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*PlannerConfig){
		"frontier":    func(c *PlannerConfig) { c.Search.Frontier = "fibonacci" },
		"heuristic":   func(c *PlannerConfig) { c.Search.Heuristic = "euclid" },
		"novelty":     func(c *PlannerConfig) { c.Search.Heuristic = NoveltyPrefix + HeuristicZero },
		"nan weight":  func(c *PlannerConfig) { c.Search.NoveltyWeight = math.NaN() },
		"inf weight":  func(c *PlannerConfig) { c.Search.NoveltyWeight = math.Inf(1) },
		"neg weight":  func(c *PlannerConfig) { c.Search.NoveltyWeight = -1 },
		"order":       func(c *PlannerConfig) { c.Search.ActionOrder = "sorted" },
		"groups":      func(c *PlannerConfig) { c.Search.ActionGroups = 0 },
		"concurrency": func(c *PlannerConfig) { c.Bench.Concurrency = -1 },
		"level":       func(c *PlannerConfig) { c.Observability.LogLevel = "loud" },
		"format":      func(c *PlannerConfig) { c.Observability.LogFormat = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			config := Default()
			mutate(&config)
			assert.ErrorIs(t, config.Validate(), ErrInvalid)
		})
	}
}

func TestLoadRejectsNaNNoveltyWeight(t *testing.T) {
	t.Setenv("PLANNER_NOVELTY_WEIGHT", "NaN")
	t.Setenv("PLANNER_FRONTIER", FrontierBucket)
	t.Setenv("PLANNER_HEURISTIC", HeuristicNoveltyManhattan)

	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalid)

	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  novelty_weight: .nan\n"), 0o600))
	t.Setenv("PLANNER_NOVELTY_WEIGHT", "")
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSplitHeuristic(t *testing.T) {
	base, novelty := SplitHeuristic(HeuristicNoveltyRGD)
	assert.Equal(t, HeuristicRGD, base)
	assert.True(t, novelty)

	base, novelty = SplitHeuristic(HeuristicManhattan)
	assert.Equal(t, HeuristicManhattan, base)
	assert.False(t, novelty)

	config := Default()
	for _, name := range []string{HeuristicRGD, HeuristicNoveltyRGD, NoveltyPrefix + HeuristicMisplaced} {
		config.Search.Heuristic = name
		assert.NoError(t, config.Validate(), name)
	}
}
