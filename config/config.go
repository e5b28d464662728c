// Package config loads planner settings from YAML/JSON files and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/bestfirst"
)

// Frontier kinds.
const (
	FrontierHeap   = "heap"
	FrontierBucket = "bucket"
)

// Heuristic names. Any distance heuristic can follow NoveltyPrefix to rank
// states by novelty first and by that distance second.
const (
	HeuristicManhattan        = "manhattan"
	HeuristicMisplaced        = "misplaced"
	HeuristicRGD              = "rgd"
	HeuristicZero             = "zero"
	HeuristicNoveltyManhattan = NoveltyPrefix + HeuristicManhattan
	HeuristicNoveltyRGD       = NoveltyPrefix + HeuristicRGD

	NoveltyPrefix = "novelty+"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// PlannerConfig contains all planner configuration.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after creation.
type PlannerConfig struct {
	// Search contains search settings.
	Search SearchConfig `json:"search" yaml:"search"`

	// Bench contains batch solving settings.
	Bench BenchConfig `json:"bench" yaml:"bench"`

	// Observability contains logging, metrics and tracing settings.
	Observability ObservabilityConfig `json:"observability" yaml:"observability"`
}

// SearchConfig selects the collaborators of a search.
type SearchConfig struct {
	Frontier      string  `json:"frontier" yaml:"frontier"`
	Heuristic     string  `json:"heuristic" yaml:"heuristic"`
	ActionOrder   string  `json:"action_order" yaml:"action_order"`
	ActionSeed    uint64  `json:"action_seed" yaml:"action_seed"`
	ActionGroups  int     `json:"action_groups" yaml:"action_groups"`
	NoveltyWeight float64 `json:"novelty_weight" yaml:"novelty_weight"`

	// RGDFewestTools makes the recursive graph distance use the fewest
	// intermediate objects that reach a finite cost instead of searching
	// every combination of them.
	RGDFewestTools bool `json:"rgd_fewest_tools" yaml:"rgd_fewest_tools"`
}

// BenchConfig contains batch solving settings.
type BenchConfig struct {
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// ObservabilityConfig contains observability settings.
type ObservabilityConfig struct {
	LogLevel       string `json:"log_level" yaml:"log_level"`
	LogFormat      string `json:"log_format" yaml:"log_format"`
	MetricsEnabled bool   `json:"metrics_enabled" yaml:"metrics_enabled"`
	TracingEnabled bool   `json:"tracing_enabled" yaml:"tracing_enabled"`
}

// Default returns the default configuration.
func Default() PlannerConfig {
	return PlannerConfig{
		Search: SearchConfig{
			Frontier:     FrontierHeap,
			Heuristic:    HeuristicManhattan,
			ActionOrder:  bestfirst.ShuffledActions.String(),
			ActionSeed:   bestfirst.DefaultActionSeed,
			ActionGroups: bestfirst.DefaultActionGroups,
			// The maximum novelty is 3, so 1e6 keeps novelty dominant while
			// distances stay integral.
			NoveltyWeight:  1e6,
			RGDFewestTools: true,
		},
		Bench: BenchConfig{
			Concurrency: 4,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: LogFormatText,
		},
	}
}

// Load returns the defaults overlaid with the file at path (if any) and then
// with PLANNER_* environment variables. A missing file is not an error.
func Load(path string) (PlannerConfig, error) {
	config := Default()

	if path != "" {
		if err := loadConfigFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	loadConfigFromEnv(&config)

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func loadConfigFile(path string, config *PlannerConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

func loadConfigFromEnv(config *PlannerConfig) {
	// Search
	if v := os.Getenv("PLANNER_FRONTIER"); v != "" {
		config.Search.Frontier = v
	}
	if v := os.Getenv("PLANNER_HEURISTIC"); v != "" {
		config.Search.Heuristic = v
	}
	if v := os.Getenv("PLANNER_ACTION_ORDER"); v != "" {
		config.Search.ActionOrder = v
	}
	if v := os.Getenv("PLANNER_ACTION_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Search.ActionSeed = seed
		}
	}
	if v := os.Getenv("PLANNER_ACTION_GROUPS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Search.ActionGroups = i
		}
	}
	if v := os.Getenv("PLANNER_NOVELTY_WEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Search.NoveltyWeight = f
		}
	}
	if v := os.Getenv("PLANNER_RGD_FEWEST_TOOLS"); v != "" {
		config.Search.RGDFewestTools = v == "true" || v == "1"
	}

	// Bench
	if v := os.Getenv("PLANNER_CONCURRENCY"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Bench.Concurrency = i
		}
	}

	// Observability
	if v := os.Getenv("PLANNER_LOG_LEVEL"); v != "" {
		config.Observability.LogLevel = v
	}
	if v := os.Getenv("PLANNER_LOG_FORMAT"); v != "" {
		config.Observability.LogFormat = v
	}
	if v := os.Getenv("PLANNER_METRICS_ENABLED"); v != "" {
		config.Observability.MetricsEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("PLANNER_TRACING_ENABLED"); v != "" {
		config.Observability.TracingEnabled = v == "true" || v == "1"
	}
}

// Validate checks every setting.
func (c PlannerConfig) Validate() error {
	switch c.Search.Frontier {
	case FrontierHeap, FrontierBucket:
	default:
		return fmt.Errorf("%w: unknown frontier %q", ErrInvalid, c.Search.Frontier)
	}
	base, novelty := SplitHeuristic(c.Search.Heuristic)
	switch base {
	case HeuristicManhattan, HeuristicMisplaced, HeuristicRGD:
	case HeuristicZero:
		if novelty {
			return fmt.Errorf("%w: unknown heuristic %q", ErrInvalid, c.Search.Heuristic)
		}
	default:
		return fmt.Errorf("%w: unknown heuristic %q", ErrInvalid, c.Search.Heuristic)
	}
	weight := c.Search.NoveltyWeight
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return fmt.Errorf("%w: novelty_weight must be finite and non-negative, got %v", ErrInvalid, weight)
	}
	if _, err := c.Search.Order(); err != nil {
		return err
	}
	if c.Search.ActionGroups <= 0 {
		return fmt.Errorf("%w: action_groups must be positive, got %d", ErrInvalid, c.Search.ActionGroups)
	}
	if c.Bench.Concurrency <= 0 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalid, c.Bench.Concurrency)
	}
	if _, err := c.Observability.Level(); err != nil {
		return err
	}
	switch c.Observability.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Observability.LogFormat)
	}
	return nil
}

// SplitHeuristic returns the distance heuristic of name and whether novelty ranks first.
func SplitHeuristic(name string) (base string, novelty bool) {
	if rest, ok := strings.CutPrefix(name, NoveltyPrefix); ok {
		return rest, true
	}
	return name, false
}

// Order parses the action order setting.
func (s SearchConfig) Order() (bestfirst.ActionOrder, error) {
	for _, order := range []bestfirst.ActionOrder{bestfirst.ShuffledActions, bestfirst.FixedActions, bestfirst.RandomActions} {
		if strings.EqualFold(s.ActionOrder, order.String()) {
			return order, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown action order %q", ErrInvalid, s.ActionOrder)
}

// Level parses the log level setting.
func (o ObservabilityConfig) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}
	return level, nil
}
