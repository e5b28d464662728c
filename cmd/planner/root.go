package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/bestfirst/config"
	"github.com/pdrpinto/bestfirst/telemetry"
)

// app carries what the persistent pre-run prepares for every subcommand.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	trace      bool

	search   searchFlags
	config   config.PlannerConfig
	logger   *slog.Logger
	shutdown func(context.Context) error
}

// searchFlags override the search section of the config when set.
type searchFlags struct {
	frontier  string
	heuristic string
	order     string
	seed      uint64
}

func newRootCommand() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "planner",
		Short:         "Solve puzzles with best-first search",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.shutdown == nil {
				return nil
			}
			return a.shutdown(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "planner.yaml", "path to a YAML or JSON config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (text, json)")
	flags.BoolVar(&a.trace, "trace", false, "write OpenTelemetry spans to stderr")
	flags.StringVar(&a.search.frontier, "frontier", "", "frontier kind (heap, bucket)")
	flags.StringVar(&a.search.heuristic, "heuristic", "", "heuristic (manhattan, misplaced, zero, novelty+manhattan)")
	flags.StringVar(&a.search.order, "order", "", "action order (shuffled, fixed, random)")
	flags.Uint64Var(&a.search.seed, "seed", 0, "seed of the shuffled action order")

	rootCmd.AddCommand(newSolveCommand(a), newBenchCommand(a))
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	loaded, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.Observability.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		loaded.Observability.LogFormat = a.logFormat
	}
	if flags.Changed("trace") {
		loaded.Observability.TracingEnabled = a.trace
	}
	if flags.Changed("frontier") {
		loaded.Search.Frontier = a.search.frontier
	}
	if flags.Changed("heuristic") {
		loaded.Search.Heuristic = a.search.heuristic
	}
	if flags.Changed("order") {
		loaded.Search.ActionOrder = a.search.order
	}
	if flags.Changed("seed") {
		loaded.Search.ActionSeed = a.search.seed
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	a.config = loaded

	level, _ := loaded.Observability.Level()
	handlerOptions := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if loaded.Observability.LogFormat == config.LogFormatJSON {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), handlerOptions)
	} else {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), handlerOptions)
	}
	a.logger = slog.New(handler)

	if loaded.Observability.TracingEnabled {
		shutdown, err := telemetry.InstallStdoutTracing(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("install tracing: %w", err)
		}
		a.shutdown = shutdown
	}
	return nil
}
