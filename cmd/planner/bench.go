package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/bestfirst/internal/solver"
	"github.com/pdrpinto/bestfirst/puzzles"
	"github.com/pdrpinto/bestfirst/telemetry"
)

func newBenchCommand(a *app) *cobra.Command {
	var (
		concurrency int
		metrics     bool
	)
	cmd := &cobra.Command{
		Use:   "bench [puzzle directory]",
		Short: "Solve every puzzle of a directory concurrently and tabulate the runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("concurrency") {
				a.config.Bench.Concurrency = concurrency
			}
			if cmd.Flags().Changed("metrics") {
				a.config.Observability.MetricsEnabled = metrics
			}
			if err := a.config.Validate(); err != nil {
				return err
			}

			files, err := puzzles.LoadDir(args[0])
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			observer := telemetry.NewObserver(a.logger, telemetry.NewMetrics(registry),
				telemetry.WithTracing(a.config.Observability.TracingEnabled))
			s := solver.New(a.config.Search, a.logger, observer)

			outcomes := make([]solver.Outcome, len(files))
			group, ctx := errgroup.WithContext(cmd.Context())
			group.SetLimit(a.config.Bench.Concurrency)
			for i, file := range files {
				group.Go(func() error {
					outcome, err := s.Solve(ctx, file)
					if err != nil {
						return err
					}
					outcomes[i] = outcome
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := writeTable(out, outcomes); err != nil {
				return err
			}
			if a.config.Observability.MetricsEnabled {
				fmt.Fprintln(out)
				return telemetry.WriteText(out, registry)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum concurrent searches")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "print Prometheus metrics after the table")
	return cmd
}

func writeTable(w io.Writer, outcomes []solver.Outcome) error {
	table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "PUZZLE\tKIND\tFOUND\tPLAN\tEXPANSIONS\tVISITED\tTIME")
	for _, outcome := range outcomes {
		fmt.Fprintf(table, "%s\t%s\t%t\t%d\t%d\t%d\t%s\n",
			outcome.Name,
			outcome.Kind,
			outcome.Stats.Found,
			outcome.Stats.PlanLength,
			outcome.Stats.Expansions,
			outcome.Stats.Visited,
			outcome.Stats.Elapsed.Round(time.Microsecond),
		)
	}
	return table.Flush()
}
