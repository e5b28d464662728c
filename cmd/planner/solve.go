package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/bestfirst/internal/solver"
	"github.com/pdrpinto/bestfirst/puzzles"
	"github.com/pdrpinto/bestfirst/puzzles/grid"
	"github.com/pdrpinto/bestfirst/puzzles/push"
	"github.com/pdrpinto/bestfirst/telemetry"
	"github.com/pdrpinto/bestfirst/world"
)

// noSolution is printed when the reachable state space holds no goal.
const noSolution = "NO SOLUTION"

func newSolveCommand(a *app) *cobra.Command {
	var render bool
	cmd := &cobra.Command{
		Use:   "solve [puzzle file]",
		Short: "Solve one puzzle and print its plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := puzzles.Load(args[0])
			if err != nil {
				return err
			}

			observer := telemetry.NewObserver(a.logger, nil,
				telemetry.WithTracing(a.config.Observability.TracingEnabled))
			outcome, err := solver.New(a.config.Search, a.logger, observer).Solve(cmd.Context(), file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !outcome.Stats.Found {
				fmt.Fprintln(out, noSolution)
				return nil
			}
			fmt.Fprintln(out, world.FormatPlan(outcome.Plan))

			if !render {
				return nil
			}
			switch file.Kind {
			case puzzles.KindGrid:
				puzzle, err := grid.FromMap(file.Map)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, puzzle.Render(outcome.Plan))
			case puzzles.KindPush:
				puzzle, err := push.Parse(file.Map)
				if err != nil {
					return err
				}
				state := puzzle.InitialState()
				for _, d := range outcome.Plan {
					state = puzzle.NextState(state, d).State
				}
				fmt.Fprintln(out, puzzle.Format(state))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "draw the plan over grid puzzles or the final state of push puzzles")
	return cmd
}
