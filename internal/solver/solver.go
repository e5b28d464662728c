// Package solver turns puzzle files and planner settings into search runs.
package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/config"
	"github.com/pdrpinto/bestfirst/heuristic"
	"github.com/pdrpinto/bestfirst/puzzles"
	"github.com/pdrpinto/bestfirst/puzzles/grid"
	"github.com/pdrpinto/bestfirst/puzzles/push"
	"github.com/pdrpinto/bestfirst/puzzles/slide"
	"github.com/pdrpinto/bestfirst/world"
)

// ErrUnsupportedHeuristic is returned when a heuristic does not apply to a puzzle kind.
var ErrUnsupportedHeuristic = errors.New("heuristic not supported for puzzle kind")

type (
	// Node is the search node type of every planner puzzle.
	Node = bestfirst.SearchNode[world.State, world.Direction]
	// Frontier is the frontier type of every planner puzzle.
	Frontier = bestfirst.Frontier[*Node, float64]
)

// Outcome is the result of solving one puzzle file.
type Outcome struct {
	Name  string
	Kind  string
	Plan  bestfirst.Plan[world.Direction]
	Stats bestfirst.Stats
}

// Solver runs searches with fixed settings.
//
// Thread Safety: Safe for concurrent use; every Solve call builds its own
// frontier, visited set and heuristic.
type Solver struct {
	settings config.SearchConfig
	logger   *slog.Logger
	observer bestfirst.Observer
}

// New creates a solver. logger and observer may be nil.
func New(settings config.SearchConfig, logger *slog.Logger, observer bestfirst.Observer) *Solver {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = bestfirst.NopObserver{}
	}
	return &Solver{settings: settings, logger: logger, observer: observer}
}

// Solve builds the puzzle described by file and searches it.
func (s *Solver) Solve(ctx context.Context, file *puzzles.File) (Outcome, error) {
	puzzle, estimators, err := BuildPuzzle(file)
	if err != nil {
		return Outcome{}, err
	}
	estimator, err := BuildHeuristic(s.settings, puzzle.InitialState().NumObjects(), estimators)
	if err != nil {
		return Outcome{}, fmt.Errorf("puzzle %q: %w", file.Name, err)
	}
	frontier, err := BuildFrontier(s.settings.Frontier)
	if err != nil {
		return Outcome{}, err
	}
	order, err := s.settings.Order()
	if err != nil {
		return Outcome{}, err
	}

	logger := s.logger.With(slog.String("puzzle", file.Name), slog.String("kind", file.Kind))
	result := bestfirst.Search[world.State, world.Direction, float64](puzzle, estimator, frontier,
		bestfirst.WithContext(ctx),
		bestfirst.WithLogger(logger),
		bestfirst.WithObserver(s.observer),
		bestfirst.WithActionOrder(order),
		bestfirst.WithActionSeed(s.settings.ActionSeed),
		bestfirst.WithActionGroups(s.settings.ActionGroups),
	)
	return Outcome{Name: file.Name, Kind: file.Kind, Plan: result.Plan, Stats: result.Stats}, nil
}

// Estimator builds a fresh distance estimator for one search.
type Estimator func(settings config.SearchConfig) bestfirst.Heuristic[world.State, float64]

// Estimators maps heuristic names to the distance estimators a puzzle provides.
type Estimators map[string]Estimator

// BuildPuzzle constructs the puzzle of a file and its native estimators.
func BuildPuzzle(file *puzzles.File) (bestfirst.Puzzle[world.State, world.Direction], Estimators, error) {
	switch file.Kind {
	case puzzles.KindSlide:
		puzzle, err := slide.New(file.Tiles, file.Goal)
		if err != nil {
			return nil, nil, fmt.Errorf("puzzle %q: %w", file.Name, err)
		}
		return puzzle, Estimators{
			config.HeuristicManhattan: distance(puzzle.Manhattan()),
			config.HeuristicMisplaced: distance(puzzle.Misplaced()),
		}, nil
	case puzzles.KindGrid:
		puzzle, err := grid.FromMap(file.Map)
		if err != nil {
			return nil, nil, fmt.Errorf("puzzle %q: %w", file.Name, err)
		}
		return puzzle, Estimators{
			config.HeuristicManhattan: distance(puzzle.Manhattan()),
		}, nil
	case puzzles.KindPush:
		puzzle, err := push.Parse(file.Map)
		if err != nil {
			return nil, nil, fmt.Errorf("puzzle %q: %w", file.Name, err)
		}
		return puzzle, Estimators{
			config.HeuristicManhattan: distance(puzzle.Manhattan()),
			config.HeuristicRGD: func(settings config.SearchConfig) bestfirst.Heuristic[world.State, float64] {
				return push.NewRGD(puzzle, settings.RGDFewestTools)
			},
		}, nil
	default:
		return nil, nil, fmt.Errorf("puzzle %q: %w: %q", file.Name, puzzles.ErrUnknownKind, file.Kind)
	}
}

func distance(h bestfirst.Heuristic[world.State, int]) Estimator {
	return func(config.SearchConfig) bestfirst.Heuristic[world.State, float64] {
		return heuristic.ToFloat(h)
	}
}

// BuildHeuristic selects the estimator named by settings. A novelty
// combination ranks by novelty first and by its distance second.
func BuildHeuristic(settings config.SearchConfig, numObjects int, estimators Estimators) (bestfirst.Heuristic[world.State, float64], error) {
	base, novelty := config.SplitHeuristic(settings.Heuristic)
	if base == config.HeuristicZero && !novelty {
		return heuristic.Zero[world.State, float64](), nil
	}
	estimator, ok := estimators[base]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedHeuristic, settings.Heuristic)
	}
	if !novelty {
		return estimator(settings), nil
	}
	sum, err := heuristic.NewWeightedSum(
		heuristic.Term{Heuristic: heuristic.NewNovelty(numObjects), Weight: settings.NoveltyWeight},
		heuristic.Term{Heuristic: estimator(settings), Weight: 1},
	)
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// BuildFrontier creates an empty frontier of the named kind.
func BuildFrontier(kind string) (Frontier, error) {
	switch kind {
	case config.FrontierHeap:
		return bestfirst.NewHeapFrontier[*Node, float64](), nil
	case config.FrontierBucket:
		return bestfirst.NewBucketFrontier[*Node, float64](), nil
	default:
		return nil, fmt.Errorf("%w: unknown frontier %q", config.ErrInvalid, kind)
	}
}
