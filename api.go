package bestfirst

import (
	"cmp"
	"context"
	"log/slog"
	"time"
)

// Cost is the ordering domain of heuristic estimates and frontier priorities.
type Cost interface {
	cmp.Ordered
}

// Puzzle is generic over state type S and action type A.
// S must be comparable so it can be used in the visited set.
type Puzzle[S comparable, A any] interface {
	InitialState() S
	SatisfiesGoal(state S) bool
	// NextState applies action to state. Illegal actions return the unchanged state.
	NextState(state S, action A) RelativeState[S]
	// Actions returns the fixed action vocabulary of the puzzle.
	Actions() []A
}

// RelativeState pairs a state with the objects that changed in the transition
// that produced it.
type RelativeState[S comparable] struct {
	State        S
	MovedObjects []int
}

// ObjectCounter is implemented by states made of indexed objects. The initial
// relative state passed to a Heuristic lists every object of such states.
type ObjectCounter interface {
	NumObjects() int
}

// Heuristic estimates the remaining cost to reach the goal.
type Heuristic[S comparable, C Cost] interface {
	EstimateCostToGoal(relativeState RelativeState[S]) C
}

// HeuristicFunc adapts a plain function to the Heuristic interface.
type HeuristicFunc[S comparable, C Cost] func(relativeState RelativeState[S]) C

// EstimateCostToGoal calls f.
func (f HeuristicFunc[S, C]) EstimateCostToGoal(relativeState RelativeState[S]) C {
	return f(relativeState)
}

// Plan is the ordered sequence of actions from the initial state to a goal.
// An empty plan means the initial state already satisfies the goal.
type Plan[A any] []A

// Stats describes one search run.
type Stats struct {
	Found      bool
	Expansions int
	Generated  int
	Visited    int
	PlanLength int
	Elapsed    time.Duration
}

// Result contains the outcome of a search. Found is false when the reachable
// state space holds no goal.
type Result[A any] struct {
	Plan Plan[A]
	Stats
}

// ActionOrder selects how candidate actions are ordered at each expansion.
type ActionOrder int

const (
	// ShuffledActions cycles through pre-shuffled permutations built from a fixed seed.
	ShuffledActions ActionOrder = iota
	// FixedActions uses the puzzle's vocabulary order for every expansion.
	FixedActions
	// RandomActions shuffles with a fresh seed for every run.
	RandomActions
)

func (o ActionOrder) String() string {
	switch o {
	case ShuffledActions:
		return "shuffled"
	case FixedActions:
		return "fixed"
	case RandomActions:
		return "random"
	default:
		return "unknown"
	}
}

// Default action ordering parameters.
const (
	DefaultActionSeed   uint64 = 42
	DefaultActionGroups        = 1000
)

// Options defines parameters for the search.
type Options struct {
	Logger       *slog.Logger
	Observer     Observer
	Context      context.Context
	ActionOrder  ActionOrder
	ActionSeed   uint64
	ActionGroups int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger that receives the diagnostic goal report.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithObserver attaches an observer notified at the start and end of every run.
func WithObserver(observer Observer) Option {
	return func(options *Options) { options.Observer = observer }
}

// WithContext sets the context handed to the logger and observer.
// The search itself never checks it for cancellation.
func WithContext(contextObject context.Context) Option {
	return func(options *Options) { options.Context = contextObject }
}

// WithActionOrder selects the action ordering policy.
func WithActionOrder(order ActionOrder) Option {
	return func(options *Options) { options.ActionOrder = order }
}

// WithActionSeed sets the seed used by ShuffledActions.
func WithActionSeed(seed uint64) Option {
	return func(options *Options) { options.ActionSeed = seed }
}

// WithActionGroups sets how many shuffled permutations are prepared.
func WithActionGroups(groups int) Option {
	return func(options *Options) { options.ActionGroups = groups }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		ActionOrder:  ShuffledActions,
		ActionSeed:   DefaultActionSeed,
		ActionGroups: DefaultActionGroups,
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.Default()
	}
	if searchOptions.Observer == nil {
		searchOptions.Observer = NopObserver{}
	}
	if searchOptions.Context == nil {
		searchOptions.Context = context.Background()
	}
	if searchOptions.ActionGroups <= 0 {
		searchOptions.ActionGroups = 1
	}
	return searchOptions
}

// Search runs a best-first search with a freshly allocated visited set.
func Search[S comparable, A any, C Cost](
	puzzle Puzzle[S, A],
	heuristic Heuristic[S, C],
	frontier Frontier[*SearchNode[S, A], C],
	options ...Option,
) Result[A] {
	return SearchWithVisited(puzzle, heuristic, frontier, NewStateSet[S](0), options...)
}

// SearchWithVisited runs a best-first search to completion. The frontier and
// visited set are cleared before the search begins and left populated afterwards.
func SearchWithVisited[S comparable, A any, C Cost](
	puzzle Puzzle[S, A],
	heuristic Heuristic[S, C],
	frontier Frontier[*SearchNode[S, A], C],
	visited VisitedSet[S],
	options ...Option,
) Result[A] {
	stepper := NewStepper(puzzle, heuristic, frontier, visited, options...)
	for !stepper.Done() {
		stepper.Step()
	}
	return stepper.Result()
}
