package bestfirst

import (
	"context"
	"log/slog"
	"slices"
	"time"
)

// StepSnapshot exposes the per-expansion state of the search.
type StepSnapshot[S comparable, A any] struct {
	// Current is the state expanded by this step. It is the zero value when
	// the step expanded nothing.
	Current S
	// Discovered lists the new states generated by this step in push order,
	// including the goal state if one was found.
	Discovered   []S
	FrontierSize int
	Visited      int
	StepIndex    int
	Done         bool
	Found        bool
	Plan         Plan[A]
}

// Stepper runs a best-first search one node expansion at a time.
// It exclusively owns the frontier and visited set until Done reports true.
type Stepper[S comparable, A any, C Cost] struct {
	ctx       context.Context
	options   Options
	puzzle    Puzzle[S, A]
	heuristic Heuristic[S, C]
	frontier  Frontier[*SearchNode[S, A], C]
	visited   VisitedSet[S]
	actions   ActionEnumerator[A]

	startedAt time.Time
	stats     Stats
	plan      Plan[A]
	done      bool
	// seeded is false when the containers still hold a previous run's entries.
	seeded bool
}

// NewStepper prepares a search. If the initial state already satisfies the
// goal the stepper is immediately done with an empty plan and zero expansions;
// otherwise the frontier and visited set are cleared and seeded with the root.
func NewStepper[S comparable, A any, C Cost](
	puzzle Puzzle[S, A],
	heuristic Heuristic[S, C],
	frontier Frontier[*SearchNode[S, A], C],
	visited VisitedSet[S],
	options ...Option,
) *Stepper[S, A, C] {
	searchOptions := applyOptions(options)
	s := &Stepper[S, A, C]{
		options:   searchOptions,
		puzzle:    puzzle,
		heuristic: heuristic,
		frontier:  frontier,
		visited:   visited,
		startedAt: time.Now(),
	}
	s.ctx = searchOptions.Observer.SearchStarted(searchOptions.Context)

	initialState := puzzle.InitialState()
	if puzzle.SatisfiesGoal(initialState) {
		s.plan = Plan[A]{}
		s.finish(true)
		return s
	}

	s.actions = newActionEnumerator(puzzle.Actions(), searchOptions)

	visited.Clear()
	visited.Insert(initialState)

	initialRelativeState := RelativeState[S]{State: initialState, MovedObjects: allObjectIndices(initialState)}
	frontier.Clear()
	frontier.Push(NewRootNode[S, A](initialState), heuristic.EstimateCostToGoal(initialRelativeState))
	s.seeded = true
	return s
}

// Done reports whether the search has finished.
func (s *Stepper[S, A, C]) Done() bool { return s.done }

// Result returns the outcome so far. Found is only meaningful once Done is true.
func (s *Stepper[S, A, C]) Result() Result[A] {
	return Result[A]{Plan: s.plan, Stats: s.stats}
}

// Step expands the frontier node with the lowest estimated cost and returns a snapshot.
func (s *Stepper[S, A, C]) Step() StepSnapshot[S, A] {
	if s.done {
		return s.snapshot(nil)
	}
	if s.frontier.Empty() {
		s.finish(false)
		return s.snapshot(nil)
	}

	parentNode := s.frontier.Pop()
	s.stats.Expansions++
	discovered := make([]S, 0, 4)

	for _, action := range s.actions.Next() {
		relativeState := s.puzzle.NextState(parentNode.State(), action)
		s.stats.Generated++

		// Ignore the state if it was already visited.
		if s.visited.Contains(relativeState.State) {
			continue
		}

		node := NewChildNode(parentNode, action, relativeState.State)
		discovered = append(discovered, relativeState.State)

		// Return the first solution found.
		if s.puzzle.SatisfiesGoal(relativeState.State) {
			s.plan = Backtrack(node)
			s.finish(true)
			snapshot := s.snapshot(discovered)
			snapshot.Current = parentNode.State()
			return snapshot
		}

		s.frontier.Push(node, s.heuristic.EstimateCostToGoal(relativeState))
		s.visited.Insert(relativeState.State)
	}

	if s.frontier.Empty() {
		s.finish(false)
	}
	snapshot := s.snapshot(discovered)
	snapshot.Current = parentNode.State()
	return snapshot
}

func (s *Stepper[S, A, C]) snapshot(discovered []S) StepSnapshot[S, A] {
	snapshot := StepSnapshot[S, A]{
		Discovered: discovered,
		StepIndex:  s.stats.Expansions,
		Done:       s.done,
		Found:      s.stats.Found,
		Plan:       slices.Clone(s.plan),
	}
	if s.seeded {
		snapshot.FrontierSize = s.frontier.Len()
		snapshot.Visited = s.visited.Len()
	}
	return snapshot
}

func (s *Stepper[S, A, C]) finish(found bool) {
	s.done = true
	s.stats.Found = found
	s.stats.PlanLength = len(s.plan)
	s.stats.Elapsed = time.Since(s.startedAt)
	if s.stats.Expansions > 0 {
		s.stats.Visited = s.visited.Len()
	}

	if found && s.stats.Expansions > 0 {
		s.options.Logger.InfoContext(s.ctx, "goal found",
			slog.Int("expansions", s.stats.Expansions),
			slog.Int("plan_length", s.stats.PlanLength),
			slog.Float64("time", s.stats.Elapsed.Seconds()),
		)
	}
	s.options.Observer.SearchFinished(s.ctx, s.stats)
}

func allObjectIndices[S comparable](state S) []int {
	counter, ok := any(state).(ObjectCounter)
	if !ok {
		return nil
	}
	indices := make([]int, counter.NumObjects())
	for i := range indices {
		indices[i] = i
	}
	return indices
}
