package bestfirst

import (
	"math/rand/v2"
	"slices"
)

// ActionEnumerator yields the candidate actions tried at each expansion.
// Every call to Next returns a finite sequence for one node; callers must not
// modify it.
type ActionEnumerator[A any] interface {
	Next() []A
}

// FixedEnumerator returns the same action order every time.
type FixedEnumerator[A any] struct {
	actions []A
}

// NewFixedEnumerator creates an enumerator over a copy of actions.
func NewFixedEnumerator[A any](actions []A) *FixedEnumerator[A] {
	return &FixedEnumerator[A]{actions: slices.Clone(actions)}
}

func (e *FixedEnumerator[A]) Next() []A { return e.actions }

// ShuffledEnumerator cycles through a fixed number of random permutations of
// the action vocabulary. Shuffling happens once, at construction, so Next is
// cheap. The same seed always produces the same sequence of permutations.
type ShuffledEnumerator[A any] struct {
	groups [][]A
	next   int
}

// NewShuffledEnumerator prepares groups permutations of actions from seed.
func NewShuffledEnumerator[A any](actions []A, groups int, seed uint64) *ShuffledEnumerator[A] {
	if groups <= 0 {
		groups = 1
	}
	random := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	e := &ShuffledEnumerator[A]{groups: make([][]A, groups)}
	for i := range e.groups {
		group := slices.Clone(actions)
		random.Shuffle(len(group), func(a, b int) { group[a], group[b] = group[b], group[a] })
		e.groups[i] = group
	}
	return e
}

func (e *ShuffledEnumerator[A]) Next() []A {
	group := e.groups[e.next]
	e.next++
	if e.next == len(e.groups) {
		e.next = 0
	}
	return group
}

func newActionEnumerator[A any](actions []A, options Options) ActionEnumerator[A] {
	switch options.ActionOrder {
	case FixedActions:
		return NewFixedEnumerator(actions)
	case RandomActions:
		return NewShuffledEnumerator(actions, options.ActionGroups, rand.Uint64())
	default:
		return NewShuffledEnumerator(actions, options.ActionGroups, options.ActionSeed)
	}
}
