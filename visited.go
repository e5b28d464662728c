package bestfirst

// VisitedSet records every state encountered during a search.
type VisitedSet[S comparable] interface {
	Clear()
	Insert(state S)
	Contains(state S) bool
	Len() int
}

// StateSet is a map-backed VisitedSet. Two states are equal when their values
// are equal, so S should compare every object configuration.
type StateSet[S comparable] struct {
	states map[S]struct{}
}

// NewStateSet creates an empty StateSet sized for roughly sizeHint states.
func NewStateSet[S comparable](sizeHint int) *StateSet[S] {
	return &StateSet[S]{states: make(map[S]struct{}, sizeHint)}
}

func (set *StateSet[S]) Clear()                { clear(set.states) }
func (set *StateSet[S]) Insert(state S)        { set.states[state] = struct{}{} }
func (set *StateSet[S]) Len() int              { return len(set.states) }
func (set *StateSet[S]) Contains(state S) bool { _, ok := set.states[state]; return ok }
