// Package heuristic provides reusable search heuristics for bestfirst.
//
// The heuristics here are independent of any particular puzzle: Zero and
// ToFloat work for any state type, while Novelty and WeightedSum operate on
// world.State configurations.
package heuristic

import (
	"errors"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/world"
)

// ErrNoTerms is returned when a weighted sum is built from no heuristics.
var ErrNoTerms = errors.New("at least one heuristic must be provided to compute a weighted sum of costs")

// Zero always estimates zero remaining cost. With it the search expands states
// purely in frontier tie-break order.
func Zero[S comparable, C bestfirst.Cost]() bestfirst.HeuristicFunc[S, C] {
	return func(bestfirst.RelativeState[S]) C {
		var zero C
		return zero
	}
}

// ToFloat lifts an integer heuristic into the float64 cost domain so it can be
// combined with other heuristics.
func ToFloat[S comparable](h bestfirst.Heuristic[S, int]) bestfirst.HeuristicFunc[S, float64] {
	return func(relativeState bestfirst.RelativeState[S]) float64 {
		return float64(h.EstimateCostToGoal(relativeState))
	}
}

// Term is one weighted component of a WeightedSum.
type Term struct {
	Heuristic bestfirst.Heuristic[world.State, float64]
	Weight    float64
}

// WeightedSum combines heuristics linearly. With one dominant weight it acts
// as a lexicographic combination, e.g. novelty first and distance second.
type WeightedSum struct {
	terms []Term
}

// NewWeightedSum constructs a WeightedSum from (heuristic, weight) pairs.
func NewWeightedSum(terms ...Term) (*WeightedSum, error) {
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}
	return &WeightedSum{terms: append([]Term(nil), terms...)}, nil
}

// EstimateCostToGoal returns the weighted sum of every term's estimate.
func (w *WeightedSum) EstimateCostToGoal(relativeState bestfirst.RelativeState[world.State]) float64 {
	cost := 0.0
	for _, term := range w.terms {
		cost += term.Heuristic.EstimateCostToGoal(relativeState) * term.Weight
	}
	return cost
}
