package slide

import (
	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/world"
)

// Manhattan sums the grid distance of every tile from its goal cell. It is
// admissible and consistent for unit-cost moves.
func (p *Puzzle) Manhattan() bestfirst.HeuristicFunc[world.State, int] {
	return func(relativeState bestfirst.RelativeState[world.State]) int {
		state := relativeState.State
		sum := 0
		for tile := 1; tile < state.NumObjects(); tile++ {
			sum += state.At(tile).Manhattan(p.goal.At(tile))
		}
		return sum
	}
}

// Misplaced counts the tiles that are not in their goal cell.
func (p *Puzzle) Misplaced() bestfirst.HeuristicFunc[world.State, int] {
	return func(relativeState bestfirst.RelativeState[world.State]) int {
		state := relativeState.State
		count := 0
		for tile := 1; tile < state.NumObjects(); tile++ {
			if state.At(tile) != p.goal.At(tile) {
				count++
			}
		}
		return count
	}
}
