package push

import (
	"math"
	"slices"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/world"
)

// RGD is the recursive graph distance heuristic. For every goal object it
// finds the cheapest movement-graph path to the goal, charging each step the
// graph distance a pusher needs to reach the pushing position. Pushers are
// the agent or, recursively, other objects that the agent can push.
//
// Thread Safety: Not safe for concurrent use; it memoizes pushing costs.
type RGD struct {
	puzzle      *Puzzle
	graphs      []MovementGraph
	distances   []*PathDistances
	fewestTools bool
	cache       map[pushKey]map[world.Position]float64
}

type pushKey struct {
	pusher, pushee int
	pusherPosition world.Position
	start, end     world.Position
}

var _ bestfirst.Heuristic[world.State, float64] = (*RGD)(nil)

// NewRGD builds the movement graphs of puzzle. With fewestTools, each goal
// object is costed with the shallowest pusher chain that reaches its goal;
// otherwise chains of any depth compete on cost.
func NewRGD(puzzle *Puzzle, fewestTools bool) *RGD {
	graphs := BuildMovementGraphs(puzzle)
	distances := make([]*PathDistances, len(graphs))
	for i, graph := range graphs {
		distances[i] = NewPathDistances(graph)
	}
	return &RGD{
		puzzle:      puzzle,
		graphs:      graphs,
		distances:   distances,
		fewestTools: fewestTools,
		cache:       map[pushKey]map[world.Position]float64{},
	}
}

// EstimateCostToGoal sums the goal costs of every goal object. The result is
// +Inf when some goal object cannot reach its goal.
func (h *RGD) EstimateCostToGoal(relativeState bestfirst.RelativeState[world.State]) float64 {
	state := relativeState.State
	cost := 0.0
	for k, goal := range h.puzzle.goal {
		if h.fewestTools {
			cost += h.fewestToolsGoalCost(state, k+1, goal)
		} else {
			cost += h.goalCost(state, k+1, goal, state.NumObjects()-2)
		}
		if math.IsInf(cost, 1) {
			break
		}
	}
	return cost
}

func (h *RGD) fewestToolsGoalCost(state world.State, object int, goal world.Position) float64 {
	for depth := 0; depth < state.NumObjects()-1; depth++ {
		if cost := h.goalCost(state, object, goal, depth); !math.IsInf(cost, 1) {
			return cost
		}
	}
	return math.Inf(1)
}

func (h *RGD) goalCost(state world.State, object int, goal world.Position, depth int) float64 {
	current := state.At(object)
	if current == goal {
		return 0
	}
	best := math.Inf(1)
	for effect := range h.graphs[object][current] {
		toGoal := h.distances[object].Distance(effect, goal)
		if toGoal >= best {
			continue
		}
		best = toGoal + h.pushingCost(state, object, current, effect, nil, depth, best-toGoal)
	}
	return best
}

// pushingCost is the cheapest way to move object from current to effect with
// pushers outside skipped, bounded above by limit.
func (h *RGD) pushingCost(state world.State, object int, current, effect world.Position, skipped []int, depth int, limit float64) float64 {
	best := limit
	skipped = append(skipped[:len(skipped):len(skipped)], object)

	first, last := Agent, Agent+1
	if depth > 0 {
		first, last = 1, state.NumObjects()
	}
	for pusher := first; pusher < last; pusher++ {
		if slices.Contains(skipped, pusher) {
			continue
		}
		pusherPosition := state.At(pusher)
		for next, distance := range h.pushingCosts(pusher, pusherPosition, object, current, effect) {
			if distance >= best {
				continue
			}
			if pusher == Agent {
				best = min(best, distance+1)
				continue
			}
			best = distance + h.pushingCost(state, pusher, pusherPosition, next, skipped, depth-1, best-distance)
		}
	}
	return best
}

// pushingCosts maps each first step of the pusher to the cost of then
// reaching a position from which it pushes pushee from start to end.
func (h *RGD) pushingCosts(pusher int, pusherPosition world.Position, pushee int, start, end world.Position) map[world.Position]float64 {
	key := pushKey{pusher: pusher, pushee: pushee, pusherPosition: pusherPosition, start: start, end: end}
	if costs, ok := h.cache[key]; ok {
		return costs
	}

	costs := map[world.Position]float64{}
	d, ok := world.DirectionOf(end.Sub(start))
	if ok {
		graph := h.graphs[pusher]
		delta := d.Delta()
		for _, offset := range h.puzzle.PushOffsets(d, pusher, pushee) {
			pushFrom := start.Add(offset)
			pushTo := pushFrom.Add(delta)
			if !graph.Has(pushFrom, pushTo) {
				continue
			}
			for next := range graph[pusherPosition] {
				var cost float64
				if pushFrom == pusherPosition && pushTo == next {
					cost = 0
				} else {
					cost = h.distances[pusher].Distance(next, pushFrom)
					if math.IsInf(cost, 1) {
						continue
					}
					cost++
				}
				if known, seen := costs[next]; !seen || cost < known {
					costs[next] = cost
				}
			}
		}
	}
	h.cache[key] = costs
	return costs
}
