package push

import (
	"math"

	"github.com/pdrpinto/bestfirst/world"
)

// MovementGraph holds the positions an object can reach and, for each, the
// positions it can move to in one step. Other movable objects are ignored
// except as pushers, so the graph over-approximates what any state allows.
type MovementGraph map[world.Position]map[world.Position]struct{}

// Has reports whether the graph contains the step from -> to.
func (g MovementGraph) Has(from, to world.Position) bool {
	_, ok := g[from][to]
	return ok
}

type transition struct {
	object   int
	from, to world.Position
}

type placement struct {
	object   int
	position world.Position
}

// BuildMovementGraphs computes one movement graph per object, starting from
// the initial state. A movable object may step only when some pusher can
// make the matching pushing step in its own graph; steps waiting on a pusher
// step are added once that step appears.
func BuildMovementGraphs(p *Puzzle) []MovementGraph {
	n := p.NumObjects()
	graphs := make([]MovementGraph, n)
	var pending []placement
	for i := range graphs {
		position := p.initial.At(i)
		graphs[i] = MovementGraph{position: {}}
		pending = append(pending, placement{object: i, position: position})
	}

	dependents := map[transition][]transition{}
	var add func(t transition)
	add = func(t transition) {
		graph := graphs[t.object]
		if graph.Has(t.from, t.to) {
			return
		}
		graph[t.from][t.to] = struct{}{}
		if _, ok := graph[t.to]; !ok {
			graph[t.to] = map[world.Position]struct{}{}
			pending = append(pending, placement{object: t.object, position: t.to})
		}
		waiting := dependents[t]
		delete(dependents, t)
		for _, w := range waiting {
			add(w)
		}
	}

	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		for _, d := range world.Directions {
			if p.Collides(current.object, current.position, d) {
				continue
			}
			delta := d.Delta()
			step := transition{object: current.object, from: current.position, to: current.position.Add(delta)}
			if current.object == Agent {
				add(step)
				continue
			}
		pushers:
			for pusher := range n {
				if pusher == current.object {
					continue
				}
				for _, offset := range p.PushOffsets(d, pusher, current.object) {
					start := current.position.Add(offset)
					push := transition{object: pusher, from: start, to: start.Add(delta)}
					if graphs[pusher].Has(push.from, push.to) {
						add(step)
						break pushers
					}
					dependents[push] = append(dependents[push], step)
				}
			}
		}
	}
	return graphs
}

// PathDistances answers shortest path lengths in a movement graph. Distances
// from a source are computed on first use and cached.
//
// Thread Safety: Not safe for concurrent use.
type PathDistances struct {
	graph MovementGraph
	cache map[world.Position]map[world.Position]int
}

// NewPathDistances creates a distance oracle for graph.
func NewPathDistances(graph MovementGraph) *PathDistances {
	return &PathDistances{graph: graph, cache: map[world.Position]map[world.Position]int{}}
}

// Distance returns the number of steps on a shortest path from -> to, or +Inf
// when to cannot be reached.
func (d *PathDistances) Distance(from, to world.Position) float64 {
	distances, ok := d.cache[from]
	if !ok {
		distances = d.breadthFirst(from)
		d.cache[from] = distances
	}
	if steps, ok := distances[to]; ok {
		return float64(steps)
	}
	return math.Inf(1)
}

func (d *PathDistances) breadthFirst(source world.Position) map[world.Position]int {
	distances := map[world.Position]int{}
	if _, ok := d.graph[source]; !ok {
		return distances
	}
	distances[source] = 0
	queue := []world.Position{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for next := range d.graph[current] {
			if _, seen := distances[next]; !seen {
				distances[next] = distances[current] + 1
				queue = append(queue, next)
			}
		}
	}
	return distances
}
