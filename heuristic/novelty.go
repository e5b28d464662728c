package heuristic

import (
	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/world"
)

// Novelty levels returned by Novelty.EstimateCostToGoal. Lower is more novel.
const (
	NovelPosition float64 = 1
	NovelPair     float64 = 2
	NotNovel      float64 = 3
)

type positionPair struct {
	first, second world.Position
}

// Novelty measures how new a state is compared to every state previously
// estimated. Only the moved objects of a relative state are checked.
//
// Unlike the other heuristics it is stateful: estimating a state records it,
// so repeated calls may return different costs. Call Reset between searches.
type Novelty struct {
	numObjects int
	positions  []map[world.Position]struct{}
	// pairs[i][j] with i < j holds the seen (p_i, p_j) combinations.
	pairs [][]map[positionPair]struct{}
}

// NewNovelty creates a Novelty heuristic for states of numObjects objects.
func NewNovelty(numObjects int) *Novelty {
	n := &Novelty{numObjects: numObjects}
	n.Reset()
	return n
}

// Reset forgets every recorded state.
func (n *Novelty) Reset() {
	n.positions = make([]map[world.Position]struct{}, n.numObjects)
	n.pairs = make([][]map[positionPair]struct{}, n.numObjects)
	for i := range n.positions {
		n.positions[i] = make(map[world.Position]struct{})
		n.pairs[i] = make([]map[positionPair]struct{}, n.numObjects)
		for j := i + 1; j < n.numObjects; j++ {
			n.pairs[i][j] = make(map[positionPair]struct{})
		}
	}
}

// EstimateCostToGoal returns NovelPosition if a moved object is somewhere it has
// never been, NovelPair if a moved object forms a never seen pair of positions
// with another object, and NotNovel otherwise. The state is recorded.
func (n *Novelty) EstimateCostToGoal(relativeState bestfirst.RelativeState[world.State]) float64 {
	state := relativeState.State
	novelty := NotNovel

	for _, i := range relativeState.MovedObjects {
		p := state.At(i)
		if insert(n.positions[i], p) {
			novelty = NovelPosition
		}

		for j := 0; j < n.numObjects; j++ {
			if j == i {
				continue
			}
			// Smaller index first so each unordered pair is stored once.
			lo, hi, pair := i, j, positionPair{p, state.At(j)}
			if j < i {
				lo, hi, pair = j, i, positionPair{state.At(j), p}
			}
			if insert(n.pairs[lo][hi], pair) && novelty > NovelPair {
				novelty = NovelPair
			}
		}
	}

	return novelty
}

func insert[K comparable](set map[K]struct{}, key K) bool {
	if _, exists := set[key]; exists {
		return false
	}
	set[key] = struct{}{}
	return true
}
