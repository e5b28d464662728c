// Package grid implements a single agent walking a walled rectangular grid.
package grid

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/world"
)

// Map characters.
const (
	Free  = '.'
	Wall  = '#'
	Start = 'S'
	Goal  = 'G'
	Trail = '*'
)

var (
	// ErrBadMap is returned for a map that is not rectangular or contains unknown characters.
	ErrBadMap = errors.New("invalid grid map")
	// ErrMarkers is returned when a map lacks exactly one start and one goal.
	ErrMarkers = errors.New("grid map needs exactly one S and one G")
	// ErrTooSmall is returned when a generated grid cannot hold distinct start and goal cells.
	ErrTooSmall = errors.New("grid needs positive dimensions and at least two cells")
)

// Puzzle is a grid walking puzzle. The agent is object 0 of every state.
type Puzzle struct {
	width, height int
	walls         map[world.Position]bool
	start, goal   world.Position
}

var _ bestfirst.Puzzle[world.State, world.Direction] = (*Puzzle)(nil)

// New creates a grid puzzle. Walls on the start or goal cell are dropped.
func New(width, height int, walls map[world.Position]bool, start, goal world.Position) *Puzzle {
	p := &Puzzle{width: width, height: height, walls: make(map[world.Position]bool, len(walls)), start: start, goal: goal}
	for position, isWall := range walls {
		if isWall && position != start && position != goal && p.inside(position) {
			p.walls[position] = true
		}
	}
	return p
}

// FromMap parses rows of '.', '#', 'S' and 'G'.
func FromMap(rows []string) (*Puzzle, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadMap
	}
	width := len(rows[0])
	walls := map[world.Position]bool{}
	var starts, goals []world.Position
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrBadMap, y, len(row), width)
		}
		for x, r := range row {
			position := world.Position{X: int32(x), Y: int32(y)}
			switch r {
			case Free:
			case Wall:
				walls[position] = true
			case Start:
				starts = append(starts, position)
			case Goal:
				goals = append(goals, position)
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %v", ErrBadMap, r, position)
			}
		}
	}
	if len(starts) != 1 || len(goals) != 1 {
		return nil, ErrMarkers
	}
	return New(width, len(rows), walls, starts[0], goals[0]), nil
}

// Generate builds a random puzzle with clustered walls laid by random walks.
// Start and goal are distinct random cells.
func Generate(width, height, clusters, steps int, density float64, random *rand.Rand) (*Puzzle, error) {
	if width <= 0 || height <= 0 || width*height < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooSmall, width, height)
	}
	var start, goal world.Position
	for start == goal {
		start = world.Position{X: int32(random.IntN(width)), Y: int32(random.IntN(height))}
		goal = world.Position{X: int32(random.IntN(width)), Y: int32(random.IntN(height))}
	}

	walls := map[world.Position]bool{}
	for c := 0; c < clusters; c++ {
		p := world.Position{X: int32(random.IntN(width)), Y: int32(random.IntN(height))}
		for s := 0; s < steps; s++ {
			if random.Float64() < density {
				walls[p] = true
			}
			np := p.Add(world.Directions[random.IntN(len(world.Directions))].Delta())
			if np.X >= 0 && int(np.X) < width && np.Y >= 0 && int(np.Y) < height {
				p = np
			}
		}
	}
	return New(width, height, walls, start, goal), nil
}

func (p *Puzzle) Width() int                   { return p.width }
func (p *Puzzle) Height() int                  { return p.height }
func (p *Puzzle) Start() world.Position        { return p.start }
func (p *Puzzle) Goal() world.Position         { return p.goal }
func (p *Puzzle) IsWall(q world.Position) bool { return p.walls[q] }
func (p *Puzzle) Actions() []world.Direction   { return world.Directions }

// Walls returns every wall cell.
func (p *Puzzle) Walls() []world.Position {
	walls := make([]world.Position, 0, len(p.walls))
	for position := range p.walls {
		walls = append(walls, position)
	}
	return walls
}

func (p *Puzzle) InitialState() world.State { return world.NewState(p.start) }

func (p *Puzzle) SatisfiesGoal(state world.State) bool { return state.At(0) == p.goal }

// NextState moves the agent one cell unless it would leave the grid or enter a wall.
func (p *Puzzle) NextState(state world.State, d world.Direction) bestfirst.RelativeState[world.State] {
	next := state.At(0).Add(d.Delta())
	if !p.inside(next) || p.walls[next] {
		return bestfirst.RelativeState[world.State]{State: state}
	}
	return bestfirst.RelativeState[world.State]{State: world.NewState(next), MovedObjects: []int{0}}
}

func (p *Puzzle) inside(q world.Position) bool {
	return q.X >= 0 && q.Y >= 0 && int(q.X) < p.width && int(q.Y) < p.height
}

// Manhattan is the grid distance from the agent to the goal.
func (p *Puzzle) Manhattan() bestfirst.HeuristicFunc[world.State, int] {
	return func(relativeState bestfirst.RelativeState[world.State]) int {
		return relativeState.State.At(0).Manhattan(p.goal)
	}
}

// Render draws the map with the cells visited by plan marked as trail.
func (p *Puzzle) Render(plan []world.Direction) string {
	trail := map[world.Position]bool{}
	position := p.start
	for _, d := range plan {
		position = position.Add(d.Delta())
		trail[position] = true
	}

	var b strings.Builder
	for y := 0; y < p.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < p.width; x++ {
			q := world.Position{X: int32(x), Y: int32(y)}
			switch {
			case q == p.start:
				b.WriteByte(Start)
			case q == p.goal:
				b.WriteByte(Goal)
			case p.walls[q]:
				b.WriteByte(Wall)
			case trail[q]:
				b.WriteByte(Trail)
			default:
				b.WriteByte(Free)
			}
		}
	}
	return b.String()
}
