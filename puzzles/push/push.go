// Package push implements pushing puzzles: an agent walks a walled grid and
// pushes chains of rigid, possibly multi-cell objects until the goal objects
// rest on their goal positions.
//
// Maps are rows of whitespace-separated cells. A cell lists its elements
// joined by '+':
//
//	.   empty
//	W   wall, blocks every object
//	A   agent wall, blocks only the agent
//	S   a cell of the agent
//	Mn  a cell of movable object n
//	Gn  a cell of the goal of movable object n
//
// Cells outside the map are walls.
package push

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/world"
)

// Map elements.
const (
	Empty     = "."
	Wall      = "W"
	AgentWall = "A"
	AgentCell = "S"
	Movable   = "M"
	GoalCell  = "G"
)

// Agent is the object index of the agent in every state.
const Agent = 0

var (
	// ErrBadMap is returned for a map that is not rectangular or has unknown elements.
	ErrBadMap = errors.New("invalid push map")
	// ErrNoAgent is returned when a puzzle has no agent.
	ErrNoAgent = errors.New("push puzzle has no agent")
	// ErrGoalWithoutObject is returned for a goal that names no movable object.
	ErrGoalWithoutObject = errors.New("goal without a matching object")
	// ErrGoalShape is returned when a goal does not have the shape of its object.
	ErrGoalShape = errors.New("goal shape differs from its object")
)

// Object is a rigid body. Shape lists its cells relative to Position.
type Object struct {
	Name     string
	Position world.Position
	Shape    []world.Position
}

// Puzzle is a pushing puzzle. Object 0 of every state is the agent and goal
// k constrains object k+1; the remaining objects are free.
type Puzzle struct {
	width, height int
	walls         map[world.Position]bool
	agentWalls    map[world.Position]bool
	names         []string
	shapes        [][]world.Position
	initial       world.State
	goal          []world.Position
	// pushes[d][i][j] lists the displacements from object j to object i at
	// which moving i in direction d pushes j.
	pushes [][][][]world.Position
}

var _ bestfirst.Puzzle[world.State, world.Direction] = (*Puzzle)(nil)

// New creates a puzzle. objects[0] is the agent and goal[k] is the target
// position of objects[k+1].
func New(width, height int, walls, agentWalls []world.Position, objects []Object, goal []world.Position) (*Puzzle, error) {
	if len(objects) == 0 {
		return nil, ErrNoAgent
	}
	if len(goal) > len(objects)-1 {
		return nil, fmt.Errorf("%w: %d goals for %d movable objects", ErrGoalWithoutObject, len(goal), len(objects)-1)
	}

	p := &Puzzle{
		width:      width,
		height:     height,
		walls:      make(map[world.Position]bool, len(walls)),
		agentWalls: make(map[world.Position]bool, len(agentWalls)),
		names:      make([]string, len(objects)),
		shapes:     make([][]world.Position, len(objects)),
		goal:       slices.Clone(goal),
	}
	for _, wall := range walls {
		p.walls[wall] = true
	}
	for _, wall := range agentWalls {
		p.agentWalls[wall] = true
	}

	positions := make([]world.Position, len(objects))
	for i, object := range objects {
		if len(object.Shape) == 0 {
			return nil, fmt.Errorf("%w: object %q has no cells", ErrBadMap, object.Name)
		}
		p.names[i] = object.Name
		p.shapes[i] = slices.Clone(object.Shape)
		positions[i] = object.Position
	}
	p.initial = world.NewState(positions...)

	n := len(objects)
	p.pushes = make([][][][]world.Position, len(world.Directions))
	for _, d := range world.Directions {
		p.pushes[d] = make([][][]world.Position, n)
		for i := range n {
			p.pushes[d][i] = make([][]world.Position, n)
			for j := range n {
				if i != j {
					p.pushes[d][i][j] = contactOffsets(p.shapes[i], p.shapes[j], d.Delta())
				}
			}
		}
	}
	return p, nil
}

// contactOffsets returns every displacement pusher-pushee at which a step of
// the pusher by delta moves one of its cells onto a cell of the pushee.
func contactOffsets(pusher, pushee []world.Position, delta world.Position) []world.Position {
	var offsets []world.Position
	for _, a := range pusher {
		for _, b := range pushee {
			offset := b.Sub(a).Sub(delta)
			if !slices.Contains(offsets, offset) {
				offsets = append(offsets, offset)
			}
		}
	}
	return offsets
}

func (p *Puzzle) Width() int                 { return p.width }
func (p *Puzzle) Height() int                { return p.height }
func (p *Puzzle) NumObjects() int            { return len(p.shapes) }
func (p *Puzzle) ObjectName(i int) string    { return p.names[i] }
func (p *Puzzle) InitialState() world.State  { return p.initial }
func (p *Puzzle) Actions() []world.Direction { return world.Directions }

// Goal returns the goal positions; goal k belongs to object k+1.
func (p *Puzzle) Goal() []world.Position { return slices.Clone(p.goal) }

// SatisfiesGoal reports whether every goal object is at its goal position.
// Free objects and the agent may be anywhere.
func (p *Puzzle) SatisfiesGoal(state world.State) bool {
	for k, position := range p.goal {
		if state.At(k+1) != position {
			return false
		}
	}
	return true
}

// PushOffsets lists the displacements from pushee to pusher at which moving
// the pusher in direction d pushes the pushee.
func (p *Puzzle) PushOffsets(d world.Direction, pusher, pushee int) []world.Position {
	return p.pushes[d][pusher][pushee]
}

// Collides reports whether object, placed at position, would overlap a wall
// after one step in direction d.
func (p *Puzzle) Collides(object int, position world.Position, d world.Direction) bool {
	delta := d.Delta()
	for _, cell := range p.shapes[object] {
		if p.blocks(object, position.Add(cell).Add(delta)) {
			return true
		}
	}
	return false
}

func (p *Puzzle) blocks(object int, cell world.Position) bool {
	if cell.X < 0 || cell.Y < 0 || int(cell.X) >= p.width || int(cell.Y) >= p.height {
		return true
	}
	return p.walls[cell] || (object == Agent && p.agentWalls[cell])
}

// NextState moves the agent in direction d. Every object in contact with a
// moving object in that direction moves too. If any moving object would hit a
// wall nothing moves and the state is returned unchanged.
func (p *Puzzle) NextState(state world.State, d world.Direction) bestfirst.RelativeState[world.State] {
	n := state.NumObjects()
	moving := make([]bool, n)
	moving[Agent] = true
	moved := []int{Agent}

	for k := 0; k < len(moved); k++ {
		i := moved[k]
		position := state.At(i)
		if p.Collides(i, position, d) {
			return bestfirst.RelativeState[world.State]{State: state}
		}
		for j := 1; j < n; j++ {
			if !moving[j] && slices.Contains(p.pushes[d][i][j], position.Sub(state.At(j))) {
				moving[j] = true
				moved = append(moved, j)
			}
		}
	}

	positions := state.Positions()
	delta := d.Delta()
	for _, i := range moved {
		positions[i] = positions[i].Add(delta)
	}
	return bestfirst.RelativeState[world.State]{State: world.NewState(positions...), MovedObjects: moved}
}

// IsValidPlan reports whether plan leads from the initial state to the goal.
func (p *Puzzle) IsValidPlan(plan []world.Direction) bool {
	state := p.initial
	for _, d := range plan {
		state = p.NextState(state, d).State
	}
	return p.SatisfiesGoal(state)
}

// Parse builds a puzzle from map rows. The agent becomes object 0, followed
// by the objects with goals and then the free objects, each group ordered by
// object number.
func Parse(rows []string) (*Puzzle, error) {
	var (
		width      int
		walls      []world.Position
		agentWalls []world.Position
		cells      = map[string][]world.Position{}
	)
	for y, row := range rows {
		tokens := strings.Fields(row)
		if y == 0 {
			width = len(tokens)
		} else if len(tokens) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadMap, y, len(tokens), width)
		}
		for x, token := range tokens {
			position := world.Position{X: int32(x), Y: int32(y)}
			for _, element := range strings.Split(strings.ToUpper(token), "+") {
				switch {
				case element == Empty:
				case element == Wall:
					walls = append(walls, position)
				case element == AgentWall:
					agentWalls = append(agentWalls, position)
				case element == AgentCell, numbered(element, Movable), numbered(element, GoalCell):
					cells[element] = append(cells[element], position)
				default:
					return nil, fmt.Errorf("%w: unexpected %q at %v", ErrBadMap, element, position)
				}
			}
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrBadMap)
	}
	if len(cells[AgentCell]) == 0 {
		return nil, ErrNoAgent
	}

	var withGoal, free []int
	for element := range cells {
		if !numbered(element, Movable) {
			continue
		}
		id, _ := strconv.Atoi(element[len(Movable):])
		if _, ok := cells[GoalCell+strconv.Itoa(id)]; ok {
			withGoal = append(withGoal, id)
		} else {
			free = append(free, id)
		}
	}
	for element := range cells {
		if numbered(element, GoalCell) {
			if _, ok := cells[Movable+element[len(GoalCell):]]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrGoalWithoutObject, element)
			}
		}
	}
	slices.Sort(withGoal)
	slices.Sort(free)

	objects := []Object{newObject(AgentCell, cells[AgentCell])}
	var goal []world.Position
	for _, id := range withGoal {
		object := newObject(Movable+strconv.Itoa(id), cells[Movable+strconv.Itoa(id)])
		target := newObject(GoalCell+strconv.Itoa(id), cells[GoalCell+strconv.Itoa(id)])
		if !slices.Equal(object.Shape, target.Shape) {
			return nil, fmt.Errorf("%w: %s", ErrGoalShape, target.Name)
		}
		objects = append(objects, object)
		goal = append(goal, target.Position)
	}
	for _, id := range free {
		objects = append(objects, newObject(Movable+strconv.Itoa(id), cells[Movable+strconv.Itoa(id)]))
	}
	return New(width, len(rows), walls, agentWalls, objects, goal)
}

// numbered reports whether element is prefix followed by a decimal number.
func numbered(element, prefix string) bool {
	digits, ok := strings.CutPrefix(element, prefix)
	if !ok || digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// newObject anchors cells, given in row-major order, at their bounding box corner.
func newObject(name string, cells []world.Position) Object {
	anchor := cells[0]
	for _, cell := range cells {
		anchor.X = min(anchor.X, cell.X)
		anchor.Y = min(anchor.Y, cell.Y)
	}
	shape := make([]world.Position, len(cells))
	for i, cell := range cells {
		shape[i] = cell.Sub(anchor)
	}
	return Object{Name: name, Position: anchor, Shape: shape}
}

// Format draws state in the map notation, so Parse(Format(state)) rebuilds
// the puzzle with state as its initial state.
func (p *Puzzle) Format(state world.State) string {
	elements := map[world.Position][]string{}
	for wall := range p.walls {
		elements[wall] = append(elements[wall], Wall)
	}
	for wall := range p.agentWalls {
		elements[wall] = append(elements[wall], AgentWall)
	}
	for i, shape := range p.shapes {
		name := p.names[i]
		if i == Agent {
			name = AgentCell
		}
		for _, cell := range shape {
			position := state.At(i).Add(cell)
			elements[position] = append(elements[position], name)
		}
	}
	for k, position := range p.goal {
		name := GoalCell + strings.TrimPrefix(p.names[k+1], Movable)
		for _, cell := range p.shapes[k+1] {
			elements[position.Add(cell)] = append(elements[position.Add(cell)], name)
		}
	}

	tokens := make([][]string, p.height)
	cellWidth := len(Empty)
	for y := range tokens {
		tokens[y] = make([]string, p.width)
		for x := range tokens[y] {
			token := Empty
			if list := elements[world.Position{X: int32(x), Y: int32(y)}]; len(list) > 0 {
				token = strings.Join(list, "+")
			}
			tokens[y][x] = token
			cellWidth = max(cellWidth, len(token))
		}
	}

	var b strings.Builder
	for y, row := range tokens {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, token := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			if x < len(row)-1 {
				fmt.Fprintf(&b, "%-*s", cellWidth, token)
			} else {
				b.WriteString(token)
			}
		}
	}
	return b.String()
}

// Manhattan sums the grid distance of every goal object from its goal
// position.
func (p *Puzzle) Manhattan() bestfirst.HeuristicFunc[world.State, int] {
	return func(relativeState bestfirst.RelativeState[world.State]) int {
		sum := 0
		for k, position := range p.goal {
			sum += relativeState.State.At(k + 1).Manhattan(position)
		}
		return sum
	}
}
