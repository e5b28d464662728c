// Package slide implements the sliding-tile puzzle (8-puzzle, 15-puzzle and
// any rectangular board) on top of world.State.
//
// Object 0 of a state is the blank and object k is tile k. Actions move the
// blank one cell; a move off the board leaves the state unchanged.
package slide

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/world"
)

// Blank is the tile number of the empty cell.
const Blank = 0

var (
	// ErrNotRectangular is returned when board rows differ in length.
	ErrNotRectangular = errors.New("board rows must have equal length")
	// ErrNotPermutation is returned when a board does not hold each tile exactly once.
	ErrNotPermutation = errors.New("board must contain each tile 0..n-1 exactly once")
	// ErrShapeMismatch is returned when the goal and initial boards differ in size.
	ErrShapeMismatch = errors.New("goal board has a different shape")
)

// Puzzle is a sliding-tile puzzle instance.
type Puzzle struct {
	width, height int
	initial       world.State
	goal          world.State
}

var _ bestfirst.Puzzle[world.State, world.Direction] = (*Puzzle)(nil)

// New creates a puzzle from row-major boards. A nil or empty goal selects the
// canonical order 1..n-1 with the blank in the last cell.
func New(tiles [][]int, goal [][]int) (*Puzzle, error) {
	initial, width, height, err := parseBoard(tiles)
	if err != nil {
		return nil, fmt.Errorf("initial board: %w", err)
	}
	if len(goal) == 0 {
		goal = CanonicalGoal(width, height)
	}
	goalState, goalWidth, goalHeight, err := parseBoard(goal)
	if err != nil {
		return nil, fmt.Errorf("goal board: %w", err)
	}
	if goalWidth != width || goalHeight != height {
		return nil, ErrShapeMismatch
	}
	return &Puzzle{width: width, height: height, initial: initial, goal: goalState}, nil
}

// CanonicalGoal returns the board 1..n-1 followed by the blank.
func CanonicalGoal(width, height int) [][]int {
	board := make([][]int, height)
	for y := range board {
		board[y] = make([]int, width)
		for x := range board[y] {
			board[y][x] = (y*width + x + 1) % (width * height)
		}
	}
	return board
}

func parseBoard(board [][]int) (world.State, int, int, error) {
	height := len(board)
	if height == 0 || len(board[0]) == 0 {
		return world.State{}, 0, 0, ErrNotPermutation
	}
	width := len(board[0])
	positions := make([]world.Position, width*height)
	seen := make([]bool, width*height)
	for y, row := range board {
		if len(row) != width {
			return world.State{}, 0, 0, ErrNotRectangular
		}
		for x, tile := range row {
			if tile < 0 || tile >= len(seen) || seen[tile] {
				return world.State{}, 0, 0, ErrNotPermutation
			}
			seen[tile] = true
			positions[tile] = world.Position{X: int32(x), Y: int32(y)}
		}
	}
	return world.NewState(positions...), width, height, nil
}

func (p *Puzzle) Width() int                 { return p.width }
func (p *Puzzle) Height() int                { return p.height }
func (p *Puzzle) InitialState() world.State  { return p.initial }
func (p *Puzzle) GoalState() world.State     { return p.goal }
func (p *Puzzle) Actions() []world.Direction { return world.Directions }

func (p *Puzzle) SatisfiesGoal(state world.State) bool { return state == p.goal }

// NextState moves the blank in direction d, swapping it with the tile there.
func (p *Puzzle) NextState(state world.State, d world.Direction) bestfirst.RelativeState[world.State] {
	blank := state.At(Blank)
	target := blank.Add(d.Delta())
	if !p.inside(target) {
		return bestfirst.RelativeState[world.State]{State: state}
	}
	tile := state.IndexAt(target)
	next := state.With(Blank, target).With(tile, blank)
	return bestfirst.RelativeState[world.State]{State: next, MovedObjects: []int{Blank, tile}}
}

func (p *Puzzle) inside(position world.Position) bool {
	return position.X >= 0 && position.Y >= 0 && int(position.X) < p.width && int(position.Y) < p.height
}

// Solvable reports whether the goal is reachable from the initial state, using
// the permutation parity invariant of sliding-tile puzzles.
func (p *Puzzle) Solvable() bool {
	return p.parity(p.initial) == p.parity(p.goal)
}

func (p *Puzzle) parity(state world.State) int {
	board := p.Board(state)
	sequence := make([]int, 0, p.width*p.height-1)
	blankRow := 0
	for y, row := range board {
		for _, tile := range row {
			if tile == Blank {
				blankRow = y
				continue
			}
			sequence = append(sequence, tile)
		}
	}
	inversions := 0
	for i := range sequence {
		for j := i + 1; j < len(sequence); j++ {
			if sequence[i] > sequence[j] {
				inversions++
			}
		}
	}
	if p.width%2 == 1 {
		return inversions % 2
	}
	return (inversions + blankRow) % 2
}

// Board renders state as a row-major board of tile numbers.
func (p *Puzzle) Board(state world.State) [][]int {
	board := make([][]int, p.height)
	for y := range board {
		board[y] = make([]int, p.width)
	}
	for tile := 0; tile < state.NumObjects(); tile++ {
		position := state.At(tile)
		board[position.Y][position.X] = tile
	}
	return board
}

// Format renders state as text, one row per line, with '_' for the blank.
func (p *Puzzle) Format(state world.State) string {
	var b strings.Builder
	for y, row := range p.Board(state) {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, tile := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			if tile == Blank {
				b.WriteByte('_')
			} else {
				b.WriteString(strconv.Itoa(tile))
			}
		}
	}
	return b.String()
}
