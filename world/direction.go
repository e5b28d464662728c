package world

import (
	"fmt"
	"strings"
)

// Direction is the action vocabulary of the grid puzzles: move one cell.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every direction in vocabulary order.
var Directions = []Direction{Left, Right, Up, Down}

var directionDeltas = [...]Position{
	Left:  {X: -1},
	Right: {X: 1},
	Up:    {Y: -1},
	Down:  {Y: 1},
}

const directionChars = "LRUD"

// Delta returns the displacement of one step in direction d.
func (d Direction) Delta() Position { return directionDeltas[d] }

// DirectionOf returns the direction whose single step is delta.
func DirectionOf(delta Position) (Direction, bool) {
	for _, d := range Directions {
		if directionDeltas[d] == delta {
			return d, true
		}
	}
	return 0, false
}

// Char returns the single-letter plan notation of d.
func (d Direction) Char() byte { return directionChars[d] }

// Opposite returns the direction that undoes d.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// ParseDirection accepts a plan letter (L, R, U, D) or a direction name.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	case "u", "up":
		return Up, nil
	case "d", "down":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// FormatPlan renders a plan as a string of direction letters.
func FormatPlan(plan []Direction) string {
	var b strings.Builder
	b.Grow(len(plan))
	for _, d := range plan {
		b.WriteByte(d.Char())
	}
	return b.String()
}

// ParsePlan is the inverse of FormatPlan.
func ParsePlan(s string) ([]Direction, error) {
	plan := make([]Direction, 0, len(s))
	for _, r := range s {
		d, err := ParseDirection(string(r))
		if err != nil {
			return nil, err
		}
		plan = append(plan, d)
	}
	return plan, nil
}
