// Package world models puzzle configurations as ordered collections of object
// positions on a 2D grid.
package world

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const bytesPerObject = 8

// Position is a cell on the grid. X grows to the right and Y grows downwards.
type Position struct {
	X, Y int32
}

// Add returns p translated by delta.
func (p Position) Add(delta Position) Position {
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Sub returns the displacement from other to p.
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// Manhattan returns the L1 distance between p and other.
func (p Position) Manhattan(other Position) int {
	return abs(int(p.X-other.X)) + abs(int(p.Y-other.Y))
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// State is an immutable, comparable sequence of object positions. Two states
// are equal iff every object is at the same position, so State can be used
// directly as a map key.
type State struct {
	packed string
}

// NewState creates a state with object i at positions[i].
func NewState(positions ...Position) State {
	buf := make([]byte, len(positions)*bytesPerObject)
	for i, p := range positions {
		putPosition(buf[i*bytesPerObject:], p)
	}
	return State{packed: string(buf)}
}

// NumObjects returns the number of objects in the state.
func (s State) NumObjects() int { return len(s.packed) / bytesPerObject }

// At returns the position of object i.
func (s State) At(i int) Position {
	offset := i * bytesPerObject
	return Position{
		X: int32(binary.LittleEndian.Uint32([]byte(s.packed[offset : offset+4]))),
		Y: int32(binary.LittleEndian.Uint32([]byte(s.packed[offset+4 : offset+8]))),
	}
}

// With returns a copy of s where object i is at p.
func (s State) With(i int, p Position) State {
	buf := []byte(s.packed)
	putPosition(buf[i*bytesPerObject:], p)
	return State{packed: string(buf)}
}

// Positions returns a copy of all object positions.
func (s State) Positions() []Position {
	positions := make([]Position, s.NumObjects())
	for i := range positions {
		positions[i] = s.At(i)
	}
	return positions
}

// IndexAt returns the first object at p, or -1.
func (s State) IndexAt(p Position) int {
	for i := 0; i < s.NumObjects(); i++ {
		if s.At(i) == p {
			return i
		}
	}
	return -1
}

func (s State) String() string {
	parts := make([]string, s.NumObjects())
	for i := range parts {
		parts[i] = s.At(i).String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func putPosition(buf []byte, p Position) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(p.X))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(p.Y))
}

// AllObjects returns the indices 0..n-1.
func AllObjects(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
