package push

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/world"
)

// trivialMap needs one push right and one push up.
var trivialMap = []string{
	"W W  W  W  W",
	"W W  .  G0 W",
	"W S  M0 .  W",
	"W A  .  .  W",
	"W W  W  W  W",
}

func pos(x, y int32) world.Position { return world.Position{X: x, Y: y} }

func mustParse(t *testing.T, rows ...string) *Puzzle {
	t.Helper()
	p, err := Parse(rows)
	require.NoError(t, err)
	return p
}

func planOf(t *testing.T, letters string) []world.Direction {
	t.Helper()
	plan, err := world.ParsePlan(letters)
	require.NoError(t, err)
	return plan
}

func TestParse(t *testing.T) {
	p := mustParse(t, trivialMap...)

	assert.Equal(t, 5, p.Width())
	assert.Equal(t, 5, p.Height())
	assert.Equal(t, 2, p.NumObjects())
	assert.Equal(t, "M0", p.ObjectName(1))
	assert.Equal(t, world.NewState(pos(1, 2), pos(2, 2)), p.InitialState())
	assert.Equal(t, []world.Position{pos(3, 1)}, p.Goal())
	assert.False(t, p.SatisfiesGoal(p.InitialState()))
	assert.Equal(t, world.Directions, p.Actions())
}

func TestParseOrdersGoalObjectsFirst(t *testing.T) {
	p := mustParse(t,
		"S M3 M1 .  G3",
		". M7 .  G1 .",
	)
	require.Equal(t, 4, p.NumObjects())
	assert.Equal(t, []string{"S", "M1", "M3", "M7"},
		[]string{p.ObjectName(0), p.ObjectName(1), p.ObjectName(2), p.ObjectName(3)})
	assert.Equal(t, []world.Position{pos(3, 1), pos(4, 0)}, p.Goal())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		rows []string
		want error
	}{
		{"empty", nil, ErrBadMap},
		{"ragged", []string{"S .", "."}, ErrBadMap},
		{"unknown element", []string{"S X"}, ErrBadMap},
		{"bad object number", []string{"S M-1"}, ErrBadMap},
		{"no agent", []string{"M0 G0"}, ErrNoAgent},
		{"orphan goal", []string{"S G0"}, ErrGoalWithoutObject},
		{"goal shape", []string{"S M0+G0 M0"}, ErrGoalShape},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.rows)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestIsValidPlan(t *testing.T) {
	p := mustParse(t, trivialMap...)

	assert.True(t, p.IsValidPlan(planOf(t, "RDRU")))
	// Bumping into walls is allowed and changes nothing.
	assert.True(t, p.IsValidPlan(planOf(t, "RDRDRU")))
	// The agent wall below the start blocks the detour.
	assert.False(t, p.IsValidPlan(planOf(t, "RDLU")))
	assert.False(t, p.IsValidPlan(nil))
}

func TestNextStateStopsWhenAPushedObjectHitsAWall(t *testing.T) {
	p := mustParse(t, trivialMap...)

	right := p.NextState(p.InitialState(), world.Right)
	assert.Equal(t, world.NewState(pos(2, 2), pos(3, 2)), right.State)
	assert.Equal(t, []int{0, 1}, right.MovedObjects)

	blocked := p.NextState(right.State, world.Right)
	assert.Equal(t, right.State, blocked.State)
	assert.Empty(t, blocked.MovedObjects)

	down := p.NextState(right.State, world.Down)
	assert.Equal(t, world.NewState(pos(2, 3), pos(3, 2)), down.State)
	assert.Equal(t, []int{0}, down.MovedObjects)
}

func TestAgentWallsBlockOnlyTheAgent(t *testing.T) {
	p := mustParse(t, "S A .")
	stay := p.NextState(p.InitialState(), world.Right)
	assert.Equal(t, p.InitialState(), stay.State)

	p = mustParse(t, "S M0 A .")
	moved := p.NextState(p.InitialState(), world.Right)
	assert.Equal(t, world.NewState(pos(1, 0), pos(2, 0)), moved.State)
}

func TestPushesPropagateThroughContactChains(t *testing.T) {
	p := mustParse(t,
		". . . . . . . .",
		". S . M0 . M1 . .",
		". . . . . . . .",
	)
	state := p.InitialState()

	step := p.NextState(state, world.Right)
	assert.Equal(t, []int{0}, step.MovedObjects)

	step = p.NextState(step.State, world.Right)
	assert.Equal(t, []int{0, 1}, step.MovedObjects)
	assert.Equal(t, world.NewState(pos(3, 1), pos(4, 1), pos(5, 1)), step.State)

	step = p.NextState(step.State, world.Right)
	assert.Equal(t, []int{0, 1, 2}, step.MovedObjects)
	assert.Equal(t, world.NewState(pos(4, 1), pos(5, 1), pos(6, 1)), step.State)

	step = p.NextState(step.State, world.Right)
	assert.Equal(t, world.NewState(pos(5, 1), pos(6, 1), pos(7, 1)), step.State)

	// The chain ends at the edge of the map.
	edge := p.NextState(step.State, world.Right)
	assert.Equal(t, step.State, edge.State)
	assert.Empty(t, edge.MovedObjects)

	up := p.NextState(step.State, world.Up)
	assert.Equal(t, []int{0}, up.MovedObjects)
	assert.Equal(t, world.NewState(pos(5, 0), pos(6, 1), pos(7, 1)), up.State)
}

func TestMultiCellObjects(t *testing.T) {
	p := mustParse(t,
		". . .  .  .",
		". S M0 M0 .",
		". . .  .  .",
	)
	assert.ElementsMatch(t, []world.Position{pos(0, -1), pos(1, -1)}, p.PushOffsets(world.Down, 0, 1))
	assert.ElementsMatch(t, []world.Position{pos(-1, 0), pos(0, 0)}, p.PushOffsets(world.Right, 0, 1))

	right := p.NextState(p.InitialState(), world.Right)
	assert.Equal(t, world.NewState(pos(2, 1), pos(3, 1)), right.State)
	// The right cell would leave the map.
	assert.True(t, p.Collides(1, pos(3, 1), world.Right))
	assert.Equal(t, right.State, p.NextState(right.State, world.Right).State)

	// Pushing the right cell from above moves the whole block.
	state := world.NewState(pos(3, 0), pos(2, 1))
	down := p.NextState(state, world.Down)
	assert.Equal(t, world.NewState(pos(3, 1), pos(2, 2)), down.State)
}

func TestFormatRoundTrips(t *testing.T) {
	p := mustParse(t, trivialMap...)
	after := p.NextState(p.InitialState(), world.Right).State

	text := p.Format(after)
	assert.Equal(t, "W  .  S  M0 W", strings.Split(text, "\n")[2])

	again, err := Parse(strings.Split(text, "\n"))
	require.NoError(t, err)
	assert.Equal(t, after, again.InitialState())
	assert.Equal(t, p.Goal(), again.Goal())
	assert.True(t, again.IsValidPlan(planOf(t, "DRU")))
}

func TestManhattan(t *testing.T) {
	p := mustParse(t, trivialMap...)
	h := p.Manhattan()

	assert.Equal(t, 2, h.EstimateCostToGoal(bestfirst.RelativeState[world.State]{State: p.InitialState()}))
	goal := world.NewState(pos(3, 2), pos(3, 1))
	assert.Equal(t, 0, h.EstimateCostToGoal(bestfirst.RelativeState[world.State]{State: goal}))
}
