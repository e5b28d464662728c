package push

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/bestfirst/world"
)

func steps(to ...world.Position) map[world.Position]struct{} {
	set := map[world.Position]struct{}{}
	for _, p := range to {
		set[p] = struct{}{}
	}
	return set
}

func TestBuildMovementGraphs(t *testing.T) {
	p := mustParse(t, trivialMap...)
	graphs := BuildMovementGraphs(p)
	require.Len(t, graphs, 2)

	assert.Equal(t, MovementGraph{
		pos(1, 2): steps(pos(2, 2)),
		pos(2, 1): steps(pos(2, 2), pos(3, 1)),
		pos(2, 2): steps(pos(1, 2), pos(3, 2), pos(2, 1), pos(2, 3)),
		pos(2, 3): steps(pos(2, 2), pos(3, 3)),
		pos(3, 1): steps(pos(2, 1), pos(3, 2)),
		pos(3, 2): steps(pos(3, 1), pos(3, 3), pos(2, 2)),
		pos(3, 3): steps(pos(2, 3), pos(3, 2)),
	}, graphs[Agent])

	// The object may enter the agent wall but can never leave it.
	assert.Equal(t, MovementGraph{
		pos(1, 2): steps(),
		pos(1, 3): steps(),
		pos(2, 1): steps(),
		pos(3, 1): steps(),
		pos(3, 3): steps(),
		pos(2, 2): steps(pos(1, 2), pos(3, 2), pos(2, 1), pos(2, 3)),
		pos(2, 3): steps(pos(1, 3)),
		pos(3, 2): steps(pos(3, 1), pos(3, 3)),
	}, graphs[1])

	assert.True(t, graphs[1].Has(pos(3, 2), pos(3, 1)))
	assert.False(t, graphs[1].Has(pos(3, 1), pos(3, 2)))
}

func TestMovementGraphsFollowToolChains(t *testing.T) {
	p := mustParse(t, stickMap...)
	graphs := BuildMovementGraphs(p)

	// Only the stick can push the goal object through the agent walls.
	assert.True(t, graphs[1].Has(pos(1, 3), pos(1, 4)))
	assert.True(t, graphs[2].Has(pos(1, 1), pos(1, 2)))
	_, ok := graphs[Agent][pos(1, 2)]
	assert.False(t, ok)
}

func TestPathDistances(t *testing.T) {
	p := mustParse(t, trivialMap...)
	graphs := BuildMovementGraphs(p)
	agent := NewPathDistances(graphs[Agent])
	object := NewPathDistances(graphs[1])

	assert.Equal(t, 3.0, agent.Distance(pos(1, 2), pos(3, 3)))
	assert.Equal(t, 1.0, agent.Distance(pos(1, 2), pos(2, 2)))
	assert.Equal(t, 3.0, agent.Distance(pos(2, 3), pos(3, 1)))
	assert.Equal(t, 0.0, agent.Distance(pos(3, 3), pos(3, 3)))
	assert.True(t, math.IsInf(agent.Distance(pos(1, 1), pos(2, 3)), 1))

	assert.Equal(t, 2.0, object.Distance(pos(2, 2), pos(3, 1)))
	assert.True(t, math.IsInf(object.Distance(pos(3, 1), pos(2, 2)), 1))
}
