package push

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/world"
)

// stickMap can only be solved by pushing the two-cell stick M1 into the goal
// object, because agent walls keep the agent away from it.
var stickMap = []string{
	".  S    .",
	".  M1   .",
	"W  M1+A W",
	"W  M0+A W",
	"W  G0+A W",
}

func estimate(h bestfirst.Heuristic[world.State, float64], state world.State) float64 {
	return h.EstimateCostToGoal(bestfirst.RelativeState[world.State]{State: state})
}

func TestRGD(t *testing.T) {
	p := mustParse(t, trivialMap...)

	for _, fewestTools := range []bool{true, false} {
		h := NewRGD(p, fewestTools)
		state := p.InitialState()
		assert.Equal(t, 2.0, estimate(h, state))

		state = p.NextState(state, world.Right).State
		assert.Equal(t, 3.0, estimate(h, state))

		state = p.NextState(state, world.Up).State
		assert.Equal(t, 4.0, estimate(h, state))

		assert.Equal(t, 0.0, estimate(h, world.NewState(pos(3, 2), pos(3, 1))))
	}
}

func TestRGDIsInfiniteForDeadEnds(t *testing.T) {
	p := mustParse(t, trivialMap...)
	h := NewRGD(p, true)

	// Nothing can push the object out of a corner.
	cornered := world.NewState(pos(2, 2), pos(3, 3))
	assert.True(t, math.IsInf(estimate(h, cornered), 1))
}

func TestRGDCostsToolPushes(t *testing.T) {
	p := mustParse(t, stickMap...)
	assert.Equal(t, "M1", p.ObjectName(2))

	for _, fewestTools := range []bool{true, false} {
		h := NewRGD(p, fewestTools)
		assert.Equal(t, 1.0, estimate(h, p.InitialState()))
	}
	assert.True(t, p.IsValidPlan([]world.Direction{world.Down}))
}
