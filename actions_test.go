package bestfirst

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffledEnumerator_CoversEveryPermutationUniformly(t *testing.T) {
	const groups = 24000
	enumerator := NewShuffledEnumerator([]string{"L", "R", "U", "D"}, groups, DefaultActionSeed)

	counts := map[string]int{}
	for i := 0; i < groups; i++ {
		counts[strings.Join(enumerator.Next(), "")]++
	}

	// There are 4! possible orders of 4 actions.
	require.Len(t, counts, 24)
	for order, count := range counts {
		assert.Greater(t, count, 600, "order %s is under-represented", order)
	}
}

func TestShuffledEnumerator_CyclesAndIsReproducible(t *testing.T) {
	actions := []int{0, 1, 2, 3, 4}
	a := NewShuffledEnumerator(actions, 3, 11)
	b := NewShuffledEnumerator(actions, 3, 11)

	var firstCycle [][]int
	for i := 0; i < 3; i++ {
		group := a.Next()
		assert.ElementsMatch(t, actions, group)
		assert.Equal(t, group, b.Next())
		firstCycle = append(firstCycle, group)
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, firstCycle[i], a.Next())
	}
}

func TestFixedEnumerator(t *testing.T) {
	actions := []string{"a", "b"}
	enumerator := NewFixedEnumerator(actions)
	actions[0] = "changed"

	assert.Equal(t, []string{"a", "b"}, enumerator.Next())
	assert.Equal(t, []string{"a", "b"}, enumerator.Next())
}

func TestNewActionEnumerator_FollowsPolicy(t *testing.T) {
	actions := []int{1, 2, 3, 4, 5, 6}

	fixed := newActionEnumerator(actions, applyOptions([]Option{WithActionOrder(FixedActions)}))
	assert.Equal(t, actions, fixed.Next())

	seeded := newActionEnumerator(actions, applyOptions([]Option{WithActionSeed(5), WithActionGroups(8)}))
	again := NewShuffledEnumerator(actions, 8, 5)
	for i := 0; i < 16; i++ {
		assert.Equal(t, again.Next(), seeded.Next())
	}

	random := newActionEnumerator(actions, applyOptions([]Option{WithActionOrder(RandomActions), WithActionGroups(0)}))
	assert.ElementsMatch(t, actions, random.Next())
}
