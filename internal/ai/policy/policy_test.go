package policy

import (
	"github.com/janpfeifer/tttGo/internal/ai/valuetable"
	"github.com/janpfeifer/tttGo/internal/state"
	. "github.com/janpfeifer/tttGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"math/rand/v2"
	"testing"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(42, 0))
}

func TestGreedyAction(t *testing.T) {
	board := BuildBoard("X__/_O_/___")
	scores := valuetable.ActionScores{0: 10, 1: 0.2, 4: 5, 7: 0.3}
	// 0 and 4 are occupied, so 7 is the best valid action.
	assert.Equal(t, 7, GreedyAction(scores, board))

	// Ties go to the highest position.
	scores = valuetable.ActionScores{1: 0.5, 2: 0.5, 5: 0.5, 8: 0.1}
	assert.Equal(t, 5, GreedyAction(scores, board))

	// Negative scores: all empty cells but 3 are worse than 0.
	scores = valuetable.ActionScores{-1, -1, -1, 0, -1, -1, -1, -1, -1}
	assert.Equal(t, 3, GreedyAction(scores, board))
}

func TestSelectActionGreedy(t *testing.T) {
	rng := newRNG()
	board := BuildBoard("XO_/___/___")
	scores := valuetable.ActionScores{0: 1, 1: 1, 6: 0.4}
	for range 100 {
		assert.Equal(t, 6, SelectAction(rng, scores, board, 0, DefaultOptions))
	}
}

func TestSelectActionUnvisitedExplores(t *testing.T) {
	rng := newRNG()
	board := state.NewBoard()
	var zero valuetable.ActionScores
	seen := make(map[int]bool)
	for range 500 {
		seen[SelectAction(rng, zero, board, 0, DefaultOptions)] = true
	}
	assert.Len(t, seen, state.NumPositions, "epsilon=0 on an all-zero state should still explore")

	// Without ExploreUnvisited it is fully greedy: highest index among the ties.
	for range 100 {
		assert.Equal(t, 8, SelectAction(rng, zero, board, 0, Options{}))
	}
}

func TestSelectActionExploration(t *testing.T) {
	rng := newRNG()
	board := state.NewBoard()
	scores := valuetable.ActionScores{4: 1}
	counts := make([]int, state.NumPositions)
	const numDraws = 10_000
	for range numDraws {
		counts[SelectAction(rng, scores, board, 0.5, DefaultOptions)]++
	}
	// 4 is chosen with probability 0.5 + 0.5/9.
	assert.InDelta(t, 0.5+0.5/9, float64(counts[4])/numDraws, 0.03)
	for pos, count := range counts {
		if pos != 4 {
			assert.InDelta(t, 0.5/9, float64(count)/numDraws, 0.02)
		}
	}
}

func TestSelectActionAlwaysValid(t *testing.T) {
	rng := newRNG()
	for _, board := range ReachableBoards() {
		if board.IsFinished() {
			continue
		}
		scores := valuetable.ActionScores{}
		for pos := range scores {
			scores[pos] = float32(rng.NormFloat64())
		}
		for _, epsilon := range []float64{0, 0.25, 1} {
			pos := SelectAction(rng, scores, board, epsilon, DefaultOptions)
			if !assert.True(t, board.IsValid(pos), "invalid action %d for board\n%s", pos, board) {
				return
			}
		}
		assert.True(t, board.IsValid(SelectAction(rng, valuetable.ActionScores{}, board, 0, DefaultOptions)))
	}
}

func TestFullBoardPanics(t *testing.T) {
	rng := newRNG()
	board := BuildBoard("XOX/OXO/OXO")
	assert.Panics(t, func() { SelectAction(rng, valuetable.ActionScores{}, board, 0, DefaultOptions) })
	assert.Panics(t, func() { RandomAction(rng, board) })
}

func TestRandomAction(t *testing.T) {
	rng := newRNG()
	board := BuildBoard("XOX/OXO/O_O")
	for range 20 {
		assert.Equal(t, 7, RandomAction(rng, board))
	}
}
