// Package policy implements the epsilon-greedy action selection used by every player of the
// table-based agent, with invalid actions masked out.
package policy

import (
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/tttGo/internal/ai/valuetable"
	"github.com/janpfeifer/tttGo/internal/generics"
	"github.com/janpfeifer/tttGo/internal/state"
	"k8s.io/klog/v2"
	"math/rand/v2"
)

// Options configure SelectAction.
type Options struct {
	// ExploreUnvisited makes states whose scores are all exactly 0 always choose a random action,
	// regardless of epsilon (even 0). Zero scores are how unvisited states look like in the table.
	//
	// If false, an all-zero state is handled greedily like any other, and with epsilon=0 the
	// selection is fully deterministic.
	ExploreUnvisited bool
}

// DefaultOptions explores unvisited states.
var DefaultOptions = Options{ExploreUnvisited: true}

// SelectAction returns the position to play on board given the state's scores.
//
// With probability epsilon (or always, for an unvisited state if opts.ExploreUnvisited) it returns
// a uniformly random valid action. Otherwise, it returns the valid action with the highest score.
// Ties are broken in favor of the highest position index.
//
// It panics if board has no empty cell.
func SelectAction(rng *rand.Rand, scores valuetable.ActionScores, board *state.Board, epsilon float64, opts Options) int {
	if board.EmptyCells() == 0 {
		exceptions.Panicf("policy.SelectAction called on a full board:\n%s", board)
	}
	explore := opts.ExploreUnvisited && scores.IsZero()
	if !explore && epsilon > 0 {
		explore = rng.Float64() < epsilon
	}
	if explore {
		return RandomAction(rng, board)
	}
	return GreedyAction(scores, board)
}

// GreedyAction returns the valid action with the highest score, the highest position among ties.
//
// Positions are sorted by increasing score (stable, so equal scores stay in position order) and
// scanned from the top.
func GreedyAction(scores valuetable.ActionScores, board *state.Board) int {
	order := generics.ArgSortStable(scores[:])
	for ii := len(order) - 1; ii >= 0; ii-- {
		if board.IsValid(order[ii]) {
			if klog.V(3).Enabled() {
				klog.Infof("greedy action %d (score=%g) from %v", order[ii], scores[order[ii]], scores)
			}
			return order[ii]
		}
	}
	exceptions.Panicf("policy.GreedyAction found no valid action on board:\n%s", board)
	return -1
}

// RandomAction draws positions uniformly until it finds a valid one.
//
// It panics if board has no empty cell.
func RandomAction(rng *rand.Rand, board *state.Board) int {
	if board.EmptyCells() == 0 {
		exceptions.Panicf("policy.RandomAction called on a full board:\n%s", board)
	}
	for {
		pos := rng.IntN(state.NumPositions)
		if board.IsValid(pos) {
			return pos
		}
	}
}
