// Package ai (Artificial Intelligence) defines the roles and rewards shared by the table-based
// agent, its trainer and its evaluator.
package ai

import (
	"github.com/janpfeifer/tttGo/internal/state"
)

const (
	// AgentMark is the mark played by the learning agent.
	AgentMark = state.O

	// OpponentMark is the mark played by the scripted (training) or random (evaluation) opponent,
	// and by the human when playing against the agent.
	OpponentMark = state.X
)

// Rewards given to the agent at the end of a game.
type Rewards struct {
	Win, Draw, Loss float32
}

// DefaultRewards: the agent is rewarded for draws, but half as much as for wins.
var DefaultRewards = Rewards{Win: 1, Draw: 0.5, Loss: 0}

// For returns the reward for player on a finished game outcome.
// It returns 0 for games still in progress.
func (r Rewards) For(outcome state.Outcome, player state.Cell) float32 {
	switch outcome.Status {
	case state.Win:
		if outcome.Winner == player {
			return r.Win
		}
		return r.Loss
	case state.Draw:
		return r.Draw
	}
	return 0
}

// RandomFirst returns AgentMark or OpponentMark with equal probability, using the given
// random int source (typically rand.IntN).
func RandomFirst(intN func(n int) int) state.Cell {
	if intN(2) == 0 {
		return OpponentMark
	}
	return AgentMark
}
