// Package evaluator measures the skill of a table-based agent by playing a batch of games
// against a uniformly random opponent.
package evaluator

import (
	"fmt"
	"github.com/janpfeifer/tttGo/internal/ai"
	"github.com/janpfeifer/tttGo/internal/ai/policy"
	"github.com/janpfeifer/tttGo/internal/ai/valuetable"
	"github.com/janpfeifer/tttGo/internal/state"
	"k8s.io/klog/v2"
	"math/rand/v2"
)

// DefaultNumGames played by each evaluation. The maximum score is the same.
const DefaultNumGames = 10

// Score of an evaluation: 1 per agent win, 0.5 per draw and 0 per loss.
type Score struct {
	Total               float64
	Wins, Draws, Losses int
}

// Games returns the number of games that contributed to the score.
func (s Score) Games() int {
	return s.Wins + s.Draws + s.Losses
}

// Add the outcome of one game to the score.
func (s *Score) Add(outcome state.Outcome) {
	switch {
	case outcome.Status == state.Draw:
		s.Draws++
		s.Total += 0.5
	case outcome.Status == state.Win && outcome.Winner == ai.AgentMark:
		s.Wins++
		s.Total++
	case outcome.Status == state.Win:
		s.Losses++
	}
}

// String implements fmt.Stringer.
func (s Score) String() string {
	return fmt.Sprintf("%.1f/%d (wins=%d, draws=%d, losses=%d)", s.Total, s.Games(), s.Wins, s.Draws, s.Losses)
}

// Evaluator plays the agent (ai.AgentMark) reading the Table against a uniformly random
// opponent (ai.OpponentMark). It never changes the Table.
type Evaluator struct {
	Table *valuetable.Table

	// NumGames per evaluation.
	NumGames int

	// Epsilon used by the agent.
	Epsilon float64

	// Options for the agent's policy.
	Options policy.Options
}

// New creates an Evaluator with DefaultNumGames and a greedy agent.
func New(table *valuetable.Table) *Evaluator {
	return &Evaluator{
		Table:    table,
		NumGames: DefaultNumGames,
		Options:  policy.DefaultOptions,
	}
}

// Evaluate plays NumGames, each with a random first mover, and returns the agent's score.
func (e *Evaluator) Evaluate(rng *rand.Rand) (score Score) {
	board := state.NewBoard()
	for range e.NumGames {
		board.Reset()
		score.Add(e.PlayGame(rng, board, ai.RandomFirst(rng.IntN)))
	}
	klog.V(2).Infof("Evaluation: %s", score)
	return
}

// PlayGame plays one game on board, starting with the given mark, until it is finished.
func (e *Evaluator) PlayGame(rng *rand.Rand, board *state.Board, first state.Cell) state.Outcome {
	turn := first
	for {
		outcome := board.Classify()
		if outcome.Status != state.InProgress {
			return outcome
		}
		var pos int
		if turn == ai.AgentMark {
			pos = policy.SelectAction(rng, e.Table.Get(state.Encode(board)), board, e.Epsilon, e.Options)
		} else {
			pos = policy.RandomAction(rng, board)
		}
		board.Act(pos, turn)
		turn = turn.Opponent()
	}
}
