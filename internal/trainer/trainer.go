// Package trainer teaches a table-based agent to play tic-tac-toe, with TD(0) updates on
// episodes played against a scripted epsilon-greedy opponent.
//
// The agent plays ai.AgentMark and the scripted opponent ai.OpponentMark. Both read the same
// value table, but only the agent's moves are ever updated.
package trainer

import (
	"context"
	"github.com/janpfeifer/tttGo/internal/ai"
	"github.com/janpfeifer/tttGo/internal/ai/policy"
	"github.com/janpfeifer/tttGo/internal/ai/valuetable"
	"github.com/janpfeifer/tttGo/internal/evaluator"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"math/rand/v2"
)

// Trainer owns the training loop. The Table it is given is only written by the Trainer.
type Trainer struct {
	Config
	Table     *valuetable.Table
	Evaluator *evaluator.Evaluator

	rng     *rand.Rand
	board   *state.Board
	epsilon float64
}

// EpisodeResult is reported after each episode.
type EpisodeResult struct {
	// Episode number, starting from 1.
	Episode int

	// Outcome of the training episode.
	Outcome state.Outcome

	// Epsilon used by the agent during the episode.
	Epsilon float64

	// Score of the evaluation after the episode, zero if evaluation is skipped.
	Score evaluator.Score
}

// Result of a training run.
type Result struct {
	// Episodes played.
	Episodes int

	// Wins, Draws and Losses of the agent in the training episodes.
	Wins, Draws, Losses int

	// Scores holds the evaluation score after each episode: the learning curve.
	Scores []float64

	// FinalEpsilon of the agent at the end of training.
	FinalEpsilon float64
}

// New creates a Trainer for the given table. cfg is not validated, see Config.Validate.
func New(cfg Config, table *valuetable.Table) *Trainer {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	klog.V(1).Infof("Trainer random seed: %d", seed)
	t := &Trainer{
		Config:  cfg,
		Table:   table,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		board:   state.NewBoard(),
		epsilon: cfg.Epsilon,
	}
	t.Evaluator = &evaluator.Evaluator{
		Table:    table,
		NumGames: cfg.EvalGames,
		Options:  t.policyOptions(),
	}
	return t
}

// Epsilon returns the agent's current exploration rate.
func (t *Trainer) Epsilon() float64 {
	return t.epsilon
}

// Board returns the board of the last episode played.
func (t *Trainer) Board() *state.Board {
	return t.board
}

func (t *Trainer) policyOptions() policy.Options {
	return policy.Options{ExploreUnvisited: t.ExploreUnvisited}
}

// TDUpdate moves the value of (code, pos) towards target by a fraction alpha:
//
//	Q ← Q + alpha·(target − Q)
//
// For 0 < alpha <= 1 the new value lies between the old value and target; alpha=0 changes nothing.
func TDUpdate(table *valuetable.Table, code state.StateCode, pos int, target, alpha float32) {
	q := table.Value(code, pos)
	table.Set(code, pos, q+alpha*(target-q))
}

// decayEvery returns the number of episodes between epsilon decays, 0 if it never decays.
func (t *Trainer) decayEvery() int {
	if t.DecaySteps <= 0 {
		return 0
	}
	return t.Episodes / t.DecaySteps
}

// RunEpisode plays one training episode with a random first mover. See RunEpisodeFrom.
func (t *Trainer) RunEpisode() state.Outcome {
	return t.RunEpisodeFrom(ai.RandomFirst(t.rng.IntN))
}

// RunEpisodeFrom plays one training episode on a fresh board, starting with first, and updates
// the table after each of the agent's moves (except its first), and once more at the end of the
// episode with the reward.
func (t *Trainer) RunEpisodeFrom(first state.Cell) state.Outcome {
	board := t.board
	board.Reset()
	opts := t.policyOptions()
	turn := first

	var (
		// Agent's previous state and action.
		prevCode   state.StateCode
		prevAction int
		hasPrev    bool

		// State and action to bootstrap the final update from.
		lastCode   state.StateCode
		lastAction int
	)
	outcome := board.Classify()
	for outcome.Status == state.InProgress {
		code := state.Encode(board)
		scores := t.Table.Get(code)
		if turn == ai.OpponentMark {
			pos := policy.SelectAction(t.rng, scores, board, t.ScriptedEpsilon, opts)
			board.Act(pos, turn)
			lastCode, lastAction = code, pos
		} else {
			pos := policy.SelectAction(t.rng, scores, board, t.epsilon, opts)
			board.Act(pos, turn)
			if hasPrev {
				TDUpdate(t.Table, prevCode, prevAction, t.Table.Value(code, pos), t.Alpha)
			}
			prevCode, prevAction, hasPrev = code, pos, true
			// If this ends the game, the final update bootstraps from the state after the move,
			// which is never updated itself: it's only the reward that counts.
			lastCode, lastAction = state.Encode(board), pos
		}
		turn = turn.Opponent()
		outcome = board.Classify()
	}

	if hasPrev {
		reward := t.Rewards.For(outcome, ai.AgentMark)
		TDUpdate(t.Table, prevCode, prevAction, t.Table.Value(lastCode, lastAction)+reward, t.Alpha)
	}
	if klog.V(3).Enabled() {
		klog.Infof("Episode finished with %s:\n%s", outcome, board)
	}
	return outcome
}

// Train runs Config.Episodes episodes, evaluating the agent after each one unless
// Config.SkipEvaluation is set. onEpisode, if not nil, is called after each episode.
//
// If ctx is cancelled, training stops before the next episode and the partial Result is
// returned along with the error.
func (t *Trainer) Train(ctx context.Context, onEpisode func(EpisodeResult)) (*Result, error) {
	result := &Result{}
	if !t.SkipEvaluation {
		result.Scores = make([]float64, 0, t.Episodes)
	}
	klog.Infof("Starting training for %d episodes (alpha=%g, epsilon=%g)", t.Episodes, t.Alpha, t.epsilon)
	decayEvery := t.decayEvery()
	for episode := 1; episode <= t.Episodes; episode++ {
		if err := ctx.Err(); err != nil {
			result.FinalEpsilon = t.epsilon
			return result, errors.WithMessagef(err, "training interrupted after %d episodes", result.Episodes)
		}
		if decayEvery > 0 && episode%decayEvery == 0 {
			t.epsilon *= t.EpsilonDecay
			klog.V(1).Infof("Episode %d: epsilon decayed to %.4f", episode, t.epsilon)
		}

		episodeResult := EpisodeResult{Episode: episode, Epsilon: t.epsilon}
		episodeResult.Outcome = t.RunEpisode()
		result.Episodes++
		switch {
		case episodeResult.Outcome.Status == state.Draw:
			result.Draws++
		case episodeResult.Outcome.Winner == ai.AgentMark:
			result.Wins++
		default:
			result.Losses++
		}

		if !t.SkipEvaluation {
			t.Evaluator.Epsilon = t.EvalEpsilon
			if t.EvalEpsilon < 0 {
				t.Evaluator.Epsilon = t.epsilon
			}
			episodeResult.Score = t.Evaluator.Evaluate(t.rng)
			result.Scores = append(result.Scores, episodeResult.Score.Total)
		}
		if t.ProgressEvery > 0 && episode%t.ProgressEvery == 0 {
			klog.Infof("Episode %d: epsilon=%.4f, training wins/draws/losses=%d/%d/%d, visited states=%d",
				episode, t.epsilon, result.Wins, result.Draws, result.Losses, t.Table.NumVisited())
		}
		if onEpisode != nil {
			onEpisode(episodeResult)
		}
	}
	result.FinalEpsilon = t.epsilon
	klog.Infof("Training finished: %d episodes, final epsilon=%.4f, max |value|=%.3f",
		result.Episodes, result.FinalEpsilon, t.Table.MaxAbs())
	return result, nil
}
