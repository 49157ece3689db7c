package trainer

import (
	"github.com/janpfeifer/tttGo/internal/ai"
	"github.com/janpfeifer/tttGo/internal/evaluator"
	"github.com/janpfeifer/tttGo/internal/parameters"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Config holds the hyper-parameters of a training run.
type Config struct {
	// Alpha is the learning rate of the TD update.
	Alpha float32

	// Epsilon is the initial exploration rate of the agent. It decays during training.
	Epsilon float64

	// Episodes to train.
	Episodes int

	// ScriptedEpsilon is the fixed exploration rate of the scripted opponent.
	ScriptedEpsilon float64

	// EpsilonDecay multiplies the agent's Epsilon DecaySteps times during training, evenly spaced.
	EpsilonDecay float64
	DecaySteps   int

	// EvalGames played after each episode to score the agent.
	EvalGames int

	// EvalEpsilon is the agent's exploration rate during evaluation. If negative, the current
	// training Epsilon is used.
	EvalEpsilon float64

	// SkipEvaluation disables the evaluation after each episode, and no scores are collected.
	SkipEvaluation bool

	// Rewards at the end of each episode.
	Rewards ai.Rewards

	// ExploreUnvisited makes both players choose randomly in states never updated.
	// See policy.Options.
	ExploreUnvisited bool

	// Seed for the random number generator. If 0 a random seed is used.
	Seed uint64

	// ProgressEvery logs training progress every that many episodes. 0 disables it.
	ProgressEvery int
}

// DefaultConfig returns the default hyper-parameters.
func DefaultConfig() Config {
	return Config{
		Alpha:            0.9,
		Epsilon:          0.3,
		Episodes:         500_000,
		ScriptedEpsilon:  0.25,
		EpsilonDecay:     0.9,
		DecaySteps:       12,
		EvalGames:        evaluator.DefaultNumGames,
		EvalEpsilon:      -1,
		Rewards:          ai.DefaultRewards,
		ExploreUnvisited: true,
		ProgressEvery:    10_000,
	}
}

// NewConfigFromParams creates a Config from DefaultConfig, overwritten by the given parameters.
// Unknown parameters are reported as errors.
//
// Keys: alpha, epsilon, episodes, scripted_epsilon, epsilon_decay, decay_steps, eval_games,
// eval_epsilon, skip_eval, win_reward, draw_reward, loss_reward, explore_unvisited, seed and
// progress_every.
func NewConfigFromParams(params parameters.Params) (cfg Config, err error) {
	cfg = DefaultConfig()
	if cfg.Alpha, err = parameters.PopParamOr(params, "alpha", cfg.Alpha); err != nil {
		return
	}
	if cfg.Epsilon, err = parameters.PopParamOr(params, "epsilon", cfg.Epsilon); err != nil {
		return
	}
	if cfg.Episodes, err = parameters.PopParamOr(params, "episodes", cfg.Episodes); err != nil {
		return
	}
	if cfg.ScriptedEpsilon, err = parameters.PopParamOr(params, "scripted_epsilon", cfg.ScriptedEpsilon); err != nil {
		return
	}
	if cfg.EpsilonDecay, err = parameters.PopParamOr(params, "epsilon_decay", cfg.EpsilonDecay); err != nil {
		return
	}
	if cfg.DecaySteps, err = parameters.PopParamOr(params, "decay_steps", cfg.DecaySteps); err != nil {
		return
	}
	if cfg.EvalGames, err = parameters.PopParamOr(params, "eval_games", cfg.EvalGames); err != nil {
		return
	}
	if cfg.EvalEpsilon, err = parameters.PopParamOr(params, "eval_epsilon", cfg.EvalEpsilon); err != nil {
		return
	}
	if cfg.SkipEvaluation, err = parameters.PopParamOr(params, "skip_eval", cfg.SkipEvaluation); err != nil {
		return
	}
	if cfg.Rewards.Win, err = parameters.PopParamOr(params, "win_reward", cfg.Rewards.Win); err != nil {
		return
	}
	if cfg.Rewards.Draw, err = parameters.PopParamOr(params, "draw_reward", cfg.Rewards.Draw); err != nil {
		return
	}
	if cfg.Rewards.Loss, err = parameters.PopParamOr(params, "loss_reward", cfg.Rewards.Loss); err != nil {
		return
	}
	if cfg.ExploreUnvisited, err = parameters.PopParamOr(params, "explore_unvisited", cfg.ExploreUnvisited); err != nil {
		return
	}
	var seed int
	if seed, err = parameters.PopParamOr(params, "seed", 0); err != nil {
		return
	}
	cfg.Seed = uint64(seed)
	if cfg.ProgressEvery, err = parameters.PopParamOr(params, "progress_every", cfg.ProgressEvery); err != nil {
		return
	}
	if err = parameters.CheckAllConsumed(params); err != nil {
		return
	}
	err = cfg.Validate()
	return
}

// Validate the configuration values.
func (c Config) Validate() error {
	if c.Alpha <= 0 {
		return errors.Errorf("alpha (learning rate) must be > 0, got %g", c.Alpha)
	}
	if c.Alpha > 1 {
		klog.Warningf("alpha=%g > 1: TD updates will overshoot their targets", c.Alpha)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return errors.Errorf("epsilon (exploration rate) must be in [0, 1], got %g", c.Epsilon)
	}
	if c.ScriptedEpsilon < 0 || c.ScriptedEpsilon > 1 {
		return errors.Errorf("scripted_epsilon must be in [0, 1], got %g", c.ScriptedEpsilon)
	}
	if c.EvalEpsilon > 1 {
		return errors.Errorf("eval_epsilon must be <= 1 (or negative to use the training epsilon), got %g", c.EvalEpsilon)
	}
	if c.Episodes <= 0 {
		return errors.Errorf("episodes must be > 0, got %d", c.Episodes)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return errors.Errorf("epsilon_decay must be in (0, 1], got %g", c.EpsilonDecay)
	}
	if c.DecaySteps < 0 {
		return errors.Errorf("decay_steps must be >= 0, got %d", c.DecaySteps)
	}
	if c.EvalGames < 0 {
		return errors.Errorf("eval_games must be >= 0, got %d", c.EvalGames)
	}
	return nil
}
