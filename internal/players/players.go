// Package players provides the automatic players (the trained agent and a random player) and a
// factory to create them from configuration strings.
package players

import (
	"fmt"
	"github.com/janpfeifer/tttGo/internal/ai/policy"
	"github.com/janpfeifer/tttGo/internal/ai/valuetable"
	"github.com/janpfeifer/tttGo/internal/parameters"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/pkg/errors"
	"math/rand/v2"
	"strings"
)

// Player is anything that is able to play the game.
type Player interface {
	// Play returns the position where to place the player's mark. The board must not be finished.
	Play(board *state.Board) (pos int)

	// Mark played by the player.
	Mark() state.Cell

	fmt.Stringer
}

// Agent plays using the learned values of a Table, with epsilon-greedy exploration.
type Agent struct {
	Table   *valuetable.Table
	Epsilon float64
	Options policy.Options

	mark state.Cell
	rng  *rand.Rand
}

// Assert Agent is a Player.
var _ Player = (*Agent)(nil)

// NewAgent creates an Agent reading table. Use epsilon=0 for its best play.
func NewAgent(table *valuetable.Table, rng *rand.Rand, mark state.Cell, epsilon float64, opts policy.Options) *Agent {
	return &Agent{Table: table, Epsilon: epsilon, Options: opts, mark: mark, rng: rng}
}

// Play implements Player.
func (a *Agent) Play(board *state.Board) int {
	return policy.SelectAction(a.rng, a.Table.Get(state.Encode(board)), board, a.Epsilon, a.Options)
}

// Mark implements Player.
func (a *Agent) Mark() state.Cell { return a.mark }

// String implements fmt.Stringer.
func (a *Agent) String() string {
	return fmt.Sprintf("agent(%s, epsilon=%g)", a.mark, a.Epsilon)
}

// Random plays uniformly random valid moves.
type Random struct {
	mark state.Cell
	rng  *rand.Rand
}

// Assert Random is a Player.
var _ Player = (*Random)(nil)

// NewRandom creates a Random player.
func NewRandom(rng *rand.Rand, mark state.Cell) *Random {
	return &Random{mark: mark, rng: rng}
}

// Play implements Player.
func (r *Random) Play(board *state.Board) int {
	return policy.RandomAction(r.rng, board)
}

// Mark implements Player.
func (r *Random) Mark() state.Cell { return r.mark }

// String implements fmt.Stringer.
func (r *Random) String() string {
	return fmt.Sprintf("random(%s)", r.mark)
}

// New creates a player from a configuration string: the player type optionally followed by a
// colon (":") and a comma-separated list of parameters. Examples: "agent", "agent:epsilon=0.1",
// "agent:epsilon=0,explore_unvisited=false", "random".
//
// table is only used by "agent" players.
func New(config string, table *valuetable.Table, rng *rand.Rand, mark state.Cell) (Player, error) {
	name, paramsConfig, _ := strings.Cut(config, ":")
	params := parameters.NewFromConfigString(paramsConfig)
	var player Player
	switch name {
	case "agent":
		if table == nil {
			return nil, errors.New("agent player requires a value table")
		}
		epsilon, err := parameters.PopParamOr(params, "epsilon", 0.0)
		if err != nil {
			return nil, err
		}
		opts := policy.DefaultOptions
		opts.ExploreUnvisited, err = parameters.PopParamOr(params, "explore_unvisited", opts.ExploreUnvisited)
		if err != nil {
			return nil, err
		}
		player = NewAgent(table, rng, mark, epsilon, opts)
	case "random":
		player = NewRandom(rng, mark)
	default:
		return nil, errors.Errorf("unknown player type %q in %q, valid types are \"agent\" and \"random\"", name, config)
	}
	if err := parameters.CheckAllConsumed(params); err != nil {
		return nil, errors.WithMessagef(err, "failed to create player %q", config)
	}
	return player, nil
}
