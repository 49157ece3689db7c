package players

import (
	"github.com/janpfeifer/tttGo/internal/ai/policy"
	"github.com/janpfeifer/tttGo/internal/ai/valuetable"
	"github.com/janpfeifer/tttGo/internal/state"
	. "github.com/janpfeifer/tttGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand/v2"
	"testing"
)

func TestNew(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	table := valuetable.New()

	p, err := New("agent:epsilon=0.1,explore_unvisited=false", table, rng, state.O)
	require.NoError(t, err)
	agent, ok := p.(*Agent)
	require.True(t, ok)
	assert.Equal(t, 0.1, agent.Epsilon)
	assert.False(t, agent.Options.ExploreUnvisited)
	assert.Equal(t, state.O, agent.Mark())
	assert.Equal(t, "agent(O, epsilon=0.1)", agent.String())

	p, err = New("random", nil, rng, state.X)
	require.NoError(t, err)
	assert.Equal(t, "random(X)", p.String())

	for _, config := range []string{"minimax", "agent:depth=3", "agent:epsilon=x"} {
		_, err = New(config, table, rng, state.O)
		assert.Errorf(t, err, "config %q should fail", config)
	}
	_, err = New("agent", nil, rng, state.O)
	assert.Error(t, err)
}

func TestAgentPlay(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	table := valuetable.New()
	board := BuildBoard("XX_/_O_/___")
	table.Set(state.Encode(board), 2, 0.9)
	table.Set(state.Encode(board), 0, 1) // Occupied, ignored.
	agent := NewAgent(table, rng, state.O, 0, policy.DefaultOptions)
	assert.Equal(t, 2, agent.Play(board))
}

func TestRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	r := NewRandom(rng, state.X)
	board := BuildBoard("XOX/OXO/_OX")
	assert.Equal(t, 6, r.Play(board))
}
