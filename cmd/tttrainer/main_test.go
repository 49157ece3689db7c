package main

import (
	"github.com/janpfeifer/tttGo/internal/ai"
	"github.com/janpfeifer/tttGo/internal/ai/valuetable"
	"github.com/janpfeifer/tttGo/internal/players"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand/v2"
	"testing"
)

func TestCreatePlayers(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	table := valuetable.New()
	defer func() { *flagAI, *flagWatchOpponent = "agent", "random" }()

	aiPlayer, opponent, err := createPlayers(table, rng)
	require.NoError(t, err)
	require.IsType(t, &players.Agent{}, aiPlayer)
	assert.Equal(t, ai.AgentMark, aiPlayer.Mark())
	assert.Equal(t, 0.0, aiPlayer.(*players.Agent).Epsilon)
	assert.IsType(t, &players.Random{}, opponent)
	assert.Equal(t, ai.OpponentMark, opponent.Mark())

	*flagAI, *flagWatchOpponent = "agent:epsilon=0.1,explore_unvisited=false", "agent"
	aiPlayer, opponent, err = createPlayers(table, rng)
	require.NoError(t, err)
	agent := aiPlayer.(*players.Agent)
	assert.Equal(t, 0.1, agent.Epsilon)
	assert.False(t, agent.Options.ExploreUnvisited)
	require.IsType(t, &players.Agent{}, opponent)
	assert.Equal(t, ai.OpponentMark, opponent.Mark())
	assert.Same(t, table, opponent.(*players.Agent).Table)

	*flagAI = "minimax"
	_, _, err = createPlayers(table, rng)
	assert.ErrorContains(t, err, "invalid -ai")

	*flagAI, *flagWatchOpponent = "agent", "random:epsilon=1"
	_, _, err = createPlayers(table, rng)
	assert.ErrorContains(t, err, "invalid -watch_opponent")
}
