package main

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseFloats(t *testing.T) {
	values, err := parseFloats(" 0.1, 0.5,,0.9 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.5, 0.9}, values)

	_, err = parseFloats("0.1,abc")
	assert.Error(t, err)
	_, err = parseFloats(" , ")
	assert.Error(t, err)
}

func TestCreateRuns(t *testing.T) {
	*flagConfig = "seed=7,eval_games=2"
	*flagEpisodes = 100
	defer func() { *flagConfig = "" }()
	runs, err := createRuns([]float64{0.1, 0.5}, []float64{0.2, 0.3, 0.4})
	require.NoError(t, err)
	require.Len(t, runs, 6)
	assert.Equal(t, float32(0.1), runs[0].Config.Alpha)
	assert.Equal(t, 0.4, runs[2].Config.Epsilon)
	assert.Equal(t, float32(0.5), runs[3].Config.Alpha)
	assert.Equal(t, 2, runs[5].Config.EvalGames)
	seeds := make(map[uint64]bool)
	for _, run := range runs {
		seeds[run.Config.Seed] = true
	}
	assert.Len(t, seeds, 6)

	*flagConfig = "unknown_key=1"
	_, err = createRuns([]float64{0.1}, []float64{0.2})
	assert.Error(t, err)
}
