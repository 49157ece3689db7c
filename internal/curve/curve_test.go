package curve

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestRollingMean(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	assert.InDeltaSlice(t, []float64{2, 3, 4}, RollingMean(values, 3), 1e-9)
	assert.InDeltaSlice(t, values, RollingMean(values, 1), 1e-9)
	assert.InDeltaSlice(t, []float64{3}, RollingMean(values, 5), 1e-9)
	assert.Nil(t, RollingMean(values, 6))
	assert.Nil(t, RollingMean(values, 0))
}

func TestMovingAverage(t *testing.T) {
	var avg float32
	avg = MovingAverage(avg, 10, 0.95, 1)
	assert.InDelta(t, 10, avg, 1e-6)
	avg = MovingAverage(avg, 0, 0.95, 2)
	assert.InDelta(t, 5, avg, 1e-6)

	avg64 := 1.0
	avg64 = MovingAverage(avg64, 2, 0.9, 1000)
	assert.InDelta(t, 1.1, avg64, 1e-9)
}

func TestSummary(t *testing.T) {
	scores := []float64{0, 0, 10, 10, 5, 5}
	s := Summary(scores, 2)
	assert.Equal(t, 6, s.Episodes)
	assert.InDelta(t, 5, s.Mean, 1e-9)
	assert.InDelta(t, 5, s.Last, 1e-9)
	assert.InDelta(t, 10, s.Best, 1e-9)
	assert.Equal(t, 4, s.BestEpisode)

	// Window larger than the curve.
	s = Summary([]float64{2, 4}, 100)
	assert.InDelta(t, 3, s.Last, 1e-9)
	assert.Equal(t, Stats{}, Summary(nil, 10))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	scores := make([]float64, 300)
	for ii := range scores {
		scores[ii] = float64(ii%10) + 0.5
	}
	require.NoError(t, WriteHTML(&buf, "tic-tac-toe", scores, DefaultWindow))
	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "tic-tac-toe")
	assert.Contains(t, html, `"score"`)
	assert.Contains(t, html, `"mean(100)"`)

	assert.Error(t, WriteHTML(&buf, "short", scores[:10], DefaultWindow))
}
