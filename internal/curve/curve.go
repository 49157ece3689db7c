// Package curve summarizes and plots the learning curve: the sequence of evaluation scores,
// one per training episode.
package curve

import (
	"fmt"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/stat"
	"io"
	"strconv"
)

// DefaultWindow for the rolling mean of scores.
const DefaultWindow = 100

// RollingMean returns the mean of each window of consecutive values.
// The first mean is for values[0:window], so the result has len(values)-window+1 entries
// (none if there are fewer values than window).
func RollingMean(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	means := make([]float64, 0, len(values)-window+1)
	for end := window; end <= len(values); end++ {
		means = append(means, stat.Mean(values[end-window:end], nil))
	}
	return means
}

// MovingAverage returns the exponential moving average updated with value. For the first
// values (count is the number of values so far, including this one) the decay is limited
// to 1-1/count, so the average is not biased towards its initial 0.
func MovingAverage[T constraints.Float](average, value, decay T, count int) T {
	if count > 0 {
		decay = min(1-1/T(count), decay)
	}
	return average*decay + (1-decay)*value
}

// Stats summarizes a learning curve.
type Stats struct {
	// Episodes in the curve.
	Episodes int

	// Mean over all episodes.
	Mean float64

	// Last is the mean of the last window of episodes, and Best the largest rolling mean.
	Last, Best float64

	// BestEpisode is the last episode of the best window (1-based).
	BestEpisode int
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return fmt.Sprintf("%d episodes: mean score=%.3f, last window=%.3f, best window=%.3f (ending at episode %d)",
		s.Episodes, s.Mean, s.Last, s.Best, s.BestEpisode)
}

// Summary of scores using rolling means over window. If there are fewer scores than window,
// the window is shrunk to the number of scores.
func Summary(scores []float64, window int) (s Stats) {
	s.Episodes = len(scores)
	if len(scores) == 0 {
		return
	}
	s.Mean = stat.Mean(scores, nil)
	window = min(max(window, 1), len(scores))
	means := RollingMean(scores, window)
	s.Last = means[len(means)-1]
	for ii, mean := range means {
		if ii == 0 || mean > s.Best {
			s.Best = mean
			s.BestEpisode = ii + window
		}
	}
	return
}

// WriteHTML renders an HTML page with the line chart of scores and of their rolling mean over
// window episodes.
func WriteHTML(w io.Writer, title string, scores []float64, window int) error {
	means := RollingMean(scores, window)
	if len(means) == 0 {
		return errors.Errorf("not enough scores (%d) for a rolling mean over %d episodes", len(scores), window)
	}
	episodes := make([]string, len(scores))
	raw := make([]opts.LineData, len(scores))
	rolling := make([]opts.LineData, len(scores))
	for ii, score := range scores {
		episodes[ii] = strconv.Itoa(ii + 1)
		raw[ii] = opts.LineData{Value: score}
		// "-" is a missing point: no mean before the first full window.
		rolling[ii] = opts.LineData{Value: "-"}
		if ii >= window-1 {
			rolling[ii].Value = means[ii-window+1]
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("Evaluation score per episode and rolling mean over %d episodes", window),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score"}),
	)
	line.SetXAxis(episodes).
		AddSeries("score", raw).
		AddSeries(fmt.Sprintf("mean(%d)", window), rolling)
	if err := line.Render(w); err != nil {
		return errors.Wrapf(err, "failed to render learning curve chart")
	}
	return nil
}
