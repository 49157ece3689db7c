// Package valuetable holds the learned action values, indexed by state code and board position.
package valuetable

import (
	"github.com/chewxy/math32"
	"github.com/janpfeifer/tttGo/internal/state"
)

// ActionScores holds one value per board position, the value of placing a mark there.
type ActionScores [state.NumPositions]float32

// IsZero returns whether all scores are exactly 0, which is how unvisited states look like.
func (s ActionScores) IsZero() bool {
	return s == ActionScores{}
}

// Table is a dense table of ActionScores for every state.StateCode, including the unreachable
// ones, so any code can index it directly. It starts with all zeros and never shrinks.
//
// Table is not safe for concurrent writes.
type Table struct {
	scores []ActionScores
}

// New creates a zero-initialized table.
func New() *Table {
	return &Table{scores: make([]ActionScores, state.NumStateCodes)}
}

// Get returns a copy of the scores for the state.
func (t *Table) Get(code state.StateCode) ActionScores {
	return t.scores[code]
}

// Value returns the score of one action on the state.
func (t *Table) Value(code state.StateCode, pos int) float32 {
	return t.scores[code][pos]
}

// Set replaces the score of one action on the state.
func (t *Table) Set(code state.StateCode, pos int, value float32) {
	t.scores[code][pos] = value
}

// NumVisited returns the number of states with at least one non-zero score.
func (t *Table) NumVisited() (count int) {
	for ii := range t.scores {
		if !t.scores[ii].IsZero() {
			count++
		}
	}
	return
}

// MaxAbs returns the largest absolute value in the table.
func (t *Table) MaxAbs() (maxAbs float32) {
	for ii := range t.scores {
		for _, v := range t.scores[ii] {
			maxAbs = math32.Max(maxAbs, math32.Abs(v))
		}
	}
	return
}
