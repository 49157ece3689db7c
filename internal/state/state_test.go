package state_test

import (
	"fmt"
	. "github.com/janpfeifer/tttGo/internal/state"
	. "github.com/janpfeifer/tttGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

var _ = fmt.Printf

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, NumPositions, b.EmptyCells())
	for pos := range NumPositions {
		assert.True(t, b.IsValid(pos), "position %d should be valid on an empty board", pos)
	}
	assert.Equal(t, Outcome{Status: InProgress}, b.Classify())
}

func TestIsValid(t *testing.T) {
	b := BuildBoard("X__/_O_/___")
	assert.False(t, b.IsValid(0))
	assert.False(t, b.IsValid(4))
	assert.True(t, b.IsValid(1))
	assert.True(t, b.IsValid(8))
	assert.False(t, b.IsValid(-1))
	assert.False(t, b.IsValid(9))
}

func TestAct(t *testing.T) {
	b := NewBoard()
	b.Act(4, X)
	b.Act(0, O)
	assert.Equal(t, X, b.At(1, 1))
	assert.Equal(t, O, b.At(0, 0))
	assert.Equal(t, 7, b.EmptyCells())
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7, 8}, b.ValidActions())

	b.Reset()
	assert.Equal(t, *NewBoard(), *b)
}

func TestClassify(t *testing.T) {
	for _, test := range []struct {
		layout string
		want   Outcome
	}{
		{"XXX/_O_/__O", Outcome{Status: Win, Winner: X}},
		{"XOX/OXO/OXO", Outcome{Status: Draw}},
		{"OX_/OX_/O__", Outcome{Status: Win, Winner: O}},
		{"X_O/_XO/__X", Outcome{Status: Win, Winner: X}},
		{"X_O/_OX/O__", Outcome{Status: Win, Winner: O}},
		{"___/OOO/XX_", Outcome{Status: Win, Winner: O}},
		{"_X_/OX_/_X_", Outcome{Status: Win, Winner: X}},
		{"__X/_OX/O_X", Outcome{Status: Win, Winner: X}},
		{"XOX/XO_/OXO", Outcome{Status: InProgress}},
		{"___/___/___", Outcome{Status: InProgress}},
		// Filled board with a line is a win, not a draw.
		{"XXX/OOX/XOO", Outcome{Status: Win, Winner: X}},
	} {
		b := BuildBoard(test.layout)
		got := b.Classify()
		assert.Equalf(t, test.want, got, "Classify(%q)", test.layout)
		assert.Equal(t, test.want.Status != InProgress, b.IsFinished())
		if test.want.Status == Win {
			assert.Equal(t, test.want.Winner, b.Winner())
		} else {
			assert.Equal(t, Empty, b.Winner())
		}
	}
}

func TestString(t *testing.T) {
	b := BuildBoard("XO_/_X_/O_X")
	want := "X|O| \n-----\n |X| \n-----\nO| |X"
	assert.Equal(t, want, b.String())
	assert.Equal(t, "Win(X)", b.Classify().String())
}

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard("x.o|...|o.x")
	require.NoError(t, err)
	assert.Equal(t, Board{X, Empty, O, Empty, Empty, Empty, O, Empty, X}, *b)

	for _, layout := range []string{"", "XXXX", "XO_/___/___/_", "XO?/___/___"} {
		_, err = ParseBoard(layout)
		assert.Errorf(t, err, "ParseBoard(%q) should fail", layout)
	}
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, O, X.Opponent())
	assert.Equal(t, X, O.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
}
