// Package state holds the tic-tac-toe board model: cells, moves and the classification of
// a board into won, drawn or still in progress.
//
// Positions are numbered 0 to 8, row-major:
//
//	0|1|2
//	-----
//	3|4|5
//	-----
//	6|7|8
package state

import (
	"fmt"
	"github.com/pkg/errors"
	"strings"
)

// Cell holds the content of one board position.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

const (
	// BoardSide is the number of rows (and columns) of the board.
	BoardSide = 3

	// NumPositions in the board, and hence the number of possible actions in any state.
	NumPositions = BoardSide * BoardSide
)

var cellLetters = [...]string{" ", "X", "O"}

// String returns " ", "X" or "O".
func (c Cell) String() string {
	if int(c) >= len(cellLetters) {
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
	return cellLetters[c]
}

// Opponent returns the other mark: X for O and O for X. Empty returns Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

// Status of a game.
type Status uint8

const (
	InProgress Status = iota
	Win
	Draw
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "InProgress"
	case Win:
		return "Win"
	case Draw:
		return "Draw"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Outcome of a board. Winner is only set if Status is Win.
type Outcome struct {
	Status Status
	Winner Cell
}

// String implements fmt.Stringer.
func (o Outcome) String() string {
	if o.Status == Win {
		return fmt.Sprintf("Win(%s)", o.Winner)
	}
	return o.Status.String()
}

// Board is the 3x3 grid, indexed by position (see package documentation).
type Board [NumPositions]Cell

// lines enumerates all rows, columns and diagonals.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {6, 4, 2},
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Reset board to all empty cells.
func (b *Board) Reset() {
	*b = Board{}
}

// Clone returns a copy of the board.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// At returns the cell at the given row and column.
func (b *Board) At(row, col int) Cell {
	return b[row*BoardSide+col]
}

// IsValid returns whether pos is within the board and its cell is empty.
func (b *Board) IsValid(pos int) bool {
	return pos >= 0 && pos < NumPositions && b[pos] == Empty
}

// Act sets the cell at pos to mark.
//
// The move is not validated, the caller must check it with IsValid first.
func (b *Board) Act(pos int, mark Cell) {
	b[pos] = mark
}

// EmptyCells returns the number of empty cells.
func (b *Board) EmptyCells() (count int) {
	for _, c := range b {
		if c == Empty {
			count++
		}
	}
	return
}

// ValidActions returns the empty positions in increasing order.
func (b *Board) ValidActions() []int {
	actions := make([]int, 0, NumPositions)
	for pos, c := range b {
		if c == Empty {
			actions = append(actions, pos)
		}
	}
	return actions
}

// Winner returns the mark with three in a line, or Empty if there is none.
//
// Only the first line found is considered: boards with two different winners can't be
// reached by alternating play.
func (b *Board) Winner() Cell {
	for _, line := range lines {
		c := b[line[0]]
		if c != Empty && c == b[line[1]] && c == b[line[2]] {
			return c
		}
	}
	return Empty
}

// Classify the board into Win (with the winner), Draw or InProgress.
// It is recalculated at every call.
func (b *Board) Classify() Outcome {
	if winner := b.Winner(); winner != Empty {
		return Outcome{Status: Win, Winner: winner}
	}
	if b.EmptyCells() == 0 {
		return Outcome{Status: Draw}
	}
	return Outcome{Status: InProgress}
}

// IsFinished returns whether the game is over, either by a win or a draw.
func (b *Board) IsFinished() bool {
	return b.Classify().Status != InProgress
}

// String renders the board the classic way:
//
//	X|O|
//	-----
//	 |X|
//	-----
//	O| |X
func (b *Board) String() string {
	var sb strings.Builder
	for row := range BoardSide {
		if row > 0 {
			sb.WriteString("\n-----\n")
		}
		for col := range BoardSide {
			if col > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(b.At(row, col).String())
		}
	}
	return sb.String()
}

// ParseBoard reads a board from its 9 cells in position order: 'X'/'x' for X, 'O'/'o' for O and
// '_', '.', '-' or ' ' for an empty cell. Any of ',', '|', '/' or newlines are ignored,
// so "XXX/_O_/__O" is a valid layout.
func ParseBoard(layout string) (*Board, error) {
	b := NewBoard()
	pos := 0
	for _, r := range layout {
		var c Cell
		switch r {
		case 'X', 'x':
			c = X
		case 'O', 'o':
			c = O
		case '_', '.', '-', ' ':
			c = Empty
		case ',', '|', '/', '\n', '\r', '\t':
			continue
		default:
			return nil, errors.Errorf("invalid cell %q in board layout %q", r, layout)
		}
		if pos >= NumPositions {
			return nil, errors.Errorf("board layout %q has more than %d cells", layout, NumPositions)
		}
		b[pos] = c
		pos++
	}
	if pos != NumPositions {
		return nil, errors.Errorf("board layout %q has %d cells, wanted %d", layout, pos, NumPositions)
	}
	return b, nil
}
