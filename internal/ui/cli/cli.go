// Package cli implements a command-line UI to play against the agent.
package cli

import (
	"bufio"
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/tttGo/internal/players"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len(ansiFilter.ReplaceAllString(s, ""))
}

// UI reads the human moves from an input and prints boards to an output.
type UI struct {
	color  bool
	reader *bufio.Reader
	out    io.Writer

	xStyle, oStyle, legendStyle lipgloss.Style
}

// New creates a UI reading from in and writing to out. If color is true, marks are rendered
// with ANSI colors.
func New(in io.Reader, out io.Writer, color bool) *UI {
	ui := &UI{
		color:  color,
		reader: bufio.NewReader(in),
		out:    out,
	}
	if color {
		ui.xStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
		ui.oStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
		ui.legendStyle = lipgloss.NewStyle().Faint(true)
	}
	return ui
}

// NewTerminal creates a UI on stdin/stdout, with colors if the terminal supports them.
func NewTerminal() *UI {
	color := term.IsTerminal(int(os.Stdout.Fd())) && termenv.EnvColorProfile() != termenv.Ascii
	return New(os.Stdin, os.Stdout, color)
}

func (ui *UI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(ui.out, format, args...)
}

// printCentered prints the block centered on the terminal, if the output is a terminal.
func (ui *UI) printCentered(block string) {
	indent := 0
	if f, ok := ui.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		terminalWidth, _, err := term.GetSize(int(f.Fd()))
		if err == nil {
			blockWidth := 0
			for _, line := range strings.Split(block, "\n") {
				blockWidth = max(blockWidth, displayWidth(line))
			}
			indent = max((terminalWidth-blockWidth)/2, 0)
		}
	}
	for _, line := range strings.Split(block, "\n") {
		ui.printf("%s%s\n", strings.Repeat(" ", indent), line)
	}
}

func (ui *UI) renderCell(c state.Cell) string {
	switch c {
	case state.X:
		if ui.color {
			return ui.xStyle.Render("X")
		}
	case state.O:
		if ui.color {
			return ui.oStyle.Render("O")
		}
	}
	return c.String()
}

func (ui *UI) renderGrid(cell func(pos int) string) string {
	var sb strings.Builder
	for row := range state.BoardSide {
		if row > 0 {
			sb.WriteString("\n-----\n")
		}
		for col := range state.BoardSide {
			if col > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(cell(row*state.BoardSide + col))
		}
	}
	return sb.String()
}

// PrintBoard prints the board, empty cells are left blank.
func (ui *UI) PrintBoard(board *state.Board) {
	ui.printCentered(ui.renderGrid(func(pos int) string { return ui.renderCell(board[pos]) }))
}

// PrintLegend prints the position numbers used to enter a move.
func (ui *UI) PrintLegend() {
	grid := ui.renderGrid(strconv.Itoa)
	if ui.color {
		grid = ui.legendStyle.Render(grid)
	}
	ui.printCentered(grid)
}

// PrintInstructions explains how to play.
func (ui *UI) PrintInstructions(human state.Cell) {
	ui.printf("\nHow to play.\nEnter the number from 0 to 8 to place your move\nGame locations\n")
	ui.PrintLegend()
	ui.printf("Player is %s, AI is %s\n", human, human.Opponent())
}

// ReadMove reads a position from the input until a valid move for board is given.
// Invalid input is reported and the player is asked again. It only returns an error if reading
// fails, io.EOF when the input is closed.
func (ui *UI) ReadMove(board *state.Board) (int, error) {
	for {
		ui.printf("Location (0 to 8): ")
		text, err := ui.reader.ReadString('\n')
		text = strings.TrimSpace(text)
		if err != nil && (err != io.EOF || text == "") {
			return -1, err
		}
		pos, parseErr := strconv.Atoi(text)
		if parseErr == nil && board.IsValid(pos) {
			return pos, nil
		}
		if parseErr != nil {
			ui.printf("Invalid Location %q, please enter a number\n", text)
		} else {
			ui.printf("Invalid Location %d\n", pos)
		}
		ui.printf("Here is the board\n")
		ui.PrintLegend()
		if err == io.EOF {
			return -1, err
		}
	}
}

// PrintWinner prints the result of a finished game.
func (ui *UI) PrintWinner(outcome state.Outcome) {
	var msg string
	switch outcome.Status {
	case state.Win:
		msg = fmt.Sprintf("%s's won", outcome.Winner)
	case state.Draw:
		msg = "It was a draw"
	default:
		msg = "Game not finished"
	}
	if ui.color {
		msg = lipgloss.NewStyle().
			Background(lipgloss.Color("13")).
			Foreground(lipgloss.Color("0")).
			Padding(1, 2).
			Render(msg)
	}
	ui.printf("\n")
	ui.printCentered(msg)
	ui.printf("\n")
}

// PlayMatch plays one game of a human (the opponent of the aiPlayer's mark) against aiPlayer,
// starting with first, and returns the final outcome.
func (ui *UI) PlayMatch(aiPlayer players.Player, first state.Cell) (outcome state.Outcome, err error) {
	board := state.NewBoard()
	human := aiPlayer.Mark().Opponent()
	turn := first
	for outcome = board.Classify(); outcome.Status == state.InProgress; outcome = board.Classify() {
		var pos int
		if turn == human {
			ui.printf("Player's turn\n")
			pos, err = ui.ReadMove(board)
			if err != nil {
				return
			}
		} else {
			ui.printf("AI's turn\n")
			err = exceptions.TryCatch[error](func() { pos = aiPlayer.Play(board) })
			if err != nil {
				err = errors.WithMessagef(err, "%s failed to play", aiPlayer)
				return
			}
		}
		board.Act(pos, turn)
		ui.PrintBoard(board)
		turn = turn.Opponent()
	}
	ui.PrintWinner(outcome)
	return
}
