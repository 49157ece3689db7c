// Package statetest provides helper functions to create tests using tic-tac-toe boards.
package statetest

import (
	"github.com/janpfeifer/must"
	. "github.com/janpfeifer/tttGo/internal/state"
)

// BuildBoard from a layout string, see state.ParseBoard. It panics on invalid layouts.
func BuildBoard(layout string) *Board {
	return must.M1(ParseBoard(layout))
}

// ReachableBoards enumerates every board reachable by alternating play from the empty board,
// with either mark moving first. Play stops at finished boards.
func ReachableBoards() []*Board {
	type node struct {
		board Board
		next  Cell
	}
	visited := make(map[node]bool)
	collected := make(map[Board]bool)
	var boards []*Board
	var visit func(b *Board, next Cell)
	visit = func(b *Board, next Cell) {
		if visited[node{*b, next}] {
			return
		}
		visited[node{*b, next}] = true
		if !collected[*b] {
			collected[*b] = true
			boards = append(boards, b.Clone())
		}
		if b.IsFinished() {
			return
		}
		for _, pos := range b.ValidActions() {
			b.Act(pos, next)
			visit(b, next.Opponent())
			b.Act(pos, Empty)
		}
	}
	visit(NewBoard(), X)
	visit(NewBoard(), O)
	return boards
}
