package domain

import "iter"

// Window is a run of ToWin consecutive cells along one line.
type Window [ToWin]PlayerID

// direction is a (row, column) step. Only the four forward directions are
// listed; the opposite ones cover the same lines.
type direction struct {
	dRow, dCol int
}

var directions = [...]direction{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal /
	{-1, 1}, // diagonal \
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}

// Windows yields every window on the board: each horizontal, vertical and
// diagonal run of four cells, once. The sequence can be ranged over any
// number of times and reads the board lazily.
func Windows(b *Board) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		for _, d := range directions {
			for row := 0; row < Rows; row++ {
				for col := 0; col < Columns; col++ {
					endRow := row + d.dRow*(ToWin-1)
					endCol := col + d.dCol*(ToWin-1)
					if !inBounds(endRow, endCol) {
						continue
					}
					var w Window
					for i := 0; i < ToWin; i++ {
						w[i] = b[row+d.dRow*i][col+d.dCol*i]
					}
					if !yield(w) {
						return
					}
				}
			}
		}
	}
}

// HasFourInRow scans the whole board for four of player's pieces in a line.
func HasFourInRow(b *Board, player PlayerID) bool {
	for _, d := range directions {
		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				if !inBounds(row+d.dRow*(ToWin-1), col+d.dCol*(ToWin-1)) {
					continue
				}
				i := 0
				for i < ToWin && b[row+d.dRow*i][col+d.dCol*i] == player {
					i++
				}
				if i == ToWin {
					return true
				}
			}
		}
	}
	return false
}

// CheckWin only looks at the lines through (row, column), which makes it
// the cheap test right after a piece has been placed there.
func CheckWin(b *Board, row, column int, player PlayerID) bool {
	if b[row][column] != player {
		return false
	}
	for _, d := range directions {
		count := 1 + countInDirection(b, row, column, d.dRow, d.dCol, player) +
			countInDirection(b, row, column, -d.dRow, -d.dCol, player)
		if count >= ToWin {
			return true
		}
	}
	return false
}

// counts the player's pieces next to (row, col) along one direction
func countInDirection(b *Board, row, col, dRow, dCol int, player PlayerID) int {
	count := 0
	r, c := row+dRow, col+dCol
	for inBounds(r, c) && b[r][c] == player {
		count++
		r += dRow
		c += dCol
	}
	return count
}

// IsTerminal is true once either side has four in a row or the board is full.
func IsTerminal(b *Board) bool {
	return HasFourInRow(b, Player) || HasFourInRow(b, Opponent) || b.IsFull()
}

// CheckOutcome classifies the board. A hand-built board where both sides
// own a line reports Player as the winner.
func CheckOutcome(b *Board) Outcome {
	switch {
	case HasFourInRow(b, Player):
		return Outcome{Status: StatusWon, Winner: Player}
	case HasFourInRow(b, Opponent):
		return Outcome{Status: StatusWon, Winner: Opponent}
	case b.IsFull():
		return Outcome{Status: StatusDraw, Winner: Empty}
	}
	return Outcome{Status: StatusActive, Winner: Empty}
}
