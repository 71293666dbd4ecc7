package bot

import (
	"math/rand"

	"github.com/iamasit07/connect4-ai/internal/domain"
)

// WinningMove returns the lowest column where a single drop by player wins
// on the spot. It agrees with a depth-1 first-best search whenever such a
// column exists.
func WinningMove(board *domain.Board, player domain.PlayerID) (int, bool) {
	for _, col := range board.ValidMoves() {
		testBoard, row, _ := board.Simulate(col, player)
		if domain.CheckWin(&testBoard, row, col, player) {
			return col, true
		}
	}
	return domain.NoColumn, false
}

// GreedyMove scores the board after each possible drop and keeps the best
// one, without looking at the reply. With a nil rng ties go to the lowest
// column, otherwise they are broken uniformly.
func GreedyMove(board *domain.Board, player domain.PlayerID, rng *rand.Rand) (int, int) {
	validColumns := board.ValidMoves()
	if len(validColumns) == 0 {
		return domain.NoColumn, 0
	}

	bestCol := domain.NoColumn
	bestScore := 0
	ties := 0
	for _, col := range validColumns {
		testBoard, _, _ := board.Simulate(col, player)
		score := ScoreBoard(&testBoard, player)
		switch {
		case bestCol == domain.NoColumn || score > bestScore:
			bestCol, bestScore, ties = col, score, 1
		case score == bestScore && rng != nil:
			ties++
			if rng.Intn(ties) == 0 {
				bestCol = col
			}
		}
	}
	return bestCol, bestScore
}

// CalculateBestMoveEasy takes an immediate win when there is one and
// otherwise plays the greedy move.
func CalculateBestMoveEasy(board *domain.Board, botPlayer domain.PlayerID, rng *rand.Rand) SearchResult {
	if col, ok := WinningMove(board, botPlayer); ok {
		return SearchResult{Column: col, Score: MINIMAX_WIN, Depth: 1, Complete: true}
	}
	col, score := GreedyMove(board, botPlayer, rng)
	return SearchResult{Column: col, Score: int64(score), Depth: 1, Complete: true}
}
