package bot

import (
	"github.com/iamasit07/connect4-ai/internal/domain"
)

const (
	// Window scores. These are the engine's personality: blocking an
	// opponent three is worth less than building an own three.
	SCORE_FOUR           = 100
	SCORE_THREE_OPEN     = 5
	SCORE_TWO_OPEN       = 2
	SCORE_OPP_THREE_OPEN = -4
)

// ScoreWindow rates a single window from player's point of view.
func ScoreWindow(w domain.Window, player domain.PlayerID) int {
	opponent := player.Other()
	own, opp, empty := 0, 0, 0
	for _, cell := range w {
		switch cell {
		case player:
			own++
		case opponent:
			opp++
		default:
			empty++
		}
	}

	switch {
	case own == 4:
		return SCORE_FOUR
	case own == 3 && empty == 1:
		return SCORE_THREE_OPEN
	case own == 2 && empty == 2:
		return SCORE_TWO_OPEN
	case opp == 3 && empty == 1:
		return SCORE_OPP_THREE_OPEN
	}
	return 0
}

// ScoreBoard sums ScoreWindow over every window of the board. There is no
// positional weighting.
func ScoreBoard(board *domain.Board, player domain.PlayerID) int {
	score := 0
	for w := range domain.Windows(board) {
		score += ScoreWindow(w, player)
	}
	return score
}
