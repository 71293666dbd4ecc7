package domain

import (
	"math/rand"
	"testing"
)

func mustParse(t *testing.T, s string) Board {
	t.Helper()
	b, err := ParseBoard(s)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	return b
}

func TestHasFourInRowEveryOrientationAndOffset(t *testing.T) {
	for _, d := range directions {
		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				if !inBounds(row+3*d.dRow, col+3*d.dCol) {
					continue
				}
				for _, side := range []PlayerID{Player, Opponent} {
					var b Board
					for i := 0; i < ToWin; i++ {
						b[row+i*d.dRow][col+i*d.dCol] = side
					}
					if !HasFourInRow(&b, side) {
						t.Fatalf("direction %+v from (%d,%d): expected a win for %s", d, row, col, side)
					}
					if HasFourInRow(&b, side.Other()) {
						t.Fatalf("direction %+v from (%d,%d): unexpected win for %s", d, row, col, side.Other())
					}
				}
			}
		}
	}
}

func TestHasFourInRowNoFalsePositives(t *testing.T) {
	tests := []struct {
		name  string
		board string
	}{
		{"horizontal gap", `
.......
.......
.......
.......
.......
XXX.XXX`},
		{"horizontal blocked", `
.......
.......
.......
.......
.......
XXXOXXX`},
		{"vertical blocked", `
.......
...X...
...O...
...X...
...X...
...X...`},
		{"diagonal broken", `
.......
.......
...O...
..XO...
.XXO...
XOOX...`},
		{"three of each", `
.......
.......
.......
O......
OX.....
OXX....`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.board)
			if HasFourInRow(&b, Player) || HasFourInRow(&b, Opponent) {
				t.Fatalf("unexpected win on\n%s", b.Picture())
			}
			if IsTerminal(&b) {
				t.Fatalf("board should not be terminal")
			}
		})
	}
}

func TestCheckWinMatchesFullScan(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for game := 0; game < 300; game++ {
		b := NewBoard()
		turn := Player
		for !IsTerminal(&b) {
			moves := b.ValidMoves()
			col := moves[rng.Intn(len(moves))]
			row, err := b.Place(col, turn)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			local := CheckWin(&b, row, col, turn)
			full := HasFourInRow(&b, turn)
			if local != full {
				t.Fatalf("CheckWin=%v but HasFourInRow=%v after %s played column %d:\n%s",
					local, full, turn, col, b.Picture())
			}
			turn = turn.Other()
		}
	}
}

func TestTerminalImpliesNoMovesOrWin(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for game := 0; game < 300; game++ {
		b := NewBoard()
		turn := Player
		for len(b.ValidMoves()) > 0 {
			moves := b.ValidMoves()
			b.Place(moves[rng.Intn(len(moves))], turn)
			turn = turn.Other()

			if IsTerminal(&b) {
				if len(b.ValidMoves()) != 0 && !HasFourInRow(&b, Player) && !HasFourInRow(&b, Opponent) {
					t.Fatalf("terminal board with moves and no winner:\n%s", b.Picture())
				}
			}
		}
	}
}

func TestWindowsCoverEveryLineOnce(t *testing.T) {
	b := NewBoard()
	count := 0
	for range Windows(&b) {
		count++
	}
	// 24 horizontal + 21 vertical + 12 + 12 diagonal
	if count != 69 {
		t.Fatalf("expected 69 windows, got %d", count)
	}

	// restartable: a second pass sees the same number
	again := 0
	for range Windows(&b) {
		again++
	}
	if again != count {
		t.Fatalf("second pass yielded %d windows, first %d", again, count)
	}

	// stopping early is honoured
	seen := 0
	for range Windows(&b) {
		seen++
		if seen == 3 {
			break
		}
	}
	if seen != 3 {
		t.Fatalf("expected to stop after 3 windows, got %d", seen)
	}
}

func TestWindowsThroughCorner(t *testing.T) {
	var b Board
	b[0][0] = Player
	hits := 0
	for w := range Windows(&b) {
		for _, cell := range w {
			if cell == Player {
				hits++
			}
		}
	}
	// the corner lies on one horizontal, one vertical and one diagonal window
	if hits != 3 {
		t.Fatalf("expected the corner in 3 windows, got %d", hits)
	}
}

func TestCheckOutcome(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  Outcome
	}{
		{"ongoing", `
.......
.......
.......
.......
.......
...X...`, Outcome{Status: StatusActive}},
		{"player wins", `
.......
.......
X......
X......
XO.....
XOO....`, Outcome{Status: StatusWon, Winner: Player}},
		{"opponent wins diagonal", `
.......
.......
...O...
..OX...
.OXX...
OXXX...`, Outcome{Status: StatusWon, Winner: Opponent}},
		{"draw", drawnBoard, Outcome{Status: StatusDraw}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.board)
			if got := CheckOutcome(&b); got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestDrawnBoardIsTerminal(t *testing.T) {
	b := mustParse(t, drawnBoard)
	if !b.IsFull() || len(b.ValidMoves()) != 0 {
		t.Fatalf("expected a full board")
	}
	if !IsTerminal(&b) {
		t.Fatalf("full board must be terminal")
	}
}
