package domain

import (
	"errors"
	"testing"
)

func TestGameAlternatesTurns(t *testing.T) {
	g := NewGame(Player)

	if _, err := g.MakeMove(Opponent, 0); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove when moving out of turn, got %v", err)
	}

	row, err := g.MakeMove(Player, 3)
	if err != nil || row != 0 {
		t.Fatalf("expected row 0, got %d, %v", row, err)
	}
	if g.CurrentPlayer != Opponent {
		t.Fatalf("expected opponent to move next")
	}
	if g.MoveCount != 1 || len(g.Moves) != 1 || g.Moves[0] != (Move{Player: Player, Column: 3, Row: 0}) {
		t.Fatalf("move not recorded: %+v", g.Moves)
	}
}

func TestGameDetectsWin(t *testing.T) {
	g := NewGame(Player)
	// player stacks column 0, opponent column 1
	for i := 0; i < 3; i++ {
		mustMove(t, g, Player, 0)
		mustMove(t, g, Opponent, 1)
	}
	mustMove(t, g, Player, 0)

	if g.Status != StatusWon || g.Winner != Player {
		t.Fatalf("expected player to win, got %+v", g.Outcome())
	}
	if !g.IsFinished() {
		t.Fatalf("won game should be finished")
	}
	if _, err := g.MakeMove(Opponent, 2); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove after the end, got %v", err)
	}
}

func TestGameDetectsDraw(t *testing.T) {
	target := mustParse(t, drawnBoard)

	// one open cell left: the last move fills the board without a line
	g := NewGame(Player)
	g.Board = target
	g.Board[Rows-1][6] = Empty
	g.CurrentPlayer = target[Rows-1][6]

	if _, err := g.MakeMove(g.CurrentPlayer, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Status != StatusDraw || g.Winner != Empty {
		t.Fatalf("expected a draw, got %+v", g.Outcome())
	}
	if g.Board != target {
		t.Fatalf("final board differs from the drawn position")
	}
}

func TestGameColumnFull(t *testing.T) {
	g := NewGame(Opponent)
	side := Opponent
	for i := 0; i < Rows; i++ {
		mustMove(t, g, side, 2)
		side = side.Other()
	}
	if _, err := g.MakeMove(side, 2); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
	if _, err := g.MakeMove(side, -1); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
}

func mustMove(t *testing.T, g *Game, p PlayerID, col int) {
	t.Helper()
	if _, err := g.MakeMove(p, col); err != nil {
		t.Fatalf("%s column %d: %v", p, col, err)
	}
}
