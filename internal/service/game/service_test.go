package game

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/repository/memory"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
)

const drawnPicture = `
XOXOXOO
XOOOXXO
XXOXOXO
OXOOXXX
OXXOXOX
XOOOXOX`

func mustParse(t *testing.T, s string) domain.Board {
	t.Helper()
	b, err := domain.ParseBoard(s)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	return b
}

func newTestService(cache CacheRepository, tieBreak bot.TieBreak) *Service {
	engine := bot.NewEngine(bot.Options{Depth: 2, TieBreak: tieBreak, Seed: 1})
	return NewService(engine, cache, time.Hour)
}

func TestApplyMove(t *testing.T) {
	s := newTestService(nil, bot.TieBreakFirst)
	b := domain.NewBoard()

	for want := 0; want < domain.Rows; want++ {
		row, err := s.ApplyMove(&b, 4, domain.Player)
		if err != nil || row != want {
			t.Fatalf("drop %d: expected row %d, got %d, %v", want, want, row, err)
		}
	}

	tests := []struct {
		name   string
		column int
		side   domain.PlayerID
		want   error
	}{
		{"full column", 4, domain.Opponent, domain.ErrColumnFull},
		{"left of board", -1, domain.Opponent, domain.ErrInvalidColumn},
		{"right of board", domain.Columns, domain.Opponent, domain.ErrInvalidColumn},
		{"no side", 0, domain.Empty, domain.ErrInvalidSide},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := b
			if _, err := s.ApplyMove(&b, tt.column, tt.side); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if b != before {
				t.Fatalf("a rejected move changed the board")
			}
		})
	}
}

func TestCheckOutcome(t *testing.T) {
	s := newTestService(nil, bot.TieBreakFirst)
	if got := s.CheckOutcome(domain.NewBoard()); got.Status != domain.StatusActive {
		t.Fatalf("expected an active game, got %+v", got)
	}
	if got := s.CheckOutcome(mustParse(t, drawnPicture)); got.Status != domain.StatusDraw || got.Winner != domain.Empty {
		t.Fatalf("expected a draw, got %+v", got)
	}
	won := mustParse(t, `
.......
.......
.......
.......
OOOO...
XXXOXX.`)
	if got := s.CheckOutcome(won); got.Status != domain.StatusWon || got.Winner != domain.Opponent {
		t.Fatalf("expected the opponent to win, got %+v", got)
	}
}

func TestRequestMove(t *testing.T) {
	s := newTestService(nil, bot.TieBreakFirst)

	b := mustParse(t, `
.......
.......
.......
.......
.......
OOO....`)
	before := b
	col, err := s.RequestMove(context.Background(), b, domain.Opponent, 4)
	if err != nil || col != 3 {
		t.Fatalf("expected column 3, got %d, %v", col, err)
	}
	if b != before {
		t.Fatalf("RequestMove changed the board")
	}

	if _, err := s.RequestMove(context.Background(), mustParse(t, drawnPicture), domain.Player, 4); !errors.Is(err, domain.ErrNoLegalMoves) {
		t.Fatalf("expected ErrNoLegalMoves, got %v", err)
	}
	if _, err := s.RequestMove(context.Background(), b, domain.Opponent, 0); !errors.Is(err, domain.ErrInvalidDepth) {
		t.Fatalf("expected ErrInvalidDepth, got %v", err)
	}
}

func TestAnalyzeCachesDeterministicResults(t *testing.T) {
	cache := memory.NewCache()
	s := newTestService(cache, bot.TieBreakFirst)
	b := domain.NewBoard()

	first, err := s.Analyze(context.Background(), b, domain.Player, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one cached result, got %d", cache.Len())
	}

	second, err := s.Analyze(context.Background(), b, domain.Player, 3)
	if err != nil || second != first {
		t.Fatalf("cached result %+v differs from %+v (%v)", second, first, err)
	}

	// an entry under the key is served without searching
	planted := bot.SearchResult{Column: 5, Score: 42, Depth: 2, Nodes: 1, Complete: true}
	data, _ := json.Marshal(planted)
	key := moveCacheKey(b, domain.Opponent, 2)
	if err := cache.Set(context.Background(), key, string(data), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Analyze(context.Background(), b, domain.Opponent, 2)
	if err != nil || got != planted {
		t.Fatalf("expected the planted result, got %+v, %v", got, err)
	}
}

func TestAnalyzeDropsUnreadableEntry(t *testing.T) {
	cache := memory.NewCache()
	s := newTestService(cache, bot.TieBreakFirst)
	b := domain.NewBoard()
	key := moveCacheKey(b, domain.Player, 2)
	cache.Set(context.Background(), key, "not json", time.Hour)

	res, err := s.Analyze(context.Background(), b, domain.Player, 2)
	if err != nil || res.Column < 0 {
		t.Fatalf("expected a fresh search, got %+v, %v", res, err)
	}
	raw, err := cache.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("expected the entry to be rewritten: %v", err)
	}
	var stored bot.SearchResult
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored != res {
		t.Fatalf("stored %q, want %+v", raw, res)
	}
}

func TestAnalyzeSkipsCacheForRandomTieBreak(t *testing.T) {
	cache := memory.NewCache()
	s := newTestService(cache, bot.TieBreakRandom)
	if _, err := s.Analyze(context.Background(), domain.NewBoard(), domain.Player, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.Len() != 0 {
		t.Fatalf("random tie-break results must not be cached, got %d entries", cache.Len())
	}
}

func TestMoveCacheKeyDistinguishesInputs(t *testing.T) {
	b := domain.NewBoard()
	keys := map[string]bool{
		moveCacheKey(b, domain.Player, 2):   true,
		moveCacheKey(b, domain.Opponent, 2): true,
		moveCacheKey(b, domain.Player, 3):   true,
	}
	b.Place(0, domain.Player)
	keys[moveCacheKey(b, domain.Player, 2)] = true
	if len(keys) != 4 {
		t.Fatalf("expected four distinct keys, got %v", keys)
	}
}
