package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
)

// Gateway is everything a presentation shell needs from the engine.
type Gateway interface {
	// RequestMove returns the engine's column for side. board is not modified.
	RequestMove(ctx context.Context, board domain.Board, side domain.PlayerID, depth int) (int, error)
	// ApplyMove drops side's piece into column and returns the row it landed on.
	ApplyMove(board *domain.Board, column int, side domain.PlayerID) (int, error)
	CheckOutcome(board domain.Board) domain.Outcome
}

// CacheRepository is the key-value store used to remember search results.
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type Service struct {
	Engine   *bot.Engine
	Cache    CacheRepository
	CacheTTL time.Duration
}

var _ Gateway = (*Service)(nil)

// NewService wires the engine to an optional cache; cache may be nil.
func NewService(engine *bot.Engine, cache CacheRepository, cacheTTL time.Duration) *Service {
	return &Service{
		Engine:   engine,
		Cache:    cache,
		CacheTTL: cacheTTL,
	}
}

func (s *Service) RequestMove(ctx context.Context, board domain.Board, side domain.PlayerID, depth int) (int, error) {
	res, err := s.Analyze(ctx, board, side, depth)
	if err != nil {
		return domain.NoColumn, err
	}
	return res.Column, nil
}

// Analyze is RequestMove with the score and search statistics attached.
func (s *Service) Analyze(ctx context.Context, board domain.Board, side domain.PlayerID, depth int) (bot.SearchResult, error) {
	cacheable := s.Cache != nil && s.Engine.Deterministic()
	key := moveCacheKey(board, side, depth)

	if cacheable {
		if res, ok := s.lookup(ctx, key); ok {
			return res, nil
		}
	}

	res, err := s.Engine.BestMove(ctx, board, side, depth)
	if err != nil {
		return res, err
	}

	// a bounded engine may return a shallower iteration; that is not the
	// answer for this depth
	if cacheable && res.Complete && res.Depth == depth {
		s.store(ctx, key, res)
	}
	return res, nil
}

// PlayFor asks the engine for a move at a difficulty level. Only the hard
// level goes through the cache, since it is the one that searches deep.
func (s *Service) PlayFor(ctx context.Context, board domain.Board, side domain.PlayerID, difficulty bot.Difficulty) (bot.SearchResult, error) {
	if difficulty == bot.Hard {
		return s.Analyze(ctx, board, side, s.Engine.Options().Depth)
	}
	return s.Engine.MoveFor(ctx, board, side, difficulty)
}

func (s *Service) ApplyMove(board *domain.Board, column int, side domain.PlayerID) (int, error) {
	if !side.IsSide() {
		return -1, domain.ErrInvalidSide
	}
	valid, err := board.IsValidColumn(column)
	if err != nil {
		return -1, err
	}
	if !valid {
		return -1, domain.ErrColumnFull
	}
	return board.Place(column, side)
}

func (s *Service) CheckOutcome(board domain.Board) domain.Outcome {
	return domain.CheckOutcome(&board)
}

func moveCacheKey(board domain.Board, side domain.PlayerID, depth int) string {
	return fmt.Sprintf("move:%d:%d:%s", side, depth, board.String())
}

func (s *Service) lookup(ctx context.Context, key string) (bot.SearchResult, bool) {
	raw, err := s.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			log.Printf("[CACHE] Error reading %s: %v", key, err)
		}
		return bot.SearchResult{}, false
	}

	var res bot.SearchResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		log.Printf("[CACHE] Dropping unreadable entry %s: %v", key, err)
		_ = s.Cache.Del(ctx, key)
		return bot.SearchResult{}, false
	}
	return res, true
}

func (s *Service) store(ctx context.Context, key string, res bot.SearchResult) {
	data, err := json.Marshal(res)
	if err != nil {
		log.Printf("[CACHE] Error encoding %s: %v", key, err)
		return
	}
	if err := s.Cache.Set(ctx, key, string(data), s.CacheTTL); err != nil {
		log.Printf("[CACHE] Error writing %s: %v", key, err)
	}
}
