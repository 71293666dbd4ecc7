package bot

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/connect4-ai/internal/domain"
)

// DEFAULT_DEPTH is the real-time search depth.
const DEFAULT_DEPTH = 4

// DEFAULT_MAX_DEPTH caps the depth a caller may ask for.
const DEFAULT_MAX_DEPTH = 8

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var botNames = map[Difficulty]string{
	Easy:   "Alice",
	Medium: "Bob",
	Hard:   "Charles",
}

// ParseDifficulty falls back to Medium for anything it does not recognise.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s)
	}
	return Medium
}

func (d Difficulty) BotName() string {
	if name, ok := botNames[d]; ok {
		return name
	}
	return "BOT"
}

type Options struct {
	Depth      int
	MaxDepth   int // deepest search BestMove accepts, never below Depth
	TieBreak   TieBreak
	Seed       int64
	Timeout    time.Duration
	NodeBudget int64
}

// Engine picks moves. It is safe for concurrent use: every call gets its
// own Searcher, and the random source is only touched to seed it.
type Engine struct {
	opts Options

	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(opts Options) *Engine {
	if opts.Depth < 1 {
		opts.Depth = DEFAULT_DEPTH
	}
	if opts.MaxDepth < 1 {
		opts.MaxDepth = DEFAULT_MAX_DEPTH
	}
	opts.MaxDepth = max(opts.MaxDepth, opts.Depth)
	return &Engine{
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
	}
}

func (e *Engine) Options() Options {
	return e.opts
}

// Deterministic reports whether equal inputs always produce the same move.
func (e *Engine) Deterministic() bool {
	return e.opts.TieBreak == TieBreakFirst
}

func (e *Engine) bounded() bool {
	return e.opts.Timeout > 0 || e.opts.NodeBudget > 0
}

func (e *Engine) newRand() *rand.Rand {
	if e.opts.TieBreak != TieBreakRandom {
		return nil
	}
	e.mu.Lock()
	seed := e.rng.Int63()
	e.mu.Unlock()
	return rand.New(rand.NewSource(seed))
}

// BestMove searches depth plies for side. The board is taken by value and
// never changed.
func (e *Engine) BestMove(ctx context.Context, board domain.Board, side domain.PlayerID, depth int) (SearchResult, error) {
	if !side.IsSide() {
		return SearchResult{Column: domain.NoColumn}, domain.ErrInvalidSide
	}
	if depth < 1 {
		return SearchResult{Column: domain.NoColumn}, domain.ErrInvalidDepth
	}
	if depth > e.opts.MaxDepth {
		return SearchResult{Column: domain.NoColumn},
			fmt.Errorf("%w: %d is deeper than the limit of %d", domain.ErrInvalidDepth, depth, e.opts.MaxDepth)
	}
	if domain.IsTerminal(&board) {
		return SearchResult{Column: domain.NoColumn}, domain.ErrNoLegalMoves
	}

	rng := e.newRand()

	// one ply: the immediate-win scan is the same answer, cheaper
	if depth == 1 && rng == nil {
		if col, ok := WinningMove(&board, side); ok {
			res := SearchResult{Column: col, Score: MINIMAX_WIN, Depth: 1, Nodes: 1, Complete: true}
			reportProgress(ctx, res)
			return res, nil
		}
	}

	searcher := NewSearcher(side, e.opts.TieBreak, rng)

	if !e.bounded() {
		res := searcher.Search(ctx, board, depth, NEG_INF, POS_INF, true)
		reportProgress(ctx, res)
		return res, nil
	}

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}
	return e.deepen(ctx, searcher, board, depth), nil
}

// deepen searches depth 1, 2, ... and keeps the deepest iteration that
// finished inside the budget. The first iteration is returned even when it
// was cut short, so a legal column always comes back.
func (e *Engine) deepen(ctx context.Context, searcher *Searcher, board domain.Board, depth int) SearchResult {
	var best SearchResult
	var spent int64

	for d := 1; d <= depth; d++ {
		if e.opts.NodeBudget > 0 {
			searcher.NodeBudget = max(e.opts.NodeBudget-spent, 1)
		}
		res := searcher.Search(ctx, board, d, NEG_INF, POS_INF, true)
		spent += res.Nodes

		if d == 1 || res.Complete {
			best = res
			best.Nodes = spent
			reportProgress(ctx, best)
		}
		if !res.Complete {
			break
		}
		// a proven result does not change with more depth
		if res.Score == MINIMAX_WIN || res.Score == MINIMAX_LOSS {
			break
		}
	}
	best.Nodes = spent
	return best
}

// MoveFor plays at the given difficulty: easy is the one-ply greedy bot,
// medium searches two plies and hard uses the configured depth.
func (e *Engine) MoveFor(ctx context.Context, board domain.Board, side domain.PlayerID, difficulty Difficulty) (SearchResult, error) {
	switch difficulty {
	case Easy:
		if !side.IsSide() {
			return SearchResult{Column: domain.NoColumn}, domain.ErrInvalidSide
		}
		if domain.IsTerminal(&board) {
			return SearchResult{Column: domain.NoColumn}, domain.ErrNoLegalMoves
		}
		return CalculateBestMoveEasy(&board, side, e.newRand()), nil
	case Medium:
		return e.BestMove(ctx, board, side, min(2, e.opts.Depth))
	default:
		return e.BestMove(ctx, board, side, e.opts.Depth)
	}
}

type progressKey struct{}

// ProgressFunc receives every finished search iteration, shallowest first.
type ProgressFunc func(SearchResult)

// WithProgress makes BestMove report each finished iteration to fn. Without
// a time or node budget there is a single iteration at the full depth.
func WithProgress(ctx context.Context, fn ProgressFunc) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

func reportProgress(ctx context.Context, res SearchResult) {
	if ctx == nil {
		return
	}
	if fn, ok := ctx.Value(progressKey{}).(ProgressFunc); ok && fn != nil {
		fn(res)
	}
}
