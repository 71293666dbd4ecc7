package bot

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/iamasit07/connect4-ai/internal/domain"
)

const (
	MINIMAX_WIN  int64 = 100_000_000_000_000
	MINIMAX_LOSS int64 = -MINIMAX_WIN
	MINIMAX_DRAW int64 = 0

	// Bounds for a full alpha-beta window.
	NEG_INF int64 = math.MinInt64
	POS_INF int64 = math.MaxInt64

	// how often the context is polled, in nodes (power of two)
	ctxPollInterval = 256
)

// TieBreak decides between root columns that score the same.
type TieBreak int

const (
	// TieBreakFirst keeps the lowest column reaching the best score.
	TieBreakFirst TieBreak = iota
	// TieBreakRandom picks uniformly among the best root columns.
	TieBreakRandom
)

func (t TieBreak) String() string {
	if t == TieBreakRandom {
		return "random"
	}
	return "first"
}

func ParseTieBreak(s string) (TieBreak, error) {
	switch s {
	case "", "first", "deterministic":
		return TieBreakFirst, nil
	case "random":
		return TieBreakRandom, nil
	}
	return TieBreakFirst, fmt.Errorf("unknown tie-break policy %q", s)
}

// SearchResult is the outcome of one search. Column is domain.NoColumn only
// when the searched board had no legal move.
type SearchResult struct {
	Column   int   `json:"column"`
	Score    int64 `json:"score"`
	Depth    int   `json:"depth"`
	Nodes    int64 `json:"nodes"`
	Complete bool  `json:"complete"`
}

// Searcher runs depth-limited minimax with alpha-beta pruning from Side's
// point of view: Side maximizes, Side.Other() minimizes. A Searcher is not
// safe for concurrent use.
type Searcher struct {
	Side     domain.PlayerID
	TieBreak TieBreak
	Rand     *rand.Rand
	// NodeBudget caps the nodes visited by one Search; 0 means no cap.
	NodeBudget int64

	ctx     context.Context
	nodes   int64
	stopped bool
}

func NewSearcher(side domain.PlayerID, tieBreak TieBreak, rng *rand.Rand) *Searcher {
	if rng == nil && tieBreak == TieBreakRandom {
		rng = rand.New(rand.NewSource(1))
	}
	return &Searcher{Side: side, TieBreak: tieBreak, Rand: rng}
}

// Search never mutates board. Once the context is done or the node budget is
// spent, the remaining nodes are scored statically and the result is marked
// incomplete.
func (s *Searcher) Search(ctx context.Context, board domain.Board, depth int, alpha, beta int64, maximizing bool) SearchResult {
	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx = ctx
	s.nodes = 0
	s.stopped = false

	column, score := s.minimax(&board, depth, alpha, beta, maximizing, true)
	return SearchResult{
		Column:   column,
		Score:    score,
		Depth:    depth,
		Nodes:    s.nodes,
		Complete: !s.stopped,
	}
}

func (s *Searcher) exhausted() bool {
	if s.stopped {
		return true
	}
	if s.NodeBudget > 0 && s.nodes > s.NodeBudget {
		s.stopped = true
	} else if s.nodes%ctxPollInterval == 0 && s.ctx.Err() != nil {
		s.stopped = true
	}
	return s.stopped
}

func (s *Searcher) minimax(board *domain.Board, depth int, alpha, beta int64, maximizing, root bool) (int, int64) {
	s.nodes++

	validMoves := board.ValidMoves()
	maxWins := domain.HasFourInRow(board, s.Side)
	minWins := domain.HasFourInRow(board, s.Side.Other())
	terminal := maxWins || minWins || len(validMoves) == 0

	if terminal {
		switch {
		case maxWins:
			return domain.NoColumn, MINIMAX_WIN
		case minWins:
			return domain.NoColumn, MINIMAX_LOSS
		default:
			return domain.NoColumn, MINIMAX_DRAW
		}
	}
	// an exhausted budget turns every remaining node into a leaf, but the
	// root still walks its columns so a move always comes back
	if (!root && s.exhausted()) || depth <= 0 {
		return domain.NoColumn, int64(ScoreBoard(board, s.Side))
	}

	randomRoot := root && s.TieBreak == TieBreakRandom && s.Rand != nil
	bestCol := domain.NoColumn
	ties := 0

	if maximizing {
		value := NEG_INF
		for _, col := range validMoves {
			child, _, _ := board.Simulate(col, s.Side)

			// widen the window by one below the best so far so an equal
			// sibling comes back exact instead of as a fail-low bound
			childAlpha := alpha
			if randomRoot && bestCol != domain.NoColumn {
				childAlpha = min(alpha, value-1)
			}

			_, score := s.minimax(&child, depth-1, childAlpha, beta, false, false)
			if score > value {
				value = score
				bestCol = col
				ties = 1
			} else if score == value && randomRoot {
				ties++
				if s.Rand.Intn(ties) == 0 {
					bestCol = col
				}
			}

			alpha = max(alpha, value)
			if alpha >= beta || (s.stopped && !root) {
				break
			}
		}
		return bestCol, value
	}

	value := POS_INF
	for _, col := range validMoves {
		child, _, _ := board.Simulate(col, s.Side.Other())

		childBeta := beta
		if randomRoot && bestCol != domain.NoColumn {
			childBeta = max(beta, value+1)
		}

		_, score := s.minimax(&child, depth-1, alpha, childBeta, true, false)
		if score < value {
			value = score
			bestCol = col
			ties = 1
		} else if score == value && randomRoot {
			ties++
			if s.Rand.Intn(ties) == 0 {
				bestCol = col
			}
		}

		beta = min(beta, value)
		if alpha >= beta || (s.stopped && !root) {
			break
		}
	}
	return bestCol, value
}
