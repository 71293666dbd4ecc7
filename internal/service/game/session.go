package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
	"github.com/iamasit07/connect4-ai/pkg/uid"
)

// finished games stay around this long so the shell can show the result
const finishedSessionTTL = 1 * time.Hour

// GameSession is one human-vs-engine game held in memory. Wins and Draws
// tally its finished rounds.
type GameSession struct {
	GameID       string
	Difficulty   bot.Difficulty
	BotName      string
	HumanSide    domain.PlayerID
	BotSide      domain.PlayerID
	Game         *domain.Game
	CreatedAt    time.Time
	LastActivity time.Time
	FinishedAt   time.Time
	Round        int // counts from 1
	Wins         map[domain.PlayerID]int
	Draws        int
	mu           sync.Mutex
}

// SessionState is a copy of a session that is safe to hand out.
type SessionState struct {
	GameID        string                  `json:"gameId"`
	Difficulty    bot.Difficulty          `json:"difficulty"`
	BotName       string                  `json:"botName"`
	HumanSide     domain.PlayerID         `json:"humanSide"`
	BotSide       domain.PlayerID         `json:"botSide"`
	Board         [][]int                 `json:"board"`
	CurrentPlayer domain.PlayerID         `json:"currentPlayer"`
	Outcome       domain.Outcome          `json:"outcome"`
	Moves         []domain.Move           `json:"moves"`
	CreatedAt     time.Time               `json:"createdAt"`
	Round         int                     `json:"round"`
	Wins          map[domain.PlayerID]int `json:"wins"`
	Draws         int                     `json:"draws"`
}

// MoveReport describes a human move and the engine's reply, if there was one.
type MoveReport struct {
	Human    domain.Move  `json:"human"`
	Bot      *domain.Move `json:"bot,omitempty"`
	BotScore int64        `json:"botScore,omitempty"`
	State    SessionState `json:"state"`
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session     map[string]*GameSession // gameID → GameSession
	mu          sync.RWMutex
	service     *Service
	idleTimeout time.Duration
}

func NewSessionManager(service *Service, idleTimeout time.Duration) *SessionManager {
	if idleTimeout <= 0 {
		idleTimeout = 24 * time.Hour
	}
	return &SessionManager{
		Session:     make(map[string]*GameSession),
		service:     service,
		idleTimeout: idleTimeout,
	}
}

// CreateSession starts a new round. When the human does not move first the
// engine's opening move is already on the board.
func (sm *SessionManager) CreateSession(ctx context.Context, difficulty bot.Difficulty, humanFirst bool) (*GameSession, error) {
	now := time.Now()
	gs := &GameSession{
		GameID:       uid.GenerateGameID(),
		Difficulty:   difficulty,
		BotName:      difficulty.BotName(),
		HumanSide:    domain.Player,
		BotSide:      domain.Opponent,
		CreatedAt:    now,
		LastActivity: now,
		Round:        1,
		Wins:         map[domain.PlayerID]int{domain.Player: 0, domain.Opponent: 0},
	}
	first := domain.Player
	if !humanFirst {
		first = domain.Opponent
	}
	gs.Game = domain.NewGame(first)

	if !humanFirst {
		if _, _, err := sm.playBot(ctx, gs); err != nil {
			return nil, err
		}
	}

	sm.mu.Lock()
	sm.Session[gs.GameID] = gs
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: human vs %s (%s), human first: %v",
		gs.GameID, gs.BotName, difficulty, humanFirst)
	return gs, nil
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	gs, ok := sm.Session[gameID]
	return gs, ok
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.Session[gameID]; !ok {
		return domain.ErrGameNotFound
	}
	delete(sm.Session, gameID)
	log.Printf("[SESSION] Removing session %s", gameID)
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// HandleMove plays the human's column and, if the round is still open, the
// engine's reply.
func (sm *SessionManager) HandleMove(ctx context.Context, gameID string, column int) (*MoveReport, error) {
	return sm.HandleMoveObserved(ctx, gameID, column, nil)
}

// HandleMoveObserved is HandleMove with a callback that sees the human move
// before the engine starts thinking. The callback runs with the session
// locked and must not call back into it.
func (sm *SessionManager) HandleMoveObserved(ctx context.Context, gameID string, column int, onHuman func(MoveReport)) (*MoveReport, error) {
	gs, ok := sm.GetSession(gameID)
	if !ok {
		return nil, domain.ErrGameNotFound
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.Game.IsFinished() || gs.Game.CurrentPlayer != gs.HumanSide {
		return nil, domain.ErrInvalidMove
	}
	if valid, err := gs.Game.Board.IsValidColumn(column); err != nil {
		return nil, err
	} else if !valid {
		return nil, domain.ErrColumnFull
	}

	row, err := gs.Game.MakeMove(gs.HumanSide, column)
	if err != nil {
		return nil, err
	}
	gs.LastActivity = time.Now()

	report := &MoveReport{
		Human: domain.Move{Player: gs.HumanSide, Column: column, Row: row},
	}
	if onHuman != nil {
		onHuman(MoveReport{Human: report.Human, State: gs.stateLocked()})
	}

	if !gs.Game.IsFinished() {
		move, score, err := sm.playBot(ctx, gs)
		if err != nil {
			return nil, err
		}
		report.Bot = &move
		report.BotScore = score
	}

	if gs.Game.IsFinished() {
		gs.finishRound()
	}

	report.State = gs.stateLocked()
	return report, nil
}

// finishRound stamps the round and adds it to the tally. gs.mu must be held.
func (gs *GameSession) finishRound() {
	gs.FinishedAt = time.Now()
	if gs.Game.Status == domain.StatusWon {
		gs.Wins[gs.Game.Winner]++
	} else {
		gs.Draws++
	}
	log.Printf("[SESSION] Game %s round %d finished: %s (winner: %s), tally %d-%d-%d",
		gs.GameID, gs.Round, gs.Game.Status, gs.Game.Winner,
		gs.Wins[gs.HumanSide], gs.Wins[gs.BotSide], gs.Draws)
}

// NewRound starts another round in a finished session, keeping its tally.
func (sm *SessionManager) NewRound(ctx context.Context, gameID string, humanFirst bool) (SessionState, error) {
	gs, ok := sm.GetSession(gameID)
	if !ok {
		return SessionState{}, domain.ErrGameNotFound
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if !gs.Game.IsFinished() {
		return SessionState{}, domain.ErrInvalidMove
	}

	previous := gs.Game
	first := gs.HumanSide
	if !humanFirst {
		first = gs.BotSide
	}
	gs.Game = domain.NewGame(first)
	if !humanFirst {
		if _, _, err := sm.playBot(ctx, gs); err != nil {
			gs.Game = previous
			return SessionState{}, err
		}
	}

	gs.Round++
	gs.FinishedAt = time.Time{}
	gs.LastActivity = time.Now()
	log.Printf("[SESSION] Game %s round %d started, human first: %v", gs.GameID, gs.Round, humanFirst)
	return gs.stateLocked(), nil
}

// playBot asks the engine for a move and plays it. gs.mu must be held or gs
// not yet shared.
func (sm *SessionManager) playBot(ctx context.Context, gs *GameSession) (domain.Move, int64, error) {
	res, err := sm.service.PlayFor(ctx, gs.Game.Board, gs.BotSide, gs.Difficulty)
	if err != nil {
		return domain.Move{}, 0, err
	}
	row, err := gs.Game.MakeMove(gs.BotSide, res.Column)
	if err != nil {
		return domain.Move{}, 0, err
	}
	log.Printf("[BOT] %s played column %d in game %s (score %d, depth %d, nodes %d)",
		gs.BotName, res.Column, gs.GameID, res.Score, res.Depth, res.Nodes)
	return domain.Move{Player: gs.BotSide, Column: res.Column, Row: row}, res.Score, nil
}

func (gs *GameSession) State() SessionState {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.stateLocked()
}

func (gs *GameSession) stateLocked() SessionState {
	moves := make([]domain.Move, len(gs.Game.Moves))
	copy(moves, gs.Game.Moves)
	wins := make(map[domain.PlayerID]int, len(gs.Wins))
	for side, n := range gs.Wins {
		wins[side] = n
	}
	return SessionState{
		GameID:        gs.GameID,
		Difficulty:    gs.Difficulty,
		BotName:       gs.BotName,
		HumanSide:     gs.HumanSide,
		BotSide:       gs.BotSide,
		Board:         gs.Game.Board.Grid(),
		CurrentPlayer: gs.Game.CurrentPlayer,
		Outcome:       gs.Game.Outcome(),
		Moves:         moves,
		CreatedAt:     gs.CreatedAt,
		Round:         gs.Round,
		Wins:          wins,
		Draws:         gs.Draws,
	}
}

// CleanupOldSessions drops finished rounds after an hour and abandoned ones
// after the idle timeout. It returns how many were removed. Sessions are
// inspected without holding the manager lock, so a session busy with a search
// does not block lookups of the others.
func (sm *SessionManager) CleanupOldSessions() int {
	sm.mu.RLock()
	snapshot := make(map[string]*GameSession, len(sm.Session))
	for gameID, session := range sm.Session {
		snapshot[gameID] = session
	}
	sm.mu.RUnlock()

	now := time.Now()
	var stale []string
	for gameID, session := range snapshot {
		if session.isStale(now, sm.idleTimeout) {
			stale = append(stale, gameID)
		}
	}
	if len(stale) == 0 {
		return 0
	}

	count := 0
	sm.mu.Lock()
	for _, gameID := range stale {
		// the id may have been removed meanwhile
		if sm.Session[gameID] == snapshot[gameID] {
			delete(sm.Session, gameID)
			count++
		}
	}
	sm.mu.Unlock()

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}

func (gs *GameSession) isStale(now time.Time, idleTimeout time.Duration) bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if gs.Game.IsFinished() {
		return now.Sub(gs.FinishedAt) > finishedSessionTTL
	}
	return now.Sub(gs.LastActivity) > idleTimeout
}
