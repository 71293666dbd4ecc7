package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
	"github.com/iamasit07/connect4-ai/internal/service/game"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler carries game sessions over a socket. Each move is acknowledged
// before the engine replies, and every finished search depth is pushed while
// the engine thinks.
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades the request and serves the connection until the
// client goes away.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *websocket.Conn) {
	connID := h.ConnManager.AddConnection(conn)
	log.Printf("[WS] Connection %s opened", connID)

	// searches started from this socket stop when it closes
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	defer func() {
		close(done)
		cancel()
		h.ConnManager.RemoveConnection(connID)
		log.Printf("[WS] Connection %s closed", connID)
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Connection %s dropped unexpectedly: %v", connID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.sendError(connID, "invalid message")
			continue
		}

		h.processMessage(ctx, connID, msg)
		// a long search is not the client's silence
		conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

func (h *Handler) processMessage(ctx context.Context, connID string, msg ClientMessage) {
	switch msg.Type {
	case MsgNewGame:
		humanFirst := msg.HumanFirst == nil || *msg.HumanFirst
		gs, err := h.SessionManager.CreateSession(ctx, bot.ParseDifficulty(msg.Difficulty), humanFirst)
		if err != nil {
			h.sendError(connID, err.Error())
			return
		}
		state := gs.State()
		h.ConnManager.SendMessage(connID, ServerMessage{Type: MsgGameCreated, GameID: gs.GameID, State: &state})

	case MsgJoin:
		gs, exists := h.SessionManager.GetSession(msg.GameID)
		if !exists {
			h.sendError(connID, domain.ErrGameNotFound.Error())
			return
		}
		state := gs.State()
		h.ConnManager.SendMessage(connID, ServerMessage{Type: MsgState, GameID: gs.GameID, State: &state})

	case MsgMakeMove:
		h.makeMove(ctx, connID, msg)

	case MsgNewRound:
		humanFirst := msg.HumanFirst == nil || *msg.HumanFirst
		state, err := h.SessionManager.NewRound(ctx, msg.GameID, humanFirst)
		if err != nil {
			h.sendError(connID, err.Error())
			return
		}
		h.ConnManager.SendMessage(connID, ServerMessage{Type: MsgState, GameID: msg.GameID, State: &state})

	case MsgLeave:
		if err := h.SessionManager.RemoveSession(msg.GameID); err != nil {
			h.sendError(connID, err.Error())
			return
		}
		h.ConnManager.SendMessage(connID, ServerMessage{Type: MsgLeft, GameID: msg.GameID})

	default:
		log.Printf("[WS] Unknown message type %q from %s", msg.Type, connID)
		h.sendError(connID, "unknown message type")
	}
}

// makeMove acknowledges the human move, streams the engine's finished depths
// and ends with the full report.
func (h *Handler) makeMove(ctx context.Context, connID string, msg ClientMessage) {
	gameID := msg.GameID
	ctx = bot.WithProgress(ctx, func(res bot.SearchResult) {
		h.ConnManager.SendMessage(connID, ServerMessage{Type: MsgProgress, GameID: gameID, Progress: &res})
	})

	report, err := h.SessionManager.HandleMoveObserved(ctx, gameID, msg.Column, func(ack game.MoveReport) {
		h.ConnManager.SendMessage(connID, ServerMessage{Type: MsgMoveAck, GameID: gameID, Report: &ack})
	})
	if err != nil {
		h.sendError(connID, err.Error())
		return
	}
	h.ConnManager.SendMessage(connID, ServerMessage{Type: MsgMoveResult, GameID: gameID, Report: report})
}

func (h *Handler) sendError(connID, message string) {
	h.ConnManager.SendMessage(connID, ServerMessage{Type: MsgError, Message: message})
}
