package websocket

import (
	"github.com/iamasit07/connect4-ai/internal/service/bot"
	"github.com/iamasit07/connect4-ai/internal/service/game"
)

// Client message types
const (
	MsgNewGame  = "new_game"
	MsgJoin     = "join"
	MsgMakeMove = "make_move"
	MsgNewRound = "new_round"
	MsgLeave    = "leave"
)

// Server message types
const (
	MsgGameCreated = "game_created"
	MsgState       = "state"
	MsgMoveAck     = "move_ack"
	MsgProgress    = "progress"
	MsgMoveResult  = "move_result"
	MsgLeft        = "left"
	MsgError       = "error"
)

type ClientMessage struct {
	Type       string `json:"type"`
	GameID     string `json:"gameId,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	HumanFirst *bool  `json:"humanFirst,omitempty"`
	Column     int    `json:"column"`
}

// ServerMessage carries at most one of State, Report and Progress.
type ServerMessage struct {
	Type     string             `json:"type"`
	Message  string             `json:"message,omitempty"`
	GameID   string             `json:"gameId,omitempty"`
	State    *game.SessionState `json:"state,omitempty"`
	Report   *game.MoveReport   `json:"report,omitempty"`
	Progress *bot.SearchResult  `json:"progress,omitempty"`
}
