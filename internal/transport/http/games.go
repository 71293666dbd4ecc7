package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
	"github.com/iamasit07/connect4-ai/internal/service/game"
	"github.com/iamasit07/connect4-ai/pkg/uid"
)

type GameHandler struct {
	SessionManager *game.SessionManager
}

func NewGameHandler(sm *game.SessionManager) *GameHandler {
	return &GameHandler{SessionManager: sm}
}

type createGameRequest struct {
	Difficulty string `json:"difficulty"`
	HumanFirst *bool  `json:"humanFirst"`
}

type playRequest struct {
	Column *int `json:"column" binding:"required"`
}

// CreateGame starts a round against the engine. The human moves first
// unless humanFirst is false.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	humanFirst := true
	if req.HumanFirst != nil {
		humanFirst = *req.HumanFirst
	}

	gs, err := h.SessionManager.CreateSession(c.Request.Context(), bot.ParseDifficulty(req.Difficulty), humanFirst)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gs.State())
}

func (h *GameHandler) GetGame(c *gin.Context) {
	gs, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gs.State())
}

func (h *GameHandler) PlayMove(c *gin.Context) {
	gameID := c.Param("id")
	if !uid.IsGameID(gameID) {
		respondError(c, domain.ErrGameNotFound)
		return
	}

	var req playRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.SessionManager.HandleMove(c.Request.Context(), gameID, *req.Column)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type roundRequest struct {
	HumanFirst *bool `json:"humanFirst"`
}

// NewRound restarts a finished game, keeping the session's tally.
func (h *GameHandler) NewRound(c *gin.Context) {
	gs, ok := h.lookup(c)
	if !ok {
		return
	}
	var req roundRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	humanFirst := true
	if req.HumanFirst != nil {
		humanFirst = *req.HumanFirst
	}

	state, err := h.SessionManager.NewRound(c.Request.Context(), gs.GameID, humanFirst)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.SessionManager.RemoveSession(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) lookup(c *gin.Context) (*game.GameSession, bool) {
	gameID := c.Param("id")
	if !uid.IsGameID(gameID) {
		respondError(c, domain.ErrGameNotFound)
		return nil, false
	}
	gs, ok := h.SessionManager.GetSession(gameID)
	if !ok {
		respondError(c, domain.ErrGameNotFound)
		return nil, false
	}
	return gs, true
}
