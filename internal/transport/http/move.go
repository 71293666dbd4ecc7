package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/game"
)

// MoveHandler exposes the gateway statelessly: every request carries its board.
type MoveHandler struct {
	Service *game.Service
}

func NewMoveHandler(service *game.Service) *MoveHandler {
	return &MoveHandler{Service: service}
}

type moveRequest struct {
	Board [][]int `json:"board" binding:"required"`
	Side  string  `json:"side" binding:"required"`
	Depth int     `json:"depth"`
}

type moveResponse struct {
	Column   int   `json:"column"`
	Score    int64 `json:"score"`
	Depth    int   `json:"depth"`
	Nodes    int64 `json:"nodes"`
	Complete bool  `json:"complete"`
}

type applyRequest struct {
	Board  [][]int `json:"board" binding:"required"`
	Column *int    `json:"column" binding:"required"`
	Side   string  `json:"side" binding:"required"`
}

type applyResponse struct {
	Board   [][]int        `json:"board"`
	Row     int            `json:"row"`
	Outcome domain.Outcome `json:"outcome"`
}

type outcomeRequest struct {
	Board [][]int `json:"board" binding:"required"`
}

// RequestMove returns the engine's column for the given side.
func (h *MoveHandler) RequestMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	board, err := domain.FromGrid(req.Board)
	if err != nil {
		respondError(c, err)
		return
	}
	side, err := domain.ParseSide(req.Side)
	if err != nil {
		respondError(c, err)
		return
	}
	depth := req.Depth
	if depth == 0 {
		depth = h.Service.Engine.Options().Depth
	}

	res, err := h.Service.Analyze(c.Request.Context(), board, side, depth)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, moveResponse{
		Column:   res.Column,
		Score:    res.Score,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		Complete: res.Complete,
	})
}

func (h *MoveHandler) ApplyMove(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	board, err := domain.FromGrid(req.Board)
	if err != nil {
		respondError(c, err)
		return
	}
	side, err := domain.ParseSide(req.Side)
	if err != nil {
		respondError(c, err)
		return
	}

	row, err := h.Service.ApplyMove(&board, *req.Column, side)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, applyResponse{
		Board:   board.Grid(),
		Row:     row,
		Outcome: h.Service.CheckOutcome(board),
	})
}

func (h *MoveHandler) CheckOutcome(c *gin.Context) {
	var req outcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	board, err := domain.FromGrid(req.Board)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Service.CheckOutcome(board))
}

// respondError maps domain errors onto status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidColumn),
		errors.Is(err, domain.ErrInvalidBoard),
		errors.Is(err, domain.ErrInvalidDepth),
		errors.Is(err, domain.ErrInvalidSide):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrColumnFull),
		errors.Is(err, domain.ErrNoLegalMoves),
		errors.Is(err, domain.ErrInvalidMove):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrGameNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
