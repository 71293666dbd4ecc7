package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-ai/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-ai/internal/transport/websocket"
)

// NewRouter wires the HTTP routes. The socket route is skipped when ws is nil.
func NewRouter(moves *MoveHandler, games *GameHandler, ws *websocket.Handler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Stateless gateway
	router.POST("/api/move", moves.RequestMove)
	router.POST("/api/apply", moves.ApplyMove)
	router.POST("/api/outcome", moves.CheckOutcome)

	// Rounds against the engine
	router.POST("/api/games", games.CreateGame)
	router.GET("/api/games/:id", games.GetGame)
	router.POST("/api/games/:id/move", games.PlayMove)
	router.POST("/api/games/:id/round", games.NewRound)
	router.DELETE("/api/games/:id", games.DeleteGame)

	if ws != nil {
		router.GET("/ws", gin.WrapF(ws.HandleWebSocket))
	}

	return router
}
