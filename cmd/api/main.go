package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-ai/internal/config"
	"github.com/iamasit07/connect4-ai/internal/repository/memory"
	"github.com/iamasit07/connect4-ai/internal/repository/redis"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
	"github.com/iamasit07/connect4-ai/internal/service/cleanup"
	"github.com/iamasit07/connect4-ai/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-ai/internal/transport/http"
	"github.com/iamasit07/connect4-ai/internal/transport/websocket"
)

func main() {
	config.LoadEnvFile()
	cfg := config.LoadConfig()

	// 1. Move cache: Redis when configured and reachable, memory otherwise
	var cache game.CacheRepository
	var pruner cleanup.Pruner
	if cfg.RedisEnabled {
		if err := redis.InitRedis(context.Background(), cfg.RedisURL, cfg.RedisPassword); err != nil {
			log.Printf("Failed to initialize Redis: %v", err)
		}
		defer redis.CloseRedis()
	}
	if redis.IsRedisEnabled() && redis.RedisClient != nil {
		cache = redis.NewRedisCache(redis.RedisClient)
	} else {
		memCache := memory.NewCache()
		cache = memCache
		pruner = memCache
	}

	// 2. Engine and services
	engine := bot.NewEngine(cfg.EngineOptions())
	log.Printf("[BOT] Engine ready: depth %d (max %d), tie-break %s, timeout %v, node budget %d",
		cfg.SearchDepth, cfg.MaxSearchDepth, cfg.TieBreak, cfg.SearchTimeout, cfg.SearchNodeBudget)

	gameService := game.NewService(engine, cache, cfg.MoveCacheTTL)
	sessionManager := game.NewSessionManager(gameService, cfg.SessionIdleTimeout)

	// 3. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, pruner, cfg.CleanupInterval)
	cleanupWorker.Start()
	defer cleanupWorker.Stop()

	// 4. HTTP and WebSocket
	wsHandler := websocket.NewHandler(websocket.NewConnectionManager(), sessionManager, cfg.AllowedOrigins)
	router := transportHttp.NewRouter(
		transportHttp.NewMoveHandler(gameService),
		transportHttp.NewGameHandler(sessionManager),
		wsHandler,
		cfg.AllowedOrigins,
	)
	serveFrontend(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

// serveFrontend hosts a built presentation shell from ./static when present.
func serveFrontend(router *gin.Engine) {
	if _, err := os.Stat("./static"); err != nil {
		return
	}
	router.Static("/assets", "./static/assets")

	router.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})

	// SPA fallback: serve index.html for all unmatched routes
	router.NoRoute(func(c *gin.Context) {
		path := "./static" + c.Request.URL.Path

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/assets/") || strings.HasSuffix(c.Request.URL.Path, ".css") || strings.HasSuffix(c.Request.URL.Path, ".js") {
			c.Status(http.StatusNotFound)
			return
		}

		c.File("./static/index.html")
	})
}
