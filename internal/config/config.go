package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect4-ai/internal/service/bot"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	FrontendURL    string

	SearchDepth      int
	MaxSearchDepth   int
	TieBreak         bot.TieBreak
	RandomSeed       int64
	SearchTimeout    time.Duration
	SearchNodeBudget int64

	MoveCacheTTL       time.Duration
	RedisEnabled       bool
	RedisURL           string
	RedisPassword      string
	SessionIdleTimeout time.Duration
	CleanupInterval    time.Duration
}

var AppConfig *Config

// LoadEnvFile reads .env from the working directory or its parent, if present.
func LoadEnvFile() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Search
	depth := GetEnvAsInt("SEARCH_DEPTH", bot.DEFAULT_DEPTH)
	if depth < 1 {
		log.Printf("SEARCH_DEPTH must be at least 1, got %d, using default: %d", depth, bot.DEFAULT_DEPTH)
		depth = bot.DEFAULT_DEPTH
	}
	maxDepth := GetEnvAsInt("MAX_SEARCH_DEPTH", bot.DEFAULT_MAX_DEPTH)
	if maxDepth < depth {
		log.Printf("MAX_SEARCH_DEPTH %d is below SEARCH_DEPTH, raising it to %d", maxDepth, depth)
		maxDepth = depth
	}
	tieBreak, err := bot.ParseTieBreak(GetEnv("TIE_BREAK", "first"))
	if err != nil {
		log.Printf("%v, using default: first", err)
	}
	seed := int64(GetEnvAsInt("RANDOM_SEED", 0))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	timeoutMs := GetEnvAsInt("SEARCH_TIMEOUT_MS", 0)
	nodeBudget := GetEnvAsInt("SEARCH_NODE_BUDGET", 0)

	// Cache & sessions
	cacheTTLMin := GetEnvAsInt("MOVE_CACHE_TTL_MINUTES", 60)
	idleTimeoutMin := GetEnvAsInt("SESSION_IDLE_TIMEOUT_MINUTES", 24*60)
	cleanupMin := GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 10)

	AppConfig = &Config{
		Port:               port,
		AllowedOrigins:     allowedOrigins,
		FrontendURL:        frontendURL,
		SearchDepth:        depth,
		MaxSearchDepth:     maxDepth,
		TieBreak:           tieBreak,
		RandomSeed:         seed,
		SearchTimeout:      time.Duration(timeoutMs) * time.Millisecond,
		SearchNodeBudget:   int64(nodeBudget),
		MoveCacheTTL:       time.Duration(cacheTTLMin) * time.Minute,
		RedisEnabled:       GetEnvAsBool("REDIS_ENABLED", false),
		RedisURL:           GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:      GetEnv("REDIS_PASSWORD", ""),
		SessionIdleTimeout: time.Duration(idleTimeoutMin) * time.Minute,
		CleanupInterval:    time.Duration(cleanupMin) * time.Minute,
	}

	return AppConfig
}

// EngineOptions translates the search settings for bot.NewEngine.
func (c *Config) EngineOptions() bot.Options {
	return bot.Options{
		Depth:      c.SearchDepth,
		MaxDepth:   c.MaxSearchDepth,
		TieBreak:   c.TieBreak,
		Seed:       c.RandomSeed,
		Timeout:    c.SearchTimeout,
		NodeBudget: c.SearchNodeBudget,
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s: %s, using default: %v", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
