package cleanup

import (
	"log"
	"time"

	"github.com/iamasit07/connect4-ai/internal/service/game"
)

// Pruner is a cache that can drop its expired entries.
type Pruner interface {
	Prune() int
}

type Worker struct {
	SessionManager *game.SessionManager
	Cache          Pruner // nil when the cache expires keys itself (Redis)
	Interval       time.Duration

	stop chan struct{}
}

func NewWorker(sm *game.SessionManager, cache Pruner, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Worker{
		SessionManager: sm,
		Cache:          cache,
		Interval:       interval,
		stop:           make(chan struct{}),
	}
}

// Start runs a cleanup now and then every Interval until Stop is called.
func (w *Worker) Start() {
	go w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.runCleanup()
			case <-w.stop:
				return
			}
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) Stop() {
	close(w.stop)
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() {
	w.SessionManager.CleanupOldSessions()

	if w.Cache != nil {
		if removed := w.Cache.Prune(); removed > 0 {
			log.Printf("[CLEANUP] Removed %d expired move cache entries", removed)
		}
	}
}
