package service

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsWorker listens for PostgreSQL NOTIFY on the 'verdict_changes'
// channel and batches cache maintenance. A burst of votes within one window
// produces a single stats refresh instead of one per vote.
type StatsWorker struct {
	pool     *pgxpool.Pool
	statsSvc *StatsService
	cache    *CacheService
	batchMs  time.Duration

	mu      sync.Mutex
	pending map[int64]struct{} // movie IDs waiting for cache invalidation
}

// NewStatsWorker creates a verdict-change worker.
func NewStatsWorker(pool *pgxpool.Pool, statsSvc *StatsService, cache *CacheService) *StatsWorker {
	return &StatsWorker{
		pool:     pool,
		statsSvc: statsSvc,
		cache:    cache,
		batchMs:  5 * time.Second,
		pending:  make(map[int64]struct{}),
	}
}

// Start begins listening for verdict_changes notifications and processing
// batches. Blocks until ctx is cancelled.
func (w *StatsWorker) Start(ctx context.Context) {
	log.Printf("stats-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("stats-worker: stopping (context cancelled)")
				return
			}
			log.Printf("stats-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("stats-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on verdict_changes,
// and collects notified movie IDs into the pending set.
func (w *StatsWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN verdict_changes")
	if err != nil {
		return err
	}
	log.Println("stats-worker: listening on verdict_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		movieID, err := strconv.ParseInt(notification.Payload, 10, 64)
		if err != nil {
			continue
		}

		w.mu.Lock()
		w.pending[movieID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set.
func (w *StatsWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush invalidates cached movies touched in this window and refreshes the
// stats snapshot once for the whole batch.
func (w *StatsWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	batch := w.pending
	w.pending = make(map[int64]struct{})
	w.mu.Unlock()

	for movieID := range batch {
		if w.cache != nil {
			if err := w.cache.InvalidateMovie(ctx, movieID); err != nil {
				log.Printf("stats-worker: cache invalidate error for %d: %v", movieID, err)
			}
		}
	}

	if err := w.statsSvc.Refresh(ctx); err != nil {
		log.Printf("stats-worker: stats refresh error: %v", err)
		return
	}

	log.Printf("stats-worker: batch complete — %d movies invalidated, stats refreshed", len(batch))
}
