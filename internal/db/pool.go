package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const (
	maxRetries   = 5
	retryBackoff = 2 * time.Second

	// The workload is read-heavy catalog fetches plus short vote
	// transactions; one extra connection is reserved for the stats
	// worker's LISTEN session.
	maxConns = 12
	minConns = 2
)

// NewPool connects to Postgres with bounded retries, waiting out the window
// where the database container is still starting.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = maxConns
	config.MinConns = minConns
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; ; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				log.Info().Msg("database connected")
				return pool, nil
			}
			pool.Close()
		}

		if attempt >= maxRetries {
			return nil, fmt.Errorf("database connection failed after %d attempts: %w", maxRetries, err)
		}
		log.Warn().Err(err).Int("attempt", attempt).Int("max", maxRetries).Msg("database connection failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff):
		}
	}
}
