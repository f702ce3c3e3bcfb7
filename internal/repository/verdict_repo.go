package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hrhcoolshegs/verdict/internal/model"
)

type VerdictRepo struct {
	pool *pgxpool.Pool
}

func NewVerdictRepo(pool *pgxpool.Pool) *VerdictRepo {
	return &VerdictRepo{pool: pool}
}

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// Record inserts a verdict and increments the matching movie counter in one
// transaction. The (identity_key, movie_id) unique constraint makes the
// insert the authoritative duplicate check; a prior SELECT only exists to
// fail fast. Counters only ever increase — there is no withdraw flow.
// Returns the movie with its post-vote counts.
func (r *VerdictRepo) Record(ctx context.Context, movieID int64, identityKey string, choice model.Choice, ipHash, userAgent string) (*model.Movie, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Movie must exist; verdicts never auto-create catalog entries.
	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM movies WHERE id = $1)`, movieID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, pgx.ErrNoRows
	}

	// Fast duplicate check inside the transaction.
	var duplicate bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM verdicts WHERE movie_id = $1 AND identity_key = $2)`,
		movieID, identityKey).Scan(&duplicate)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, ErrAlreadyJudged
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO verdicts (movie_id, identity_key, choice, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5)`,
		movieID, identityKey, string(choice), ipHash, userAgent)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrAlreadyJudged
		}
		return nil, err
	}

	column := "cinema_votes"
	if choice == model.ChoiceNotCinema {
		column = "not_cinema_votes"
	}
	_, err = tx.Exec(ctx, `
		UPDATE movies SET `+column+` = `+column+` + 1, last_updated = NOW()
		WHERE id = $1`, movieID)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, movieID)
	movie, err := scanMovie(row)
	if err != nil {
		return nil, err
	}

	// Wake the stats worker for batched cache maintenance.
	_, err = tx.Exec(ctx, `SELECT pg_notify('verdict_changes', $1::text)`, movieID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return movie, nil
}

// HasVoted reports whether the identity already has a verdict for the movie.
func (r *VerdictRepo) HasVoted(ctx context.Context, movieID int64, identityKey string) (bool, error) {
	var voted bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM verdicts WHERE movie_id = $1 AND identity_key = $2)`,
		movieID, identityKey).Scan(&voted)
	return voted, err
}

// GetChoice returns the identity's recorded choice for the movie.
// Returns pgx.ErrNoRows if no verdict exists.
func (r *VerdictRepo) GetChoice(ctx context.Context, movieID int64, identityKey string) (model.Choice, error) {
	var choice string
	err := r.pool.QueryRow(ctx, `
		SELECT choice FROM verdicts WHERE movie_id = $1 AND identity_key = $2`,
		movieID, identityKey).Scan(&choice)
	if err != nil {
		return "", err
	}
	return model.Choice(choice), nil
}

// CountVerdicts returns the total number of recorded verdicts.
func (r *VerdictRepo) CountVerdicts(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM verdicts`).Scan(&n)
	return n, err
}
