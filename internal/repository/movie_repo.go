package repository

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hrhcoolshegs/verdict/internal/model"
)

type MovieRepo struct {
	pool *pgxpool.Pool
}

func NewMovieRepo(pool *pgxpool.Pool) *MovieRepo {
	return &MovieRepo{pool: pool}
}

const movieColumns = `id, title, director, year, poster, cinema_votes, not_cinema_votes, details, created_at, last_updated`

// List returns the full catalog ordered by id.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovies(rows)
}

// FindByID returns a single movie. Returns pgx.ErrNoRows if absent.
func (r *MovieRepo) FindByID(ctx context.Context, id int64) (*model.Movie, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id)
	return scanMovie(row)
}

// Search finds movies by substring match on title or director, ranked by
// cinema votes so well-known titles surface first.
func (r *MovieRepo) Search(ctx context.Context, query string, limit int) ([]model.Movie, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+movieColumns+` FROM movies
		WHERE title ILIKE '%' || $1 || '%' OR director ILIKE '%' || $1 || '%'
		ORDER BY cinema_votes DESC
		LIMIT $2`,
		query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovies(rows)
}

// Random returns one movie picked uniformly at random, via a count and a
// random offset. Returns pgx.ErrNoRows for an empty catalog.
func (r *MovieRepo) Random(ctx context.Context) (*model.Movie, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, pgx.ErrNoRows
	}

	row := r.pool.QueryRow(ctx, `
		SELECT `+movieColumns+` FROM movies
		OFFSET floor(random() * $1) LIMIT 1`,
		count)
	return scanMovie(row)
}

// Upsert inserts a movie or refreshes its metadata. Vote counts are never
// overwritten for an existing row; only verdict submission moves them.
func (r *MovieRepo) Upsert(ctx context.Context, m *model.Movie) error {
	details, err := marshalDetails(m.Details)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO movies (id, title, director, year, poster, cinema_votes, not_cinema_votes, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title, director = EXCLUDED.director, year = EXCLUDED.year,
		    poster = EXCLUDED.poster, details = EXCLUDED.details, last_updated = NOW()`,
		m.ID, m.Title, m.Director, m.Year, m.Poster, m.CinemaVotes, m.NotCinemaVotes, details)
	return err
}

func marshalDetails(d *model.MovieDetails) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func scanMovies(rows pgx.Rows) ([]model.Movie, error) {
	var movies []model.Movie
	for rows.Next() {
		m, err := scanMovieFrom(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

func scanMovie(row pgx.Row) (*model.Movie, error) {
	return scanMovieFrom(row)
}

func scanMovieFrom(row pgx.Row) (*model.Movie, error) {
	var m model.Movie
	var details []byte
	err := row.Scan(&m.ID, &m.Title, &m.Director, &m.Year, &m.Poster,
		&m.CinemaVotes, &m.NotCinemaVotes, &details, &m.CreatedAt, &m.LastUpdated)
	if err != nil {
		return nil, err
	}
	if len(details) > 0 {
		var d model.MovieDetails
		if err := json.Unmarshal(details, &d); err != nil {
			return nil, err
		}
		m.Details = &d
	}
	return &m, nil
}
