package judge

import (
	"context"

	"github.com/Hrhcoolshegs/verdict/internal/model"
)

// Remote is the server contract the client workflow depends on. The HTTP
// implementation lives in this package; tests substitute fakes.
type Remote interface {
	// ListMovies returns the full catalog with computed ratings.
	ListMovies(ctx context.Context) ([]model.MovieResponse, error)

	// MovieByID fetches one movie. Returns ErrNotFound when absent.
	MovieByID(ctx context.Context, id int64) (*model.MovieResponse, error)

	// SearchMovies matches title or director, case-insensitively.
	SearchMovies(ctx context.Context, query string) ([]model.MovieResponse, error)

	// RandomMovie picks one movie server-side.
	RandomMovie(ctx context.Context) (*model.MovieResponse, error)

	// RecordVerdict submits a verdict. Returns ErrAlreadyJudged when the
	// identity already has one for the movie; the response carries the
	// authoritative post-vote counts.
	RecordVerdict(ctx context.Context, req model.VerdictRequest) (*model.VerdictResponse, error)

	// HasVoted reports whether the identity already judged the movie.
	HasVoted(ctx context.Context, movieID int64, identityKey string) (bool, error)

	// PriorVerdict fetches the identity's recorded choice, if any.
	PriorVerdict(ctx context.Context, movieID int64, identityKey string) (*model.PriorVerdictResponse, error)

	// BeginVerification asks the server to email a one-time passcode.
	BeginVerification(ctx context.Context, email string) error

	// ConfirmVerification exchanges the passcode for a session.
	ConfirmVerification(ctx context.Context, email, passcode string) (*model.SessionResponse, error)

	// SignOut invalidates the session server-side.
	SignOut(ctx context.Context, token string) error
}
