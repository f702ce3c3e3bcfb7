package model

import "time"

// Choice is a binary judgment on a movie.
type Choice string

const (
	ChoiceCinema    Choice = "cinema"
	ChoiceNotCinema Choice = "not-cinema"
)

// Valid reports whether c is one of the two allowed choices.
func (c Choice) Valid() bool {
	return c == ChoiceCinema || c == ChoiceNotCinema
}

// Verdict represents one identity's recorded judgment on one movie.
// At most one row exists per (identity_key, movie_id).
type Verdict struct {
	ID          int64     `json:"id"`
	MovieID     int64     `json:"movieId"`
	IdentityKey string    `json:"-"`
	Choice      Choice    `json:"choice"`
	CreatedAt   time.Time `json:"createdAt"`
	IPHash      string    `json:"-"`
	UserAgent   string    `json:"-"`
}

// VerdictRequest is the API request body for submitting a verdict.
type VerdictRequest struct {
	MovieID     int64  `json:"movieId"`
	IdentityKey string `json:"identityKey"`
	Choice      Choice `json:"choice"`
	UserAgent   string `json:"userAgent,omitempty"`
}

// VerdictResponse is the API response after submitting a verdict.
// Movie carries the authoritative post-vote counts from the store.
type VerdictResponse struct {
	Success bool           `json:"success"`
	Movie   *MovieResponse `json:"movie,omitempty"`
	Message string         `json:"message,omitempty"`
}

// PriorVerdictResponse is the API response for a prior-verdict lookup.
// Choice is empty when the identity has not judged the movie.
type PriorVerdictResponse struct {
	HasJudged bool   `json:"hasJudged"`
	Choice    Choice `json:"choice,omitempty"`
}
