package repository

import "errors"

// ErrAlreadyJudged is returned when an identity already has a verdict row
// for the movie. The unique constraint on (identity_key, movie_id) is the
// final arbiter; pre-checks elsewhere are UX shortcuts only.
var ErrAlreadyJudged = errors.New("identity has already judged this movie")
