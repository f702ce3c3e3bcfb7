package judge

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady means a submission for the same movie is already in
	// flight; the caller should wait for it to settle.
	ErrNotReady = errors.New("a verdict for this movie is already being submitted")

	// ErrAlreadyJudged means this identity has a recorded verdict for the
	// movie and the new submission was rejected.
	ErrAlreadyJudged = errors.New("verdict already recorded for this movie")

	// ErrNotFound means the movie does not exist on the server.
	ErrNotFound = errors.New("movie not found")

	// ErrVerificationPending means the vote was parked until the email
	// identity finishes verifying.
	ErrVerificationPending = errors.New("verdict queued until email verification completes")
)

// ValidationError is a locally detected bad input, reported before any
// network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// RemoteError carries a server-side rejection verbatim so the caller can
// show the server's own message.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("remote error %s (%d)", e.Code, e.Status)
}
