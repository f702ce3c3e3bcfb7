package judge

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Hrhcoolshegs/verdict/internal/journey"
	"github.com/Hrhcoolshegs/verdict/internal/model"
	"github.com/Hrhcoolshegs/verdict/internal/prefs"
)

// feedbackTTL is how long a per-movie feedback message stays visible.
const feedbackTTL = 3 * time.Second

// stuckTTL is how long a submission may stay in flight before the UI
// should offer a retry affordance.
const stuckTTL = 15 * time.Second

// Coordinator runs the verdict submission workflow: in-flight guarding,
// duplicate pre-checks, identity resolution, pending handoff, and the
// journey append on success. Counts shown to the user always come from the
// server response, never from local increments.
type Coordinator struct {
	remote    Remote
	resolver  *Resolver
	journal   *journey.Journal
	pending   *PendingQueue
	store     *prefs.Store
	userAgent string

	mu            sync.Mutex
	inflight      bool
	inflightSince time.Time
	feedback      map[int64]string

	// feedbackAfter and stuckAfter let tests shrink the timers.
	feedbackAfter time.Duration
	stuckAfter    time.Duration
}

func NewCoordinator(remote Remote, resolver *Resolver, journal *journey.Journal, pending *PendingQueue, store *prefs.Store, userAgent string) *Coordinator {
	c := &Coordinator{
		remote:        remote,
		resolver:      resolver,
		journal:       journal,
		pending:       pending,
		store:         store,
		userAgent:     userAgent,
		feedback:      make(map[int64]string),
		feedbackAfter: feedbackTTL,
		stuckAfter:    stuckTTL,
	}
	resolver.OnVerified(func(ctx context.Context) {
		c.Replay(ctx)
	})
	return c
}

// Submit records a verdict for a movie. At most one submission may be in
// flight at a time; a second call before the first settles returns
// ErrNotReady without touching the server. When the identity is
// mid-verification the vote is parked and ErrVerificationPending is
// returned.
func (c *Coordinator) Submit(ctx context.Context, movie *model.Movie, choice model.Choice, confidence int, reasoning string) (*model.VerdictResponse, error) {
	if !choice.Valid() {
		return nil, &ValidationError{Field: "choice", Message: "must be cinema or not-cinema"}
	}

	c.mu.Lock()
	if c.inflight {
		c.mu.Unlock()
		return nil, ErrNotReady
	}
	c.inflight = true
	c.inflightSince = time.Now()
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inflight = false
		c.inflightSince = time.Time{}
		c.mu.Unlock()
	}()

	if c.journal.Get(movie.ID) != nil {
		return nil, ErrAlreadyJudged
	}

	identity, err := c.resolver.Current()
	if err != nil {
		return nil, err
	}
	if identity == nil {
		err := c.pending.Enqueue(PendingVote{
			MovieID:    movie.ID,
			MovieTitle: movie.Title,
			Choice:     choice,
			Confidence: confidence,
			Reasoning:  reasoning,
		})
		if err != nil {
			return nil, err
		}
		c.setFeedback(movie.ID, "Verdict saved — confirm your email to record it")
		return nil, ErrVerificationPending
	}

	// Ask the server before writing. The pre-check is a shortcut to skip a
	// doomed record call; the record itself stays the final arbiter, so a
	// failed check falls through rather than blocking the vote.
	voted, err := c.remote.HasVoted(ctx, movie.ID, identity.Key)
	if err != nil {
		log.Debug().Err(err).Int64("movie_id", movie.ID).Msg("duplicate pre-check failed, deferring to record")
	} else if voted {
		return nil, ErrAlreadyJudged
	}

	resp, err := c.record(ctx, movie.ID, identity.Key, choice, confidence, reasoning)
	if err != nil {
		return nil, err
	}
	c.setFeedback(movie.ID, resp.Message)
	return resp, nil
}

// record submits to the server and, on success, appends the authoritative
// result to the journey.
func (c *Coordinator) record(ctx context.Context, movieID int64, identityKey string, choice model.Choice, confidence int, reasoning string) (*model.VerdictResponse, error) {
	resp, err := c.remote.RecordVerdict(ctx, model.VerdictRequest{
		MovieID:     movieID,
		IdentityKey: identityKey,
		Choice:      choice,
		UserAgent:   c.userAgent,
	})
	if err != nil {
		return nil, err
	}

	if resp.Movie != nil {
		if err := c.journal.Add(&resp.Movie.Movie, choice, confidence, reasoning); err != nil {
			return nil, err
		}
	}
	if err := c.store.Set(prefs.KeyVerdict, string(choice)); err != nil {
		log.Warn().Err(err).Msg("failed to persist last verdict preference")
	}
	return resp, nil
}

// Replay drains the pending queue after the identity resolved. Each parked
// vote is consumed exactly once: committed votes move into the journey,
// failed ones are dropped with their reason surfaced as feedback.
func (c *Coordinator) Replay(ctx context.Context) {
	identity, err := c.resolver.Current()
	if err != nil || identity == nil {
		return
	}

	votes, err := c.pending.Take()
	if err != nil {
		log.Error().Err(err).Msg("failed to load pending verdicts for replay")
		return
	}

	for _, v := range votes {
		_, err := c.record(ctx, v.MovieID, identity.Key, v.Choice, v.Confidence, v.Reasoning)
		switch {
		case err == nil:
			c.setFeedback(v.MovieID, "Verdict recorded")
		case errors.Is(err, ErrAlreadyJudged):
			c.setFeedback(v.MovieID, "You already judged this movie")
		default:
			log.Warn().Err(err).Int64("movie_id", v.MovieID).Msg("pending verdict replay failed")
			c.setFeedback(v.MovieID, "Could not record your queued verdict")
		}
		if rmErr := c.pending.Remove(v.MovieID); rmErr != nil {
			log.Error().Err(rmErr).Int64("movie_id", v.MovieID).Msg("failed to settle pending verdict")
		}
	}
}

// Prior checks for an existing verdict, consulting the local journey first
// and falling back to the server.
func (c *Coordinator) Prior(ctx context.Context, movieID int64) (*model.PriorVerdictResponse, error) {
	if entry := c.journal.Get(movieID); entry != nil {
		return &model.PriorVerdictResponse{HasJudged: true, Choice: entry.Choice}, nil
	}

	identity, err := c.resolver.Current()
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return &model.PriorVerdictResponse{HasJudged: false}, nil
	}
	return c.remote.PriorVerdict(ctx, movieID, identity.Key)
}

// Dismiss drops a parked vote the user no longer wants recorded.
func (c *Coordinator) Dismiss(movieID int64) error {
	return c.pending.Remove(movieID)
}

// SignOut ends the email session and drops any votes parked under it.
func (c *Coordinator) SignOut(ctx context.Context) error {
	if err := c.resolver.SignOut(ctx); err != nil {
		return err
	}
	return c.pending.Clear()
}

// Stuck reports whether a submission has been in flight long enough that
// the UI should surface a retry option.
func (c *Coordinator) Stuck() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight && time.Since(c.inflightSince) > c.stuckAfter
}

// Feedback returns the transient per-movie message, if still visible.
func (c *Coordinator) Feedback(movieID int64) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feedback[movieID]
}

func (c *Coordinator) setFeedback(movieID int64, msg string) {
	if msg == "" {
		return
	}
	c.mu.Lock()
	c.feedback[movieID] = msg
	c.mu.Unlock()

	time.AfterFunc(c.feedbackAfter, func() {
		c.mu.Lock()
		if c.feedback[movieID] == msg {
			delete(c.feedback, movieID)
		}
		c.mu.Unlock()
	})
}
