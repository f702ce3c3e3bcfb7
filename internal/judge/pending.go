package judge

import (
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/Hrhcoolshegs/verdict/internal/model"
	"github.com/Hrhcoolshegs/verdict/internal/prefs"
)

// PendingStatus tracks a parked vote through its lifecycle. Committed and
// failed votes leave the queue; only queued and replaying entries persist.
type PendingStatus string

const (
	StatusQueued    PendingStatus = "queued"
	StatusReplaying PendingStatus = "replaying"
)

// PendingVote is a verdict cast before the identity was usable, waiting
// for verification to complete.
type PendingVote struct {
	MovieID    int64         `json:"movieId"`
	MovieTitle string        `json:"movieTitle"`
	Choice     model.Choice  `json:"choice"`
	Confidence int           `json:"confidence,omitempty"`
	Reasoning  string        `json:"reasoning,omitempty"`
	Status     PendingStatus `json:"status"`
	QueuedAt   time.Time     `json:"queuedAt"`
}

// PendingQueue holds at most one parked vote per movie; re-queueing a
// movie overwrites the earlier intent. Entries survive restarts through
// the preference store.
type PendingQueue struct {
	mu    sync.Mutex
	store *prefs.Store
	votes map[int64]PendingVote
}

// OpenPendingQueue loads parked votes from the preference store. Votes
// found mid-replay are downgraded to queued so a crashed replay retries.
func OpenPendingQueue(store *prefs.Store) (*PendingQueue, error) {
	q := &PendingQueue{store: store, votes: make(map[int64]PendingVote)}

	raw, err := store.Get(prefs.KeyPendingVotes)
	if err != nil {
		return nil, err
	}
	if raw != "" {
		var list []PendingVote
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, err
		}
		for _, v := range list {
			v.Status = StatusQueued
			q.votes[v.MovieID] = v
		}
	}
	return q, nil
}

// Enqueue parks a vote, replacing any earlier vote for the same movie.
func (q *PendingQueue) Enqueue(v PendingVote) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	v.Status = StatusQueued
	if v.QueuedAt.IsZero() {
		v.QueuedAt = time.Now()
	}
	q.votes[v.MovieID] = v
	return q.persistLocked()
}

// Take atomically marks all queued votes as replaying and returns them.
// Each returned vote must be settled with Remove, success or failure.
func (q *PendingQueue) Take() ([]PendingVote, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	taken := make([]PendingVote, 0, len(q.votes))
	for id, v := range q.votes {
		if v.Status != StatusQueued {
			continue
		}
		v.Status = StatusReplaying
		q.votes[id] = v
		taken = append(taken, v)
	}
	if len(taken) == 0 {
		return nil, nil
	}
	return taken, q.persistLocked()
}

// Remove settles a vote. Called on commit and on failure alike; a parked
// vote is consumed exactly once either way.
func (q *PendingQueue) Remove(movieID int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.votes[movieID]; !ok {
		return nil
	}
	delete(q.votes, movieID)
	return q.persistLocked()
}

// Get returns the parked vote for a movie, if any.
func (q *PendingQueue) Get(movieID int64) (PendingVote, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	v, ok := q.votes[movieID]
	return v, ok
}

// Len reports how many votes are parked.
func (q *PendingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.votes)
}

// Clear drops every parked vote, used on sign-out.
func (q *PendingQueue) Clear() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.votes = make(map[int64]PendingVote)
	return q.store.Clear(prefs.KeyPendingVotes)
}

func (q *PendingQueue) persistLocked() error {
	list := make([]PendingVote, 0, len(q.votes))
	for _, v := range q.votes {
		list = append(list, v)
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return q.store.Set(prefs.KeyPendingVotes, string(raw))
}
