package judge

import (
	"testing"

	"github.com/Hrhcoolshegs/verdict/internal/model"
	"github.com/Hrhcoolshegs/verdict/internal/prefs"
)

func newTestQueue(t *testing.T) (*PendingQueue, *prefs.Store) {
	t.Helper()
	store, err := prefs.Open("")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	q, err := OpenPendingQueue(store)
	if err != nil {
		t.Fatalf("open queue: %v", err)
	}
	return q, store
}

func TestEnqueueOverwritesSameMovie(t *testing.T) {
	q, _ := newTestQueue(t)

	q.Enqueue(PendingVote{MovieID: 1, Choice: model.ChoiceCinema})
	q.Enqueue(PendingVote{MovieID: 1, Choice: model.ChoiceNotCinema, Reasoning: "on reflection"})

	if q.Len() != 1 {
		t.Fatalf("len = %d, want 1", q.Len())
	}
	v, ok := q.Get(1)
	if !ok || v.Choice != model.ChoiceNotCinema {
		t.Errorf("parked vote = %+v, want the later intent", v)
	}
}

func TestTakeMarksReplayingAndReturnsOnce(t *testing.T) {
	q, _ := newTestQueue(t)

	q.Enqueue(PendingVote{MovieID: 1, Choice: model.ChoiceCinema})
	q.Enqueue(PendingVote{MovieID: 2, Choice: model.ChoiceNotCinema})

	taken, err := q.Take()
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if len(taken) != 2 {
		t.Fatalf("took %d votes, want 2", len(taken))
	}

	// A second take before the first settles returns nothing.
	again, err := q.Take()
	if err != nil {
		t.Fatalf("second take: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second take returned %d votes, want 0", len(again))
	}
}

func TestRemoveSettlesVote(t *testing.T) {
	q, _ := newTestQueue(t)

	q.Enqueue(PendingVote{MovieID: 1, Choice: model.ChoiceCinema})
	if err := q.Remove(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if q.Len() != 0 {
		t.Errorf("len = %d, want 0", q.Len())
	}

	// Removing an absent vote is not an error.
	if err := q.Remove(99); err != nil {
		t.Errorf("remove absent: %v", err)
	}
}

func TestQueueSurvivesReopenAndRetriesInterruptedReplay(t *testing.T) {
	q, store := newTestQueue(t)

	q.Enqueue(PendingVote{MovieID: 1, Choice: model.ChoiceCinema})
	q.Enqueue(PendingVote{MovieID: 2, Choice: model.ChoiceNotCinema})

	// Simulate a crash mid-replay: votes persisted as replaying.
	if _, err := q.Take(); err != nil {
		t.Fatalf("take: %v", err)
	}

	q2, err := OpenPendingQueue(store)
	if err != nil {
		t.Fatalf("reopen queue: %v", err)
	}
	if q2.Len() != 2 {
		t.Fatalf("reopened len = %d, want 2", q2.Len())
	}

	// Interrupted votes are queued again so the next replay picks them up.
	taken, err := q2.Take()
	if err != nil {
		t.Fatalf("take after reopen: %v", err)
	}
	if len(taken) != 2 {
		t.Errorf("took %d votes after reopen, want 2", len(taken))
	}
}

func TestClearDropsEverything(t *testing.T) {
	q, store := newTestQueue(t)

	q.Enqueue(PendingVote{MovieID: 1, Choice: model.ChoiceCinema})
	if err := q.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if q.Len() != 0 {
		t.Errorf("len = %d, want 0", q.Len())
	}

	q2, err := OpenPendingQueue(store)
	if err != nil {
		t.Fatalf("reopen queue: %v", err)
	}
	if q2.Len() != 0 {
		t.Errorf("reopened len = %d, want 0", q2.Len())
	}
}
