// Package journey keeps the local, non-authoritative log of verdicts cast
// by this device, plus the self-insight derivations over it (streaks,
// taste, recommendations). It is never reconciled against server counts.
package journey

import (
	"math"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"github.com/Hrhcoolshegs/verdict/internal/model"
	"github.com/Hrhcoolshegs/verdict/internal/prefs"
)

const (
	// defaultConfidence is assumed for entries recorded without one.
	defaultConfidence = 5
	// minVerdictsForTaste is the minimum journey size before personalized
	// recommendations kick in.
	minVerdictsForTaste = 3
	// tasteBandWidth is how far (in percentage points) a movie's community
	// rating may sit from the user's own cinema percentage and still be
	// recommended.
	tasteBandWidth = 20
	// blindSpotMinVotes marks a movie as widely discussed.
	blindSpotMinVotes = 50
)

// Journal is the personal verdict log, persisted through the preference
// store so it survives restarts.
type Journal struct {
	store   *prefs.Store
	entries []model.JourneyEntry
	now     func() time.Time
}

// Open loads the journal from the preference store.
func Open(store *prefs.Store) (*Journal, error) {
	j := &Journal{store: store, now: time.Now}

	raw, err := store.Get(prefs.KeyJourney)
	if err != nil {
		return nil, err
	}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &j.entries); err != nil {
			return nil, err
		}
	}
	return j, nil
}

// Add appends a verdict for a movie, replacing any earlier entry for the
// same movie, and persists the log. Entries are kept newest-first.
func (j *Journal) Add(movie *model.Movie, choice model.Choice, confidence int, reasoning string) error {
	if confidence <= 0 {
		confidence = defaultConfidence
	}

	entry := model.JourneyEntry{
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		Choice:     choice,
		Timestamp:  j.now(),
		Confidence: confidence,
		Reasoning:  reasoning,
	}

	kept := j.entries[:0]
	for _, e := range j.entries {
		if e.MovieID != movie.ID {
			kept = append(kept, e)
		}
	}
	j.entries = append(kept, entry)
	sort.SliceStable(j.entries, func(a, b int) bool {
		return j.entries[a].Timestamp.After(j.entries[b].Timestamp)
	})

	return j.persist()
}

// Get returns this device's verdict for a movie, or nil.
func (j *Journal) Get(movieID int64) *model.JourneyEntry {
	for i := range j.entries {
		if j.entries[i].MovieID == movieID {
			return &j.entries[i]
		}
	}
	return nil
}

// Entries returns a copy of the log, newest first.
func (j *Journal) Entries() []model.JourneyEntry {
	out := make([]model.JourneyEntry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Stats derives the self-insight summary.
func (j *Journal) Stats() model.JourneyStats {
	stats := model.JourneyStats{TotalMoviesJudged: len(j.entries)}

	var confidenceSum int
	for _, e := range j.entries {
		if e.Choice == model.ChoiceCinema {
			stats.CinemaVerdicts++
		} else {
			stats.NotCinemaVerdicts++
		}
		c := e.Confidence
		if c <= 0 {
			c = defaultConfidence
		}
		confidenceSum += c
	}

	if len(j.entries) > 0 {
		stats.CinemaPercentage = int(math.Round(float64(stats.CinemaVerdicts) / float64(len(j.entries)) * 100))
		stats.AverageConfidence = math.Round(float64(confidenceSum)/float64(len(j.entries))*10) / 10
		stats.LastJudged = j.entries[0].Timestamp.Format("2006-01-02")
	}

	stats.JudgingStreak = j.streak()
	return stats
}

// streak counts consecutive days, ending today, with at least one verdict.
// Entries are newest-first.
func (j *Journal) streak() int {
	today := truncateDay(j.now())

	streak := 0
	for _, e := range j.entries {
		day := truncateDay(e.Timestamp)
		daysAgo := int(today.Sub(day).Hours() / 24)
		if daysAgo == streak {
			streak++
		} else if daysAgo > streak {
			break
		}
		// daysAgo < streak: another verdict on an already-counted day
	}
	return streak
}

// Taste derives the taste profile, or nil for an empty journal.
func (j *Journal) Taste() *model.TasteProfile {
	if len(j.entries) == 0 {
		return nil
	}
	stats := j.Stats()
	return &model.TasteProfile{
		CinemaPercentage:  stats.CinemaPercentage,
		TotalVerdicts:     stats.TotalMoviesJudged,
		AverageConfidence: stats.AverageConfidence,
	}
}

// Recommendations returns unjudged movies whose community cinema percentage
// sits within the taste band around this user's own percentage. With fewer
// than three verdicts there is no signal yet and the top of the given
// collection is returned as-is.
func (j *Journal) Recommendations(allMovies []model.Movie) []model.Movie {
	if len(j.entries) < minVerdictsForTaste {
		n := min(5, len(allMovies))
		out := make([]model.Movie, n)
		copy(out, allMovies[:n])
		return out
	}

	stats := j.Stats()
	judged := j.judgedSet()

	recommended := make([]model.Movie, 0)
	for _, m := range allMovies {
		if judged[m.ID] {
			continue
		}

		moviePct := 50.0
		if total := m.TotalVotes(); total > 0 {
			moviePct = float64(m.CinemaVotes) / float64(total) * 100
		}

		if math.Abs(moviePct-float64(stats.CinemaPercentage)) <= tasteBandWidth {
			recommended = append(recommended, m)
			if len(recommended) == 10 {
				break
			}
		}
	}
	return recommended
}

// BlindSpots returns widely discussed movies this device has not judged.
func (j *Journal) BlindSpots(allMovies []model.Movie) []model.BlindSpot {
	judged := j.judgedSet()

	spots := make([]model.BlindSpot, 0, 5)
	for _, m := range allMovies {
		if judged[m.ID] || m.TotalVotes() <= blindSpotMinVotes {
			continue
		}
		spots = append(spots, model.BlindSpot{
			MovieID:  m.ID,
			Title:    m.Title,
			Director: m.Director,
			Year:     m.Year,
			Reason:   "Highly discussed film in the community",
		})
		if len(spots) == 5 {
			break
		}
	}
	return spots
}

// Export produces the on-demand JSON document with an export timestamp.
func (j *Journal) Export() ([]byte, error) {
	doc := model.JourneyExport{
		Verdicts:   j.Entries(),
		Taste:      j.Taste(),
		ExportedAt: j.now(),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Clear erases the whole journey. Irreversible by design.
func (j *Journal) Clear() error {
	j.entries = nil
	return j.store.Clear(prefs.KeyJourney)
}

func (j *Journal) judgedSet() map[int64]bool {
	judged := make(map[int64]bool, len(j.entries))
	for _, e := range j.entries {
		judged[e.MovieID] = true
	}
	return judged
}

func (j *Journal) persist() error {
	raw, err := json.Marshal(j.entries)
	if err != nil {
		return err
	}
	return j.store.Set(prefs.KeyJourney, string(raw))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
