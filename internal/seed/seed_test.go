package seed

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/Hrhcoolshegs/verdict/internal/model"
)

// memStore is an in-memory CatalogStore.
type memStore struct {
	movies []model.Movie
}

func (s *memStore) List(ctx context.Context) ([]model.Movie, error) {
	return s.movies, nil
}

func (s *memStore) Upsert(ctx context.Context, m *model.Movie) error {
	s.movies = append(s.movies, *m)
	return nil
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Godfather", "the godfather"},
		{"  2001: A Space   Odyssey! ", "2001 a space odyssey"},
		{"Léon", "lon"},
		{"WALL-E", "walle"},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRunValidatesAndDedupes(t *testing.T) {
	store := &memStore{movies: []model.Movie{
		{ID: 1, Title: "Heat", Year: 1995},
	}}
	s := New(store, rand.New(rand.NewSource(1)))

	entries := []Entry{
		{Title: "Heat", Year: 1995, Director: "Michael Mann", Description: "A crime-tinged tale of obsession."},
		{Title: "Stalker", Year: 1979, Director: "Andrei Tarkovsky", Description: "A sci-fi-tinged tale of faith."},
		{Title: "", Year: 1979, Director: "Nobody", Description: "Missing title."},
		{Title: "Too Old", Year: 1850, Director: "Nobody", Description: "Year out of range."},
	}

	summary, err := s.Run(context.Background(), entries)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.Added != 1 {
		t.Errorf("added = %d, want 1", summary.Added)
	}
	if summary.SkippedDuplicates != 1 {
		t.Errorf("skipped = %d, want 1", summary.SkippedDuplicates)
	}
	if summary.InvalidRows != 2 {
		t.Errorf("invalid = %d, want 2", summary.InvalidRows)
	}
	if len(store.movies) != 2 {
		t.Fatalf("store has %d movies, want 2", len(store.movies))
	}
	if store.movies[1].ID != 2 {
		t.Errorf("new movie id = %d, want 2", store.movies[1].ID)
	}
}

func TestEnrichIsDeterministicForFixedSeed(t *testing.T) {
	entry := Entry{Title: "Blade Runner", Year: 1982, Director: "Ridley Scott",
		Description: "A sci-fi-tinged tale of noir mystery in a neon city."}

	a := New(&memStore{}, rand.New(rand.NewSource(42))).Enrich(entry, 7)
	b := New(&memStore{}, rand.New(rand.NewSource(42))).Enrich(entry, 7)

	a.CreatedAt, b.CreatedAt = time.Time{}, time.Time{}
	a.LastUpdated, b.LastUpdated = time.Time{}, time.Time{}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different movies:\n%+v\n%+v", a, b)
	}
}

func TestEnrichMetadata(t *testing.T) {
	entry := Entry{Title: "Blade Runner", Year: 1982, Director: "Ridley Scott",
		Description: "A sci-fi-tinged tale of noir mystery in a neon city."}

	m := New(&memStore{}, rand.New(rand.NewSource(1))).Enrich(entry, 7)
	d := m.Details
	if d == nil {
		t.Fatal("expected details")
	}

	wantGenres := []string{"speculative-fiction", "neo-noir"}
	if !reflect.DeepEqual(d.MicroGenres, wantGenres) {
		t.Errorf("micro genres = %v, want %v", d.MicroGenres, wantGenres)
	}
	if d.RuntimeMinutes < 75 || d.RuntimeMinutes > 180 {
		t.Errorf("runtime %d outside 75..180", d.RuntimeMinutes)
	}
	if d.BudgetUSD <= 0 {
		t.Errorf("budget = %d, want positive", d.BudgetUSD)
	}
	if d.AspectRatio != "2.35:1" {
		t.Errorf("aspect ratio = %q, want 2.35:1 for 1982", d.AspectRatio)
	}
	for name, score := range d.CraftScores {
		if score < 1 || score > 10 {
			t.Errorf("craft score %s = %v outside 1..10", name, score)
		}
	}
	if d.Rationale == "" {
		t.Error("expected a rationale")
	}
	if len(d.DominantColors) != 3 {
		t.Errorf("dominant colors = %v, want 3 entries", d.DominantColors)
	}
}

func TestEnrichFallsBackToGenreNarrative(t *testing.T) {
	entry := Entry{Title: "Quiet Film", Year: 2005, Director: "Someone",
		Description: "A drama-tinged tale of ordinary days."}

	m := New(&memStore{}, rand.New(rand.NewSource(1))).Enrich(entry, 1)
	want := []string{"drama-narrative"}
	if !reflect.DeepEqual(m.Details.MicroGenres, want) {
		t.Errorf("micro genres = %v, want %v", m.Details.MicroGenres, want)
	}
}
