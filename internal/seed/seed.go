// Package seed imports catalog entries from minimal title/year/director
// rows and synthesizes the extended metadata the catalog serves. Synthesis
// is deterministic for a fixed random source.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Hrhcoolshegs/verdict/internal/model"
)

// Entry is one minimal import row.
type Entry struct {
	Title       string `json:"title"`
	Year        int    `json:"year"`
	Director    string `json:"director"`
	Description string `json:"short_description"`
}

// Summary reports what an import run did.
type Summary struct {
	Added             int
	SkippedDuplicates int
	InvalidRows       int
	Errors            []string
}

// CatalogStore is the slice of the movie repository the seeder needs.
type CatalogStore interface {
	List(ctx context.Context) ([]model.Movie, error)
	Upsert(ctx context.Context, m *model.Movie) error
}

// Seeder enriches and inserts import entries.
type Seeder struct {
	store CatalogStore
	rng   *rand.Rand
}

func New(store CatalogStore, rng *rand.Rand) *Seeder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Seeder{store: store, rng: rng}
}

// Run validates, dedupes, and inserts the given entries. Existing movies
// are never overwritten; duplicates count against the summary instead.
func (s *Seeder) Run(ctx context.Context, entries []Entry) (*Summary, error) {
	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing catalog: %w", err)
	}

	seen := make(map[string]bool, len(existing))
	var nextID int64 = 1
	for _, m := range existing {
		seen[dedupeKey(m.Title, m.Year)] = true
		if m.ID >= nextID {
			nextID = m.ID + 1
		}
	}

	summary := &Summary{}
	for _, e := range entries {
		if !e.valid() {
			summary.InvalidRows++
			summary.Errors = append(summary.Errors, fmt.Sprintf("invalid row: %q", e.Title))
			continue
		}

		key := dedupeKey(e.Title, e.Year)
		if seen[key] {
			summary.SkippedDuplicates++
			continue
		}

		movie := s.Enrich(e, nextID)
		if err := s.store.Upsert(ctx, movie); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("insert %q: %v", e.Title, err))
			continue
		}

		seen[key] = true
		nextID++
		summary.Added++
		log.Debug().Str("title", movie.Title).Int("year", movie.Year).Msg("seeded movie")
	}
	return summary, nil
}

func (e Entry) valid() bool {
	currentYear := time.Now().Year()
	return strings.TrimSpace(e.Title) != "" &&
		strings.TrimSpace(e.Director) != "" &&
		strings.TrimSpace(e.Description) != "" &&
		e.Year >= 1900 && e.Year <= currentYear+5
}

var nonWord = regexp.MustCompile(`[^\w\s]`)
var whitespace = regexp.MustCompile(`\s+`)

// NormalizeTitle strips punctuation and collapses whitespace for duplicate
// detection.
func NormalizeTitle(title string) string {
	t := strings.ToLower(title)
	t = nonWord.ReplaceAllString(t, "")
	t = whitespace.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

func dedupeKey(title string, year int) string {
	return fmt.Sprintf("%s|%d", NormalizeTitle(title), year)
}

var genrePattern = regexp.MustCompile(`A (\w+)-tinged tale`)

// keyword -> micro-genre, checked in order so output is stable.
var microGenreRules = []struct {
	keyword string
	genre   string
}{
	{"thriller", "psychological-thriller"},
	{"romance", "romantic-drama"},
	{"sci-fi", "speculative-fiction"},
	{"horror", "atmospheric-horror"},
	{"comedy", "character-comedy"},
	{"adventure", "adventure-epic"},
	{"mystery", "neo-noir"},
	{"war", "war-drama"},
	{"family", "family-saga"},
	{"musical", "musical-narrative"},
	{"animation", "animated-feature"},
	{"western", "modern-western"},
	{"historical", "period-piece"},
	{"biopic", "biographical-drama"},
	{"satire", "social-satire"},
	{"noir", "neo-noir"},
	{"crime", "crime-thriller"},
	{"sports", "sports-drama"},
}

// Enrich synthesizes full metadata for an import row. The same entry, id,
// and seed always produce the same movie.
func (s *Seeder) Enrich(e Entry, id int64) *model.Movie {
	description := strings.ToLower(e.Description)

	genre := "drama"
	if m := genrePattern.FindStringSubmatch(e.Description); m != nil {
		genre = m[1]
	}

	var microGenres []string
	for _, rule := range microGenreRules {
		if strings.Contains(description, rule.keyword) && !contains(microGenres, rule.genre) {
			microGenres = append(microGenres, rule.genre)
		}
	}
	if len(microGenres) == 0 {
		microGenres = []string{genre + "-narrative"}
	}

	now := time.Now()
	movie := &model.Movie{
		ID:       id,
		Title:    strings.TrimSpace(e.Title),
		Director: strings.TrimSpace(e.Director),
		Year:     e.Year,
		Poster:   posterURL(id),
		// Demo tallies so a fresh catalog has something to rank.
		CinemaVotes:    s.rng.Intn(100),
		NotCinemaVotes: s.rng.Intn(50),
		CreatedAt:      now,
		LastUpdated:    now,
		Details: &model.MovieDetails{
			Plot:           e.Description,
			RuntimeMinutes: s.runtime(genre, e.Year),
			BudgetUSD:      s.budget(genre, e.Year),
			AspectRatio:    s.aspectRatio(e.Year),
			MicroGenres:    microGenres,
			CulturalTags:   culturalTags(genre, e.Year),
			CraftScores: map[string]float64{
				"technicalCraftsmanship": float64(s.rng.Intn(4) + 6),
				"narrativeDepth":         float64(s.rng.Intn(5) + 5),
				"artisticAmbition":       float64(s.rng.Intn(6) + 4),
			},
			DominantColors: dominantColors(genre, e.Year),
		},
	}
	movie.Details.Rationale = s.rationale(movie, genre, microGenres)
	return movie
}

func (s *Seeder) runtime(genre string, year int) int {
	base := 110
	switch genre {
	case "epic", "historical":
		base = 150
	case "comedy", "horror":
		base = 95
	case "animation":
		base = 85
	}

	switch {
	case year < 1960:
		base -= 15
	case year > 2000:
		base += 10
	}

	minutes := base + s.rng.Intn(20) - 10
	return clamp(minutes, 75, 180)
}

func (s *Seeder) budget(genre string, year int) int64 {
	var base float64
	switch {
	case year < 1950:
		base = 500_000
	case year < 1980:
		base = 2_000_000
	case year < 2000:
		base = 15_000_000
	case year < 2010:
		base = 35_000_000
	default:
		base = 50_000_000
	}

	multiplier := 1.0
	switch genre {
	case "sci-fi", "adventure":
		multiplier = 1.5
	case "horror", "comedy":
		multiplier = 0.7
	case "animation":
		multiplier = 1.3
	}

	return int64(base * multiplier * (0.5 + s.rng.Float64()))
}

func (s *Seeder) aspectRatio(year int) string {
	switch {
	case year < 1950:
		return "1.37:1"
	case year < 1970:
		return "1.85:1"
	case year < 1990:
		return "2.35:1"
	}
	if s.rng.Float64() > 0.3 {
		return "2.39:1"
	}
	return "1.85:1"
}

func culturalTags(genre string, year int) []string {
	var tags []string
	spans := []struct {
		from, to int
		tag      string
	}{
		{1930, 1945, "Golden Age Hollywood"},
		{1945, 1965, "Post-War Cinema"},
		{1960, 1975, "New Hollywood"},
		{1970, 1990, "Blockbuster Era"},
		{1990, 2010, "Independent Film Renaissance"},
	}
	for _, s := range spans {
		if year >= s.from && year <= s.to {
			tags = append(tags, s.tag)
		}
	}
	if year >= 2000 {
		tags = append(tags, "Digital Cinema Revolution")
	}
	if year >= 2010 {
		tags = append(tags, "Streaming Era")
	}
	if genre == "horror" && year >= 1970 {
		tags = append(tags, "Horror Renaissance")
	}
	if genre == "sci-fi" && year >= 1980 {
		tags = append(tags, "Sci-Fi Golden Age")
	}
	return tags
}

func dominantColors(genre string, year int) []string {
	switch {
	case genre == "noir":
		return []string{"#1a1a1a", "#f5f5f5", "#8b0000"}
	case genre == "sci-fi":
		return []string{"#0a0a2e", "#00ffff", "#ff6b35"}
	case year < 1960:
		return []string{"#2c2c2c", "#f0f0f0", "#8b4513"}
	}
	return []string{"#1e3a8a", "#fbbf24", "#dc2626"}
}

func (s *Seeder) rationale(m *model.Movie, genre string, microGenres []string) string {
	era := "modern"
	if m.Year < 1960 {
		era = "classical"
	}
	craft := "compelling"
	if genre == "noir" {
		craft = "masterful"
	}
	tradition := "contemporary"
	if m.Year < 1980 {
		tradition = "traditional"
	}

	templates := []string{
		fmt.Sprintf("%q demonstrates %s visual storytelling through its %s approach to %s.", m.Title, craft, era, microGenres[0]),
		"The film's exploration of the human condition elevates it beyond mere entertainment into the realm of cinematic art.",
		fmt.Sprintf("%s's direction showcases a deep understanding of %s filmmaking techniques that serve the story's emotional core.", m.Director, tradition),
		fmt.Sprintf("This %d work represents a significant contribution to %s cinema.", m.Year, genre),
	}
	return templates[s.rng.Intn(len(templates))]
}

func posterURL(id int64) string {
	n := 1_000_000 + id%1_000_000
	return fmt.Sprintf("https://images.pexels.com/photos/%d/pexels-photo-%d.jpeg?auto=compress&cs=tinysrgb&w=400&h=600&fit=crop", n, n)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
