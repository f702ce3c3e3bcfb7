package model

import "time"

// Movie represents a catalog entry with community vote tallies.
type Movie struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Director       string    `json:"director"`
	Year           int       `json:"year"`
	Poster         string    `json:"poster"`
	CinemaVotes    int       `json:"cinemaVotes"`
	NotCinemaVotes int       `json:"notCinemaVotes"`
	CreatedAt      time.Time `json:"-"`
	LastUpdated    time.Time `json:"lastUpdated"`

	// Extended metadata, populated by the seeder. Optional.
	Details *MovieDetails `json:"details,omitempty"`
}

// TotalVotes returns the combined vote count across both choices.
func (m *Movie) TotalVotes() int {
	return m.CinemaVotes + m.NotCinemaVotes
}

// MovieDetails holds the optional extended metadata for a movie.
type MovieDetails struct {
	Plot           string             `json:"plot,omitempty"`
	RuntimeMinutes int                `json:"runtimeMinutes,omitempty"`
	BudgetUSD      int64              `json:"budgetUsd,omitempty"`
	AspectRatio    string             `json:"aspectRatio,omitempty"`
	MicroGenres    []string           `json:"microGenres,omitempty"`
	CulturalTags   []string           `json:"culturalTags,omitempty"`
	CraftScores    map[string]float64 `json:"craftScores,omitempty"`
	Rationale      string             `json:"rationale,omitempty"`
	DominantColors []string           `json:"dominantColors,omitempty"`
}

// MovieResponse is the API response for movie lookups, with derived fields.
type MovieResponse struct {
	Movie
	CinemaPercentage int  `json:"cinemaPercentage"`
	IsCinema         bool `json:"isCinema"`
}

// StatsResponse is the API response for global statistics.
type StatsResponse struct {
	TotalMovies    int `json:"totalMovies"`
	TotalVerdicts  int `json:"totalVerdicts"`
	CinemaTitles   int `json:"cinemaTitles"`
	CinemaVotes    int `json:"cinemaVotes"`
	NotCinemaVotes int `json:"notCinemaVotes"`
}
