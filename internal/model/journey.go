package model

import "time"

// JourneyEntry is one locally recorded verdict in the personal journey log.
// The log is non-authoritative and never reconciled against server counts.
type JourneyEntry struct {
	MovieID    int64     `json:"movieId"`
	MovieTitle string    `json:"movieTitle"`
	Choice     Choice    `json:"choice"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence int       `json:"confidence,omitempty"`
	Reasoning  string    `json:"reasoning,omitempty"`
}

// JourneyStats summarizes the local journey for self-insight views.
type JourneyStats struct {
	TotalMoviesJudged int     `json:"totalMoviesJudged"`
	CinemaVerdicts    int     `json:"cinemaVerdicts"`
	NotCinemaVerdicts int     `json:"notCinemaVerdicts"`
	CinemaPercentage  int     `json:"cinemaPercentage"`
	JudgingStreak     int     `json:"judgingStreak"`
	LastJudged        string  `json:"lastJudged,omitempty"`
	AverageConfidence float64 `json:"averageConfidence"`
}

// TasteProfile captures the derived preferences of the local journey.
type TasteProfile struct {
	CinemaPercentage  int     `json:"cinemaPercentage"`
	TotalVerdicts     int     `json:"totalVerdicts"`
	AverageConfidence float64 `json:"averageConfidence"`
}

// BlindSpot is a widely discussed movie the local user has not judged yet.
type BlindSpot struct {
	MovieID  int64  `json:"movieId"`
	Title    string `json:"title"`
	Director string `json:"director"`
	Year     int    `json:"year"`
	Reason   string `json:"reason"`
}

// JourneyExport is the on-demand JSON export of the personal journey.
type JourneyExport struct {
	Verdicts   []JourneyEntry `json:"verdicts"`
	Taste      *TasteProfile  `json:"tasteProfile,omitempty"`
	ExportedAt time.Time      `json:"exportedAt"`
}
