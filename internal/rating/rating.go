// Package rating holds the pure derivations over movie vote tallies:
// cinema percentage, classification, ranking, filtering and pagination.
// Nothing here performs I/O.
package rating

import (
	"math"
	"sort"

	"github.com/Hrhcoolshegs/verdict/internal/model"
)

// DefaultThreshold is the cinema-percentage cutoff for classifying a movie
// as Cinema. Configurable via CINEMA_THRESHOLD.
const DefaultThreshold = 79

// DefaultPageSize is the number of movies per poll page.
const DefaultPageSize = 12

// FilterKind selects a partition of the ranked collection.
type FilterKind string

const (
	FilterAll       FilterKind = "all"
	FilterCinema    FilterKind = "cinema"
	FilterNotCinema FilterKind = "not-cinema"
)

// Percentage returns the share of total votes that are "cinema", rounded
// half-up to an integer. Defined as 0 when there are no votes.
func Percentage(m *model.Movie) int {
	total := m.CinemaVotes + m.NotCinemaVotes
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(m.CinemaVotes) / float64(total) * 100))
}

// IsCinema reports whether the movie's cinema percentage meets the threshold.
func IsCinema(m *model.Movie, threshold int) bool {
	return Percentage(m) >= threshold
}

// Rank returns a new slice sorted by descending cinema percentage.
// Ties keep their insertion order (stable sort). The input is not mutated.
func Rank(movies []model.Movie) []model.Movie {
	ranked := make([]model.Movie, len(movies))
	copy(ranked, movies)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Percentage(&ranked[i]) > Percentage(&ranked[j])
	})
	return ranked
}

// Filter partitions movies by classification without mutating the input.
// An unknown kind behaves like FilterAll.
func Filter(movies []model.Movie, kind FilterKind, threshold int) []model.Movie {
	if kind == FilterAll || (kind != FilterCinema && kind != FilterNotCinema) {
		out := make([]model.Movie, len(movies))
		copy(out, movies)
		return out
	}

	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		cinema := IsCinema(&m, threshold)
		if (kind == FilterCinema) == cinema {
			out = append(out, m)
		}
	}
	return out
}

// Page is one pagination window over a filtered collection.
type Page struct {
	Movies     []model.Movie
	Index      int
	TotalPages int
}

// Paginate slices movies into a fixed-size page. The page index is clamped
// to [0, totalPages-1]; an empty collection yields page 0 of 0.
func Paginate(movies []model.Movie, index, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(movies) + pageSize - 1) / pageSize
	if totalPages == 0 {
		return Page{Movies: nil, Index: 0, TotalPages: 0}
	}

	if index < 0 {
		index = 0
	}
	if index > totalPages-1 {
		index = totalPages - 1
	}

	start := index * pageSize
	end := min(start+pageSize, len(movies))

	return Page{
		Movies:     movies[start:end],
		Index:      index,
		TotalPages: totalPages,
	}
}

// Response builds the API view of a movie with derived fields attached.
func Response(m *model.Movie, threshold int) model.MovieResponse {
	return model.MovieResponse{
		Movie:            *m,
		CinemaPercentage: Percentage(m),
		IsCinema:         IsCinema(m, threshold),
	}
}
