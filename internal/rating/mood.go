package rating

import (
	"math/rand"

	"github.com/Hrhcoolshegs/verdict/internal/model"
)

// Moods is the fixed mood catalogue offered to users.
var Moods = []string{
	"Friday Night Laughs",
	"Slow Burn & Feels",
	"Epic Action",
	"Indie Gems",
}

// DefaultMood is the mood selected when the user has no stored preference.
const DefaultMood = "Friday Night Laughs"

// moodGenres maps each mood to the micro-genres it draws from. The list
// covers both plain genre labels and the seeder's synthesized vocabulary.
var moodGenres = map[string][]string{
	"Friday Night Laughs": {"comedy", "screwball", "satire", "character-comedy", "social-satire", "musical-narrative"},
	"Slow Burn & Feels":   {"drama", "romance", "character-study", "romantic-drama", "family-saga", "period-piece", "drama-narrative"},
	"Epic Action":         {"action", "adventure", "sci-fi", "adventure-epic", "speculative-fiction", "crime-thriller"},
	"Indie Gems":          {"indie", "arthouse", "neo-noir", "psychological-thriller", "atmospheric-horror"},
}

// ValidMood reports whether mood is one of the known moods.
func ValidMood(mood string) bool {
	_, ok := moodGenres[mood]
	return ok
}

// RandomMood picks a mood using the given random source.
func RandomMood(rng *rand.Rand) string {
	return Moods[rng.Intn(len(Moods))]
}

// ByMood returns movies whose micro-genres match the mood, ranked by
// percentage. Movies without extended metadata never match. An unknown
// mood returns an empty slice.
func ByMood(movies []model.Movie, mood string) []model.Movie {
	genres, ok := moodGenres[mood]
	if !ok {
		return nil
	}

	wanted := make(map[string]bool, len(genres))
	for _, g := range genres {
		wanted[g] = true
	}

	matched := make([]model.Movie, 0)
	for _, m := range movies {
		if m.Details == nil {
			continue
		}
		for _, g := range m.Details.MicroGenres {
			if wanted[g] {
				matched = append(matched, m)
				break
			}
		}
	}
	return Rank(matched)
}
