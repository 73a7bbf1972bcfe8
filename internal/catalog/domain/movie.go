package domain

import (
	"time"
)

// Movie is the catalog aggregate: base fields plus the four relation sets.
// Genres, dubbing languages, subtitle languages and actors are shared
// reference entities identified by name; the aggregate carries names only,
// ids stay a persistence concern.
type Movie struct {
	ID             uint
	Title          string
	Synopsis       string
	ContentRating  *int
	IMDBRating     *float64
	RuntimeMinutes *int
	ReleaseDate    time.Time
	Cover          []byte

	Genres    []string
	Dubbings  []string
	Subtitles []string
	Cast      []CastMember
}

// CastMember links an actor name to the role played in one movie.
// One role per actor per movie.
type CastMember struct {
	Actor string
	Role  string
}

// ReleaseDay normalizes the release date to midnight UTC. Duplicate
// detection compares calendar days, not instants.
func (m *Movie) ReleaseDay() time.Time {
	y, mo, d := m.ReleaseDate.UTC().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
