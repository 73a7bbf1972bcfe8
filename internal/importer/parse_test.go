package importer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinefilmes/catalog/internal/catalog/domain"
	"github.com/cinefilmes/catalog/internal/importer"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []string
	}{
		{"simple", "Action, Sci-Fi", []string{"Action", "Sci-Fi"}},
		{"extra whitespace", "  Action ,  Sci-Fi  ", []string{"Action", "Sci-Fi"}},
		{"empty entries dropped", "Action,,  ,Drama", []string{"Action", "Drama"}},
		{"repeated name kept once", "Action, Action, Drama, Action", []string{"Action", "Drama"}},
		{"empty cell", "", []string{}},
		{"single", "Drama", []string{"Drama"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, importer.SplitList(tt.cell))
		})
	}
}

func TestParseCast(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []domain.CastMember
	}{
		{
			"pairs",
			"Leonardo DiCaprio-Cobb; Elliot Page-Ariadne",
			[]domain.CastMember{
				{Actor: "Leonardo DiCaprio", Role: "Cobb"},
				{Actor: "Elliot Page", Role: "Ariadne"},
			},
		},
		{
			"hyphenless entry skipped",
			"Leonardo DiCaprio-Cobb; Tom Hardy",
			[]domain.CastMember{{Actor: "Leonardo DiCaprio", Role: "Cobb"}},
		},
		{
			"splits on first hyphen only",
			"Joseph Gordon-Levitt-Arthur",
			[]domain.CastMember{{Actor: "Joseph Gordon", Role: "Levitt-Arthur"}},
		},
		{
			"empty role kept",
			"Ken Watanabe-",
			[]domain.CastMember{{Actor: "Ken Watanabe", Role: ""}},
		},
		{
			"repeated actor keeps first entry",
			"Tom Hardy-Eames; Tom Hardy-Bane",
			[]domain.CastMember{{Actor: "Tom Hardy", Role: "Eames"}},
		},
		{"empty cell", "", []domain.CastMember{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, importer.ParseCast(tt.cell))
		})
	}
}

func TestParseReleaseDate(t *testing.T) {
	want := time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC)

	for _, cell := range []string{"2010-07-16", "16/07/2010", "2010-07-16 00:00:00"} {
		got, err := importer.ParseReleaseDate(cell)
		require.NoError(t, err, "cell %q", cell)
		assert.True(t, got.Equal(want), "cell %q parsed to %v", cell, got)
	}
}

func TestParseReleaseDateSerial(t *testing.T) {
	// 40375 is 2010-07-16 in the 1900 epoch.
	got, err := importer.ParseReleaseDate("40375")

	require.NoError(t, err)
	assert.Equal(t, 2010, got.Year())
	assert.Equal(t, time.July, got.Month())
	assert.Equal(t, 16, got.Day())
}

func TestParseReleaseDateInvalid(t *testing.T) {
	for _, cell := range []string{"", "not-a-date", "2010/07"} {
		_, err := importer.ParseReleaseDate(cell)
		assert.Error(t, err, "cell %q", cell)
	}
}
