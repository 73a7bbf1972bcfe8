package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cinefilmes/catalog/internal/catalog/domain"
	"github.com/cinefilmes/catalog/internal/catalog/repository"
)

type MovieRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo *repository.GormRepository
	ctx  context.Context
}

func (suite *MovieRepositoryTestSuite) SetupTest() {
	suite.ctx = context.Background()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(db.Exec("PRAGMA foreign_keys = ON").Error)
	suite.Require().NoError(repository.InitializeSchema(db))

	suite.db = db
	suite.repo = repository.NewGormRepository(db)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func testMovie() *domain.Movie {
	return &domain.Movie{
		Title:          "Inception",
		Synopsis:       "A thief who steals corporate secrets through dream-sharing technology.",
		ContentRating:  intPtr(14),
		IMDBRating:     floatPtr(8.8),
		RuntimeMinutes: intPtr(148),
		ReleaseDate:    time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC),
		Cover:          []byte{0x89, 0x50, 0x4e, 0x47},
		Genres:         []string{"Action", "Sci-Fi"},
		Dubbings:       []string{"Português", "Inglês"},
		Subtitles:      []string{"Português"},
		Cast: []domain.CastMember{
			{Actor: "Leonardo DiCaprio", Role: "Cobb"},
			{Actor: "Elliot Page", Role: "Ariadne"},
		},
	}
}

func (suite *MovieRepositoryTestSuite) TestCreateAssignsID() {
	movie := testMovie()

	err := suite.repo.Create(suite.ctx, movie)

	suite.NoError(err)
	suite.NotZero(movie.ID)
}

func (suite *MovieRepositoryTestSuite) TestCreateDuplicateRejected() {
	first := testMovie()
	suite.Require().NoError(suite.repo.Create(suite.ctx, first))

	second := testMovie()
	err := suite.repo.Create(suite.ctx, second)

	suite.ErrorIs(err, domain.ErrDuplicateMovie)

	var count int64
	suite.Require().NoError(suite.db.Model(&repository.MovieModel{}).
		Where("title = ?", "Inception").Count(&count).Error)
	suite.EqualValues(1, count)
}

func (suite *MovieRepositoryTestSuite) TestCreateSameTitleDifferentDate() {
	first := testMovie()
	suite.Require().NoError(suite.repo.Create(suite.ctx, first))

	second := testMovie()
	second.ReleaseDate = time.Date(2020, 8, 12, 0, 0, 0, 0, time.UTC)

	suite.NoError(suite.repo.Create(suite.ctx, second))
}

func (suite *MovieRepositoryTestSuite) TestDuplicateCheckIsExact() {
	first := testMovie()
	suite.Require().NoError(suite.repo.Create(suite.ctx, first))

	// Case differs: no normalization, not a duplicate.
	second := testMovie()
	second.Title = "inception"

	suite.NoError(suite.repo.Create(suite.ctx, second))
}

func (suite *MovieRepositoryTestSuite) TestRoundTrip() {
	movie := testMovie()
	suite.Require().NoError(suite.repo.Create(suite.ctx, movie))

	retrieved, err := suite.repo.Get(suite.ctx, movie.ID)

	suite.Require().NoError(err)
	suite.Equal(movie.Title, retrieved.Title)
	suite.Equal(movie.Synopsis, retrieved.Synopsis)
	suite.Equal(movie.ContentRating, retrieved.ContentRating)
	suite.Equal(movie.IMDBRating, retrieved.IMDBRating)
	suite.Equal(movie.RuntimeMinutes, retrieved.RuntimeMinutes)
	suite.True(retrieved.ReleaseDate.Equal(movie.ReleaseDay()))
	suite.Equal(movie.Cover, retrieved.Cover)
	suite.ElementsMatch(movie.Genres, retrieved.Genres)
	suite.ElementsMatch(movie.Dubbings, retrieved.Dubbings)
	suite.ElementsMatch(movie.Subtitles, retrieved.Subtitles)
	suite.ElementsMatch(movie.Cast, retrieved.Cast)
}

func (suite *MovieRepositoryTestSuite) TestGetNotFound() {
	_, err := suite.repo.Get(suite.ctx, 9999)

	suite.ErrorIs(err, domain.ErrMovieNotFound)
}

func (suite *MovieRepositoryTestSuite) TestLookupUpsertIsIdempotent() {
	first := testMovie()
	suite.Require().NoError(suite.repo.Create(suite.ctx, first))

	second := testMovie()
	second.Title = "Interstellar"
	second.Genres = []string{"Action", "Drama"}
	suite.Require().NoError(suite.repo.Create(suite.ctx, second))

	// "Action" was referenced by both movies: exactly one row exists.
	var count int64
	suite.Require().NoError(suite.db.Model(&repository.GenreModel{}).
		Where("name = ?", "Action").Count(&count).Error)
	suite.EqualValues(1, count)

	// Both movies resolve to the same genre id.
	var genre repository.GenreModel
	suite.Require().NoError(suite.db.Where("name = ?", "Action").First(&genre).Error)
	var links int64
	suite.Require().NoError(suite.db.Model(&repository.MovieGenreModel{}).
		Where("genre_id = ?", genre.ID).Count(&links).Error)
	suite.EqualValues(2, links)
}

func (suite *MovieRepositoryTestSuite) TestEmptyRelationNameRejected() {
	movie := testMovie()
	movie.Genres = []string{"  "}

	err := suite.repo.Create(suite.ctx, movie)

	suite.ErrorIs(err, domain.ErrEmptyName)

	// The whole operation rolled back, no base row survives.
	var count int64
	suite.Require().NoError(suite.db.Model(&repository.MovieModel{}).Count(&count).Error)
	suite.EqualValues(0, count)
}

func (suite *MovieRepositoryTestSuite) TestEmptyRoleStoredAsIs() {
	movie := testMovie()
	movie.Cast = []domain.CastMember{{Actor: "Ken Watanabe", Role: ""}}
	suite.Require().NoError(suite.repo.Create(suite.ctx, movie))

	retrieved, err := suite.repo.Get(suite.ctx, movie.ID)

	suite.Require().NoError(err)
	suite.Equal([]domain.CastMember{{Actor: "Ken Watanabe", Role: ""}}, retrieved.Cast)
}

func (suite *MovieRepositoryTestSuite) TestUpdateReplacesRelations() {
	movie := testMovie()
	movie.Genres = []string{"Action"}
	suite.Require().NoError(suite.repo.Create(suite.ctx, movie))

	movie.Genres = []string{"Comedy"}
	suite.Require().NoError(suite.repo.Update(suite.ctx, movie))

	retrieved, err := suite.repo.Get(suite.ctx, movie.ID)
	suite.Require().NoError(err)
	suite.Equal([]string{"Comedy"}, retrieved.Genres)

	// No link row referencing "Action" survives for this movie.
	var genre repository.GenreModel
	suite.Require().NoError(suite.db.Where("name = ?", "Action").First(&genre).Error)
	var links int64
	suite.Require().NoError(suite.db.Model(&repository.MovieGenreModel{}).
		Where("movie_id = ? AND genre_id = ?", movie.ID, genre.ID).Count(&links).Error)
	suite.EqualValues(0, links)
}

func (suite *MovieRepositoryTestSuite) TestUpdateOverwritesBaseFields() {
	movie := testMovie()
	suite.Require().NoError(suite.repo.Create(suite.ctx, movie))

	movie.Synopsis = "Updated synopsis."
	movie.ContentRating = nil
	movie.IMDBRating = floatPtr(9.0)
	suite.Require().NoError(suite.repo.Update(suite.ctx, movie))

	retrieved, err := suite.repo.Get(suite.ctx, movie.ID)
	suite.Require().NoError(err)
	suite.Equal("Updated synopsis.", retrieved.Synopsis)
	suite.Nil(retrieved.ContentRating)
	suite.Equal(floatPtr(9.0), retrieved.IMDBRating)
}

func (suite *MovieRepositoryTestSuite) TestUpdateNotFound() {
	movie := testMovie()
	movie.ID = 9999

	err := suite.repo.Update(suite.ctx, movie)

	suite.ErrorIs(err, domain.ErrMovieNotFound)
}

func (suite *MovieRepositoryTestSuite) TestDeleteRemovesAllLinkRows() {
	movie := testMovie()
	suite.Require().NoError(suite.repo.Create(suite.ctx, movie))

	suite.Require().NoError(suite.repo.Delete(suite.ctx, movie.ID))

	for name, model := range map[string]interface{}{
		"movie_genres":    &repository.MovieGenreModel{},
		"movie_dubbings":  &repository.MovieDubbingModel{},
		"movie_subtitles": &repository.MovieSubtitleModel{},
		"cast_members":    &repository.CastMemberModel{},
	} {
		var count int64
		suite.Require().NoError(suite.db.Model(model).
			Where("movie_id = ?", movie.ID).Count(&count).Error)
		suite.EqualValues(0, count, "link rows left in %s", name)
	}

	_, err := suite.repo.Get(suite.ctx, movie.ID)
	suite.ErrorIs(err, domain.ErrMovieNotFound)
}

func (suite *MovieRepositoryTestSuite) TestDeleteKeepsReferenceEntities() {
	movie := testMovie()
	suite.Require().NoError(suite.repo.Create(suite.ctx, movie))
	suite.Require().NoError(suite.repo.Delete(suite.ctx, movie.ID))

	var count int64
	suite.Require().NoError(suite.db.Model(&repository.ActorModel{}).Count(&count).Error)
	suite.EqualValues(2, count)
}

func (suite *MovieRepositoryTestSuite) TestDeleteNotFound() {
	err := suite.repo.Delete(suite.ctx, 9999)

	suite.ErrorIs(err, domain.ErrMovieNotFound)
}

func (suite *MovieRepositoryTestSuite) TestListInsertionOrder() {
	for i := 0; i < 3; i++ {
		movie := testMovie()
		movie.Title = fmt.Sprintf("Movie %d", i)
		suite.Require().NoError(suite.repo.Create(suite.ctx, movie))
	}

	movies, err := suite.repo.List(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(movies, 3)
	for i, movie := range movies {
		suite.Equal(fmt.Sprintf("Movie %d", i), movie.Title)
	}
}

func (suite *MovieRepositoryTestSuite) TestListEmpty() {
	movies, err := suite.repo.List(suite.ctx)

	suite.NoError(err)
	suite.Empty(movies)
}

func TestMovieRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MovieRepositoryTestSuite))
}
