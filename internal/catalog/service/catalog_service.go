package service

import (
	"context"
	"errors"

	"github.com/cinefilmes/catalog/internal/catalog/domain"
	"github.com/cinefilmes/catalog/internal/catalog/repository"
	pkgerrors "github.com/cinefilmes/catalog/pkg/errors"
	"github.com/cinefilmes/catalog/pkg/interfaces"
)

// CatalogService handles movie catalog business logic.
type CatalogService struct {
	repo   repository.MovieRepository
	logger interfaces.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.MovieRepository, logger interfaces.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// ListMovies lists every movie with its relation sets.
func (s *CatalogService) ListMovies(ctx context.Context) ([]*domain.Movie, error) {
	return s.repo.List(ctx)
}

// GetMovie retrieves a movie by id.
func (s *CatalogService) GetMovie(ctx context.Context, id uint) (*domain.Movie, error) {
	return s.repo.Get(ctx, id)
}

// CreateMovie validates and creates a new movie. A movie with the same
// title and release date is reported as domain.ErrDuplicateMovie.
func (s *CatalogService) CreateMovie(ctx context.Context, movie *domain.Movie) error {
	if movie.Title == "" {
		return pkgerrors.BadRequest("movie title is required")
	}
	if movie.ReleaseDate.IsZero() {
		return pkgerrors.BadRequest("movie release date is required")
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		if !errors.Is(err, domain.ErrDuplicateMovie) {
			s.logger.Error("Failed to create movie",
				interfaces.String("title", movie.Title),
				interfaces.Error(err))
		}
		return err
	}

	s.logger.Info("Movie created",
		interfaces.Uint("id", movie.ID),
		interfaces.String("title", movie.Title))

	return nil
}

// UpdateMovie validates and overwrites an existing movie, replacing its
// relation sets in full.
func (s *CatalogService) UpdateMovie(ctx context.Context, movie *domain.Movie) error {
	if movie.ID == 0 {
		return pkgerrors.BadRequest("movie id is required")
	}
	if movie.Title == "" {
		return pkgerrors.BadRequest("movie title is required")
	}
	if movie.ReleaseDate.IsZero() {
		return pkgerrors.BadRequest("movie release date is required")
	}

	if err := s.repo.Update(ctx, movie); err != nil {
		if !errors.Is(err, domain.ErrMovieNotFound) {
			s.logger.Error("Failed to update movie",
				interfaces.Uint("id", movie.ID),
				interfaces.Error(err))
		}
		return err
	}

	s.logger.Info("Movie updated",
		interfaces.Uint("id", movie.ID),
		interfaces.String("title", movie.Title))

	return nil
}

// DeleteMovie deletes a movie and its link rows.
func (s *CatalogService) DeleteMovie(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrMovieNotFound) {
			s.logger.Error("Failed to delete movie",
				interfaces.Uint("id", id),
				interfaces.Error(err))
		}
		return err
	}

	s.logger.Info("Movie deleted", interfaces.Uint("id", id))

	return nil
}
