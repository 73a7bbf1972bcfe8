package repository

import (
	"context"

	"github.com/cinefilmes/catalog/internal/catalog/domain"
)

// MovieRepository defines the interface for movie data access.
//
// Expected outcomes travel as sentinel errors: Create returns
// domain.ErrDuplicateMovie when a movie with the same title and release
// date exists; Get, Update and Delete return domain.ErrMovieNotFound when
// no movie matches the id.
type MovieRepository interface {
	List(ctx context.Context) ([]*domain.Movie, error)
	Get(ctx context.Context, id uint) (*domain.Movie, error)
	Create(ctx context.Context, movie *domain.Movie) error
	Update(ctx context.Context, movie *domain.Movie) error
	Delete(ctx context.Context, id uint) error
}
