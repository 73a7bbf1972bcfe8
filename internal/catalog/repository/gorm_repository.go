package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cinefilmes/catalog/internal/catalog/domain"
	pkgerrors "github.com/cinefilmes/catalog/pkg/errors"
	"github.com/cinefilmes/catalog/pkg/repository"
)

// GormRepository implements MovieRepository using GORM over SQLite.
//
// Every operation runs inside one transaction: commit on success, rollback
// on any error path. There is no cross-operation transaction.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM movie repository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// reference is implemented by the four named reference entity models.
type reference interface {
	EntityID() uint
	SetName(name string)
}

// resolveOrCreate returns the id of the reference entity with the given
// name, inserting it first when absent. Within one transaction two calls
// with the same name return the same id.
func resolveOrCreate[T any, PT interface {
	*T
	reference
}](ctx context.Context, tx *gorm.DB, name string) (uint, error) {
	if strings.TrimSpace(name) == "" {
		return 0, domain.ErrEmptyName
	}

	existing, err := repository.FindOneBy[T](ctx, tx, "name = ?", name)
	if err == nil {
		return PT(existing).EntityID(), nil
	}
	if !pkgerrors.IsNotFound(err) {
		return 0, err
	}

	var entity T
	ref := PT(&entity)
	ref.SetName(name)
	if err := repository.Create(ctx, tx, &entity); err != nil {
		return 0, err
	}
	return ref.EntityID(), nil
}

// List returns every movie with all four relation sets, in natural row order.
func (r *GormRepository) List(ctx context.Context) ([]*domain.Movie, error) {
	var movies []*domain.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		models, err := repository.List[MovieModel](ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to list movies: %w", err)
		}
		movies = make([]*domain.Movie, 0, len(models))
		for _, model := range models {
			movie, err := r.assemble(ctx, tx, model)
			if err != nil {
				return err
			}
			movies = append(movies, movie)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// Get returns one movie with its relation sets, or domain.ErrMovieNotFound.
func (r *GormRepository) Get(ctx context.Context, id uint) (*domain.Movie, error) {
	var movie *domain.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := repository.FindByID[MovieModel](ctx, tx, id)
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				return domain.ErrMovieNotFound
			}
			return err
		}
		movie, err = r.assemble(ctx, tx, model)
		return err
	})
	if err != nil {
		return nil, err
	}
	return movie, nil
}

// Create inserts the movie and its link rows, resolving reference entities
// by name. Returns domain.ErrDuplicateMovie when a movie with the same
// title and release date already exists; comparison is exact, callers
// normalize titles upstream. On success the assigned id is written back to
// the aggregate.
func (r *GormRepository) Create(ctx context.Context, movie *domain.Movie) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		releaseDay := movie.ReleaseDay()

		existing, err := repository.Count[MovieModel](ctx, tx, "title = ? AND release_date = ?", movie.Title, releaseDay)
		if err != nil {
			return fmt.Errorf("failed to check for duplicates: %w", err)
		}
		if existing > 0 {
			return domain.ErrDuplicateMovie
		}

		model := &MovieModel{
			Title:          movie.Title,
			Synopsis:       movie.Synopsis,
			ContentRating:  movie.ContentRating,
			IMDBRating:     movie.IMDBRating,
			RuntimeMinutes: movie.RuntimeMinutes,
			ReleaseDate:    releaseDay,
			Cover:          movie.Cover,
		}
		if err := repository.Create(ctx, tx, model); err != nil {
			if pkgerrors.IsConflict(err) {
				return domain.ErrDuplicateMovie
			}
			return fmt.Errorf("failed to create movie: %w", err)
		}

		if err := r.insertRelations(ctx, tx, model.ID, movie); err != nil {
			return err
		}

		movie.ID = model.ID
		return nil
	})
}

// Update overwrites all base columns, then replaces the four relation sets
// in full. No incremental diff: link rows missing from the input are gone
// afterwards. Returns domain.ErrMovieNotFound when the id does not exist.
func (r *GormRepository) Update(ctx context.Context, movie *domain.Movie) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		releaseDay := movie.ReleaseDay()

		result := tx.WithContext(ctx).Model(&MovieModel{}).
			Where("id = ?", movie.ID).
			Select("title", "synopsis", "content_rating", "imdb_rating", "runtime_minutes", "release_date", "cover").
			Updates(MovieModel{
				Title:          movie.Title,
				Synopsis:       movie.Synopsis,
				ContentRating:  movie.ContentRating,
				IMDBRating:     movie.IMDBRating,
				RuntimeMinutes: movie.RuntimeMinutes,
				ReleaseDate:    releaseDay,
				Cover:          movie.Cover,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update movie: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrMovieNotFound
		}

		if err := r.removeRelations(ctx, tx, movie.ID); err != nil {
			return err
		}
		return r.insertRelations(ctx, tx, movie.ID, movie)
	})
}

// Delete removes the movie and its link rows. The explicit link deletion is
// redundant under cascade enforcement but keeps the store consistent when
// the pragma is off. Returns domain.ErrMovieNotFound when the id does not
// exist.
func (r *GormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.removeRelations(ctx, tx, id); err != nil {
			return err
		}
		if err := repository.Delete[MovieModel](ctx, tx, id); err != nil {
			if pkgerrors.IsNotFound(err) {
				return domain.ErrMovieNotFound
			}
			return fmt.Errorf("failed to delete movie: %w", err)
		}
		return nil
	})
}

// assemble builds the aggregate from the base row and its join queries.
func (r *GormRepository) assemble(ctx context.Context, tx *gorm.DB, model *MovieModel) (*domain.Movie, error) {
	genres, err := r.movieGenres(ctx, tx, model.ID)
	if err != nil {
		return nil, err
	}
	dubbings, err := r.movieDubbings(ctx, tx, model.ID)
	if err != nil {
		return nil, err
	}
	subtitles, err := r.movieSubtitles(ctx, tx, model.ID)
	if err != nil {
		return nil, err
	}
	cast, err := r.movieCast(ctx, tx, model.ID)
	if err != nil {
		return nil, err
	}

	return &domain.Movie{
		ID:             model.ID,
		Title:          model.Title,
		Synopsis:       model.Synopsis,
		ContentRating:  model.ContentRating,
		IMDBRating:     model.IMDBRating,
		RuntimeMinutes: model.RuntimeMinutes,
		ReleaseDate:    model.ReleaseDate,
		Cover:          model.Cover,
		Genres:         genres,
		Dubbings:       dubbings,
		Subtitles:      subtitles,
		Cast:           cast,
	}, nil
}

func (r *GormRepository) movieGenres(ctx context.Context, tx *gorm.DB, movieID uint) ([]string, error) {
	var names []string
	err := tx.WithContext(ctx).Table("genres").
		Joins("JOIN movie_genres ON movie_genres.genre_id = genres.id").
		Where("movie_genres.movie_id = ?", movieID).
		Pluck("genres.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch genres: %w", err)
	}
	return names, nil
}

func (r *GormRepository) movieDubbings(ctx context.Context, tx *gorm.DB, movieID uint) ([]string, error) {
	var names []string
	err := tx.WithContext(ctx).Table("dubbing_languages").
		Joins("JOIN movie_dubbings ON movie_dubbings.dubbing_language_id = dubbing_languages.id").
		Where("movie_dubbings.movie_id = ?", movieID).
		Pluck("dubbing_languages.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dubbing languages: %w", err)
	}
	return names, nil
}

func (r *GormRepository) movieSubtitles(ctx context.Context, tx *gorm.DB, movieID uint) ([]string, error) {
	var names []string
	err := tx.WithContext(ctx).Table("subtitle_languages").
		Joins("JOIN movie_subtitles ON movie_subtitles.subtitle_language_id = subtitle_languages.id").
		Where("movie_subtitles.movie_id = ?", movieID).
		Pluck("subtitle_languages.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subtitle languages: %w", err)
	}
	return names, nil
}

func (r *GormRepository) movieCast(ctx context.Context, tx *gorm.DB, movieID uint) ([]domain.CastMember, error) {
	var rows []struct {
		Name string
		Role string
	}
	err := tx.WithContext(ctx).Table("actors").
		Select("actors.name AS name, cast_members.role AS role").
		Joins("JOIN cast_members ON cast_members.actor_id = actors.id").
		Where("cast_members.movie_id = ?", movieID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cast: %w", err)
	}

	cast := make([]domain.CastMember, 0, len(rows))
	for _, row := range rows {
		cast = append(cast, domain.CastMember{Actor: row.Name, Role: row.Role})
	}
	return cast, nil
}

// insertRelations resolves every relation member by name and inserts the
// corresponding link rows.
func (r *GormRepository) insertRelations(ctx context.Context, tx *gorm.DB, movieID uint, movie *domain.Movie) error {
	for _, name := range movie.Genres {
		genreID, err := resolveOrCreate[GenreModel](ctx, tx, name)
		if err != nil {
			return fmt.Errorf("failed to resolve genre %q: %w", name, err)
		}
		link := &MovieGenreModel{MovieID: movieID, GenreID: genreID}
		if err := repository.Create(ctx, tx, link); err != nil {
			return fmt.Errorf("failed to link genre %q: %w", name, err)
		}
	}

	for _, name := range movie.Dubbings {
		languageID, err := resolveOrCreate[DubbingLanguageModel](ctx, tx, name)
		if err != nil {
			return fmt.Errorf("failed to resolve dubbing language %q: %w", name, err)
		}
		link := &MovieDubbingModel{MovieID: movieID, DubbingLanguageID: languageID}
		if err := repository.Create(ctx, tx, link); err != nil {
			return fmt.Errorf("failed to link dubbing language %q: %w", name, err)
		}
	}

	for _, name := range movie.Subtitles {
		languageID, err := resolveOrCreate[SubtitleLanguageModel](ctx, tx, name)
		if err != nil {
			return fmt.Errorf("failed to resolve subtitle language %q: %w", name, err)
		}
		link := &MovieSubtitleModel{MovieID: movieID, SubtitleLanguageID: languageID}
		if err := repository.Create(ctx, tx, link); err != nil {
			return fmt.Errorf("failed to link subtitle language %q: %w", name, err)
		}
	}

	for _, member := range movie.Cast {
		actorID, err := resolveOrCreate[ActorModel](ctx, tx, member.Actor)
		if err != nil {
			return fmt.Errorf("failed to resolve actor %q: %w", member.Actor, err)
		}
		// Role text is stored as-is, including empty.
		link := &CastMemberModel{MovieID: movieID, ActorID: actorID, Role: member.Role}
		if err := repository.Create(ctx, tx, link); err != nil {
			return fmt.Errorf("failed to link actor %q: %w", member.Actor, err)
		}
	}

	return nil
}

// removeRelations deletes all four link sets for the movie id. Reference
// entities themselves are never deleted.
func (r *GormRepository) removeRelations(ctx context.Context, tx *gorm.DB, movieID uint) error {
	if err := tx.WithContext(ctx).Where("movie_id = ?", movieID).Delete(&MovieGenreModel{}).Error; err != nil {
		return fmt.Errorf("failed to remove genre links: %w", err)
	}
	if err := tx.WithContext(ctx).Where("movie_id = ?", movieID).Delete(&MovieDubbingModel{}).Error; err != nil {
		return fmt.Errorf("failed to remove dubbing links: %w", err)
	}
	if err := tx.WithContext(ctx).Where("movie_id = ?", movieID).Delete(&MovieSubtitleModel{}).Error; err != nil {
		return fmt.Errorf("failed to remove subtitle links: %w", err)
	}
	if err := tx.WithContext(ctx).Where("movie_id = ?", movieID).Delete(&CastMemberModel{}).Error; err != nil {
		return fmt.Errorf("failed to remove cast links: %w", err)
	}
	return nil
}
