package repository

import (
	"time"
)

// MovieModel represents a movie in the database. The (title, release_date)
// pair is unique: the index is the backstop for the explicit duplicate
// check done on create.
type MovieModel struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	Title          string `gorm:"not null;uniqueIndex:idx_movies_title_release_date"`
	Synopsis       string `gorm:"type:text;not null"`
	ContentRating  *int
	IMDBRating     *float64  `gorm:"column:imdb_rating"`
	RuntimeMinutes *int
	ReleaseDate    time.Time `gorm:"type:date;not null;uniqueIndex:idx_movies_title_release_date"`
	Cover          []byte    `gorm:"type:blob"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GenreModel is a shared reference entity with a unique display name.
type GenreModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;not null"`
}

// DubbingLanguageModel is a shared reference entity with a unique display name.
type DubbingLanguageModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;not null"`
}

// SubtitleLanguageModel is a shared reference entity with a unique display name.
type SubtitleLanguageModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;not null"`
}

// ActorModel is a shared reference entity with a unique display name.
type ActorModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;not null"`
}

// MovieGenreModel links a movie to a genre.
type MovieGenreModel struct {
	MovieID uint `gorm:"primaryKey"`
	GenreID uint `gorm:"primaryKey"`

	Movie MovieModel `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	Genre GenreModel `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE"`
}

// MovieDubbingModel links a movie to a dubbing language.
type MovieDubbingModel struct {
	MovieID           uint `gorm:"primaryKey"`
	DubbingLanguageID uint `gorm:"primaryKey"`

	Movie           MovieModel           `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	DubbingLanguage DubbingLanguageModel `gorm:"foreignKey:DubbingLanguageID;constraint:OnDelete:CASCADE"`
}

// MovieSubtitleModel links a movie to a subtitle language.
type MovieSubtitleModel struct {
	MovieID            uint `gorm:"primaryKey"`
	SubtitleLanguageID uint `gorm:"primaryKey"`

	Movie            MovieModel            `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	SubtitleLanguage SubtitleLanguageModel `gorm:"foreignKey:SubtitleLanguageID;constraint:OnDelete:CASCADE"`
}

// CastMemberModel links a movie to an actor with the role played.
// Composite identity is (movie, actor): one role per actor per movie.
type CastMemberModel struct {
	MovieID uint   `gorm:"primaryKey"`
	ActorID uint   `gorm:"primaryKey"`
	Role    string `gorm:"type:text"`

	Movie MovieModel `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	Actor ActorModel `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
}

// EntityID implements reference for the lookup upsert.
func (g *GenreModel) EntityID() uint { return g.ID }

// SetName implements reference for the lookup upsert.
func (g *GenreModel) SetName(name string) { g.Name = name }

func (d *DubbingLanguageModel) EntityID() uint { return d.ID }

func (d *DubbingLanguageModel) SetName(name string) { d.Name = name }

func (s *SubtitleLanguageModel) EntityID() uint { return s.ID }

func (s *SubtitleLanguageModel) SetName(name string) { s.Name = name }

func (a *ActorModel) EntityID() uint { return a.ID }

func (a *ActorModel) SetName(name string) { a.Name = name }

// Table name customizations.
func (MovieModel) TableName() string {
	return "movies"
}

func (GenreModel) TableName() string {
	return "genres"
}

func (DubbingLanguageModel) TableName() string {
	return "dubbing_languages"
}

func (SubtitleLanguageModel) TableName() string {
	return "subtitle_languages"
}

func (ActorModel) TableName() string {
	return "actors"
}

func (MovieGenreModel) TableName() string {
	return "movie_genres"
}

func (MovieDubbingModel) TableName() string {
	return "movie_dubbings"
}

func (MovieSubtitleModel) TableName() string {
	return "movie_subtitles"
}

func (CastMemberModel) TableName() string {
	return "cast_members"
}
