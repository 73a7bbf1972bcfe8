package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// InitializeSchema creates the catalog tables and their link tables if
// absent. Idempotent, safe to invoke on every process start. Callers treat
// a failure here as fatal.
func InitializeSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&MovieModel{},
		&GenreModel{},
		&DubbingLanguageModel{},
		&SubtitleLanguageModel{},
		&ActorModel{},
		&MovieGenreModel{},
		&MovieDubbingModel{},
		&MovieSubtitleModel{},
		&CastMemberModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return nil
}
