package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	pkgerrors "github.com/cinefilmes/catalog/pkg/errors"
)

// Create creates a new entity in the database.
func Create[T any](ctx context.Context, db *gorm.DB, entity *T) error {
	if err := db.WithContext(ctx).Create(entity).Error; err != nil {
		if pkgerrors.IsDuplicateError(err) {
			return pkgerrors.Conflict("entity already exists")
		}
		return err
	}
	return nil
}

// FindByID finds an entity by its ID. It preloads specified associations.
func FindByID[T any](ctx context.Context, db *gorm.DB, id uint, preloads ...string) (*T, error) {
	var entity T
	query := db.WithContext(ctx)
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	if err := query.First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("entity not found")
		}
		return nil, err
	}
	return &entity, nil
}

// FindOneBy finds a single entity by a query condition.
func FindOneBy[T any](ctx context.Context, db *gorm.DB, query string, args ...interface{}) (*T, error) {
	var entity T
	if err := db.WithContext(ctx).Where(query, args...).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("entity not found")
		}
		return nil, err
	}
	return &entity, nil
}

// Delete removes an entity from the database by its ID.
func Delete[T any](ctx context.Context, db *gorm.DB, id uint) error {
	var entity T
	result := db.WithContext(ctx).Delete(&entity, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.NotFound("entity not found for deletion")
	}
	return nil
}

// List retrieves all entities with optional preloads, in natural row order.
func List[T any](ctx context.Context, db *gorm.DB, preloads ...string) ([]*T, error) {
	var entities []*T
	query := db.WithContext(ctx)
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Count returns the number of entities matching the condition.
func Count[T any](ctx context.Context, db *gorm.DB, query string, args ...interface{}) (int64, error) {
	var count int64
	var entity T
	if err := db.WithContext(ctx).Model(&entity).Where(query, args...).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
