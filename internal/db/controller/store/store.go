// Package store provides the persistence operations for stores.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GoStoreRating/GoStoreRating/internal/db/models"
)

const (
	slugQueryPattern = "slug = ?"
)

var (
	// ErrStoreNotFound is returned when no store has the requested slug.
	ErrStoreNotFound = errors.New("store not found")
	// ErrStoreSlugEmpty is returned when a lookup or insert is attempted with an empty slug.
	ErrStoreSlugEmpty = errors.New("store slug cannot be empty")
	// ErrStoreAlreadyExists is returned when a store with the same slug already exists.
	ErrStoreAlreadyExists = errors.New("store already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetBySlug retrieves a store by its slug.
func GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*models.Store, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if slug == "" {
		return nil, ErrStoreSlugEmpty
	}

	var s models.Store
	result := db.WithContext(ctx).Where(slugQueryPattern, slug).First(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, result.Error
	}

	return &s, nil
}

// Exists reports whether a store with slug exists.
func Exists(ctx context.Context, db *gorm.DB, slug string) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64
	result := db.WithContext(ctx).Model(&models.Store{}).Where(slugQueryPattern, slug).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// GetAll retrieves all stores in insertion order.
func GetAll(ctx context.Context, db *gorm.DB) ([]models.Store, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	stores := []models.Store{}
	result := db.WithContext(ctx).Order("id").Find(&stores)
	if result.Error != nil {
		return nil, result.Error
	}

	return stores, nil
}

// Create inserts s. A store with the same slug, whether found up front or
// rejected by the unique index, yields ErrStoreAlreadyExists.
func Create(ctx context.Context, db *gorm.DB, s *models.Store) error {
	if db == nil {
		return ErrDBNil
	}
	if s.Slug == "" {
		return ErrStoreSlugEmpty
	}

	exists, err := Exists(ctx, db, s.Slug)
	if err != nil {
		return err
	}
	if exists {
		return ErrStoreAlreadyExists
	}

	result := db.WithContext(ctx).Create(s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrStoreAlreadyExists
		}
		return result.Error
	}

	return nil
}
