// Package rating provides the persistence operations for store ratings.
package rating

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GoStoreRating/GoStoreRating/internal/db/models"
)

const (
	storeSlugQueryPattern       = "store_slug = ?"
	storeSlugMobileQueryPattern = "store_slug = ? AND user_mobile = ?"
)

var (
	// ErrRatingAlreadyExists is returned when the mobile number already rated the store.
	ErrRatingAlreadyExists = errors.New("rating already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Exists reports whether userMobile already rated the store with slug.
func Exists(ctx context.Context, db *gorm.DB, slug, userMobile string) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64
	result := db.WithContext(ctx).
		Model(&models.Rating{}).
		Where(storeSlugMobileQueryPattern, slug, userMobile).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// Create inserts r. A second rating for the same (StoreSlug, UserMobile) yields
// ErrRatingAlreadyExists, also when two inserts race past the Exists check and
// the unique index rejects the later one.
func Create(ctx context.Context, db *gorm.DB, r *models.Rating) error {
	if db == nil {
		return ErrDBNil
	}

	exists, err := Exists(ctx, db, r.StoreSlug, r.UserMobile)
	if err != nil {
		return err
	}
	if exists {
		return ErrRatingAlreadyExists
	}

	result := db.WithContext(ctx).Create(r)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrRatingAlreadyExists
		}
		return result.Error
	}

	return nil
}

// ListBySlug returns the ratings of a store in insertion order.
// The result is never nil.
func ListBySlug(ctx context.Context, db *gorm.DB, slug string) ([]models.Rating, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	ratings := []models.Rating{}
	result := db.WithContext(ctx).Where(storeSlugQueryPattern, slug).Order("id").Find(&ratings)
	if result.Error != nil {
		return nil, result.Error
	}

	return ratings, nil
}
