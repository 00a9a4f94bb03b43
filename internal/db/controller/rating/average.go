package rating

import (
	"context"

	"gorm.io/gorm"

	"github.com/GoStoreRating/GoStoreRating/internal/aggregate"
	"github.com/GoStoreRating/GoStoreRating/internal/db/models"
)

// totals is the per store sum and count of ratings.
type totals struct {
	StoreSlug string
	Total     int64
	Count     int64
}

// Average returns the average rating of the store with slug.
// Every call scans the store's ratings again; nothing is cached.
func Average(ctx context.Context, db *gorm.DB, slug string) (aggregate.Average, error) {
	if db == nil {
		return aggregate.Average{}, ErrDBNil
	}

	var t totals
	result := db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(SUM(rating), 0) AS total, COUNT(*) AS count").
		Where(storeSlugQueryPattern, slug).
		Scan(&t)
	if result.Error != nil {
		return aggregate.Average{}, result.Error
	}

	return aggregate.FromSum(t.Total, t.Count), nil
}

// Averages returns the average rating of every rated store keyed by slug,
// in one grouped scan of the ratings table. Stores without ratings are absent.
func Averages(ctx context.Context, db *gorm.DB) (map[string]aggregate.Average, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rows []totals
	result := db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("store_slug, COALESCE(SUM(rating), 0) AS total, COUNT(*) AS count").
		Group("store_slug").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make(map[string]aggregate.Average, len(rows))
	for _, row := range rows {
		out[row.StoreSlug] = aggregate.FromSum(row.Total, row.Count)
	}

	return out, nil
}
