// Package models contains database model definitions.
package models

import "time"

// Store is a rateable store registered by an administrator.
type Store struct {
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Name is the display name as entered by the administrator.
	Name string `gorm:"size:255;not null" json:"name"`
	// Slug is derived from Name and identifies the store in urls and ratings.
	Slug string `gorm:"size:255;not null;uniqueIndex:idx_store_slug" json:"slug"`
	// MapLink is an external map url, stored as given.
	MapLink string `gorm:"size:2048;not null" json:"mapLink"`
	// Image is the uploaded file name relative to the upload directory.
	Image     string    `gorm:"size:512;not null" json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}
