package models

import "time"

// Rating is one user's rating of a store.
// A (StoreSlug, UserMobile) pair is unique; StoreSlug is not a foreign key,
// ratings for unknown slugs are accepted.
type Rating struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	StoreSlug  string    `gorm:"size:255;not null;uniqueIndex:idx_rating_store_mobile,priority:1" json:"storeSlug"`
	UserName   string    `gorm:"size:255;not null" json:"userName"`
	UserMobile string    `gorm:"size:64;not null;uniqueIndex:idx_rating_store_mobile,priority:2" json:"userMobile"`
	Rating     int       `gorm:"not null" json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
}
