package storefront

import "errors"

var (
	// ErrUnauthorized is returned when the admin token does not match.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMissingFields is returned when a store is added without name, map link or image.
	ErrMissingFields = errors.New("missing fields")
	// ErrDuplicateStore is returned when a store with the same slug exists.
	ErrDuplicateStore = errors.New("store already exists")
	// ErrNotFound is returned for an unknown store slug.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for a rating without user name, mobile or with a value outside 1..5.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyRated is returned when the mobile number already rated the store.
	ErrAlreadyRated = errors.New("already rated")
)
