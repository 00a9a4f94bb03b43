// Package storefront implements the store and rating operations behind the
// HTTP routes.
package storefront

import (
	"context"
	"crypto/subtle"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoStoreRating/GoStoreRating/internal/aggregate"
	"github.com/GoStoreRating/GoStoreRating/internal/db/controller/rating"
	"github.com/GoStoreRating/GoStoreRating/internal/db/controller/store"
	"github.com/GoStoreRating/GoStoreRating/internal/db/models"
)

// Accepted rating values.
const (
	MinRating = 1
	MaxRating = 5
)

// ImageStore persists uploaded store images.
type ImageStore interface {
	Save(originalName string, src io.Reader) (string, error)
	Remove(name string) error
}

// Image is an uploaded file.
type Image struct {
	Filename string
	Content  io.Reader
}

// AddStoreInput is the admin request to register a store.
type AddStoreInput struct {
	Name    string
	MapLink string
	Token   string
	Image   *Image
}

// SubmitRatingInput is a user's rating of a store.
type SubmitRatingInput struct {
	UserName   string
	UserMobile string
	Rating     int
}

// StoreSummary is one entry of the store listing.
type StoreSummary struct {
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Image         string            `json:"image"`
	MapLink       string            `json:"mapLink"`
	AverageRating aggregate.Average `json:"averageRating"`
}

// StoreDetail is a single store with its average rating.
type StoreDetail struct {
	Store         models.Store      `json:"store"`
	AverageRating aggregate.Average `json:"averageRating"`
}

// Service runs the store operations against one database.
type Service struct {
	db         *gorm.DB
	images     ImageStore
	adminToken []byte
}

// New returns a Service. adminToken guards AddStore.
func New(db *gorm.DB, images ImageStore, adminToken string) *Service {
	return &Service{
		db:         db,
		images:     images,
		adminToken: []byte(adminToken),
	}
}

// Authorized reports whether token matches the admin token.
func (s *Service) Authorized(token string) bool {
	if len(s.adminToken) == 0 {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(token), s.adminToken) == 1
}

// AddStore registers a new store. The image is only written once the request
// passed the token, field and duplicate checks.
func (s *Service) AddStore(ctx context.Context, in AddStoreInput) (*models.Store, error) {
	if !s.Authorized(in.Token) {
		return nil, ErrUnauthorized
	}

	if in.Name == "" || in.MapLink == "" || in.Image == nil || in.Image.Content == nil {
		return nil, ErrMissingFields
	}

	slug := Slugify(in.Name)

	exists, err := store.Exists(ctx, s.db, slug)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up store")
	}
	if exists {
		return nil, ErrDuplicateStore
	}

	image, err := s.images.Save(in.Image.Filename, in.Image.Content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save store image")
	}

	st := &models.Store{
		Name:    in.Name,
		Slug:    slug,
		MapLink: in.MapLink,
		Image:   image,
	}

	if err = store.Create(ctx, s.db, st); err != nil {
		if rmErr := s.images.Remove(image); rmErr != nil {
			log.Warn().Err(rmErr).Str("image", image).Msg("failed to remove image of rejected store")
		}

		if errors.Is(err, store.ErrStoreAlreadyExists) {
			return nil, ErrDuplicateStore
		}

		return nil, errors.Wrap(err, "failed to create store")
	}

	log.Info().Str("slug", st.Slug).Str("image", st.Image).Msg("store added")

	return st, nil
}

// ListStores returns every store with its average rating.
func (s *Service) ListStores(ctx context.Context) ([]StoreSummary, error) {
	stores, err := store.GetAll(ctx, s.db)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	averages, err := rating.Averages(ctx, s.db)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute averages")
	}

	out := make([]StoreSummary, 0, len(stores))
	for _, st := range stores {
		out = append(out, StoreSummary{
			Name:          st.Name,
			Slug:          st.Slug,
			Image:         st.Image,
			MapLink:       st.MapLink,
			AverageRating: averages[st.Slug],
		})
	}

	return out, nil
}

// GetStore returns the store with slug and its average rating.
func (s *Service) GetStore(ctx context.Context, slug string) (*StoreDetail, error) {
	if slug == "" {
		return nil, ErrNotFound
	}

	st, err := store.GetBySlug(ctx, s.db, slug)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return nil, ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to get store")
	}

	avg, err := s.AverageRating(ctx, slug)
	if err != nil {
		return nil, err
	}

	return &StoreDetail{Store: *st, AverageRating: avg}, nil
}

// SubmitRating records a rating for slug. The store itself is not looked up,
// so ratings of unknown slugs are accepted.
func (s *Service) SubmitRating(ctx context.Context, slug string, in SubmitRatingInput) (*models.Rating, error) {
	if in.UserName == "" || in.UserMobile == "" || in.Rating < MinRating || in.Rating > MaxRating {
		return nil, ErrInvalidInput
	}

	r := &models.Rating{
		StoreSlug:  slug,
		UserName:   in.UserName,
		UserMobile: in.UserMobile,
		Rating:     in.Rating,
	}

	if err := rating.Create(ctx, s.db, r); err != nil {
		if errors.Is(err, rating.ErrRatingAlreadyExists) {
			return nil, ErrAlreadyRated
		}

		return nil, errors.Wrap(err, "failed to create rating")
	}

	log.Debug().Str("slug", slug).Int("rating", r.Rating).Msg("rating submitted")

	return r, nil
}

// ListRatings returns the ratings of slug in submission order, never nil.
func (s *Service) ListRatings(ctx context.Context, slug string) ([]models.Rating, error) {
	ratings, err := rating.ListBySlug(ctx, s.db, slug)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings")
	}

	return ratings, nil
}

// AverageRating returns the average rating of slug.
func (s *Service) AverageRating(ctx context.Context, slug string) (aggregate.Average, error) {
	avg, err := rating.Average(ctx, s.db, slug)
	if err != nil {
		return aggregate.Average{}, errors.Wrap(err, "failed to compute average")
	}

	return avg, nil
}
