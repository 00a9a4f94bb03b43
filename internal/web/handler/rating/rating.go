// Package rating provides the rating submit and list handlers.
package rating

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoStoreRating/GoStoreRating/internal/config"
	"github.com/GoStoreRating/GoStoreRating/internal/storefront"
	"github.com/GoStoreRating/GoStoreRating/internal/web/handler"
)

const (
	// RatePath submits a rating.
	RatePath = "/store/:" + handler.SlugParam + "/rate"

	// ListPath lists the ratings of a store.
	ListPath = "/store/:" + handler.SlugParam + "/ratings"

	// MsgRatingSubmitted is sent on success.
	MsgRatingSubmitted = "Rating submitted"
)

// Service is the rating handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	stores    *storefront.Service
	validator *validator.Validate
}

var (
	// Handler is the rating handler.
	Handler = Service{}
)

// Init registers the rating routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, stores *storefront.Service) {
	if app == nil || cfg == nil || stores == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.stores = stores
	s.validator = validator.New()

	app.Post(RatePath, s.Post)
	app.Get(ListPath, s.List)
}

// Post stores a rating. Only JSON bodies are accepted; any body that does
// not decode into RateRequest or fails its validation is answered as invalid
// input.
func (s *Service) Post(c *fiber.Ctx) error {
	slug, ok := handler.Slug(c)
	if !ok || !c.Is("json") {
		return storefront.ErrInvalidInput
	}

	var in RateRequest
	if err := c.BodyParser(&in); err != nil {
		log.Debug().Err(err).Msg("failed to parse rating body")
		return storefront.ErrInvalidInput
	}

	if err := s.validator.Struct(in); err != nil {
		return storefront.ErrInvalidInput
	}

	r, err := s.stores.SubmitRating(c.UserContext(), slug, storefront.SubmitRatingInput{
		UserName:   in.UserName,
		UserMobile: in.UserMobile,
		Rating:     in.Rating,
	})
	if err != nil {
		return err
	}

	return c.JSON(RateResponse{Message: MsgRatingSubmitted, Rating: r})
}

// List returns the ratings of a store, an empty array when there are none.
func (s *Service) List(c *fiber.Ctx) error {
	slug, ok := handler.Slug(c)
	if !ok {
		return storefront.ErrNotFound
	}

	ratings, err := s.stores.ListRatings(c.UserContext(), slug)
	if err != nil {
		return err
	}

	return c.JSON(ratings)
}
