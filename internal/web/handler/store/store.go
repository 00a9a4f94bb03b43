// Package store provides the public store read handlers.
package store

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoStoreRating/GoStoreRating/internal/config"
	"github.com/GoStoreRating/GoStoreRating/internal/storefront"
	"github.com/GoStoreRating/GoStoreRating/internal/web/handler"
)

const (
	// ListPath lists every store.
	ListPath = "/stores"

	// Path is a single store.
	Path = "/store/:" + handler.SlugParam
)

// Service is the store read handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	stores *storefront.Service
}

var (
	// Handler is the store read handler.
	Handler = Service{}
)

// Init registers the store read routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, stores *storefront.Service) {
	if app == nil || cfg == nil || stores == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.stores = stores

	app.Get(ListPath, s.List)
	app.Get(Path, s.Get)
}

// List returns every store with its average rating.
func (s *Service) List(c *fiber.Ctx) error {
	stores, err := s.stores.ListStores(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(stores)
}

// Get returns one store with its average rating.
func (s *Service) Get(c *fiber.Ctx) error {
	slug, ok := handler.Slug(c)
	if !ok {
		return storefront.ErrNotFound
	}

	detail, err := s.stores.GetStore(c.UserContext(), slug)
	if err != nil {
		return err
	}

	return c.JSON(detail)
}
