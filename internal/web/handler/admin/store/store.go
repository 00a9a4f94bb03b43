// Package store provides the admin handler registering new stores.
package store

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoStoreRating/GoStoreRating/internal/config"
	"github.com/GoStoreRating/GoStoreRating/internal/storefront"
	"github.com/GoStoreRating/GoStoreRating/internal/web/handler"
	"github.com/GoStoreRating/GoStoreRating/internal/web/middleware/auth"
)

const (
	// Path is the route of the add store form.
	Path = "/admin/add-store"

	// MsgStoreAdded is sent on success.
	MsgStoreAdded = "Store added"

	imageField = "image"
)

// Service is the add store handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	stores    *storefront.Service
	validator *validator.Validate
}

var (
	// Handler is the add store handler.
	Handler = Service{}
)

// Init registers the add store route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, stores *storefront.Service) {
	if app == nil || cfg == nil || stores == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.stores = stores
	s.validator = validator.New()

	app.Post(Path, auth.RequireAdminToken(stores), s.Post)
}

// Post handles the multipart add store form. The admin token was already
// checked by the route middleware.
func (s *Service) Post(c *fiber.Ctx) error {
	in := AddStoreRequest{
		Name:    c.FormValue("name"),
		MapLink: c.FormValue("mapLink"),
		Token:   c.FormValue(auth.TokenField),
	}

	if fh, err := c.FormFile(imageField); err == nil {
		in.Image = fh
	}

	if err := s.validator.Struct(in); err != nil {
		return storefront.ErrMissingFields
	}

	f, err := in.Image.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded image")
	}
	defer f.Close()

	st, err := s.stores.AddStore(c.UserContext(), storefront.AddStoreInput{
		Name:    in.Name,
		MapLink: in.MapLink,
		Token:   in.Token,
		Image:   &storefront.Image{Filename: in.Image.Filename, Content: f},
	})
	if err != nil {
		return err
	}

	return c.JSON(AddStoreResponse{Message: MsgStoreAdded, Store: st})
}
