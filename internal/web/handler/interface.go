package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoStoreRating/GoStoreRating/internal/config"
	"github.com/GoStoreRating/GoStoreRating/internal/storefront"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, stores *storefront.Service)
}
