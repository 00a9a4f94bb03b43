package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoStoreRating/GoStoreRating/internal/storefront"
)

// TokenField is the form field carrying the admin token.
const TokenField = "token"

// Authorizer decides whether a token grants admin access.
type Authorizer interface {
	Authorized(token string) bool
}

// RequireAdminToken returns a middleware answering storefront.ErrUnauthorized
// unless the request's token form field is accepted by a.
func RequireAdminToken(a Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !a.Authorized(c.FormValue(TokenField)) {
			log.Warn().Str("ip", c.IP()).Str("path", c.Path()).Msg("admin request with invalid token")
			return storefront.ErrUnauthorized
		}

		return c.Next()
	}
}
