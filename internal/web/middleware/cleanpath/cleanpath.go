// Package cleanpath rewrites request paths like //store/./x to /store/x
// before routing.
package cleanpath

import (
	"path"

	"github.com/gofiber/fiber/v2"
)

// New returns the clean path middleware.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := c.Path()
		if cleaned := path.Clean(p); cleaned != p {
			c.Path(cleaned)
		}

		return c.Next()
	}
}
