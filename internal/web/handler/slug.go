package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// Slug returns the percent-decoded store slug route parameter, so a slug
// holding a slash is addressed as one segment, e.g. /store/ac%2Fdc-records.
// ok is false for a malformed escape.
func Slug(c *fiber.Ctx) (slug string, ok bool) {
	slug, err := url.PathUnescape(c.Params(SlugParam))
	if err != nil {
		return "", false
	}

	return slug, true
}
