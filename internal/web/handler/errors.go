package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoStoreRating/GoStoreRating/internal/storefront"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Status maps err to the HTTP status and the message sent to the client.
func Status(err error) (int, string) {
	var fe *fiber.Error

	switch {
	case errors.Is(err, storefront.ErrUnauthorized):
		return fiber.StatusForbidden, MsgUnauthorized
	case errors.Is(err, storefront.ErrMissingFields):
		return fiber.StatusBadRequest, MsgMissingFields
	case errors.Is(err, storefront.ErrDuplicateStore):
		return fiber.StatusBadRequest, MsgStoreExists
	case errors.Is(err, storefront.ErrNotFound):
		return fiber.StatusNotFound, MsgNotFound
	case errors.Is(err, storefront.ErrInvalidInput):
		return fiber.StatusBadRequest, MsgInvalidInput
	case errors.Is(err, storefront.ErrAlreadyRated):
		return fiber.StatusForbidden, MsgAlreadyRated
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	default:
		return fiber.StatusInternalServerError, MsgInternalServer
	}
}

// ErrorHandler renders errors returned by handlers as ErrorResponse.
// Unclassified errors are logged; their text never reaches the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, msg := Status(err)
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(code).JSON(ErrorResponse{Error: msg})
}
