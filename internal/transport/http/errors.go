package http

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

// ErrorResponse is the uniform error body for every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// newErrorHandler maps domain sentinels and fiber errors onto status codes.
// Unexpected errors become an opaque 500; the detail goes to the log only.
func newErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		label := "internal_error"
		message := "an unexpected error occurred"

		var fiberErr *fiber.Error

		switch {
		case errors.Is(err, domain.ErrValidation):
			status = fiber.StatusBadRequest
			label = "validation_error"
			message = err.Error()
		case errors.Is(err, domain.ErrUnauthorized):
			status = fiber.StatusUnauthorized
			label = "unauthorized"
			message = err.Error()
		case errors.Is(err, domain.ErrNotFound):
			status = fiber.StatusNotFound
			label = "not_found"
			message = "resource not found"
		case errors.Is(err, domain.ErrConflict):
			status = fiber.StatusConflict
			label = "conflict"
			message = err.Error()
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
			switch status {
			case fiber.StatusBadRequest:
				label = "validation_error"
			case fiber.StatusUnauthorized:
				label = "unauthorized"
			case fiber.StatusNotFound:
				label = "not_found"
			case fiber.StatusRequestEntityTooLarge:
				label = "payload_too_large"
			default:
				label = "error"
			}
		default:
			logger.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		return c.Status(status).JSON(ErrorResponse{Error: label, Message: message})
	}
}
