package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrInternal is what callers see for errors that carry no business code.
var ErrInternal = NewUnexpected("General.Unexpected", "An unexpected error occurred.")

// Status maps an error kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case Validation:
		return fiber.StatusBadRequest
	case Unauthorized:
		return fiber.StatusUnauthorized
	case Forbidden:
		return fiber.StatusForbidden
	case NotFound:
		return fiber.StatusNotFound
	case Conflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes err as a JSON body with the status matching its kind.
// Errors outside the taxonomy are masked behind ErrInternal.
func Respond(c *fiber.Ctx, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrInternal
	}
	return c.Status(Status(e.Kind)).JSON(e)
}
