package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the ray id in requests and responses.
	Header = "X-Ray-ID"
	// LocalsKey is where the ray id is stored on the fiber context.
	LocalsKey = "ray_id"
)

// New returns a middleware that tags every request with a ray id.
// An incoming X-Ray-ID is reused so traces can span services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}

// From returns the ray id of the request, if any.
func From(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsKey).(string)
	return id
}
