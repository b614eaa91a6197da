package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Middleware logs one line per request, tagged with the request's ray id.
// It must be registered after the ray id middleware.
func Middleware(l *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not run yet; report what it will send.
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}

		rl := WithRayID(l, c)
		switch {
		case err != nil:
			rl.Error("Request error", append(fields, zap.Error(err))...)
		case status >= fiber.StatusInternalServerError:
			rl.Error("Request failed", fields...)
		default:
			rl.Info("Request handled", fields...)
		}
		return err
	}
}
