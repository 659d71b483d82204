package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/barstock-api/pkg/logger"
)

const localLogger = "logger"

// AccessLog registra cada solicitud como un evento zerolog y deja el logger en los locals.
func AccessLog(l *logger.Logger) fiber.Handler {
	zl := l.Zerolog()
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(localLogger, &zl)
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := zl.Info()
		if status >= fiber.StatusInternalServerError {
			ev = zl.Error().Err(err)
		} else if status >= fiber.StatusBadRequest {
			ev = zl.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return err
	}
}

// logFrom logger de la solicitud; Nop si AccessLog no está montado.
func logFrom(c *fiber.Ctx) *zerolog.Logger {
	if zl, ok := c.Locals(localLogger).(*zerolog.Logger); ok {
		return zl
	}
	nop := zerolog.Nop()
	return &nop
}
