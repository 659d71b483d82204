package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/pricing"
)

// errorStatus traduce un error de dominio a (status HTTP, código). El orden importa:
// un ErrConflict siempre viene unido a ErrStoreFailure.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrPriceNotSet):
		return fiber.StatusUnprocessableEntity, "PRICE_NOT_SET"
	case errors.Is(err, pricing.ErrYieldUndefined):
		return fiber.StatusUnprocessableEntity, "YIELD_UNDEFINED"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrStoreFailure):
		return fiber.StatusInternalServerError, "STORE_FAILURE"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// errorMessage mensaje público. Los fallos de almacenamiento no exponen la causa del driver.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return domain.ErrConflict.Error()
	case errors.Is(err, domain.ErrStoreFailure):
		return domain.ErrStoreFailure.Error()
	}
	return err.Error()
}

func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		logFrom(c).Error().Err(err).Str("path", c.Path()).Msg("error de la solicitud")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: errorMessage(err)})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}
