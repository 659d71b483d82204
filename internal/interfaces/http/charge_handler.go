package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/usecase"
)

// ChargeHandler CRUD de gastos.
type ChargeHandler struct {
	uc *usecase.ChargeUseCase
}

// NewChargeHandler construye el handler.
func NewChargeHandler(uc *usecase.ChargeUseCase) *ChargeHandler {
	return &ChargeHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar gasto
// @Tags         charges
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChargeRequest  true  "type, amount, date"
// @Success      201   {object}  dto.ChargeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/charges [post]
func (h *ChargeHandler) Create(c *fiber.Ctx) error {
	var in dto.ChargeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener gasto
// @Tags         charges
// @Produce      json
// @Param        id   path  string  true  "ID del gasto"
// @Success      200  {object}  dto.ChargeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/charges/{id} [get]
func (h *ChargeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "gasto no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar gastos
// @Tags         charges
// @Produce      json
// @Param        start  query  string  false  "YYYY-MM-DD"
// @Param        end    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.ChargeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/charges [get]
func (h *ChargeHandler) List(c *fiber.Ctx) error {
	start, end, err := optionalDates(c)
	if err != nil {
		return validation(c, "start y end deben tener formato YYYY-MM-DD")
	}
	out, err := h.uc.List(c.UserContext(), start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar gasto
// @Tags         charges
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del gasto"
// @Param        body  body  dto.ChargeRequest  true  "type, amount, date"
// @Success      200   {object}  dto.ChargeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/charges/{id} [put]
func (h *ChargeHandler) Update(c *fiber.Ctx) error {
	var in dto.ChargeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar gasto
// @Tags         charges
// @Param        id   path  string  true  "ID del gasto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/charges/{id} [delete]
func (h *ChargeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
