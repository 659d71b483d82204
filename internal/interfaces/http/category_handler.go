package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barstock-api/internal/application/usecase"
)

// CategoryHandler expone las categorías.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Param        stockable  query  bool  false  "Filtrar por flag stockable"
// @Success      200  {array}   dto.CategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	stockable, err := optionalBool(c, "stockable")
	if err != nil {
		return validation(c, "stockable debe ser true o false")
	}
	out, err := h.uc.List(c.UserContext(), stockable)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
