package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// InventoryHandler maneja las entradas de stock.
type InventoryHandler struct {
	uc *inventory.StockEntryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockEntryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// AddEntry godoc
// @Summary      Registrar entrada de stock
// @Description  Suma la cantidad al stock y fija precio de compra, precio de venta de la unidad y unidad por defecto.
// @Tags         stock-entries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockEntryRequest  true  "product_id, quantity, date, purchase_price, sale_price, unit"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-entries [post]
func (h *InventoryHandler) AddEntry(c *fiber.Ctx) error {
	var in dto.AddStockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := dateOrToday(in.Date)
	if err != nil {
		return validation(c, "date debe tener formato YYYY-MM-DD")
	}
	id, err := h.uc.AddStockEntry(c.UserContext(), inventory.StockEntryInput{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		Date:          date,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Unit:          in.Unit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListEntries godoc
// @Summary      Historial de entradas de stock
// @Tags         stock-entries
// @Produce      json
// @Param        start       query  string  false  "YYYY-MM-DD"
// @Param        end         query  string  false  "YYYY-MM-DD"
// @Param        product_id  query  string  false  "ID del producto"
// @Success      200  {array}   dto.StockEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-entries [get]
func (h *InventoryHandler) ListEntries(c *fiber.Ctx) error {
	start, end, err := optionalDates(c)
	if err != nil {
		return validation(c, "start y end deben tener formato YYYY-MM-DD")
	}
	out, err := h.uc.ListStockEntries(c.UserContext(), repository.StockEntryFilter{
		Start: start, End: end, ProductID: c.Query("product_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
