package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/sales"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// SaleHandler maneja recibos, ventas y cobro de borradores.
type SaleHandler struct {
	uc          *sales.SaleUseCase
	pdf         *sales.ReceiptPDFUseCase
	defaultMode sales.CheckoutMode
}

// NewSaleHandler construye el handler. defaultMode se usa cuando el cuerpo no indica modo.
func NewSaleHandler(uc *sales.SaleUseCase, pdf *sales.ReceiptPDFUseCase, defaultMode sales.CheckoutMode) *SaleHandler {
	return &SaleHandler{uc: uc, pdf: pdf, defaultMode: defaultMode}
}

// CreateReceipt godoc
// @Summary      Crear recibo
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  false  "Nombre del cliente (opcional)"
// @Success      201   {object}  map[string]string
// @Router       /api/receipts [post]
func (h *SaleHandler) CreateReceipt(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	id, err := h.uc.CreateReceipt(c.UserContext(), in.CustomerName)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListReceipts godoc
// @Summary      Recibos recientes
// @Tags         receipts
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200  {array}  dto.ReceiptResponse
// @Router       /api/receipts [get]
func (h *SaleHandler) ListReceipts(c *fiber.Ctx) error {
	out, err := h.uc.ListReceipts(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReceipt godoc
// @Summary      Recibo con sus líneas
// @Tags         receipts
// @Produce      json
// @Param        id     path   string  true   "ID del recibo"
// @Param        model  query  string  false  "simple | glass_yield"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *SaleHandler) GetReceipt(c *fiber.Ctx) error {
	model, err := marginModel(c)
	if err != nil {
		return validation(c, err.Error())
	}
	out, err := h.uc.GetReceipt(c.UserContext(), c.Params("id"), model)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "recibo no encontrado")
	}
	return c.JSON(out)
}

// ReceiptPDF godoc
// @Summary      PDF del recibo
// @Tags         receipts
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del recibo"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/pdf [get]
func (h *SaleHandler) ReceiptPDF(c *fiber.Ctx) error {
	b, filename, err := h.pdf.DownloadReceiptPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, b, filename)
}

// RecordStockable godoc
// @Summary      Registrar venta de producto con inventario
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockableSaleRequest  true  "receipt_id, product_id, quantity, sale_date, unit"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/stockable [post]
func (h *SaleHandler) RecordStockable(c *fiber.Ctx) error {
	var in dto.StockableSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := dateOrToday(in.SaleDate)
	if err != nil {
		return validation(c, "sale_date debe tener formato YYYY-MM-DD")
	}
	id, err := h.uc.RecordStockableSale(c.UserContext(), sales.StockableSaleInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		SaleDate:  date,
		Unit:      in.Unit,
		ReceiptID: in.ReceiptID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// RecordNonStockable godoc
// @Summary      Registrar venta sin inventario (preparación)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NonStockableSaleRequest  true  "receipt_id, category_id, preparation_name, quantity, unit_price, sale_date, unit"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/non-stockable [post]
func (h *SaleHandler) RecordNonStockable(c *fiber.Ctx) error {
	var in dto.NonStockableSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := dateOrToday(in.SaleDate)
	if err != nil {
		return validation(c, "sale_date debe tener formato YYYY-MM-DD")
	}
	id, err := h.uc.RecordNonStockableSale(c.UserContext(), sales.NonStockableSaleInput{
		CategoryID:      in.CategoryID,
		PreparationName: in.PreparationName,
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		SaleDate:        date,
		Unit:            in.Unit,
		ReceiptID:       in.ReceiptID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListSales godoc
// @Summary      Historial de ventas con margen por línea
// @Tags         sales
// @Produce      json
// @Param        start        query  string  false  "YYYY-MM-DD"
// @Param        end          query  string  false  "YYYY-MM-DD"
// @Param        product_id   query  string  false  "ID del producto"
// @Param        category_id  query  string  false  "ID de la categoría"
// @Param        receipt_id   query  string  false  "ID del recibo"
// @Param        model        query  string  false  "simple | glass_yield"
// @Success      200  {array}   dto.SaleLineResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) ListSales(c *fiber.Ctx) error {
	start, end, err := optionalDates(c)
	if err != nil {
		return validation(c, "start y end deben tener formato YYYY-MM-DD")
	}
	model, err := marginModel(c)
	if err != nil {
		return validation(c, err.Error())
	}
	out, err := h.uc.ListSales(c.UserContext(), repository.SaleFilter{
		Start:      start,
		End:        end,
		ProductID:  c.Query("product_id"),
		CategoryID: c.Query("category_id"),
		ReceiptID:  c.Query("receipt_id"),
	}, model)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Resumen previo al cobro
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body   body   dto.CheckoutRequest  true   "Borrador"
// @Param        model  query  string               false  "simple | glass_yield"
// @Success      200  {object}  dto.PreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/checkout/preview [post]
func (h *SaleHandler) Preview(c *fiber.Ctx) error {
	draft, err := parseDraft(c)
	if err != nil {
		return validation(c, err.Error())
	}
	model, err := marginModel(c)
	if err != nil {
		return validation(c, err.Error())
	}
	p, err := h.uc.Preview(c.UserContext(), draft, model)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.PreviewResponse{
		Lines:         make([]dto.PreviewLineResponse, 0, len(p.Lines)),
		TotalQuantity: p.TotalQuantity,
		TotalAmount:   p.TotalAmount,
		TotalMargin:   p.TotalMargin,
	}
	for _, l := range p.Lines {
		line := dto.PreviewLineResponse{
			Index: l.Index, ProductID: l.ProductID, Product: l.ProductName, Category: l.CategoryLabel,
			Quantity: l.Quantity, Unit: l.Unit, UnitPrice: l.UnitPrice, Amount: l.Amount, Margin: l.Margin,
		}
		if l.Err != nil {
			_, line.Code = errorStatus(l.Err)
			line.Message = errorMessage(l.Err)
		}
		out.Lines = append(out.Lines, line)
	}
	return c.JSON(out)
}

// Checkout godoc
// @Summary      Cobrar un borrador de recibo
// @Description  per_line: cada línea en su transacción, las fallidas se informan con código.
// @Description  atomic: todo o nada; la primera línea fallida devuelve el error y no queda nada registrado.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Borrador y modo"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	mode, err := sales.ParseCheckoutMode(req.Mode, h.defaultMode)
	if err != nil {
		return writeError(c, err)
	}
	draft, err := toDraft(req)
	if err != nil {
		return validation(c, err.Error())
	}
	res, err := h.uc.Checkout(c.UserContext(), draft, mode)
	if err != nil {
		// En modo atomic el mensaje del *LineError ya indica la línea fallida.
		return writeError(c, err)
	}

	out := dto.CheckoutResponse{
		ReceiptID: res.ReceiptID,
		Mode:      string(res.Mode),
		Committed: res.Committed(),
		Failed:    res.Failed(),
		Lines:     make([]dto.CheckoutLineResponse, 0, len(res.Lines)),
	}
	for _, l := range res.Lines {
		line := dto.CheckoutLineResponse{Index: l.Index, SaleID: l.SaleID}
		if l.Err != nil {
			_, line.Code = errorStatus(l.Err)
			line.Message = errorMessage(l.Err)
		}
		out.Lines = append(out.Lines, line)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func parseDraft(c *fiber.Ctx) (*sales.DraftReceipt, error) {
	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fmt.Errorf("cuerpo inválido")
	}
	return toDraft(req)
}

func toDraft(req dto.CheckoutRequest) (*sales.DraftReceipt, error) {
	draft := sales.NewDraftReceipt(req.CustomerName)
	for i, l := range req.Lines {
		date, err := dateOrToday(l.SaleDate)
		if err != nil {
			return nil, fmt.Errorf("línea %d: sale_date debe tener formato YYYY-MM-DD", i)
		}
		draft.Add(sales.DraftLine{ProductID: l.ProductID, Quantity: l.Quantity, SaleDate: date, Unit: l.Unit})
	}
	return draft, nil
}

func sendPDF(c *fiber.Ctx, b []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(b)
}
