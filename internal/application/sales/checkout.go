package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/pricing"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// CheckoutMode define cómo se persisten las líneas de un recibo.
type CheckoutMode string

const (
	// CheckoutPerLine registra cada línea en su propia transacción: una línea fallida
	// no deshace ni detiene las demás (recibos parciales posibles).
	CheckoutPerLine CheckoutMode = "per_line"
	// CheckoutAtomic registra recibo y líneas en una única transacción: todo o nada.
	CheckoutAtomic CheckoutMode = "atomic"
)

// ParseCheckoutMode interpreta el modo; vacío devuelve def.
func ParseCheckoutMode(s string, def CheckoutMode) (CheckoutMode, error) {
	switch CheckoutMode(s) {
	case "":
		return def, nil
	case CheckoutPerLine, CheckoutAtomic:
		return CheckoutMode(s), nil
	}
	return "", fmt.Errorf("modo de cobro %q: %w", s, domain.ErrInvalidInput)
}

// DraftLine línea pendiente de un borrador de recibo.
type DraftLine struct {
	ProductID string
	Quantity  int
	SaleDate  time.Time
	Unit      string
}

// DraftReceipt borrador de recibo armado por el cliente. El motor no lo toca hasta el cobro.
type DraftReceipt struct {
	CustomerName string
	Lines        []DraftLine
}

// NewDraftReceipt crea un borrador vacío.
func NewDraftReceipt(customerName string) *DraftReceipt {
	return &DraftReceipt{CustomerName: customerName}
}

// Add agrega una línea y devuelve el borrador para encadenar llamadas.
func (d *DraftReceipt) Add(line DraftLine) *DraftReceipt {
	d.Lines = append(d.Lines, line)
	return d
}

// Len número de líneas del borrador.
func (d *DraftReceipt) Len() int { return len(d.Lines) }

func (l DraftLine) input(receiptID string) StockableSaleInput {
	return StockableSaleInput{
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		SaleDate:  l.SaleDate,
		Unit:      l.Unit,
		ReceiptID: receiptID,
	}
}

// LineError error de una línea concreta del borrador (Index empieza en 0).
type LineError struct {
	Index int
	Err   error
}

func (e *LineError) Error() string { return fmt.Sprintf("línea %d: %v", e.Index+1, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

// LineResult resultado de una línea en modo per_line.
type LineResult struct {
	Index  int
	SaleID string
	Err    error
}

// CheckoutResult resultado del cobro.
type CheckoutResult struct {
	ReceiptID string
	Mode      CheckoutMode
	Lines     []LineResult
}

// Committed número de líneas registradas.
func (r *CheckoutResult) Committed() int {
	n := 0
	for _, l := range r.Lines {
		if l.Err == nil {
			n++
		}
	}
	return n
}

// Failed número de líneas rechazadas.
func (r *CheckoutResult) Failed() int { return len(r.Lines) - r.Committed() }

// Checkout persiste el borrador según el modo indicado.
// En modo atomic cualquier fallo devuelve un *LineError y no deja recibo, ventas ni cambios de stock.
// En modo per_line el error de cada línea queda en su LineResult; solo un fallo al crear el recibo
// se devuelve como error.
func (uc *SaleUseCase) Checkout(ctx context.Context, draft *DraftReceipt, mode CheckoutMode) (*CheckoutResult, error) {
	if draft == nil || draft.Len() == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch mode {
	case CheckoutPerLine:
		return uc.checkoutPerLine(ctx, draft)
	case CheckoutAtomic:
		return uc.checkoutAtomic(ctx, draft)
	}
	return nil, domain.ErrInvalidInput
}

func (uc *SaleUseCase) checkoutPerLine(ctx context.Context, draft *DraftReceipt) (*CheckoutResult, error) {
	receiptID, err := uc.CreateReceipt(ctx, draft.CustomerName)
	if err != nil {
		return nil, err
	}
	result := &CheckoutResult{ReceiptID: receiptID, Mode: CheckoutPerLine, Lines: make([]LineResult, 0, draft.Len())}
	for i, line := range draft.Lines {
		saleID, err := uc.RecordStockableSale(ctx, line.input(receiptID))
		result.Lines = append(result.Lines, LineResult{Index: i, SaleID: saleID, Err: err})
	}
	return result, nil
}

func (uc *SaleUseCase) checkoutAtomic(ctx context.Context, draft *DraftReceipt) (*CheckoutResult, error) {
	// El recibo se construye antes de validar pero solo se persiste dentro de la tx.
	receipt := uc.newReceipt(draft.CustomerName)
	for i, line := range draft.Lines {
		if err := line.input(receipt.ID).validate(); err != nil {
			return nil, &LineError{Index: i, Err: err}
		}
	}
	result := &CheckoutResult{ReceiptID: receipt.ID, Mode: CheckoutAtomic, Lines: make([]LineResult, 0, draft.Len())}

	err := uc.txRunner.RunSales(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		receiptRepo repository.ReceiptRepository,
	) error {
		if err := receiptRepo.Create(ctx, receipt); err != nil {
			return err
		}
		// Bloqueo en orden ascendente de ID: dos cobros atómicos concurrentes no pueden interbloquearse
		for _, id := range distinctProductIDs(draft.Lines) {
			p, err := productRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return &LineError{Index: firstLineOf(draft.Lines, id), Err: domain.ErrNotFound}
			}
		}
		for i, line := range draft.Lines {
			saleID, err := uc.recordStockableInTx(ctx, productRepo, saleRepo, line.input(receipt.ID))
			if err != nil {
				return &LineError{Index: i, Err: err}
			}
			result.Lines = append(result.Lines, LineResult{Index: i, SaleID: saleID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func distinctProductIDs(lines []DraftLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	sort.Strings(ids)
	return ids
}

func firstLineOf(lines []DraftLine, productID string) int {
	for i, l := range lines {
		if l.ProductID == productID {
			return i
		}
	}
	return 0
}

// PreviewLine línea del resumen previo al cobro. Err != nil si la línea no podría registrarse.
type PreviewLine struct {
	Index         int
	ProductID     string
	ProductName   string
	CategoryLabel string
	Quantity      int
	Unit          string
	UnitPrice     decimal.Decimal
	Amount        decimal.Decimal
	Margin        decimal.Decimal
	Err           error
}

// previewReceiptID ocupa el lugar del recibo al validar líneas que no se cobran.
var previewReceiptID = uuid.Nil.String()

// Preview resumen del borrador con importe y margen estimado.
type Preview struct {
	Lines         []PreviewLine
	TotalQuantity int
	TotalAmount   decimal.Decimal
	TotalMargin   decimal.Decimal
}

// Preview calcula importes y margen estimado del borrador leyendo el catálogo, sin bloqueos
// ni escrituras. El stock se descuenta línea a línea solo en memoria para anticipar
// ErrInsufficientStock; el cobro vuelve a validarlo todo. Las líneas con error no suman en los totales.
func (uc *SaleUseCase) Preview(ctx context.Context, draft *DraftReceipt, model pricing.Model) (*Preview, error) {
	if draft == nil {
		return nil, domain.ErrInvalidInput
	}
	out := &Preview{Lines: make([]PreviewLine, 0, draft.Len()), TotalAmount: decimal.Zero, TotalMargin: decimal.Zero}
	cache := make(map[string]*entity.Product)
	remaining := make(map[string]int)
	for i, line := range draft.Lines {
		pl := PreviewLine{Index: i, ProductID: line.ProductID, Quantity: line.Quantity, Unit: line.Unit}
		if err := line.input(previewReceiptID).validate(); err != nil {
			pl.Err = err
			out.Lines = append(out.Lines, pl)
			continue
		}
		product, ok := cache[line.ProductID]
		if !ok {
			p, err := uc.productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
			cache[line.ProductID] = p
			if p != nil {
				remaining[p.ID] = p.Stock
			}
		}
		pl.Err = fillPreviewLine(&pl, product, model)
		if pl.Err == nil && remaining[product.ID] < pl.Quantity {
			pl.Err = domain.ErrInsufficientStock
		}
		if pl.Err == nil {
			remaining[product.ID] -= pl.Quantity
			out.TotalQuantity += pl.Quantity
			out.TotalAmount = out.TotalAmount.Add(pl.Amount)
			out.TotalMargin = out.TotalMargin.Add(pl.Margin)
		}
		out.Lines = append(out.Lines, pl)
	}
	return out, nil
}

func fillPreviewLine(pl *PreviewLine, product *entity.Product, model pricing.Model) error {
	if product == nil {
		return domain.ErrNotFound
	}
	pl.ProductName = product.Name
	pl.CategoryLabel = product.CategoryLabel
	pl.UnitPrice = pricing.UnitPrice(product, pl.Unit)
	if !pl.UnitPrice.IsPositive() {
		return domain.ErrPriceNotSet
	}
	pl.Amount = pricing.LineAmount(pl.UnitPrice, pl.Quantity)
	margin, err := pricing.ComputeMargin(&entity.Sale{Quantity: pl.Quantity, Unit: pl.Unit, Amount: pl.Amount}, product, model)
	if err != nil {
		return err
	}
	pl.Margin = margin
	return nil
}

// IsLineError indica si err viene de una línea concreta y devuelve su índice.
func IsLineError(err error) (int, bool) {
	var le *LineError
	if errors.As(err, &le) {
		return le.Index, true
	}
	return 0, false
}
