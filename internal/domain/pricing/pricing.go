// Package pricing concentra las reglas de precio y margen de las ventas (servicio de dominio puro).
//
// Importe de una línea:
//
//	Importe = redondeo(PrecioUnitario × Cantidad, 2)   (half-up, aritmética decimal)
//
// Margen, según el modelo elegido:
//
//	Simple:    Margen = Importe - PrecioCompra × Cantidad
//	Rendimiento por copa (solo líneas vendidas por copa):
//	           Rendimiento      = floor(ContenidoML / 50)
//	           PrecioCopaMedio  = PrecioBotella / Rendimiento
//	           Margen           = Importe - PrecioCopaMedio × Cantidad
//
// El modelo por copa mide cuánto rinde el precio real de la copa frente a una botella
// dividida en partes iguales, no la ganancia bruta contra el costo de compra.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// GlassReferenceML es la medida de referencia de una copa.
const GlassReferenceML = 50

// ErrYieldUndefined se devuelve cuando el contenido de la botella no alcanza para una copa de referencia.
var ErrYieldUndefined = errors.New("rendimiento por copa indefinido: contenido inferior a 50 mL")

// Model selecciona la fórmula de margen.
type Model string

const (
	ModelSimple     Model = "simple"
	ModelGlassYield Model = "glass_yield"
)

// ParseModel interpreta el nombre de un modelo; vacío devuelve def.
func ParseModel(s string, def Model) (Model, error) {
	switch Model(s) {
	case "":
		return def, nil
	case ModelSimple, ModelGlassYield:
		return Model(s), nil
	}
	return "", fmt.Errorf("modelo de margen desconocido %q", s)
}

// LineAmount calcula el importe de una línea redondeado a 2 decimales.
func LineAmount(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// UnitPrice devuelve el precio de venta del producto para la unidad indicada.
// Cualquier unidad distinta de glass usa el precio por botella.
func UnitPrice(p *entity.Product, unit string) decimal.Decimal {
	if unit == entity.UnitGlass {
		return p.GlassPrice
	}
	return p.BottlePrice
}

// GlassYield devuelve cuántas copas de referencia salen, en teoría, de una botella.
func GlassYield(containerML int) (int, error) {
	y := containerML / GlassReferenceML
	if y <= 0 {
		return 0, ErrYieldUndefined
	}
	return y, nil
}

// AverageGlassPrice es el precio teórico de una copa si la botella se vendiera repartida por igual.
func AverageGlassPrice(p *entity.Product) (decimal.Decimal, error) {
	y, err := GlassYield(p.ContainerML)
	if err != nil {
		return decimal.Zero, err
	}
	return p.BottlePrice.Div(decimal.NewFromInt(int64(y))), nil
}

// ComputeMargin calcula el margen de una línea de venta. product es nil en las ventas
// no inventariables: su costo es 0 en ambos modelos.
func ComputeMargin(sale *entity.Sale, product *entity.Product, model Model) (decimal.Decimal, error) {
	if product == nil {
		return sale.Amount.Round(2), nil
	}
	qty := decimal.NewFromInt(int64(sale.Quantity))
	if model == ModelGlassYield && sale.Unit == entity.UnitGlass {
		avg, err := AverageGlassPrice(product)
		if err != nil {
			return decimal.Zero, fmt.Errorf("producto %s: %w", product.ID, err)
		}
		return sale.Amount.Sub(avg.Mul(qty)).Round(2), nil
	}
	return sale.Amount.Sub(product.PurchasePrice.Mul(qty)).Round(2), nil
}
