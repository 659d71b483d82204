// Package money formatea montos con separador de miles y dos decimales, ej. "1,234.50 FCFA".
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formatea montos en una moneda fija.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter crea un formatter; currency vacío omite el sufijo.
func NewFormatter(currency string) *Formatter {
	return &Formatter{printer: message.NewPrinter(language.English), currency: strings.TrimSpace(currency)}
}

// Format redondea a 2 decimales y agrega el sufijo de moneda.
func (f *Formatter) Format(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	s := f.printer.Sprint(number.Decimal(v, number.Scale(2)))
	if f.currency == "" {
		return s
	}
	return s + " " + f.currency
}
