package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
)

// Categorías sugeridas en el formulario y en el prompt del OCR.
// No es una lista cerrada: cualquier etiqueta es válida.
const (
	CategoryFood          = "Alimentación"
	CategoryTransport     = "Transporte"
	CategoryServices      = "Servicios"
	CategoryOffice        = "Oficina"
	CategoryTechnology    = "Tecnología"
	CategoryHealth        = "Salud"
	CategoryEntertainment = "Entretenimiento"
	CategoryOther         = "Otros"
)

// SuggestedCategories en el orden en que se muestran.
var SuggestedCategories = []string{
	CategoryFood, CategoryTransport, CategoryServices, CategoryOffice,
	CategoryTechnology, CategoryHealth, CategoryEntertainment, CategoryOther,
}

// IsSuggestedCategory informa si la categoría es una de las sugeridas
// (las demás se muestran con el tratamiento visual por defecto).
func IsSuggestedCategory(c string) bool {
	for _, s := range SuggestedCategories {
		if s == c {
			return true
		}
	}
	return false
}

// Summary resumen derivado de una colección de facturas. No se persiste.
type Summary struct {
	TotalAmount  decimal.Decimal
	TotalTax     decimal.Decimal
	GrandTotal   decimal.Decimal
	InvoiceCount int
	ByCategory   map[string]decimal.Decimal // categoría → Σ total
}

// Summarize recorre las facturas una sola vez.
// Confía en el Total almacenado (no lo recalcula como Amount + Tax), por lo que
// la suma de ByCategory coincide siempre con GrandTotal.
func Summarize(invoices []*entity.Invoice) Summary {
	s := Summary{
		TotalAmount: decimal.Zero,
		TotalTax:    decimal.Zero,
		GrandTotal:  decimal.Zero,
		ByCategory:  make(map[string]decimal.Decimal),
	}
	for _, inv := range invoices {
		if inv == nil {
			continue
		}
		s.TotalAmount = s.TotalAmount.Add(inv.Amount)
		s.TotalTax = s.TotalTax.Add(inv.Tax)
		s.GrandTotal = s.GrandTotal.Add(inv.Total)
		s.InvoiceCount++
		s.ByCategory[inv.Category] = s.ByCategory[inv.Category].Add(inv.Total)
	}
	return s
}

// CategoryShare porcentaje (0–100) que representa la categoría sobre el total general.
func (s Summary) CategoryShare(category string) decimal.Decimal {
	if s.GrandTotal.IsZero() {
		return decimal.Zero
	}
	return s.ByCategory[category].Div(s.GrandTotal).Mul(decimal.NewFromInt(100))
}
