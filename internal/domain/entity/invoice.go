package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice factura de gasto registrada manualmente o a partir de una extracción OCR.
//
// Total normalmente es Amount + Tax, pero no se fuerza: el usuario puede corregir
// los valores sugeridos por el OCR de forma independiente antes de guardar.
type Invoice struct {
	ID          string
	Vendor      string
	Description string
	Amount      decimal.Decimal // subtotal antes de impuestos (columna subtotal)
	Tax         decimal.Decimal
	Total       decimal.Decimal
	Date        time.Time // fecha de negocio de la factura (solo día), no la de creación
	Category    string    // etiqueta libre; ver invoicing.SuggestedCategories
	ImageURL    string    // vacío si no se guardó imagen
	CreatedAt   time.Time
}
