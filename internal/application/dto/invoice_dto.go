package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest entrada del formulario de registro (manual o tras aceptar la sugerencia del OCR).
// Los montos llegan como texto, igual que en el formulario; el caso de uso los valida y convierte.
type CreateInvoiceRequest struct {
	Vendor      string `json:"vendor" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Amount      string `json:"amount" validate:"required,numeric"`
	Tax         string `json:"tax" validate:"omitempty,numeric"`
	// Total opcional: si viene vacío se calcula como amount + tax.
	Total    string `json:"total" validate:"omitempty,numeric"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Category string `json:"category" validate:"max=100"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID          string          `json:"id"`
	Vendor      string          `json:"vendor"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Category    string          `json:"category"`
	// KnownCategory false → la UI usa el estilo por defecto.
	KnownCategory bool      `json:"known_category"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CategoryTotalDTO total por categoría con su porcentaje sobre el total general.
type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Percent  decimal.Decimal `json:"percent"`
	Known    bool            `json:"known"`
}

// InvoiceSummaryDTO resumen de una ventana de tiempo.
// ByCategory conserva el mapa categoría → total; Categories es la misma información
// ordenada de mayor a menor para pintar el gráfico.
type InvoiceSummaryDTO struct {
	Window       string                     `json:"window"`
	PeriodLabel  string                     `json:"period_label"`
	TotalAmount  decimal.Decimal            `json:"total_amount"`
	TotalTax     decimal.Decimal            `json:"total_tax"`
	GrandTotal   decimal.Decimal            `json:"grand_total"`
	InvoiceCount int                        `json:"invoice_count"`
	ByCategory   map[string]decimal.Decimal `json:"by_category"`
	Categories   []CategoryTotalDTO         `json:"categories"`
}

// DashboardDTO datos de la pantalla de dashboard.
type DashboardDTO struct {
	Summary  InvoiceSummaryDTO `json:"summary"`
	Invoices []InvoiceResponse `json:"invoices"`
	// Degraded true si el store no respondió y se muestran listas vacías.
	Degraded bool `json:"degraded,omitempty"`
}
