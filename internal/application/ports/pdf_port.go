package ports

import (
	"context"
	"time"

	"github.com/jhoicas/FacturaOCR/internal/application/dto"
)

// SummaryPDFGenerator genera el reporte PDF de un resumen de gastos.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, summary dto.InvoiceSummaryDTO, invoices []dto.InvoiceResponse, generatedAt time.Time) ([]byte, error)
}
