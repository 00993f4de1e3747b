package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/FacturaOCR/internal/application/dto"
	"github.com/jhoicas/FacturaOCR/internal/application/ports"
	"github.com/jhoicas/FacturaOCR/internal/domain"
	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
	"github.com/jhoicas/FacturaOCR/internal/domain/invoicing"
	"github.com/jhoicas/FacturaOCR/internal/domain/repository"
	"github.com/jhoicas/FacturaOCR/pkg/logger"
)

const dateLayout = "2006-01-02"

// Límites de las columnas NUMERIC(14,2): dos decimales y doce dígitos enteros.
const moneyScale = 2

var moneyLimit = decimal.New(1, 12)

// moneyProblem mensaje de validación si el valor no cabe en una columna de dinero; vacío si cabe.
func moneyProblem(d decimal.Decimal) string {
	if !d.Equal(d.Round(moneyScale)) {
		return "Máximo dos decimales"
	}
	if d.Abs().GreaterThanOrEqual(moneyLimit) {
		return "El valor excede el máximo permitido (12 dígitos enteros)"
	}
	return ""
}

// InvoiceUseCase registro, listado y resumen de facturas de gasto.
// La agregación se hace en memoria sobre la lista completa (ver invoicing.FilterByWindow y Summarize).
type InvoiceUseCase struct {
	repo repository.InvoiceRepository
	pdf  ports.SummaryPDFGenerator
	loc  *time.Location
	log  *logger.Logger
	now  func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. loc es la zona en la que se interpreta "hoy";
// pdf puede ser nil si no se exporta el reporte.
func NewInvoiceUseCase(repo repository.InvoiceRepository, pdf ports.SummaryPDFGenerator, loc *time.Location, log *logger.Logger) *InvoiceUseCase {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{repo: repo, pdf: pdf, loc: loc, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

func (uc *InvoiceUseCase) today() time.Time {
	return uc.now().In(uc.loc)
}

// Create valida y persiste una factura.
// Reglas: vendor y date obligatorios, amount > 0, tax >= 0 (vacío = 0),
// total vacío = amount + tax, category vacía = "Otros". Los montos admiten
// como máximo dos decimales y doce dígitos enteros.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	in = trimInvoiceRequest(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	inv, verr := uc.buildInvoice(in)
	if verr != nil {
		return nil, verr
	}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("guardar factura: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	uc.log.Info().Str("invoice_id", inv.ID).Str("vendor", inv.Vendor).Str("total", inv.Total.String()).Msg("factura registrada")
	return toInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) buildInvoice(in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	fields := map[string]string{}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil || !amount.IsPositive() {
		fields["amount"] = "El monto debe ser un número mayor que cero"
	} else if msg := moneyProblem(amount); msg != "" {
		fields["amount"] = msg
	}
	tax := decimal.Zero
	if in.Tax != "" {
		if tax, err = decimal.NewFromString(in.Tax); err != nil || tax.IsNegative() {
			fields["tax"] = "El impuesto no puede ser negativo"
		} else if msg := moneyProblem(tax); msg != "" {
			fields["tax"] = msg
		}
	}
	var total decimal.Decimal
	if in.Total == "" {
		total = amount.Add(tax)
	} else if total, err = decimal.NewFromString(in.Total); err != nil || total.IsNegative() {
		fields["total"] = "El total no puede ser negativo"
	}
	if len(fields) == 0 {
		if msg := moneyProblem(total); msg != "" {
			fields["total"] = msg
		}
	}
	date, err := time.ParseInLocation(dateLayout, in.Date, uc.loc)
	if err != nil {
		fields["date"] = "Fecha inválida (formato AAAA-MM-DD)"
	}
	if len(fields) > 0 {
		return nil, &dto.ValidationError{Fields: fields}
	}

	category := in.Category
	if category == "" {
		category = invoicing.CategoryOther
	}
	return &entity.Invoice{
		Vendor:      in.Vendor,
		Description: in.Description,
		Amount:      amount,
		Tax:         tax,
		Total:       total,
		Date:        date,
		Category:    category,
		ImageURL:    in.ImageURL,
	}, nil
}

func trimInvoiceRequest(in dto.CreateInvoiceRequest) dto.CreateInvoiceRequest {
	in.Vendor = strings.TrimSpace(in.Vendor)
	in.Description = strings.TrimSpace(in.Description)
	in.Amount = strings.TrimSpace(in.Amount)
	in.Tax = strings.TrimSpace(in.Tax)
	in.Total = strings.TrimSpace(in.Total)
	in.Date = strings.TrimSpace(in.Date)
	in.Category = strings.TrimSpace(in.Category)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	return in
}

// List devuelve las facturas de la ventana, más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, w invoicing.Window) ([]dto.InvoiceResponse, error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	return toInvoiceResponses(invoicing.FilterByWindow(all, w, uc.today())), nil
}

// Delete elimina una factura. domain.ErrNotFound si no existe.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id es obligatorio: %w", domain.ErrInvalidInput)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("invoice_id", id).Msg("factura eliminada")
	return nil
}

// Summary resumen de la ventana.
func (uc *InvoiceUseCase) Summary(ctx context.Context, w invoicing.Window) (*dto.InvoiceSummaryDTO, error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("resumen de facturas: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	s := toSummaryDTO(w, invoicing.Summarize(invoicing.FilterByWindow(all, w, uc.today())))
	return &s, nil
}

// Dashboard resumen y lista de la ventana. Si el store falla no devuelve error:
// responde listas vacías con Degraded = true y deja constancia en el log.
func (uc *InvoiceUseCase) Dashboard(ctx context.Context, w invoicing.Window) dto.DashboardDTO {
	all, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Str("window", string(w)).Msg("dashboard sin datos: store no disponible")
		return dto.DashboardDTO{
			Summary:  toSummaryDTO(w, invoicing.Summarize(nil)),
			Invoices: []dto.InvoiceResponse{},
			Degraded: true,
		}
	}
	filtered := invoicing.FilterByWindow(all, w, uc.today())
	return dto.DashboardDTO{
		Summary:  toSummaryDTO(w, invoicing.Summarize(filtered)),
		Invoices: toInvoiceResponses(filtered),
	}
}

// SummaryPDF reporte PDF del resumen de la ventana con el detalle de facturas.
func (uc *InvoiceUseCase) SummaryPDF(ctx context.Context, w invoicing.Window) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador PDF no configurado: %w", domain.ErrCollaboratorUnavailable)
	}
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte de facturas: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	filtered := invoicing.FilterByWindow(all, w, uc.today())
	summary := toSummaryDTO(w, invoicing.Summarize(filtered))
	return uc.pdf.GenerateSummaryPDF(ctx, summary, toInvoiceResponses(filtered), uc.today())
}

func toSummaryDTO(w invoicing.Window, s invoicing.Summary) dto.InvoiceSummaryDTO {
	categories := make([]dto.CategoryTotalDTO, 0, len(s.ByCategory))
	for name, total := range s.ByCategory {
		categories = append(categories, dto.CategoryTotalDTO{
			Category: name,
			Total:    total,
			Percent:  s.CategoryShare(name).Round(2),
			Known:    invoicing.IsSuggestedCategory(name),
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		if c := categories[i].Total.Cmp(categories[j].Total); c != 0 {
			return c > 0
		}
		return categories[i].Category < categories[j].Category
	})
	return dto.InvoiceSummaryDTO{
		Window:       string(w),
		PeriodLabel:  w.Label(),
		TotalAmount:  s.TotalAmount,
		TotalTax:     s.TotalTax,
		GrandTotal:   s.GrandTotal,
		InvoiceCount: s.InvoiceCount,
		ByCategory:   s.ByCategory,
		Categories:   categories,
	}
}

func toInvoiceResponses(xs []*entity.Invoice) []dto.InvoiceResponse {
	out := make([]dto.InvoiceResponse, 0, len(xs))
	for _, x := range xs {
		out = append(out, *toInvoiceResponse(x))
	}
	return out
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		Vendor:        inv.Vendor,
		Description:   inv.Description,
		Amount:        inv.Amount,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Date:          inv.Date.Format(dateLayout),
		Category:      inv.Category,
		KnownCategory: invoicing.IsSuggestedCategory(inv.Category),
		ImageURL:      inv.ImageURL,
		CreatedAt:     inv.CreatedAt,
	}
}
