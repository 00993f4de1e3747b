package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/FacturaOCR/internal/application/dto"
	"github.com/jhoicas/FacturaOCR/internal/application/usecase"
	"github.com/jhoicas/FacturaOCR/internal/domain"
	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
	"github.com/jhoicas/FacturaOCR/internal/domain/invoicing"
	"github.com/jhoicas/FacturaOCR/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type brokenInvoices struct {
	*memory.InvoiceRepository
}

func (brokenInvoices) List(ctx context.Context) ([]*entity.Invoice, error) {
	return nil, errors.New("timeout")
}

type fakePDF struct {
	summary  dto.InvoiceSummaryDTO
	invoices []dto.InvoiceResponse
}

func (f *fakePDF) GenerateSummaryPDF(ctx context.Context, s dto.InvoiceSummaryDTO, xs []dto.InvoiceResponse, at time.Time) ([]byte, error) {
	f.summary, f.invoices = s, xs
	return []byte("%PDF-fake"), nil
}

func newInvoiceUC() *usecase.InvoiceUseCase {
	repo := memory.NewStore().Invoices()
	return usecase.NewInvoiceUseCase(repo, nil, time.UTC, nil).WithClock(func() time.Time { return fixedNow })
}

func TestInvoiceCreate_Defaults(t *testing.T) {
	uc := newInvoiceUC()
	got, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Vendor: "  Supermercado Nacional ",
		Amount: "100",
		Tax:    "18",
		Date:   "2026-03-15",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Supermercado Nacional", got.Vendor)
	assert.True(t, decimal.NewFromInt(118).Equal(got.Total))
	assert.Equal(t, invoicing.CategoryOther, got.Category)
	assert.True(t, got.KnownCategory)
	assert.Equal(t, "2026-03-15", got.Date)
}

func TestInvoiceCreate_TotalEditadoSeRespeta(t *testing.T) {
	uc := newInvoiceUC()
	got, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Vendor: "Taller", Amount: "100", Tax: "18", Total: "120.50", Date: "2026-03-01", Category: "Mascotas",
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("120.50").Equal(got.Total))
	assert.False(t, got.KnownCategory)
}

func TestInvoiceCreate_Validacion(t *testing.T) {
	uc := newInvoiceUC()
	tests := []struct {
		name  string
		in    dto.CreateInvoiceRequest
		field string
	}{
		{"sin proveedor", dto.CreateInvoiceRequest{Amount: "10", Date: "2026-03-01"}, "vendor"},
		{"monto no numérico", dto.CreateInvoiceRequest{Vendor: "X", Amount: "diez", Date: "2026-03-01"}, "amount"},
		{"monto cero", dto.CreateInvoiceRequest{Vendor: "X", Amount: "0", Date: "2026-03-01"}, "amount"},
		{"monto negativo", dto.CreateInvoiceRequest{Vendor: "X", Amount: "-5", Date: "2026-03-01"}, "amount"},
		{"impuesto negativo", dto.CreateInvoiceRequest{Vendor: "X", Amount: "5", Tax: "-1", Date: "2026-03-01"}, "tax"},
		{"sin fecha", dto.CreateInvoiceRequest{Vendor: "X", Amount: "5"}, "date"},
		{"fecha inválida", dto.CreateInvoiceRequest{Vendor: "X", Amount: "5", Date: "15/03/2026"}, "date"},
		{"monto con tres decimales", dto.CreateInvoiceRequest{Vendor: "X", Amount: "0.001", Date: "2026-03-01"}, "amount"},
		{"monto de 19 dígitos", dto.CreateInvoiceRequest{Vendor: "X", Amount: "1234567890123456789", Date: "2026-03-01"}, "amount"},
		{"impuesto con tres decimales", dto.CreateInvoiceRequest{Vendor: "X", Amount: "5", Tax: "0.125", Date: "2026-03-01"}, "tax"},
		{"impuesto de 13 dígitos", dto.CreateInvoiceRequest{Vendor: "X", Amount: "5", Tax: "1000000000000", Date: "2026-03-01"}, "tax"},
		{"total con tres decimales", dto.CreateInvoiceRequest{Vendor: "X", Amount: "5", Total: "5.001", Date: "2026-03-01"}, "total"},
		{"suma que desborda", dto.CreateInvoiceRequest{Vendor: "X", Amount: "999999999999", Tax: "1", Date: "2026-03-01"}, "total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			var verr *dto.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	list, err := uc.List(context.Background(), invoicing.WindowAll)
	require.NoError(t, err)
	assert.Empty(t, list, "nada se persiste si la validación falla")
}

func TestInvoiceCreate_MontosEnElLimite(t *testing.T) {
	uc := newInvoiceUC()
	got, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Vendor: "X", Amount: "999999999998.99", Tax: "1.00", Date: "2026-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "999999999999.99", got.Total.StringFixed(2))

	got, err = uc.Create(context.Background(), dto.CreateInvoiceRequest{Vendor: "X", Amount: "0.01", Date: "2026-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "0.01", got.Amount.StringFixed(2))
}

func TestInvoiceSummary_Ventanas(t *testing.T) {
	ctx := context.Background()
	uc := newInvoiceUC()
	for _, in := range []dto.CreateInvoiceRequest{
		{Vendor: "Hoy", Amount: "100", Tax: "18", Date: "2026-03-15", Category: invoicing.CategoryFood},
		{Vendor: "Semana", Amount: "50", Date: "2026-03-10", Category: invoicing.CategoryOther},
		{Vendor: "Viejo", Amount: "10", Date: "2025-12-01", Category: invoicing.CategoryOther},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	day, err := uc.Summary(ctx, invoicing.WindowDay)
	require.NoError(t, err)
	assert.Equal(t, 1, day.InvoiceCount)
	assert.Equal(t, "Hoy", day.PeriodLabel)

	week, err := uc.Summary(ctx, invoicing.WindowWeek)
	require.NoError(t, err)
	assert.Equal(t, 2, week.InvoiceCount)
	assert.True(t, decimal.NewFromInt(168).Equal(week.GrandTotal))
	require.Len(t, week.Categories, 2)
	assert.Equal(t, invoicing.CategoryFood, week.Categories[0].Category)

	all, err := uc.Summary(ctx, invoicing.WindowAll)
	require.NoError(t, err)
	assert.Equal(t, 3, all.InvoiceCount)

	list, err := uc.List(ctx, invoicing.WindowAll)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Hoy", list[0].Vendor)
}

func TestInvoiceDelete(t *testing.T) {
	ctx := context.Background()
	uc := newInvoiceUC()
	got, err := uc.Create(ctx, dto.CreateInvoiceRequest{Vendor: "X", Amount: "1", Date: "2026-03-15"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, got.ID))
	assert.ErrorIs(t, uc.Delete(ctx, got.ID), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, " "), domain.ErrInvalidInput)
}

func TestInvoiceDashboard_StoreCaidoDegrada(t *testing.T) {
	repo := brokenInvoices{memory.NewStore().Invoices()}
	uc := usecase.NewInvoiceUseCase(repo, nil, time.UTC, nil)

	got := uc.Dashboard(context.Background(), invoicing.WindowMonth)
	assert.True(t, got.Degraded)
	assert.Empty(t, got.Invoices)
	assert.NotNil(t, got.Invoices)
	assert.Zero(t, got.Summary.InvoiceCount)

	_, err := uc.Summary(context.Background(), invoicing.WindowMonth)
	assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)
}

func TestInvoiceSummaryPDF(t *testing.T) {
	ctx := context.Background()
	pdf := &fakePDF{}
	uc := usecase.NewInvoiceUseCase(memory.NewStore().Invoices(), pdf, time.UTC, nil).
		WithClock(func() time.Time { return fixedNow })
	_, err := uc.Create(ctx, dto.CreateInvoiceRequest{Vendor: "X", Amount: "10", Date: "2026-03-14"})
	require.NoError(t, err)

	out, err := uc.SummaryPDF(ctx, invoicing.WindowWeek)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.Equal(t, 1, pdf.summary.InvoiceCount)
	assert.Len(t, pdf.invoices, 1)

	_, err = newInvoiceUC().SummaryPDF(ctx, invoicing.WindowAll)
	assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)
}
