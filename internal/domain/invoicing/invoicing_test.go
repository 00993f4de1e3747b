package invoicing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/FacturaOCR/internal/domain"
	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
	"github.com/jhoicas/FacturaOCR/internal/domain/invoicing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func inv(id, category, amount, tax, total string, date time.Time) *entity.Invoice {
	return &entity.Invoice{
		ID: id, Vendor: "Proveedor " + id, Category: category,
		Amount: dec(amount), Tax: dec(tax), Total: dec(total), Date: date,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Summarize
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarize_Ejemplo(t *testing.T) {
	today := time.Now()
	s := invoicing.Summarize([]*entity.Invoice{
		inv("1", "Alimentación", "100", "18", "118", today),
		inv("2", "Otros", "50", "0", "50", today),
	})

	assert.True(t, dec("150").Equal(s.TotalAmount), "totalAmount = %s", s.TotalAmount)
	assert.True(t, dec("18").Equal(s.TotalTax))
	assert.True(t, dec("168").Equal(s.GrandTotal))
	assert.Equal(t, 2, s.InvoiceCount)
	require.Len(t, s.ByCategory, 2)
	assert.True(t, dec("118").Equal(s.ByCategory["Alimentación"]))
	assert.True(t, dec("50").Equal(s.ByCategory["Otros"]))
}

func TestSummarize_Vacio(t *testing.T) {
	s := invoicing.Summarize(nil)
	assert.True(t, s.TotalAmount.IsZero())
	assert.True(t, s.TotalTax.IsZero())
	assert.True(t, s.GrandTotal.IsZero())
	assert.Zero(t, s.InvoiceCount)
	assert.NotNil(t, s.ByCategory)
	assert.Empty(t, s.ByCategory)
}

func TestSummarize_CategoriasParticionanElTotal(t *testing.T) {
	now := time.Now()
	xs := []*entity.Invoice{
		inv("1", "Transporte", "10.10", "1.90", "12.00", now),
		inv("2", "Categoría inventada", "3.33", "0.67", "4.00", now),
		// total editado a mano: no coincide con amount + tax y se respeta
		inv("3", "Transporte", "100", "18", "120.55", now),
		inv("4", "", "1", "0", "1", now),
	}
	s := invoicing.Summarize(xs)

	sumTotals := decimal.Zero
	for _, x := range xs {
		sumTotals = sumTotals.Add(x.Total)
	}
	sumCategories := decimal.Zero
	for _, v := range s.ByCategory {
		sumCategories = sumCategories.Add(v)
	}
	assert.True(t, sumTotals.Equal(s.GrandTotal))
	assert.True(t, sumCategories.Equal(s.GrandTotal))
	assert.True(t, dec("132.55").Equal(s.ByCategory["Transporte"]))
	assert.Contains(t, s.ByCategory, "Categoría inventada")
	assert.Contains(t, s.ByCategory, "")
}

func TestSummary_CategoryShare(t *testing.T) {
	s := invoicing.Summarize([]*entity.Invoice{
		inv("1", "Salud", "75", "0", "75", time.Now()),
		inv("2", "Otros", "25", "0", "25", time.Now()),
	})
	assert.True(t, dec("75").Equal(s.CategoryShare("Salud")))
	assert.True(t, invoicing.Summarize(nil).CategoryShare("Salud").IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// FilterByWindow
// ──────────────────────────────────────────────────────────────────────────────

func TestFilterByWindow_AllEsIdentidad(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	xs := []*entity.Invoice{
		inv("b", "Otros", "1", "0", "1", now.AddDate(-3, 0, 0)),
		inv("a", "Otros", "1", "0", "1", now.AddDate(1, 0, 0)),
		inv("c", "Otros", "1", "0", "1", now),
	}
	assert.Equal(t, xs, invoicing.FilterByWindow(xs, invoicing.WindowAll, now))
	assert.Empty(t, invoicing.FilterByWindow(nil, invoicing.WindowAll, now))
}

func TestFilterByWindow_Day(t *testing.T) {
	loc := time.FixedZone("AST", -4*3600)
	now := time.Date(2026, 3, 15, 9, 30, 0, 0, loc)

	yesterday := inv("ayer", "Otros", "1", "0", "1", time.Date(2026, 3, 14, 23, 59, 59, 0, loc))
	todayLate := inv("hoy-tarde", "Otros", "1", "0", "1", time.Date(2026, 3, 15, 23, 0, 0, 0, loc))
	// columna DATE leída de Postgres: medianoche UTC del mismo día calendario
	todayUTC := inv("hoy-utc", "Otros", "1", "0", "1", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	future := inv("futura", "Otros", "1", "0", "1", time.Date(2026, 4, 1, 0, 0, 0, 0, loc))

	got := invoicing.FilterByWindow([]*entity.Invoice{yesterday, todayLate, todayUTC, future}, invoicing.WindowDay, now)
	assert.Equal(t, []*entity.Invoice{todayLate, todayUTC, future}, got)
}

func TestFilterByWindow_WeekEsMovil(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	inside := inv("dentro", "Otros", "1", "0", "1", time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC))
	outside := inv("fuera", "Otros", "1", "0", "1", time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC))

	got := invoicing.FilterByWindow([]*entity.Invoice{inside, outside}, invoicing.WindowWeek, now)
	assert.Equal(t, []*entity.Invoice{inside}, got)
}

func TestFilterByWindow_Month(t *testing.T) {
	now := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	feb28 := inv("feb28", "Otros", "1", "0", "1", time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	feb27 := inv("feb27", "Otros", "1", "0", "1", time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC))

	got := invoicing.FilterByWindow([]*entity.Invoice{feb28, feb27}, invoicing.WindowMonth, now)
	assert.Equal(t, []*entity.Invoice{feb28}, got)
}

func TestSubtractMonth(t *testing.T) {
	tests := []struct {
		in, want time.Time
	}{
		{time.Date(2026, 3, 31, 10, 0, 0, 0, time.UTC), time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC)},
		{time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)},
		{time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC), time.Date(2026, 9, 18, 8, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, invoicing.SubtractMonth(tt.in), "entrada %s", tt.in)
	}
}

func TestParseWindow(t *testing.T) {
	for in, want := range map[string]invoicing.Window{
		"":       invoicing.WindowAll,
		"day":    invoicing.WindowDay,
		" WEEK ": invoicing.WindowWeek,
		"month":  invoicing.WindowMonth,
		"all":    invoicing.WindowAll,
	} {
		got, err := invoicing.ParseWindow(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := invoicing.ParseWindow("year")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestIsSuggestedCategory(t *testing.T) {
	assert.True(t, invoicing.IsSuggestedCategory("Tecnología"))
	assert.False(t, invoicing.IsSuggestedCategory("Mascotas"))
	assert.Equal(t, "Últimos 7 días", invoicing.WindowWeek.Label())
}
