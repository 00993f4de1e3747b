// Package invoicing contiene la agregación de facturas: filtro por ventana de tiempo
// y resumen por totales y categoría. Funciones puras sobre colecciones en memoria.
package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/FacturaOCR/internal/domain"
	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
)

// Window ventana de tiempo aplicada antes de resumir.
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowAll   Window = "all"
)

// ParseWindow valida la ventana recibida por query string. Vacío equivale a "all".
func ParseWindow(s string) (Window, error) {
	switch w := Window(strings.ToLower(strings.TrimSpace(s))); w {
	case "":
		return WindowAll, nil
	case WindowDay, WindowWeek, WindowMonth, WindowAll:
		return w, nil
	default:
		return "", fmt.Errorf("ventana %q no soportada (day, week, month, all): %w", s, domain.ErrInvalidInput)
	}
}

// Label etiqueta legible del período para la UI.
func (w Window) Label() string {
	switch w {
	case WindowDay:
		return "Hoy"
	case WindowWeek:
		return "Últimos 7 días"
	case WindowMonth:
		return "Último mes"
	default:
		return "Total"
	}
}

// Start instante a partir del cual una factura entra en la ventana (inclusive).
// ok es false para WindowAll (sin límite inferior).
//   - day:   medianoche local de hoy
//   - week:  now - 7×24h (ventana móvil, no alineada a la semana calendario)
//   - month: SubtractMonth(now)
func (w Window) Start(now time.Time) (start time.Time, ok bool) {
	switch w {
	case WindowDay:
		return startOfDay(now), true
	case WindowWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case WindowMonth:
		return SubtractMonth(now), true
	default:
		return time.Time{}, false
	}
}

// SubtractMonth resta un mes calendario conservando la hora.
// Si el día no existe en el mes anterior se ajusta al último día de ese mes:
// 31 mar → 28/29 feb, 31 may → 30 abr, 31 ene → 31 dic del año anterior.
// (time.AddDate normalizaría 31 mar - 1 mes a 3 mar; aquí no.)
func SubtractMonth(t time.Time) time.Time {
	y, m, d := t.Date()
	m--
	if m < time.January {
		m = time.December
		y--
	}
	if last := daysIn(y, m, t.Location()); d > last {
		d = last
	}
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// FilterByWindow devuelve las facturas cuya fecha es >= al inicio de la ventana.
// No hay límite superior: las facturas con fecha futura se incluyen.
// Conserva el orden de entrada; para WindowAll devuelve la misma colección.
//
// La fecha de la factura se interpreta como día calendario en la zona de now
// (Y-M-D del valor almacenado, a medianoche en now.Location()).
func FilterByWindow(invoices []*entity.Invoice, w Window, now time.Time) []*entity.Invoice {
	start, ok := w.Start(now)
	if !ok {
		return invoices
	}
	out := make([]*entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv == nil {
			continue
		}
		if !calendarDate(inv.Date, now.Location()).Before(start) {
			out = append(out, inv)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// calendarDate toma el día calendario de t (en su propia zona) y lo sitúa a medianoche en loc.
// Las columnas DATE llegan como medianoche UTC; sin esto, en zonas negativas
// una factura de hoy caería en el día anterior.
func calendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}
