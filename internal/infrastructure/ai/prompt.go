package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/FacturaOCR/internal/application/dto"
)

// extractionPrompt instrucciones comunes a todos los proveedores.
// Los valores por defecto coinciden con los que aplica usecase.OCRUseCase.
const extractionPrompt = `Analiza esta imagen de factura/recibo y extrae la información.
Devuelve ÚNICAMENTE un objeto JSON (sin texto adicional ni bloques de código) con esta estructura exacta:
{
  "vendor": "<nombre del vendedor, comercio o empresa que emitió la factura>",
  "description": "<descripción breve de los productos o servicios>",
  "amount": <monto subtotal antes de impuestos>,
  "tax": <monto de impuestos (IVA, ITBIS, etc.)>,
  "total": <monto total de la factura>,
  "date": "<fecha de la factura en formato YYYY-MM-DD>",
  "category": "<una de: Alimentación, Transporte, Servicios, Oficina, Tecnología, Salud, Entretenimiento, Otros>"
}

Si no puedes determinar algún valor, usa estos valores por defecto:
- vendor: "Desconocido"
- description: "Sin descripción"
- amount: el total menos impuestos estimados (si solo hay total, usa 85% del total)
- tax: impuestos (si solo hay total, usa 15% del total)
- total: monto total
- date: deja el campo vacío
- category: "Otros"

Asegúrate de que los montos sean números válidos sin símbolos de moneda.`

// invoicePayload JSON que esperamos recibir del modelo.
type invoicePayload struct {
	Vendor      string     `json:"vendor"`
	Description string     `json:"description"`
	Amount      flexNumber `json:"amount"`
	Tax         flexNumber `json:"tax"`
	Total       flexNumber `json:"total"`
	Date        string     `json:"date"`
	Category    string     `json:"category"`
}

func (p invoicePayload) toGuess() *dto.InvoiceGuess {
	return &dto.InvoiceGuess{
		Vendor:      p.Vendor,
		Description: p.Description,
		Amount:      p.Amount.Decimal,
		Tax:         p.Tax.Decimal,
		Total:       p.Total.Decimal,
		Date:        p.Date,
		Category:    p.Category,
	}
}

// flexNumber acepta números JSON y también cadenas como "RD$ 1,250.50".
// Un valor ilegible queda en 0 y el caso de uso aplica el valor por defecto.
type flexNumber struct {
	decimal.Decimal
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	n.Decimal = decimal.Zero
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		if d, err := decimal.NewFromString(num.String()); err == nil {
			n.Decimal = d
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	s = strings.ReplaceAll(nonNumeric.ReplaceAllString(s, ""), ",", "")
	if d, err := decimal.NewFromString(s); err == nil {
		n.Decimal = d
	}
	return nil
}

var nonNumeric = regexp.MustCompile(`[^0-9.,\-]`)

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el primer objeto JSON de un texto libre:
// quita los bloques ```json … ``` y, si aún hay texto alrededor, toma de la primera '{' a la última '}'.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

// parseInvoiceJSON interpreta la respuesta de texto del modelo.
func parseInvoiceJSON(raw string) (*dto.InvoiceGuess, error) {
	clean := extractJSON(raw)
	if clean == "" {
		return nil, errNoJSON(raw)
	}
	var p invoicePayload
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return nil, errBadJSON(err, clean)
	}
	return p.toGuess(), nil
}
