package ports

import (
	"context"

	"github.com/jhoicas/FacturaOCR/internal/application/dto"
)

// InvoiceExtractor puerto de salida hacia el LLM multimodal que lee facturas.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type InvoiceExtractor interface {
	// ExtractInvoice devuelve la mejor sugerencia posible; los campos que el modelo
	// no pudo leer pueden venir vacíos o en cero (el caso de uso aplica los valores por defecto).
	ExtractInvoice(ctx context.Context, image []byte, mediaType string) (*dto.InvoiceGuess, error)
}
