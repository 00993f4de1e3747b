package repository

import (
	"context"

	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	// Create inserta y completa ID y CreatedAt con los valores devueltos por el store.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// List devuelve todas las facturas ordenadas por fecha descendente.
	List(ctx context.Context) ([]*entity.Invoice, error)
	// Delete devuelve domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
