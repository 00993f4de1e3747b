package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/FacturaOCR/internal/domain"
	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
	"github.com/jhoicas/FacturaOCR/internal/domain/repository"
)

// InvoiceRepository implementa repository.InvoiceRepository sobre Store.
type InvoiceRepository struct {
	s *Store
}

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)

func (r *InvoiceRepository) Create(ctx context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	inv.CreatedAt = time.Now().UTC()
	r.s.invoices[inv.ID] = *inv
	r.s.invOrder = append(r.s.invOrder, inv.ID)
	return nil
}

// List ordena por fecha descendente; a igual fecha, la más reciente primero.
func (r *InvoiceRepository) List(ctx context.Context) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	out := make([]*entity.Invoice, 0, len(r.s.invOrder))
	for _, id := range r.s.invOrder {
		inv := r.s.invoices[id]
		out = append(out, &inv)
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.invoices, id)
	filtered := r.s.invOrder[:0]
	for _, item := range r.s.invOrder {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	r.s.invOrder = filtered
	return nil
}
