package inventory

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu       sync.Mutex
	products []ProductRecord
}

// NewMemoryRepository returns a process-local repository. It is used when no
// database is configured.
func NewMemoryRepository() Repository { return &memoryRepository{} }

func (r *memoryRepository) LoadProducts(ctx context.Context) ([]*ProductRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*ProductRecord, 0, len(r.products))
	for i := range r.products {
		rec := r.products[i]
		out = append(out, &rec)
	}
	return out, nil
}

func (r *memoryRepository) SaveProducts(ctx context.Context, products []*ProductRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = make([]ProductRecord, 0, len(products))
	for i, p := range products {
		rec := *p
		rec.Position = i
		r.products = append(r.products, rec)
	}
	return nil
}
