package inventory

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Store owns an ordered collection of products. Duplicates are allowed;
// removal takes out the first matching entry.
type Store struct {
	products []*Product
}

// NewStore copies products into a new store, so later changes to the
// caller's slice do not reach the store.
func NewStore(products []*Product) (*Store, error) {
	s := &Store{products: make([]*Product, 0, len(products))}
	for _, p := range products {
		if err := s.AddProduct(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AddProduct appends p to the store.
func (s *Store) AddProduct(p *Product) error {
	if p == nil {
		return fmt.Errorf("%w: add product expects a product", ErrTypeMismatch)
	}
	s.products = append(s.products, p)
	return nil
}

// RemoveProduct removes the first entry that is p.
func (s *Store) RemoveProduct(p *Product) error {
	for i, candidate := range s.products {
		if candidate == p {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Find returns the first product with the given ID.
func (s *Store) Find(id uuid.UUID) (*Product, error) {
	for _, p := range s.products {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// TotalQuantity sums the stock of every product, active or not.
func (s *Store) TotalQuantity() int {
	total := 0
	for _, p := range s.products {
		total += p.Quantity()
	}
	return total
}

// ActiveProducts returns the active products in store order.
func (s *Store) ActiveProducts() []*Product {
	active := make([]*Product, 0, len(s.products))
	for _, p := range s.products {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// Products returns every product in store order.
func (s *Store) Products() []*Product {
	out := make([]*Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Len() int { return len(s.products) }

func (s *Store) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Store has %d total products.\n", len(s.products))
	fmt.Fprintf(&b, "Total quantity in inventory: %d\n", s.TotalQuantity())
	b.WriteString("Active Products:")
	for _, p := range s.ActiveProducts() {
		fmt.Fprintf(&b, "\n - %s", p)
	}
	return b.String()
}
