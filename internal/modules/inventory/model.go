package inventory

import (
	"fmt"

	"github.com/google/uuid"
)

// ProductRecord is the serialisable snapshot of a product, used by the
// repositories and the HTTP API.
type ProductRecord struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	IsActive bool      `json:"is_active"`
	Position int       `json:"-"`
}

// Record snapshots p.
func (p *Product) Record() *ProductRecord {
	return &ProductRecord{
		ID:       p.id,
		Name:     p.name,
		Price:    p.price,
		Quantity: p.quantity,
		IsActive: p.active,
	}
}

// RestoreProduct rebuilds a product from a snapshot, keeping its ID and any
// explicit activation override.
func RestoreProduct(rec *ProductRecord) (*Product, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil product record", ErrTypeMismatch)
	}
	p, err := NewProduct(rec.Name, rec.Price, rec.Quantity)
	if err != nil {
		return nil, err
	}
	if rec.ID != uuid.Nil {
		p.id = rec.ID
	}
	p.active = rec.IsActive
	return p, nil
}

// DefaultCatalog returns the products a fresh store is seeded with.
func DefaultCatalog() []*ProductRecord {
	return []*ProductRecord{
		{Name: "MacBook Air M2", Price: 1450, Quantity: 100, IsActive: true},
		{Name: "Bose QuietComfort Earbuds", Price: 250, Quantity: 500, IsActive: true},
		{Name: "Google Pixel 7", Price: 500, Quantity: 250, IsActive: true},
	}
}

// AddProductRequest holds data for listing a new product.
type AddProductRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderItemRequest is one line of a PlaceOrderRequest.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest is the payload for ordering several products at once.
// Atomic selects all-or-nothing processing.
type PlaceOrderRequest struct {
	Items  []OrderItemRequest `json:"items"`
	Atomic *bool              `json:"atomic,omitempty"`
}

// OrderResult reports a completed order.
type OrderResult struct {
	Lines []OrderResultLine `json:"lines"`
	Total float64           `json:"total"`
}

// OrderResultLine is the cost of one ordered product.
type OrderResultLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	LineTotal float64   `json:"line_total"`
}

func newOrderResult(r *Receipt) *OrderResult {
	out := &OrderResult{Lines: make([]OrderResultLine, 0, len(r.Lines)), Total: r.Total}
	for _, l := range r.Lines {
		out.Lines = append(out.Lines, OrderResultLine{
			ProductID: l.Product.ID(),
			Name:      l.Product.Name(),
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price(),
			LineTotal: l.Cost,
		})
	}
	return out
}

// Summary describes the whole store.
type Summary struct {
	ProductCount   int              `json:"product_count"`
	TotalQuantity  int              `json:"total_quantity"`
	ActiveProducts []*ProductRecord `json:"active_products"`
}
