package inventory

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Product is one inventory line item: a name, a flat unit price and the stock
// on hand. A product is active while it has stock; Activate and Deactivate
// override that until the quantity is set again.
type Product struct {
	id       uuid.UUID
	name     string
	price    float64
	quantity int
	active   bool
}

// NewProduct validates the arguments and returns a product whose active flag
// is derived from quantity.
func NewProduct(name string, price float64, quantity int) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: product name must be a non-empty string", ErrInvalidArgument)
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, fmt.Errorf("%w: price must be a non-negative number", ErrInvalidArgument)
	}
	p := &Product{id: uuid.New(), name: name, price: price}
	if err := p.SetQuantity(quantity); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) ID() uuid.UUID { return p.id }
func (p *Product) Name() string { return p.name }
func (p *Product) Price() float64 { return p.price }
func (p *Product) Quantity() int { return p.quantity }
func (p *Product) IsActive() bool { return p.active }
func (p *Product) Activate() { p.active = true }
func (p *Product) Deactivate() { p.active = false }

// SetQuantity replaces the stock level and re-derives the active flag.
// A negative quantity is rejected and leaves the product untouched.
func (p *Product) SetQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be a non-negative integer", ErrInvalidArgument)
	}
	p.quantity = quantity
	p.active = quantity > 0
	return nil
}

// Buy removes quantity units from stock and returns their cost.
func (p *Product) Buy(quantity int) (float64, error) {
	if err := p.checkBuy(quantity, p.quantity, p.active); err != nil {
		return 0, err
	}
	cost := p.price * float64(quantity)
	if err := p.SetQuantity(p.quantity - quantity); err != nil {
		return 0, err
	}
	return cost, nil
}

// checkBuy applies the purchase rules to a given stock level and active flag
// so that atomic orders can validate against projected state.
func (p *Product) checkBuy(quantity, stock int, active bool) error {
	if !active {
		return fmt.Errorf("%w: cannot buy %q", ErrInactiveProduct, p.name)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: purchase quantity must be a positive integer", ErrInvalidArgument)
	}
	if quantity > stock {
		return fmt.Errorf("%w: %q has %d, requested %d", ErrInsufficientStock, p.name, stock, quantity)
	}
	return nil
}

func (p *Product) String() string {
	return fmt.Sprintf("%s, Price: %s, Quantity: %d", p.name, FormatPrice(p.price), p.quantity)
}

// FormatPrice renders a price, keeping a trailing ".0" on whole prices (1450 -> "1450.0").
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
