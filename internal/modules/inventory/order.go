package inventory

import "fmt"

// OrderLine is one (product, quantity) request within an order.
type OrderLine struct {
	Product  *Product
	Quantity int
}

// ReceiptLine records what a single order line cost.
type ReceiptLine struct {
	Product  *Product
	Quantity int
	Cost     float64
}

// Receipt is the result of a successful checkout.
type Receipt struct {
	Lines []ReceiptLine
	Total float64
}

// Order buys every line in sequence and returns the total cost.
//
// Orders are not transactional: when a line fails, the lines before it stay
// bought and the error is returned without the partial total. Callers must
// treat a failed order as having possibly changed stock. Use OrderAtomic for
// all-or-nothing behaviour.
func (s *Store) Order(lines []OrderLine) (float64, error) {
	receipt, err := s.Checkout(lines, false)
	if err != nil {
		return 0, err
	}
	return receipt.Total, nil
}

// OrderAtomic validates every line against the projected stock before buying
// anything. If any line would fail, no product is changed.
func (s *Store) OrderAtomic(lines []OrderLine) (float64, error) {
	receipt, err := s.Checkout(lines, true)
	if err != nil {
		return 0, err
	}
	return receipt.Total, nil
}

// Checkout processes lines in order and returns a per-line receipt.
func (s *Store) Checkout(lines []OrderLine, atomic bool) (*Receipt, error) {
	if atomic {
		if err := validateLines(lines); err != nil {
			return nil, err
		}
	}
	receipt := &Receipt{Lines: make([]ReceiptLine, 0, len(lines))}
	for i, line := range lines {
		if line.Product == nil {
			return nil, fmt.Errorf("%w: order line %d must reference a product", ErrTypeMismatch, i+1)
		}
		cost, err := line.Product.Buy(line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("order line %d: %w", i+1, err)
		}
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			Product:  line.Product,
			Quantity: line.Quantity,
			Cost:     cost,
		})
		receipt.Total += cost
	}
	return receipt, nil
}

// validateLines dry-runs lines against a projection of each product's stock,
// so a product listed twice is checked against what the first line leaves.
func validateLines(lines []OrderLine) error {
	remaining := make(map[*Product]int, len(lines))
	for i, line := range lines {
		p := line.Product
		if p == nil {
			return fmt.Errorf("%w: order line %d must reference a product", ErrTypeMismatch, i+1)
		}
		stock, active := p.Quantity(), p.IsActive()
		if projected, seen := remaining[p]; seen {
			stock, active = projected, projected > 0
		}
		if err := p.checkBuy(line.Quantity, stock, active); err != nil {
			return fmt.Errorf("order line %d: %w", i+1, err)
		}
		remaining[p] = stock - line.Quantity
	}
	return nil
}
