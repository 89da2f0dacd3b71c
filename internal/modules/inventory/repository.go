package inventory

import "context"

// Repository stores snapshots of the store's products, in store order.
type Repository interface {
	LoadProducts(ctx context.Context) ([]*ProductRecord, error)
	SaveProducts(ctx context.Context, products []*ProductRecord) error
}
