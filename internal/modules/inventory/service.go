package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service exposes the store to the presentation layers (HTTP, console).
type Service interface {
	// Load replaces the store's products with the repository snapshot,
	// seeding DefaultCatalog when the repository is empty.
	Load(ctx context.Context) error

	// Product queries
	ListProducts(ctx context.Context, activeOnly bool) ([]*ProductRecord, error)
	GetProduct(ctx context.Context, id string) (*ProductRecord, error)
	TotalQuantity(ctx context.Context) (int, error)
	Summary(ctx context.Context) (*Summary, error)

	// Administrative operations
	AddProduct(ctx context.Context, req AddProductRequest) (*ProductRecord, error)
	RemoveProduct(ctx context.Context, id string) error
	UpdateStock(ctx context.Context, id string, qty int) (*ProductRecord, error)
	SetAvailability(ctx context.Context, id string, active bool) (*ProductRecord, error)

	// PlaceOrder buys every item in order. Unless the request (or the service
	// default) asks for atomic processing, a failure leaves earlier items bought.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResult, error)
}

type service struct {
	mu           sync.Mutex
	store        *Store
	repo         Repository
	logger       *zap.Logger
	atomicOrders bool
}

// NewService creates a new inventory service around store. Every mutation is
// written back to repo.
func NewService(store *Store, repo Repository, logger *zap.Logger, atomicOrders bool) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		store:        store,
		repo:         repo,
		logger:       logger,
		atomicOrders: atomicOrders,
	}
}

func (s *service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	seeded := false
	if len(stored) == 0 {
		stored = DefaultCatalog()
		seeded = true
	}

	// The same product may be stored at several positions.
	byID := make(map[uuid.UUID]*Product, len(stored))
	products := make([]*Product, 0, len(stored))
	for _, rec := range stored {
		if p, ok := byID[rec.ID]; ok && rec.ID != uuid.Nil {
			products = append(products, p)
			continue
		}
		p, err := RestoreProduct(rec)
		if err != nil {
			return fmt.Errorf("invalid stored product %q: %w", rec.Name, err)
		}
		byID[p.ID()] = p
		products = append(products, p)
	}
	s.store.products = products

	s.logger.Info("inventory loaded",
		zap.Int("products", len(products)),
		zap.Int("total_quantity", s.store.TotalQuantity()),
		zap.Bool("seeded", seeded),
	)
	if seeded {
		return s.persist(ctx)
	}
	return nil
}

func (s *service) ListProducts(ctx context.Context, activeOnly bool) ([]*ProductRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := s.store.Products()
	if activeOnly {
		products = s.store.ActiveProducts()
	}
	return records(products), nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*ProductRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return p.Record(), nil
}

func (s *service) TotalQuantity(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.TotalQuantity(), nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Summary{
		ProductCount:   s.store.Len(),
		TotalQuantity:  s.store.TotalQuantity(),
		ActiveProducts: records(s.store.ActiveProducts()),
	}, nil
}

func (s *service) AddProduct(ctx context.Context, req AddProductRequest) (*ProductRecord, error) {
	p, err := NewProduct(req.Name, req.Price, req.Quantity)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.AddProduct(p); err != nil {
		return nil, err
	}
	s.logger.Info("product added",
		zap.String("product_id", p.ID().String()),
		zap.String("name", p.Name()),
		zap.Int("quantity", p.Quantity()),
	)
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return p.Record(), nil
}

func (s *service) RemoveProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.store.RemoveProduct(p); err != nil {
		return err
	}
	s.logger.Info("product removed", zap.String("product_id", id))
	return s.persist(ctx)
}

func (s *service) UpdateStock(ctx context.Context, id string, qty int) (*ProductRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if err := p.SetQuantity(qty); err != nil {
		return nil, err
	}
	s.logger.Info("stock updated",
		zap.String("product_id", id),
		zap.Int("quantity", qty),
		zap.Bool("active", p.IsActive()),
	)
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return p.Record(), nil
}

func (s *service) SetAvailability(ctx context.Context, id string, active bool) (*ProductRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if active {
		p.Activate()
	} else {
		p.Deactivate()
	}
	s.logger.Info("availability updated", zap.String("product_id", id), zap.Bool("active", active))
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return p.Record(), nil
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResult, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrInvalidArgument)
	}
	atomic := s.atomicOrders
	if req.Atomic != nil {
		atomic = *req.Atomic
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		p, err := s.find(item.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, OrderLine{Product: p, Quantity: item.Quantity})
	}

	receipt, err := s.store.Checkout(lines, atomic)
	if err != nil {
		s.logger.Warn("order failed",
			zap.Error(err),
			zap.Int("items", len(lines)),
			zap.Bool("atomic", atomic),
		)
		if !atomic {
			// Earlier lines may already be bought.
			if perr := s.persist(ctx); perr != nil {
				s.logger.Error("failed to persist partial order", zap.Error(perr))
			}
		}
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Int("items", len(lines)),
		zap.Float64("total", receipt.Total),
		zap.Bool("atomic", atomic),
	)
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return newOrderResult(receipt), nil
}

// find resolves a product ID. Callers hold s.mu.
func (s *service) find(id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product_id: %v", ErrInvalidArgument, err)
	}
	return s.store.Find(uid)
}

// persist writes the current snapshot. Callers hold s.mu.
func (s *service) persist(ctx context.Context) error {
	if err := s.repo.SaveProducts(ctx, records(s.store.Products())); err != nil {
		s.logger.Error("failed to persist products", zap.Error(err))
		return fmt.Errorf("failed to persist products: %w", err)
	}
	return nil
}

func records(products []*Product) []*ProductRecord {
	out := make([]*ProductRecord, 0, len(products))
	for _, p := range products {
		out = append(out, p.Record())
	}
	return out
}
