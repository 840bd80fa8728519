package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/aquamart/aquamart-backend/pkg/db/models"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productLoader interface {
	FindActiveByID(ctx context.Context, id int64) (*models.Product, error)
}

// Snapshot is the cart view returned to clients: items plus derived totals.
type Snapshot struct {
	Items      []LineItem      `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Service exposes token-addressed cart operations.
type Service interface {
	Get(ctx context.Context, token string) (*Snapshot, error)
	AddItem(ctx context.Context, token string, productID int64, qty int) (*Snapshot, error)
	UpdateQty(ctx context.Context, token string, productID int64, qty int) (*Snapshot, error)
	RemoveItem(ctx context.Context, token string, productID int64) (*Snapshot, error)
	Clear(ctx context.Context, token string) error
}

type service struct {
	store    *Store
	products productLoader
}

// NewService builds a cart service over the persisted store and catalog.
func NewService(store *Store, products productLoader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{store: store, products: products}, nil
}

func (s *service) Get(ctx context.Context, token string) (*Snapshot, error) {
	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return snapshot(cart), nil
}

func (s *service) AddItem(ctx context.Context, token string, productID int64, qty int) (*Snapshot, error) {
	product, err := s.products.FindActiveByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	cart.AddItem(*product, qty)

	if err := s.store.Save(ctx, token, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return snapshot(cart), nil
}

func (s *service) UpdateQty(ctx context.Context, token string, productID int64, qty int) (*Snapshot, error) {
	return s.mutate(ctx, token, func(cart *Cart) {
		cart.UpdateQty(productID, qty)
	})
}

func (s *service) RemoveItem(ctx context.Context, token string, productID int64) (*Snapshot, error) {
	return s.mutate(ctx, token, func(cart *Cart) {
		cart.RemoveItem(productID)
	})
}

func (s *service) Clear(ctx context.Context, token string) error {
	if err := s.store.Delete(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) mutate(ctx context.Context, token string, fn func(cart *Cart)) (*Snapshot, error) {
	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	fn(cart)

	if err := s.store.Save(ctx, token, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return snapshot(cart), nil
}

func snapshot(cart *Cart) *Snapshot {
	return &Snapshot{
		Items:      cart.Items,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	}
}
