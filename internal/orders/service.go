package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/aquamart/aquamart-backend/internal/catalog"
	"github.com/aquamart/aquamart-backend/pkg/db/models"
	"github.com/aquamart/aquamart-backend/pkg/enums"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"github.com/aquamart/aquamart-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersInput captures the inputs for the back-office order list.
type ListOrdersInput struct {
	Filters    OrderFilters
	Pagination pagination.Params
}

// Service exposes back-office order operations.
type Service interface {
	List(ctx context.Context, input ListOrdersInput) (*OrderListResult, error)
	Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) (*models.Order, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo        *Repository
	tx          txRunner
	catalogRepo *catalog.Repository
}

// NewService constructs an order service instance.
func NewService(repo *Repository, tx txRunner, catalogRepo *catalog.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, tx: tx, catalogRepo: catalogRepo}, nil
}

func (s *service) List(ctx context.Context, input ListOrdersInput) (*OrderListResult, error) {
	result, err := s.repo.List(ctx, input.Pagination, input.Filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// UpdateStatus moves the order along its lifecycle. Canceling puts every
// line's quantity back into stock in the same transaction.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) (*models.Order, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ordersRepo := s.repo.WithTx(tx)
		order.Status = next
		if err := ordersRepo.Save(ctx, order); err != nil {
			return err
		}
		if next != enums.OrderStatusCanceled {
			return nil
		}
		catalogRepo := s.catalogRepo.WithTx(tx)
		for _, item := range order.Items {
			if err := catalogRepo.AdjustStock(ctx, item.ProductID, item.Qty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return order, nil
}
