package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aquamart/aquamart-backend/internal/catalog"
	"github.com/aquamart/aquamart-backend/internal/orders"
	"github.com/aquamart/aquamart-backend/pkg/db/models"
	"github.com/aquamart/aquamart-backend/pkg/enums"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemInput is one requested order line.
type ItemInput struct {
	ProductID int64 `json:"productId"`
	Qty       int   `json:"qty"`
}

// SubmitInput is the checkout payload after validation.
type SubmitInput struct {
	CustomerName string
	Phone        string
	Address      string
	Note         *string
	Items        []ItemInput
}

// Violation explains why one requested line blocked the checkout.
type Violation struct {
	ProductID int64  `json:"productId"`
	Reason    string `json:"reason"`
	Available *int   `json:"available,omitempty"`
}

// Result is returned once the order is created. WhatsAppURL is empty when no
// store number is configured.
type Result struct {
	OrderID     uuid.UUID       `json:"orderId"`
	Number      string          `json:"orderNumber"`
	Total       decimal.Decimal `json:"total"`
	WhatsAppURL string          `json:"whatsappUrl,omitempty"`
}

// Service submits orders.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*Result, error)
}

type settingsReader interface {
	Value(ctx context.Context, key string) (string, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	tx          txRunner
	catalogRepo *catalog.Repository
	ordersRepo  *orders.Repository
	settings    settingsReader
	now         func() time.Time
}

// NewService constructs a checkout service instance.
func NewService(tx txRunner, catalogRepo *catalog.Repository, ordersRepo *orders.Repository, settings settingsReader) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings reader required")
	}
	return &service{
		tx:          tx,
		catalogRepo: catalogRepo,
		ordersRepo:  ordersRepo,
		settings:    settings,
		now:         time.Now,
	}, nil
}

// Submit revalidates every requested line against live stock and creates the
// order with price snapshots in one transaction. Any violation aborts: no
// order is created and no stock moves.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*Result, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order contains no items")
	}
	for _, item := range input.Items {
		if item.Qty < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item qty must be at least 1")
		}
	}

	number, err := NewOrderNumber(s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order number")
	}

	var created *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := s.catalogRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		var violations []Violation
		lines := make([]models.OrderItem, 0, len(input.Items))
		total := decimal.Zero

		for _, item := range input.Items {
			product, err := catalogRepo.FindActiveByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					violations = append(violations, Violation{ProductID: item.ProductID, Reason: "unavailable"})
					continue
				}
				return err
			}
			if product.StockQty < item.Qty {
				available := product.StockQty
				violations = append(violations, Violation{
					ProductID: item.ProductID,
					Reason:    "insufficient_stock",
					Available: &available,
				})
				continue
			}

			lines = append(lines, models.OrderItem{
				ID:        uuid.New(),
				ProductID: product.ID,
				NameAr:    product.NameAr,
				UnitPrice: product.Price,
				Qty:       item.Qty,
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
		}

		if len(violations) > 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "some items are no longer available").
				WithDetails(violations)
		}

		order := &models.Order{
			ID:           uuid.New(),
			Number:       number,
			CustomerName: strings.TrimSpace(input.CustomerName),
			Phone:        strings.TrimSpace(input.Phone),
			Address:      strings.TrimSpace(input.Address),
			Note:         input.Note,
			Status:       enums.OrderStatusPending,
			Total:        total,
			Items:        lines,
		}
		if _, err := ordersRepo.Create(ctx, order); err != nil {
			return err
		}

		for _, item := range input.Items {
			affected, err := catalogRepo.DecrementStock(ctx, item.ProductID, item.Qty)
			if err != nil {
				return err
			}
			// sold out between the read and the guarded write
			if affected == 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "some items are no longer available").
					WithDetails([]Violation{{ProductID: item.ProductID, Reason: "insufficient_stock"}})
			}
		}

		created = order
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit order")
	}

	result := &Result{
		OrderID: created.ID,
		Number:  created.Number,
		Total:   created.Total,
	}

	waNumber, currency := s.storeContact(ctx)
	if waNumber != "" {
		result.WhatsAppURL = BuildWhatsAppURL(waNumber, OrderSummaryMessage(created, currency))
	}
	return result, nil
}

// storeContact reads the WhatsApp number and currency label. Settings are
// advisory here; a read failure degrades to an order-number-only response.
func (s *service) storeContact(ctx context.Context) (string, string) {
	number, err := s.settings.Value(ctx, "whatsappNumber")
	if err != nil {
		return "", ""
	}
	currency, err := s.settings.Value(ctx, "currency")
	if err != nil {
		currency = ""
	}
	return number, currency
}
