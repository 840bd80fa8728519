package controllers

import (
	"net/http"

	"github.com/aquamart/aquamart-backend/api/middleware"
	"github.com/aquamart/aquamart-backend/api/responses"
	"github.com/aquamart/aquamart-backend/api/validators"
	"github.com/aquamart/aquamart-backend/internal/cart"
	"github.com/aquamart/aquamart-backend/internal/checkout"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"github.com/aquamart/aquamart-backend/pkg/logger"
)

type checkoutItemPayload struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Qty       int   `json:"qty" validate:"required,gt=0"`
}

type checkoutRequest struct {
	CustomerName string                `json:"customerName" validate:"required,min=2,max=255"`
	Phone        string                `json:"phone" validate:"required,min=7,max=20"`
	Address      string                `json:"address" validate:"required,min=5"`
	Note         *string               `json:"note" validate:"omitempty,max=1000"`
	Items        []checkoutItemPayload `json:"items" validate:"required,min=1,dive"`
}

// Checkout submits the order and clears the cart when it succeeds.
func Checkout(svc checkout.Service, carts cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]checkout.ItemInput, 0, len(body.Items))
		for _, item := range body.Items {
			items = append(items, checkout.ItemInput{ProductID: item.ProductID, Qty: item.Qty})
		}

		result, err := svc.Submit(r.Context(), checkout.SubmitInput{
			CustomerName: body.CustomerName,
			Phone:        body.Phone,
			Address:      body.Address,
			Note:         body.Note,
			Items:        items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderNumber(ctx, result.Number)
			logg.Info(ctx, "checkout.submitted")
		}

		// The cart served its purpose once the order exists. A failed
		// clear is not worth failing the checkout over.
		if carts != nil {
			if token := middleware.CartTokenFromContext(r.Context()); token != "" {
				if err := carts.Clear(r.Context(), token); err != nil && logg != nil {
					logg.Warn(logg.WithField(ctx, "cart_clear_error", err.Error()), "checkout.cart_clear_failed")
				}
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
