package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/aquamart/aquamart-backend/api/responses"
	"github.com/aquamart/aquamart-backend/api/validators"
	"github.com/aquamart/aquamart-backend/internal/catalog"
	"github.com/aquamart/aquamart-backend/pkg/enums"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"github.com/aquamart/aquamart-backend/pkg/logger"
	"github.com/aquamart/aquamart-backend/pkg/pagination"
)

func productListInput(r *http.Request, includeAll bool) (catalog.ListProductsInput, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
	if err != nil {
		return catalog.ListProductsInput{}, err
	}
	featured, err := validators.ParseQueryBool(r, "featured")
	if err != nil {
		return catalog.ListProductsInput{}, err
	}
	inStock, err := validators.ParseQueryBool(r, "inStock")
	if err != nil {
		return catalog.ListProductsInput{}, err
	}

	return catalog.ListProductsInput{
		Filters: catalog.ProductListFilters{
			CategorySlug: strings.TrimSpace(r.URL.Query().Get("category")),
			Query:        strings.TrimSpace(r.URL.Query().Get("q")),
			Featured:     featured,
			InStock:      inStock,
		},
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		},
		IncludeAll: includeAll,
	}, nil
}

// ProductList serves the public storefront catalog.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := productListInput(r, false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductDetail serves one active product by slug.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		product, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminProductList includes inactive products for back-office views.
func AdminProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := productListInput(r, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type productMediaPayload struct {
	URL       string `json:"url" validate:"required,url"`
	Kind      string `json:"kind"`
	IsPrimary bool   `json:"isPrimary"`
}

type createProductRequest struct {
	NameAr      string                `json:"nameAr" validate:"required,min=2,max=255"`
	NameEn      *string               `json:"nameEn" validate:"omitempty,max=255"`
	Slug        string                `json:"slug" validate:"required,min=2,max=255"`
	Description *string               `json:"description"`
	SKU         *string               `json:"sku" validate:"omitempty,max=64"`
	Price       decimal.Decimal       `json:"price"`
	StockQty    int                   `json:"stockQty" validate:"min=0"`
	CategoryID  *int64                `json:"categoryId"`
	IsActive    *bool                 `json:"isActive"`
	IsFeatured  bool                  `json:"isFeatured"`
	Tags        []string              `json:"tags"`
	Media       []productMediaPayload `json:"media" validate:"dive"`
}

type updateProductRequest struct {
	NameAr      *string                `json:"nameAr" validate:"omitempty,min=2,max=255"`
	NameEn      *string                `json:"nameEn" validate:"omitempty,max=255"`
	Slug        *string                `json:"slug" validate:"omitempty,min=2,max=255"`
	Description *string                `json:"description"`
	SKU         *string                `json:"sku" validate:"omitempty,max=64"`
	Price       *decimal.Decimal       `json:"price"`
	StockQty    *int                   `json:"stockQty" validate:"omitempty,min=0"`
	CategoryID  *int64                 `json:"categoryId"`
	IsActive    *bool                  `json:"isActive"`
	IsFeatured  *bool                  `json:"isFeatured"`
	Tags        *[]string              `json:"tags"`
	Media       *[]productMediaPayload `json:"media" validate:"omitempty,dive"`
}

func mediaInputs(payloads []productMediaPayload) []catalog.ProductMediaInput {
	inputs := make([]catalog.ProductMediaInput, 0, len(payloads))
	for _, p := range payloads {
		inputs = append(inputs, catalog.ProductMediaInput{
			URL:       p.URL,
			Kind:      enums.MediaKind(strings.ToUpper(strings.TrimSpace(p.Kind))),
			IsPrimary: p.IsPrimary,
		})
	}
	return inputs
}

// AdminProductCreate persists a new product with its media rows.
func AdminProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		isActive := true
		if body.IsActive != nil {
			isActive = *body.IsActive
		}

		product, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			NameAr:      body.NameAr,
			NameEn:      body.NameEn,
			Slug:        body.Slug,
			Description: body.Description,
			SKU:         body.SKU,
			Price:       body.Price,
			StockQty:    body.StockQty,
			CategoryID:  body.CategoryID,
			IsActive:    isActive,
			IsFeatured:  body.IsFeatured,
			Tags:        body.Tags,
			Media:       mediaInputs(body.Media),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminProductUpdate applies a partial product mutation.
func AdminProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateProductInput{
			NameAr:      body.NameAr,
			NameEn:      body.NameEn,
			Slug:        body.Slug,
			Description: body.Description,
			SKU:         body.SKU,
			Price:       body.Price,
			StockQty:    body.StockQty,
			CategoryID:  body.CategoryID,
			IsActive:    body.IsActive,
			IsFeatured:  body.IsFeatured,
			Tags:        body.Tags,
		}
		if body.Media != nil {
			media := mediaInputs(*body.Media)
			input.Media = &media
		}

		product, err := svc.UpdateProduct(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminProductDelete soft-disables or removes the product.
func AdminProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type adjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// AdminProductAdjustStock applies a relative stock adjustment.
func AdminProductAdjustStock(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body adjustStockRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.AdjustStock(r.Context(), productID, body.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func parseProductID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "productId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	return id, nil
}
