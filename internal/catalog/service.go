package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aquamart/aquamart-backend/pkg/db"
	"github.com/aquamart/aquamart-backend/pkg/db/models"
	"github.com/aquamart/aquamart-backend/pkg/enums"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes storefront browsing and admin product management.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID int64, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID int64) error
	AdjustStock(ctx context.Context, productID int64, delta int) (*ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	NameAr      string
	NameEn      *string
	Slug        string
	Description *string
	SKU         *string
	Price       decimal.Decimal
	StockQty    int
	CategoryID  *int64
	IsActive    bool
	IsFeatured  bool
	Tags        []string
	Media       []ProductMediaInput
}

// ProductMediaInput is one media entry attached at create or update. Array
// position becomes the sort order.
type ProductMediaInput struct {
	URL       string
	Kind      enums.MediaKind
	IsPrimary bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	NameAr      *string
	NameEn      *string
	Slug        *string
	Description *string
	SKU         *string
	Price       *decimal.Decimal
	StockQty    *int
	CategoryID  *int64
	IsActive    *bool
	IsFeatured  *bool
	Tags        *[]string
	Media       *[]ProductMediaInput
}

type categoryResolver interface {
	SubtreeIDsBySlug(ctx context.Context, slug string) ([]int64, error)
}

type service struct {
	repo       *Repository
	dbClient   *db.Client
	categories categoryResolver
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client, categories categoryResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category resolver required")
	}
	return &service{repo: repo, dbClient: dbClient, categories: categories}, nil
}

// ListProducts pages products with the requested filters. A category slug
// matches the category and all of its descendants.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	query := productListQuery{
		Pagination: input.Pagination,
		Filters:    input.Filters,
		IncludeAll: input.IncludeAll,
	}

	if slug := strings.TrimSpace(input.Filters.CategorySlug); slug != "" {
		ids, err := s.categories.SubtreeIDsBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve category")
		}
		query.CategoryIDs = ids
	}

	result, err := s.repo.ListProducts(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return result, nil
}

// GetBySlug returns the active product for storefront detail pages.
func (s *service) GetBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	product, err := s.repo.FindActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

// CreateProduct creates the product with its media in one transaction.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.StockQty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stockQty cannot be negative")
	}

	product := &models.Product{
		NameAr:      input.NameAr,
		NameEn:      input.NameEn,
		Slug:        input.Slug,
		Description: input.Description,
		SKU:         input.SKU,
		Price:       input.Price,
		StockQty:    input.StockQty,
		CategoryID:  input.CategoryID,
		IsActive:    input.IsActive,
		IsFeatured:  input.IsFeatured,
		Tags:        input.Tags,
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateProduct(ctx, product); err != nil {
			return err
		}
		return repo.ReplaceProductMedia(ctx, product.ID, buildMediaRows(product.ID, input.Media))
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.reload(ctx, product.ID)
}

// UpdateProduct applies the provided fields and replaces media when present.
func (s *service) UpdateProduct(ctx context.Context, productID int64, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	applyProductUpdate(product, input)
	if product.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if product.StockQty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stockQty cannot be negative")
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		product.Media = nil
		if _, err := repo.UpdateProduct(ctx, product); err != nil {
			return err
		}
		if input.Media != nil {
			return repo.ReplaceProductMedia(ctx, product.ID, buildMediaRows(product.ID, *input.Media))
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	return s.reload(ctx, product.ID)
}

// DeleteProduct removes the product and its media.
func (s *service) DeleteProduct(ctx context.Context, productID int64) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// AdjustStock applies a signed delta and returns the refreshed product.
func (s *service) AdjustStock(ctx context.Context, productID int64, delta int) (*ProductDTO, error) {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.AdjustStock(ctx, productID, delta); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust stock")
	}
	return s.reload(ctx, productID)
}

func (s *service) reload(ctx context.Context, productID int64) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return NewProductDTO(product), nil
}

func applyProductUpdate(product *models.Product, input UpdateProductInput) {
	if input.NameAr != nil {
		product.NameAr = *input.NameAr
	}
	if input.NameEn != nil {
		product.NameEn = input.NameEn
	}
	if input.Slug != nil {
		product.Slug = *input.Slug
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.SKU != nil {
		product.SKU = input.SKU
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.StockQty != nil {
		product.StockQty = *input.StockQty
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
	}
}

func buildMediaRows(productID int64, inputs []ProductMediaInput) []models.ProductMedia {
	rows := make([]models.ProductMedia, 0, len(inputs))
	for i, m := range inputs {
		kind := m.Kind
		if kind == "" {
			kind = enums.MediaKindImage
		}
		rows = append(rows, models.ProductMedia{
			ProductID: productID,
			URL:       m.URL,
			Kind:      kind,
			IsPrimary: m.IsPrimary,
			SortOrder: i,
		})
	}
	return rows
}
