package catalog

import (
	"time"

	"github.com/aquamart/aquamart-backend/pkg/db/models"
	"github.com/aquamart/aquamart-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// ProductSummary is the listing row returned by browse endpoints.
type ProductSummary struct {
	ID         int64           `json:"id"`
	NameAr     string          `json:"nameAr"`
	NameEn     *string         `json:"nameEn,omitempty"`
	Slug       string          `json:"slug"`
	Price      decimal.Decimal `json:"price"`
	StockQty   int             `json:"stockQty"`
	IsFeatured bool            `json:"isFeatured"`
	Image      string          `json:"image"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ProductListResult pairs one page of summaries with the next cursor.
type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// ProductDTO is the full product payload for detail and admin reads.
type ProductDTO struct {
	ID          int64             `json:"id"`
	NameAr      string            `json:"nameAr"`
	NameEn      *string           `json:"nameEn,omitempty"`
	Slug        string            `json:"slug"`
	Description *string           `json:"description,omitempty"`
	SKU         *string           `json:"sku,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	StockQty    int               `json:"stockQty"`
	CategoryID  *int64            `json:"categoryId,omitempty"`
	Category    *CategorySummary  `json:"category,omitempty"`
	IsActive    bool              `json:"isActive"`
	IsFeatured  bool              `json:"isFeatured"`
	Tags        []string          `json:"tags"`
	Media       []ProductMediaDTO `json:"media"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// CategorySummary surfaces the category fields product reads need.
type CategorySummary struct {
	ID     int64   `json:"id"`
	NameAr string  `json:"nameAr"`
	NameEn *string `json:"nameEn,omitempty"`
	Slug   string  `json:"slug"`
}

// ProductMediaDTO captures one ordered media entry.
type ProductMediaDTO struct {
	ID        int64           `json:"id"`
	URL       string          `json:"url"`
	Kind      enums.MediaKind `json:"kind"`
	IsPrimary bool            `json:"isPrimary"`
	SortOrder int             `json:"sortOrder"`
}

func newProductSummary(product models.Product) ProductSummary {
	return ProductSummary{
		ID:         product.ID,
		NameAr:     product.NameAr,
		NameEn:     product.NameEn,
		Slug:       product.Slug,
		Price:      product.Price,
		StockQty:   product.StockQty,
		IsFeatured: product.IsFeatured,
		Image:      product.PrimaryImageURL(),
		CreatedAt:  product.CreatedAt,
	}
}

// NewProductDTO builds the full payload from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:          product.ID,
		NameAr:      product.NameAr,
		NameEn:      product.NameEn,
		Slug:        product.Slug,
		Description: product.Description,
		SKU:         product.SKU,
		Price:       product.Price,
		StockQty:    product.StockQty,
		CategoryID:  product.CategoryID,
		IsActive:    product.IsActive,
		IsFeatured:  product.IsFeatured,
		Tags:        append([]string{}, product.Tags...),
		Media:       make([]ProductMediaDTO, 0, len(product.Media)),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}

	for _, pm := range product.Media {
		dto.Media = append(dto.Media, ProductMediaDTO{
			ID:        pm.ID,
			URL:       pm.URL,
			Kind:      pm.Kind,
			IsPrimary: pm.IsPrimary,
			SortOrder: pm.SortOrder,
		})
	}

	if product.Category != nil {
		dto.Category = &CategorySummary{
			ID:     product.Category.ID,
			NameAr: product.Category.NameAr,
			NameEn: product.Category.NameEn,
			Slug:   product.Category.Slug,
		}
	}

	return dto
}
