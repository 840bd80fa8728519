package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/aquamart/aquamart-backend/pkg/db/models"
	"github.com/aquamart/aquamart-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository wires together product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product with its media, without the active filter.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindActiveByID loads an active product with its media. Cart adds and
// checkout revalidation go through here so hidden products never sell.
func (r *Repository) FindActiveByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&product, "id = ? AND is_active = ?", id, true).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindActiveBySlug loads an active product with media and category.
func (r *Repository) FindActiveBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Category").
		First(&product, "slug = ? AND is_active = ?", slug, true).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct saves an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID. Media rows cascade.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// AdjustStock applies a signed delta to the product's stock, clamping at zero.
func (r *Repository) AdjustStock(ctx context.Context, id int64, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("stock_qty", gorm.Expr("CASE WHEN stock_qty + ? < 0 THEN 0 ELSE stock_qty + ? END", delta, delta)).
		Error
}

// DecrementStock subtracts qty from stock only when enough remains. Returns
// gorm.ErrRecordNotFound semantics via RowsAffected: the caller checks the
// returned count to detect a concurrent sell-out.
func (r *Repository) DecrementStock(ctx context.Context, id int64, qty int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock_qty >= ?", id, qty).
		Update("stock_qty", gorm.Expr("stock_qty - ?", qty))
	return result.RowsAffected, result.Error
}

// ReplaceProductMedia replaces the product's media rows.
func (r *Repository) ReplaceProductMedia(ctx context.Context, productID int64, media []models.ProductMedia) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductMedia{}).Error; err != nil {
		return err
	}
	if len(media) == 0 {
		return nil
	}
	return tx.Create(&media).Error
}

// CountByCategoryIDs returns how many products sit in any of the categories.
func (r *Repository) CountByCategoryIDs(ctx context.Context, categoryIDs []int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_id IN ?", categoryIDs).
		Count(&count).
		Error
	return count, err
}

type productListQuery struct {
	Pagination  pagination.Params
	Filters     ProductListFilters
	CategoryIDs []int64
	IncludeAll  bool
}

// ListProducts pages products newest-first with keyset pagination.
func (r *Repository) ListProducts(ctx context.Context, query productListQuery) (*ProductListResult, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Pagination.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		})

	if !query.IncludeAll {
		qb = qb.Where("is_active = ?", true)
	}
	if len(query.CategoryIDs) > 0 {
		qb = qb.Where("category_id IN ?", query.CategoryIDs)
	}

	filter := query.Filters
	if filter.Featured != nil {
		qb = qb.Where("is_featured = ?", *filter.Featured)
	}
	if filter.InStock != nil {
		if *filter.InStock {
			qb = qb.Where("stock_qty > 0")
		} else {
			qb = qb.Where("stock_qty <= 0")
		}
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where(
			"(LOWER(name_ar) LIKE ? OR LOWER(COALESCE(name_en, '')) LIKE ? OR LOWER(slug) LIKE ?)",
			pattern, pattern, pattern,
		)
	}

	if cursor != nil {
		cursorID, err := strconv.ParseInt(cursor.ID, 10, 64)
		if err != nil {
			return nil, err
		}
		qb = qb.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursorID,
		)
	}

	var rows []models.Product
	err = qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        strconv.FormatInt(last.ID, 10),
		})
	}

	summaries := make([]ProductSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, newProductSummary(row))
	}

	return &ProductListResult{
		Products:   summaries,
		NextCursor: nextCursor,
	}, nil
}
