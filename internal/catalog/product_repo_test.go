package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aquamart/aquamart-backend/pkg/db/models"
	"github.com/aquamart/aquamart-backend/pkg/enums"
	"github.com/aquamart/aquamart-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestProduct(t *testing.T, db *gorm.DB, slug string, price string, stock int, active bool, created time.Time) *models.Product {
	t.Helper()

	product := &models.Product{
		NameAr:    fmt.Sprintf("منتج %s", slug),
		Slug:      slug,
		Price:     decimal.RequireFromString(price),
		StockQty:  stock,
		IsActive:  active,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryListProducts_pagination(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	createTestProduct(t, db, "older", "1000", 5, true, now.Add(-time.Hour))
	newer := createTestProduct(t, db, "newer", "500", 3, true, now)

	first, err := repo.ListProducts(context.Background(), productListQuery{
		Pagination: pagination.Params{Limit: 1},
	})
	require.NoError(t, err)
	require.Len(t, first.Products, 1)
	assert.Equal(t, newer.ID, first.Products[0].ID)
	assert.NotEmpty(t, first.NextCursor)

	second, err := repo.ListProducts(context.Background(), productListQuery{
		Pagination: pagination.Params{Limit: 1, Cursor: first.NextCursor},
	})
	require.NoError(t, err)
	require.Len(t, second.Products, 1)
	assert.Equal(t, "older", second.Products[0].Slug)
	assert.Empty(t, second.NextCursor)
}

func TestRepositoryListProducts_filters(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	active := createTestProduct(t, db, "guppy", "1000", 5, true, now)
	hidden := createTestProduct(t, db, "hidden", "1000", 5, false, now.Add(-time.Minute))
	createTestProduct(t, db, "sold-out", "1000", 0, true, now.Add(-2*time.Minute))

	featured := createTestProduct(t, db, "betta", "2000", 2, true, now.Add(-3*time.Minute))
	featured.IsFeatured = true
	require.NoError(t, db.Save(featured).Error)

	list, err := repo.ListProducts(context.Background(), productListQuery{
		Pagination: pagination.Params{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, list.Products, 3)
	for _, row := range list.Products {
		assert.NotEqual(t, hidden.ID, row.ID)
	}

	all, err := repo.ListProducts(context.Background(), productListQuery{
		Pagination: pagination.Params{Limit: 10},
		IncludeAll: true,
	})
	require.NoError(t, err)
	assert.Len(t, all.Products, 4)

	truthy := true
	featuredOnly, err := repo.ListProducts(context.Background(), productListQuery{
		Pagination: pagination.Params{Limit: 10},
		Filters:    ProductListFilters{Featured: &truthy},
	})
	require.NoError(t, err)
	require.Len(t, featuredOnly.Products, 1)
	assert.Equal(t, "betta", featuredOnly.Products[0].Slug)

	inStock, err := repo.ListProducts(context.Background(), productListQuery{
		Pagination: pagination.Params{Limit: 10},
		Filters:    ProductListFilters{InStock: &truthy},
	})
	require.NoError(t, err)
	assert.Len(t, inStock.Products, 2)

	search, err := repo.ListProducts(context.Background(), productListQuery{
		Pagination: pagination.Params{Limit: 10},
		Filters:    ProductListFilters{Query: "gup"},
	})
	require.NoError(t, err)
	require.Len(t, search.Products, 1)
	assert.Equal(t, active.ID, search.Products[0].ID)
}

func TestRepositoryListProducts_categoryScope(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	fish := createTestProduct(t, db, "fish-item", "1000", 5, true, now)
	catID := int64(7)
	fish.CategoryID = &catID
	require.NoError(t, db.Save(fish).Error)
	createTestProduct(t, db, "plant-item", "500", 5, true, now.Add(-time.Minute))

	scoped, err := repo.ListProducts(context.Background(), productListQuery{
		Pagination:  pagination.Params{Limit: 10},
		CategoryIDs: []int64{7, 8},
	})
	require.NoError(t, err)
	require.Len(t, scoped.Products, 1)
	assert.Equal(t, "fish-item", scoped.Products[0].Slug)
}

func TestRepositoryFindActiveBySlug(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	product := createTestProduct(t, db, "guppy", "1000", 5, true, now)
	require.NoError(t, db.Create(&models.ProductMedia{
		ProductID: product.ID,
		URL:       "https://cdn.example/guppy.jpg",
		Kind:      enums.MediaKindImage,
		IsPrimary: true,
	}).Error)
	createTestProduct(t, db, "hidden", "1000", 5, false, now)

	found, err := repo.FindActiveBySlug(context.Background(), "guppy")
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
	require.Len(t, found.Media, 1)
	assert.Equal(t, "https://cdn.example/guppy.jpg", found.Media[0].URL)

	_, err = repo.FindActiveBySlug(context.Background(), "hidden")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryStockMutations(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "guppy", "1000", 5, true, time.Now().UTC())

	affected, err := repo.DecrementStock(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// not enough stock left; the guarded update touches no rows
	affected, err = repo.DecrementStock(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	require.NoError(t, repo.AdjustStock(ctx, product.ID, -10))
	reloaded, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.StockQty)

	require.NoError(t, repo.AdjustStock(ctx, product.ID, 4))
	reloaded, err = repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.StockQty)
}

func TestRepositoryReplaceProductMedia(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "guppy", "1000", 5, true, time.Now().UTC())

	require.NoError(t, repo.ReplaceProductMedia(ctx, product.ID, []models.ProductMedia{
		{ProductID: product.ID, URL: "https://cdn.example/a.jpg", Kind: enums.MediaKindImage, SortOrder: 0},
		{ProductID: product.ID, URL: "https://cdn.example/b.jpg", Kind: enums.MediaKindImage, IsPrimary: true, SortOrder: 1},
	}))

	require.NoError(t, repo.ReplaceProductMedia(ctx, product.ID, []models.ProductMedia{
		{ProductID: product.ID, URL: "https://cdn.example/c.mp4", Kind: enums.MediaKindVideo, SortOrder: 0},
	}))

	reloaded, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Media, 1)
	assert.Equal(t, enums.MediaKindVideo, reloaded.Media[0].Kind)
}
