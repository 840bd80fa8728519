package catalog

import (
	"context"
	"testing"

	"github.com/aquamart/aquamart-backend/pkg/db/models"
	"github.com/aquamart/aquamart-backend/pkg/enums"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeCategoryResolver struct {
	subtrees map[string][]int64
}

func (f *fakeCategoryResolver) SubtreeIDsBySlug(_ context.Context, slug string) ([]int64, error) {
	ids, ok := f.subtrees[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ids, nil
}

func TestListProductsUnknownCategorySlug(t *testing.T) {
	svc := &service{categories: &fakeCategoryResolver{subtrees: map[string][]int64{}}}

	_, err := svc.ListProducts(context.Background(), ListProductsInput{
		Filters: ProductListFilters{CategorySlug: "no-such"},
	})
	if err == nil {
		t.Fatal("expected error for unknown category slug")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found code, got %v", err)
	}
}

func TestApplyProductUpdate(t *testing.T) {
	price := decimal.RequireFromString("1500")
	stock := 9
	active := false
	tags := []string{"freshwater", "beginner"}

	product := &models.Product{
		NameAr:   "قديم",
		Slug:     "old-slug",
		Price:    decimal.RequireFromString("1000"),
		StockQty: 3,
		IsActive: true,
	}

	applyProductUpdate(product, UpdateProductInput{
		NameAr:   strPtr("جديد"),
		Slug:     strPtr("new-slug"),
		Price:    &price,
		StockQty: &stock,
		IsActive: &active,
		Tags:     &tags,
	})

	if product.NameAr != "جديد" || product.Slug != "new-slug" {
		t.Fatalf("expected updated names, got %q %q", product.NameAr, product.Slug)
	}
	if !product.Price.Equal(price) || product.StockQty != 9 {
		t.Fatalf("expected updated price and stock, got %s %d", product.Price, product.StockQty)
	}
	if product.IsActive {
		t.Fatal("expected product deactivated")
	}
	if len(product.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", product.Tags)
	}
}

func TestApplyProductUpdateLeavesUnsetFields(t *testing.T) {
	product := &models.Product{
		NameAr:   "ثابت",
		Slug:     "stable",
		Price:    decimal.RequireFromString("1000"),
		StockQty: 3,
	}

	applyProductUpdate(product, UpdateProductInput{})

	if product.NameAr != "ثابت" || product.Slug != "stable" || product.StockQty != 3 {
		t.Fatalf("expected untouched product, got %+v", product)
	}
}

func TestBuildMediaRows(t *testing.T) {
	rows := buildMediaRows(7, []ProductMediaInput{
		{URL: "https://cdn.example/a.jpg", IsPrimary: true},
		{URL: "https://youtu.be/xyz", Kind: enums.MediaKindYouTube},
	})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Kind != enums.MediaKindImage {
		t.Fatalf("expected image default kind, got %s", rows[0].Kind)
	}
	if rows[1].Kind != enums.MediaKindYouTube {
		t.Fatalf("expected youtube kind, got %s", rows[1].Kind)
	}
	if rows[0].SortOrder != 0 || rows[1].SortOrder != 1 {
		t.Fatalf("expected positional sort order, got %d %d", rows[0].SortOrder, rows[1].SortOrder)
	}
	if rows[0].ProductID != 7 || !rows[0].IsPrimary {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
}

func strPtr(value string) *string {
	return &value
}
