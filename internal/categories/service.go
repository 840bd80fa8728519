package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/aquamart/aquamart-backend/pkg/db"
	"github.com/aquamart/aquamart-backend/pkg/db/models"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes the storefront tree and admin category management.
type Service interface {
	Tree(ctx context.Context) ([]Node, error)
	Flat(ctx context.Context) ([]FlatNode, error)
	Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	Update(ctx context.Context, categoryID int64, input UpdateCategoryInput) (*models.Category, error)
	Delete(ctx context.Context, categoryID int64) error
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	NameAr    string
	NameEn    *string
	Slug      string
	ParentID  *int64
	ImageURL  *string
	SortOrder int
	IsActive  bool
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	NameAr    *string
	NameEn    *string
	Slug      *string
	ParentID  *int64
	ImageURL  *string
	SortOrder *int
	IsActive  *bool
}

type productCounter interface {
	CountByCategoryIDs(ctx context.Context, categoryIDs []int64) (int64, error)
}

type service struct {
	repo     *Repository
	products productCounter
}

// NewService constructs a category service instance.
func NewService(repo *Repository, products productCounter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product counter required")
	}
	return &service{repo: repo, products: products}, nil
}

// Tree returns the active category tree for the storefront.
func (s *service) Tree(ctx context.Context) ([]Node, error) {
	rows, err := s.repo.ListAll(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return BuildTree(rows), nil
}

// Flat returns every category depth-prefixed for admin selects.
func (s *service) Flat(ctx context.Context) ([]FlatNode, error) {
	rows, err := s.repo.ListAll(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return Flatten(BuildTree(rows)), nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	if input.ParentID != nil {
		if err := s.ensureExists(ctx, *input.ParentID, "parent category not found"); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		NameAr:    input.NameAr,
		NameEn:    input.NameEn,
		Slug:      input.Slug,
		ParentID:  input.ParentID,
		ImageURL:  input.ImageURL,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
	}
	if _, err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return category, nil
}

func (s *service) Update(ctx context.Context, categoryID int64, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	if input.ParentID != nil {
		if *input.ParentID == categoryID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be its own parent")
		}
		if err := s.ensureExists(ctx, *input.ParentID, "parent category not found"); err != nil {
			return nil, err
		}
		category.ParentID = input.ParentID
	}
	if input.NameAr != nil {
		category.NameAr = *input.NameAr
	}
	if input.NameEn != nil {
		category.NameEn = input.NameEn
	}
	if input.Slug != nil {
		category.Slug = *input.Slug
	}
	if input.ImageURL != nil {
		category.ImageURL = input.ImageURL
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if _, err := s.repo.Update(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return category, nil
}

// Delete removes an empty leaf category. Categories that still hold children
// or products stay put until the admin moves them.
func (s *service) Delete(ctx context.Context, categoryID int64) error {
	if err := s.ensureExists(ctx, categoryID, "category not found"); err != nil {
		return err
	}

	childCount, err := s.repo.CountChildren(ctx, categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count child categories")
	}
	if childCount > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category still has child categories")
	}

	productCount, err := s.products.CountByCategoryIDs(ctx, []int64{categoryID})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category products")
	}
	if productCount > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category still has products")
	}

	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) ensureExists(ctx context.Context, categoryID int64, notFoundMsg string) error {
	if _, err := s.repo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return nil
}
