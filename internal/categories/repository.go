package categories

import (
	"context"

	"github.com/aquamart/aquamart-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together category persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAll returns every category ordered for tree assembly.
func (r *Repository) ListAll(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	qb := r.db.WithContext(ctx).Model(&models.Category{})
	if activeOnly {
		qb = qb.Where("is_active = ?", true)
	}
	var rows []models.Category
	err := qb.Order("sort_order ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

// FindByID loads one category row.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindBySlug loads one category row by its slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Update saves an existing category row.
func (r *Repository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category row by ID.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

// CountChildren returns how many categories point at id as their parent.
func (r *Repository) CountChildren(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("parent_id = ?", id).
		Count(&count).
		Error
	return count, err
}

// SubtreeIDsBySlug resolves a slug to the category and all of its descendants.
// The whole tree fits one query, so the walk happens in memory.
func (r *Repository) SubtreeIDsBySlug(ctx context.Context, slug string) ([]int64, error) {
	root, err := r.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	all, err := r.ListAll(ctx, false)
	if err != nil {
		return nil, err
	}

	children := make(map[int64][]int64, len(all))
	for _, c := range all {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	ids := []int64{root.ID}
	queue := []int64{root.ID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			ids = append(ids, child)
			queue = append(queue, child)
		}
	}
	return ids, nil
}
