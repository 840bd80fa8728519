package categories

import (
	"context"
	"testing"

	"github.com/aquamart/aquamart-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCategoriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS categories`).Error)
	require.NoError(t, db.Exec(`
CREATE TABLE categories (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name_ar TEXT NOT NULL,
  name_en TEXT,
  slug TEXT NOT NULL UNIQUE,
  parent_id INTEGER,
  image_url TEXT,
  sort_order INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return db
}

func mustCreateCategory(t *testing.T, db *gorm.DB, slug string, parentID *int64, active bool) *models.Category {
	t.Helper()

	category := &models.Category{
		NameAr:   "فئة " + slug,
		Slug:     slug,
		ParentID: parentID,
		IsActive: active,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func TestRepositoryListAllActiveFilter(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mustCreateCategory(t, db, "fish", nil, true)
	mustCreateCategory(t, db, "retired", nil, false)

	active, err := repo.ListAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "fish", active[0].Slug)

	all, err := repo.ListAll(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepositorySubtreeIDsBySlug(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	fish := mustCreateCategory(t, db, "fish", nil, true)
	tropical := mustCreateCategory(t, db, "tropical", &fish.ID, true)
	guppy := mustCreateCategory(t, db, "guppy", &tropical.ID, true)
	mustCreateCategory(t, db, "plants", nil, true)

	ids, err := repo.SubtreeIDsBySlug(ctx, "fish")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{fish.ID, tropical.ID, guppy.ID}, ids)

	leaf, err := repo.SubtreeIDsBySlug(ctx, "guppy")
	require.NoError(t, err)
	assert.Equal(t, []int64{guppy.ID}, leaf)

	_, err = repo.SubtreeIDsBySlug(ctx, "no-such")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryCountChildren(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	fish := mustCreateCategory(t, db, "fish", nil, true)
	mustCreateCategory(t, db, "tropical", &fish.ID, true)
	mustCreateCategory(t, db, "goldfish", &fish.ID, true)

	count, err := repo.CountChildren(ctx, fish.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountChildren(ctx, 999)
	require.NoError(t, err)
	assert.Zero(t, count)
}
