package categories

import (
	"context"
	"testing"

	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductCounter struct {
	counts map[int64]int64
}

func (f *fakeProductCounter) CountByCategoryIDs(_ context.Context, categoryIDs []int64) (int64, error) {
	var total int64
	for _, id := range categoryIDs {
		total += f.counts[id]
	}
	return total, nil
}

func TestServiceDeleteConflicts(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	fish := mustCreateCategory(t, db, "fish", nil, true)
	tropical := mustCreateCategory(t, db, "tropical", &fish.ID, true)
	plants := mustCreateCategory(t, db, "plants", nil, true)

	counter := &fakeProductCounter{counts: map[int64]int64{tropical.ID: 3}}
	svc, err := NewService(repo, counter)
	require.NoError(t, err)

	err = svc.Delete(ctx, fish.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	err = svc.Delete(ctx, tropical.ID)
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	require.NoError(t, svc.Delete(ctx, plants.ID))

	err = svc.Delete(ctx, plants.ID)
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceCreateSlugConflict(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mustCreateCategory(t, db, "fish", nil, true)

	svc, err := NewService(repo, &fakeProductCounter{counts: map[int64]int64{}})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCategoryInput{NameAr: "أسماك", Slug: "fish", IsActive: true})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestServiceUpdateGuards(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	fish := mustCreateCategory(t, db, "fish", nil, true)

	svc, err := NewService(repo, &fakeProductCounter{counts: map[int64]int64{}})
	require.NoError(t, err)

	_, err = svc.Update(ctx, fish.ID, UpdateCategoryInput{ParentID: &fish.ID})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	missingParent := int64(999)
	_, err = svc.Update(ctx, fish.ID, UpdateCategoryInput{ParentID: &missingParent})
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
