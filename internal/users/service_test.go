package users

import (
	"context"
	"testing"
	"time"

	"github.com/aquamart/aquamart-backend/pkg/config"
	"github.com/aquamart/aquamart-backend/pkg/db/models"
	"github.com/aquamart/aquamart-backend/pkg/enums"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"github.com/aquamart/aquamart-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Lightweight parameters keep the argon2 work factor out of test runtime.
var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS users`).Error)
	require.NoError(t, db.Exec(`
CREATE TABLE users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'EDITOR',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return db
}

func newTestUsersService(t *testing.T) (Service, *Repository, *gorm.DB) {
	t.Helper()
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, testPasswordCfg)
	require.NoError(t, err)
	return svc, repo, db
}

func mustCreateUser(t *testing.T, db *gorm.DB, email string, role enums.UserRole, active bool) *models.User {
	t.Helper()
	hash, err := security.HashPassword("correct-horse", testPasswordCfg)
	require.NoError(t, err)
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "مدير المتجر",
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreateHashesPasswordAndNormalizesEmail(t *testing.T) {
	svc, repo, _ := newTestUsersService(t)

	created, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "  Admin@Example.COM ",
		Name:     "مدير المتجر",
		Password: "super-secret",
		Role:     "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", created.Email)
	assert.Equal(t, enums.UserRoleAdmin, created.Role)
	assert.True(t, created.IsActive)

	stored, err := repo.FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "super-secret", stored.PasswordHash)

	ok, err := security.VerifyPassword("super-secret", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc, _, db := newTestUsersService(t)
	mustCreateUser(t, db, "admin@example.com", enums.UserRoleAdmin, true)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "admin@example.com",
		Name:     "محرر",
		Password: "super-secret",
		Role:     "EDITOR",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCreateRejectsUnknownRoleAndShortPassword(t *testing.T) {
	svc, _, _ := newTestUsersService(t)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Email: "x@example.com", Name: "محرر", Password: "super-secret", Role: "OWNER",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Create(context.Background(), CreateUserInput{
		Email: "x@example.com", Name: "محرر", Password: "short", Role: "EDITOR",
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListOrdersByCreation(t *testing.T) {
	svc, _, db := newTestUsersService(t)
	first := mustCreateUser(t, db, "first@example.com", enums.UserRoleAdmin, true)
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Save(first).Error)
	mustCreateUser(t, db, "second@example.com", enums.UserRoleEditor, true)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first@example.com", list[0].Email)
	assert.Equal(t, "second@example.com", list[1].Email)
}

func TestUpdateChangesRoleAndPassword(t *testing.T) {
	svc, repo, db := newTestUsersService(t)
	mustCreateUser(t, db, "admin@example.com", enums.UserRoleAdmin, true)
	editor := mustCreateUser(t, db, "editor@example.com", enums.UserRoleEditor, true)

	role := "ADMIN"
	password := "new-password"
	updated, err := svc.Update(context.Background(), editor.ID, UpdateUserInput{
		Role:     &role,
		Password: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, updated.Role)

	stored, err := repo.FindByID(context.Background(), editor.ID)
	require.NoError(t, err)
	ok, err := security.VerifyPassword("new-password", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateRefusesToDemoteLastAdmin(t *testing.T) {
	svc, _, db := newTestUsersService(t)
	admin := mustCreateUser(t, db, "admin@example.com", enums.UserRoleAdmin, true)

	role := "EDITOR"
	_, err := svc.Update(context.Background(), admin.ID, UpdateUserInput{Role: &role})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	inactive := false
	_, err = svc.Update(context.Background(), admin.ID, UpdateUserInput{IsActive: &inactive})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestUpdateAllowsDemotionWhenAnotherAdminRemains(t *testing.T) {
	svc, _, db := newTestUsersService(t)
	mustCreateUser(t, db, "admin@example.com", enums.UserRoleAdmin, true)
	second := mustCreateUser(t, db, "second@example.com", enums.UserRoleAdmin, true)

	role := "EDITOR"
	updated, err := svc.Update(context.Background(), second.ID, UpdateUserInput{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleEditor, updated.Role)
}

func TestDeleteRefusesLastAdmin(t *testing.T) {
	svc, _, db := newTestUsersService(t)
	admin := mustCreateUser(t, db, "admin@example.com", enums.UserRoleAdmin, true)

	err := svc.Delete(context.Background(), admin.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestDeleteRemovesEditor(t *testing.T) {
	svc, repo, db := newTestUsersService(t)
	mustCreateUser(t, db, "admin@example.com", enums.UserRoleAdmin, true)
	editor := mustCreateUser(t, db, "editor@example.com", enums.UserRoleEditor, true)

	require.NoError(t, svc.Delete(context.Background(), editor.ID))

	_, err := repo.FindByID(context.Background(), editor.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateUnknownUserNotFound(t *testing.T) {
	svc, _, _ := newTestUsersService(t)

	name := "اسم جديد"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateUserInput{Name: &name})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
