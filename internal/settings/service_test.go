package settings

import (
	"context"
	"testing"

	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSettingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS settings`).Error)
	require.NoError(t, db.Exec(`
CREATE TABLE settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME
);`).Error)
	return db
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupSettingsTestDB(t)))
	require.NoError(t, err)
	return svc
}

func TestPublicReturnsAllKnownKeys(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	out, err := svc.Public(ctx)
	require.NoError(t, err)
	assert.Len(t, out, len(knownKeys))
	assert.Empty(t, out[KeyWhatsAppNumber])
}

func TestUpsertRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	out, err := svc.Upsert(ctx, map[string]string{
		KeyStoreNameAr:    "أكوا مارت",
		KeyWhatsAppNumber: "9647701234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "أكوا مارت", out[KeyStoreNameAr])
	assert.Equal(t, "9647701234567", out[KeyWhatsAppNumber])

	value, err := svc.Value(ctx, KeyWhatsAppNumber)
	require.NoError(t, err)
	assert.Equal(t, "9647701234567", value)

	// second write replaces
	out, err = svc.Upsert(ctx, map[string]string{KeyWhatsAppNumber: "9647709999999"})
	require.NoError(t, err)
	assert.Equal(t, "9647709999999", out[KeyWhatsAppNumber])
	assert.Equal(t, "أكوا مارت", out[KeyStoreNameAr])
}

func TestUpsertStoresHeroImage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	out, err := svc.Upsert(ctx, map[string]string{
		KeyHeroImage: "https://res.cloudinary.com/aquamart/hero.webp",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/aquamart/hero.webp", out[KeyHeroImage])

	public, err := svc.Public(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/aquamart/hero.webp", public[KeyHeroImage])
}

func TestValueUnsetKeyIsEmpty(t *testing.T) {
	svc := newTestService(t)

	value, err := svc.Value(context.Background(), KeyAnnouncement)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestUpsertRejectsUnknownKey(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upsert(context.Background(), map[string]string{"secretFlag": "on"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Upsert(context.Background(), map[string]string{})
	require.Error(t, err)
}
