package settings

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"gorm.io/gorm"
)

// Keys the storefront and back office understand.
const (
	KeyStoreNameAr    = "storeNameAr"
	KeyStoreNameEn    = "storeNameEn"
	KeyWhatsAppNumber = "whatsappNumber"
	KeyCurrency       = "currency"
	KeyAnnouncement   = "announcement"
	KeyInstagramURL   = "instagramUrl"
	// KeyHeroImage holds the storefront hero banner URL managed from the
	// back office.
	KeyHeroImage = "hero_image"
)

var knownKeys = []string{
	KeyStoreNameAr,
	KeyStoreNameEn,
	KeyWhatsAppNumber,
	KeyCurrency,
	KeyAnnouncement,
	KeyInstagramURL,
	KeyHeroImage,
}

// Service exposes site settings to the storefront and the back office.
type Service interface {
	// Public returns every known key with its stored value, "" when unset.
	Public(ctx context.Context) (map[string]string, error)
	// Value returns one stored value, "" when unset.
	Value(ctx context.Context, key string) (string, error)
	Upsert(ctx context.Context, values map[string]string) (map[string]string, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a settings service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Public(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list settings")
	}

	stored := make(map[string]string, len(rows))
	for _, row := range rows {
		stored[row.Key] = row.Value
	}

	out := make(map[string]string, len(knownKeys))
	for _, key := range knownKeys {
		out[key] = stored[key]
	}
	return out, nil
}

func (s *service) Value(ctx context.Context, key string) (string, error) {
	row, err := s.repo.Find(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load setting")
	}
	return row.Value, nil
}

// Upsert validates and writes the provided keys, then returns the full map.
func (s *service) Upsert(ctx context.Context, values map[string]string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no settings provided")
	}
	for key := range values {
		if !isKnownKey(key) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown setting %q", key))
		}
	}

	for key, value := range values {
		if err := s.repo.Upsert(ctx, key, value); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save setting")
		}
	}
	return s.Public(ctx)
}

func isKnownKey(key string) bool {
	for _, candidate := range knownKeys {
		if candidate == key {
			return true
		}
	}
	return false
}
