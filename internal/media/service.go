package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aquamart/aquamart-backend/pkg/db/models"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errUnsupportedType = errors.New("unsupported content type")

// Uploader is the slice of the Cloudinary client the service needs.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, publicID string) (url string, err error)
	Destroy(ctx context.Context, publicID string) error
}

// UploadInput carries one incoming file.
type UploadInput struct {
	FileName  string
	SizeBytes int64
	Body      io.Reader
}

// Service stores uploaded assets in Cloudinary and tracks them in the DB.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*models.Media, error)
	List(ctx context.Context, limit int) ([]models.Media, error)
	Delete(ctx context.Context, mediaID uuid.UUID) error
}

type service struct {
	repo           *Repository
	uploader       Uploader
	maxUploadBytes int64
	now            func() time.Time
}

// NewService constructs a media service instance.
func NewService(repo *Repository, uploader Uploader, maxUploadMB int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("media repository required")
	}
	if uploader == nil {
		return nil, fmt.Errorf("uploader required")
	}
	if maxUploadMB <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &service{
		repo:           repo,
		uploader:       uploader,
		maxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
		now:            time.Now,
	}, nil
}

// Upload sniffs the content type, pushes the stream to Cloudinary, and
// records the asset.
func (s *service) Upload(ctx context.Context, input UploadInput) (*models.Media, error) {
	if input.Body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file body required")
	}
	if input.SizeBytes > s.maxUploadBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %d MB upload limit", s.maxUploadBytes/(1024*1024)))
	}

	kind, mimeType, body, err := sniffKind(input.Body)
	if err != nil {
		if errors.Is(err, errUnsupportedType) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("unsupported content type %s", mimeType))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read upload")
	}

	// the size header lies sometimes; cap the stream itself too
	body = io.LimitReader(body, s.maxUploadBytes+1)

	publicID := fmt.Sprintf("media_%d", s.now().UnixNano())
	url, err := s.uploader.Upload(ctx, body, publicID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cloudinary upload")
	}

	row := &models.Media{
		ID:        uuid.New(),
		URL:       url,
		PublicID:  publicID,
		Kind:      kind,
		MimeType:  mimeType,
		SizeBytes: input.SizeBytes,
	}
	if _, err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save media record")
	}
	return row, nil
}

func (s *service) List(ctx context.Context, limit int) ([]models.Media, error) {
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media")
	}
	return rows, nil
}

// Delete removes the asset from Cloudinary first, then the record. A missing
// remote asset still clears the row.
func (s *service) Delete(ctx context.Context, mediaID uuid.UUID) error {
	row, err := s.repo.FindByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}

	if err := s.uploader.Destroy(ctx, row.PublicID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cloudinary destroy")
	}
	if err := s.repo.Delete(ctx, mediaID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete media record")
	}
	return nil
}
