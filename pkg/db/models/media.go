package models

import (
	"time"

	"github.com/aquamart/aquamart-backend/pkg/enums"
	"github.com/google/uuid"
)

// Media is an uploaded asset stored in Cloudinary.
type Media struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	URL       string          `gorm:"column:url;not null" json:"url"`
	PublicID  string          `gorm:"column:public_id;not null;uniqueIndex" json:"publicId"`
	Kind      enums.MediaKind `gorm:"column:kind;not null;default:'IMAGE'" json:"kind"`
	MimeType  string          `gorm:"column:mime_type;not null" json:"mimeType"`
	SizeBytes int64           `gorm:"column:size_bytes;not null;default:0" json:"sizeBytes"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
