package models

import (
	"time"

	"github.com/aquamart/aquamart-backend/pkg/enums"
)

// ProductMedia links an uploaded asset (or YouTube reference) to a product.
type ProductMedia struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID int64           `gorm:"column:product_id;not null;index" json:"productId"`
	URL       string          `gorm:"column:url;not null" json:"url"`
	Kind      enums.MediaKind `gorm:"column:kind;not null;default:'IMAGE'" json:"kind"`
	IsPrimary bool            `gorm:"column:is_primary;not null;default:false" json:"isPrimary"`
	SortOrder int             `gorm:"column:sort_order;not null;default:0" json:"sortOrder"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
