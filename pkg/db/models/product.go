package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a storefront listing. Prices are whole-dinar decimals; stock is
// the purchasable ceiling the cart captures at add-time.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NameAr      string          `gorm:"column:name_ar;not null" json:"nameAr"`
	NameEn      *string         `gorm:"column:name_en" json:"nameEn,omitempty"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Description *string         `gorm:"column:description" json:"description,omitempty"`
	SKU         *string         `gorm:"column:sku" json:"sku,omitempty"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	StockQty    int             `gorm:"column:stock_qty;not null;default:0" json:"stockQty"`
	CategoryID  *int64          `gorm:"column:category_id" json:"categoryId,omitempty"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true" json:"isActive"`
	IsFeatured  bool            `gorm:"column:is_featured;not null;default:false" json:"isFeatured"`
	Tags        pq.StringArray  `gorm:"column:tags;type:text[]" json:"tags,omitempty"`
	Media       []ProductMedia  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"media"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// PrimaryImageURL returns the display image for cart/listing rows: the entry
// flagged primary, else the first media entry, else empty.
func (p Product) PrimaryImageURL() string {
	for _, m := range p.Media {
		if m.IsPrimary {
			return m.URL
		}
	}
	if len(p.Media) > 0 {
		return p.Media[0].URL
	}
	return ""
}
