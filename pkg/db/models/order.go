package models

import (
	"time"

	"github.com/aquamart/aquamart-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a submitted checkout. Customer contact fields arrive with the
// checkout payload; line prices are snapshotted from the catalog at submit
// time, never trusted from the client.
type Order struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Number       string            `gorm:"column:number;not null;uniqueIndex" json:"number"`
	CustomerName string            `gorm:"column:customer_name;not null" json:"customerName"`
	Phone        string            `gorm:"column:phone;not null" json:"phone"`
	Address      string            `gorm:"column:address;not null" json:"address"`
	Note         *string           `gorm:"column:note" json:"note,omitempty"`
	Status       enums.OrderStatus `gorm:"column:status;not null;default:'PENDING'" json:"status"`
	Total        decimal.Decimal   `gorm:"column:total;type:numeric(14,2);not null" json:"total"`
	Items        []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// OrderItem is one product line of an order.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"orderId"`
	ProductID int64           `gorm:"column:product_id;not null" json:"productId"`
	NameAr    string          `gorm:"column:name_ar;not null" json:"nameAr"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unitPrice"`
	Qty       int             `gorm:"column:qty;not null" json:"qty"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
