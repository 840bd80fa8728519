package models

import "time"

// Category is one node of the storefront category tree.
type Category struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NameAr    string     `gorm:"column:name_ar;not null" json:"nameAr"`
	NameEn    *string    `gorm:"column:name_en" json:"nameEn,omitempty"`
	Slug      string     `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	ParentID  *int64     `gorm:"column:parent_id" json:"parentId,omitempty"`
	ImageURL  *string    `gorm:"column:image_url" json:"imageUrl,omitempty"`
	SortOrder int        `gorm:"column:sort_order;not null;default:0" json:"sortOrder"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true" json:"isActive"`
	Children  []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
