package models

import "time"

type MenuCategory struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string     `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	SortOrder   int        `gorm:"not null;default:0" json:"sort_order"`
	MenuItems   []MenuItem `gorm:"foreignKey:CategoryID" json:"menu_items,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
