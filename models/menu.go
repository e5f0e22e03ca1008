package models

import "time"

type MenuItem struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Name            string       `gorm:"type:varchar(255);not null" json:"name"`
	Description     string       `gorm:"type:text" json:"description,omitempty"`
	Price           float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL        string       `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	CategoryID      uint         `gorm:"not null;index" json:"category_id"`
	Category        MenuCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	PreparationTime int          `gorm:"default:0" json:"preparation_time,omitempty"` // minutes
	Available       bool         `gorm:"not null;default:true" json:"available"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
