package models

import "time"

type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Date        time.Time      `gorm:"not null;index" json:"date"`
	Capacity    int            `gorm:"not null" json:"capacity"`
	Price       *float64       `gorm:"type:decimal(10,2)" json:"price,omitempty"`
	Available   bool           `gorm:"not null;default:true" json:"available"`
	Bookings    []EventBooking `gorm:"foreignKey:EventID" json:"bookings,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
