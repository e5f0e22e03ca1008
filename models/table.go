package models

import "time"

// Table is a physical table in the dining room. Rows referenced by
// reservations are never deleted (FK restrict); taking a table out of
// service is done by flipping Available.
type Table struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Number       int           `gorm:"uniqueIndex;not null" json:"number"`
	Capacity     int           `gorm:"not null" json:"capacity"`
	Location     *string       `gorm:"type:varchar(100)" json:"location,omitempty"`
	Available    bool          `gorm:"not null;default:true" json:"available"`
	Reservations []Reservation `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"reservations,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
