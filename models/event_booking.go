package models

import "time"

type EventBookingStatus string

const (
	EventBookingPending   EventBookingStatus = "PENDING"
	EventBookingConfirmed EventBookingStatus = "CONFIRMED"
	EventBookingCancelled EventBookingStatus = "CANCELLED"
)

// ActiveEventBookingStatuses count against an event's capacity.
var ActiveEventBookingStatuses = []EventBookingStatus{
	EventBookingPending,
	EventBookingConfirmed,
}

type EventBooking struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	EventID      uint               `gorm:"not null;index" json:"event_id"`
	Event        Event              `gorm:"foreignKey:EventID" json:"event,omitempty"`
	UserID       uint               `gorm:"not null;index" json:"user_id"`
	User         User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PartySize    int                `gorm:"not null" json:"party_size"`
	TotalAmount  *float64           `gorm:"type:decimal(10,2)" json:"total_amount,omitempty"`
	Status       EventBookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	SpecialNotes string             `gorm:"type:text" json:"special_notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
