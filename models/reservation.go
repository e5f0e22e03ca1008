package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationSeated    ReservationStatus = "SEATED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// ActiveReservationStatuses are the statuses that hold a table: these are the
// ones the 2-hour conflict window is checked against.
var ActiveReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
	ReservationSeated,
}

// reservationTransitions lists the allowed (from, to) pairs. PENDING may jump
// straight to SEATED or COMPLETED (walk-ins confirmed at the door); backward
// moves are rejected. COMPLETED and CANCELLED have no outgoing edges.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationSeated, ReservationCompleted, ReservationCancelled},
	ReservationConfirmed: {ReservationSeated, ReservationCompleted, ReservationCancelled},
	ReservationSeated:    {ReservationCompleted, ReservationCancelled},
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationSeated,
		ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

func (s ReservationStatus) Terminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled
}

// CanTransitionTo reports whether the status may move to next.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	UserID       uint              `gorm:"not null;index" json:"user_id"`
	User         User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TableID      uint              `gorm:"not null;index" json:"table_id"`
	Table        Table             `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Date         time.Time         `gorm:"not null" json:"date"`
	Time         time.Time         `gorm:"not null;index" json:"time"`
	PartySize    int               `gorm:"not null" json:"party_size"`
	Status       ReservationStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	SpecialNotes string            `gorm:"type:text" json:"special_notes,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
