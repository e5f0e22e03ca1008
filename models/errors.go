package models

import "errors"

// Validation failures (bad or out-of-range input).
var (
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidPartySize  = errors.New("invalid party size")
	ErrPastReservation   = errors.New("cannot make reservations for past dates")
	ErrInvalidCapacity   = errors.New("table capacity must be at least 1")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

// Missing references.
var (
	ErrTableNotFound       = errors.New("table not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrOrderNotFound       = errors.New("order not found")
)

// Business conflicts.
var (
	ErrTableUnavailable     = errors.New("table is not available")
	ErrInsufficientCapacity = errors.New("table capacity is less than party size")
	ErrTableConflict        = errors.New("table is already reserved during this time period")
	ErrTableNumberTaken     = errors.New("table number already exists")
	ErrEventFull            = errors.New("event is fully booked")
	ErrCategoryInUse        = errors.New("cannot delete category with menu items")
	ErrReservationClosed    = errors.New("cannot update completed or cancelled reservations")
	ErrNotOwner             = errors.New("you can only cancel your own reservations")
)
