package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"restaurant-booking/models"
	"restaurant-booking/utils"
)

// conflictWindow is the buffer around a reservation's time inside which the
// table counts as taken. It approximates table turnover; there is no
// per-reservation end time.
const conflictWindow = 2 * time.Hour

// MaxPartySize caps a single booking.
const MaxPartySize = 50

// ReservationService owns table registry mutations, availability checks and
// the reservation lifecycle. All writes that could double-book a table happen
// under a per-table lock.
type ReservationService struct {
	DB    *gorm.DB
	locks *tableLocks
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{
		DB:    db,
		locks: newTableLocks(),
	}
}

// CreateReservationInput carries an already-parsed booking request.
type CreateReservationInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	TableID       uint
	Date          time.Time
	Time          time.Time
	PartySize     int
	SpecialNotes  string
}

// combineDateTime merges the calendar day of date with the clock time of t.
func combineDateTime(date, t time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location())
}

// ---------------------------------------------------------------------------
// Table registry
// ---------------------------------------------------------------------------

// ListTables returns every table ordered by number, each with its
// reservations that still hold the table (PENDING/CONFIRMED/SEATED).
func (s *ReservationService) ListTables() ([]models.Table, error) {
	var tables []models.Table
	err := s.DB.
		Preload("Reservations", func(db *gorm.DB) *gorm.DB {
			return db.Where("status IN ?", statusStrings(models.ActiveReservationStatuses)).Order("date asc")
		}).
		Order("number asc").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *ReservationService) CreateTable(number, capacity int, location *string) (*models.Table, error) {
	if capacity < 1 {
		return nil, models.ErrInvalidCapacity
	}

	var existing models.Table
	err := s.DB.Where("number = ?", number).First(&existing).Error
	if err == nil {
		return nil, models.ErrTableNumberTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	table := models.Table{
		Number:    number,
		Capacity:  capacity,
		Location:  location,
		Available: true,
	}
	if err := s.DB.Create(&table).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table #%d created (capacity=%d)", table.Number, table.Capacity)
	return &table, nil
}

// SetTableAvailability toggles a table in or out of service. Idempotent;
// existing reservations are untouched.
func (s *ReservationService) SetTableAvailability(tableID uint, available bool) (*models.Table, error) {
	var table models.Table
	if err := s.DB.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTableNotFound
		}
		return nil, err
	}

	if table.Available == available {
		return &table, nil
	}

	table.Available = available
	if err := s.DB.Save(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// ---------------------------------------------------------------------------
// Availability checker
// ---------------------------------------------------------------------------

// FindAvailableTables returns the tables that can seat partySize at the
// requested instant, smallest sufficient table first. A table is free when it
// is in service, large enough, and holds no active reservation within the
// conflict window. excludeReservationID skips one reservation, for re-checks
// during an update flow; pass 0 to exclude nothing.
func (s *ReservationService) FindAvailableTables(date, at time.Time, partySize int, excludeReservationID uint) ([]models.Table, error) {
	if partySize < 1 {
		return nil, models.ErrInvalidPartySize
	}

	requested := combineDateTime(date, at)
	windowStart := requested.Add(-conflictWindow)
	windowEnd := requested.Add(conflictWindow)

	conflicting := s.DB.Model(&models.Reservation{}).
		Select("table_id").
		Where("status IN ?", statusStrings(models.ActiveReservationStatuses)).
		Where("time BETWEEN ? AND ?", windowStart, windowEnd)
	if excludeReservationID != 0 {
		conflicting = conflicting.Where("id <> ?", excludeReservationID)
	}

	var tables []models.Table
	err := s.DB.
		Where("capacity >= ?", partySize).
		Where("available = ?", true).
		Where("id NOT IN (?)", conflicting).
		Order("capacity asc").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// hasConflict reports whether the table holds an active reservation within
// the conflict window around requested. Callers must hold the table lock.
func (s *ReservationService) hasConflict(tx *gorm.DB, tableID uint, requested time.Time, excludeReservationID uint) (bool, error) {
	q := tx.Model(&models.Reservation{}).
		Where("table_id = ?", tableID).
		Where("status IN ?", statusStrings(models.ActiveReservationStatuses)).
		Where("time BETWEEN ? AND ?", requested.Add(-conflictWindow), requested.Add(conflictWindow))
	if excludeReservationID != 0 {
		q = q.Where("id <> ?", excludeReservationID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ---------------------------------------------------------------------------
// Booking orchestrator
// ---------------------------------------------------------------------------

// CreateReservation validates the request, resolves the customer by email,
// re-checks the table for conflicts and inserts a PENDING reservation. The
// conflict check and the insert run inside one transaction under the table's
// lock, so two concurrent requests for the same window cannot both succeed.
func (s *ReservationService) CreateReservation(input CreateReservationInput) (*models.Reservation, error) {
	if input.CustomerName == "" || input.CustomerEmail == "" || input.TableID == 0 ||
		input.Date.IsZero() || input.Time.IsZero() {
		return nil, models.ErrMissingFields
	}
	if input.PartySize < 1 || input.PartySize > MaxPartySize {
		return nil, models.ErrInvalidPartySize
	}

	requested := combineDateTime(input.Date, input.Time)
	if requested.Before(time.Now()) {
		return nil, models.ErrPastReservation
	}

	user, err := FindOrCreateCustomer(s.DB, input.CustomerEmail, input.CustomerName, input.CustomerPhone)
	if err != nil {
		return nil, err
	}

	lock := s.locks.forTable(input.TableID)
	lock.Lock()
	defer lock.Unlock()

	var reservation models.Reservation
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, input.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrTableNotFound
			}
			return err
		}
		if !table.Available {
			return models.ErrTableUnavailable
		}
		if table.Capacity < input.PartySize {
			return models.ErrInsufficientCapacity
		}

		conflict, err := s.hasConflict(tx, input.TableID, requested, 0)
		if err != nil {
			return err
		}
		if conflict {
			return models.ErrTableConflict
		}

		reservation = models.Reservation{
			UserID:       user.ID,
			TableID:      input.TableID,
			Date:         input.Date,
			Time:         requested,
			PartySize:    input.PartySize,
			Status:       models.ReservationPending,
			SpecialNotes: input.SpecialNotes,
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d created: table=%d party=%d at %s",
		reservation.ID, reservation.TableID, reservation.PartySize, requested.Format(time.RFC3339))

	if err := s.DB.Preload("User").Preload("Table").First(&reservation, reservation.ID).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ---------------------------------------------------------------------------
// Status lifecycle
// ---------------------------------------------------------------------------

// UpdateStatus moves a reservation along the allowed-transitions table.
// Terminal reservations (COMPLETED/CANCELLED) reject every move.
func (s *ReservationService) UpdateStatus(reservationID uint, next models.ReservationStatus) (*models.Reservation, error) {
	if !next.Valid() {
		return nil, models.ErrInvalidStatus
	}

	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrReservationNotFound
		}
		return nil, err
	}

	if reservation.Status.Terminal() {
		return nil, models.ErrReservationClosed
	}
	if !reservation.Status.CanTransitionTo(next) {
		return nil, models.ErrInvalidTransition
	}

	reservation.Status = next
	if err := s.DB.Save(&reservation).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d status changed to %s", reservation.ID, next)

	if err := s.DB.Preload("User").Preload("Table").First(&reservation, reservation.ID).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CancelReservation sets the reservation to CANCELLED. When requestingUserID
// is non-zero it must match the reservation's owner. Cancellation never
// deletes the row.
func (s *ReservationService) CancelReservation(reservationID uint, requestingUserID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrReservationNotFound
		}
		return nil, err
	}

	if requestingUserID != 0 && reservation.UserID != requestingUserID {
		return nil, models.ErrNotOwner
	}
	if reservation.Status.Terminal() {
		return nil, models.ErrReservationClosed
	}

	reservation.Status = models.ReservationCancelled
	if err := s.DB.Save(&reservation).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d cancelled", reservation.ID)

	if err := s.DB.Preload("User").Preload("Table").First(&reservation, reservation.ID).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func (s *ReservationService) GetReservationByID(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.Preload("User").Preload("Table").First(&reservation, reservationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListReservations returns reservations ordered by date then time. status
// narrows to one status; day narrows to a calendar day; limit of 0 means no
// limit.
func (s *ReservationService) ListReservations(status *models.ReservationStatus, day *time.Time, limit int) ([]models.Reservation, error) {
	q := s.DB.Preload("User").Preload("Table").
		Order("date asc").Order("time asc")

	if status != nil {
		q = q.Where("status = ?", string(*status))
	}
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		q = q.Where("date >= ? AND date < ?", start, start.AddDate(0, 0, 1))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var reservations []models.Reservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *ReservationService) ListReservationsByUser(userID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.Preload("Table").
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// UpcomingReservations lists PENDING/CONFIRMED reservations from now on.
func (s *ReservationService) UpcomingReservations(limit int) ([]models.Reservation, error) {
	if limit <= 0 {
		limit = 10
	}

	var reservations []models.Reservation
	err := s.DB.Preload("User").Preload("Table").
		Where("time >= ?", time.Now()).
		Where("status IN ?", []string{string(models.ReservationPending), string(models.ReservationConfirmed)}).
		Order("date asc").Order("time asc").
		Limit(limit).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// ReservationStats counts reservations per status, optionally for one day.
type ReservationStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Seated    int64 `json:"seated"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

func (s *ReservationService) GetReservationStats(day *time.Time) (*ReservationStats, error) {
	base := s.DB.Model(&models.Reservation{})
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		base = base.Where("date >= ? AND date < ?", start, start.AddDate(0, 0, 1))
	}

	stats := &ReservationStats{}
	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		status models.ReservationStatus
		dest   *int64
	}{
		{models.ReservationPending, &stats.Pending},
		{models.ReservationConfirmed, &stats.Confirmed},
		{models.ReservationSeated, &stats.Seated},
		{models.ReservationCompleted, &stats.Completed},
		{models.ReservationCancelled, &stats.Cancelled},
	}
	for _, c := range counts {
		if err := base.Session(&gorm.Session{}).Where("status = ?", string(c.status)).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func statusStrings(statuses []models.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
