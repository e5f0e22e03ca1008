package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-booking/models"
	"restaurant-booking/utils"
)

func setupReservationDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Reservation{},
	)
	require.NoError(t, err)
	return db
}

func seedTable(t *testing.T, db *gorm.DB, number, capacity int) models.Table {
	t.Helper()
	table := models.Table{Number: number, Capacity: capacity, Available: true}
	require.NoError(t, db.Create(&table).Error)
	return table
}

// tomorrowAt returns tomorrow's date (midnight) and a clock value for the
// given hour and minute, the two inputs a booking request parses into.
func tomorrowAt(hour, minute int) (time.Time, time.Time) {
	tomorrow := time.Now().AddDate(0, 0, 1)
	date := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.Local)
	clock := time.Date(0, 1, 1, hour, minute, 0, 0, time.Local)
	return date, clock
}

func bookingInput(table models.Table, date, clock time.Time, partySize int) CreateReservationInput {
	return CreateReservationInput{
		CustomerName:  "Jamie Doe",
		CustomerEmail: "jamie@example.com",
		CustomerPhone: "555-0101",
		TableID:       table.ID,
		Date:          date,
		Time:          clock,
		PartySize:     partySize,
	}
}

func TestCreateReservation(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 1, 4)

	date, clock := tomorrowAt(19, 0)
	res, err := svc.CreateReservation(bookingInput(table, date, clock, 2))
	require.NoError(t, err)

	assert.Equal(t, models.ReservationPending, res.Status)
	assert.Equal(t, table.ID, res.TableID)
	assert.Equal(t, 2, res.PartySize)
	assert.Equal(t, "jamie@example.com", res.User.Email)
	assert.Equal(t, 19, res.Time.Hour())
}

func TestCreateReservationValidation(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 1, 4)
	date, clock := tomorrowAt(19, 0)

	missing := bookingInput(table, date, clock, 2)
	missing.CustomerEmail = ""
	_, err := svc.CreateReservation(missing)
	assert.ErrorIs(t, err, models.ErrMissingFields)

	zero := bookingInput(table, date, clock, 0)
	_, err = svc.CreateReservation(zero)
	assert.ErrorIs(t, err, models.ErrInvalidPartySize)

	huge := bookingInput(table, date, clock, MaxPartySize+1)
	_, err = svc.CreateReservation(huge)
	assert.ErrorIs(t, err, models.ErrInvalidPartySize)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateReservationRejectsPastInstant(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 1, 4)

	yesterday := time.Now().AddDate(0, 0, -1)
	date := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.Local)
	clock := time.Date(0, 1, 1, 19, 0, 0, 0, time.Local)

	_, err := svc.CreateReservation(bookingInput(table, date, clock, 2))
	assert.ErrorIs(t, err, models.ErrPastReservation)
}

func TestCreateReservationTableChecks(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)
	date, clock := tomorrowAt(19, 0)

	missing := bookingInput(models.Table{ID: 999}, date, clock, 2)
	_, err := svc.CreateReservation(missing)
	assert.ErrorIs(t, err, models.ErrTableNotFound)

	small := seedTable(t, db, 1, 2)
	_, err = svc.CreateReservation(bookingInput(small, date, clock, 6))
	assert.ErrorIs(t, err, models.ErrInsufficientCapacity)

	offline := seedTable(t, db, 2, 8)
	_, errToggle := svc.SetTableAvailability(offline.ID, false)
	require.NoError(t, errToggle)
	_, err = svc.CreateReservation(bookingInput(offline, date, clock, 4))
	assert.ErrorIs(t, err, models.ErrTableUnavailable)

	// A failed booking leaves no reservation row behind.
	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestConflictWindow(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 1, 4)

	date, clock := tomorrowAt(19, 0)
	_, err := svc.CreateReservation(bookingInput(table, date, clock, 2))
	require.NoError(t, err)

	// 90 minutes later is inside the two hour window.
	_, halfPast := tomorrowAt(20, 30)
	_, err = svc.CreateReservation(bookingInput(table, date, halfPast, 2))
	assert.ErrorIs(t, err, models.ErrTableConflict)

	// Exactly two hours later still conflicts; the window bounds are inclusive.
	_, boundary := tomorrowAt(21, 0)
	_, err = svc.CreateReservation(bookingInput(table, date, boundary, 2))
	assert.ErrorIs(t, err, models.ErrTableConflict)

	// 135 minutes later is clear of the window.
	_, clear := tomorrowAt(21, 15)
	_, err = svc.CreateReservation(bookingInput(table, date, clear, 2))
	assert.NoError(t, err)
}

func TestCancelledReservationFreesTable(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 1, 4)

	date, clock := tomorrowAt(19, 0)
	res, err := svc.CreateReservation(bookingInput(table, date, clock, 2))
	require.NoError(t, err)

	_, err = svc.CancelReservation(res.ID, 0)
	require.NoError(t, err)

	// The slot reopens once the holder is cancelled.
	input := bookingInput(table, date, clock, 2)
	input.CustomerEmail = "other@example.com"
	input.CustomerName = "Riley Chen"
	_, err = svc.CreateReservation(input)
	assert.NoError(t, err)
}

func TestConcurrentBookingSameSlot(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 1, 4)

	// Pre-create both customers so the race is over the table, not the email.
	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := FindOrCreateCustomer(db, email, "Guest", "")
		require.NoError(t, err)
	}

	date, clock := tomorrowAt(19, 0)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, email := range []string{"a@example.com", "b@example.com"} {
		wg.Add(1)
		go func(i int, email string) {
			defer wg.Done()
			input := bookingInput(table, date, clock, 2)
			input.CustomerEmail = email
			_, errs[i] = svc.CreateReservation(input)
		}(i, email)
	}
	wg.Wait()

	winners, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case err == models.ErrTableConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, conflicts)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFindAvailableTables(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)

	big := seedTable(t, db, 1, 8)
	small := seedTable(t, db, 2, 2)
	mid := seedTable(t, db, 3, 4)

	date, clock := tomorrowAt(19, 0)

	// Party of 3: the two-top drops out, smallest sufficient table first.
	tables, err := svc.FindAvailableTables(date, clock, 3, 0)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, mid.ID, tables[0].ID)
	assert.Equal(t, big.ID, tables[1].ID)

	// Book the mid table; it disappears from the same window.
	res, err := svc.CreateReservation(bookingInput(mid, date, clock, 3))
	require.NoError(t, err)

	tables, err = svc.FindAvailableTables(date, clock, 3, 0)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, big.ID, tables[0].ID)

	// Excluding the held reservation restores the mid table.
	tables, err = svc.FindAvailableTables(date, clock, 3, res.ID)
	require.NoError(t, err)
	assert.Len(t, tables, 2)

	// Out-of-service tables never show up.
	_, err = svc.SetTableAvailability(small.ID, false)
	require.NoError(t, err)
	tables, err = svc.FindAvailableTables(date, clock, 1, 0)
	require.NoError(t, err)
	for _, tbl := range tables {
		assert.NotEqual(t, small.ID, tbl.ID)
	}

	_, err = svc.FindAvailableTables(date, clock, 0, 0)
	assert.ErrorIs(t, err, models.ErrInvalidPartySize)
}

func TestSetTableAvailabilityIdempotent(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 1, 4)

	for i := 0; i < 2; i++ {
		updated, err := svc.SetTableAvailability(table.ID, false)
		require.NoError(t, err)
		assert.False(t, updated.Available)
	}

	updated, err := svc.SetTableAvailability(table.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Available)

	_, err = svc.SetTableAvailability(999, true)
	assert.ErrorIs(t, err, models.ErrTableNotFound)
}

func TestCreateTable(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)

	loc := "patio"
	table, err := svc.CreateTable(7, 4, &loc)
	require.NoError(t, err)
	assert.True(t, table.Available)

	_, err = svc.CreateTable(7, 2, nil)
	assert.ErrorIs(t, err, models.ErrTableNumberTaken)

	_, err = svc.CreateTable(8, 0, nil)
	assert.ErrorIs(t, err, models.ErrInvalidCapacity)
}

func TestStatusLifecycle(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 1, 4)

	date, clock := tomorrowAt(19, 0)
	res, err := svc.CreateReservation(bookingInput(table, date, clock, 2))
	require.NoError(t, err)

	res, err = svc.UpdateStatus(res.ID, models.ReservationConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, res.Status)

	// Backward moves are rejected.
	_, err = svc.UpdateStatus(res.ID, models.ReservationPending)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	res, err = svc.UpdateStatus(res.ID, models.ReservationSeated)
	require.NoError(t, err)

	res, err = svc.UpdateStatus(res.ID, models.ReservationCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCompleted, res.Status)

	// Terminal reservations reject every move.
	_, err = svc.UpdateStatus(res.ID, models.ReservationSeated)
	assert.ErrorIs(t, err, models.ErrReservationClosed)

	_, err = svc.UpdateStatus(res.ID, "SHOUTED")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)

	_, err = svc.UpdateStatus(999, models.ReservationConfirmed)
	assert.ErrorIs(t, err, models.ErrReservationNotFound)
}

func TestCancelReservation(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 1, 4)

	date, clock := tomorrowAt(19, 0)
	res, err := svc.CreateReservation(bookingInput(table, date, clock, 2))
	require.NoError(t, err)

	// Someone else's id cannot cancel it.
	_, err = svc.CancelReservation(res.ID, res.UserID+1)
	assert.ErrorIs(t, err, models.ErrNotOwner)

	cancelled, err := svc.CancelReservation(res.ID, res.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, cancelled.Status)

	// Cancelling twice fails; the row stays.
	_, err = svc.CancelReservation(res.ID, res.UserID)
	assert.ErrorIs(t, err, models.ErrReservationClosed)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFindOrCreateCustomer(t *testing.T) {
	db := setupReservationDB(t)

	user, err := FindOrCreateCustomer(db, "sam@example.com", "Sam Park", "555-0100")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)

	// Same email resolves to the same record, with details refreshed.
	again, err := FindOrCreateCustomer(db, "sam@example.com", "Samuel Park", "555-0199")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "Samuel Park", again.Name)
	assert.Equal(t, "555-0199", again.Phone)

	// Empty fields never blank out stored details.
	kept, err := FindOrCreateCustomer(db, "sam@example.com", "Samuel Park", "")
	require.NoError(t, err)
	assert.Equal(t, "555-0199", kept.Phone)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestReservationQueries(t *testing.T) {
	db := setupReservationDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 1, 4)

	date, _ := tomorrowAt(0, 0)
	var first *models.Reservation
	for i, hour := range []int{12, 15, 18} {
		_, clock := tomorrowAt(hour, 0)
		input := bookingInput(table, date, clock, 2)
		input.CustomerEmail = fmt.Sprintf("guest%d@example.com", i)
		res, err := svc.CreateReservation(input)
		require.NoError(t, err)
		if first == nil {
			first = res
		}
	}

	all, err := svc.ListReservations(nil, nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 12, all[0].Time.Hour())

	_, err = svc.UpdateStatus(first.ID, models.ReservationConfirmed)
	require.NoError(t, err)

	pending := models.ReservationPending
	filtered, err := svc.ListReservations(&pending, &date, 0)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	upcoming, err := svc.UpcomingReservations(2)
	require.NoError(t, err)
	assert.Len(t, upcoming, 2)

	mine, err := svc.ListReservationsByUser(first.UserID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	stats, err := svc.GetReservationStats(&date)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(1), stats.Confirmed)

	got, err := svc.GetReservationByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	_, err = svc.GetReservationByID(999)
	assert.ErrorIs(t, err, models.ErrReservationNotFound)
}
