package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-booking/models"
	"restaurant-booking/services"
	"restaurant-booking/utils"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{Service: services.NewReservationService(db)}
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}

func parseClock(s string) (time.Time, error) {
	return time.ParseInLocation(timeLayout, s, time.Local)
}

// CreateReservation books a table. Public route; the customer record is
// resolved (or created) from the submitted email.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		CustomerName  string `json:"customer_name" binding:"required"`
		CustomerEmail string `json:"customer_email" binding:"required,email"`
		CustomerPhone string `json:"customer_phone"`
		TableID       uint   `json:"table_id" binding:"required"`
		Date          string `json:"date" binding:"required"`          // 2006-01-02
		Time          string `json:"time" binding:"required"`          // 15:04
		PartySize     int    `json:"party_size" binding:"required"`
		SpecialNotes  string `json:"special_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date, expected YYYY-MM-DD"))
		return
	}
	at, err := parseClock(req.Time)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid time, expected HH:MM"))
		return
	}

	reservation, err := rc.Service.CreateReservation(services.CreateReservationInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		TableID:       req.TableID,
		Date:          date,
		Time:          at,
		PartySize:     req.PartySize,
		SpecialNotes:  req.SpecialNotes,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// GetAvailability lists tables free for the requested date/time/party size,
// smallest first.
func (rc *ReservationController) GetAvailability(c *gin.Context) {
	dateStr := c.Query("date")
	timeStr := c.Query("time")
	partySize, _ := strconv.Atoi(c.Query("party_size"))

	if dateStr == "" || timeStr == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date, time and party_size are required"))
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date, expected YYYY-MM-DD"))
		return
	}
	at, err := parseClock(timeStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid time, expected HH:MM"))
		return
	}

	var excludeID uint
	if v := c.Query("exclude_reservation_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid exclude_reservation_id"))
			return
		}
		excludeID = uint(parsed)
	}

	tables, err := rc.Service.FindAvailableTables(date, at, partySize, excludeID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Available tables", tables)
}

// GetAllReservations lists reservations with optional status/date/limit
// filters. Staff/admin only (enforced in the router).
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	var status *models.ReservationStatus
	if v := c.Query("status"); v != "" {
		s := models.ReservationStatus(v)
		if !s.Valid() {
			respondDomainError(c, models.ErrInvalidStatus)
			return
		}
		status = &s
	}

	var day *time.Time
	if v := c.Query("date"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date, expected YYYY-MM-DD"))
			return
		}
		day = &parsed
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	reservations, err := rc.Service.ListReservations(status, day, limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("reservation_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid reservation id"))
		return
	}

	reservation, err := rc.Service.GetReservationByID(uint(id))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// GetMyReservations lists the authenticated user's reservations.
func (rc *ReservationController) GetMyReservations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	reservations, err := rc.Service.ListReservationsByUser(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Your reservations", reservations)
}

// GetUpcomingReservations lists the next PENDING/CONFIRMED reservations.
func (rc *ReservationController) GetUpcomingReservations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	reservations, err := rc.Service.UpcomingReservations(limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Upcoming reservations", reservations)
}

// UpdateReservationStatus moves a reservation through its lifecycle.
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("reservation_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid reservation id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Service.UpdateStatus(uint(id), models.ReservationStatus(req.Status))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation status updated successfully", reservation)
}

// CancelReservation cancels a reservation. Customers may only cancel their
// own (owner check applies when a user_id is supplied); staff cancel freely.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("reservation_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid reservation id"))
		return
	}

	var req struct {
		UserID uint `json:"user_id"`
	}
	// Body is optional; ignore bind errors on an empty body.
	_ = c.ShouldBindJSON(&req)

	reservation, err := rc.Service.CancelReservation(uint(id), req.UserID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled successfully", reservation)
}

// GetReservationStats counts reservations per status, optionally for a day.
func (rc *ReservationController) GetReservationStats(c *gin.Context) {
	var day *time.Time
	if v := c.Query("date"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date, expected YYYY-MM-DD"))
			return
		}
		day = &parsed
	}

	stats, err := rc.Service.GetReservationStats(day)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation stats", stats)
}

func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
