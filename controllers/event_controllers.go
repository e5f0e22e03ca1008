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

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

// GetEvents lists upcoming available events, soonest first.
func (ec *EventController) GetEvents(c *gin.Context) {
	var events []models.Event
	err := ec.DB.
		Where("available = ?", true).
		Where("date >= ?", time.Now()).
		Order("date asc").
		Find(&events).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of events", events)
}

// CreateEvent registers a new event. Admin only.
func (ec *EventController) CreateEvent(c *gin.Context) {
	var req struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Date        string   `json:"date" binding:"required"` // RFC 3339
		Capacity    int      `json:"capacity" binding:"required,min=1"`
		Price       *float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date, expected RFC 3339"))
		return
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Capacity:    req.Capacity,
		Price:       req.Price,
		Available:   true,
	}
	if err := ec.DB.Create(&event).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Event created", event)
}

// CreateEventBooking books seats at an event. Seats held by PENDING and
// CONFIRMED bookings count against capacity; the headcount check and the
// insert run in one transaction.
func (ec *EventController) CreateEventBooking(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("event_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	var req struct {
		CustomerName  string `json:"customer_name" binding:"required"`
		CustomerEmail string `json:"customer_email" binding:"required,email"`
		CustomerPhone string `json:"customer_phone"`
		PartySize     int    `json:"party_size" binding:"required,min=1"`
		SpecialNotes  string `json:"special_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := services.FindOrCreateCustomer(ec.DB, req.CustomerEmail, req.CustomerName, req.CustomerPhone)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var booking models.EventBooking
	err = ec.DB.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrEventNotFound
			}
			return err
		}

		var booked int64
		err := tx.Model(&models.EventBooking{}).
			Where("event_id = ?", event.ID).
			Where("status IN ?", []string{string(models.EventBookingPending), string(models.EventBookingConfirmed)}).
			Select("COALESCE(SUM(party_size), 0)").
			Scan(&booked).Error
		if err != nil {
			return err
		}

		if int(booked)+req.PartySize > event.Capacity {
			return models.ErrEventFull
		}

		booking = models.EventBooking{
			EventID:      event.ID,
			UserID:       user.ID,
			PartySize:    req.PartySize,
			Status:       models.EventBookingPending,
			SpecialNotes: req.SpecialNotes,
		}
		if event.Price != nil {
			total := *event.Price * float64(req.PartySize)
			booking.TotalAmount = &total
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if err := ec.DB.Preload("Event").Preload("User").First(&booking, booking.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Event booking %d created: event=%d party=%d", booking.ID, booking.EventID, booking.PartySize)
	utils.RespondJSON(c, http.StatusCreated, "Event booking created successfully", booking)
}

// GetEventBookings lists bookings for one event, newest first. Staff only.
func (ec *EventController) GetEventBookings(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("event_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	var event models.Event
	if err := ec.DB.First(&event, eventID).Error; err != nil {
		respondDomainError(c, models.ErrEventNotFound)
		return
	}

	var bookings []models.EventBooking
	err = ec.DB.Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Event bookings", bookings)
}
