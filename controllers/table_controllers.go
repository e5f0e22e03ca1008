package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-booking/services"
	"restaurant-booking/utils"
)

type TableController struct {
	Service *services.ReservationService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{Service: services.NewReservationService(db)}
}

// GetAllTables lists every table ordered by number, with active reservations.
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Service.ListTables()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable registers a new physical table. Admin only.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number   int     `json:"number" binding:"required"`
		Capacity int     `json:"capacity" binding:"required"`
		Location *string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Service.CreateTable(req.Number, req.Capacity, req.Location)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTableAvailability flips a table in or out of service. Idempotent.
func (tc *TableController) UpdateTableAvailability(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("table_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table id"))
		return
	}

	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Service.SetTableAvailability(uint(id), *req.Available)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	message := "Table disabled successfully"
	if table.Available {
		message = "Table enabled successfully"
	}
	utils.RespondJSON(c, http.StatusOK, message, table)
}
