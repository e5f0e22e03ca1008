package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-booking/models"
	"restaurant-booking/services"
	"restaurant-booking/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// CreateOrder places a pickup/delivery/dine-in order. The customer is
// resolved by email like reservations; line items snapshot the current menu
// price; unknown menu ids are skipped. Order and items insert in one
// transaction.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		CustomerName  string `json:"customer_name" binding:"required"`
		CustomerEmail string `json:"customer_email" binding:"required,email"`
		CustomerPhone string `json:"customer_phone"`
		OrderType     string `json:"order_type" binding:"required"`
		PickupTime    string `json:"pickup_time"` // RFC 3339, optional
		SpecialNotes  string `json:"special_notes"`
		Items         []struct {
			MenuItemID uint   `json:"menu_item_id" binding:"required"`
			Quantity   int    `json:"quantity" binding:"required,min=1"`
			Notes      string `json:"notes"`
		} `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidOrderType(req.OrderType) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order_type must be DINE_IN, TAKEOUT or DELIVERY"))
		return
	}

	var pickupTime *time.Time
	if req.PickupTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.PickupTime)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid pickup_time, expected RFC 3339"))
			return
		}
		pickupTime = &parsed
	}

	user, err := services.FindOrCreateCustomer(oc.DB, req.CustomerEmail, req.CustomerName, req.CustomerPhone)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var order models.Order
	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			OrderNumber:  fmt.Sprintf("ORD-%d", time.Now().UnixMilli()),
			UserID:       user.ID,
			OrderType:    req.OrderType,
			Status:       models.OrderPending,
			PickupTime:   pickupTime,
			SpecialNotes: req.SpecialNotes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range req.Items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
				// Unknown items are skipped rather than failing the order.
				continue
			}

			total += menuItem.Price * float64(item.Quantity)
			orderItem := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: menuItem.ID,
				Quantity:   item.Quantity,
				Price:      menuItem.Price,
				Notes:      item.Notes,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}

		order.TotalAmount = total
		return tx.Save(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := oc.DB.Preload("OrderItems.MenuItem").Preload("User").First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s created: user=%d total=%.2f", order.OrderNumber, order.UserID, order.TotalAmount)
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// GetAllOrders lists orders newest first, with items and customer.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	err := oc.DB.
		Preload("OrderItems.MenuItem").Preload("User").
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems.MenuItem").Preload("User").First(&order, id).Error; err != nil {
		respondDomainError(c, models.ErrOrderNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetOrdersByUser lists the authenticated user's orders, newest first.
func (oc *OrderController) GetOrdersByUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var orders []models.Order
	err := oc.DB.
		Preload("OrderItems.MenuItem").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Your orders", orders)
}

// UpdateOrderStatus validates against the order status set and saves.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		respondDomainError(c, models.ErrInvalidStatus)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		respondDomainError(c, models.ErrOrderNotFound)
		return
	}

	order.Status = status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s status changed to %s", order.OrderNumber, status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder removes an order and its items. Admin only.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		respondDomainError(c, models.ErrOrderNotFound)
		return
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"id": order.ID})
}
