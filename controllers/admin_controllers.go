package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-booking/models"
	"restaurant-booking/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// GetDashboardStats aggregates the numbers shown on the dashboard landing
// page: order volume and revenue (all-time and today), today's active
// reservations and the average review rating.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := startOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)

	var stats struct {
		TotalOrders        int64   `json:"total_orders"`
		TotalRevenue       float64 `json:"total_revenue"`
		OrdersToday        int64   `json:"orders_today"`
		RevenueToday       float64 `json:"revenue_today"`
		ActiveReservations int64   `json:"active_reservations"`
		AverageRating      float64 `json:"average_rating"`
	}

	if err := ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	ac.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TotalRevenue)

	ac.DB.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Count(&stats.OrdersToday)
	ac.DB.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.RevenueToday)

	ac.DB.Model(&models.Reservation{}).
		Where("date >= ? AND date < ?", today, tomorrow).
		Where("status IN ?", []string{
			string(models.ReservationPending),
			string(models.ReservationConfirmed),
			string(models.ReservationSeated),
		}).
		Count(&stats.ActiveReservations)

	ac.DB.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0)").Row().Scan(&stats.AverageRating)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// GetRecentOrders returns the five newest orders with items and customer.
func (ac *AdminController) GetRecentOrders(c *gin.Context) {
	var orders []models.Order
	err := ac.DB.
		Preload("OrderItems.MenuItem.Category").Preload("User").
		Order("created_at desc").
		Limit(5).
		Find(&orders).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Recent orders", orders)
}

type dayRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

type topDish struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Orders   int     `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

type statusCount struct {
	Status     string  `json:"status"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// GetAnalytics produces today-vs-yesterday deltas, the top five dishes by
// quantity sold, a 7-day revenue chart and the order status distribution.
func (ac *AdminController) GetAnalytics(c *gin.Context) {
	now := time.Now()
	today := startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	todayRevenue, todayOrders := ac.revenueBetween(today, tomorrow)
	yesterdayRevenue, yesterdayOrders := ac.revenueBetween(yesterday, today)

	avgOrderValue := 0.0
	if todayOrders > 0 {
		avgOrderValue = todayRevenue / float64(todayOrders)
	}
	yesterdayAvg := 0.0
	if yesterdayOrders > 0 {
		yesterdayAvg = yesterdayRevenue / float64(yesterdayOrders)
	}

	// Top dishes by quantity sold.
	var topRows []struct {
		MenuItemID uint
		Quantity   int
		Revenue    float64
	}
	ac.DB.Model(&models.OrderItem{}).
		Select("menu_item_id, SUM(quantity) AS quantity, SUM(price * quantity) AS revenue").
		Group("menu_item_id").
		Order("quantity desc").
		Limit(5).
		Scan(&topRows)

	topDishes := make([]topDish, 0, len(topRows))
	for _, row := range topRows {
		var item models.MenuItem
		if err := ac.DB.Preload("Category").First(&item, row.MenuItemID).Error; err != nil {
			continue
		}
		topDishes = append(topDishes, topDish{
			Name:     item.Name,
			Category: item.Category.Name,
			Orders:   row.Quantity,
			Revenue:  row.Revenue,
		})
	}

	// Revenue per day over the last week.
	revenueChart := make([]dayRevenue, 0, 7)
	for i := 6; i >= 0; i-- {
		dayStart := today.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)
		revenue, orders := ac.revenueBetween(dayStart, dayEnd)
		revenueChart = append(revenueChart, dayRevenue{
			Date:    dayStart.Format("Jan 2"),
			Revenue: revenue,
			Orders:  orders,
		})
	}

	// Order status distribution.
	var statusRows []struct {
		Status string
		Count  int64
	}
	ac.DB.Model(&models.Order{}).
		Select("status, COUNT(id) AS count").
		Group("status").
		Scan(&statusRows)

	var totalOrders int64
	for _, row := range statusRows {
		totalOrders += row.Count
	}
	distribution := make([]statusCount, 0, len(statusRows))
	for _, row := range statusRows {
		pct := 0.0
		if totalOrders > 0 {
			pct = float64(row.Count) / float64(totalOrders) * 100
		}
		distribution = append(distribution, statusCount{
			Status:     row.Status,
			Count:      row.Count,
			Percentage: pct,
		})
	}

	var avgRating float64
	ac.DB.Model(&models.Review{}).Select("COALESCE(AVG(rating), 0)").Row().Scan(&avgRating)

	utils.RespondJSON(c, http.StatusOK, "Analytics data retrieved successfully", gin.H{
		"daily_revenue":             todayRevenue,
		"orders_today":              todayOrders,
		"avg_order_value":           avgOrderValue,
		"customer_satisfaction":     avgRating,
		"revenue_change":            percentChange(yesterdayRevenue, todayRevenue),
		"orders_change":             percentChange(float64(yesterdayOrders), float64(todayOrders)),
		"avg_order_change":          percentChange(yesterdayAvg, avgOrderValue),
		"top_dishes":                topDishes,
		"revenue_chart":             revenueChart,
		"order_status_distribution": distribution,
	})
}

func (ac *AdminController) revenueBetween(start, end time.Time) (float64, int64) {
	var revenue float64
	var orders int64
	ac.DB.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&orders)
	ac.DB.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&revenue)
	return revenue, orders
}

func percentChange(previous, current float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
