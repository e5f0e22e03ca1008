package Controllers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-booking/controllers"
	"restaurant-booking/models"
	"restaurant-booking/utils"
)

func setupTestDBForOrders(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	err = db.AutoMigrate(
		&models.User{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	require.NoError(t, err)
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewOrderController(db)
	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/orders", orderCtrl.GetAllOrders)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	router.PATCH("/orders/:order_id", orderCtrl.UpdateOrderStatus)
	router.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	return router
}

func seedMenu(t *testing.T, db *gorm.DB) (models.MenuItem, models.MenuItem) {
	t.Helper()
	category := models.MenuCategory{Name: "Mains"}
	require.NoError(t, db.Create(&category).Error)

	pizza := models.MenuItem{Name: "Margherita", Price: 12.50, CategoryID: category.ID, Available: true}
	pasta := models.MenuItem{Name: "Carbonara", Price: 14.00, CategoryID: category.ID, Available: true}
	require.NoError(t, db.Create(&pizza).Error)
	require.NoError(t, db.Create(&pasta).Error)
	return pizza, pasta
}

func TestCreateOrderEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	pizza, pasta := seedMenu(t, db)
	router := setupOrderRouter(db)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"customer_name":  "Jamie Doe",
		"customer_email": "jamie@example.com",
		"order_type":     "TAKEOUT",
		"items": []map[string]interface{}{
			{"menu_item_id": pizza.ID, "quantity": 2},
			{"menu_item_id": pasta.ID, "quantity": 1},
			{"menu_item_id": 999, "quantity": 1}, // unknown items are skipped
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, 2*12.50+14.00, data["total_amount"])
	assert.True(t, strings.HasPrefix(data["order_number"].(string), "ORD-"))
	assert.Len(t, data["order_items"].([]interface{}), 2)

	// Order type is validated.
	w = doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"customer_name":  "Jamie Doe",
		"customer_email": "jamie@example.com",
		"order_type":     "DRIVE_THRU",
		"items":          []map[string]interface{}{{"menu_item_id": pizza.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderStatusAndDelete(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	pizza, _ := seedMenu(t, db)
	router := setupOrderRouter(db)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"customer_name":  "Jamie Doe",
		"customer_email": "jamie@example.com",
		"order_type":     "DINE_IN",
		"items":          []map[string]interface{}{{"menu_item_id": pizza.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := int(decodeEnvelope(t, w)["data"].(map[string]interface{})["id"].(float64))

	w = doJSON(t, router, "PATCH", fmt.Sprintf("/orders/%d", id), map[string]string{"status": "PREPARING"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "PATCH", fmt.Sprintf("/orders/%d", id), map[string]string{"status": "BURNED"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/orders/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Items are removed with the order.
	var itemCount int64
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(0), itemCount)
}
