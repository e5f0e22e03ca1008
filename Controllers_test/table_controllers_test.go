package Controllers_test

import (
	"fmt"
	"net/http"
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

func setupTestDBForTables(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	err = db.AutoMigrate(&models.User{}, &models.Table{}, &models.Reservation{})
	require.NoError(t, err)
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.POST("/tables", tableCtrl.CreateTable)
	router.PATCH("/tables/:table_id", tableCtrl.UpdateTableAvailability)
	return router
}

func TestGetAllTables(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	db.Create(&models.Table{Number: 2, Capacity: 4, Available: true})
	db.Create(&models.Table{Number: 1, Capacity: 2, Available: true})

	router := setupTableRouter(db)
	w := doJSON(t, router, "GET", "/tables", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeEnvelope(t, w)
	assert.Equal(t, "List of tables", response["message"])

	// Ordered by table number.
	data := response["data"].([]interface{})
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["number"])
}

func TestCreateTableEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	router := setupTableRouter(db)

	payload := map[string]interface{}{"number": 5, "capacity": 4, "location": "patio"}
	w := doJSON(t, router, "POST", "/tables", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate number conflicts.
	w = doJSON(t, router, "POST", "/tables", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Capacity must be positive.
	w = doJSON(t, router, "POST", "/tables", map[string]interface{}{"number": 6, "capacity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTableAvailability(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	table := models.Table{Number: 3, Capacity: 4, Available: true}
	db.Create(&table)

	router := setupTableRouter(db)

	url := fmt.Sprintf("/tables/%d", table.ID)
	w := doJSON(t, router, "PATCH", url, map[string]bool{"available": false})
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeEnvelope(t, w)
	assert.Equal(t, "Table disabled successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["available"])

	// Disabling twice is a no-op, not an error.
	w = doJSON(t, router, "PATCH", url, map[string]bool{"available": false})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "PATCH", "/tables/999", map[string]bool{"available": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
