package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-booking/controllers"
	"restaurant-booking/middlewares"
	"restaurant-booking/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	reservationCtrl := controllers.NewReservationController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db)
	eventCtrl := controllers.NewEventController(db)
	reviewCtrl := controllers.NewReviewController(db)
	adminCtrl := controllers.NewAdminController(db)

	apiLimiter := middlewares.NewRateLimiter(120, 60)
	r.Use(apiLimiter.RateLimit())

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter for login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Menu browsing
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAllMenuItems)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuItemByID)

	// Reservations (customers book without an account)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/reservations/availability", reservationCtrl.GetAvailability)
	r.POST("/reservations", reservationCtrl.CreateReservation)
	r.DELETE("/reservations/:reservation_id", reservationCtrl.CancelReservation)

	// Pickup orders
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// Events
	r.GET("/events", eventCtrl.GetEvents)
	r.POST("/events/:event_id/bookings", eventCtrl.CreateEventBooking)

	// Reviews
	r.GET("/reviews", reviewCtrl.GetAllReviews)
	r.POST("/reviews", reviewCtrl.CreateReview)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())
	auth.Use(middlewares.RequireRoles(models.RoleStaff, models.RoleAdmin))

	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/my-reservations", reservationCtrl.GetMyReservations)
	auth.GET("/my-orders", orderCtrl.GetOrdersByUser)

	// RESERVATIONS (staff/admin)
	auth.GET("/reservations", reservationCtrl.GetAllReservations)
	auth.GET("/reservations/upcoming", reservationCtrl.GetUpcomingReservations)
	auth.GET("/reservations/stats", reservationCtrl.GetReservationStats)
	auth.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
	auth.PATCH("/reservations/:reservation_id", reservationCtrl.UpdateReservationStatus)
	auth.DELETE("/reservations/:reservation_id", reservationCtrl.CancelReservation)

	// TABLES (staff/admin)
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTableAvailability)

	// MENU CATEGORIES (staff/admin)
	auth.POST("/categories", categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

	// MENUS (staff/admin)
	auth.GET("/menus", menuCtrl.GetAllMenuItems)
	auth.POST("/menus", menuCtrl.CreateMenuItem)
	auth.PATCH("/menus/:menu_id", menuCtrl.UpdateMenuItem)
	auth.DELETE("/menus/:menu_id", menuCtrl.DeleteMenuItem)

	// ORDERS (staff/admin)
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id", orderCtrl.UpdateOrderStatus)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

	// EVENTS (staff/admin)
	auth.POST("/events", eventCtrl.CreateEvent)
	auth.GET("/events/:event_id/bookings", eventCtrl.GetEventBookings)

	// REVIEWS (staff/admin)
	auth.GET("/reviews", reviewCtrl.GetAllReviews)
	auth.DELETE("/reviews/:review_id", reviewCtrl.DeleteReview)

	// STAFF MANAGEMENT (admin)
	staff := auth.Group("/staff")
	staff.Use(middlewares.RequireRoles(models.RoleAdmin))
	{
		staff.GET("", userCtrl.GetStaff)
		staff.PATCH("/:user_id", userCtrl.UpdateStaff)
		staff.DELETE("/:user_id", userCtrl.DeleteStaff)
	}

	// DASHBOARD (staff/admin)
	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	auth.GET("/dashboard/recent-orders", adminCtrl.GetRecentOrders)
	auth.GET("/dashboard/analytics", adminCtrl.GetAnalytics)

	return r
}
