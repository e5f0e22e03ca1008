package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-booking/models"
	"restaurant-booking/services"
	"restaurant-booking/utils"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

func (rc *ReviewController) CreateReview(c *gin.Context) {
	var req struct {
		CustomerName  string `json:"customer_name" binding:"required"`
		CustomerEmail string `json:"customer_email" binding:"required,email"`
		Rating        int    `json:"rating" binding:"required"`
		Comment       string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		respondDomainError(c, models.ErrInvalidRating)
		return
	}

	user, err := services.FindOrCreateCustomer(rc.DB, req.CustomerEmail, req.CustomerName, "")
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	review := models.Review{
		UserID:  user.ID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := rc.DB.Create(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Review created", review)
}

func (rc *ReviewController) GetAllReviews(c *gin.Context) {
	var reviews []models.Review
	err := rc.DB.Preload("User").Order("created_at desc").Find(&reviews).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reviews", reviews)
}

func (rc *ReviewController) DeleteReview(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("review_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid review id"))
		return
	}

	var review models.Review
	if err := rc.DB.First(&review, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("review not found"))
		return
	}

	if err := rc.DB.Delete(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Review deleted", gin.H{"id": review.ID})
}
