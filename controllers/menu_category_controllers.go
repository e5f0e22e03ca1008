package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-booking/models"
	"restaurant-booking/utils"
)

type MenuCategoryController struct {
	DB *gorm.DB
}

func NewMenuCategoryController(db *gorm.DB) *MenuCategoryController {
	return &MenuCategoryController{DB: db}
}

// categoryWithCount mirrors the dashboard listing: each category plus how
// many menu items it holds.
type categoryWithCount struct {
	models.MenuCategory
	MenuItemCount int64 `json:"menu_item_count"`
}

func (cc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := cc.DB.Order("sort_order asc").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]categoryWithCount, 0, len(categories))
	for _, cat := range categories {
		var count int64
		if err := cc.DB.Model(&models.MenuItem{}).Where("category_id = ?", cat.ID).Count(&count).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		out = append(out, categoryWithCount{MenuCategory: cat, MenuItemCount: count})
	}

	utils.RespondJSON(c, http.StatusOK, "List of categories", out)
}

func (cc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
		SortOrder   int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

func (cc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("cat_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category id"))
		return
	}

	var category models.MenuCategory
	if err := cc.DB.First(&category, id).Error; err != nil {
		respondDomainError(c, models.ErrCategoryNotFound)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
		SortOrder   *int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.ImageURL != nil {
		category.ImageURL = *req.ImageURL
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory refuses to remove a category that still has menu items.
func (cc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("cat_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category id"))
		return
	}

	var category models.MenuCategory
	if err := cc.DB.First(&category, id).Error; err != nil {
		respondDomainError(c, models.ErrCategoryNotFound)
		return
	}

	var count int64
	if err := cc.DB.Model(&models.MenuItem{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if count > 0 {
		respondDomainError(c, models.ErrCategoryInUse)
		return
	}

	if err := cc.DB.Delete(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"id": category.ID})
}
