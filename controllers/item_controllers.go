package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/puravida-pos/pos-demo/models"
	"github.com/puravida-pos/pos-demo/utils"
)

type ItemController struct {
	DB *gorm.DB
}

func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{DB: db}
}

// GetAllItems -> active menu items only
func (ic *ItemController) GetAllItems(c *gin.Context) {
	var items []models.MenuItem
	if err := ic.DB.Where("active = ?", true).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// CreateItem -> add a menu item (staff only)
func (ic *ItemController) CreateItem(c *gin.Context) {
	type reqBody struct {
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("price must be zero or positive"))
		return
	}

	item := models.MenuItem{
		Name:        body.Name,
		Price:       body.Price,
		Category:    body.Category,
		Description: body.Description,
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := ic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (%.2f)", item.Name, item.Price)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}
