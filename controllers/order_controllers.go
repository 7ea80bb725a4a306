package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/puravida-pos/pos-demo/feed"
	"github.com/puravida-pos/pos-demo/models"
	"github.com/puravida-pos/pos-demo/services"
	"github.com/puravida-pos/pos-demo/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// CreateOrder -> open a tab with status OPEN. Prices are taken from the
// request as-is (demo scope); any invalid line rejects the whole order.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type LineReq struct {
		Name  string  `json:"name" binding:"required"`
		Qty   int     `json:"qty"`
		Price float64 `json:"price"`
	}

	type ReqBody struct {
		Table string    `json:"table"`
		Items []LineReq `json:"items" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if len(body.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("order needs at least one item"))
		return
	}

	var subtotal float64
	for _, line := range body.Items {
		if line.Qty <= 0 {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("item %q: qty must be greater than zero", line.Name))
			return
		}
		if line.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("item %q: price must be zero or positive", line.Name))
			return
		}
		subtotal += float64(line.Qty) * line.Price
	}
	subtotal = utils.Round2(subtotal)

	order := models.Order{
		Table:     body.Table,
		Subtotal:  subtotal,
		Tip:       0,
		Total:     subtotal,
		Status:    models.OrderStatusOpen,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Order and lines land together or not at all.
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, line := range body.Items {
			orderLine := models.OrderLine{
				OrderID:  order.ID,
				Name:     line.Name,
				Quantity: line.Qty,
				Price:    line.Price,
			}
			if err := tx.Create(&orderLine).Error; err != nil {
				return err
			}
			order.Lines = append(order.Lines, orderLine)
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order #%d opened (table=%q subtotal=%.2f)", order.ID, order.Table, order.Subtotal)
	feed.BroadcastOrderCreated(order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> one order with its lines
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Lines").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, services.ErrOrderNotFound)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}
