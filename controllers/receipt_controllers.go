package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/puravida-pos/pos-demo/config"
	"github.com/puravida-pos/pos-demo/models"
	"github.com/puravida-pos/pos-demo/services"
	"github.com/puravida-pos/pos-demo/utils"
)

type ReceiptController struct {
	DB *gorm.DB
}

func NewReceiptController(db *gorm.DB) *ReceiptController {
	return &ReceiptController{DB: db}
}

// GetReceipt renders a receipt from an order plus its most recent charge
// attempt. An order that never saw the terminal has no receipt.
func (rc *ReceiptController) GetReceipt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid order id"))
		return
	}

	var order models.Order
	if err := rc.DB.Preload("Lines").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, services.ErrOrderNotFound)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var lastTxn models.Transaction
	if err := rc.DB.Where("order_id = ?", order.ID).
		Order("created_at DESC").
		First(&lastTxn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, services.ErrNoTransactions)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	receipt := models.Receipt{
		Number: fmt.Sprintf("RCP/%s/%s", time.Now().Format("20060102"), uuid.NewString()[:8]),
		Merchant: models.ReceiptMerchant{
			Name:    config.MerchantName(),
			Address: config.MerchantAddress(),
		},
		Order: models.ReceiptOrder{
			ID:             order.ID,
			Date:           order.CreatedAt.Format(time.RFC3339),
			Table:          order.Table,
			Items:          order.Lines,
			Subtotal:       utils.Round2(order.Subtotal),
			Tip:            utils.Round2(order.Tip),
			Total:          utils.Round2(order.Total),
			TotalFormatted: utils.FormatCurrencyCRC(order.Total),
		},
		Payment: models.ReceiptPayment{
			Status:      lastTxn.Status,
			AuthCode:    lastTxn.AuthCode,
			MaskedCard:  lastTxn.MaskedCard,
			TerminalRef: lastTxn.TerminalRef,
			Time:        lastTxn.CreatedAt.Format(time.RFC3339),
		},
	}

	utils.RespondJSON(c, http.StatusOK, "Receipt", receipt)
}
