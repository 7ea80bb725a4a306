package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/puravida-pos/pos-demo/feed"
	"github.com/puravida-pos/pos-demo/services"
	"github.com/puravida-pos/pos-demo/utils"
)

type PaymentController struct {
	Charges *services.ChargeService
}

func NewPaymentController(charges *services.ChargeService) *PaymentController {
	return &PaymentController{Charges: charges}
}

// ChargeOrder -> run one charge attempt through the terminal. Declines are
// returned as normal results; the client may simply charge again.
func (pc *PaymentController) ChargeOrder(c *gin.Context) {
	type reqBody struct {
		OrderID uint    `json:"order_id" binding:"required"`
		Tip     float64 `json:"tip"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := pc.Charges.Charge(body.OrderID, body.Tip)
	if err != nil {
		var notOpen *services.OrderNotOpenError
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.As(err, &notOpen):
			utils.RespondError(c, http.StatusConflict, err)
		case errors.Is(err, services.ErrInvalidTip):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	feed.BroadcastChargeResult(result)

	utils.RespondJSON(c, http.StatusOK, "Charge processed", result)
}
