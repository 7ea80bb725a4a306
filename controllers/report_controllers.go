package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/puravida-pos/pos-demo/services"
	"github.com/puravida-pos/pos-demo/utils"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// EndOfDay -> totals per status plus the day's transactions.
// ?date_str=YYYY-MM-DD or "today" (default).
func (rc *ReportController) EndOfDay(c *gin.Context) {
	report, err := rc.Reports.EndOfDay(c.Query("date_str"))
	if err != nil {
		if errors.Is(err, services.ErrBadDate) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "End of day report", report)
}
