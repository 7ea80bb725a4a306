package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/puravida-pos/pos-demo/models"
	"github.com/puravida-pos/pos-demo/utils"
)

// EODReport summarizes one calendar day of charge attempts.
type EODReport struct {
	BusinessDate string                `json:"business_date"`
	TotalsCRC    map[string]float64    `json:"totals_crc"`
	Transactions []models.ChargeResult `json:"transactions"`
}

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// EndOfDay aggregates all transactions whose timestamp falls inside the
// given local calendar day. dateStr is "", "today" or YYYY-MM-DD.
func (rs *ReportService) EndOfDay(dateStr string) (EODReport, error) {
	day, err := resolveBusinessDate(dateStr)
	if err != nil {
		return EODReport{}, err
	}

	start := day
	end := day.Add(24*time.Hour - time.Second) // 23:59:59 inclusive

	var txns []models.Transaction
	if err := rs.db.Where("created_at BETWEEN ? AND ?", start, end).Find(&txns).Error; err != nil {
		return EODReport{}, err
	}

	totals := map[string]float64{
		models.TxnStatusApproved: 0.00,
		models.TxnStatusDeclined: 0.00,
	}
	results := make([]models.ChargeResult, 0, len(txns))
	for i := range txns {
		totals[txns[i].Status] = utils.Round2(totals[txns[i].Status] + txns[i].Amount)
		results = append(results, txns[i].AsChargeResult())
	}

	return EODReport{
		BusinessDate: day.Format("2006-01-02"),
		TotalsCRC:    totals,
		Transactions: results,
	}, nil
}

// resolveBusinessDate returns local midnight of the requested day.
func resolveBusinessDate(dateStr string) (time.Time, error) {
	now := time.Now()
	if dateStr == "" || dateStr == "today" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return parsed, nil
}
