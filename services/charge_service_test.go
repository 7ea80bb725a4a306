package services

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/puravida-pos/pos-demo/models"
	"github.com/puravida-pos/pos-demo/terminal"
	"github.com/puravida-pos/pos-demo/utils"
)

func setupChargeTestDB(t *testing.T) *gorm.DB {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderLine{}, &models.Transaction{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedOpenOrder(t *testing.T, db *gorm.DB) models.Order {
	order := models.Order{
		Table:    "T1",
		Subtotal: 9100,
		Tip:      0,
		Total:    9100,
		Status:   models.OrderStatusOpen,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	lines := []models.OrderLine{
		{OrderID: order.ID, Name: "Casado", Quantity: 1, Price: 5500},
		{OrderID: order.ID, Name: "Cerveza Imperial", Quantity: 2, Price: 1800},
	}
	if err := db.Create(&lines).Error; err != nil {
		t.Fatalf("failed to seed lines: %v", err)
	}
	return order
}

func alwaysApproveTerminal() *terminal.Simulator {
	sim := terminal.NewSeededSimulator(rand.NewSource(1), time.Now)
	sim.ApproveRate = 1.0
	return sim
}

func alwaysDeclineTerminal() *terminal.Simulator {
	sim := terminal.NewSeededSimulator(rand.NewSource(1), time.Now)
	sim.ApproveRate = 0.0
	return sim
}

func TestChargeApprovedMarksOrderPaid(t *testing.T) {
	db := setupChargeTestDB(t)
	order := seedOpenOrder(t, db)
	cs := NewChargeService(db, alwaysApproveTerminal())

	result, err := cs.Charge(order.ID, 500)
	assert.NoError(t, err)
	assert.Equal(t, models.TxnStatusApproved, result.Status)
	assert.Equal(t, 9600.0, result.Amount)
	assert.NotEmpty(t, result.AuthCode)
	assert.NotEmpty(t, result.MaskedCard)

	var updated models.Order
	assert.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, updated.Status)
	assert.Equal(t, 500.0, updated.Tip)
	assert.Equal(t, 9600.0, updated.Total)

	var txns []models.Transaction
	assert.NoError(t, db.Where("order_id = ?", order.ID).Find(&txns).Error)
	assert.Len(t, txns, 1)
	assert.Equal(t, 9600.0, txns[0].Amount)
	assert.Equal(t, "CRC", txns[0].Currency)
}

func TestChargePaidOrderConflicts(t *testing.T) {
	db := setupChargeTestDB(t)
	order := seedOpenOrder(t, db)
	cs := NewChargeService(db, alwaysApproveTerminal())

	_, err := cs.Charge(order.ID, 500)
	assert.NoError(t, err)

	_, err = cs.Charge(order.ID, 0)
	var notOpen *OrderNotOpenError
	assert.ErrorAs(t, err, &notOpen)
	assert.Contains(t, err.Error(), models.OrderStatusPaid)
}

func TestChargeDeclinedLeavesOrderOpenAndRetriable(t *testing.T) {
	db := setupChargeTestDB(t)
	order := seedOpenOrder(t, db)
	cs := NewChargeService(db, alwaysDeclineTerminal())

	result, err := cs.Charge(order.ID, 500)
	assert.NoError(t, err)
	assert.Equal(t, models.TxnStatusDeclined, result.Status)
	assert.Equal(t, 9600.0, result.Amount)

	var updated models.Order
	assert.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderStatusOpen, updated.Status)

	// Retry with no tip produces a second transaction at the new total.
	result, err = cs.Charge(order.ID, 0)
	assert.NoError(t, err)
	assert.Equal(t, 9100.0, result.Amount)

	var txns []models.Transaction
	assert.NoError(t, db.Where("order_id = ?", order.ID).Find(&txns).Error)
	assert.Len(t, txns, 2)
}

func TestChargeMissingOrder(t *testing.T) {
	db := setupChargeTestDB(t)
	cs := NewChargeService(db, alwaysApproveTerminal())

	_, err := cs.Charge(9999, 0)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

// slowTerminal delays every authorization, standing in for a stalled
// terminal link.
type slowTerminal struct {
	delay time.Duration
	inner *terminal.Simulator
}

func (s *slowTerminal) Charge(amount float64, invoiceRef string) terminal.Outcome {
	time.Sleep(s.delay)
	return s.inner.Charge(amount, invoiceRef)
}

func TestChargeTerminalTimeoutRecordedAsDeclined(t *testing.T) {
	db := setupChargeTestDB(t)
	order := seedOpenOrder(t, db)

	cs := NewChargeService(db, &slowTerminal{
		delay: 200 * time.Millisecond,
		inner: alwaysApproveTerminal(),
	})
	cs.Timeout = 20 * time.Millisecond

	result, err := cs.Charge(order.ID, 500)
	assert.NoError(t, err)
	assert.Equal(t, models.TxnStatusDeclined, result.Status)
	assert.Equal(t, 9600.0, result.Amount)

	// The attempt is recorded as declined with the timeout reason and the
	// order stays OPEN instead of hanging in limbo.
	var txn models.Transaction
	assert.NoError(t, db.Where("order_id = ?", order.ID).First(&txn).Error)
	assert.Equal(t, models.TxnStatusDeclined, txn.Status)
	assert.Equal(t, terminal.ReasonTimeout, txn.TerminalMeta["reason"])

	var updated models.Order
	assert.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderStatusOpen, updated.Status)
	assert.Equal(t, 9600.0, updated.Total)
}

func TestConcurrentChargesOnlyOneSucceeds(t *testing.T) {
	db := setupChargeTestDB(t)
	order := seedOpenOrder(t, db)
	cs := NewChargeService(db, alwaysApproveTerminal())

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cs.Charge(order.ID, 0)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var approved, conflicts int
	for err := range errs {
		if err == nil {
			approved++
			continue
		}
		var notOpen *OrderNotOpenError
		assert.ErrorAs(t, err, &notOpen)
		conflicts++
	}
	assert.Equal(t, 1, approved)
	assert.Equal(t, 1, conflicts)

	var updated models.Order
	assert.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, updated.Status)

	// Exactly one approval was recorded; the loser never reached the terminal.
	var count int64
	db.Model(&models.Transaction{}).
		Where("order_id = ? AND status = ?", order.ID, models.TxnStatusApproved).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestChargeNegativeTipRejected(t *testing.T) {
	db := setupChargeTestDB(t)
	order := seedOpenOrder(t, db)
	cs := NewChargeService(db, alwaysApproveTerminal())

	_, err := cs.Charge(order.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidTip)

	// Nothing was recorded for the failed validation.
	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.Zero(t, count)
}
