package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/puravida-pos/pos-demo/models"
	"github.com/puravida-pos/pos-demo/terminal"
	"github.com/puravida-pos/pos-demo/utils"
)

// Charger is the terminal boundary: an amount and an invoice reference go
// in, an outcome comes out. *terminal.Simulator satisfies it.
type Charger interface {
	Charge(amount float64, invoiceRef string) terminal.Outcome
}

// ChargeService drives the order payment state machine:
// OPEN --charge(approved)--> PAID, OPEN --charge(declined)--> OPEN.
// Every attempt, approved or declined, leaves a Transaction row behind.
type ChargeService struct {
	// Timeout bounds the terminal call; a timed-out call is recorded as
	// declined with reason "timeout" rather than leaving the order in limbo.
	Timeout time.Duration

	db   *gorm.DB
	term Charger

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewChargeService(db *gorm.DB, term Charger) *ChargeService {
	return &ChargeService{
		Timeout: 3 * time.Second,
		db:      db,
		term:    term,
		locks:   make(map[uint]*sync.Mutex),
	}
}

// orderLock serializes charge attempts per order within this process.
func (cs *ChargeService) orderLock(orderID uint) *sync.Mutex {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	lock, ok := cs.locks[orderID]
	if !ok {
		lock = &sync.Mutex{}
		cs.locks[orderID] = lock
	}
	return lock
}

// Charge runs one charge attempt against an OPEN order. The tip is applied
// and persisted before the terminal sees the amount, so a crash mid-charge
// never leaves a stale total behind.
func (cs *ChargeService) Charge(orderID uint, tip float64) (models.ChargeResult, error) {
	if tip < 0 {
		return models.ChargeResult{}, ErrInvalidTip
	}

	lock := cs.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	var order models.Order
	if err := cs.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ChargeResult{}, ErrOrderNotFound
		}
		return models.ChargeResult{}, err
	}

	if order.Status != models.OrderStatusOpen {
		return models.ChargeResult{}, &OrderNotOpenError{Status: order.Status}
	}

	order.Tip = utils.Round2(tip)
	order.Total = utils.Round2(order.Subtotal + order.Tip)
	if err := cs.db.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{"tip": order.Tip, "total": order.Total}).Error; err != nil {
		return models.ChargeResult{}, err
	}

	outcome := cs.chargeTerminal(order.Total, fmt.Sprint(order.ID))

	txn := models.Transaction{
		OrderID:      order.ID,
		Amount:       order.Total,
		Currency:     "CRC",
		Status:       outcome.Status,
		AuthCode:     outcome.AuthCode,
		MaskedCard:   outcome.MaskedCard,
		TerminalRef:  outcome.TerminalRef,
		TerminalMeta: outcome.Meta,
	}

	err := cs.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		if outcome.Status == models.TxnStatusApproved {
			// Conditional update: if another writer already flipped the
			// status, roll the whole attempt back and report the conflict.
			res := tx.Model(&models.Order{}).
				Where("id = ? AND status = ?", order.ID, models.OrderStatusOpen).
				Update("status", models.OrderStatusPaid)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &OrderNotOpenError{Status: models.OrderStatusPaid}
			}
		}
		return nil
	})
	if err != nil {
		return models.ChargeResult{}, err
	}

	utils.InfoLogger.Printf("Charge on order #%d: %s (amount=%.2f ref=%s)",
		order.ID, outcome.Status, order.Total, outcome.TerminalRef)

	return txn.AsChargeResult(), nil
}

// chargeTerminal invokes the terminal, bounded by Timeout.
func (cs *ChargeService) chargeTerminal(amount float64, invoiceRef string) terminal.Outcome {
	done := make(chan terminal.Outcome, 1)
	go func() {
		done <- cs.term.Charge(amount, invoiceRef)
	}()

	select {
	case out := <-done:
		return out
	case <-time.After(cs.Timeout):
		utils.ErrorLogger.Printf("Terminal timed out charging invoice %s", invoiceRef)
		return terminal.Outcome{
			Status:      models.TxnStatusDeclined,
			TerminalRef: fmt.Sprintf("T-%s-%d-timeout", invoiceRef, time.Now().Unix()),
			Meta:        map[string]string{"reason": terminal.ReasonTimeout},
		}
	}
}
