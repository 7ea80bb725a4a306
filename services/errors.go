package services

import (
	"errors"
	"fmt"
)

// Plumbing errors surfaced to the web layer. A declined terminal outcome is
// not an error, it is a recorded result.
var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrNoTransactions = errors.New("no transactions for this order")
	ErrInvalidTip     = errors.New("tip must be zero or positive")
	ErrBadDate        = errors.New("use YYYY-MM-DD or 'today'")
)

// OrderNotOpenError rejects a charge against an order that already left the
// OPEN state. The current status is part of the message.
type OrderNotOpenError struct {
	Status string
}

func (e *OrderNotOpenError) Error() string {
	return fmt.Sprintf("order status is %s", e.Status)
}
