package models

import "time"

// Transaction statuses as reported by the terminal.
const (
	TxnStatusApproved = "approved"
	TxnStatusDeclined = "declined"
	TxnStatusReversed = "reversed"
)

// Transaction is one charge attempt against an order. It is written once
// and never updated; a retried charge produces a fresh row. Only masked
// card data is ever stored here.
type Transaction struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"not null;index" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID" json:"-"`

	Amount   float64 `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency string  `gorm:"type:varchar(3);not null;default:'CRC'" json:"currency"`

	Status     string `gorm:"type:varchar(20);not null" json:"status"`
	AuthCode   string `gorm:"type:varchar(20)" json:"auth_code,omitempty"`
	MaskedCard string `gorm:"type:varchar(30)" json:"masked_card,omitempty"`

	TerminalRef  string            `gorm:"type:varchar(100)" json:"terminal_ref,omitempty"`
	TerminalMeta map[string]string `gorm:"serializer:json" json:"terminal_meta,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// ChargeResult is the wire shape returned by the charge endpoint and
// embedded in end-of-day reports.
type ChargeResult struct {
	OrderID     uint    `json:"order_id"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	AuthCode    string  `json:"auth_code,omitempty"`
	MaskedCard  string  `json:"masked_card,omitempty"`
	TerminalRef string  `json:"terminal_ref,omitempty"`
}

// AsChargeResult projects the non-sensitive transaction fields for clients.
func (t *Transaction) AsChargeResult() ChargeResult {
	return ChargeResult{
		OrderID:     t.OrderID,
		Amount:      t.Amount,
		Status:      t.Status,
		AuthCode:    t.AuthCode,
		MaskedCard:  t.MaskedCard,
		TerminalRef: t.TerminalRef,
	}
}
