package models

import "time"

// Order statuses. Charging is the only transition exercised in the demo:
// OPEN -> PAID on an approved charge, declines leave the order OPEN.
const (
	OrderStatusOpen = "OPEN"
	OrderStatusPaid = "PAID"
	OrderStatusVoid = "VOID"
)

type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Table     string      `gorm:"type:varchar(50)" json:"table,omitempty"`
	Lines     []OrderLine `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal  float64     `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Tip       float64     `gorm:"type:decimal(12,2);not null;default:0.00" json:"tip"`
	Total     float64     `gorm:"type:decimal(12,2);not null" json:"total"`
	Status    string      `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}
