package models

// OrderLine is a denormalized copy of a menu item at order time. Menu price
// changes never touch an already recorded line.
type OrderLine struct {
	ID      uint `gorm:"primaryKey" json:"-"`
	OrderID uint `gorm:"not null;index" json:"-"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order    Order   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Quantity int     `gorm:"not null" json:"qty"`
	Price    float64 `gorm:"type:decimal(12,2);not null" json:"price"`
}
