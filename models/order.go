package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusCancelled = "Cancelled"
)

// OrderStatuses lists every status an order may hold. Any status can move to any other.
var OrderStatuses = []string{OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled}

// IsValidOrderStatus reports whether status is one of OrderStatuses (exact match)
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"index;not null" json:"user_id"`
	Owner      *PublicUser `gorm:"-" json:"user,omitempty"`
	TotalPrice float64     `json:"total_price"`
	Status     string      `gorm:"not null;default:Pending" json:"status"`
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Items      []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem is a line item. BookID is a weak reference: the book may be deleted
// later and the item keeps pointing at it.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index;not null" json:"-"`
	BookID    uint    `gorm:"not null" json:"book_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Book      *Book   `gorm:"-" json:"book"`
}
