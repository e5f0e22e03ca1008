package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
		OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

const (
	OrderTypeDineIn   = "DINE_IN"
	OrderTypeTakeout  = "TAKEOUT"
	OrderTypeDelivery = "DELIVERY"
)

func ValidOrderType(t string) bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeout || t == OrderTypeDelivery
}

type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	OrderNumber  string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	UserID       uint        `gorm:"not null;index" json:"user_id"`
	User         User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderType    string      `gorm:"type:varchar(20);not null" json:"order_type"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	TotalAmount  float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	PickupTime   *time.Time  `json:"pickup_time,omitempty"`
	SpecialNotes string      `gorm:"type:text" json:"special_notes,omitempty"`
	OrderItems   []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
