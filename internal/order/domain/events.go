package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventCreated       = "order.created"
	EventStatusChanged = "order.status_changed"
)

type OrderCreated struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      uuid.UUID       `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type OrderStatusChanged struct {
	OrderID     uuid.UUID  `json:"order_id"`
	OrderNumber string     `json:"order_number"`
	UserID      uuid.UUID  `json:"user_id"`
	Status      Status     `json:"status"`
	StaffID     *uuid.UUID `json:"staff_id,omitempty"`
}
