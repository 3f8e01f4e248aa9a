package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInsufficientStock rejects any decrement that would drive a product's
// on-hand quantity negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// EventLowStock is emitted when a decrement moves a product from above its
// low-stock threshold to at or below it.
const EventLowStock = "stock.low"

type LowStockCrossed struct {
	ProductID         uuid.UUID `json:"product_id"`
	ProductName       string    `json:"product_name"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
}

// Movement is the outcome of one ledger mutation on one product.
type Movement struct {
	ProductID         uuid.UUID
	ProductName       string
	Prior             int
	Post              int
	LowStockThreshold int
}

// CrossedLowStock reports whether this single movement took the product from
// above the threshold to at or below it. Repeated decrements while already
// low never report a crossing again.
func (m Movement) CrossedLowStock() bool {
	return m.Prior > m.LowStockThreshold && m.Post <= m.LowStockThreshold
}

func (m Movement) Event() LowStockCrossed {
	return LowStockCrossed{
		ProductID:         m.ProductID,
		ProductName:       m.ProductName,
		Quantity:          m.Post,
		LowStockThreshold: m.LowStockThreshold,
	}
}
