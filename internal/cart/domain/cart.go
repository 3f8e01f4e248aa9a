package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNotFound        = errors.New("cart item not found")
)

// Cart is always handled fully materialized: items carry the product name
// and the catalog's current unit price so the total never needs a second
// fetch and never drifts from the catalog until checkout snapshots it.
type Cart struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Items  []CartItem
}

type CartItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	AddedAt     time.Time
}

// Total folds the line items into a fixed-point sum. It is recomputed on
// every read and never persisted.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func (c Cart) Empty() bool {
	return len(c.Items) == 0
}
