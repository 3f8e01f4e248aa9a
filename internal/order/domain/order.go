package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartdomain "github.com/stockops/stockflow/internal/cart/domain"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNotFound             = errors.New("order not found")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	// ErrOrderNumberTaken is the transient per-attempt collision; the
	// service retries generation before giving up with
	// ErrOrderNumberCollision.
	ErrOrderNumberTaken     = errors.New("order number already taken")
	ErrOrderNumberCollision = errors.New("could not generate a unique order number")
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusApproved   Status = "Approved"
	StatusRejected   Status = "Rejected"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// PaymentStatus transitions independently of the fulfillment status.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// Order is created once at checkout. Order number, owner, total and items
// are immutable from then on; only the two statuses and the assigned staff
// member change.
type Order struct {
	ID            uuid.UUID
	OrderNumber   string
	UserID        uuid.UUID
	StaffID       *uuid.UUID
	TotalAmount   decimal.Decimal
	Status        Status
	PaymentStatus PaymentStatus
	Notes         string
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem freezes the product id, name and unit price at purchase time.
// Later catalog changes never touch it.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// NewOrder snapshots a materialized cart into a pending order. The total is
// folded from the snapshotted lines, so it equals the cart total at this
// moment and stays fixed afterwards.
func NewOrder(userID uuid.UUID, orderNumber string, cart cartdomain.Cart, notes string) Order {
	id := uuid.New()
	items := make([]OrderItem, 0, len(cart.Items))
	total := decimal.Zero
	for _, line := range cart.Items {
		items = append(items, OrderItem{
			ID:          uuid.New(),
			OrderID:     id,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	now := time.Now().UTC()
	return Order{
		ID:            id,
		OrderNumber:   orderNumber,
		UserID:        userID,
		TotalAmount:   total,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		Notes:         notes,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ListFilter narrows order listings. Zero values mean "no constraint".
type ListFilter struct {
	UserID      uuid.UUID
	OrderNumber string
	From        time.Time
	To          time.Time
}
