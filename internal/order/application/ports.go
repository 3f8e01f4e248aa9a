package application

import (
	"context"

	"github.com/google/uuid"

	cartdomain "github.com/stockops/stockflow/internal/cart/domain"
	"github.com/stockops/stockflow/internal/order/domain"
)

type OrderRepository interface {
	// CreateFromCart persists the order, decrements stock per line and
	// clears the cart in one all-or-nothing transaction. It returns
	// domain.ErrOrderNumberTaken on an order-number conflict and
	// stock/domain.ErrInsufficientStock when any line exceeds the
	// available quantity.
	CreateFromCart(ctx context.Context, o domain.Order, cartID uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (domain.Order, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Order, error)
	// UpdateStatus writes the new status and staff assignment, queueing
	// the event in the same transaction.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, staffID uuid.UUID, eventType string, payload []byte) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error
	// ListPaymentMethods returns the active methods from the seeded lookup.
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
}

type CartSource interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (cartdomain.Cart, error)
}
