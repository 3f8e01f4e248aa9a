package domain

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/stockops/stockflow/internal/cart/domain"
)

func TestNewOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-[A-Z0-9]{10}$`)
	seen := make(map[string]bool)
	for range 100 {
		n := NewOrderNumber()
		require.Regexp(t, pattern, n)
		seen[n] = true
	}
	// Collisions over 100 draws from a 36^10 space would point at a broken
	// generator rather than bad luck.
	require.Len(t, seen, 100)
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected, StatusProcessing, StatusShipped, StatusDelivered} {
		require.True(t, s.Valid(), string(s))
	}
	require.False(t, Status("Cancelled").Valid())
	require.False(t, Status("").Valid())
}

func TestPaymentStatusValid(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed} {
		require.True(t, s.Valid(), string(s))
	}
	require.False(t, PaymentStatus("Refunded").Valid())
}

func TestNewOrderSnapshotsCart(t *testing.T) {
	userID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()
	cart := cartdomain.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []cartdomain.CartItem{
			{ID: uuid.New(), ProductID: productA, ProductName: "widget", UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2},
			{ID: uuid.New(), ProductID: productB, ProductName: "gadget", UnitPrice: decimal.RequireFromString("5.50"), Quantity: 3},
		},
	}

	o := NewOrder(userID, "ORD-ABCDEFGH12", cart, "leave at door")

	require.Equal(t, userID, o.UserID)
	require.Equal(t, "ORD-ABCDEFGH12", o.OrderNumber)
	require.Equal(t, StatusPending, o.Status)
	require.Equal(t, PaymentPending, o.PaymentStatus)
	require.Nil(t, o.StaffID)
	require.Len(t, o.Items, 2)

	for i, it := range o.Items {
		require.Equal(t, o.ID, it.OrderID)
		require.Equal(t, cart.Items[i].ProductID, it.ProductID)
		require.Equal(t, cart.Items[i].ProductName, it.ProductName)
		require.True(t, it.UnitPrice.Equal(cart.Items[i].UnitPrice))
		require.Equal(t, cart.Items[i].Quantity, it.Quantity)
	}

	// 2 * 10.00 + 3 * 5.50
	require.True(t, o.TotalAmount.Equal(decimal.RequireFromString("36.50")))
	require.True(t, o.TotalAmount.Equal(cart.Total()))
}
