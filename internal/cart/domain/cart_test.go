package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCartTotal(t *testing.T) {
	c := Cart{Items: []CartItem{
		{ProductName: "widget", UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2},
		{ProductName: "gadget", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 1},
	}}

	require.True(t, c.Total().Equal(decimal.RequireFromString("25.00")))
}

func TestCartTotalEmpty(t *testing.T) {
	var c Cart
	require.True(t, c.Empty())
	require.True(t, c.Total().IsZero())
}
