package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCrossedLowStock(t *testing.T) {
	tests := []struct {
		name      string
		prior     int
		post      int
		threshold int
		want      bool
	}{
		{"well above stays above", 10, 8, 3, false},
		{"crosses onto the threshold", 5, 3, 3, true},
		{"crosses below the threshold", 5, 2, 3, true},
		{"already at threshold goes lower", 3, 1, 3, false},
		{"already below goes lower", 2, 0, 3, false},
		{"drains to zero from above", 4, 0, 3, true},
		{"increment back above is not a crossing", 2, 6, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Movement{Prior: tt.prior, Post: tt.post, LowStockThreshold: tt.threshold}
			require.Equal(t, tt.want, m.CrossedLowStock())
		})
	}
}

func TestMovementEvent(t *testing.T) {
	id := uuid.New()
	m := Movement{
		ProductID:         id,
		ProductName:       "widget",
		Prior:             5,
		Post:              2,
		LowStockThreshold: 3,
	}

	ev := m.Event()
	require.Equal(t, id, ev.ProductID)
	require.Equal(t, "widget", ev.ProductName)
	require.Equal(t, 2, ev.Quantity)
	require.Equal(t, 3, ev.LowStockThreshold)
}
