package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validProduct() Product {
	return Product{
		Name:              "widget",
		Price:             decimal.RequireFromString("9.99"),
		Quantity:          10,
		LowStockThreshold: 3,
		Active:            true,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validProduct().Validate())

	tests := []struct {
		name   string
		mutate func(*Product)
	}{
		{"missing name", func(p *Product) { p.Name = "" }},
		{"negative price", func(p *Product) { p.Price = decimal.RequireFromString("-1") }},
		{"negative quantity", func(p *Product) { p.Quantity = -1 }},
		{"zero threshold", func(p *Product) { p.LowStockThreshold = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)
			err := p.Validate()
			require.True(t, errors.Is(err, ErrInvalidProduct), "got %v", err)
		})
	}
}

func TestLowStock(t *testing.T) {
	p := validProduct()
	require.False(t, p.LowStock())

	p.Quantity = 3
	require.True(t, p.LowStock())
	p.Quantity = 0
	require.True(t, p.LowStock())
}
