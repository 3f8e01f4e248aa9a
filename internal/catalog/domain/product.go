package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrInvalidProduct = errors.New("invalid product")
)

type Product struct {
	ID                uuid.UUID
	Name              string
	Description       string
	Price             decimal.Decimal
	Quantity          int
	LowStockThreshold int
	Image             string
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LowStock reports whether the product sits at or below its threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

// Validate enforces the catalog invariants shared by create and update.
func (p Product) Validate() error {
	switch {
	case p.Name == "":
		return errors.Join(ErrInvalidProduct, errors.New("name is required"))
	case p.Price.IsNegative():
		return errors.Join(ErrInvalidProduct, errors.New("price must not be negative"))
	case p.Quantity < 0:
		return errors.Join(ErrInvalidProduct, errors.New("quantity must not be negative"))
	case p.LowStockThreshold < 1:
		return errors.Join(ErrInvalidProduct, errors.New("low stock threshold must be positive"))
	}
	return nil
}
