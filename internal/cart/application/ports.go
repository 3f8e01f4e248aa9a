package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockops/stockflow/internal/cart/domain"
	catalogdomain "github.com/stockops/stockflow/internal/catalog/domain"
)

type CartRepository interface {
	// GetByUser returns the user's materialized cart, creating an empty
	// one on first use.
	GetByUser(ctx context.Context, userID uuid.UUID) (domain.Cart, error)
	// UpsertItem appends a line or adds qty to an existing line for the
	// same product.
	UpsertItem(ctx context.Context, cartID, productID uuid.UUID, qty int) error
	// SetItemQuantity replaces a line's quantity; domain.ErrNotFound when
	// the line does not exist.
	SetItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, qty int) error
	// RemoveItem deletes a line; removing an absent line is a no-op.
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error
	// Clear deletes every line; clearing an empty cart is a no-op.
	Clear(ctx context.Context, cartID uuid.UUID) error
}

type ProductSource interface {
	Get(ctx context.Context, id uuid.UUID) (catalogdomain.Product, error)
}
