package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockops/stockflow/internal/catalog/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, p domain.Product) error
	// Update persists the product and, when eventType is non-empty, queues
	// the event in the same transaction.
	Update(ctx context.Context, p domain.Product, eventType string, payload []byte) error
	Get(ctx context.Context, id uuid.UUID) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListLowStock(ctx context.Context) ([]domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
