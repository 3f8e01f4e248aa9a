package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockops/stockflow/internal/replenishment/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, r domain.RequestOrder) error
	Get(ctx context.Context, id uuid.UUID) (domain.RequestOrder, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.RequestOrder, error)
	// SetAdminDecision flips the admin stage from Pending, guarded in SQL
	// so concurrent decisions cannot both win. A non-empty eventType is
	// queued in the same transaction.
	SetAdminDecision(ctx context.Context, id uuid.UUID, decision domain.ApprovalStatus, eventType string, payload []byte) error
	// SetWarehouseDecision flips the warehouse stage from Pending once the
	// admin stage approved; on approval it increments the stock ledger in
	// the same transaction, exactly once.
	SetWarehouseDecision(ctx context.Context, id uuid.UUID, decision domain.ApprovalStatus, eventType string, payload []byte) error
}
