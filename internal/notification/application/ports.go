package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockops/stockflow/internal/identity"
	"github.com/stockops/stockflow/internal/notification/domain"
)

type NotificationRepository interface {
	Insert(ctx context.Context, n domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, onlyUnread bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type UserDirectory interface {
	ListByRole(ctx context.Context, role identity.Role) ([]identity.User, error)
}
