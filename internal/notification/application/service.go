package application

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stockops/stockflow/internal/notification/domain"
)

// Service is the read/ack side of in-app notifications.
type Service struct {
	log  *slog.Logger
	repo NotificationRepository
}

func NewService(log *slog.Logger, repo NotificationRepository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, false)
}

func (s *Service) Unread(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, true)
}

func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}
