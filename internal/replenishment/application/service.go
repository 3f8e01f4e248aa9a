package application

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stockops/stockflow/internal/replenishment/domain"
)

type Service struct {
	log  *slog.Logger
	repo RequestRepository
}

func NewService(log *slog.Logger, repo RequestRepository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) Submit(ctx context.Context, productID uuid.UUID, qty int, requestedBy uuid.UUID, notes string) (domain.RequestOrder, error) {
	r, err := domain.NewRequestOrder(productID, qty, requestedBy, notes)
	if err != nil {
		return domain.RequestOrder{}, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return domain.RequestOrder{}, err
	}
	s.log.Info("replenishment requested", "request_id", r.ID, "product_id", productID, "quantity", qty)
	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.RequestOrder, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f domain.ListFilter) ([]domain.RequestOrder, error) {
	return s.repo.List(ctx, f)
}

// AdminApprove records the first-stage decision. Only a rejection is a
// terminal outcome here, so only rejections notify the requester; an
// approval merely opens the warehouse stage.
func (s *Service) AdminApprove(ctx context.Context, id uuid.UUID, decision domain.ApprovalStatus, actingUser uuid.UUID) (domain.RequestOrder, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.RequestOrder{}, err
	}
	if err := r.DecideAdmin(decision); err != nil {
		return domain.RequestOrder{}, err
	}

	var eventType string
	var payload []byte
	if decision == domain.ApprovalRejected {
		eventType = domain.EventDecided
		payload, err = json.Marshal(s.decidedEvent(r, domain.StageAdmin, decision, actingUser))
		if err != nil {
			return domain.RequestOrder{}, err
		}
	}

	if err := s.repo.SetAdminDecision(ctx, id, decision, eventType, payload); err != nil {
		return domain.RequestOrder{}, err
	}
	s.log.Info("admin decision recorded", "request_id", id, "decision", decision, "decided_by", actingUser)
	return r, nil
}

// WarehouseApprove records the second-stage decision. An approval is the
// single path that increments the stock ledger; both outcomes notify the
// requester.
func (s *Service) WarehouseApprove(ctx context.Context, id uuid.UUID, decision domain.ApprovalStatus, actingUser uuid.UUID) (domain.RequestOrder, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.RequestOrder{}, err
	}
	if err := r.DecideWarehouse(decision); err != nil {
		return domain.RequestOrder{}, err
	}

	payload, err := json.Marshal(s.decidedEvent(r, domain.StageWarehouse, decision, actingUser))
	if err != nil {
		return domain.RequestOrder{}, err
	}

	if err := s.repo.SetWarehouseDecision(ctx, id, decision, domain.EventDecided, payload); err != nil {
		return domain.RequestOrder{}, err
	}
	s.log.Info("warehouse decision recorded", "request_id", id, "decision", decision, "decided_by", actingUser)
	return r, nil
}

func (s *Service) decidedEvent(r domain.RequestOrder, stage domain.Stage, decision domain.ApprovalStatus, decidedBy uuid.UUID) domain.ReplenishmentDecided {
	return domain.ReplenishmentDecided{
		RequestID:   r.ID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		RequestedBy: r.RequestedBy,
		Stage:       stage,
		Decision:    decision,
		DecidedBy:   decidedBy,
	}
}
