package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stockops/stockflow/internal/order/domain"
)

// orderNumberAttempts bounds the internal retry on order-number collisions.
const orderNumberAttempts = 3

type Service struct {
	log   *slog.Logger
	repo  OrderRepository
	carts CartSource
}

func NewService(log *slog.Logger, repo OrderRepository, carts CartSource) *Service {
	return &Service{log: log, repo: repo, carts: carts}
}

// Checkout converts the user's cart into an immutable order. The repository
// applies order insert, per-line stock decrement and cart clearing as a
// single transaction, so a failed line leaves everything untouched.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID, notes string) (domain.Order, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return domain.Order{}, err
	}
	if cart.Empty() {
		return domain.Order{}, domain.ErrEmptyCart
	}

	for range orderNumberAttempts {
		o := domain.NewOrder(userID, domain.NewOrderNumber(), cart, notes)
		err := s.repo.CreateFromCart(ctx, o, cart.ID)
		if errors.Is(err, domain.ErrOrderNumberTaken) {
			s.log.Warn("order number collision, regenerating", "order_number", o.OrderNumber)
			continue
		}
		if err != nil {
			return domain.Order{}, err
		}
		s.log.Info("order created", "order_id", o.ID, "order_number", o.OrderNumber, "total", o.TotalAmount)
		return o, nil
	}
	return domain.Order{}, domain.ErrOrderNumberCollision
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f domain.ListFilter) ([]domain.Order, error) {
	return s.repo.List(ctx, f)
}

// UpdateStatus moves an order to any status in the allowed set and records
// the acting staff member. The set is closed but jumps within it are
// permitted; the owning customer is notified of every change.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, actingStaff uuid.UUID) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, domain.ErrInvalidStatus
	}

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	payload, err := json.Marshal(domain.OrderStatusChanged{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Status:      status,
		StaffID:     &actingStaff,
	})
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status, actingStaff, domain.EventStatusChanged, payload); err != nil {
		return domain.Order{}, err
	}
	o.Status = status
	o.StaffID = &actingStaff
	return o, nil
}

// PaymentMethods lists the active payment methods from the seeded lookup.
func (s *Service) PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return s.repo.ListPaymentMethods(ctx)
}

// UpdatePaymentStatus is a one-step transition with no side effects.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, domain.ErrInvalidPaymentStatus
	}
	if err := s.repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return domain.Order{}, err
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}
