package application

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stockops/stockflow/internal/cart/domain"
)

type Service struct {
	log      *slog.Logger
	repo     CartRepository
	products ProductSource
}

func NewService(log *slog.Logger, repo CartRepository, products ProductSource) *Service {
	return &Service{log: log, repo: repo, products: products}
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *Service) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (domain.Cart, error) {
	if qty <= 0 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := s.repo.UpsertItem(ctx, cart.ID, productID, qty); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.GetByUser(ctx, userID)
}

func (s *Service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, qty int) (domain.Cart, error) {
	if qty <= 0 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := s.repo.SetItemQuantity(ctx, cart.ID, itemID, qty); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.GetByUser(ctx, userID)
}

func (s *Service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, cart.ID, itemID)
}

func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Clear(ctx, cart.ID)
}
