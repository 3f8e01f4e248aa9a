package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockops/stockflow/internal/catalog/domain"
	stockdomain "github.com/stockops/stockflow/internal/stock/domain"
)

type Service struct {
	log  *slog.Logger
	repo ProductRepository
}

func NewService(log *slog.Logger, repo ProductRepository) *Service {
	return &Service{log: log, repo: repo}
}

type NewProduct struct {
	Name              string
	Description       string
	Price             decimal.Decimal
	Quantity          int
	LowStockThreshold int
	Image             string
	Active            bool
}

// ProductUpdate carries a partial update; nil fields keep their value.
type ProductUpdate struct {
	Name              *string
	Description       *string
	Price             *decimal.Decimal
	Quantity          *int
	LowStockThreshold *int
	Image             *string
	Active            *bool
}

func (s *Service) Create(ctx context.Context, in NewProduct) (domain.Product, error) {
	now := time.Now().UTC()
	p := domain.Product{
		ID:                uuid.New(),
		Name:              in.Name,
		Description:       in.Description,
		Price:             in.Price,
		Quantity:          in.Quantity,
		LowStockThreshold: in.LowStockThreshold,
		Image:             in.Image,
		Active:            in.Active,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, upd ProductUpdate) (domain.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Quantity != nil {
		p.Quantity = *upd.Quantity
	}
	if upd.LowStockThreshold != nil {
		p.LowStockThreshold = *upd.LowStockThreshold
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	if upd.Active != nil {
		p.Active = *upd.Active
	}
	p.UpdatedAt = time.Now().UTC()

	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}

	// An administrative quantity change that lands at or below the
	// threshold alerts admins the same way a checkout decrement does.
	var eventType string
	var payload []byte
	if upd.Quantity != nil && p.LowStock() {
		eventType = stockdomain.EventLowStock
		payload, err = json.Marshal(stockdomain.LowStockCrossed{
			ProductID:         p.ID,
			ProductName:       p.Name,
			Quantity:          p.Quantity,
			LowStockThreshold: p.LowStockThreshold,
		})
		if err != nil {
			return domain.Product{}, err
		}
	}

	if err := s.repo.Update(ctx, p, eventType, payload); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListLowStock(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
