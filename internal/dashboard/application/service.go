package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	defaultWindow = 30 * 24 * time.Hour
	recentLimit   = 10
	topLimit      = 5
)

type Service struct {
	log  *slog.Logger
	repo Repository
}

func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo}
}

// normalize fills in the default reporting window, the last 30 days,
// for whichever bound the caller left zero.
func normalize(r DateRange) DateRange {
	now := time.Now().UTC()
	if r.To.IsZero() {
		r.To = now
	}
	if r.From.IsZero() {
		r.From = r.To.Add(-defaultWindow)
	}
	return r
}

func (s *Service) Admin(ctx context.Context, r DateRange) (AdminDashboard, error) {
	r = normalize(r)

	income, err := s.repo.TotalIncome(ctx, r)
	if err != nil {
		return AdminDashboard{}, err
	}
	byStatus, err := s.repo.OrdersByStatus(ctx, r)
	if err != nil {
		return AdminDashboard{}, err
	}
	recent, err := s.repo.RecentOrders(ctx, r, recentLimit)
	if err != nil {
		return AdminDashboard{}, err
	}
	lowStock, err := s.repo.LowStockProducts(ctx, recentLimit)
	if err != nil {
		return AdminDashboard{}, err
	}
	pending, err := s.repo.PendingAdminRequests(ctx, recentLimit)
	if err != nil {
		return AdminDashboard{}, err
	}
	sellers, err := s.repo.TopSellers(ctx, r, topLimit)
	if err != nil {
		return AdminDashboard{}, err
	}
	customers, err := s.repo.CustomerCount(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	return AdminDashboard{
		TotalIncome:          income,
		OrdersByStatus:       byStatus,
		RecentOrders:         recent,
		LowStockProducts:     lowStock,
		PendingAdminRequests: pending,
		TopSellers:           sellers,
		CustomerCount:        customers,
	}, nil
}

func (s *Service) Warehouse(ctx context.Context) (WarehouseDashboard, error) {
	pending, err := s.repo.PendingWarehouseRequests(ctx, recentLimit)
	if err != nil {
		return WarehouseDashboard{}, err
	}
	lowStock, err := s.repo.LowStockProducts(ctx, recentLimit)
	if err != nil {
		return WarehouseDashboard{}, err
	}
	approved, err := s.repo.RecentApprovedRequests(ctx, recentLimit)
	if err != nil {
		return WarehouseDashboard{}, err
	}
	inv, err := s.repo.InventorySummary(ctx)
	if err != nil {
		return WarehouseDashboard{}, err
	}

	return WarehouseDashboard{
		PendingApprovals: pending,
		LowStockProducts: lowStock,
		RecentApproved:   approved,
		Inventory:        inv,
	}, nil
}

func (s *Service) Staff(ctx context.Context, staffID uuid.UUID) (StaffDashboard, error) {
	pending, err := s.repo.OrdersWithStatus(ctx, "Pending", recentLimit)
	if err != nil {
		return StaffDashboard{}, err
	}
	processed, err := s.repo.OrdersProcessedBy(ctx, staffID, recentLimit)
	if err != nil {
		return StaffDashboard{}, err
	}
	return StaffDashboard{PendingOrders: pending, ProcessedOrders: processed}, nil
}

func (s *Service) Customer(ctx context.Context, userID uuid.UUID) (CustomerDashboard, error) {
	recent, err := s.repo.OrdersForUser(ctx, userID, recentLimit)
	if err != nil {
		return CustomerDashboard{}, err
	}
	cart, err := s.repo.CartSummary(ctx, userID)
	if err != nil {
		return CustomerDashboard{}, err
	}
	return CustomerDashboard{RecentOrders: recent, Cart: cart}, nil
}
