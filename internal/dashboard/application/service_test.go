package application

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeDashboardRepo struct {
	incomeRange DateRange
	statusArg   string
	staffArg    uuid.UUID
	userArg     uuid.UUID
}

func (f *fakeDashboardRepo) TotalIncome(ctx context.Context, r DateRange) (decimal.Decimal, error) {
	f.incomeRange = r
	return decimal.RequireFromString("150.00"), nil
}

func (f *fakeDashboardRepo) OrdersByStatus(ctx context.Context, r DateRange) (map[string]int, error) {
	return map[string]int{"Pending": 2, "Delivered": 5}, nil
}

func (f *fakeDashboardRepo) RecentOrders(ctx context.Context, r DateRange, limit int) ([]OrderSummary, error) {
	return []OrderSummary{{OrderNumber: "ORD-ABCDEFGH12"}}, nil
}

func (f *fakeDashboardRepo) TopSellers(ctx context.Context, r DateRange, limit int) ([]TopSeller, error) {
	return []TopSeller{{ProductName: "widget", UnitsSold: 9}}, nil
}

func (f *fakeDashboardRepo) CustomerCount(ctx context.Context) (int, error) { return 42, nil }

func (f *fakeDashboardRepo) LowStockProducts(ctx context.Context, limit int) ([]ProductSummary, error) {
	return []ProductSummary{{Name: "widget", Quantity: 1, LowStockThreshold: 3}}, nil
}

func (f *fakeDashboardRepo) InventorySummary(ctx context.Context) (InventorySummary, error) {
	return InventorySummary{TotalProducts: 10, TotalUnits: 120, LowStock: 2, OutOfStock: 1}, nil
}

func (f *fakeDashboardRepo) PendingAdminRequests(ctx context.Context, limit int) ([]RequestSummary, error) {
	return []RequestSummary{{Quantity: 25}}, nil
}

func (f *fakeDashboardRepo) PendingWarehouseRequests(ctx context.Context, limit int) ([]RequestSummary, error) {
	return []RequestSummary{{Quantity: 30}}, nil
}

func (f *fakeDashboardRepo) RecentApprovedRequests(ctx context.Context, limit int) ([]RequestSummary, error) {
	return nil, nil
}

func (f *fakeDashboardRepo) OrdersWithStatus(ctx context.Context, status string, limit int) ([]OrderSummary, error) {
	f.statusArg = status
	return []OrderSummary{{OrderStatus: status}}, nil
}

func (f *fakeDashboardRepo) OrdersProcessedBy(ctx context.Context, staffID uuid.UUID, limit int) ([]OrderSummary, error) {
	f.staffArg = staffID
	return nil, nil
}

func (f *fakeDashboardRepo) OrdersForUser(ctx context.Context, userID uuid.UUID, limit int) ([]OrderSummary, error) {
	f.userArg = userID
	return []OrderSummary{{UserID: userID}}, nil
}

func (f *fakeDashboardRepo) CartSummary(ctx context.Context, userID uuid.UUID) (CartSummary, error) {
	return CartSummary{ItemCount: 3, TotalAmount: decimal.RequireFromString("29.97")}, nil
}

func TestAdminDefaultsToLastThirtyDays(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := NewService(slog.Default(), repo)

	d, err := svc.Admin(context.Background(), DateRange{})
	require.NoError(t, err)
	require.True(t, d.TotalIncome.Equal(decimal.RequireFromString("150.00")))
	require.Equal(t, 42, d.CustomerCount)
	require.Len(t, d.TopSellers, 1)

	window := repo.incomeRange.To.Sub(repo.incomeRange.From)
	require.Equal(t, 30*24*time.Hour, window)
	require.WithinDuration(t, time.Now().UTC(), repo.incomeRange.To, time.Minute)
}

func TestAdminKeepsExplicitRange(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := NewService(slog.Default(), repo)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	_, err := svc.Admin(context.Background(), DateRange{From: from, To: to})
	require.NoError(t, err)
	require.Equal(t, from, repo.incomeRange.From)
	require.Equal(t, to, repo.incomeRange.To)
}

func TestWarehouse(t *testing.T) {
	svc := NewService(slog.Default(), &fakeDashboardRepo{})

	d, err := svc.Warehouse(context.Background())
	require.NoError(t, err)
	require.Len(t, d.PendingApprovals, 1)
	require.Equal(t, 1, d.Inventory.OutOfStock)
}

func TestStaffQueriesPendingAndOwn(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := NewService(slog.Default(), repo)
	staffID := uuid.New()

	d, err := svc.Staff(context.Background(), staffID)
	require.NoError(t, err)
	require.Equal(t, "Pending", repo.statusArg)
	require.Equal(t, staffID, repo.staffArg)
	require.Len(t, d.PendingOrders, 1)
}

func TestCustomerSeesOwnOrdersAndCart(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := NewService(slog.Default(), repo)
	userID := uuid.New()

	d, err := svc.Customer(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, userID, repo.userArg)
	require.Equal(t, 3, d.Cart.ItemCount)
	require.Len(t, d.RecentOrders, 1)
}
