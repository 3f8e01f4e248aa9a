package integration

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartpg "github.com/stockops/stockflow/internal/cart/infrastructure/postgres"
	catalogdomain "github.com/stockops/stockflow/internal/catalog/domain"
	catalogpg "github.com/stockops/stockflow/internal/catalog/infrastructure/postgres"
	dashboardapp "github.com/stockops/stockflow/internal/dashboard/application"
	dashboardpg "github.com/stockops/stockflow/internal/dashboard/infrastructure/postgres"
	orderapp "github.com/stockops/stockflow/internal/order/application"
	orderdomain "github.com/stockops/stockflow/internal/order/domain"
	orderpg "github.com/stockops/stockflow/internal/order/infrastructure/postgres"
	repldomain "github.com/stockops/stockflow/internal/replenishment/domain"
	replpg "github.com/stockops/stockflow/internal/replenishment/infrastructure/postgres"
	stockdomain "github.com/stockops/stockflow/internal/stock/domain"
	"github.com/stockops/stockflow/migrations"
)

func newPool(t *testing.T, ctx context.Context, url string) *pgxpool.Pool {
	t.Helper()
	cfg, err := pgxpool.ParseConfig(url)
	require.NoError(t, err)
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool, role string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, name, email, role)
		VALUES ($1, $2, $3, $4)`,
		id, "test user", id.String()+"@example.com", role)
	require.NoError(t, err)
	return id
}

func seedProduct(t *testing.T, ctx context.Context, repo *catalogpg.Repository, qty, threshold int) catalogdomain.Product {
	t.Helper()
	now := time.Now().UTC()
	p := catalogdomain.Product{
		ID:                uuid.New(),
		Name:              "widget " + uuid.NewString(),
		Price:             decimal.RequireFromString("10.00"),
		Quantity:          qty,
		LowStockThreshold: threshold,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	require.NoError(t, repo.Create(ctx, p))
	return p
}

func productQuantity(t *testing.T, ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) int {
	t.Helper()
	var qty int
	require.NoError(t, pool.QueryRow(ctx, `SELECT quantity FROM products WHERE id = $1`, id).Scan(&qty))
	return qty
}

func countRows(t *testing.T, ctx context.Context, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(ctx, query, args...).Scan(&n))
	return n
}

func TestPostgresIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed tests in short mode")
	}

	ctx := context.Background()
	env, err := Setup(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { env.Teardown(ctx) })

	require.NoError(t, migrations.Up(env.PGURL))
	pool := newPool(t, ctx, env.PGURL)

	log := slog.Default()
	catalogRepo := catalogpg.NewRepository(log, pool)
	cartRepo := cartpg.NewRepository(log, pool)
	orderRepo := orderpg.NewRepository(log, pool)
	orderSvc := orderapp.NewService(log, orderRepo, cartRepo)

	t.Run("failed checkout leaves everything untouched", func(t *testing.T) {
		userID := seedUser(t, ctx, pool, "Customer")
		product := seedProduct(t, ctx, catalogRepo, 5, 3)

		cart, err := cartRepo.GetByUser(ctx, userID)
		require.NoError(t, err)
		require.NoError(t, cartRepo.UpsertItem(ctx, cart.ID, product.ID, 10))

		_, err = orderSvc.Checkout(ctx, userID, "")
		require.ErrorIs(t, err, stockdomain.ErrInsufficientStock)

		require.Equal(t, 5, productQuantity(t, ctx, pool, product.ID))
		require.Equal(t, 1, countRows(t, ctx, pool, `SELECT COUNT(*) FROM cart_items WHERE cart_id = $1`, cart.ID))
		require.Equal(t, 0, countRows(t, ctx, pool, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID))
		require.Equal(t, 0, countRows(t, ctx, pool, `SELECT COUNT(*) FROM outbox WHERE aggregate_id = $1`, product.ID.String()))
	})

	t.Run("successful checkout commits order, decrement, cart clear and outbox", func(t *testing.T) {
		userID := seedUser(t, ctx, pool, "Customer")
		product := seedProduct(t, ctx, catalogRepo, 5, 3)

		cart, err := cartRepo.GetByUser(ctx, userID)
		require.NoError(t, err)
		require.NoError(t, cartRepo.UpsertItem(ctx, cart.ID, product.ID, 2))

		o, err := orderSvc.Checkout(ctx, userID, "leave at the door")
		require.NoError(t, err)
		require.True(t, o.TotalAmount.Equal(decimal.RequireFromString("20.00")))

		got, err := orderRepo.Get(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		require.True(t, got.Items[0].UnitPrice.Equal(product.Price))

		require.Equal(t, 3, productQuantity(t, ctx, pool, product.ID))
		require.Equal(t, 0, countRows(t, ctx, pool, `SELECT COUNT(*) FROM cart_items WHERE cart_id = $1`, cart.ID))
		// 5 -> 3 lands exactly on the threshold, so both events are queued.
		require.Equal(t, 1, countRows(t, ctx, pool, `SELECT COUNT(*) FROM outbox WHERE aggregate_id = $1 AND type = $2`, o.ID.String(), orderdomain.EventCreated))
		require.Equal(t, 1, countRows(t, ctx, pool, `SELECT COUNT(*) FROM outbox WHERE aggregate_id = $1 AND type = $2`, product.ID.String(), stockdomain.EventLowStock))
	})

	t.Run("warehouse approval increments stock exactly once", func(t *testing.T) {
		requester := seedUser(t, ctx, pool, "Staff")
		product := seedProduct(t, ctx, catalogRepo, 4, 3)
		replRepo := replpg.NewRepository(log, pool)

		req, err := repldomain.NewRequestOrder(product.ID, 25, requester, "")
		require.NoError(t, err)
		require.NoError(t, replRepo.Create(ctx, req))

		require.NoError(t, replRepo.SetAdminDecision(ctx, req.ID, repldomain.ApprovalApproved, "", nil))
		require.NoError(t, replRepo.SetWarehouseDecision(ctx, req.ID, repldomain.ApprovalApproved, "", nil))
		require.Equal(t, 29, productQuantity(t, ctx, pool, product.ID))

		err = replRepo.SetWarehouseDecision(ctx, req.ID, repldomain.ApprovalApproved, "", nil)
		require.ErrorIs(t, err, repldomain.ErrAlreadyDecided)
		require.Equal(t, 29, productQuantity(t, ctx, pool, product.ID))
	})

	t.Run("dashboard queries run against the real schema", func(t *testing.T) {
		requester := seedUser(t, ctx, pool, "Staff")
		product := seedProduct(t, ctx, catalogRepo, 4, 3)
		replRepo := replpg.NewRepository(log, pool)

		req, err := repldomain.NewRequestOrder(product.ID, 10, requester, "")
		require.NoError(t, err)
		require.NoError(t, replRepo.Create(ctx, req))

		dashRepo := dashboardpg.NewRepository(pool)
		pending, err := dashRepo.PendingAdminRequests(ctx, 10)
		require.NoError(t, err)
		ids := make([]uuid.UUID, 0, len(pending))
		for _, p := range pending {
			ids = append(ids, p.ID)
		}
		require.Contains(t, ids, req.ID)

		_, err = dashRepo.PendingWarehouseRequests(ctx, 10)
		require.NoError(t, err)
		_, err = dashRepo.RecentApprovedRequests(ctx, 10)
		require.NoError(t, err)

		// The full aggregates touch every remaining read query.
		dashSvc := dashboardapp.NewService(log, dashRepo)
		_, err = dashSvc.Admin(ctx, dashboardapp.DateRange{})
		require.NoError(t, err)
		_, err = dashSvc.Warehouse(ctx)
		require.NoError(t, err)
	})

	t.Run("payment methods are seeded by migration", func(t *testing.T) {
		methods, err := orderRepo.ListPaymentMethods(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, methods)
		names := make([]string, 0, len(methods))
		for _, m := range methods {
			names = append(names, m.Name)
		}
		require.Contains(t, names, "Cash on Delivery")
	})
}
