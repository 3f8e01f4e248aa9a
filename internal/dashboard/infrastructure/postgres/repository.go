package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stockops/stockflow/internal/dashboard/application"
)

// Repository answers the dashboard aggregates straight from SQL. Each query
// is read-only and independent; there is no shared transaction.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) TotalIncome(ctx context.Context, dr application.DateRange) (decimal.Decimal, error) {
	var income decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE payment_status = 'Paid' AND created_at BETWEEN $1 AND $2`,
		dr.From, dr.To,
	).Scan(&income)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total income: %w", err)
	}
	return income, nil
}

func (r *Repository) OrdersByStatus(ctx context.Context, dr application.DateRange) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT order_status, COUNT(*)
		FROM orders
		WHERE created_at BETWEEN $1 AND $2
		GROUP BY order_status`,
		dr.From, dr.To,
	)
	if err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

const orderSummaryColumns = `id, order_number, user_id, total_amount, order_status, payment_status, created_at`

func (r *Repository) RecentOrders(ctx context.Context, dr application.DateRange, limit int) ([]application.OrderSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderSummaryColumns+`
		FROM orders
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC
		LIMIT $3`,
		dr.From, dr.To, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	return scanOrderSummaries(rows)
}

func (r *Repository) TopSellers(ctx context.Context, dr application.DateRange, limit int) ([]application.TopSeller, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT oi.product_id, oi.product_name,
		       SUM(oi.quantity) AS units,
		       SUM(oi.unit_price * oi.quantity) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at BETWEEN $1 AND $2
		GROUP BY oi.product_id, oi.product_name
		ORDER BY units DESC
		LIMIT $3`,
		dr.From, dr.To, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top sellers: %w", err)
	}
	defer rows.Close()

	var out []application.TopSeller
	for rows.Next() {
		var t application.TopSeller
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) CustomerCount(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'Customer'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("customer count: %w", err)
	}
	return n, nil
}

func (r *Repository) LowStockProducts(ctx context.Context, limit int) ([]application.ProductSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, quantity, low_stock_threshold
		FROM products
		WHERE active AND quantity <= low_stock_threshold
		ORDER BY quantity ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()

	var out []application.ProductSummary
	for rows.Next() {
		var p application.ProductSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.LowStockThreshold); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) InventorySummary(ctx context.Context) (application.InventorySummary, error) {
	var s application.InventorySummary
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COUNT(*) FILTER (WHERE quantity <= low_stock_threshold),
		       COUNT(*) FILTER (WHERE quantity = 0)
		FROM products
		WHERE active`,
	).Scan(&s.TotalProducts, &s.TotalUnits, &s.LowStock, &s.OutOfStock)
	if err != nil {
		return application.InventorySummary{}, fmt.Errorf("inventory summary: %w", err)
	}
	return s, nil
}

const requestSummaryColumns = `r.id, r.product_id, p.name, r.quantity, r.requested_by, r.created_at`

func (r *Repository) PendingAdminRequests(ctx context.Context, limit int) ([]application.RequestSummary, error) {
	return r.queryRequests(ctx, `r.admin_approval_status = 'Pending'`, limit)
}

func (r *Repository) PendingWarehouseRequests(ctx context.Context, limit int) ([]application.RequestSummary, error) {
	return r.queryRequests(ctx, `r.admin_approval_status = 'Approved' AND r.warehouse_approval_status = 'Pending'`, limit)
}

func (r *Repository) RecentApprovedRequests(ctx context.Context, limit int) ([]application.RequestSummary, error) {
	return r.queryRequests(ctx, `r.warehouse_approval_status = 'Approved'`, limit)
}

func (r *Repository) queryRequests(ctx context.Context, where string, limit int) ([]application.RequestSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+requestSummaryColumns+`
		FROM request_orders r
		JOIN products p ON p.id = r.product_id
		WHERE `+where+`
		ORDER BY r.created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("request orders: %w", err)
	}
	defer rows.Close()

	var out []application.RequestSummary
	for rows.Next() {
		var q application.RequestSummary
		if err := rows.Scan(&q.ID, &q.ProductID, &q.ProductName, &q.Quantity, &q.RequestedBy, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *Repository) OrdersWithStatus(ctx context.Context, status string, limit int) ([]application.OrderSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderSummaryColumns+`
		FROM orders
		WHERE order_status = $1
		ORDER BY created_at ASC
		LIMIT $2`,
		status, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("orders with status: %w", err)
	}
	return scanOrderSummaries(rows)
}

func (r *Repository) OrdersProcessedBy(ctx context.Context, staffID uuid.UUID, limit int) ([]application.OrderSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderSummaryColumns+`
		FROM orders
		WHERE staff_id = $1
		ORDER BY updated_at DESC
		LIMIT $2`,
		staffID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("orders processed by: %w", err)
	}
	return scanOrderSummaries(rows)
}

func (r *Repository) OrdersForUser(ctx context.Context, userID uuid.UUID, limit int) ([]application.OrderSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderSummaryColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("orders for user: %w", err)
	}
	return scanOrderSummaries(rows)
}

func (r *Repository) CartSummary(ctx context.Context, userID uuid.UUID) (application.CartSummary, error) {
	var s application.CartSummary
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(ci.quantity), 0),
		       COALESCE(SUM(ci.quantity * p.price), 0)
		FROM carts c
		JOIN cart_items ci ON ci.cart_id = c.id
		JOIN products p ON p.id = ci.product_id
		WHERE c.user_id = $1`,
		userID,
	).Scan(&s.ItemCount, &s.TotalAmount)
	if err != nil {
		return application.CartSummary{}, fmt.Errorf("cart summary: %w", err)
	}
	return s, nil
}

func scanOrderSummaries(rows pgx.Rows) ([]application.OrderSummary, error) {
	defer rows.Close()
	var out []application.OrderSummary
	for rows.Next() {
		var o application.OrderSummary
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.TotalAmount, &o.OrderStatus, &o.PaymentStatus, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
