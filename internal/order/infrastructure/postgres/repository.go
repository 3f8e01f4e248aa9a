package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockops/stockflow/internal/order/domain"
	stockdomain "github.com/stockops/stockflow/internal/stock/domain"
	stockpg "github.com/stockops/stockflow/internal/stock/postgres"
	outboxpg "github.com/stockops/stockflow/pkg/outbox/postgres"
	"github.com/stockops/stockflow/pkg/tracing"
)

const uniqueViolation = "23505"

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// CreateFromCart runs the whole checkout as one transaction: order insert,
// item snapshots, conditional stock decrements, cart clearing and the
// outbox rows for the created order and any low-stock crossings. Any
// failure rolls the whole thing back.
func (r *Repository) CreateFromCart(ctx context.Context, o domain.Order, cartID uuid.UUID) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, order_number, user_id, total_amount, order_status, payment_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.OrderNumber, o.UserID, o.TotalAmount, o.Status, o.PaymentStatus, o.Notes, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "orders_order_number_key" {
			return domain.ErrOrderNumberTaken
		}
		return err
	}

	batch := &pgx.Batch{}
	for _, it := range o.Items {
		batch.Queue(`
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	traceparent := tracing.Traceparent(ctx)
	for _, it := range o.Items {
		mv, err := stockpg.DecrementTx(ctx, tx, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if mv.CrossedLowStock() {
			payload, err := json.Marshal(mv.Event())
			if err != nil {
				return err
			}
			if err := outboxpg.InsertTx(ctx, tx, "product", mv.ProductID.String(), stockdomain.EventLowStock, payload, traceparent); err != nil {
				return err
			}
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}

	payload, err := json.Marshal(domain.OrderCreated{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
	})
	if err != nil {
		return err
	}
	if err := outboxpg.InsertTx(ctx, tx, "order", o.ID.String(), domain.EventCreated, payload, traceparent); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, `
		SELECT id, order_number, user_id, staff_id, total_amount, order_status, payment_status, notes, created_at, updated_at
		FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.StaffID, &o.TotalAmount, &o.Status, &o.PaymentStatus, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price
		FROM order_items WHERE order_id = $1`, id)
	if err != nil {
		return domain.Order{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return domain.Order{}, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func (r *Repository) List(ctx context.Context, f domain.ListFilter) ([]domain.Order, error) {
	sql := `
		SELECT id, order_number, user_id, staff_id, total_amount, order_status, payment_status, notes, created_at, updated_at
		FROM orders WHERE 1=1`
	var args []any
	if f.UserID != uuid.Nil {
		args = append(args, f.UserID)
		sql += ` AND user_id = $` + strconv.Itoa(len(args))
	}
	if f.OrderNumber != "" {
		args = append(args, f.OrderNumber)
		sql += ` AND order_number = $` + strconv.Itoa(len(args))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		sql += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		sql += ` AND created_at <= $` + strconv.Itoa(len(args))
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.StaffID, &o.TotalAmount, &o.Status, &o.PaymentStatus, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, staffID uuid.UUID, eventType string, payload []byte) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx, `
		UPDATE orders SET order_status = $2, staff_id = $3, updated_at = now() WHERE id = $1`,
		id, status, staffID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := outboxpg.InsertTx(ctx, tx, "order", id.String(), eventType, payload, tracing.Traceparent(ctx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repository) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name FROM payment_methods WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []domain.PaymentMethod
	for rows.Next() {
		var m domain.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, rows.Err()
}

func (r *Repository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE orders SET payment_status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
