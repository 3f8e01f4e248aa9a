package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockops/stockflow/internal/replenishment/domain"
	stockpg "github.com/stockops/stockflow/internal/stock/postgres"
	outboxpg "github.com/stockops/stockflow/pkg/outbox/postgres"
	"github.com/stockops/stockflow/pkg/tracing"
)

const requestColumns = `
	r.id, r.product_id, p.name, r.quantity, r.requested_by,
	r.admin_approval_status, r.warehouse_approval_status, r.notes, r.created_at, r.updated_at`

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Create(ctx context.Context, req domain.RequestOrder) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO request_orders (id, product_id, quantity, requested_by, admin_approval_status, warehouse_approval_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		req.ID, req.ProductID, req.Quantity, req.RequestedBy, req.AdminApproval, req.WarehouseApproval, req.Notes, req.CreatedAt, req.UpdatedAt)
	return err
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (domain.RequestOrder, error) {
	var req domain.RequestOrder
	err := r.pool.QueryRow(ctx, `
		SELECT `+requestColumns+`
		FROM request_orders r
		JOIN products p ON p.id = r.product_id
		WHERE r.id = $1`, id).
		Scan(&req.ID, &req.ProductID, &req.ProductName, &req.Quantity, &req.RequestedBy,
			&req.AdminApproval, &req.WarehouseApproval, &req.Notes, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.RequestOrder{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.RequestOrder{}, err
	}
	return req, nil
}

func (r *Repository) List(ctx context.Context, f domain.ListFilter) ([]domain.RequestOrder, error) {
	sql := `
		SELECT ` + requestColumns + `
		FROM request_orders r
		JOIN products p ON p.id = r.product_id
		WHERE 1=1`
	var args []any
	if f.AdminApproval != nil {
		args = append(args, *f.AdminApproval)
		sql += ` AND r.admin_approval_status = $1`
	}
	if f.WarehouseApproval != nil {
		args = append(args, *f.WarehouseApproval)
		sql += ` AND r.warehouse_approval_status = $` + strconv.Itoa(len(args))
	}
	if f.RequestedBy != uuid.Nil {
		args = append(args, f.RequestedBy)
		sql += ` AND r.requested_by = $` + strconv.Itoa(len(args))
	}
	sql += ` ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RequestOrder
	for rows.Next() {
		var req domain.RequestOrder
		if err := rows.Scan(&req.ID, &req.ProductID, &req.ProductName, &req.Quantity, &req.RequestedBy,
			&req.AdminApproval, &req.WarehouseApproval, &req.Notes, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *Repository) SetAdminDecision(ctx context.Context, id uuid.UUID, decision domain.ApprovalStatus, eventType string, payload []byte) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx, `
		UPDATE request_orders
		SET admin_approval_status = $2, updated_at = now()
		WHERE id = $1 AND admin_approval_status = 'Pending'`,
		id, decision)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return r.classifyAdminConflict(ctx, tx, id)
	}

	if eventType != "" {
		if err := outboxpg.InsertTx(ctx, tx, "request_order", id.String(), eventType, payload, tracing.Traceparent(ctx)); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *Repository) SetWarehouseDecision(ctx context.Context, id uuid.UUID, decision domain.ApprovalStatus, eventType string, payload []byte) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var productID uuid.UUID
	var qty int
	err = tx.QueryRow(ctx, `
		UPDATE request_orders
		SET warehouse_approval_status = $2, updated_at = now()
		WHERE id = $1 AND admin_approval_status = 'Approved' AND warehouse_approval_status = 'Pending'
		RETURNING product_id, quantity`,
		id, decision).Scan(&productID, &qty)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.classifyWarehouseConflict(ctx, tx, id)
	}
	if err != nil {
		return err
	}

	if decision == domain.ApprovalApproved {
		if _, err := stockpg.IncrementTx(ctx, tx, productID, qty); err != nil {
			return err
		}
	}

	if eventType != "" {
		if err := outboxpg.InsertTx(ctx, tx, "request_order", id.String(), eventType, payload, tracing.Traceparent(ctx)); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// classifyAdminConflict distinguishes a missing request from one whose admin
// stage was decided by a concurrent call.
func (r *Repository) classifyAdminConflict(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	var status domain.ApprovalStatus
	err := tx.QueryRow(ctx, `SELECT admin_approval_status FROM request_orders WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrAlreadyDecided
}

func (r *Repository) classifyWarehouseConflict(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	var admin, warehouse domain.ApprovalStatus
	err := tx.QueryRow(ctx, `
		SELECT admin_approval_status, warehouse_approval_status FROM request_orders WHERE id = $1`, id).
		Scan(&admin, &warehouse)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if admin != domain.ApprovalApproved {
		return domain.ErrNotYetAdminApproved
	}
	return domain.ErrAlreadyDecided
}
