package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	catalogdomain "github.com/stockops/stockflow/internal/catalog/domain"
	"github.com/stockops/stockflow/internal/stock/domain"
)

// DecrementTx atomically subtracts qty from a product inside a caller-owned
// transaction. The conditional update serializes concurrent decrements on
// the same row: when another transaction got there first and drained the
// stock, the WHERE clause matches nothing and the decrement fails instead
// of going negative.
func DecrementTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (domain.Movement, error) {
	m := domain.Movement{ProductID: productID}
	err := tx.QueryRow(ctx, `
		UPDATE products
		SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2
		RETURNING name, quantity + $2, quantity, low_stock_threshold`,
		productID, qty).Scan(&m.ProductName, &m.Prior, &m.Post, &m.LowStockThreshold)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
			return domain.Movement{}, err
		}
		if !exists {
			return domain.Movement{}, catalogdomain.ErrNotFound
		}
		return domain.Movement{}, domain.ErrInsufficientStock
	}
	if err != nil {
		return domain.Movement{}, err
	}
	return m, nil
}

// IncrementTx atomically adds qty to a product inside a caller-owned
// transaction. There is no upper bound.
func IncrementTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (domain.Movement, error) {
	m := domain.Movement{ProductID: productID}
	err := tx.QueryRow(ctx, `
		UPDATE products
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1
		RETURNING name, quantity - $2, quantity, low_stock_threshold`,
		productID, qty).Scan(&m.ProductName, &m.Prior, &m.Post, &m.LowStockThreshold)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Movement{}, catalogdomain.ErrNotFound
	}
	if err != nil {
		return domain.Movement{}, err
	}
	return m, nil
}
