package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockops/stockflow/internal/cart/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) GetByUser(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	cart := domain.Cart{UserID: userID}

	// Carts are created lazily on first access.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO carts (id, user_id) VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING`,
		uuid.New(), userID)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := r.pool.QueryRow(ctx, `SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&cart.ID); err != nil {
		return domain.Cart{}, err
	}

	// Lines join the catalog so unit prices are always the current ones.
	rows, err := r.pool.Query(ctx, `
		SELECT ci.id, ci.product_id, p.name, p.price, ci.quantity, ci.created_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.id`,
		cart.ID)
	if err != nil {
		return domain.Cart{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.UnitPrice, &it.Quantity, &it.AddedAt); err != nil {
			return domain.Cart{}, err
		}
		cart.Items = append(cart.Items, it)
	}
	return cart, rows.Err()
}

func (r *Repository) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, qty int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		uuid.New(), cartID, productID, qty)
	return err
}

func (r *Repository) SetItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, qty int) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND id = $2`,
		cartID, itemID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
	return err
}

func (r *Repository) Clear(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
