package repository

import (
	"context"
	"fmt"

	"shopcart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *cartRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// GetByID retrieves a cart by its ID, without items.
func (r *cartRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Cart, error) {
	query := `
		SELECT id, user_id, total_amount, created_at, updated_at
		FROM carts
		WHERE id = $1
	`

	var c model.Cart
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.UserID, &c.TotalAmount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("cart_id", id.String()).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("cart_id", id.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return &c, nil
}

// GetByUserID retrieves a user's cart, without items.
func (r *cartRepository) GetByUserID(ctx context.Context, userID int64) (*model.Cart, error) {
	query := `
		SELECT id, user_id, total_amount, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	var c model.Cart
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.TotalAmount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("user_id", userID).Msg("cart not found for user")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query cart by user")
		return nil, fmt.Errorf("failed to query cart by user: %w", err)
	}

	return &c, nil
}

// Create inserts a new empty cart.
func (r *cartRepository) Create(ctx context.Context, cart *model.Cart) error {
	query := `
		INSERT INTO carts (id, user_id, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		cart.ID, cart.UserID, cart.TotalAmount, cart.CreatedAt, cart.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("cart_id", cart.ID.String()).
			Int64("user_id", cart.UserID).
			Msg("failed to create cart")
		return fmt.Errorf("failed to create cart: %w", err)
	}

	r.logger.Debug().
		Str("cart_id", cart.ID.String()).
		Int64("user_id", cart.UserID).
		Msg("cart created")

	return nil
}

// Delete removes a cart row within the provided transaction.
func (r *cartRepository) Delete(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	_, err := tx.Exec(ctx, "DELETE FROM carts WHERE id = $1", cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}

// GetItems retrieves all items in a cart.
func (r *cartRepository) GetItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, unit_price, total_price
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY product_id
	`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.TotalPrice)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// GetItemByProduct retrieves the single item for a (cart, product) pair.
// Matching is by product identity, so two requests for the same product
// always resolve to the same line.
func (r *cartRepository) GetItemByProduct(ctx context.Context, cartID uuid.UUID, productID string) (*model.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, unit_price, total_price
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, cartID, productID).Scan(
		&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.TotalPrice,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().
				Str("cart_id", cartID.String()).
				Str("product_id", productID).
				Msg("cart item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).
			Str("cart_id", cartID.String()).
			Str("product_id", productID).
			Msg("failed to query cart item")
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}

	return &item, nil
}

// UpsertItem inserts a cart item, or accumulates quantity onto the existing
// line for the same (cart, product) pair. The existing line keeps its
// original unit price snapshot.
func (r *cartRepository) UpsertItem(ctx context.Context, tx pgx.Tx, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity,
			total_price = (cart_items.quantity + EXCLUDED.quantity) * cart_items.unit_price
	`

	_, err := tx.Exec(ctx, query,
		item.ID, item.CartID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("cart_id", item.CartID.String()).
			Str("product_id", item.ProductID).
			Msg("failed to upsert cart item")
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

// UpdateItem replaces an item's quantity, unit price and line total.
func (r *cartRepository) UpdateItem(ctx context.Context, tx pgx.Tx, item *model.CartItem) error {
	query := `
		UPDATE cart_items
		SET quantity = $2, unit_price = $3, total_price = $4
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, item.ID, item.Quantity, item.UnitPrice, item.TotalPrice)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", item.ID.String()).Msg("failed to update cart item")
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

// DeleteItem removes a single item row within the provided transaction.
func (r *cartRepository) DeleteItem(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) error {
	tag, err := tx.Exec(ctx, "DELETE FROM cart_items WHERE id = $1", itemID)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to delete cart item")
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

// DeleteItems removes all item rows of a cart within the provided transaction.
func (r *cartRepository) DeleteItems(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	_, err := tx.Exec(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to delete cart items")
		return fmt.Errorf("failed to delete cart items: %w", err)
	}

	return nil
}

// RecalculateTotal re-derives a cart's total from its items within the
// provided transaction. A missing unit price counts as zero rather than
// failing, matching the permissive default of the checkout flow.
func (r *cartRepository) RecalculateTotal(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) (decimal.Decimal, error) {
	query := `
		UPDATE carts
		SET total_amount = COALESCE((
			SELECT SUM(COALESCE(unit_price, 0) * quantity)
			FROM cart_items
			WHERE cart_id = $1
		), 0),
		updated_at = NOW()
		WHERE id = $1
		RETURNING total_amount
	`

	var total decimal.Decimal
	err := tx.QueryRow(ctx, query, cartID).Scan(&total)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, model.ErrCartNotFound
		}
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to recalculate cart total")
		return decimal.Zero, fmt.Errorf("failed to recalculate cart total: %w", err)
	}

	r.logger.Debug().
		Str("cart_id", cartID.String()).
		Str("total", total.String()).
		Msg("cart total recalculated")

	return total, nil
}
