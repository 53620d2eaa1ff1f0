package repository

import (
	"context"
	"fmt"

	"shopcart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves all products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT id, name, brand, description, category, price, inventory, created_at
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan product rows")
		return nil, err
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT id, name, brand, description, category, price, inventory, created_at
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Brand, &p.Description, &p.Category, &p.Price, &p.Inventory, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `
		SELECT id, name, brand, description, category, price, inventory, created_at
		FROM products
		WHERE id = ANY($1)
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan product rows")
		return nil, err
	}

	return products, nil
}

// Upsert inserts a product or updates it in place when the ID already exists.
func (r *productRepository) Upsert(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, brand, description, category, price, inventory, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			brand = EXCLUDED.brand,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			inventory = EXCLUDED.inventory
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Brand, product.Description,
		product.Category, product.Price, product.Inventory, product.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to upsert product")
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}

// DecrementInventory reduces a product's inventory by quantity within the
// provided transaction. The decrement is guarded in SQL so inventory can
// never go negative.
func (r *productRepository) DecrementInventory(ctx context.Context, tx pgx.Tx, id string, quantity int) error {
	query := `
		UPDATE products
		SET inventory = inventory - $2
		WHERE id = $1 AND inventory >= $2
	`

	tag, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", id).
			Int("quantity", quantity).
			Msg("failed to decrement inventory")
		return fmt.Errorf("failed to decrement inventory: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Distinguish a missing product from an underflow.
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)", id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check product existence: %w", err)
		}
		if !exists {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return model.ErrProductNotFound
		}

		r.logger.Warn().
			Str("product_id", id).
			Int("quantity", quantity).
			Msg("inventory underflow rejected")
		return model.ErrInsufficientInventory
	}

	r.logger.Debug().
		Str("product_id", id).
		Int("quantity", quantity).
		Msg("inventory decremented")

	return nil
}

// scanProducts collects product rows into a slice.
func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Description, &p.Category, &p.Price, &p.Inventory, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
