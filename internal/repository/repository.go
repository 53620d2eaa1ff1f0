package repository

import (
	"context"

	"shopcart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Upsert inserts a product or updates it in place when the ID already exists.
	Upsert(ctx context.Context, product *model.Product) error

	// DecrementInventory reduces a product's inventory by quantity within the
	// provided transaction. Returns model.ErrInsufficientInventory when the
	// decrement would drive inventory negative, and model.ErrProductNotFound
	// when the product does not exist.
	DecrementInventory(ctx context.Context, tx pgx.Tx, id string, quantity int) error
}

// CartRepository defines the interface for cart and cart item data access.
// The cart exclusively owns its items; item rows are only ever reachable
// through their cart.
type CartRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetByID retrieves a cart by its ID, without items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Cart, error)

	// GetByUserID retrieves a user's cart, without items.
	GetByUserID(ctx context.Context, userID int64) (*model.Cart, error)

	// Create inserts a new empty cart.
	Create(ctx context.Context, cart *model.Cart) error

	// Delete removes a cart row within the provided transaction. Item rows
	// cascade at the schema level but are cleared explicitly by callers first.
	Delete(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error

	// GetItems retrieves all items in a cart.
	GetItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error)

	// GetItemByProduct retrieves the single item for a (cart, product) pair.
	GetItemByProduct(ctx context.Context, cartID uuid.UUID, productID string) (*model.CartItem, error)

	// UpsertItem inserts a cart item, or accumulates quantity onto the
	// existing line for the same (cart, product) pair. The existing line
	// keeps its original unit price snapshot.
	UpsertItem(ctx context.Context, tx pgx.Tx, item *model.CartItem) error

	// UpdateItem replaces an item's quantity, unit price and line total.
	UpdateItem(ctx context.Context, tx pgx.Tx, item *model.CartItem) error

	// DeleteItem removes a single item row within the provided transaction.
	DeleteItem(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) error

	// DeleteItems removes all item rows of a cart within the provided transaction.
	DeleteItems(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error

	// RecalculateTotal re-derives a cart's total from its items within the
	// provided transaction and returns the new total.
	RecalculateTotal(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) (decimal.Decimal, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// GetByUserID retrieves all orders belonging to a user, newest first.
	GetByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	// GetItemsByOrderIDs retrieves the items of multiple orders, keyed by order ID.
	GetItemsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error)
}
