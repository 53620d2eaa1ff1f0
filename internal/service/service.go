package service

import (
	"context"

	"shopcart/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService defines operations for product reads.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

}

// CartService defines operations on the cart aggregate.
type CartService interface {
	// GetOrCreateCart returns the user's cart, creating an empty one if none exists.
	GetOrCreateCart(ctx context.Context, userID int64) (*model.Cart, error)

	// GetCart retrieves a cart with its items.
	GetCart(ctx context.Context, cartID uuid.UUID) (*model.Cart, error)

	// GetTotalPrice returns a cart's derived total.
	GetTotalPrice(ctx context.Context, cartID uuid.UUID) (decimal.Decimal, error)

	// ClearCart removes all items and deletes the cart record. Subsequent
	// reads for the same ID behave as cart-not-found.
	ClearCart(ctx context.Context, cartID uuid.UUID) error
}

// CartItemService defines operations on individual cart lines.
type CartItemService interface {
	// AddItemToCart adds quantity of a product to a cart. An existing line
	// for the same product has its quantity increased rather than a second
	// line being created.
	AddItemToCart(ctx context.Context, cartID uuid.UUID, productID string, quantity int) error

	// RemoveItemFromCart removes the line matching the product from the cart.
	RemoveItemFromCart(ctx context.Context, cartID uuid.UUID, productID string) error

	// UpdateItemQuantity sets the quantity of an existing line and
	// re-snapshots its unit price from the current product price.
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, productID string, quantity int) error

	// GetCartItem retrieves the line matching the product in the cart.
	GetCartItem(ctx context.Context, cartID uuid.UUID, productID string) (*model.CartItem, error)
}

// OrderService defines operations for order placement and retrieval.
type OrderService interface {
	// PlaceOrder converts the user's cart into an immutable order,
	// decrementing inventory and clearing the cart.
	PlaceOrder(ctx context.Context, userID int64) (*model.OrderSummary, error)

	// GetOrder retrieves an order by its ID with all items.
	GetOrder(ctx context.Context, orderID uuid.UUID) (*model.OrderSummary, error)

	// GetUserOrders retrieves all orders for a user, newest first.
	GetUserOrders(ctx context.Context, userID int64) ([]model.OrderSummary, error)
}
