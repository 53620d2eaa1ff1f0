package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart represents a user's shopping cart. Each user has at most one cart,
// created lazily on the first add-to-cart and deleted on checkout.
type Cart struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      int64           `json:"userId" db:"user_id"`
	TotalAmount decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Items       []CartItem      `json:"items"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// CartItem represents a single line in a cart. UnitPrice is a snapshot of the
// product price taken when the line was added, not a live reference.
// At most one line exists per (cart, product) pair.
type CartItem struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	CartID     uuid.UUID       `json:"-" db:"cart_id"`
	ProductID  string          `json:"productId" db:"product_id"`
	Quantity   int             `json:"quantity" db:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice" db:"unit_price"`
	TotalPrice decimal.Decimal `json:"totalPrice" db:"total_price"`
}

// LineTotal computes quantity times the snapshot unit price.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AddCartItemRequest represents the request payload for adding an item to a cart.
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest represents the request payload for changing a line's quantity.
type UpdateCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateCartRequest represents the request payload for initialising a cart.
type CreateCartRequest struct {
	UserID int64 `json:"userId"`
}
