package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the lifecycle states of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Order represents a completed checkout. Orders are immutable once created
// apart from status transitions.
type Order struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      int64           `json:"userId" db:"user_id"`
	Status      OrderStatus     `json:"status" db:"status"`
	OrderDate   time.Time       `json:"orderDate" db:"order_date"`
	TotalAmount decimal.Decimal `json:"totalAmount" db:"total_amount"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order. UnitPrice is copied from the
// cart line at checkout time and is decoupled from later product price changes.
type OrderItem struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID string          `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
}

// PlaceOrderRequest represents the request payload for placing an order.
type PlaceOrderRequest struct {
	UserID int64 `json:"userId"`
}

// OrderSummary represents the response payload for an order with its items
// and the details of the products they reference.
type OrderSummary struct {
	ID          uuid.UUID       `json:"id"`
	UserID      int64           `json:"userId"`
	Status      OrderStatus     `json:"status"`
	OrderDate   time.Time       `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []OrderItem     `json:"items"`
	Products    []Product       `json:"products"`
}
