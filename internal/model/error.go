package model

// Error codes carried by domain errors.
const (
	ErrCodeProductNotFound       = "PRODUCT_NOT_FOUND"
	ErrCodeCartNotFound          = "CART_NOT_FOUND"
	ErrCodeCartItemNotFound      = "CART_ITEM_NOT_FOUND"
	ErrCodeOrderNotFound         = "ORDER_NOT_FOUND"
	ErrCodeInvalidQuantity       = "INVALID_QUANTITY"
	ErrCodeEmptyCart             = "EMPTY_CART"
	ErrCodeInsufficientInventory = "INSUFFICIENT_INVENTORY"
)

// DomainError is a business-rule violation surfaced to the HTTP layer, which
// maps the code to a response status.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Sentinel domain errors. Services return these; handlers compare against
// them to pick a status code.
var (
	ErrProductNotFound       = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCartNotFound          = NewDomainError(ErrCodeCartNotFound, "Cart not found")
	ErrCartItemNotFound      = NewDomainError(ErrCodeCartItemNotFound, "Cart item not found")
	ErrOrderNotFound         = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidQuantity       = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrEmptyCart             = NewDomainError(ErrCodeEmptyCart, "Cannot place an order for an empty cart")
	ErrInsufficientInventory = NewDomainError(ErrCodeInsufficientInventory, "Not enough inventory to fulfil the order")
)
