package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopcart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetOrCreateCart(ctx context.Context, userID int64) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, cartID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) GetTotalPrice(ctx context.Context, cartID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// MockCartItemService is a mock implementation of CartItemService.
type MockCartItemService struct {
	mock.Mock
}

func (m *MockCartItemService) AddItemToCart(ctx context.Context, cartID uuid.UUID, productID string, quantity int) error {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartItemService) RemoveItemFromCart(ctx context.Context, cartID uuid.UUID, productID string) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

func (m *MockCartItemService) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, productID string, quantity int) error {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartItemService) GetCartItem(ctx context.Context, cartID uuid.UUID, productID string) (*model.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func TestCartHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	cart := &model.Cart{
		ID:          uuid.New(),
		UserID:      42,
		TotalAmount: decimal.Zero,
		Items:       []model.CartItem{},
	}

	tests := []struct {
		name           string
		method         string
		requestBody    interface{}
		mockReturn     *model.Cart
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			method:         http.MethodPost,
			requestBody:    &model.CreateCartRequest{UserID: 42},
			mockReturn:     cart,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Missing user ID",
			method:         http.MethodPost,
			requestBody:    &model.CreateCartRequest{},
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Invalid JSON",
			method:         http.MethodPost,
			requestBody:    "not json",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodGet,
			expectedStatus: http.StatusMethodNotAllowed,
			expectService:  false,
		},
		{
			name:           "Service error",
			method:         http.MethodPost,
			requestBody:    &model.CreateCartRequest{UserID: 42},
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCarts := new(MockCartService)
			mockItems := new(MockCartItemService)
			handler := NewCartHandler(mockCarts, mockItems, logger)

			if tt.expectService {
				mockCarts.On("GetOrCreateCart", mock.Anything, int64(42)).
					Return(tt.mockReturn, tt.mockError)
			}

			var body bytes.Buffer
			if tt.requestBody != nil {
				if s, ok := tt.requestBody.(string); ok {
					body.WriteString(s)
				} else {
					require.NoError(t, json.NewEncoder(&body).Encode(tt.requestBody))
				}
			}

			req := httptest.NewRequest(tt.method, "/api/carts", &body)
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockCarts.AssertExpectations(t)
		})
	}
}

func TestCartHandler_Get(t *testing.T) {
	logger := zerolog.Nop()

	cartID := uuid.New()
	cart := &model.Cart{
		ID:          cartID,
		UserID:      42,
		TotalAmount: decimal.NewFromInt(150),
		Items: []model.CartItem{
			{ID: uuid.New(), CartID: cartID, ProductID: "P001", Quantity: 3, UnitPrice: decimal.NewFromInt(50)},
		},
	}

	tests := []struct {
		name           string
		url            string
		mockCart       *model.Cart
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			url:            "/api/carts/" + cartID.String(),
			mockCart:       cart,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Cart not found",
			url:            "/api/carts/" + cartID.String(),
			mockError:      model.ErrCartNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid cart ID",
			url:            "/api/carts/not-a-uuid",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCarts := new(MockCartService)
			mockItems := new(MockCartItemService)
			handler := NewCartHandler(mockCarts, mockItems, logger)

			if tt.expectService {
				mockCarts.On("GetCart", mock.Anything, cartID).Return(tt.mockCart, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()

			handler.Get(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var got model.Cart
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, cartID, got.ID)
				assert.Len(t, got.Items, 1)
			}
			mockCarts.AssertExpectations(t)
		})
	}
}

func TestCartHandler_AddItem(t *testing.T) {
	logger := zerolog.Nop()

	cartID := uuid.New()
	cart := &model.Cart{
		ID:          cartID,
		UserID:      42,
		TotalAmount: decimal.NewFromInt(150),
		Items: []model.CartItem{
			{ID: uuid.New(), CartID: cartID, ProductID: "P001", Quantity: 3, UnitPrice: decimal.NewFromInt(50)},
		},
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			requestBody:    &model.AddCartItemRequest{ProductID: "P001", Quantity: 3},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Missing product ID",
			requestBody:    &model.AddCartItemRequest{Quantity: 3},
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Invalid quantity",
			requestBody:    &model.AddCartItemRequest{ProductID: "P001", Quantity: 0},
			mockError:      model.ErrInvalidQuantity,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Product not found",
			requestBody:    &model.AddCartItemRequest{ProductID: "P999", Quantity: 1},
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Cart not found",
			requestBody:    &model.AddCartItemRequest{ProductID: "P001", Quantity: 1},
			mockError:      model.ErrCartNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			requestBody:    "not json",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCarts := new(MockCartService)
			mockItems := new(MockCartItemService)
			handler := NewCartHandler(mockCarts, mockItems, logger)

			if tt.expectService {
				reqBody := tt.requestBody.(*model.AddCartItemRequest)
				mockItems.On("AddItemToCart", mock.Anything, cartID, reqBody.ProductID, reqBody.Quantity).
					Return(tt.mockError)
				if tt.mockError == nil {
					mockCarts.On("GetCart", mock.Anything, cartID).Return(cart, nil)
				}
			}

			var body bytes.Buffer
			if s, ok := tt.requestBody.(string); ok {
				body.WriteString(s)
			} else {
				require.NoError(t, json.NewEncoder(&body).Encode(tt.requestBody))
			}

			req := httptest.NewRequest(http.MethodPost, "/api/carts/"+cartID.String()+"/items", &body)
			rec := httptest.NewRecorder()

			handler.AddItem(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockItems.AssertExpectations(t)
			mockCarts.AssertExpectations(t)
		})
	}
}

func TestCartHandler_UpdateItem(t *testing.T) {
	logger := zerolog.Nop()

	cartID := uuid.New()
	cart := &model.Cart{
		ID:          cartID,
		UserID:      42,
		TotalAmount: decimal.NewFromInt(500),
		Items: []model.CartItem{
			{ID: uuid.New(), CartID: cartID, ProductID: "P001", Quantity: 5, UnitPrice: decimal.NewFromInt(100)},
		},
	}

	tests := []struct {
		name           string
		requestBody    *model.UpdateCartItemRequest
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			requestBody:    &model.UpdateCartItemRequest{ProductID: "P001", Quantity: 5},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Item not in cart",
			requestBody:    &model.UpdateCartItemRequest{ProductID: "P404", Quantity: 5},
			mockError:      model.ErrCartItemNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid quantity",
			requestBody:    &model.UpdateCartItemRequest{ProductID: "P001", Quantity: -1},
			mockError:      model.ErrInvalidQuantity,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCarts := new(MockCartService)
			mockItems := new(MockCartItemService)
			handler := NewCartHandler(mockCarts, mockItems, logger)

			mockItems.On("UpdateItemQuantity", mock.Anything, cartID, tt.requestBody.ProductID, tt.requestBody.Quantity).
				Return(tt.mockError)
			if tt.mockError == nil {
				mockCarts.On("GetCart", mock.Anything, cartID).Return(cart, nil)
			}

			var body bytes.Buffer
			require.NoError(t, json.NewEncoder(&body).Encode(tt.requestBody))

			req := httptest.NewRequest(http.MethodPut, "/api/carts/"+cartID.String()+"/items", &body)
			rec := httptest.NewRecorder()

			handler.UpdateItem(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockItems.AssertExpectations(t)
			mockCarts.AssertExpectations(t)
		})
	}
}

func TestCartHandler_RemoveItem(t *testing.T) {
	logger := zerolog.Nop()

	cartID := uuid.New()
	cart := &model.Cart{
		ID:          cartID,
		UserID:      42,
		TotalAmount: decimal.Zero,
		Items:       []model.CartItem{},
	}

	tests := []struct {
		name           string
		productID      string
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			productID:      "P001",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Item not in cart",
			productID:      "P404",
			mockError:      model.ErrCartItemNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCarts := new(MockCartService)
			mockItems := new(MockCartItemService)
			handler := NewCartHandler(mockCarts, mockItems, logger)

			mockItems.On("RemoveItemFromCart", mock.Anything, cartID, tt.productID).
				Return(tt.mockError)
			if tt.mockError == nil {
				mockCarts.On("GetCart", mock.Anything, cartID).Return(cart, nil)
			}

			url := "/api/carts/" + cartID.String() + "/items/" + tt.productID
			req := httptest.NewRequest(http.MethodDelete, url, nil)
			rec := httptest.NewRecorder()

			handler.RemoveItem(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockItems.AssertExpectations(t)
		})
	}
}

func TestCartHandler_GetTotal(t *testing.T) {
	logger := zerolog.Nop()

	cartID := uuid.New()

	mockCarts := new(MockCartService)
	mockItems := new(MockCartItemService)
	handler := NewCartHandler(mockCarts, mockItems, logger)

	mockCarts.On("GetTotalPrice", mock.Anything, cartID).
		Return(decimal.RequireFromString("150.00"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/carts/"+cartID.String()+"/total", nil)
	rec := httptest.NewRecorder()

	handler.GetTotal(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "150.00", got["total"])

	mockCarts.AssertExpectations(t)
}

func TestCartHandler_Clear(t *testing.T) {
	logger := zerolog.Nop()

	cartID := uuid.New()

	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Cart not found",
			mockError:      model.ErrCartNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCarts := new(MockCartService)
			mockItems := new(MockCartItemService)
			handler := NewCartHandler(mockCarts, mockItems, logger)

			mockCarts.On("ClearCart", mock.Anything, cartID).Return(tt.mockError)

			req := httptest.NewRequest(http.MethodDelete, "/api/carts/"+cartID.String(), nil)
			rec := httptest.NewRecorder()

			handler.Clear(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockCarts.AssertExpectations(t)
		})
	}
}

func TestCartHandler_GetItem(t *testing.T) {
	logger := zerolog.Nop()

	cartID := uuid.New()
	item := &model.CartItem{
		ID:         uuid.New(),
		CartID:     cartID,
		ProductID:  "P001",
		Quantity:   2,
		UnitPrice:  decimal.NewFromInt(50),
		TotalPrice: decimal.NewFromInt(100),
	}

	mockCarts := new(MockCartService)
	mockItems := new(MockCartItemService)
	handler := NewCartHandler(mockCarts, mockItems, logger)

	mockItems.On("GetCartItem", mock.Anything, cartID, "P001").Return(item, nil)

	url := "/api/carts/" + cartID.String() + "/items/P001"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()

	handler.GetItem(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "P001", got.ProductID)
	assert.Equal(t, 2, got.Quantity)

	mockItems.AssertExpectations(t)
}
