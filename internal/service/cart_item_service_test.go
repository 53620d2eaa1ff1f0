package service

import (
	"context"
	"errors"
	"testing"

	"shopcart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCartItemService_AddItemToCart_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	cartID := uuid.New()
	cart := &model.Cart{ID: cartID, UserID: 7}
	product := &model.Product{
		ID:        "P001",
		Name:      "Espresso Beans",
		Price:     decimal.NewFromInt(50),
		Inventory: 10,
	}

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	mockTx := new(MockTx)

	service := NewCartItemService(mockCartRepo, mockProductRepo, logger)

	mockCartRepo.On("GetByID", ctx, cartID).Return(cart, nil)
	mockProductRepo.On("GetByID", ctx, "P001").Return(product, nil)
	mockCartRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("UpsertItem", ctx, mockTx, mock.AnythingOfType("*model.CartItem")).
		Run(func(args mock.Arguments) {
			item := args.Get(2).(*model.CartItem)
			assert.Equal(t, cartID, item.CartID)
			assert.Equal(t, "P001", item.ProductID)
			assert.Equal(t, 3, item.Quantity)
			assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(50)), "unit price should snapshot the product price")
			assert.True(t, item.TotalPrice.Equal(decimal.NewFromInt(150)), "line total should be quantity * unit price")
		}).
		Return(nil)
	mockCartRepo.On("RecalculateTotal", ctx, mockTx, cartID).Return(decimal.NewFromInt(150), nil)
	mockTx.On("Commit", ctx).Return(nil)

	err := service.AddItemToCart(ctx, cartID, "P001", 3)

	require.NoError(t, err)

	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestCartItemService_AddItemToCart_InvalidQuantity(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	cartID := uuid.New()

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	service := NewCartItemService(mockCartRepo, mockProductRepo, logger)

	for _, quantity := range []int{0, -1, -100} {
		err := service.AddItemToCart(ctx, cartID, "P001", quantity)

		require.Error(t, err)
		assert.Equal(t, model.ErrInvalidQuantity, err)
	}

	mockCartRepo.AssertNotCalled(t, "GetByID")
	mockCartRepo.AssertNotCalled(t, "BeginTx")
}

func TestCartItemService_AddItemToCart_CartNotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	cartID := uuid.New()

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	service := NewCartItemService(mockCartRepo, mockProductRepo, logger)

	mockCartRepo.On("GetByID", ctx, cartID).Return(nil, nil)

	err := service.AddItemToCart(ctx, cartID, "P001", 1)

	require.Error(t, err)
	assert.Equal(t, model.ErrCartNotFound, err)

	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertNotCalled(t, "GetByID")
}

func TestCartItemService_AddItemToCart_ProductNotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	cartID := uuid.New()
	cart := &model.Cart{ID: cartID, UserID: 7}

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	service := NewCartItemService(mockCartRepo, mockProductRepo, logger)

	mockCartRepo.On("GetByID", ctx, cartID).Return(cart, nil)
	mockProductRepo.On("GetByID", ctx, "P999").Return(nil, nil)

	err := service.AddItemToCart(ctx, cartID, "P999", 1)

	require.Error(t, err)
	assert.Equal(t, model.ErrProductNotFound, err)

	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
	mockCartRepo.AssertNotCalled(t, "BeginTx")
}

func TestCartItemService_AddItemToCart_RollbackOnUpsertFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	cartID := uuid.New()
	cart := &model.Cart{ID: cartID, UserID: 7}
	product := &model.Product{ID: "P001", Price: decimal.NewFromInt(10), Inventory: 5}

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	mockTx := new(MockTx)

	service := NewCartItemService(mockCartRepo, mockProductRepo, logger)

	mockCartRepo.On("GetByID", ctx, cartID).Return(cart, nil)
	mockProductRepo.On("GetByID", ctx, "P001").Return(product, nil)
	mockCartRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("UpsertItem", ctx, mockTx, mock.AnythingOfType("*model.CartItem")).
		Return(errors.New("database error"))
	mockTx.On("Rollback", ctx).Return(nil)

	err := service.AddItemToCart(ctx, cartID, "P001", 1)

	require.Error(t, err)

	mockCartRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
	mockTx.AssertNotCalled(t, "Commit")
}

func TestCartItemService_UpdateItemQuantity_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	cartID := uuid.New()
	cart := &model.Cart{ID: cartID, UserID: 7}
	existing := &model.CartItem{
		ID:         uuid.New(),
		CartID:     cartID,
		ProductID:  "P001",
		Quantity:   2,
		UnitPrice:  decimal.NewFromInt(90),
		TotalPrice: decimal.NewFromInt(180),
	}
	// Product price changed since the line was first added; the update
	// re-snapshots it.
	product := &model.Product{ID: "P001", Price: decimal.NewFromInt(100), Inventory: 5}

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	mockTx := new(MockTx)

	service := NewCartItemService(mockCartRepo, mockProductRepo, logger)

	mockCartRepo.On("GetByID", ctx, cartID).Return(cart, nil)
	mockCartRepo.On("GetItemByProduct", ctx, cartID, "P001").Return(existing, nil)
	mockProductRepo.On("GetByID", ctx, "P001").Return(product, nil)
	mockCartRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("UpdateItem", ctx, mockTx, mock.AnythingOfType("*model.CartItem")).
		Run(func(args mock.Arguments) {
			item := args.Get(2).(*model.CartItem)
			assert.Equal(t, 5, item.Quantity)
			assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(100)), "unit price should be re-snapshotted")
			assert.True(t, item.TotalPrice.Equal(decimal.NewFromInt(500)))
		}).
		Return(nil)
	mockCartRepo.On("RecalculateTotal", ctx, mockTx, cartID).Return(decimal.NewFromInt(500), nil)
	mockTx.On("Commit", ctx).Return(nil)

	err := service.UpdateItemQuantity(ctx, cartID, "P001", 5)

	require.NoError(t, err)

	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestCartItemService_UpdateItemQuantity_InvalidQuantity(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	service := NewCartItemService(mockCartRepo, mockProductRepo, logger)

	err := service.UpdateItemQuantity(ctx, uuid.New(), "P001", 0)

	require.Error(t, err)
	assert.Equal(t, model.ErrInvalidQuantity, err)

	mockCartRepo.AssertNotCalled(t, "GetByID")
}

func TestCartItemService_UpdateItemQuantity_ItemNotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	cartID := uuid.New()
	cart := &model.Cart{ID: cartID, UserID: 7}

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	service := NewCartItemService(mockCartRepo, mockProductRepo, logger)

	mockCartRepo.On("GetByID", ctx, cartID).Return(cart, nil)
	mockCartRepo.On("GetItemByProduct", ctx, cartID, "P001").Return(nil, nil)

	err := service.UpdateItemQuantity(ctx, cartID, "P001", 5)

	require.Error(t, err)
	assert.Equal(t, model.ErrCartItemNotFound, err)

	mockCartRepo.AssertExpectations(t)
	mockCartRepo.AssertNotCalled(t, "BeginTx")
	mockProductRepo.AssertNotCalled(t, "GetByID")
}

func TestCartItemService_RemoveItemFromCart_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	cartID := uuid.New()
	cart := &model.Cart{ID: cartID, UserID: 7}
	item := &model.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: "P001",
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(10),
	}

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	mockTx := new(MockTx)

	service := NewCartItemService(mockCartRepo, mockProductRepo, logger)

	mockCartRepo.On("GetByID", ctx, cartID).Return(cart, nil)
	mockCartRepo.On("GetItemByProduct", ctx, cartID, "P001").Return(item, nil)
	mockCartRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("DeleteItem", ctx, mockTx, item.ID).Return(nil)
	mockCartRepo.On("RecalculateTotal", ctx, mockTx, cartID).Return(decimal.Zero, nil)
	mockTx.On("Commit", ctx).Return(nil)

	err := service.RemoveItemFromCart(ctx, cartID, "P001")

	require.NoError(t, err)

	mockCartRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestCartItemService_RemoveItemFromCart_ItemNotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	cartID := uuid.New()
	cart := &model.Cart{ID: cartID, UserID: 7}

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	service := NewCartItemService(mockCartRepo, mockProductRepo, logger)

	mockCartRepo.On("GetByID", ctx, cartID).Return(cart, nil)
	mockCartRepo.On("GetItemByProduct", ctx, cartID, "P404").Return(nil, nil)

	err := service.RemoveItemFromCart(ctx, cartID, "P404")

	require.Error(t, err)
	assert.Equal(t, model.ErrCartItemNotFound, err)

	mockCartRepo.AssertExpectations(t)
	mockCartRepo.AssertNotCalled(t, "BeginTx")
}

func TestCartItemService_GetCartItem(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	cartID := uuid.New()
	cart := &model.Cart{ID: cartID, UserID: 7}
	item := &model.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: "P001",
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(10),
	}

	tests := []struct {
		name        string
		mockCart    *model.Cart
		mockItem    *model.CartItem
		expectedErr error
	}{
		{
			name:     "Success",
			mockCart: cart,
			mockItem: item,
		},
		{
			name:        "Cart not found",
			mockCart:    nil,
			expectedErr: model.ErrCartNotFound,
		},
		{
			name:        "Item not found",
			mockCart:    cart,
			mockItem:    nil,
			expectedErr: model.ErrCartItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCartRepo := new(MockCartRepository)
			mockProductRepo := new(MockProductRepository)

			service := NewCartItemService(mockCartRepo, mockProductRepo, logger)

			mockCartRepo.On("GetByID", ctx, cartID).Return(tt.mockCart, nil)
			if tt.mockCart != nil {
				mockCartRepo.On("GetItemByProduct", ctx, cartID, "P001").Return(tt.mockItem, nil)
			}

			got, err := service.GetCartItem(ctx, cartID, "P001")

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectedErr, err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockItem, got)
			}

			mockCartRepo.AssertExpectations(t)
		})
	}
}
