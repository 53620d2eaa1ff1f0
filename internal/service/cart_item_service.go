package service

import (
	"context"
	"fmt"

	"shopcart/internal/model"
	"shopcart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartItemService implements CartItemService.
type cartItemService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartItemService creates a new cart item service.
func NewCartItemService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartItemService {
	return &cartItemService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart-item").Logger(),
	}
}

// AddItemToCart adds quantity of a product to a cart. An existing line for
// the same product has its quantity increased and keeps its original unit
// price snapshot; a new line snapshots the product's current price.
func (s *cartItemService) AddItemToCart(ctx context.Context, cartID uuid.UUID, productID string, quantity int) error {
	if quantity <= 0 {
		s.logger.Warn().
			Str("cart_id", cartID.String()).
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("invalid quantity")
		return model.ErrInvalidQuantity
	}

	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return model.ErrCartNotFound
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Str("product_id", productID).Msg("product not found")
		return model.ErrProductNotFound
	}

	item := &model.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}
	item.TotalPrice = item.LineTotal()

	tx, err := s.cartRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.cartRepo.UpsertItem(ctx, tx, item); err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	total, err := s.cartRepo.RecalculateTotal(ctx, tx, cartID)
	if err != nil {
		return fmt.Errorf("failed to recalculate cart total: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to commit cart item add")
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	s.logger.Info().
		Str("cart_id", cartID.String()).
		Str("product_id", productID).
		Int("quantity", quantity).
		Str("cart_total", total.String()).
		Msg("item added to cart")

	return nil
}

// RemoveItemFromCart removes the line matching the product from the cart.
func (s *cartItemService) RemoveItemFromCart(ctx context.Context, cartID uuid.UUID, productID string) error {
	item, err := s.GetCartItem(ctx, cartID, productID)
	if err != nil {
		return err
	}

	tx, err := s.cartRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove item from cart: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.cartRepo.DeleteItem(ctx, tx, item.ID); err != nil {
		return fmt.Errorf("failed to remove item from cart: %w", err)
	}

	total, err := s.cartRepo.RecalculateTotal(ctx, tx, cartID)
	if err != nil {
		return fmt.Errorf("failed to recalculate cart total: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to commit cart item removal")
		return fmt.Errorf("failed to remove item from cart: %w", err)
	}

	s.logger.Info().
		Str("cart_id", cartID.String()).
		Str("product_id", productID).
		Str("cart_total", total.String()).
		Msg("item removed from cart")

	return nil
}

// UpdateItemQuantity sets the quantity of an existing line. This is an
// update, not an upsert: a missing line is an error. The unit price is
// re-snapshotted from the current product price.
func (s *cartItemService) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, productID string, quantity int) error {
	if quantity <= 0 {
		s.logger.Warn().
			Str("cart_id", cartID.String()).
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("invalid quantity")
		return model.ErrInvalidQuantity
	}

	item, err := s.GetCartItem(ctx, cartID, productID)
	if err != nil {
		return err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	item.Quantity = quantity
	item.UnitPrice = product.Price
	item.TotalPrice = item.LineTotal()

	tx, err := s.cartRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.cartRepo.UpdateItem(ctx, tx, item); err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	total, err := s.cartRepo.RecalculateTotal(ctx, tx, cartID)
	if err != nil {
		return fmt.Errorf("failed to recalculate cart total: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to commit cart item update")
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	s.logger.Info().
		Str("cart_id", cartID.String()).
		Str("product_id", productID).
		Int("quantity", quantity).
		Str("cart_total", total.String()).
		Msg("cart item quantity updated")

	return nil
}

// GetCartItem retrieves the line matching the product in the cart.
func (s *cartItemService) GetCartItem(ctx context.Context, cartID uuid.UUID, productID string) (*model.CartItem, error) {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	item, err := s.cartRepo.GetItemByProduct(ctx, cartID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	if item == nil {
		s.logger.Debug().
			Str("cart_id", cartID.String()).
			Str("product_id", productID).
			Msg("cart item not found")
		return nil, model.ErrCartItemNotFound
	}

	return item, nil
}
