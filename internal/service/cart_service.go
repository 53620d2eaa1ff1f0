package service

import (
	"context"
	"fmt"
	"time"

	"shopcart/internal/model"
	"shopcart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService.
type cartService struct {
	cartRepo repository.CartRepository
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo: cartRepo,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// GetOrCreateCart returns the user's cart, creating an empty one if none exists.
func (s *cartService) GetOrCreateCart(ctx context.Context, userID int64) (*model.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to look up cart for user")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if cart == nil {
		now := time.Now()
		cart = &model.Cart{
			ID:          uuid.New(),
			UserID:      userID,
			TotalAmount: decimal.Zero,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := s.cartRepo.Create(ctx, cart); err != nil {
			s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create cart")
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}

		s.logger.Info().
			Str("cart_id", cart.ID.String()).
			Int64("user_id", userID).
			Msg("cart created for user")
	}

	items, err := s.cartRepo.GetItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	cart.Items = items

	return cart, nil
}

// GetCart retrieves a cart with its items.
func (s *cartService) GetCart(ctx context.Context, cartID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if cart == nil {
		s.logger.Debug().Str("cart_id", cartID.String()).Msg("cart not found")
		return nil, model.ErrCartNotFound
	}

	items, err := s.cartRepo.GetItems(ctx, cartID)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to get cart items")
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	cart.Items = items

	return cart, nil
}

// GetTotalPrice returns a cart's derived total.
func (s *cartService) GetTotalPrice(ctx context.Context, cartID uuid.UUID) (decimal.Decimal, error) {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return decimal.Zero, err
	}

	return cart.TotalAmount, nil
}

// ClearCart removes all items and deletes the cart record in one transaction.
func (s *cartService) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to get cart")
		return fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return model.ErrCartNotFound
	}

	tx, err := s.cartRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.cartRepo.DeleteItems(ctx, tx, cartID); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	if err = s.cartRepo.Delete(ctx, tx, cartID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to commit cart clear")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.logger.Info().Str("cart_id", cartID.String()).Msg("cart cleared")

	return nil
}
