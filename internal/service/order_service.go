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

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder converts the user's cart into an order. The order rows, the
// inventory decrements and the cart clear all happen in one transaction;
// an inventory underflow on any line aborts the whole placement.
func (s *orderService) PlaceOrder(ctx context.Context, userID int64) (*model.OrderSummary, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get cart for user")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if cart == nil {
		s.logger.Debug().Int64("user_id", userID).Msg("no cart for user")
		return nil, model.ErrCartNotFound
	}

	cartItems, err := s.cartRepo.GetItems(ctx, cart.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to get cart items")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if len(cartItems) == 0 {
		s.logger.Warn().
			Str("cart_id", cart.ID.String()).
			Int64("user_id", userID).
			Msg("rejecting order for empty cart")
		return nil, model.ErrEmptyCart
	}

	// Total is derived from the cart lines' snapshot prices, independent of
	// any product price change mid-flight.
	total := decimal.Zero
	for _, item := range cartItems {
		total = total.Add(item.LineTotal())
	}

	now := time.Now()
	order := &model.Order{
		ID:          uuid.New(),
		UserID:      userID,
		Status:      model.OrderStatusPending,
		OrderDate:   now,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	orderItems := make([]model.OrderItem, len(cartItems))
	for i, item := range cartItems {
		orderItems[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	products, err := s.productDetails(ctx, orderProductIDs(orderItems))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	for _, item := range orderItems {
		if err = s.productRepo.DecrementInventory(ctx, tx, item.ProductID, item.Quantity); err != nil {
			s.logger.Warn().
				Err(err).
				Str("order_id", order.ID.String()).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("aborting order placement")
			return nil, err
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.cartRepo.DeleteItems(ctx, tx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	if err = s.cartRepo.Delete(ctx, tx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int64("user_id", userID).
		Int("item_count", len(orderItems)).
		Str("total", total.String()).
		Msg("order placed")

	return toOrderSummary(order, orderItems, products), nil
}

// GetOrder retrieves an order by its ID with all items and product details.
func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*model.OrderSummary, error) {
	order, items, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", orderID.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	products, err := s.productDetails(ctx, orderProductIDs(items))
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return toOrderSummary(order, items, products), nil
}

// GetUserOrders retrieves all orders for a user, newest first. A user with
// no orders gets an empty slice, not an error.
func (s *orderService) GetUserOrders(ctx context.Context, userID int64) ([]model.OrderSummary, error) {
	orders, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get orders for user")
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	orderIDs := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	itemsByOrder, err := s.orderRepo.GetItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get order items for user")
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	// One batch read covers every order's product details.
	var allItems []model.OrderItem
	for _, items := range itemsByOrder {
		allItems = append(allItems, items...)
	}
	products, err := s.productDetails(ctx, orderProductIDs(allItems))
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	productByID := make(map[string]model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	summaries := make([]model.OrderSummary, len(orders))
	for i := range orders {
		items := itemsByOrder[orders[i].ID]
		orderProducts := make([]model.Product, 0, len(items))
		for _, id := range orderProductIDs(items) {
			if p, ok := productByID[id]; ok {
				orderProducts = append(orderProducts, p)
			}
		}
		summaries[i] = *toOrderSummary(&orders[i], items, orderProducts)
	}

	return summaries, nil
}

// productDetails fetches the products referenced by order lines.
func (s *orderService) productDetails(ctx context.Context, productIDs []string) ([]model.Product, error) {
	if len(productIDs) == 0 {
		return []model.Product{}, nil
	}
	return s.productRepo.GetByIDs(ctx, productIDs)
}

// orderProductIDs returns the distinct product IDs referenced by the lines,
// in first-seen order.
func orderProductIDs(items []model.OrderItem) []string {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// toOrderSummary projects an order, its items and their product details into
// the response shape.
func toOrderSummary(order *model.Order, items []model.OrderItem, products []model.Product) *model.OrderSummary {
	if items == nil {
		items = []model.OrderItem{}
	}
	if products == nil {
		products = []model.Product{}
	}

	return &model.OrderSummary{
		ID:          order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		OrderDate:   order.OrderDate,
		TotalAmount: order.TotalAmount,
		Items:       items,
		Products:    products,
	}
}
