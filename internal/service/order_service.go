package service

import (
	"context"
	"errors"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/store"
	"go.uber.org/zap"
)

// OrderEvents receives committed orders for asynchronous publication.
type OrderEvents interface {
	Enqueue(order domain.Order)
}

type OrderService struct {
	orders  store.OrderStore
	carts   store.CartStore
	catalog store.CatalogStore
	locks   *UserLocks
	events  OrderEvents
	log     *zap.Logger
	now     func() time.Time
}

func NewOrderService(
	orders store.OrderStore,
	carts store.CartStore,
	catalog store.CatalogStore,
	locks *UserLocks,
	events OrderEvents,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:  orders,
		carts:   carts,
		catalog: catalog,
		locks:   locks,
		events:  events,
		log:     log,
		now:     time.Now,
	}
}

// Checkout turns the account's cart into an order and empties the cart.
// Both mutations happen under the account lock: either the order is appended
// and the cart is empty, or neither changed.
func (s *OrderService) Checkout(ctx context.Context, userID int64) (*domain.Order, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, Internal("failed to load cart", err)
	}
	if len(lines) == 0 {
		return nil, Validation("Cart is empty")
	}

	lookup, err := catalogLookup(ctx, s.catalog)
	if err != nil {
		return nil, err
	}
	items, total := domain.SnapshotOrderItems(lines, lookup)

	if err := s.carts.Clear(ctx, userID); err != nil {
		return nil, Internal("failed to clear cart", err)
	}

	order, err := s.orders.Append(ctx, domain.Order{
		UserID:    userID,
		Items:     items,
		Total:     total,
		Status:    domain.OrderStatusPlaced,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.restoreCart(ctx, userID, lines)
		return nil, Internal("failed to place order", err)
	}

	s.log.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Total))

	if s.events != nil {
		s.events.Enqueue(order)
	}
	return &order, nil
}

// restoreCart puts the drained lines back after a failed append.
func (s *OrderService) restoreCart(ctx context.Context, userID int64, lines []domain.CartLine) {
	for _, line := range lines {
		if err := s.carts.AddLine(ctx, userID, line.ProductID, line.Quantity); err != nil {
			s.log.Error("failed to restore cart line after checkout failure",
				zap.Int64("user_id", userID),
				zap.Int64("product_id", line.ProductID),
				zap.Error(err))
		}
	}
}

func (s *OrderService) ListMine(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, Internal("failed to list orders", err)
	}
	return orders, nil
}

// Get returns an order to its owner or to an admin.
func (s *OrderService) Get(ctx context.Context, orderID int64, requester domain.SafeAccount) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if errors.Is(err, store.ErrOrderNotFound) {
		return nil, NotFound("Order not found")
	}
	if err != nil {
		return nil, Internal("failed to load order", err)
	}
	if !requester.IsAdmin && order.UserID != requester.ID {
		return nil, Forbidden("Not allowed to access this order")
	}
	return &order, nil
}
