package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	msgLineGone       = "Cart item not found"
	msgAddItemInvalid = "Valid productId and quantity required"
)

type CartService struct {
	carts   store.CartStore
	catalog store.CatalogStore
	locks   *UserLocks
	log     *zap.Logger
	sfg     singleflight.Group // collapses concurrent reads of the same cart
}

// NewCartService shares locks with the OrderService so checkout and cart edits of one account never interleave.
func NewCartService(carts store.CartStore, catalog store.CatalogStore, locks *UserLocks, log *zap.Logger) *CartService {
	return &CartService{
		carts:   carts,
		catalog: catalog,
		locks:   locks,
		log:     log,
	}
}

// View returns the cart joined against the current catalog.
// The shared read runs under the account lock and leaves the group before releasing it,
// so callers only join a read that cannot predate a completed cart mutation or checkout.
func (s *CartService) View(ctx context.Context, userID int64) (*domain.CartView, error) {
	key := strconv.FormatInt(userID, 10)
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		unlock := s.locks.Lock(userID)
		defer unlock()
		defer s.sfg.Forget(key)
		return s.buildView(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CartView), nil
}

func (s *CartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (*domain.CartView, error) {
	if productID <= 0 || quantity <= 0 || quantity > domain.MaxQuantity {
		return nil, Validation(msgAddItemInvalid)
	}
	// Checked outside the lock; a product deleted in between surfaces as unavailable in the view.
	if _, err := s.catalog.Get(ctx, productID); err != nil {
		return nil, productError(err)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.carts.AddLine(ctx, userID, productID, quantity); err != nil {
		if errors.Is(err, store.ErrQuantityLimit) {
			return nil, Validation(msgAddItemInvalid)
		}
		s.log.Error("cart add line failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, Internal("failed to add item to cart", err)
	}
	return s.buildView(ctx, userID)
}

// UpdateItem sets the quantity of an existing line; zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID int64, quantity int) (*domain.CartView, error) {
	if quantity < 0 {
		return nil, Validation("quantity must be >= 0")
	}
	if quantity > domain.MaxQuantity {
		return nil, Validation("quantity too large")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.carts.SetQuantity(ctx, userID, productID, quantity); err != nil {
		return nil, s.lineError(userID, err)
	}
	return s.buildView(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) (*domain.CartView, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.carts.RemoveLine(ctx, userID, productID); err != nil {
		return nil, s.lineError(userID, err)
	}
	return s.buildView(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) (*domain.CartView, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.carts.Clear(ctx, userID); err != nil {
		s.log.Error("cart clear failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, Internal("failed to clear cart", err)
	}
	return domain.EmptyCartView(), nil
}

func (s *CartService) buildView(ctx context.Context, userID int64) (*domain.CartView, error) {
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, Internal("failed to load cart", err)
	}
	lookup, err := catalogLookup(ctx, s.catalog)
	if err != nil {
		return nil, err
	}
	return domain.BuildCartView(lines, lookup), nil
}

func (s *CartService) lineError(userID int64, err error) error {
	if errors.Is(err, store.ErrLineNotFound) {
		return NotFound(msgLineGone)
	}
	s.log.Error("cart update failed", zap.Int64("user_id", userID), zap.Error(err))
	return Internal("failed to update cart", err)
}

// catalogLookup snapshots the catalog once so a view or an order is priced against one consistent state.
func catalogLookup(ctx context.Context, catalog store.CatalogStore) (func(int64) (domain.Product, bool), error) {
	products, err := catalog.List(ctx)
	if err != nil {
		return nil, Internal("failed to load catalog", err)
	}
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return func(id int64) (domain.Product, bool) {
		p, ok := byID[id]
		return p, ok
	}, nil
}
