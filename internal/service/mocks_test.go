package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errStoreDown = errors.New("store unavailable")

// fixture wires every service over fresh in-memory stores seeded with the demo catalog and an admin.
type fixture struct {
	catalog  *store.MemoryCatalog
	accounts *store.MemoryAccounts
	sessions *store.MemorySessions
	carts    *store.MemoryCarts
	orders   *store.MemoryOrders
	events   *recordingEvents

	auth      *AuthService
	catalogSv *CatalogService
	cart      *CartService
	order     *OrderService
	admin     domain.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		catalog:  store.NewMemoryCatalog(),
		accounts: store.NewMemoryAccounts(),
		sessions: store.NewMemorySessions(0),
		carts:    store.NewMemoryCarts(),
		orders:   store.NewMemoryOrders(),
		events:   &recordingEvents{},
	}
	t.Cleanup(func() { f.sessions.Close() })

	require.NoError(t, store.SeedCatalog(ctx, f.catalog, store.DemoProducts))
	admin, err := store.SeedAdmin(ctx, f.accounts, "Admin User", "admin@example.com", "admin123")
	require.NoError(t, err)
	f.admin = admin

	log := zap.NewNop()
	locks := NewUserLocks()
	f.auth = NewAuthService(f.accounts, f.sessions, 0, log)
	f.catalogSv = NewCatalogService(f.catalog)
	f.cart = NewCartService(f.carts, f.catalog, locks, log)
	f.order = NewOrderService(f.orders, f.carts, f.catalog, locks, f.events, log)
	return f
}

func (f *fixture) signup(t *testing.T, name, email string) *AuthResult {
	t.Helper()
	res, err := f.auth.Signup(context.Background(), SignupInput{Name: name, Email: email, Password: "pw-" + name})
	require.NoError(t, err)
	return res
}

type recordingEvents struct {
	m      sync.RWMutex
	orders []domain.Order
}

func (r *recordingEvents) Enqueue(order domain.Order) {
	r.m.Lock()
	defer r.m.Unlock()
	r.orders = append(r.orders, order)
}

func (r *recordingEvents) recorded() []domain.Order {
	r.m.RLock()
	defer r.m.RUnlock()
	return append([]domain.Order(nil), r.orders...)
}

// failingOrders rejects every append
type failingOrders struct {
	store.OrderStore
}

func (failingOrders) Append(context.Context, domain.Order) (domain.Order, error) {
	return domain.Order{}, errStoreDown
}

// failingSessions loses every write
type failingSessions struct {
	store.SessionStore
}

func (failingSessions) Save(context.Context, domain.Session) error {
	return errStoreDown
}

func (failingSessions) Get(context.Context, string) (domain.Session, error) {
	return domain.Session{}, errStoreDown
}

// vanishingAccounts forgets every account once created
type vanishingAccounts struct {
	*store.MemoryAccounts
}

func (vanishingAccounts) FindByID(context.Context, int64) (domain.Account, error) {
	return domain.Account{}, store.ErrAccountNotFound
}
