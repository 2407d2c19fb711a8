package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededCatalog(t *testing.T) *MemoryCatalog {
	catalog := NewMemoryCatalog()
	require.NoError(t, SeedCatalog(context.Background(), catalog, DemoProducts))
	return catalog
}

func TestMemoryCatalog_SeedAssignsSequentialIDs(t *testing.T) {
	catalog := seededCatalog(t)

	products, err := catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 4)
	for i, p := range products {
		assert.Equal(t, int64(i+1), p.ID)
	}
	assert.Equal(t, "Stainless Bottle", products[3].Name)
}

func TestMemoryCatalog_IDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	catalog := seededCatalog(t)

	_, err := catalog.Delete(ctx, 4)
	require.NoError(t, err)

	created, err := catalog.Create(ctx, domain.Product{Name: "Mug"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
}

func TestMemoryCatalog_GetAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	catalog := seededCatalog(t)

	_, err := catalog.Get(ctx, 99)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = catalog.Delete(ctx, 99)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = catalog.Update(ctx, 99, domain.ProductPatch{})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryCatalog_UpdateAppliesPatch(t *testing.T) {
	ctx := context.Background()
	catalog := seededCatalog(t)
	price := 15.0

	updated, err := catalog.Update(ctx, 1, domain.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 15.0, updated.Price)
	assert.Equal(t, "Classic White Tee", updated.Name)

	fetched, err := catalog.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)
}

func TestMemoryCatalog_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	catalog := seededCatalog(t)

	products, _ := catalog.List(ctx)
	products[0].Name = "mutated"

	fetched, _ := catalog.Get(ctx, 1)
	assert.Equal(t, "Classic White Tee", fetched.Name)
}

func TestMemoryAccounts_EmailUniqueCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	accounts := NewMemoryAccounts()

	alice, err := accounts.Create(ctx, domain.Account{Name: "Alice", Email: "Alice@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)
	assert.Equal(t, "alice@example.com", alice.Email)

	_, err = accounts.Create(ctx, domain.Account{Name: "Other", Email: " ALICE@example.com "})
	assert.ErrorIs(t, err, ErrEmailTaken)

	found, err := accounts.FindByEmail(ctx, "alice@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, alice, found)

	_, err = accounts.FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestMemoryAccounts_ConcurrentSignupsSameEmail(t *testing.T) {
	ctx := context.Background()
	accounts := NewMemoryAccounts()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := accounts.Create(ctx, domain.Account{Email: "race@example.com"}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}

func TestMemoryCarts_AddIncrementsExistingLine(t *testing.T) {
	ctx := context.Background()
	carts := NewMemoryCarts()

	require.NoError(t, carts.AddLine(ctx, 1, 10, 2))
	require.NoError(t, carts.AddLine(ctx, 1, 11, 1))
	require.NoError(t, carts.AddLine(ctx, 1, 10, 3))

	lines, err := carts.Lines(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.CartLine{{ProductID: 10, Quantity: 5}, {ProductID: 11, Quantity: 1}}, lines)
}

func TestMemoryCarts_AddRejectsQuantityPastLimit(t *testing.T) {
	ctx := context.Background()
	carts := NewMemoryCarts()

	require.NoError(t, carts.AddLine(ctx, 1, 10, domain.MaxQuantity-1))
	require.NoError(t, carts.AddLine(ctx, 1, 10, 1))
	assert.ErrorIs(t, carts.AddLine(ctx, 1, 10, 1), ErrQuantityLimit)
	assert.ErrorIs(t, carts.AddLine(ctx, 1, 11, domain.MaxQuantity+1), ErrQuantityLimit)

	lines, err := carts.Lines(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.CartLine{{ProductID: 10, Quantity: domain.MaxQuantity}}, lines)
}

func TestMemoryCarts_SetQuantity(t *testing.T) {
	ctx := context.Background()
	carts := NewMemoryCarts()
	require.NoError(t, carts.AddLine(ctx, 1, 10, 2))

	require.NoError(t, carts.SetQuantity(ctx, 1, 10, 7))
	lines, _ := carts.Lines(ctx, 1)
	assert.Equal(t, []domain.CartLine{{ProductID: 10, Quantity: 7}}, lines)

	require.NoError(t, carts.SetQuantity(ctx, 1, 10, 0))
	lines, _ = carts.Lines(ctx, 1)
	assert.Empty(t, lines)

	assert.ErrorIs(t, carts.SetQuantity(ctx, 1, 10, 1), ErrLineNotFound)
}

func TestMemoryCarts_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	carts := NewMemoryCarts()
	require.NoError(t, carts.AddLine(ctx, 1, 10, 2))
	require.NoError(t, carts.AddLine(ctx, 2, 10, 2))

	assert.ErrorIs(t, carts.RemoveLine(ctx, 1, 99), ErrLineNotFound)
	require.NoError(t, carts.RemoveLine(ctx, 1, 10))
	lines, _ := carts.Lines(ctx, 1)
	assert.Empty(t, lines)

	require.NoError(t, carts.Clear(ctx, 2))
	require.NoError(t, carts.Clear(ctx, 3), "clearing an absent cart succeeds")
	lines, _ = carts.Lines(ctx, 2)
	assert.Empty(t, lines)
}

func TestMemoryOrders_AppendAndList(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrders()

	first, err := orders.Append(ctx, domain.Order{UserID: 1, Total: 10})
	require.NoError(t, err)
	_, err = orders.Append(ctx, domain.Order{UserID: 2, Total: 20})
	require.NoError(t, err)
	third, err := orders.Append(ctx, domain.Order{UserID: 1, Total: 30})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(3), third.ID)

	mine, err := orders.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, []int64{1, 3}, []int64{mine[0].ID, mine[1].ID})

	none, err := orders.ListByUser(ctx, 9)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = orders.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMemorySessions_GetSaveDelete(t *testing.T) {
	ctx := context.Background()
	sessions := NewMemorySessions(0)
	t.Cleanup(func() { sessions.Close() })

	require.NoError(t, sessions.Save(ctx, domain.Session{Token: "abc", UserID: 3}))

	got, err := sessions.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.UserID)

	require.NoError(t, sessions.Delete(ctx, "abc"))
	_, err = sessions.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessions_ExpiredIsNotFound(t *testing.T) {
	ctx := context.Background()
	sessions := NewMemorySessions(0)
	t.Cleanup(func() { sessions.Close() })

	require.NoError(t, sessions.Save(ctx, domain.Session{Token: "old", UserID: 1, ExpiresAt: time.Now().Add(-time.Second)}))

	_, err := sessions.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessions_CleanupLoopPurgesExpired(t *testing.T) {
	ctx := context.Background()
	sessions := NewMemorySessions(10 * time.Millisecond)
	t.Cleanup(func() { sessions.Close() })

	require.NoError(t, sessions.Save(ctx, domain.Session{Token: "old", ExpiresAt: time.Now().Add(-time.Second)}))
	require.NoError(t, sessions.Save(ctx, domain.Session{Token: "live"}))

	require.Eventually(t, func() bool {
		return sessions.Len() == 1
	}, time.Second, 10*time.Millisecond, "expired session was not purged")

	_, err := sessions.Get(ctx, "live")
	assert.NoError(t, err)
}

func TestMemorySessions_CloseIsIdempotent(t *testing.T) {
	sessions := NewMemorySessions(time.Millisecond)
	assert.NoError(t, sessions.Close())
	assert.NoError(t, sessions.Close())
}
