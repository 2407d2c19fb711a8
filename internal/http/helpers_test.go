package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/service"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testTimeout = 5 * time.Second

type testApp struct {
	handler  http.Handler
	services Services
	carts    *store.MemoryCarts
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()
	catalog := store.NewMemoryCatalog()
	accounts := store.NewMemoryAccounts()
	sessions := store.NewMemorySessions(0)
	carts := store.NewMemoryCarts()
	orders := store.NewMemoryOrders()
	t.Cleanup(func() { sessions.Close() })

	require.NoError(t, store.SeedCatalog(ctx, catalog, store.DemoProducts))
	_, err := store.SeedAdmin(ctx, accounts, "Admin User", "admin@example.com", "admin123")
	require.NoError(t, err)

	log := zap.NewNop()
	locks := service.NewUserLocks()
	svc := Services{
		Auth:    service.NewAuthService(accounts, sessions, 0, log),
		Catalog: service.NewCatalogService(catalog),
		Cart:    service.NewCartService(carts, catalog, locks, log),
		Orders:  service.NewOrderService(orders, carts, catalog, locks, nil, log),
	}
	opts := Options{
		ServiceName:        "ecommerce-server",
		RequestTimeout:     testTimeout,
		MaxRequestBodySize: 1 << 10,
		AllowedOrigins:     []string{"http://localhost:5173"},
	}
	return &testApp{handler: NewRouter(opts, svc, log), services: svc, carts: carts}
}

// do sends a request through the full router; body may be nil, a string or any JSON-marshalable value.
func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) signup(t *testing.T, name, email, password string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[service.AuthResult](t, rec).Token
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@example.com", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[service.AuthResult](t, rec).Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), rec.Body.String())
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorResponse](t, rec).Message
}

// withRoute builds a request the way chi hands it to a handler: URL params and an authenticated account.
func withRoute(req *http.Request, account *domain.SafeAccount, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if account != nil {
		ctx = context.WithValue(ctx, accountKey, *account)
	}
	return req.WithContext(ctx)
}
