package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/logger"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/service"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type ctxKey int

const (
	accountKey ctxKey = iota
	tokenKey
)

// RequestIDMiddleware echoes the request id chosen by middleware.RequestID back to the client
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestID := middleware.GetReqID(r.Context()); requestID != "" {
			w.Header().Set("X-Request-ID", requestID)
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger stores a request-scoped logger in the context and logs every request once it completes.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.With(zap.String("request_id", middleware.GetReqID(r.Context())))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), reqLog)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := append(logger.TraceFields(r.Context()),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)))
			if status >= http.StatusInternalServerError {
				reqLog.Warn("request", fields...)
				return
			}
			reqLog.Info("request", fields...)
		})
	}
}

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth resolves the bearer token to an account or answers 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := service.TokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		account, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, account)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := accountFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, service.KindAuth.String(), "Missing or invalid auth token")
			return
		}
		if err := service.RequireAdmin(account); err != nil {
			handleServiceError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func accountFromContext(ctx context.Context) (domain.SafeAccount, bool) {
	account, ok := ctx.Value(accountKey).(domain.SafeAccount)
	return account, ok
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
