package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/store"
	"go.uber.org/zap"
)

const tokenBytes = 24

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	User  domain.SafeAccount `json:"user"`
	Token string             `json:"token"`
}

type AuthService struct {
	accounts   store.AccountStore
	sessions   store.SessionStore
	sessionTTL time.Duration
	log        *zap.Logger

	now      func() time.Time
	newToken func() (string, error)
}

// NewAuthService creates the account and session service. A zero sessionTTL issues sessions that never expire.
func NewAuthService(accounts store.AccountStore, sessions store.SessionStore, sessionTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		accounts:   accounts,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		log:        log,
		now:        time.Now,
		newToken:   randomToken,
	}
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, Validation("name, email and password are required")
	}

	account, err := s.accounts.Create(ctx, domain.Account{
		Name:      name,
		Email:     email,
		Password:  in.Password,
		IsAdmin:   false,
		CreatedAt: s.now().UTC(),
	})
	if errors.Is(err, store.ErrEmailTaken) {
		return nil, Conflict("Email already registered")
	}
	if err != nil {
		return nil, Internal("failed to create account", err)
	}

	token, err := s.openSession(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info("account created", zap.Int64("user_id", account.ID))
	return &AuthResult{User: account.Safe(), Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, Validation("email and password are required")
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrAccountNotFound) {
		return nil, Auth("Invalid credentials")
	}
	if err != nil {
		return nil, Internal("failed to look up account", err)
	}
	if account.Password != password {
		return nil, Auth("Invalid credentials")
	}

	token, err := s.openSession(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: account.Safe(), Token: token}, nil
}

// TokenFromHeader extracts the token of an "Authorization: Bearer <token>" header.
func TokenFromHeader(header string) (string, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
		return "", Auth("Missing or invalid auth token")
	}
	return token, nil
}

// Authenticate resolves a bearer token to the account holding it.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.SafeAccount, error) {
	if token == "" {
		return domain.SafeAccount{}, Auth("Missing or invalid auth token")
	}

	session, err := s.sessions.Get(ctx, token)
	if errors.Is(err, store.ErrSessionNotFound) {
		return domain.SafeAccount{}, Auth("Session not found or expired")
	}
	if err != nil {
		return domain.SafeAccount{}, Internal("failed to load session", err)
	}

	account, err := s.accounts.FindByID(ctx, session.UserID)
	if errors.Is(err, store.ErrAccountNotFound) {
		return domain.SafeAccount{}, Auth("User not found")
	}
	if err != nil {
		return domain.SafeAccount{}, Internal("failed to load account", err)
	}
	return account.Safe(), nil
}

// Logout revokes a single session; other sessions of the same account stay valid.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return Internal("failed to revoke session", err)
	}
	return nil
}

func RequireAdmin(account domain.SafeAccount) error {
	if !account.IsAdmin {
		return Forbidden("Admin access required")
	}
	return nil
}

func (s *AuthService) openSession(ctx context.Context, userID int64) (string, error) {
	token, err := s.newToken()
	if err != nil {
		return "", Internal("failed to generate token", err)
	}

	now := s.now().UTC()
	session := domain.Session{Token: token, UserID: userID, CreatedAt: now}
	if s.sessionTTL > 0 {
		session.ExpiresAt = now.Add(s.sessionTTL)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", Internal("failed to store session", err)
	}
	return token, nil
}

func randomToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
