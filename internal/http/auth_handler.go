package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/service"
)

type AuthHandler struct {
	auth    *service.AuthService
	timeout time.Duration
}

func NewAuthHandler(auth *service.AuthService, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		timeout: timeout,
	}
}

type userResponse struct {
	User domain.SafeAccount `json:"user"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := decodePayload(r)
	if err != nil {
		respondDecodeError(w, err)
		return
	}
	name, _ := p.text("name")
	email, _ := p.text("email")
	password, _ := p.text("password")

	res, err := h.auth.Signup(ctx, service.SignupInput{Name: name, Email: email, Password: password})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := decodePayload(r)
	if err != nil {
		respondDecodeError(w, err)
		return
	}
	email, _ := p.text("email")
	password, _ := p.text("password")

	res, err := h.auth.Login(ctx, email, password)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := requireAccount(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, userResponse{User: account})
}

// Logout revokes the token the request was authenticated with.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if _, ok := requireAccount(w, r); !ok {
		return
	}
	if err := h.auth.Logout(ctx, tokenFromContext(r.Context())); err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

// requireAccount answers 401 when no authenticated account is attached to the request.
func requireAccount(w http.ResponseWriter, r *http.Request) (domain.SafeAccount, bool) {
	account, ok := accountFromContext(r.Context())
	if !ok || account.ID == 0 {
		respondError(w, http.StatusUnauthorized, service.KindAuth.String(), "Missing or invalid auth token")
		return domain.SafeAccount{}, false
	}
	return account, true
}
