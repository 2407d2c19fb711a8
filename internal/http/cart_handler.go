package http

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/service"
	"github.com/go-chi/chi/v5"
)

const (
	msgAddItemInvalid = "Valid productId and quantity required"
	msgQuantityNeg    = "quantity must be >= 0"
	msgCartLineGone   = "Cart item not found"
)

type CartHandler struct {
	cart    *service.CartService
	timeout time.Duration
}

func NewCartHandler(cart *service.CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    cart,
		timeout: timeout,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	view, err := h.cart.View(ctx, account.ID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// AddItem adds quantity (default 1 when omitted) of a product, incrementing an existing line.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	p, err := decodePayload(r)
	if err != nil {
		respondDecodeError(w, err)
		return
	}
	rawID, _ := p.number("productId")
	productID, okID := asInt(rawID)
	quantity, okQty := asInt(p.count("quantity", 1))
	if !okID || !okQty || productID <= 0 || quantity <= 0 {
		respondError(w, http.StatusBadRequest, service.KindValidation.String(), msgAddItemInvalid)
		return
	}

	view, err := h.cart.AddItem(ctx, account.ID, productID, int(quantity))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// UpdateQuantity sets a line's quantity; zero or null removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	p, err := decodePayload(r)
	if err != nil {
		respondDecodeError(w, err)
		return
	}
	quantity, okQty := asInt(p.count("quantity", math.NaN()))
	if !okQty || quantity < 0 {
		respondError(w, http.StatusBadRequest, service.KindValidation.String(), msgQuantityNeg)
		return
	}

	productID, ok := parseID(chi.URLParam(r, "productId"))
	if !ok {
		respondError(w, http.StatusNotFound, service.KindNotFound.String(), msgCartLineGone)
		return
	}

	view, err := h.cart.UpdateItem(ctx, account.ID, productID, int(quantity))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	productID, ok := parseID(chi.URLParam(r, "productId"))
	if !ok {
		respondError(w, http.StatusNotFound, service.KindNotFound.String(), msgCartLineGone)
		return
	}

	view, err := h.cart.RemoveItem(ctx, account.ID, productID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	view, err := h.cart.Clear(ctx, account.ID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}
