package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	orders  *service.OrderService
	timeout time.Duration
}

func NewOrdersHandler(orders *service.OrderService, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type orderResponse struct {
	Order *domain.Order `json:"order"`
}

type orderListResponse struct {
	Count  int            `json:"count"`
	Orders []domain.Order `json:"orders"`
}

func (h *OrdersHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	order, err := h.orders.Checkout(ctx, account.ID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, orderResponse{Order: order})
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.ListMine(ctx, account.ID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orderListResponse{Count: len(orders), Orders: orders})
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	orderID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, service.KindNotFound.String(), "Order not found")
		return
	}

	order, err := h.orders.Get(ctx, orderID, account)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orderResponse{Order: order})
}
