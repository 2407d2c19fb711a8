package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/service"
	"github.com/go-chi/chi/v5"
)

const msgProductNotFound = "Product not found"

type ProductHandler struct {
	catalog *service.CatalogService
	timeout time.Duration
}

func NewProductHandler(catalog *service.CatalogService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type productListResponse struct {
	Count    int              `json:"count"`
	Products []domain.Product `json:"products"`
}

type productResponse struct {
	Product domain.Product `json:"product"`
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	filter := domain.ProductFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		MinPrice: queryPrice(r, "minPrice"),
		MaxPrice: queryPrice(r, "maxPrice"),
	}

	products, err := h.catalog.List(ctx, filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, productListResponse{Count: len(products), Products: products})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, service.KindNotFound.String(), msgProductNotFound)
		return
	}

	product, err := h.catalog.Get(ctx, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, productResponse{Product: product})
}
