package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/service"
	"github.com/go-chi/chi/v5"
)

// AdminHandler serves catalog management; routes are mounted behind RequireAuth and RequireAdmin.
type AdminHandler struct {
	catalog *service.CatalogService
	timeout time.Duration
}

func NewAdminHandler(catalog *service.CatalogService, timeout time.Duration) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type deletedResponse struct {
	Deleted domain.Product `json:"deleted"`
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.List(ctx, domain.ProductFilter{})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, productListResponse{Count: len(products), Products: products})
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := decodePayload(r)
	if err != nil {
		respondDecodeError(w, err)
		return
	}
	in := service.ProductInput{}
	in.Name, _ = p.text("name")
	in.Description, _ = p.text("description")
	in.Category, _ = p.text("category")
	in.Price, _ = p.number("price")
	in.Stock, _ = p.number("stock")

	product, err := h.catalog.Create(ctx, in)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, productResponse{Product: product})
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, service.KindNotFound.String(), msgProductNotFound)
		return
	}

	p, err := decodePayload(r)
	if err != nil {
		respondDecodeError(w, err)
		return
	}

	product, err := h.catalog.Patch(ctx, id, service.ProductPatchInput{
		Name:        p.textPtr("name"),
		Description: p.textPtr("description"),
		Category:    p.textPtr("category"),
		Price:       p.numberPtr("price"),
		Stock:       p.numberPtr("stock"),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, productResponse{Product: product})
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, service.KindNotFound.String(), msgProductNotFound)
		return
	}

	deleted, err := h.catalog.Delete(ctx, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, deletedResponse{Deleted: deleted})
}
