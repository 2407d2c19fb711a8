package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/store"
)

// maxStock keeps stock within the range a JSON number can carry exactly.
const maxStock = 1<<53 - 1

const (
	msgProductFields = "name, description and category are required"
	msgPrice         = "price must be a valid positive number"
	msgStock         = "stock must be a valid integer >= 0"
	msgProductGone   = "Product not found"
)

// ProductInput is a create request. Price and Stock are NaN when absent or not numeric.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Stock       float64
}

// ProductPatchInput is a partial update; nil fields were not supplied.
type ProductPatchInput struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Stock       *float64
}

type CatalogService struct {
	catalog store.CatalogStore
}

func NewCatalogService(catalog store.CatalogStore) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// List returns the matching products in store order.
func (s *CatalogService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	all, err := s.catalog.List(ctx)
	if err != nil {
		return nil, Internal("failed to list products", err)
	}

	matched := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.catalog.Get(ctx, id)
	if err != nil {
		return domain.Product{}, productError(err)
	}
	return p, nil
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	category := domain.NormalizeCategory(in.Category)
	if name == "" || description == "" || category == "" {
		return domain.Product{}, Validation(msgProductFields)
	}
	price, err := validPrice(in.Price)
	if err != nil {
		return domain.Product{}, err
	}
	stock, err := validStock(in.Stock)
	if err != nil {
		return domain.Product{}, err
	}

	p, err := s.catalog.Create(ctx, domain.Product{
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		Stock:       stock,
	})
	if err != nil {
		return domain.Product{}, Internal("failed to create product", err)
	}
	return p, nil
}

// Patch validates every supplied field before any of them is applied.
func (s *CatalogService) Patch(ctx context.Context, id int64, in ProductPatchInput) (domain.Product, error) {
	if _, err := s.catalog.Get(ctx, id); err != nil {
		return domain.Product{}, productError(err)
	}

	var patch domain.ProductPatch
	var err error
	if patch.Name, err = patchText(in.Name, strings.TrimSpace); err != nil {
		return domain.Product{}, err
	}
	if patch.Description, err = patchText(in.Description, strings.TrimSpace); err != nil {
		return domain.Product{}, err
	}
	if patch.Category, err = patchText(in.Category, domain.NormalizeCategory); err != nil {
		return domain.Product{}, err
	}
	if in.Price != nil {
		price, err := validPrice(*in.Price)
		if err != nil {
			return domain.Product{}, err
		}
		patch.Price = &price
	}
	if in.Stock != nil {
		stock, err := validStock(*in.Stock)
		if err != nil {
			return domain.Product{}, err
		}
		patch.Stock = &stock
	}

	p, err := s.catalog.Update(ctx, id, patch)
	if err != nil {
		return domain.Product{}, productError(err)
	}
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.catalog.Delete(ctx, id)
	if err != nil {
		return domain.Product{}, productError(err)
	}
	return p, nil
}

func productError(err error) error {
	if errors.Is(err, store.ErrProductNotFound) {
		return NotFound(msgProductGone)
	}
	return Internal("catalog failure", err)
}

func patchText(in *string, normalize func(string) string) (*string, error) {
	if in == nil {
		return nil, nil
	}
	v := normalize(*in)
	if v == "" {
		return nil, Validation(msgProductFields)
	}
	return &v, nil
}

func validPrice(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, Validation(msgPrice)
	}
	return domain.RoundPrice(v), nil
}

func validStock(v float64) (int, error) {
	if math.IsNaN(v) || v != math.Trunc(v) || v < 0 || v > maxStock {
		return 0, Validation(msgStock)
	}
	return int(v), nil
}
