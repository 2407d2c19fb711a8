package domain

import "strings"

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// ProductPatch carries already validated and normalized fields; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Stock       *int
}

// Apply copies every non-nil field of the patch onto p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
}

// ProductFilter is a conjunction of optional predicates. Zero values match everything.
type ProductFilter struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

func (f ProductFilter) Matches(p Product) bool {
	if f.Category != "" && p.Category != strings.ToLower(f.Category) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// NormalizeCategory lowercases and trims a category name.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
