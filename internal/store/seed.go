package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
)

// DemoProducts is the starter catalog; ids 1-4 are assigned in this order.
var DemoProducts = []domain.Product{
	{
		Name:        "Classic White Tee",
		Description: "Soft cotton t-shirt for everyday wear.",
		Category:    "apparel",
		Price:       19.99,
		Stock:       50,
	},
	{
		Name:        "Wireless Earbuds",
		Description: "Compact earbuds with charging case and clear sound.",
		Category:    "electronics",
		Price:       59.99,
		Stock:       35,
	},
	{
		Name:        "Running Shoes",
		Description: "Lightweight running shoes with cushioned support.",
		Category:    "footwear",
		Price:       89.99,
		Stock:       20,
	},
	{
		Name:        "Stainless Bottle",
		Description: "Insulated bottle that keeps drinks cold for hours.",
		Category:    "home",
		Price:       24.5,
		Stock:       40,
	},
}

// SeedCatalog inserts products in order, letting the store assign ids.
func SeedCatalog(ctx context.Context, catalog CatalogStore, products []domain.Product) error {
	for _, p := range products {
		if _, err := catalog.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}
	return nil
}

// SeedAdmin creates the administrator account.
func SeedAdmin(ctx context.Context, accounts AccountStore, name, email, password string) (domain.Account, error) {
	admin, err := accounts.Create(ctx, domain.Account{
		Name:      name,
		Email:     email,
		Password:  password,
		IsAdmin:   true,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to seed admin: %w", err)
	}
	return admin, nil
}
