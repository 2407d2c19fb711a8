package store

import (
	"context"
	"errors"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
)

// Common errors returned by the stores
var (
	ErrProductNotFound = errors.New("product not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrQuantityLimit   = errors.New("cart line quantity limit exceeded")
	ErrOrderNotFound   = errors.New("order not found")
)

// CatalogStore holds products in insertion order.
type CatalogStore interface {
	// List returns every product in store order
	List(ctx context.Context) ([]domain.Product, error)

	Get(ctx context.Context, id int64) (domain.Product, error)

	// Create assigns the next product id, ignoring p.ID
	Create(ctx context.Context, p domain.Product) (domain.Product, error)

	// Update applies the patch atomically and returns the updated product
	Update(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error)

	// Delete removes the product and returns the removed record
	Delete(ctx context.Context, id int64) (domain.Product, error)
}

// AccountStore keeps accounts unique by normalized email.
type AccountStore interface {
	// Create assigns the next account id; returns ErrEmailTaken when the email is in use
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
	FindByEmail(ctx context.Context, email string) (domain.Account, error)
	FindByID(ctx context.Context, id int64) (domain.Account, error)
}

// SessionStore maps bearer tokens to account ids.
type SessionStore interface {
	Save(ctx context.Context, s domain.Session) error

	// Get returns ErrSessionNotFound for unknown and expired tokens alike
	Get(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// CartStore keeps one ordered list of lines per account. A missing cart behaves as an empty one.
type CartStore interface {
	Lines(ctx context.Context, userID int64) ([]domain.CartLine, error)

	// AddLine increments an existing line or appends a new one; returns ErrQuantityLimit past domain.MaxQuantity
	AddLine(ctx context.Context, userID, productID int64, quantity int) error

	// SetQuantity overwrites the quantity of an existing line; zero removes the line
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error

	RemoveLine(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}

// OrderStore is an append-only ledger.
type OrderStore interface {
	// Append assigns the next order id, ignoring o.ID
	Append(ctx context.Context, o domain.Order) (domain.Order, error)
	Get(ctx context.Context, id int64) (domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}
