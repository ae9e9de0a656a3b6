// Package catalog holds the product browsing view-models: the flat catalog
// list and the product detail page with its add-to-cart quantity rules.
package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/api"
)

// Gateway is the backend surface the catalog views need.
type Gateway interface {
	ListProducts(ctx context.Context) ([]api.Product, error)
	GetProduct(ctx context.Context, id int) (*api.Product, error)
	AddToCart(ctx context.Context, req api.AddToCartRequest) (*api.AddToCartResponse, error)
}

// TokenStore persists the cart token across view activations.
type TokenStore interface {
	Get(key string) string
	Set(key, value string) error
	Remove(key string) error
}

// List is the catalog view-model: the full product list, no pagination, no
// filtering, no sorting.
type List struct {
	gw       Gateway
	logger   *zap.Logger
	products []api.Product
}

// NewList creates the catalog list view-model.
func NewList(gw Gateway, logger *zap.Logger) *List {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &List{gw: gw, logger: logger}
}

// Load fetches the full product list.
func (l *List) Load(ctx context.Context) error {
	products, err := l.gw.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	l.products = products
	return nil
}

// Products returns the loaded catalog.
func (l *List) Products() []api.Product { return l.products }
