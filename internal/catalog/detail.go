package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/api"
	"storefront/internal/storage"
)

// Detail is the product detail view-model. It owns the desired quantity,
// bounded by the product's stock, and the local add-to-cart checks that run
// before any network call.
type Detail struct {
	gw     Gateway
	store  TokenStore
	logger *zap.Logger

	product *api.Product
	qty     int
	cartID  string
}

// NewDetail creates the detail view-model. The cart token is read once,
// here.
func NewDetail(gw Gateway, store TokenStore, logger *zap.Logger) *Detail {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detail{
		gw:     gw,
		store:  store,
		logger: logger,
		cartID: store.Get(storage.KeyCartID),
	}
}

// Open resolves a product by id. On failure the view holds no product and
// renders its empty state; an out-of-stock product forces the quantity to 0.
func (d *Detail) Open(ctx context.Context, id int) error {
	p, err := d.gw.GetProduct(ctx, id)
	if err != nil {
		d.product = nil
		d.qty = 0
		return fmt.Errorf("failed to load product %d: %w", id, err)
	}
	d.product = p
	if p.StockQty <= 0 {
		d.qty = 0
	} else {
		d.qty = 1
	}
	return nil
}

// Product returns the resolved product, nil when the lookup failed.
func (d *Detail) Product() *api.Product { return d.product }

// Qty returns the desired quantity.
func (d *Detail) Qty() int { return d.qty }

// OutOfStock reports whether there is nothing to add.
func (d *Detail) OutOfStock() bool {
	return d.product == nil || d.product.StockQty <= 0
}

// Inc raises the desired quantity while it is below the stock.
func (d *Detail) Inc() {
	if d.OutOfStock() {
		return
	}
	if d.qty < d.product.StockQty {
		d.qty++
	}
	d.clampEdit()
}

// Dec lowers the desired quantity while it is above 1.
func (d *Detail) Dec() {
	if d.OutOfStock() {
		return
	}
	if d.qty > 1 {
		d.qty--
	}
	d.clampEdit()
}

// SetQty applies a direct edit of the desired quantity, clamped into
// [1, stock]. Out of stock keeps the forced 0.
func (d *Detail) SetQty(qty int) {
	if d.OutOfStock() {
		d.qty = 0
		return
	}
	d.qty = qty
	d.clampEdit()
}

func (d *Detail) clampEdit() {
	max := d.product.StockQty
	if d.qty > max {
		d.qty = max
	}
	if d.qty < 1 {
		d.qty = 1
	}
}

// AddToCart submits the desired quantity. Requests that exceed stock or fall
// below 1 are rejected locally with no network call; a successful add
// persists the returned cart token as the single active cart.
func (d *Detail) AddToCart(ctx context.Context) (string, error) {
	if d.OutOfStock() {
		return "", nil
	}

	desired := d.qty
	stock := d.product.StockQty
	if desired > stock {
		d.qty = stock
		return fmt.Sprintf("Requested quantity (%d) exceeds available stock (%d).", desired, stock), nil
	}
	if desired < 1 {
		d.qty = 1
		return "Minimum quantity is 1.", nil
	}

	resp, err := d.gw.AddToCart(ctx, api.AddToCartRequest{
		CartID:    d.cartID,
		ProductID: d.product.ID,
		Qty:       desired,
	})
	if err != nil {
		msg := "Failed to add to cart."
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		d.logger.Warn("add to cart failed",
			zap.Int("product_id", d.product.ID), zap.Int("qty", desired), zap.Error(err))
		return msg, nil
	}

	if resp.CartID != "" {
		d.cartID = resp.CartID
		if err := d.store.Set(storage.KeyCartID, resp.CartID); err != nil {
			d.logger.Warn("failed to persist cart token", zap.Error(err))
		}
	}
	if resp.Message != "" {
		return resp.Message, nil
	}
	return "Added to cart.", nil
}
