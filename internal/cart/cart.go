// Package cart holds the shopping-cart view-model: quantity reconciliation,
// the shipping table and checkout. Local state is never authoritative; every
// mutation ends with a reload of the server cart.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/api"
	"storefront/internal/storage"
)

// Gateway is the backend surface the cart needs.
type Gateway interface {
	GetCart(ctx context.Context, cartID string) (*api.CartResponse, error)
	UpdateCartItem(ctx context.Context, itemID, qty int) (*api.UpdateCartItemResponse, error)
	DeleteCartItem(ctx context.Context, itemID int) (*api.MessageResponse, error)
	Checkout(ctx context.Context, req api.CheckoutRequest) (*api.CheckoutResponse, error)
}

// TokenStore is the injected client-local persistent key/value capability.
type TokenStore interface {
	Get(key string) string
	Set(key, value string) error
	Remove(key string) error
}

// Clamp bounds a quantity into [1, max]. A non-positive max still yields 1;
// stock exhaustion is the server's call to make, not ours.
func Clamp(qty, max int) int {
	if qty > max {
		qty = max
	}
	if qty < 1 {
		qty = 1
	}
	return qty
}

// View is the cart view-model. It reads the cart token once at construction
// and replaces its item collection and products total with the server
// response after every mutating action.
type View struct {
	gw     Gateway
	store  TokenStore
	logger *zap.Logger

	cartID        string
	items         []api.CartItem
	productsTotal decimal.Decimal
	shipping      ShippingMethod
}

// NewView creates the cart view-model. The cart token and the remembered
// shipping choice are read from the store once, here.
func NewView(gw Gateway, store TokenStore, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	shipping := ShippingMethod(store.Get(storage.KeyShipping))
	if !shipping.Valid() {
		shipping = ShippingStandard
	}
	return &View{
		gw:            gw,
		store:         store,
		logger:        logger,
		cartID:        store.Get(storage.KeyCartID),
		productsTotal: decimal.Zero,
		shipping:      shipping,
	}
}

// CartID returns the active cart token, empty when no cart is open.
func (v *View) CartID() string { return v.cartID }

// Items returns the current item collection in server order.
func (v *View) Items() []api.CartItem { return v.items }

// ProductsTotal returns the server-reported products total.
func (v *View) ProductsTotal() decimal.Decimal { return v.productsTotal }

// Shipping returns the selected shipping method.
func (v *View) Shipping() ShippingMethod { return v.shipping }

// SetShipping changes the shipping selection and remembers it across runs.
func (v *View) SetShipping(m ShippingMethod) {
	if !m.Valid() {
		return
	}
	v.shipping = m
	if err := v.store.Set(storage.KeyShipping, string(m)); err != nil {
		v.logger.Warn("failed to persist shipping choice", zap.Error(err))
	}
}

// Total is the displayed grand total: the last-loaded products total plus
// the flat surcharge for the selected shipping method.
func (v *View) Total() decimal.Decimal {
	return v.productsTotal.Add(ShippingCost(v.shipping))
}

// Load replaces the item collection and products total with the server
// state. Without a token this is a no-op.
func (v *View) Load(ctx context.Context) error {
	if v.cartID == "" {
		return nil
	}
	resp, err := v.gw.GetCart(ctx, v.cartID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	v.items = resp.Items
	v.productsTotal = resp.Total
	return nil
}

// Inc raises an item's quantity by one and reconciles. At the stock ceiling
// it makes no network call and reports the maximum.
func (v *View) Inc(ctx context.Context, itemID int) (string, error) {
	item := v.find(itemID)
	if item == nil {
		return "", fmt.Errorf("no cart item with id %d", itemID)
	}
	if item.Qty >= item.MaxQty {
		return fmt.Sprintf("Maximum available: %d", item.MaxQty), nil
	}
	item.Qty++
	return v.reconcile(ctx, item)
}

// Dec lowers an item's quantity by one and reconciles. At quantity 1 it is a
// no-op with no network call.
func (v *View) Dec(ctx context.Context, itemID int) (string, error) {
	item := v.find(itemID)
	if item == nil {
		return "", fmt.Errorf("no cart item with id %d", itemID)
	}
	if item.Qty <= 1 {
		return "", nil
	}
	item.Qty--
	return v.reconcile(ctx, item)
}

// SetQty applies a direct quantity edit and reconciles.
func (v *View) SetQty(ctx context.Context, itemID, qty int) (string, error) {
	item := v.find(itemID)
	if item == nil {
		return "", fmt.Errorf("no cart item with id %d", itemID)
	}
	item.Qty = qty
	return v.reconcile(ctx, item)
}

// reconcile is the shared clamp-then-submit-then-reload cycle. The backend's
// post-update state is authoritative, so the cart is reloaded whether the
// submission succeeded or not.
func (v *View) reconcile(ctx context.Context, item *api.CartItem) (string, error) {
	notice := ""
	if clamped := Clamp(item.Qty, item.MaxQty); clamped != item.Qty {
		item.Qty = clamped
		notice = fmt.Sprintf("Quantity adjusted to %d (max: %d).", clamped, item.MaxQty)
	}

	itemID, qty := item.ID, item.Qty
	if _, err := v.gw.UpdateCartItem(ctx, itemID, qty); err != nil {
		msg := "Failed to update quantity."
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		v.logger.Warn("quantity update rejected",
			zap.Int("item_id", itemID), zap.Int("qty", qty), zap.Error(err))
		if loadErr := v.Load(ctx); loadErr != nil {
			return msg, loadErr
		}
		return msg, nil
	}

	if err := v.Load(ctx); err != nil {
		return notice, err
	}
	return notice, nil
}

// Remove deletes an item and reloads. A failed delete is not treated
// specially; the reload resynchronizes either way.
func (v *View) Remove(ctx context.Context, itemID int) error {
	if _, err := v.gw.DeleteCartItem(ctx, itemID); err != nil {
		v.logger.Warn("item removal failed", zap.Int("item_id", itemID), zap.Error(err))
	}
	return v.Load(ctx)
}

// Checkout closes the cart. Success clears the persisted token and resets
// all local state; failure leaves everything untouched so the user can retry.
func (v *View) Checkout(ctx context.Context) (string, error) {
	if v.cartID == "" {
		return "", nil
	}

	resp, err := v.gw.Checkout(ctx, api.CheckoutRequest{
		CartID:   v.cartID,
		Shipping: string(v.shipping),
	})
	if err != nil {
		msg := "Checkout failed."
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = "Checkout failed: " + apiErr.Message
		}
		v.logger.Warn("checkout failed", zap.String("cart_id", v.cartID), zap.Error(err))
		return msg, err
	}

	if err := v.store.Remove(storage.KeyCartID); err != nil {
		v.logger.Warn("failed to clear cart token", zap.Error(err))
	}
	v.cartID = ""
	v.items = nil
	v.productsTotal = decimal.Zero

	return fmt.Sprintf("Order complete.\nProducts: %s\nShipping: %s\nTotal: %s",
		resp.TotalProducts.StringFixed(2),
		resp.Shipping.StringFixed(2),
		resp.Total.StringFixed(2)), nil
}

func (v *View) find(itemID int) *api.CartItem {
	for i := range v.items {
		if v.items[i].ID == itemID {
			return &v.items[i]
		}
	}
	return nil
}
