package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
)

// CartItem is a line in a server-side cart. UnitPrice and ProductName are
// snapshots taken at add time; MaxQty mirrors current stock and Subtotal is
// computed by the server.
type CartItem struct {
	ID          int             `json:"id"`
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Qty         int             `json:"qty"`
	MaxQty      int             `json:"max_qty"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Image       string          `json:"image,omitempty"`
}

// CartResponse is the authoritative cart state: items in server order plus
// the server-computed products total.
type CartResponse struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// AddToCartRequest adds qty units of a product to the cart identified by
// CartID. An empty CartID asks the server to create a new cart.
type AddToCartRequest struct {
	CartID    string `json:"cart_id,omitempty"`
	ProductID int    `json:"product_id"`
	Qty       int    `json:"qty"`
}

// AddToCartResponse returns the token of the cart the item landed in.
type AddToCartResponse struct {
	Message string `json:"message"`
	CartID  string `json:"cart_id"`
}

// UpdateCartItemResponse acknowledges a quantity update with the new cart
// total.
type UpdateCartItemResponse struct {
	Message   string          `json:"message"`
	ItemID    int             `json:"item_id"`
	CartTotal decimal.Decimal `json:"cart_total"`
}

// CheckoutRequest closes a cart with the selected shipping method.
type CheckoutRequest struct {
	CartID   string `json:"cart_id"`
	Shipping string `json:"shipping"`
}

// CheckoutResponse itemizes the final order totals. The shipping total is
// named "frete" on the wire.
type CheckoutResponse struct {
	Message       string          `json:"message"`
	TotalProducts decimal.Decimal `json:"total_products"`
	Shipping      decimal.Decimal `json:"frete"`
	Total         decimal.Decimal `json:"total"`
}

type updateCartItemRequest struct {
	Qty int `json:"qty"`
}

// AddToCart adds a product to a cart, creating the cart when no token is
// given.
func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) (*AddToCartResponse, error) {
	var out AddToCartResponse
	if err := c.doJSON(ctx, http.MethodPost, "/cart/add", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCart fetches the cart identified by the given token.
func (c *Client) GetCart(ctx context.Context, cartID string) (*CartResponse, error) {
	var out CartResponse
	if err := c.doJSON(ctx, http.MethodGet, "/cart/"+cartID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCartItem sets the quantity of a cart item by item id.
func (c *Client) UpdateCartItem(ctx context.Context, itemID, qty int) (*UpdateCartItemResponse, error) {
	var out UpdateCartItemResponse
	if err := c.doJSON(ctx, http.MethodPut, "/cart/item/"+strconv.Itoa(itemID), updateCartItemRequest{Qty: qty}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCartItem removes a cart item by item id.
func (c *Client) DeleteCartItem(ctx context.Context, itemID int) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/cart/item/"+strconv.Itoa(itemID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Checkout finalizes the cart and returns itemized totals.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	var out CheckoutResponse
	if err := c.doJSON(ctx, http.MethodPost, "/cart/checkout", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
