package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// net/http keeps idle connections in a background goroutine.
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, nil)
}

func TestListProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Whey","price":99.9,"stock_qty":4}]`))
	})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "Whey", products[0].Name)
	assert.True(t, decimal.NewFromFloat(99.9).Equal(products[0].Price))
	assert.Equal(t, 4, products[0].StockQty)
}

func TestGetProductNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/7", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"product not found"}`))
	})

	_, err := c.GetProduct(context.Background(), 7)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "product not found", apiErr.Message)
}

func TestErrorWithoutBodyMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	_, err := c.ListProducts(context.Background())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Empty(t, apiErr.Message)
	assert.Contains(t, apiErr.Error(), "500")
}

func TestUpsertProductPayload(t *testing.T) {
	var got map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":"saved"}`))
	})

	out, err := c.UpsertProduct(context.Background(), Product{
		ID:       3,
		Name:     "Creatine",
		Price:    decimal.NewFromInt(50),
		StockQty: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, "saved", out.Message)
	assert.Equal(t, float64(3), got["id"])
	assert.Equal(t, "Creatine", got["name"])
	assert.Equal(t, float64(12), got["stock_qty"])
}

func TestUpload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "photo.png", header.Filename)
		_, _ = w.Write([]byte(`{"filename":"1712-photo.png"}`))
	})

	out, err := c.Upload(context.Background(), "photo.png", strings.NewReader("fake-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "1712-photo.png", out.Filename)
}

func TestCartEndpoints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/cart/add":
			var req AddToCartRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, 2, req.ProductID)
			assert.Equal(t, 3, req.Qty)
			_, _ = w.Write([]byte(`{"message":"added","cart_id":"tok-1"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/cart/tok-1":
			_, _ = w.Write([]byte(`{"items":[{"id":9,"product_id":2,"product_name":"Whey","unit_price":10,"qty":3,"max_qty":5,"subtotal":30}],"total":30}`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/cart/item/9":
			var req map[string]int
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, 4, req["qty"])
			_, _ = w.Write([]byte(`{"message":"updated","item_id":9,"cart_total":40}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/cart/item/9":
			_, _ = w.Write([]byte(`{"message":"removed"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/cart/checkout":
			var req CheckoutRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "tok-1", req.CartID)
			assert.Equal(t, "express", req.Shipping)
			_, _ = w.Write([]byte(`{"message":"done","total_products":100,"frete":25,"total":125}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()

	added, err := c.AddToCart(ctx, AddToCartRequest{ProductID: 2, Qty: 3})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", added.CartID)

	cart, err := c.GetCart(ctx, "tok-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].MaxQty)
	assert.True(t, decimal.NewFromInt(30).Equal(cart.Total))

	updated, err := c.UpdateCartItem(ctx, 9, 4)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(updated.CartTotal))

	removed, err := c.DeleteCartItem(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "removed", removed.Message)

	checkout, err := c.Checkout(ctx, CheckoutRequest{CartID: "tok-1", Shipping: "express"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(125).Equal(checkout.Total))
}

func TestImageURL(t *testing.T) {
	c := NewClient("http://shop.local", 0, nil)
	assert.Equal(t, "http://shop.local/uploads/a.png", c.ImageURL("a.png"))
	assert.Empty(t, c.ImageURL(""))
}
