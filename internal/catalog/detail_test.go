package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/api"
	"storefront/internal/storage"
)

type fakeGateway struct {
	products map[int]api.Product

	listCalls int
	addCalls  int
	lastAdd   api.AddToCartRequest
	addErr    error
	addResp   api.AddToCartResponse
}

func (f *fakeGateway) ListProducts(_ context.Context) ([]api.Product, error) {
	f.listCalls++
	out := make([]api.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeGateway) GetProduct(_ context.Context, id int) (*api.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, &api.Error{Status: 404, Message: "product not found"}
	}
	return &p, nil
}

func (f *fakeGateway) AddToCart(_ context.Context, req api.AddToCartRequest) (*api.AddToCartResponse, error) {
	f.addCalls++
	f.lastAdd = req
	if f.addErr != nil {
		return nil, f.addErr
	}
	resp := f.addResp
	if resp.CartID == "" {
		resp.CartID = "tok-new"
	}
	return &resp, nil
}

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore { return &fakeStore{values: map[string]string{}} }

func (s *fakeStore) Get(key string) string       { return s.values[key] }
func (s *fakeStore) Set(key, value string) error { s.values[key] = value; return nil }
func (s *fakeStore) Remove(key string) error     { delete(s.values, key); return nil }

func stocked(id, stock int) map[int]api.Product {
	return map[int]api.Product{
		id: {ID: id, Name: "Whey", Price: decimal.NewFromInt(50), StockQty: stock},
	}
}

func TestListLoad(t *testing.T) {
	gw := &fakeGateway{products: stocked(1, 3)}
	l := NewList(gw, nil)
	require.NoError(t, l.Load(context.Background()))
	assert.Len(t, l.Products(), 1)
	assert.Equal(t, 1, gw.listCalls)
}

func TestOpenOutOfStockForcesZero(t *testing.T) {
	gw := &fakeGateway{products: stocked(1, 0)}
	d := NewDetail(gw, newFakeStore(), nil)
	require.NoError(t, d.Open(context.Background(), 1))

	assert.True(t, d.OutOfStock())
	assert.Zero(t, d.Qty())

	d.Inc()
	assert.Zero(t, d.Qty())

	msg, err := d.AddToCart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Zero(t, gw.addCalls)
}

func TestOpenMissingProduct(t *testing.T) {
	gw := &fakeGateway{products: map[int]api.Product{}}
	d := NewDetail(gw, newFakeStore(), nil)
	assert.Error(t, d.Open(context.Background(), 9))
	assert.Nil(t, d.Product())
	assert.True(t, d.OutOfStock())
}

func TestQuantityBounds(t *testing.T) {
	gw := &fakeGateway{products: stocked(1, 3)}
	d := NewDetail(gw, newFakeStore(), nil)
	require.NoError(t, d.Open(context.Background(), 1))
	assert.Equal(t, 1, d.Qty())

	d.Dec() // already at the floor
	assert.Equal(t, 1, d.Qty())

	d.Inc()
	d.Inc()
	assert.Equal(t, 3, d.Qty())
	d.Inc() // at stock, no further
	assert.Equal(t, 3, d.Qty())

	d.SetQty(7)
	assert.Equal(t, 3, d.Qty())
	d.SetQty(0)
	assert.Equal(t, 1, d.Qty())
	d.SetQty(2)
	assert.Equal(t, 2, d.Qty())
}

func TestAddToCartOverStockRejectedLocally(t *testing.T) {
	gw := &fakeGateway{products: stocked(1, 3)}
	d := NewDetail(gw, newFakeStore(), nil)
	require.NoError(t, d.Open(context.Background(), 1))

	// Force the illegal value past the clamped setter to simulate a raw
	// field edit racing the stock value.
	d.qty = 5

	msg, err := d.AddToCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Requested quantity (5) exceeds available stock (3).", msg)
	assert.Zero(t, gw.addCalls)
	assert.Equal(t, 3, d.Qty())
}

func TestAddToCartBelowOneForcedToOne(t *testing.T) {
	gw := &fakeGateway{products: stocked(1, 3)}
	d := NewDetail(gw, newFakeStore(), nil)
	require.NoError(t, d.Open(context.Background(), 1))
	d.qty = 0

	msg, err := d.AddToCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Minimum quantity is 1.", msg)
	assert.Zero(t, gw.addCalls)
	assert.Equal(t, 1, d.Qty())
}

func TestAddToCartPersistsToken(t *testing.T) {
	gw := &fakeGateway{products: stocked(1, 3), addResp: api.AddToCartResponse{Message: "added", CartID: "tok-9"}}
	store := newFakeStore()
	d := NewDetail(gw, store, nil)
	require.NoError(t, d.Open(context.Background(), 1))
	d.SetQty(2)

	msg, err := d.AddToCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "added", msg)
	assert.Equal(t, 1, gw.addCalls)
	assert.Equal(t, api.AddToCartRequest{ProductID: 1, Qty: 2}, gw.lastAdd)
	assert.Equal(t, "tok-9", store.values[storage.KeyCartID])
}

func TestAddToCartOverwritesExistingToken(t *testing.T) {
	gw := &fakeGateway{products: stocked(1, 3), addResp: api.AddToCartResponse{CartID: "tok-new"}}
	store := newFakeStore()
	store.values[storage.KeyCartID] = "tok-old"
	d := NewDetail(gw, store, nil)
	require.NoError(t, d.Open(context.Background(), 1))

	_, err := d.AddToCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-old", gw.lastAdd.CartID)
	assert.Equal(t, "tok-new", store.values[storage.KeyCartID])
}

func TestAddToCartBackendFailure(t *testing.T) {
	gw := &fakeGateway{products: stocked(1, 3)}
	gw.addErr = &api.Error{Status: 400, Message: "product sold out"}
	store := newFakeStore()
	d := NewDetail(gw, store, nil)
	require.NoError(t, d.Open(context.Background(), 1))

	msg, err := d.AddToCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "product sold out", msg)
	assert.Empty(t, store.values[storage.KeyCartID])
}
