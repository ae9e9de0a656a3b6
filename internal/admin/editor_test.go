package admin

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/api"
)

type fakeGateway struct {
	products map[int]api.Product

	upsertCalls int
	deleteCalls int
	uploadCalls int
	lastUpsert  api.Product
	upsertErr   error
	deleteErr   error
	uploadErr   error
	uploadName  string
}

func (f *fakeGateway) GetProduct(_ context.Context, id int) (*api.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, &api.Error{Status: 404, Message: "product not found"}
	}
	return &p, nil
}

func (f *fakeGateway) UpsertProduct(_ context.Context, p api.Product) (*api.MessageResponse, error) {
	f.upsertCalls++
	f.lastUpsert = p
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	return &api.MessageResponse{Message: "saved"}, nil
}

func (f *fakeGateway) DeleteProduct(_ context.Context, id int) (*api.MessageResponse, error) {
	f.deleteCalls++
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	delete(f.products, id)
	return &api.MessageResponse{Message: "removed"}, nil
}

func (f *fakeGateway) Upload(_ context.Context, filename string, _ io.Reader) (*api.UploadResponse, error) {
	f.uploadCalls++
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	name := f.uploadName
	if name == "" {
		name = "stored-" + filename
	}
	return &api.UploadResponse{Filename: name}, nil
}

func seeded() *fakeGateway {
	return &fakeGateway{products: map[int]api.Product{
		5: {ID: 5, Name: "Whey", Description: "vanilla", Price: decimal.NewFromFloat(99.9), StockQty: 7, Image: "whey.png"},
	}}
}

func TestLookupPopulatesExistingProduct(t *testing.T) {
	e := NewEditor(seeded(), nil)
	e.Lookup(context.Background(), "5")

	assert.True(t, e.Exists())
	assert.True(t, e.CanDelete())
	f := e.Form()
	assert.Equal(t, "5", f.ID)
	assert.Equal(t, "Whey", f.Name)
	assert.Equal(t, "99.9", f.Price)
	assert.Equal(t, "7", f.StockQty)
	assert.Equal(t, "whey.png", f.Image)
}

func TestLookupMissingProductClearsForm(t *testing.T) {
	e := NewEditor(seeded(), nil)
	e.Lookup(context.Background(), "5")
	e.Lookup(context.Background(), "6")

	assert.False(t, e.Exists())
	assert.False(t, e.CanDelete())
	f := e.Form()
	assert.Equal(t, "6", f.ID)
	assert.Empty(t, f.Name)
	assert.Empty(t, f.Price)
}

func TestInvalidIDClearsWithoutLookup(t *testing.T) {
	e := NewEditor(seeded(), nil)
	e.Lookup(context.Background(), "5")

	_, _, ok := e.BeginLookup("abc")
	assert.False(t, ok)
	assert.False(t, e.Exists())
	assert.Empty(t, e.Form().Name)

	_, _, ok = e.BeginLookup("0")
	assert.False(t, ok)
	_, _, ok = e.BeginLookup("")
	assert.False(t, ok)
}

func TestStaleLookupResponseDiscarded(t *testing.T) {
	gw := seeded()
	e := NewEditor(gw, nil)

	seqOld, _, ok := e.BeginLookup("5")
	require.True(t, ok)
	seqNew, id, ok := e.BeginLookup("6")
	require.True(t, ok)

	// The older lookup's response lands after the newer one was issued.
	stale := gw.products[5]
	e.ApplyLookup(seqOld, &stale, nil)
	assert.Empty(t, e.Form().Name, "stale response must not populate the form")
	assert.False(t, e.Exists())

	p, err := gw.GetProduct(context.Background(), id)
	e.ApplyLookup(seqNew, p, err)
	assert.False(t, e.Exists()) // id 6 does not exist
	assert.Equal(t, "6", e.Form().ID)
}

func TestSaveValidationRejectsLocally(t *testing.T) {
	cases := []struct {
		name string
		form Form
	}{
		{name: "non-numeric price", form: Form{ID: "5", Name: "Whey", Price: "abc", StockQty: "3"}},
		{name: "missing id", form: Form{Name: "Whey", Price: "10", StockQty: "3"}},
		{name: "blank name", form: Form{ID: "5", Name: "   ", Price: "10", StockQty: "3"}},
		{name: "non-numeric stock", form: Form{ID: "5", Name: "Whey", Price: "10", StockQty: "lots"}},
		{name: "negative price", form: Form{ID: "5", Name: "Whey", Price: "-1", StockQty: "3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := seeded()
			e := NewEditor(gw, nil)
			e.form = tc.form

			msg, err := e.Save(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "Fill in ID, name, price and stock correctly.", msg)
			assert.Zero(t, gw.upsertCalls)
		})
	}
}

func TestSaveSuccessMakesProductExist(t *testing.T) {
	gw := seeded()
	e := NewEditor(gw, nil)
	e.form = Form{ID: "8", Name: " Creatine ", Description: "pure", Price: "49.90", StockQty: "12", Image: "c.png"}

	msg, err := e.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Product saved.", msg)
	assert.True(t, e.Exists())
	assert.True(t, e.CanDelete())

	assert.Equal(t, 8, gw.lastUpsert.ID)
	assert.Equal(t, "Creatine", gw.lastUpsert.Name)
	assert.Equal(t, "pure", gw.lastUpsert.Description)
	assert.True(t, decimal.RequireFromString("49.90").Equal(gw.lastUpsert.Price))
	assert.Equal(t, 12, gw.lastUpsert.StockQty)
	assert.Equal(t, "c.png", gw.lastUpsert.Image)
}

func TestSaveBackendFailure(t *testing.T) {
	gw := seeded()
	gw.upsertErr = &api.Error{Status: 500}
	e := NewEditor(gw, nil)
	e.form = Form{ID: "8", Name: "Creatine", Price: "49.90", StockQty: "12"}

	msg, err := e.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Failed to save product.", msg)
	assert.False(t, e.Exists())
}

func TestUploadStoresFilename(t *testing.T) {
	gw := seeded()
	gw.uploadName = "173-photo.png"
	e := NewEditor(gw, nil)
	e.Lookup(context.Background(), "5")

	msg, err := e.UploadImage(context.Background(), "photo.png", nil)
	require.NoError(t, err)
	assert.Contains(t, msg, "173-photo.png")
	assert.Equal(t, "173-photo.png", e.Form().Image)
	assert.Equal(t, "173-photo.png", e.JustUploaded())
}

func TestUploadFailureKeepsPriorImage(t *testing.T) {
	gw := seeded()
	gw.uploadErr = &api.Error{Status: 400, Message: "no file sent"}
	e := NewEditor(gw, nil)
	e.Lookup(context.Background(), "5")

	msg, err := e.UploadImage(context.Background(), "photo.png", nil)
	require.NoError(t, err)
	assert.Equal(t, "Failed to upload image.", msg)
	assert.Equal(t, "whey.png", e.Form().Image)
	assert.Empty(t, e.JustUploaded())
}

func TestDeleteOnlyWhenExists(t *testing.T) {
	gw := seeded()
	e := NewEditor(gw, nil)
	e.Lookup(context.Background(), "6") // does not exist

	msg, err := e.Delete(context.Background())
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Zero(t, gw.deleteCalls)
}

func TestDeleteClearsFormKeepingID(t *testing.T) {
	gw := seeded()
	e := NewEditor(gw, nil)
	e.Lookup(context.Background(), "5")
	require.True(t, e.CanDelete())

	msg, err := e.Delete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Product deleted.", msg)
	assert.Equal(t, 1, gw.deleteCalls)
	assert.False(t, e.Exists())
	assert.Equal(t, "5", e.Form().ID)
	assert.Empty(t, e.Form().Name)
}
