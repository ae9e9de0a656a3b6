// Package admin holds the product editor view-model: an exists/absent state
// machine keyed on the id field, upsert-style save, immediate image upload
// and confirmed delete.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/api"
)

// Gateway is the backend surface the editor needs.
type Gateway interface {
	GetProduct(ctx context.Context, id int) (*api.Product, error)
	UpsertProduct(ctx context.Context, p api.Product) (*api.MessageResponse, error)
	DeleteProduct(ctx context.Context, id int) (*api.MessageResponse, error)
	Upload(ctx context.Context, filename string, content io.Reader) (*api.UploadResponse, error)
}

// Form holds the raw field values as the user typed them. Parsing happens at
// save time so a half-typed price never destroys state.
type Form struct {
	ID          string
	Name        string
	Description string
	Price       string
	StockQty    string
	Image       string
}

// savePayload is the parsed form, validated before any network call.
type savePayload struct {
	ID       int             `validate:"required,gt=0"`
	Name     string          `validate:"required"`
	Price    decimal.Decimal `validate:"-"`
	StockQty int             `validate:"gte=0"`
}

// Editor is the admin product editor view-model.
type Editor struct {
	gw       Gateway
	logger   *zap.Logger
	validate *validator.Validate

	form         Form
	exists       bool
	justUploaded string

	// lookupSeq fences id-lookup responses: only the most recently issued
	// lookup may mutate the form.
	lookupSeq uint64
}

// NewEditor creates the editor view-model with an empty form.
func NewEditor(gw Gateway, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{
		gw:       gw,
		logger:   logger,
		validate: validator.New(),
	}
}

// Form returns the current field values.
func (e *Editor) Form() Form { return e.form }

// SetName, SetDescription, SetPrice, SetStockQty update individual fields.
func (e *Editor) SetName(v string)        { e.form.Name = v }
func (e *Editor) SetDescription(v string) { e.form.Description = v }
func (e *Editor) SetPrice(v string)       { e.form.Price = v }
func (e *Editor) SetStockQty(v string)    { e.form.StockQty = v }

// Exists reports whether the current id resolved to a server record (or was
// just saved).
func (e *Editor) Exists() bool { return e.exists }

// JustUploaded returns the filename of the most recent upload, empty when
// the image field came from the server record.
func (e *Editor) JustUploaded() string { return e.justUploaded }

// CanDelete reports whether delete is available: the record exists and the
// id field holds a valid id.
func (e *Editor) CanDelete() bool {
	_, ok := e.parseID()
	return e.exists && ok
}

// BeginLookup records an id-field change. When the id is valid it returns
// the sequence number and parsed id for the caller to run the lookup with;
// an unset or invalid id clears the form and disables delete with no lookup.
func (e *Editor) BeginLookup(rawID string) (seq uint64, id int, ok bool) {
	e.form.ID = strings.TrimSpace(rawID)
	e.lookupSeq++
	id, ok = e.parseID()
	if !ok {
		e.exists = false
		e.clearExceptID()
		return e.lookupSeq, 0, false
	}
	return e.lookupSeq, id, true
}

// ApplyLookup lands a lookup response. Responses from a superseded lookup
// are discarded so a slow early response cannot clobber a later id's form.
func (e *Editor) ApplyLookup(seq uint64, p *api.Product, err error) {
	if seq != e.lookupSeq {
		e.logger.Debug("discarding stale lookup response", zap.Uint64("seq", seq))
		return
	}
	if err != nil || p == nil {
		// Not-found is the normal "does not exist yet" state.
		e.exists = false
		e.clearExceptID()
		return
	}
	e.exists = true
	e.form = Form{
		ID:          strconv.Itoa(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		StockQty:    strconv.Itoa(p.StockQty),
		Image:       p.Image,
	}
	e.justUploaded = ""
}

// Lookup runs the id-change transition synchronously.
func (e *Editor) Lookup(ctx context.Context, rawID string) {
	seq, id, ok := e.BeginLookup(rawID)
	if !ok {
		return
	}
	p, err := e.gw.GetProduct(ctx, id)
	e.ApplyLookup(seq, p, err)
}

// Save validates the form and upserts. Validation failures produce a local
// message and no network call; a successful save makes the record exist.
func (e *Editor) Save(ctx context.Context) (string, error) {
	payload, ok := e.parseForm()
	if !ok {
		return "Fill in ID, name, price and stock correctly.", nil
	}
	if err := e.validate.Struct(payload); err != nil {
		return "Fill in ID, name, price and stock correctly.", nil
	}

	_, err := e.gw.UpsertProduct(ctx, api.Product{
		ID:          payload.ID,
		Name:        payload.Name,
		Description: strings.TrimSpace(e.form.Description),
		Price:       payload.Price,
		StockQty:    payload.StockQty,
		Image:       e.form.Image,
	})
	if err != nil {
		e.logger.Warn("product save failed", zap.Int("id", payload.ID), zap.Error(err))
		return "Failed to save product.", nil
	}

	// A freshly created product is deletable without re-querying.
	e.exists = true
	return "Product saved.", nil
}

// UploadImage uploads immediately on file selection. Success stores the
// server filename into the image field for the next save; failure leaves the
// prior value untouched.
func (e *Editor) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	resp, err := e.gw.Upload(ctx, filename, content)
	if err != nil {
		e.logger.Warn("image upload failed", zap.String("filename", filename), zap.Error(err))
		return "Failed to upload image.", nil
	}
	if resp.Filename != "" {
		e.form.Image = resp.Filename
		e.justUploaded = resp.Filename
	}
	return fmt.Sprintf("Image uploaded as %s.", resp.Filename), nil
}

// Delete removes the product. Callers must have asked the user to confirm
// first. Success keeps the id, clears everything else and disables delete.
func (e *Editor) Delete(ctx context.Context) (string, error) {
	id, ok := e.parseID()
	if !e.exists || !ok {
		return "", nil
	}
	if _, err := e.gw.DeleteProduct(ctx, id); err != nil {
		e.logger.Warn("product delete failed", zap.Int("id", id), zap.Error(err))
		msg := "Failed to delete product."
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return msg, nil
	}
	e.exists = false
	e.clearExceptID()
	return "Product deleted.", nil
}

func (e *Editor) parseID() (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(e.form.ID))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (e *Editor) parseForm() (savePayload, bool) {
	id, ok := e.parseID()
	if !ok {
		return savePayload{}, false
	}
	name := strings.TrimSpace(e.form.Name)
	price, err := decimal.NewFromString(strings.TrimSpace(e.form.Price))
	if err != nil || price.IsNegative() {
		return savePayload{}, false
	}
	stock, err := strconv.Atoi(strings.TrimSpace(e.form.StockQty))
	if err != nil {
		return savePayload{}, false
	}
	return savePayload{ID: id, Name: name, Price: price, StockQty: stock}, true
}

func (e *Editor) clearExceptID() {
	id := e.form.ID
	e.form = Form{ID: id}
	e.justUploaded = ""
}
