// Package shop implements the interactive storefront: a page-switching
// bubbletea model over the catalog, product detail, admin editor and cart
// view-models. All backend calls run as commands whose results re-enter the
// single update loop; each user action has at most one request chain in
// flight.
package shop

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront/cmd/storefront/ui"
	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/storage"
)

// Page identifies the active view, mirroring the storefront's four routes.
type Page int

const (
	PageCatalog Page = iota
	PageDetail
	PageAdmin
	PageCart
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// Model is the top-level bubbletea model.
type Model struct {
	client *api.Client
	store  *storage.Store
	logger *zap.Logger
	styles ui.Styles

	page    Page
	width   int
	height  int
	loading bool
	spin    spinner.Model

	status     string
	statusKind statusKind

	catalog catalogPage
	detail  detailPage
	admin   adminPage
	cart    cartPage
}

// New creates the interactive storefront model.
func New(client *api.Client, store *storage.Store, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	styles := ui.DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Title

	m := Model{
		client:  client,
		store:   store,
		logger:  logger,
		styles:  styles,
		spin:    sp,
		loading: true, // until the boot preload lands
	}
	m.catalog = newCatalogPage(catalog.NewList(client, logger))
	m.admin = newAdminPage(client, logger)
	return m
}

// Init preloads the catalog and, when a token is stored, the cart, before
// the first frame.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.bootCmd())
}

// bootCmd loads the catalog and probes the stored cart in parallel, so a
// dead backend is reported before the user's first action.
func (m Model) bootCmd() tea.Cmd {
	list := m.catalog.list
	probe := cart.NewView(m.client, m.store, m.logger)
	return func() tea.Msg {
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error { return list.Load(ctx) })
		g.Go(func() error { return probe.Load(ctx) })
		return bootDoneMsg{err: g.Wait()}
	}
}

// setStatus replaces the status line.
func (m *Model) setStatus(kind statusKind, text string) {
	m.status = text
	m.statusKind = kind
}
