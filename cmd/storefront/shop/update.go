package shop

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"storefront/internal/cart"
	"storefront/internal/catalog"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case bootDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(statusError, "Could not reach the store backend.")
			m.logger.Warn("boot preload failed")
		}
		return m, nil

	case catalogReloadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(statusError, "Failed to load products.")
		} else {
			m.catalog.moveCursor(0)
		}
		return m, nil

	case detailOpenedMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(statusError, "Product not found.")
		}
		m.page = PageDetail
		return m, nil

	case cartReloadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(statusError, "Failed to load cart.")
		}
		m.cart.moveCursor(0)
		return m, nil

	case actionDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(statusError, "Something went wrong. Try again.")
		} else if msg.notice != "" {
			m.setStatus(statusInfo, msg.notice)
		} else {
			m.setStatus(statusInfo, "")
		}
		if m.page == PageAdmin {
			m.admin.syncFromEditor()
		}
		if m.page == PageCart {
			m.cart.moveCursor(0)
		}
		return m, nil

	case checkoutDoneMsg:
		m.loading = false
		if msg.err != nil {
			if msg.summary != "" {
				m.setStatus(statusError, msg.summary)
			} else {
				m.setStatus(statusError, "Checkout failed.")
			}
		} else if msg.summary != "" {
			m.setStatus(statusSuccess, msg.summary)
			m.cart.cursor = 0
		}
		return m, nil

	case adminLookupMsg:
		m.admin.editor.ApplyLookup(msg.seq, msg.product, msg.err)
		m.admin.syncFromEditor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	// One request chain at a time: swallow action keys while loading.
	if m.loading {
		return m, nil
	}

	switch m.page {
	case PageCatalog:
		return m.handleCatalogKey(msg)
	case PageDetail:
		return m.handleDetailKey(msg)
	case PageAdmin:
		return m.handleAdminKey(msg)
	case PageCart:
		return m.handleCartKey(msg)
	}
	return m, nil
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.catalog.moveCursor(-1)
	case "down", "j":
		m.catalog.moveCursor(1)
	case "r":
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.catalog.reloadCmd())
	case "enter":
		id := m.catalog.selectedID()
		if id == 0 {
			return m, nil
		}
		// A fresh detail view-model per activation: the cart token is
		// re-read here, once.
		m.detail = detailPage{
			vm:     catalog.NewDetail(m.client, m.store, m.logger),
			client: m.client,
		}
		m.loading = true
		m.setStatus(statusInfo, "")
		return m, tea.Batch(m.spin.Tick, m.detail.openCmd(id))
	case "a":
		m.page = PageAdmin
		m.setStatus(statusInfo, "")
	case "c":
		m.cart = cartPage{vm: cart.NewView(m.client, m.store, m.logger)}
		m.page = PageCart
		m.loading = true
		m.setStatus(statusInfo, "")
		return m, tea.Batch(m.spin.Tick, m.cart.loadCmd())
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.page = PageCatalog
		m.setStatus(statusInfo, "")
	case "+", "up", "k":
		m.detail.vm.Inc()
	case "-", "down", "j":
		m.detail.vm.Dec()
	case "enter", "b":
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.detail.addToCartCmd())
	}
	return m, nil
}

func (m Model) handleAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.admin.confirmingDelete {
		m.admin.confirmingDelete = false
		if msg.String() == "y" {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.admin.deleteCmd())
		}
		m.setStatus(statusInfo, "Delete cancelled.")
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.page = PageCatalog
		m.setStatus(statusInfo, "")
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyEnter:
		var lookup tea.Cmd
		if m.admin.focus == fieldID {
			lookup = m.admin.maybeLookup()
		} else {
			m.admin.syncToEditor()
		}
		if msg.Type == tea.KeyShiftTab {
			m.admin.cycleFocus(-1)
		} else {
			m.admin.cycleFocus(1)
		}
		return m, lookup
	case tea.KeyCtrlS:
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.admin.saveCmd())
	case tea.KeyCtrlU:
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.admin.uploadCmd())
	case tea.KeyCtrlD:
		if m.admin.editor.CanDelete() {
			m.admin.confirmingDelete = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.admin.inputs[m.admin.focus], cmd = m.admin.inputs[m.admin.focus].Update(msg)
	return m, cmd
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.page = PageCatalog
		m.setStatus(statusInfo, "")
	case "up", "k":
		m.cart.moveCursor(-1)
	case "down", "j":
		m.cart.moveCursor(1)
	case "+":
		if id := m.cart.selectedItemID(); id != 0 {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.cart.incCmd(id))
		}
	case "-":
		if id := m.cart.selectedItemID(); id != 0 {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.cart.decCmd(id))
		}
	case "x":
		if id := m.cart.selectedItemID(); id != 0 {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.cart.removeCmd(id))
		}
	case "s":
		m.cart.toggleShipping()
	case "o":
		if m.cart.vm.CartID() != "" {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.cart.checkoutCmd())
		}
	}
	return m, nil
}
