package shop

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"storefront/cmd/storefront/ui"
	"storefront/internal/catalog"
)

// catalogPage is the flat product list with cursor selection.
type catalogPage struct {
	list   *catalog.List
	cursor int
}

func newCatalogPage(list *catalog.List) catalogPage {
	return catalogPage{list: list}
}

func (p *catalogPage) moveCursor(delta int) {
	n := len(p.list.Products())
	if n == 0 {
		p.cursor = 0
		return
	}
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= n {
		p.cursor = n - 1
	}
}

// selectedID returns the product id under the cursor, 0 when the list is
// empty.
func (p *catalogPage) selectedID() int {
	products := p.list.Products()
	if p.cursor < 0 || p.cursor >= len(products) {
		return 0
	}
	return products[p.cursor].ID
}

func (p *catalogPage) reloadCmd() tea.Cmd {
	list := p.list
	return func() tea.Msg {
		return catalogReloadedMsg{err: list.Load(context.Background())}
	}
}

func (p *catalogPage) view(styles ui.Styles) string {
	products := p.list.Products()
	if len(products) == 0 {
		return styles.Muted.Render("No products yet. Press r to reload.") + "\n"
	}

	table := ui.NewTable("Products", []string{"ID", "Name", "Price", "Stock"})
	for _, prod := range products {
		stock := fmt.Sprintf("%d", prod.StockQty)
		if prod.StockQty <= 0 {
			stock = "out"
		}
		table.AddRow(
			fmt.Sprintf("%d", prod.ID),
			prod.Name,
			prod.Price.StringFixed(2),
			stock,
		)
	}
	table.Selected = p.cursor
	return table.View(styles)
}
