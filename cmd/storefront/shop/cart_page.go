package shop

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"storefront/cmd/storefront/ui"
	"storefront/internal/cart"
)

// cartPage binds the cart view-model: cursor over the item list, quantity
// keys, shipping toggle and checkout.
type cartPage struct {
	vm     *cart.View
	cursor int
}

func (p *cartPage) moveCursor(delta int) {
	n := len(p.vm.Items())
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

// selectedItemID returns the cart item id under the cursor, 0 when empty.
func (p *cartPage) selectedItemID() int {
	items := p.vm.Items()
	if p.cursor < 0 || p.cursor >= len(items) {
		return 0
	}
	return items[p.cursor].ID
}

func (p *cartPage) loadCmd() tea.Cmd {
	vm := p.vm
	return func() tea.Msg {
		return cartReloadedMsg{err: vm.Load(context.Background())}
	}
}

func (p *cartPage) incCmd(itemID int) tea.Cmd {
	vm := p.vm
	return func() tea.Msg {
		notice, err := vm.Inc(context.Background(), itemID)
		return actionDoneMsg{notice: notice, err: err}
	}
}

func (p *cartPage) decCmd(itemID int) tea.Cmd {
	vm := p.vm
	return func() tea.Msg {
		notice, err := vm.Dec(context.Background(), itemID)
		return actionDoneMsg{notice: notice, err: err}
	}
}

func (p *cartPage) removeCmd(itemID int) tea.Cmd {
	vm := p.vm
	return func() tea.Msg {
		return actionDoneMsg{err: vm.Remove(context.Background(), itemID)}
	}
}

func (p *cartPage) checkoutCmd() tea.Cmd {
	vm := p.vm
	return func() tea.Msg {
		summary, err := vm.Checkout(context.Background())
		return checkoutDoneMsg{summary: summary, err: err}
	}
}

func (p *cartPage) toggleShipping() {
	if p.vm.Shipping() == cart.ShippingStandard {
		p.vm.SetShipping(cart.ShippingExpress)
	} else {
		p.vm.SetShipping(cart.ShippingStandard)
	}
}

func (p *cartPage) view(styles ui.Styles) string {
	if p.vm.CartID() == "" {
		return styles.Muted.Render("Your cart is empty. Add something from a product page.") + "\n"
	}

	items := p.vm.Items()
	if len(items) == 0 {
		return styles.Muted.Render("Your cart is empty.") + "\n"
	}

	table := ui.NewTable("Cart", []string{"Item", "Unit", "Qty", "Max", "Subtotal"})
	for _, it := range items {
		table.AddRow(
			it.ProductName,
			it.UnitPrice.StringFixed(2),
			fmt.Sprintf("%d", it.Qty),
			fmt.Sprintf("%d", it.MaxQty),
			it.Subtotal.StringFixed(2),
		)
	}
	table.Selected = p.cursor

	out := table.View(styles)
	out += "\n"
	out += styles.Body.Render(fmt.Sprintf("Products: %s", p.vm.ProductsTotal().StringFixed(2))) + "\n"
	out += styles.Body.Render(fmt.Sprintf("Shipping: %s (%s)",
		cart.ShippingCost(p.vm.Shipping()).StringFixed(2), p.vm.Shipping())) + "\n"
	out += styles.Price.Render(fmt.Sprintf("Total:    %s", p.vm.Total().StringFixed(2))) + "\n"
	out += styles.Muted.Render("(+/- quantity, x remove, s shipping, o checkout)") + "\n"
	return out
}
