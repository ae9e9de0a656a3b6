package shop

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"storefront/cmd/storefront/ui"
	"storefront/internal/api"
	"storefront/internal/catalog"
)

// detailPage shows one product and manages the desired add-to-cart quantity.
type detailPage struct {
	vm     *catalog.Detail
	client *api.Client
}

func (p *detailPage) openCmd(id int) tea.Cmd {
	vm := p.vm
	return func() tea.Msg {
		return detailOpenedMsg{id: id, err: vm.Open(context.Background(), id)}
	}
}

func (p *detailPage) addToCartCmd() tea.Cmd {
	vm := p.vm
	return func() tea.Msg {
		notice, err := vm.AddToCart(context.Background())
		return actionDoneMsg{notice: notice, err: err}
	}
}

func (p *detailPage) view(styles ui.Styles) string {
	product := p.vm.Product()
	if product == nil {
		return styles.Error.Render("Product not found.") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("#%d  %s", product.ID, product.Name)))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Price.Render(product.Price.StringFixed(2)))
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("   stock: %d", product.StockQty)))
	sb.WriteString("\n")

	if product.Description != "" {
		sb.WriteString(renderDescription(product.Description, styles))
	}
	if product.Image != "" {
		sb.WriteString(styles.Muted.Render("image: "+p.client.ImageURL(product.Image)) + "\n")
	}
	sb.WriteString("\n")

	if p.vm.OutOfStock() {
		sb.WriteString(styles.Warning.Render("Out of stock") + "\n")
	} else {
		sb.WriteString(styles.Body.Render(fmt.Sprintf("Quantity: %d", p.vm.Qty())))
		sb.WriteString(styles.Muted.Render("   (+/- adjust, enter adds to cart)"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderDescription runs the product description through the markdown
// renderer, falling back to plain text when rendering fails.
func renderDescription(desc string, styles ui.Styles) string {
	style := "light"
	if styles.Theme.IsDark {
		style = "dark"
	}
	out, err := glamour.Render(desc, style)
	if err != nil {
		return styles.Body.Render(desc) + "\n"
	}
	return out
}
