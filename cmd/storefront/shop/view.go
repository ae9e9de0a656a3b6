package shop

import (
	"strings"
)

var pageTitles = map[Page]string{
	PageCatalog: "Products",
	PageDetail:  "Product",
	PageAdmin:   "Manage",
	PageCart:    "Cart",
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render(" storefront — " + pageTitles[m.page] + " "))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(m.spin.View() + m.styles.Muted.Render(" talking to the store..."))
		sb.WriteString("\n\n")
	}

	switch m.page {
	case PageCatalog:
		sb.WriteString(m.catalog.view(m.styles))
	case PageDetail:
		sb.WriteString(m.detail.view(m.styles))
	case PageAdmin:
		sb.WriteString(m.admin.view(m.styles))
	case PageCart:
		sb.WriteString(m.cart.view(m.styles))
	}

	if m.status != "" {
		sb.WriteString("\n")
		switch m.statusKind {
		case statusError:
			sb.WriteString(m.styles.Error.Render(m.status))
		case statusSuccess:
			sb.WriteString(m.styles.Success.Render(m.status))
		default:
			sb.WriteString(m.styles.Body.Render(m.status))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render(m.footerHint()))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) footerHint() string {
	switch m.page {
	case PageCatalog:
		return "enter view product · a manage · c cart · r reload · q quit"
	case PageDetail:
		return "+/- quantity · enter add to cart · esc back"
	case PageAdmin:
		return "esc back · ctrl+c quit"
	case PageCart:
		return "+/- qty · x remove · s shipping · o checkout · esc back"
	}
	return ""
}
