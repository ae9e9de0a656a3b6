package shop

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"storefront/cmd/storefront/ui"
	"storefront/internal/admin"
	"storefront/internal/api"
)

// Admin form field indexes.
const (
	fieldID = iota
	fieldName
	fieldDescription
	fieldPrice
	fieldStock
	fieldImagePath
	fieldCount
)

var fieldLabels = [fieldCount]string{"ID", "Name", "Description", "Price", "Stock", "Image file"}

// adminPage binds the product editor: one text input per form field, an id
// lookup fired whenever focus leaves a changed id field, and a confirm step
// guarding delete.
type adminPage struct {
	editor *admin.Editor
	client *api.Client

	inputs [fieldCount]textinput.Model
	focus  int

	confirmingDelete bool
	lastLookupID     string
}

func newAdminPage(client *api.Client, logger *zap.Logger) adminPage {
	p := adminPage{
		editor: admin.NewEditor(client, logger),
		client: client,
	}
	for i := range p.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 120
		p.inputs[i] = in
	}
	p.inputs[fieldID].Placeholder = "product id"
	p.inputs[fieldImagePath].Placeholder = "path to image"
	p.inputs[fieldID].Focus()
	return p
}

func (p *adminPage) setFocus(idx int) {
	for i := range p.inputs {
		p.inputs[i].Blur()
	}
	p.focus = idx
	p.inputs[idx].Focus()
}

func (p *adminPage) cycleFocus(delta int) {
	p.setFocus((p.focus + delta + fieldCount) % fieldCount)
}

// maybeLookup starts an id lookup when the id field's value changed since
// the last one. Stale responses are fenced by the editor's sequence number.
func (p *adminPage) maybeLookup() tea.Cmd {
	raw := strings.TrimSpace(p.inputs[fieldID].Value())
	if raw == p.lastLookupID {
		return nil
	}
	p.lastLookupID = raw

	seq, id, ok := p.editor.BeginLookup(raw)
	p.syncFromEditor()
	if !ok {
		return nil
	}
	client := p.client
	return func() tea.Msg {
		product, err := client.GetProduct(context.Background(), id)
		return adminLookupMsg{seq: seq, product: product, err: err}
	}
}

// syncToEditor pushes the input values into the editor form.
func (p *adminPage) syncToEditor() {
	p.editor.SetName(p.inputs[fieldName].Value())
	p.editor.SetDescription(p.inputs[fieldDescription].Value())
	p.editor.SetPrice(p.inputs[fieldPrice].Value())
	p.editor.SetStockQty(p.inputs[fieldStock].Value())
}

// syncFromEditor repopulates the inputs from the editor form, leaving the
// local image path field alone.
func (p *adminPage) syncFromEditor() {
	f := p.editor.Form()
	p.inputs[fieldID].SetValue(f.ID)
	p.inputs[fieldName].SetValue(f.Name)
	p.inputs[fieldDescription].SetValue(f.Description)
	p.inputs[fieldPrice].SetValue(f.Price)
	p.inputs[fieldStock].SetValue(f.StockQty)
}

func (p *adminPage) saveCmd() tea.Cmd {
	p.syncToEditor()
	editor := p.editor
	return func() tea.Msg {
		notice, err := editor.Save(context.Background())
		return actionDoneMsg{notice: notice, err: err}
	}
}

func (p *adminPage) uploadCmd() tea.Cmd {
	path := strings.TrimSpace(p.inputs[fieldImagePath].Value())
	editor := p.editor
	return func() tea.Msg {
		if path == "" {
			return actionDoneMsg{notice: "Enter an image file path first."}
		}
		f, err := os.Open(path)
		if err != nil {
			return actionDoneMsg{notice: fmt.Sprintf("Cannot read %s.", path)}
		}
		defer f.Close()
		notice, err := editor.UploadImage(context.Background(), filepath.Base(path), f)
		return actionDoneMsg{notice: notice, err: err}
	}
}

func (p *adminPage) deleteCmd() tea.Cmd {
	editor := p.editor
	return func() tea.Msg {
		notice, err := editor.Delete(context.Background())
		return actionDoneMsg{notice: notice, err: err}
	}
}

func (p *adminPage) view(styles ui.Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Manage product"))
	if p.editor.Exists() {
		sb.WriteString("  " + styles.Badge.Render("exists"))
	}
	sb.WriteString("\n\n")

	for i := range p.inputs {
		label := styles.Muted.Render(fmt.Sprintf("%-11s", fieldLabels[i]))
		field := styles.Field
		if i == p.focus {
			field = styles.FieldOn
		}
		sb.WriteString(label + field.Render(p.inputs[i].View()) + "\n")
	}

	if p.editor.JustUploaded() != "" {
		sb.WriteString(styles.Success.Render("uploaded: "+p.editor.JustUploaded()) + "\n")
	}
	if img := p.editor.Form().Image; img != "" {
		sb.WriteString(styles.Muted.Render("image url: "+p.client.ImageURL(img)) + "\n")
	}
	sb.WriteString("\n")

	if p.confirmingDelete {
		sb.WriteString(styles.Warning.Render("Delete this product? (y/n)") + "\n")
	} else {
		hints := "tab next field, ctrl+s save, ctrl+u upload image"
		if p.editor.CanDelete() {
			hints += ", ctrl+d delete"
		}
		sb.WriteString(styles.Muted.Render(hints) + "\n")
	}
	return sb.String()
}
