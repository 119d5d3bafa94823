// Package i18n renders the bot's user-facing text from embedded message
// catalogs (English and Ukrainian).
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stockbot/internal/inventory/notifier"
	"github.com/fekuna/omnipos-stockbot/internal/inventory/report"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/quantity"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Data is the template data for parameterized messages.
type Data map[string]any

// Bundle holds every loaded catalog. Load adds operator-supplied files on
// top of the embedded ones.
type Bundle struct {
	bundle *goi18n.Bundle
}

func NewBundle() (*Bundle, error) {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if _, err := b.LoadMessageFileFS(localeFS, "locales/"+e.Name()); err != nil {
			return nil, fmt.Errorf("load %s: %w", e.Name(), err)
		}
	}
	return &Bundle{bundle: b}, nil
}

// Load reads an extra message file, e.g. active.de.json.
func (b *Bundle) Load(path string) error {
	_, err := b.bundle.LoadMessageFile(path)
	return err
}

// Languages lists the tags that have at least one message.
func (b *Bundle) Languages() []language.Tag {
	return b.bundle.LanguageTags()
}

// Messages returns a renderer for lang, falling back to English.
func (b *Bundle) Messages(lang string) *Messages {
	return &Messages{localizer: goi18n.NewLocalizer(b.bundle, lang, language.English.String())}
}

// New is NewBundle followed by Messages(lang).
func New(lang string) (*Messages, error) {
	b, err := NewBundle()
	if err != nil {
		return nil, err
	}
	return b.Messages(lang), nil
}

type Messages struct {
	localizer *goi18n.Localizer
}

// T renders message id. Unknown ids render as the id itself.
func (m *Messages) T(id string) string {
	return m.Tf(id, nil)
}

func (m *Messages) Tf(id string, data Data) string {
	s, err := m.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: map[string]any(data),
	})
	if err != nil && s == "" {
		return id
	}
	return s
}

// ProcessName is the display name of a task process.
func (m *Messages) ProcessName(p model.Process) string {
	return m.T("process_" + p.Key())
}

func (m *Messages) ReorderAlert(a notifier.Alert) string {
	category := a.CategoryName
	if category == "" {
		category = m.T("unknown_category")
	}
	return m.Tf("reorder_alert", Data{
		"Category": category,
		"Product":  a.ProductName,
		"Qty":      quantity.Format(a.Quantity),
		"Limit":    quantity.Format(a.Limit),
	})
}

func (m *Messages) ReorderEmpty() string {
	return m.T("reorder_empty")
}

func (m *Messages) ReorderReport(groups []report.Group) string {
	lines := []string{m.T("reorder_header")}
	for _, g := range groups {
		lines = append(lines, "", m.Tf("reorder_category", Data{"Category": g.CategoryName}))
		for _, it := range g.Items {
			lines = append(lines, m.Tf("reorder_line", Data{
				"Product": it.ProductName,
				"Qty":     quantity.Format(it.Quantity),
				"Limit":   quantity.Format(it.Limit),
			}))
		}
	}
	return strings.Join(lines, "\n")
}
