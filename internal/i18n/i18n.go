// Package i18n holds the user-facing strings of the search widget.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	KeyEmptyQuery    = "Enter a keyword to see results."
	KeySearching     = "Searching..."
	KeyNoResults     = "No results found."
	KeyNetworkError  = "A network error occurred. Check your connection and try again."
	KeyUnknownTitle  = "Unknown title"
	KeyUnknownAuthor = "Unknown author"
	KeyCoverAlt      = "Cover: %s"
)

var supported = []language.Tag{language.Romanian, language.English}

var cat = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	ro := map[string]string{
		KeyEmptyQuery:    "Introduceți un cuvânt cheie pentru a vedea rezultate.",
		KeySearching:     "Se caută...",
		KeyNoResults:     "Nu s-au găsit rezultate.",
		KeyNetworkError:  "A apărut o eroare de rețea. Verificați conexiunea și încercați din nou.",
		KeyUnknownTitle:  "Titlu necunoscut",
		KeyUnknownAuthor: "Autor necunoscut",
		KeyCoverAlt:      "Coperta: %s",
	}
	for key, msg := range ro {
		if err := b.SetString(language.Romanian, key, msg); err != nil {
			panic(fmt.Sprintf("i18n: %v", err))
		}
		if err := b.SetString(language.English, key, key); err != nil {
			panic(fmt.Sprintf("i18n: %v", err))
		}
	}
	return b
}

// Messages resolves the widget strings for one locale.
type Messages struct {
	tag     language.Tag
	printer *message.Printer
}

// New picks the closest supported locale. Unknown or empty locales fall
// back to Romanian.
func New(locale string) *Messages {
	tag := language.Romanian
	if locale != "" {
		if t, err := language.Parse(locale); err == nil {
			tag, _, _ = language.NewMatcher(supported).Match(t)
		}
	}
	base, _ := tag.Base()
	tag = language.Make(base.String())
	return &Messages{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// Tag is the resolved language.
func (m *Messages) Tag() language.Tag { return m.tag }

func (m *Messages) EmptyQuery() string    { return m.printer.Sprintf(KeyEmptyQuery) }
func (m *Messages) Searching() string     { return m.printer.Sprintf(KeySearching) }
func (m *Messages) NoResults() string     { return m.printer.Sprintf(KeyNoResults) }
func (m *Messages) NetworkError() string  { return m.printer.Sprintf(KeyNetworkError) }
func (m *Messages) UnknownTitle() string  { return m.printer.Sprintf(KeyUnknownTitle) }
func (m *Messages) UnknownAuthor() string { return m.printer.Sprintf(KeyUnknownAuthor) }

// CoverAlt is the alt text of a cover image.
func (m *Messages) CoverAlt(title string) string {
	return m.printer.Sprintf(KeyCoverAlt, title)
}
