// Package render turns BookRecords into markup for the web host and plain
// text for the terminal host.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"booksearch/internal/cover"
	"booksearch/internal/i18n"
	"booksearch/internal/search"
)

const listItem = `{{range .}}<li class="result-item">
  <div class="cover"><img src="{{.Src}}" alt="{{.Alt}}"></div>
  <div class="info">
    <h3 class="title">{{.Title}}</h3>
    <p class="author">{{.Author}}</p>
    <p class="meta">{{.Meta}}</p>
  </div>
</li>
{{end}}`

var itemTmpl = template.Must(template.New("items").Parse(listItem))

type item struct {
	Src    template.URL
	Alt    string
	Title  string
	Author string
	Meta   string
}

// HTML renders result list items.
type HTML struct {
	msgs   *i18n.Messages
	color  string
	policy *bluemonday.Policy
}

func NewHTML(msgs *i18n.Messages, coverColor string) *HTML {
	return &HTML{msgs: msgs, color: cover.Color(coverColor), policy: Policy()}
}

// Policy allows only the markup the list template emits: result items,
// http(s) covers and inline SVG placeholders.
func Policy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("li", "div", "h3", "p")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-z-]+$`)).OnElements("li", "div", "h3", "p")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.RequireParseableURLs(true)
	p.AllowURLSchemes("https", "http")
	p.AllowURLSchemeWithCustomPolicy("data", func(u *url.URL) bool {
		return strings.HasPrefix(u.Opaque, "image/svg+xml;base64,")
	})
	return p
}

// CoverSrc is the record's cover URL or a synthesized placeholder.
func (h *HTML) CoverSrc(b search.BookRecord) string {
	if b.CoverURL != "" {
		return b.CoverURL
	}
	return cover.Synthesize(b.Title, h.color)
}

// List renders one <li> per record, in order. Text is escaped by
// html/template and the result is passed through the sanitizing policy.
func (h *HTML) List(records []search.BookRecord) (template.HTML, error) {
	items := make([]item, 0, len(records))
	for _, b := range records {
		items = append(items, item{
			Src:    template.URL(h.CoverSrc(b)),
			Alt:    h.msgs.CoverAlt(b.Title),
			Title:  b.Title,
			Author: b.Author,
			Meta:   b.Meta(),
		})
	}

	var buf bytes.Buffer
	if err := itemTmpl.Execute(&buf, items); err != nil {
		return "", fmt.Errorf("render list: %w", err)
	}
	return template.HTML(h.policy.SanitizeBytes(buf.Bytes())), nil
}
