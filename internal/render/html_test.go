package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"booksearch/internal/cover"
	"booksearch/internal/i18n"
	"booksearch/internal/search"
)

func parse(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<ul>" + fragment + "</ul>"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestListDune(t *testing.T) {
	h := NewHTML(i18n.New("ro"), cover.DefaultColor)
	out, err := h.List([]search.BookRecord{{
		Title: "Dune", Author: "Frank Herbert", Year: "1965",
		CoverURL: "https://covers.openlibrary.org/b/id/98765-M.jpg",
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := parse(t, string(out))
	items := doc.Find("li.result-item")
	if items.Length() != 1 {
		t.Fatalf("items = %d", items.Length())
	}
	if got := items.Find("h3.title").Text(); got != "Dune" {
		t.Errorf("title = %q", got)
	}
	if got := items.Find("p.author").Text(); got != "Frank Herbert" {
		t.Errorf("author = %q", got)
	}
	if got := items.Find("p.meta").Text(); got != "1965" {
		t.Errorf("meta = %q", got)
	}
	src, _ := items.Find(".cover img").Attr("src")
	if !strings.HasSuffix(src, "98765-M.jpg") {
		t.Errorf("src = %q", src)
	}
	alt, _ := items.Find(".cover img").Attr("alt")
	if alt != "Coperta: Dune" {
		t.Errorf("alt = %q", alt)
	}
}

func TestListKeepsOrder(t *testing.T) {
	h := NewHTML(i18n.New("en"), "")
	records := make([]search.BookRecord, 24)
	for i := range records {
		records[i] = search.BookRecord{Title: fmt.Sprintf("Book %02d", i), Author: "A"}
	}
	out, err := h.List(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	titles := parse(t, string(out)).Find("h3.title")
	if titles.Length() != len(records) {
		t.Fatalf("rendered %d, want %d", titles.Length(), len(records))
	}
	titles.Each(func(i int, s *goquery.Selection) {
		if s.Text() != records[i].Title {
			t.Errorf("entry %d = %q, want %q", i, s.Text(), records[i].Title)
		}
	})
}

func TestListEscapesText(t *testing.T) {
	h := NewHTML(i18n.New("en"), "")
	title := `<script>alert("x")</script> & 'friends'`
	author := `Tom <b>"Bold"</b> O'Neil`
	out, err := h.List([]search.BookRecord{{Title: title, Author: author, Publisher: "<i>Pub</i>"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	markup := string(out)

	for _, raw := range []string{"<script", "<b>", "<i>", `"x"`, "'friends'", "O'Neil"} {
		if strings.Contains(markup, raw) {
			t.Errorf("raw %q leaked into %s", raw, markup)
		}
	}
	for _, esc := range []string{"&lt;script&gt;", "&amp;", "&lt;b&gt;", "&#34;", "&#39;"} {
		if !strings.Contains(markup, esc) {
			t.Errorf("missing %q in %s", esc, markup)
		}
	}

	doc := parse(t, markup)
	if doc.Find("script, b, i").Length() != 0 {
		t.Fatal("injected elements present")
	}
	if got := doc.Find("h3.title").Text(); got != title {
		t.Errorf("title round trip = %q", got)
	}
	if got := doc.Find("p.author").Text(); got != author {
		t.Errorf("author round trip = %q", got)
	}
}

func TestListPlaceholderCover(t *testing.T) {
	h := NewHTML(i18n.New("en"), "#112233")
	out, err := h.List([]search.BookRecord{{Title: "Blue Ocean", Author: "W. Chan Kim"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src, ok := parse(t, string(out)).Find("img").Attr("src")
	if !ok || !cover.IsSynthesized(src) {
		t.Fatalf("src = %q", src)
	}
	svg, err := cover.Decode(src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(string(svg), ">BO<") || !strings.Contains(string(svg), "#112233") {
		t.Fatalf("unexpected svg: %s", svg)
	}
}

func TestListEmpty(t *testing.T) {
	out, err := NewHTML(i18n.New("en"), "").List(nil)
	if err != nil || out != "" {
		t.Fatalf("got %q, %v", out, err)
	}
}

func TestPolicyDropsForeignMarkup(t *testing.T) {
	p := Policy()
	out := p.Sanitize(`<li class="result-item"><img src="javascript:alert(1)" alt="x"><a href="https://evil">y</a><img src="data:image/png;base64,AAAA" alt="z"></li>`)
	if strings.Contains(out, "javascript:") || strings.Contains(out, "<a") || strings.Contains(out, "image/png") {
		t.Fatalf("policy let through: %s", out)
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	err := Text(&buf, []search.BookRecord{
		{Title: "Dune", Author: "Frank Herbert", Year: "1965", Publisher: "Chilton", CoverURL: "https://c/b/id/1-M.jpg"},
		{Title: "Blue\x1b[31m Ocean", Author: "Kim"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{" 1. Dune", "Frank Herbert", "1965 • Chilton", "https://c/b/id/1-M.jpg", " 2. Blue[31m Ocean", "[BO]"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b") {
		t.Error("escape sequence leaked")
	}
}
