package search

import (
	"strconv"
	"strings"

	"booksearch/internal/i18n"
	"booksearch/internal/openlibrary"
)

// Mapper turns raw documents into BookRecords.
type Mapper struct {
	UnknownTitle  string
	UnknownAuthor string
	CoverBaseURL  string
}

// NewMapper takes the fallback strings from msgs.
func NewMapper(msgs *i18n.Messages, coverBaseURL string) Mapper {
	return Mapper{
		UnknownTitle:  msgs.UnknownTitle(),
		UnknownAuthor: msgs.UnknownAuthor(),
		CoverBaseURL:  coverBaseURL,
	}
}

// Map is pure: the same doc always yields the same record.
func (m Mapper) Map(doc openlibrary.Doc) BookRecord {
	return BookRecord{
		Title:     firstNonEmpty(doc.Title, doc.TitleSuggest, m.UnknownTitle),
		Author:    firstNonEmpty(joinNames(doc.AuthorName), joinNames(doc.AuthorAlternativeName), m.UnknownAuthor),
		Year:      year(doc),
		Publisher: first(doc.Publisher),
		CoverURL:  m.coverURL(doc.CoverI),
	}
}

// MapAll maps at most openlibrary.MaxLimit docs, keeping their order.
func (m Mapper) MapAll(docs []openlibrary.Doc) []BookRecord {
	if len(docs) > openlibrary.MaxLimit {
		docs = docs[:openlibrary.MaxLimit]
	}
	out := make([]BookRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, m.Map(d))
	}
	return out
}

func (m Mapper) coverURL(id int64) string {
	if id <= 0 {
		return ""
	}
	return openlibrary.CoverURL(m.CoverBaseURL, id)
}

func year(doc openlibrary.Doc) string {
	if doc.FirstPublishYear != 0 {
		return strconv.Itoa(doc.FirstPublishYear)
	}
	if len(doc.PublishYear) > 0 && doc.PublishYear[0] != 0 {
		return strconv.Itoa(doc.PublishYear[0])
	}
	return ""
}

// joinNames skips blank entries, which is what a JSON null decodes to.
func joinNames(names []string) string {
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, ", ")
}

func first(xs []string) string {
	if len(xs) == 0 {
		return ""
	}
	return xs[0]
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
