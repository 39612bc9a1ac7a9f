package search

import "strings"

// MetaSeparator joins year and publisher on the meta line.
const MetaSeparator = " • "

// BookRecord is a display-ready search result.
type BookRecord struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      string `json:"year,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	// CoverURL is empty when there is no artwork.
	CoverURL string `json:"coverUrl"`
}

// Meta joins year and publisher, skipping empty parts.
func (b BookRecord) Meta() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{b.Year, b.Publisher} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, MetaSeparator)
}
