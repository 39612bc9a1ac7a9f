package render

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"booksearch/internal/cover"
	"booksearch/internal/search"
)

// Text writes a numbered terminal listing.
func Text(w io.Writer, records []search.BookRecord) error {
	for i, b := range records {
		if _, err := fmt.Fprintf(w, "%2d. %s\n    %s\n", i+1, clean(b.Title), clean(b.Author)); err != nil {
			return err
		}
		if meta := b.Meta(); meta != "" {
			if _, err := fmt.Fprintf(w, "    %s\n", clean(meta)); err != nil {
				return err
			}
		}
		img := b.CoverURL
		if img == "" {
			img = "[" + cover.Initials(b.Title) + "]"
		}
		if _, err := fmt.Fprintf(w, "    %s\n", clean(img)); err != nil {
			return err
		}
	}
	return nil
}

// clean drops control characters so API text cannot drive the terminal.
func clean(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
