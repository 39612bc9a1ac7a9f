// Package cover draws placeholder covers for books without artwork.
package cover

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultColor is the placeholder background.
	DefaultColor = "#3b82f6"

	// Fallback is used when the title yields no initials.
	Fallback = "BK"

	Width  = 300
	Height = 420

	dataURIPrefix = "data:image/svg+xml;base64,"
)

var colorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Initials takes the first letter or digit of each of the first two words
// of title, uppercased.
func Initials(title string) string {
	var b strings.Builder
	for _, w := range firstWords(title, 2) {
		for _, r := range w {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
				break
			}
		}
	}
	if b.Len() == 0 {
		return Fallback
	}
	// Casers are stateful, so one per call.
	return cases.Upper(language.Und).String(b.String())
}

func firstWords(s string, n int) []string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return words
}

// Color returns bg when it is a #rgb or #rrggbb color, else DefaultColor.
func Color(bg string) string {
	if colorRe.MatchString(bg) {
		return bg
	}
	return DefaultColor
}

// SVG renders the placeholder image.
func SVG(title, bg string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, Width, Height, Width, Height)
	fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill="%s" rx="12"/>`, Color(bg))
	fmt.Fprintf(&buf, `<text x="50%%" y="54%%" font-family="Segoe UI, Roboto, Arial" font-size="72" fill="white" text-anchor="middle" dominant-baseline="middle" font-weight="700">%s</text>`,
		html.EscapeString(Initials(title)))
	buf.WriteString(`</svg>`)
	return buf.Bytes()
}

// Synthesize returns the placeholder as an inline data URL.
func Synthesize(title, bg string) string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(SVG(title, bg))
}

// IsSynthesized reports whether src was produced by Synthesize.
func IsSynthesized(src string) bool {
	return strings.HasPrefix(src, dataURIPrefix)
}

// Decode returns the SVG inside a synthesized data URL.
func Decode(src string) ([]byte, error) {
	if !IsSynthesized(src) {
		return nil, fmt.Errorf("not a placeholder cover")
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(src, dataURIPrefix))
}
