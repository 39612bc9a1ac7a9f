package cover

import (
	"strings"
	"testing"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		title, want string
	}{
		{"Blue Ocean", "BO"},
		{"", "BK"},
		{"   ", "BK"},
		{"dune", "D"},
		{"the lord of the rings", "TL"},
		{"  spaced   out  ", "SO"},
		{"(quoted) title", "QT"},
		{"— —", "BK"},
		{"ăla bală", "ĂB"},
		{"1984 novel", "1N"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Initials(tt.title); got != tt.want {
				t.Errorf("Initials(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSVG(t *testing.T) {
	svg := string(SVG("Blue Ocean", "#ff0000"))
	for _, want := range []string{`fill="#ff0000"`, `>BO</text>`, `width="300"`, `height="420"`, `rx="12"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s: %s", want, svg)
		}
	}
}

func TestSVGRejectsBadColor(t *testing.T) {
	svg := string(SVG("x", `red" onload="alert(1)`))
	if strings.Contains(svg, "onload") {
		t.Fatalf("color not sanitized: %s", svg)
	}
	if !strings.Contains(svg, `fill="`+DefaultColor+`"`) {
		t.Fatalf("default color not used: %s", svg)
	}
}

func TestSVGEscapesInitials(t *testing.T) {
	svg := string(SVG("<b> &amp", ""))
	if strings.Contains(svg, "<b>") {
		t.Fatalf("raw markup leaked: %s", svg)
	}
}

func TestSynthesizeRoundTrip(t *testing.T) {
	src := Synthesize("Blue Ocean", DefaultColor)
	if !IsSynthesized(src) {
		t.Fatalf("unexpected prefix: %s", src)
	}
	if Synthesize("Blue Ocean", DefaultColor) != src {
		t.Fatal("not deterministic")
	}
	svg, err := Decode(src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(string(svg), ">BO<") {
		t.Fatalf("initials missing: %s", svg)
	}
	if _, err := Decode("https://covers.openlibrary.org/b/id/1-M.jpg"); err == nil {
		t.Fatal("expected error for real cover url")
	}
}
