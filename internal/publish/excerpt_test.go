package publish

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"strips tags", "<h1>Aviso</h1><p>Contenido del aviso</p>", "Aviso Contenido del aviso"},
		{"decodes entities", "<p>Caf&eacute; &amp; pan</p>", "Café & pan"},
		{"collapses whitespace", "<p>a</p>\n\n<p>  b   c</p>", "a b c"},
		{"anchor text kept", `<p><a href="https://x.test/f.pdf">Informe (PDF, 3 pages)</a></p>`, "Informe (PDF, 3 pages)"},
		{"empty content", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := excerpt(tt.content); got != tt.want {
				t.Errorf("excerpt(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestExcerpt_TruncatesLongContent(t *testing.T) {
	content := "<p>" + strings.Repeat("palabra ", 60) + "</p>"

	got := excerpt(content)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("excerpt() = %q, want truncation suffix", got)
	}
	if n := utf8.RuneCountInString(got); n > excerptLength+3 {
		t.Errorf("excerpt() length = %d runes, want at most %d", n, excerptLength+3)
	}
}
