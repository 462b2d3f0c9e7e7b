package publish

import (
	"html"
	"strings"
	"unicode/utf8"
)

// excerptLength caps the plain-text summary carried in notifications.
const excerptLength = 160

// excerpt reduces post HTML to a short plain-text summary: tags stripped,
// entities decoded, whitespace collapsed, truncated on a rune boundary.
func excerpt(content string) string {
	var b strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	text := strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
	if utf8.RuneCountInString(text) <= excerptLength {
		return text
	}

	runes := []rune(text)
	return strings.TrimRight(string(runes[:excerptLength]), " ") + "..."
}
