// Package rewrite replaces temp:// placeholder references in converted HTML
// with the public URLs of uploaded media.
//
// Placeholders are generated UUID file names, so exact literal replacement is
// safe: no placeholder can be a substring of another or of a real URL, which
// also makes the transformation idempotent.
package rewrite

import "strings"

// Mapping pairs one placeholder reference with its resolved public URL.
type Mapping struct {
	Placeholder string
	URL         string
}

// Apply replaces every literal occurrence of each mapped placeholder with its
// URL. Placeholders absent from the mapping are left untouched; a post with
// some unresolved references is preferred over no post at all.
func Apply(html string, mappings []Mapping) string {
	if len(mappings) == 0 {
		return html
	}

	pairs := make([]string, 0, len(mappings)*2)
	for _, m := range mappings {
		if m.Placeholder == "" || m.URL == "" {
			continue
		}
		pairs = append(pairs, m.Placeholder, m.URL)
	}

	return strings.NewReplacer(pairs...).Replace(html)
}
