package convert

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// styleTags maps document paragraph styles to HTML block tags.
// Anything absent renders as p.
var styleTags = map[string]string{
	"Heading1": "h1",
	"Heading2": "h2",
	"Heading3": "h3",
	"Heading4": "h4",
	"Heading5": "h5",
	"Heading6": "h6",
	"Title":    "h1",
	"Subtitle": "h2",
	"Quote":    "blockquote",
}

// transparentPixel is the 1x1 transparent PNG substituted for images that
// cannot be decoded.
const transparentPixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// validateImage confirms the buffer decodes as its declared raster type.
// Vector and otherwise unrecognized content types pass through untouched.
func validateImage(data []byte, contentType string) error {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp", "image/tiff":
	default:
		return nil
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("decode %s: %w", contentType, err)
	}
	return nil
}
