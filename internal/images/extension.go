// Package images provides best-effort image optimization and MIME type
// mapping for media uploads.
package images

import "strings"

// extensions maps the documented content types to their canonical file
// extensions.
var extensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/bmp":     ".bmp",
	"image/tiff":    ".tiff",
	"image/svg+xml": ".svg",
}

// Extension returns the file extension for a content type.
// Unrecognized types fall back to .jpg.
func Extension(contentType string) string {
	if ext, ok := extensions[strings.ToLower(strings.TrimSpace(contentType))]; ok {
		return ext
	}
	return ".jpg"
}

// ContentType returns the content type for a file extension.
// Unrecognized extensions fall back to image/jpeg.
func ContentType(ext string) string {
	ext = strings.ToLower(ext)
	if ext == ".jpeg" {
		return "image/jpeg"
	}
	for ct, e := range extensions {
		if e == ext {
			return ct
		}
	}
	return "image/jpeg"
}
