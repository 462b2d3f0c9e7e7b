// Package convert transforms .docx documents into semantic HTML, extracting
// embedded images as artifacts referenced through temp:// placeholders, and
// validates .pdf documents for attachment-style publishing.
package convert

import (
	"log/slog"

	"docpress/internal/scratch"

	"github.com/google/uuid"
)

// ImageArtifact is one embedded image found in a source document. The
// placeholder reference is never a resolvable location; it exists solely as a
// rewrite anchor once the image has been uploaded.
type ImageArtifact struct {
	ID          uuid.UUID
	FileName    string
	ContentType string
	Data        []byte
	Placeholder string
}

// Metadata carries non-fatal information gathered during conversion.
type Metadata struct {
	ParagraphCount int
	ImageCount     int
	Warnings       []string
}

// Result is the output of a document conversion.
type Result struct {
	HTML     string
	Images   []ImageArtifact
	Metadata Metadata
}

// Converter turns document buffers into HTML plus image artifacts.
type Converter struct {
	logger *slog.Logger
}

// New creates a document converter.
func New(logger *slog.Logger) *Converter {
	return &Converter{logger: logger.With("system", "convert")}
}

// Convert parses a .docx buffer into HTML and image artifacts. When spill is
// non-nil, every extracted image is also written there for post-mortem
// inspection. Warnings never fail the call; an unreadable package does.
func (c *Converter) Convert(data []byte, spill *scratch.Space) (*Result, error) {
	result, err := c.convertDocx(data, spill)
	if err != nil {
		return nil, err
	}

	c.logger.Info("document converted",
		"paragraphs", result.Metadata.ParagraphCount,
		"images", len(result.Images),
		"warnings", len(result.Metadata.Warnings),
	)

	return result, nil
}
