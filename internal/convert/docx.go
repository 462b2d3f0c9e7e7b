package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"docpress/internal/images"
	"docpress/internal/scratch"

	"github.com/google/uuid"
)

const (
	documentPart      = "word/document.xml"
	relationshipsPart = "word/_rels/document.xml.rels"
)

// relationships maps relationship ids from document.xml.rels to their targets.
type relationships struct {
	Entries []struct {
		ID         string `xml:"Id,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

func (c *Converter) convertDocx(data []byte, spill *scratch.Space) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	doc, ok := parts[documentPart]
	if !ok {
		return nil, fmt.Errorf("%w: %s missing", ErrInvalidDocument, documentPart)
	}

	rels, err := readRelationships(parts)
	if err != nil {
		return nil, err
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer rc.Close()

	walker := &docxWalker{
		converter: c,
		parts:     parts,
		rels:      rels,
		spill:     spill,
	}

	if err := walker.walk(rc); err != nil {
		return nil, err
	}

	if walker.result.Metadata.ParagraphCount == 0 && len(walker.result.Images) == 0 {
		return nil, ErrNoContent
	}

	walker.result.Metadata.ImageCount = len(walker.result.Images)
	return &walker.result, nil
}

func readRelationships(parts map[string]*zip.File) (map[string]string, error) {
	rels := make(map[string]string)

	part, ok := parts[relationshipsPart]
	if !ok {
		return rels, nil
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", relationshipsPart, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", relationshipsPart, err)
	}

	var parsed relationships
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed relationships: %v", ErrInvalidDocument, err)
	}

	for _, entry := range parsed.Entries {
		target := entry.Target
		if entry.TargetMode != "External" {
			target = path.Clean(path.Join("word", target))
		}
		rels[entry.ID] = target
	}

	return rels, nil
}

// docxWalker streams word/document.xml and accumulates HTML output,
// image artifacts, and warnings.
type docxWalker struct {
	converter *Converter
	parts     map[string]*zip.File
	rels      map[string]string
	spill     *scratch.Space

	result Result

	html      strings.Builder
	paragraph strings.Builder

	inParagraph bool
	inText      bool
	inRunProps  bool
	style       string
	isListItem  bool
	inList      bool
	runBold     bool
	runItalic   bool
	runUnder    bool

	warned map[string]bool
}

func (w *docxWalker) walk(r io.Reader) error {
	w.warned = make(map[string]bool)
	decoder := xml.NewDecoder(r)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: malformed document: %v", ErrInvalidDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			w.startElement(t)
		case xml.CharData:
			if w.inParagraph && w.inText {
				w.paragraph.WriteString(escapeText(string(t)))
			}
		case xml.EndElement:
			w.endElement(t)
		}
	}

	if w.inList {
		w.html.WriteString("</ul>\n")
	}

	w.result.HTML = w.html.String()
	return nil
}

func (w *docxWalker) startElement(t xml.StartElement) {
	switch t.Name.Local {
	case "p":
		w.inParagraph = true
		w.paragraph.Reset()
		w.style = ""
		w.isListItem = false
	case "pStyle":
		if w.inParagraph {
			w.style = attrValue(t, "val")
		}
	case "numPr":
		if w.inParagraph {
			w.isListItem = true
		}
	case "rPr":
		w.inRunProps = true
	case "r":
		w.runBold = false
		w.runItalic = false
		w.runUnder = false
	case "b":
		if w.inRunProps {
			w.runBold = toggleOn(t)
		}
	case "i":
		if w.inRunProps {
			w.runItalic = toggleOn(t)
		}
	case "u":
		if w.inRunProps {
			w.runUnder = attrValue(t, "val") != "none"
		}
	case "t":
		if w.inParagraph {
			w.inText = true
			w.paragraph.WriteString(w.openRunTags())
		}
	case "br":
		if w.inParagraph {
			w.paragraph.WriteString("<br/>")
		}
	case "tab":
		if w.inParagraph {
			w.paragraph.WriteString(" ")
		}
	case "hyperlink":
		if w.inParagraph {
			if target, ok := w.rels[attrValue(t, "id")]; ok {
				w.paragraph.WriteString(`<a href="` + escapeAttr(target) + `">`)
			} else {
				w.paragraph.WriteString("<a>")
			}
		}
	case "blip":
		w.embedImage(attrValue(t, "embed"))
	}
}

func (w *docxWalker) endElement(t xml.EndElement) {
	switch t.Name.Local {
	case "t":
		if w.inText {
			w.paragraph.WriteString(w.closeRunTags())
			w.inText = false
		}
	case "rPr":
		w.inRunProps = false
	case "hyperlink":
		if w.inParagraph {
			w.paragraph.WriteString("</a>")
		}
	case "p":
		if w.inParagraph {
			w.flushParagraph()
			w.inParagraph = false
		}
	}
}

func (w *docxWalker) flushParagraph() {
	content := strings.TrimSpace(w.paragraph.String())
	if content == "" {
		return
	}

	w.result.Metadata.ParagraphCount++

	if w.isListItem {
		if !w.inList {
			w.html.WriteString("<ul>\n")
			w.inList = true
		}
		w.html.WriteString("<li>" + content + "</li>\n")
		return
	}

	if w.inList {
		w.html.WriteString("</ul>\n")
		w.inList = false
	}

	tag := w.blockTag()
	w.html.WriteString("<" + tag + ">" + content + "</" + tag + ">\n")
}

// blockTag maps the paragraph style to an HTML block tag. Unknown styles
// fall back to p and are reported once as a warning.
func (w *docxWalker) blockTag() string {
	if tag, ok := styleTags[w.style]; ok {
		return tag
	}
	if w.style != "" && w.style != "Normal" && !w.warned[w.style] {
		w.warned[w.style] = true
		w.warn("unsupported paragraph style %q rendered as p", w.style)
	}
	return "p"
}

func (w *docxWalker) embedImage(relID string) {
	target, ok := w.rels[relID]
	if !ok {
		w.warn("image relationship %q unresolved, using fallback pixel", relID)
		w.writeImageTag(transparentPixel)
		return
	}

	data, err := w.readPart(target)
	if err != nil {
		w.warn("image %s unreadable (%v), using fallback pixel", target, err)
		w.writeImageTag(transparentPixel)
		return
	}

	contentType := images.ContentType(path.Ext(target))
	if err := validateImage(data, contentType); err != nil {
		w.warn("image %s undecodable (%v), using fallback pixel", target, err)
		w.writeImageTag(transparentPixel)
		return
	}

	artifact := ImageArtifact{
		ID:          uuid.New(),
		ContentType: contentType,
		Data:        data,
	}
	artifact.FileName = artifact.ID.String() + images.Extension(contentType)
	artifact.Placeholder = "temp://" + artifact.FileName

	if w.spill != nil {
		if _, err := w.spill.Store(artifact.FileName, data); err != nil {
			w.converter.logger.Warn("image spill failed", "file", artifact.FileName, "error", err)
		}
	}

	w.result.Images = append(w.result.Images, artifact)
	w.writeImageTag(artifact.Placeholder)
}

func (w *docxWalker) writeImageTag(src string) {
	tag := `<img src="` + escapeAttr(src) + `" alt=""/>`
	if w.inParagraph {
		w.paragraph.WriteString(tag)
	} else {
		w.html.WriteString(tag + "\n")
	}
}

func (w *docxWalker) readPart(name string) ([]byte, error) {
	part, ok := w.parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not in package", name)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

func (w *docxWalker) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	w.result.Metadata.Warnings = append(w.result.Metadata.Warnings, msg)
	w.converter.logger.Warn("conversion warning", "detail", msg)
}

func (w *docxWalker) openRunTags() string {
	var sb strings.Builder
	if w.runBold {
		sb.WriteString("<strong>")
	}
	if w.runItalic {
		sb.WriteString("<em>")
	}
	if w.runUnder {
		sb.WriteString("<u>")
	}
	return sb.String()
}

func (w *docxWalker) closeRunTags() string {
	var sb strings.Builder
	if w.runUnder {
		sb.WriteString("</u>")
	}
	if w.runItalic {
		sb.WriteString("</em>")
	}
	if w.runBold {
		sb.WriteString("</strong>")
	}
	return sb.String()
}

func attrValue(t xml.StartElement, name string) string {
	for _, attr := range t.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// toggleOn interprets OOXML boolean properties, where absence of a val
// attribute means enabled.
func toggleOn(t xml.StartElement) bool {
	switch attrValue(t, "val") {
	case "false", "0", "none":
		return false
	default:
		return true
	}
}
