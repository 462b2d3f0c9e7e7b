package images

import (
	"bytes"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp"
)

// Optimizer recompresses and bounds image dimensions before upload.
// Optimization is best-effort: any processing failure yields the original
// buffer unchanged.
type Optimizer struct {
	maxWidth  int
	maxHeight int
	quality   int
	logger    *slog.Logger
}

// NewOptimizer creates an optimizer with the given dimension bounds and
// JPEG quality.
func NewOptimizer(maxWidth, maxHeight, quality int, logger *slog.Logger) *Optimizer {
	return &Optimizer{
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		quality:   quality,
		logger:    logger.With("system", "images"),
	}
}

// Optimize returns a possibly-recompressed buffer and its resulting content
// type. Images larger than the configured bounds are scaled down preserving
// aspect ratio; images within bounds are never upscaled. JPEG and PNG
// re-encode in place; WEBP, BMP, and TIFF re-encode as JPEG. Everything else
// (GIF, SVG, unknown) passes through untouched, as does anything that fails
// to process.
func (o *Optimizer) Optimize(data []byte, contentType string) ([]byte, string) {
	var format imaging.Format
	outType := contentType

	switch contentType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	case "image/webp", "image/bmp", "image/tiff":
		format = imaging.JPEG
		outType = "image/jpeg"
	default:
		return data, contentType
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		o.logger.Warn("optimize decode failed, keeping original", "content_type", contentType, "error", err)
		return data, contentType
	}

	img = o.bound(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(o.quality)); err != nil {
		o.logger.Warn("optimize encode failed, keeping original", "content_type", contentType, "error", err)
		return data, contentType
	}

	return buf.Bytes(), outType
}

func (o *Optimizer) bound(img image.Image) image.Image {
	size := img.Bounds().Size()
	if size.X <= o.maxWidth && size.Y <= o.maxHeight {
		return img
	}
	return imaging.Fit(img, o.maxWidth, o.maxHeight, imaging.Lanczos)
}
