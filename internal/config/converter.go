package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// EnvMaxUploadSize overrides the maximum accepted upload size.
const EnvMaxUploadSize = "MAX_UPLOAD_SIZE"

// ConverterConfig contains document conversion and image optimization settings.
type ConverterConfig struct {
	MaxUploadSize    string `toml:"max_upload_size"`
	MaxImageWidth    int    `toml:"max_image_width"`
	MaxImageHeight   int    `toml:"max_image_height"`
	ImageQuality     int    `toml:"image_quality"`
	ScratchDir       string `toml:"scratch_dir"`
	maxUploadSizeVal int64
}

// MaxUploadSizeBytes returns the parsed maximum upload size in bytes.
func (c *ConverterConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the
// converter configuration.
func (c *ConverterConfig) Finalize() error {
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "25MB"
	}
	if c.MaxImageWidth == 0 {
		c.MaxImageWidth = 1920
	}
	if c.MaxImageHeight == 0 {
		c.MaxImageHeight = 1920
	}
	if c.ImageQuality == 0 {
		c.ImageQuality = 82
	}
	if c.ScratchDir == "" {
		c.ScratchDir = os.TempDir()
	}

	if v := os.Getenv(EnvMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	if c.ImageQuality < 1 || c.ImageQuality > 100 {
		return fmt.Errorf("image_quality must be between 1 and 100")
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ConverterConfig) Merge(overlay *ConverterConfig) {
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.MaxImageWidth != 0 {
		c.MaxImageWidth = overlay.MaxImageWidth
	}
	if overlay.MaxImageHeight != 0 {
		c.MaxImageHeight = overlay.MaxImageHeight
	}
	if overlay.ImageQuality != 0 {
		c.ImageQuality = overlay.ImageQuality
	}
	if overlay.ScratchDir != "" {
		c.ScratchDir = overlay.ScratchDir
	}
}
