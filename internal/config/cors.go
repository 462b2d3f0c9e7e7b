package config

// CORSConfig contains cross-origin resource sharing settings.
type CORSConfig struct {
	Origins     []string `toml:"origins"`
	Methods     []string `toml:"methods"`
	Headers     []string `toml:"headers"`
	Credentials bool     `toml:"credentials"`
}

// Finalize applies defaults to the CORS configuration.
func (c *CORSConfig) Finalize() error {
	if len(c.Methods) == 0 {
		c.Methods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if len(c.Headers) == 0 {
		c.Headers = []string{"Content-Type", "X-API-Key"}
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	if len(overlay.Origins) > 0 {
		c.Origins = overlay.Origins
	}
	if len(overlay.Methods) > 0 {
		c.Methods = overlay.Methods
	}
	if len(overlay.Headers) > 0 {
		c.Headers = overlay.Headers
	}
	if overlay.Credentials {
		c.Credentials = true
	}
}
