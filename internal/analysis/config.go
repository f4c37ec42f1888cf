package analysis

import (
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is where the analysis service listens by default
	DefaultBaseURL = "http://localhost:8000"

	// AnalyzePath is the fixed analysis endpoint
	AnalyzePath = "/analyze"

	// HealthPath answers when the service is up
	HealthPath = "/"
)

// ClientConfig holds the service client configuration
type ClientConfig struct {
	// BaseURL is the service root, e.g. http://localhost:8000
	BaseURL string `json:"base_url"`

	// Timeout for HTTP requests. Zero leaves the transport default in place.
	Timeout time.Duration `json:"timeout"`
}

// DefaultClientConfig returns the default client configuration
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: DefaultBaseURL,
	}
}

// Validate validates the configuration
func (c *ClientConfig) Validate() error {
	if c.BaseURL == "" {
		return NewConfigurationError("base_url", "base URL is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return NewConfigurationError("base_url", "invalid base URL: "+err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewConfigurationError("base_url", "scheme must be http or https")
	}
	if u.Host == "" {
		return NewConfigurationError("base_url", "host is required")
	}

	if c.Timeout < 0 {
		return NewConfigurationError("timeout", "timeout must be non-negative")
	}

	return nil
}
