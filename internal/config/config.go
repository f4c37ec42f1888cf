package config

import (
	"fmt"
	"time"

	"github.com/yildizm/spamscope/internal/analysis"
)

// Config holds the complete application configuration
type Config struct {
	Version   string          `yaml:"version" json:"version"`
	Service   ServiceConfig   `yaml:"service" json:"service"`
	UI        UIConfig        `yaml:"ui" json:"ui"`
	Output    OutputConfig    `yaml:"output" json:"output"`
	Web       WebConfig       `yaml:"web" json:"web"`
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
}

// ServiceConfig locates the analysis service
type ServiceConfig struct {
	BaseURL string        `yaml:"base_url" json:"base_url"` // service root, /analyze is appended
	Timeout time.Duration `yaml:"timeout" json:"timeout"`   // 0 keeps the transport default
}

// UIConfig configures the terminal UI
type UIConfig struct {
	Theme string `yaml:"theme" json:"theme"` // default|high-contrast|minimal
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	LogFile       string `yaml:"log_file" json:"log_file"`             // log destination while the TUI runs
}

// WebConfig configures the web front end
type WebConfig struct {
	Listen          string        `yaml:"listen" json:"listen"`
	AllowedOrigins  []string      `yaml:"allowed_origins" json:"allowed_origins"`
	Mode            string        `yaml:"mode" json:"mode"` // gin mode: debug|release|test
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// TelemetryConfig configures trace export
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint" json:"endpoint"` // OTLP/HTTP host:port, empty disables export
	ServiceName string `yaml:"service_name" json:"service_name"`
	Insecure    bool   `yaml:"insecure" json:"insecure"`
}

// ClientConfig converts the service section for the analysis client
func (s ServiceConfig) ClientConfig() *analysis.ClientConfig {
	return &analysis.ClientConfig{
		BaseURL: s.BaseURL,
		Timeout: s.Timeout,
	}
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Service: ServiceConfig{
			BaseURL: analysis.DefaultBaseURL,
			Timeout: 0,
		},
		UI: UIConfig{
			Theme: "default",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			LogFile:       "",
		},
		Web: WebConfig{
			Listen:          ":8080",
			AllowedOrigins:  []string{"http://localhost:3000"},
			Mode:            "release",
			ShutdownTimeout: 5 * time.Second,
		},
		Telemetry: TelemetryConfig{
			Endpoint:    "",
			ServiceName: "spamscope",
			Insecure:    true,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServiceConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateWebConfig(); err != nil {
		return err
	}
	if err := c.validateTelemetryConfig(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServiceConfig() error {
	if err := c.Service.ClientConfig().Validate(); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

func (c *Config) validateUIConfig() error {
	if c.UI.Theme == "" {
		return nil
	}
	validThemes := map[string]bool{
		"default":       true,
		"high-contrast": true,
		"minimal":       true,
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

func (c *Config) validateWebConfig() error {
	if c.Web.Listen == "" {
		return fmt.Errorf("web.listen is required")
	}
	if c.Web.Mode != "" {
		validModes := map[string]bool{
			"debug":   true,
			"release": true,
			"test":    true,
		}
		if !validModes[c.Web.Mode] {
			return fmt.Errorf("invalid web mode: %s (must be one of: debug, release, test)", c.Web.Mode)
		}
	}
	if c.Web.ShutdownTimeout < 0 {
		return fmt.Errorf("web.shutdown_timeout must be non-negative")
	}
	return nil
}

func (c *Config) validateTelemetryConfig() error {
	if c.Telemetry.Endpoint != "" && c.Telemetry.ServiceName == "" {
		return fmt.Errorf("telemetry.service_name is required when telemetry.endpoint is set")
	}
	return nil
}
