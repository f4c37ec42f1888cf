package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SPAMSCOPE_"

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.spamscope.yaml",               // Project-specific config (highest priority)
	"~/.config/spamscope/config.yaml", // User config
	"/etc/spamscope/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	warn        func(format string, args ...interface{})
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return NewLoaderWithPaths(ConfigPaths)
}

// NewLoaderWithPaths creates a loader searching the given paths, highest priority first
func NewLoaderWithPaths(paths []string) *Loader {
	return &Loader{
		configPaths: paths,
		warn: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.spamscope.yaml
// 4. ~/.config/spamscope/config.yaml
// 5. /etc/spamscope/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				l.warn("failed to load config from %s: %v", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file over the existing config. Keys absent from
// the file keep their current value.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path comes from the search list or validateConfigPath
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	fileConfig := *config
	fileConfig.Web.AllowedOrigins = append([]string(nil), config.Web.AllowedOrigins...)
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	*config = fileConfig
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Service Config
		"SERVICE_BASE_URL": func(v string) error { config.Service.BaseURL = v; return nil },
		"SERVICE_TIMEOUT":  func(v string) error { return parseDuration(v, &config.Service.Timeout) },

		// UI Config
		"UI_THEME": func(v string) error { config.UI.Theme = v; return nil },

		// Output Config
		"OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"OUTPUT_LOG_FILE":       func(v string) error { config.Output.LogFile = v; return nil },

		// Web Config
		"WEB_LISTEN":           func(v string) error { config.Web.Listen = v; return nil },
		"WEB_MODE":             func(v string) error { config.Web.Mode = v; return nil },
		"WEB_SHUTDOWN_TIMEOUT": func(v string) error { return parseDuration(v, &config.Web.ShutdownTimeout) },
		"WEB_ALLOWED_ORIGINS": func(v string) error {
			config.Web.AllowedOrigins = splitList(v)
			return nil
		},

		// Telemetry Config
		"TELEMETRY_ENDPOINT":     func(v string) error { config.Telemetry.Endpoint = v; return nil },
		"TELEMETRY_SERVICE_NAME": func(v string) error { config.Telemetry.ServiceName = v; return nil },
		"TELEMETRY_INSECURE":     func(v string) error { return parseBool(v, &config.Telemetry.Insecure) },
	}

	for suffix, setter := range envMappings {
		envVar := EnvPrefix + suffix
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// standard OpenTelemetry variables fill in what the config left empty
	if config.Telemetry.Endpoint == "" {
		config.Telemetry.Endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" && os.Getenv(EnvPrefix+"TELEMETRY_SERVICE_NAME") == "" {
		config.Telemetry.ServiceName = name
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Type conversion helpers

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
