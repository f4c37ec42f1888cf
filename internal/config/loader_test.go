package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return path
}

func clearTelemetryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_SERVICE_NAME", "")
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearTelemetryEnv(t)
	loader := NewLoaderWithPaths([]string{filepath.Join(t.TempDir(), "missing.yaml")})

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Service.BaseURL != "http://localhost:8000" {
		t.Errorf("Expected default base URL http://localhost:8000, got %s", cfg.Service.BaseURL)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
	if cfg.Web.Listen != ":8080" {
		t.Errorf("Expected default listen :8080, got %s", cfg.Web.Listen)
	}
	if cfg.Telemetry.Endpoint != "" {
		t.Errorf("Expected telemetry disabled by default, got %s", cfg.Telemetry.Endpoint)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	clearTelemetryEnv(t)
	configPath := writeConfig(t, t.TempDir(), "test-config.yaml", `version: "1.0"
service:
  base_url: "https://analysis.example.com/v1"
  timeout: 15s
output:
  default_format: "json"
  verbose: true
web:
  allowed_origins:
    - "https://app.example.com"
`)

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Service.BaseURL != "https://analysis.example.com/v1" {
		t.Errorf("Expected base URL from file, got %s", cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout != 15*time.Second {
		t.Errorf("Expected timeout 15s, got %v", cfg.Service.Timeout)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected verbose to be true")
	}
	if len(cfg.Web.AllowedOrigins) != 1 || cfg.Web.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("Expected origins replaced by file, got %v", cfg.Web.AllowedOrigins)
	}

	// keys absent from the file keep their defaults
	if cfg.UI.Theme != "default" {
		t.Errorf("Expected default theme to survive, got %s", cfg.UI.Theme)
	}
	if cfg.Web.ShutdownTimeout != 5*time.Second {
		t.Errorf("Expected default shutdown timeout to survive, got %v", cfg.Web.ShutdownTimeout)
	}
}

func TestLoadConfigPriority(t *testing.T) {
	clearTelemetryEnv(t)
	dir := t.TempDir()
	project := writeConfig(t, dir, "project.yaml", `service:
  base_url: "http://project:9000"
`)
	user := writeConfig(t, dir, "user.yaml", `service:
  base_url: "http://user:9000"
output:
  verbose: true
ui:
  theme: "minimal"
`)

	loader := NewLoaderWithPaths([]string{project, user})
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Service.BaseURL != "http://project:9000" {
		t.Errorf("Expected project file to win, got %s", cfg.Service.BaseURL)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected verbose from user file to be kept")
	}
	if cfg.UI.Theme != "minimal" {
		t.Errorf("Expected theme from user file, got %s", cfg.UI.Theme)
	}
}

func TestLoadConfigExplicitFalseOverridesTrue(t *testing.T) {
	clearTelemetryEnv(t)
	dir := t.TempDir()
	project := writeConfig(t, dir, "project.yaml", "output:\n  verbose: false\n")
	user := writeConfig(t, dir, "user.yaml", "output:\n  verbose: true\n")

	cfg, err := NewLoaderWithPaths([]string{project, user}).LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Output.Verbose {
		t.Error("Expected explicit false in the higher priority file to win")
	}
}

func TestLoadConfigBrokenFileIsSkipped(t *testing.T) {
	clearTelemetryEnv(t)
	dir := t.TempDir()
	broken := writeConfig(t, dir, "broken.yaml", "service: [unterminated\n")

	var warnings []string
	loader := NewLoaderWithPaths([]string{broken})
	loader.warn = func(format string, args ...interface{}) {
		warnings = append(warnings, format)
	}

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Service.BaseURL != "http://localhost:8000" {
		t.Errorf("Expected defaults after a broken file, got %s", cfg.Service.BaseURL)
	}
	if len(warnings) != 1 {
		t.Errorf("Expected one warning, got %d", len(warnings))
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearTelemetryEnv(t)
	t.Setenv("SPAMSCOPE_SERVICE_BASE_URL", "http://env-host:8001")
	t.Setenv("SPAMSCOPE_SERVICE_TIMEOUT", "45s")
	t.Setenv("SPAMSCOPE_OUTPUT_VERBOSE", "true")
	t.Setenv("SPAMSCOPE_WEB_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("SPAMSCOPE_TELEMETRY_ENDPOINT", "collector:4318")

	cfg, err := NewLoaderWithPaths(nil).LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Service.BaseURL != "http://env-host:8001" {
		t.Errorf("Expected env base URL, got %s", cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout != 45*time.Second {
		t.Errorf("Expected env timeout 45s, got %v", cfg.Service.Timeout)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected env verbose")
	}
	if strings.Join(cfg.Web.AllowedOrigins, "|") != "http://a.test|http://b.test" {
		t.Errorf("Unexpected origins %v", cfg.Web.AllowedOrigins)
	}
	if cfg.Telemetry.Endpoint != "collector:4318" {
		t.Errorf("Expected env telemetry endpoint, got %s", cfg.Telemetry.Endpoint)
	}
}

func TestLoadConfigOTelFallback(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4318")
	t.Setenv("OTEL_SERVICE_NAME", "spamscope-dev")

	cfg, err := NewLoaderWithPaths(nil).LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Telemetry.Endpoint != "otel:4318" {
		t.Errorf("Expected OTEL endpoint fallback, got %s", cfg.Telemetry.Endpoint)
	}
	if cfg.Telemetry.ServiceName != "spamscope-dev" {
		t.Errorf("Expected OTEL service name, got %s", cfg.Telemetry.ServiceName)
	}
}

func TestLoadConfigInvalidEnv(t *testing.T) {
	clearTelemetryEnv(t)
	t.Setenv("SPAMSCOPE_SERVICE_TIMEOUT", "soon")

	_, err := NewLoaderWithPaths(nil).LoadConfig("")
	if err == nil {
		t.Fatal("Expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "SPAMSCOPE_SERVICE_TIMEOUT") {
		t.Errorf("Expected error to name the variable, got %v", err)
	}
}

func TestLoadConfigInvalidValuesFailValidation(t *testing.T) {
	clearTelemetryEnv(t)
	configPath := writeConfig(t, t.TempDir(), "bad.yaml", `service:
  base_url: "ftp://example.com"
`)

	if _, err := NewLoader().LoadConfig(configPath); err == nil {
		t.Fatal("Expected validation error for non-http base URL")
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"config.yaml", false},
		{"/tmp/spamscope/config.yml", false},
		{"../config.yaml", true},
		{"config.json", true},
		{"/proc/self/config.yaml", true},
	}

	for _, tt := range tests {
		err := validateConfigPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateConfigPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/x/config.yaml"); got != filepath.Join(home, "x", "config.yaml") {
		t.Errorf("Unexpected expansion %s", got)
	}
	if got := expandPath("/etc/spamscope/config.yaml"); got != "/etc/spamscope/config.yaml" {
		t.Errorf("Absolute path changed: %s", got)
	}
}

func TestSampleConfigsParseAndValidate(t *testing.T) {
	for name, sample := range map[string]string{
		"full":    SampleConfig(),
		"minimal": MinimalSampleConfig(),
	} {
		cfg := DefaultConfig()
		if err := yaml.Unmarshal([]byte(sample), cfg); err != nil {
			t.Fatalf("%s sample does not parse: %v", name, err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s sample does not validate: %v", name, err)
		}
	}
}
