package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# spamscope configuration
version: "1.0"

# Analysis service
service:
  # Root URL of the analysis service. Requests go to <base_url>/analyze.
  base_url: "http://localhost:8000"
  # Request timeout, 0 waits for the transport (e.g. "30s")
  timeout: 0s

# Terminal UI
ui:
  # default, high-contrast or minimal
  theme: "default"

# Output formatting
output:
  # text, json, markdown or csv
  default_format: "text"
  # auto, always or never
  color_mode: "auto"
  verbose: false
  # Where logs go while the terminal UI owns the screen.
  # Empty uses spamscope.log in the temp directory.
  log_file: ""

# Web front end (spamscope serve)
web:
  listen: ":8080"
  allowed_origins:
    - "http://localhost:3000"
  # debug, release or test
  mode: "release"
  shutdown_timeout: 5s

# Trace export over OTLP/HTTP
telemetry:
  # host:port of the collector, empty disables export.
  # OTEL_EXPORTER_OTLP_ENDPOINT is used when this is empty.
  endpoint: ""
  service_name: "spamscope"
  insecure: true
`
}

// MinimalSampleConfig returns a compact configuration with essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
service:
  base_url: "http://localhost:8000"
output:
  default_format: "text"
`
}
