package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/yildizm/spamscope/internal/analysis"
	"github.com/yildizm/spamscope/internal/analyzer"
	"github.com/yildizm/spamscope/internal/formatter"
	"github.com/yildizm/spamscope/internal/logger"
	"github.com/yildizm/spamscope/internal/telemetry"
	"github.com/yildizm/spamscope/internal/ui"
)

// ErrAnalysisFailed is returned when a submission ends in the Error state
var ErrAnalysisFailed = errors.New("analysis failed")

// telemetryShutdownTimeout bounds the final span flush
const telemetryShutdownTimeout = 5 * time.Second

// newLogger creates a stderr logger following the verbose setting
func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// newClient creates the analysis service client from the loaded config
func newClient() (*analysis.Client, error) {
	client, err := analysis.NewClient(GetGlobalConfig().Service.ClientConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create service client: %w", err)
	}
	return client, nil
}

// newAnalyzer wires a client into an Analyzer
func newAnalyzer(log *logger.Logger) (*analyzer.Analyzer, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	return analyzer.New(client, log), nil
}

// useColor decides whether output gets ANSI colors
func useColor() bool {
	if noColor || ui.IsColorDisabled() {
		return false
	}
	switch GetGlobalConfig().Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

// getFormatter returns the formatter for the configured output format
func getFormatter() (formatter.Formatter, error) {
	return formatter.New(GetGlobalConfig().Output.DefaultFormat, useColor())
}

// signalContext is canceled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// startTelemetry installs the trace exporter and returns its shutdown.
// Export problems are logged, never fatal.
func startTelemetry(ctx context.Context, log *logger.Logger) func() {
	shutdown, err := telemetry.Setup(ctx, GetGlobalConfig().Telemetry)
	if err != nil {
		log.Warn("telemetry disabled: %v", err)
		return func() {}
	}

	return func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Debug("telemetry shutdown: %v", err)
		}
	}
}
