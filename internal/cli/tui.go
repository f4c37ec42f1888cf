package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yildizm/spamscope/internal/ui"
)

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive analyzer",
		Long: `Open the interactive analyzer in the terminal.

Type or paste a message, press ctrl+s to analyze it, ctrl+l to clear the input
and esc to quit. Logs go to output.log_file while the screen is in use.`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	log := newLogger("tui")

	logFile, err := openTUILog(GetGlobalConfig().Output.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()
	// the screen belongs to the UI, keep log lines out of it
	log.SetOutput(logFile)

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	stopTelemetry := startTelemetry(ctx, log)
	defer stopTelemetry()

	a, err := newAnalyzer(log)
	if err != nil {
		return err
	}

	log.Info("interactive analyzer started")
	return ui.Run(ctx, a, GetGlobalConfig().UI.Theme)
}

// openTUILog opens the log destination used while the UI owns the terminal
func openTUILog(path string) (*os.File, error) {
	if path == "" {
		path = defaultTUILogPath()
	}

	// #nosec G304 - path comes from the user's own configuration
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

func defaultTUILogPath() string {
	return filepath.Join(os.TempDir(), "spamscope.log")
}
