package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/spamscope/internal/analyzer"
	"github.com/yildizm/spamscope/internal/emoji"
)

// maxInputBytes caps text read from a file or stdin
const maxInputBytes = 1 << 20

var (
	analyzeFile       string
	analyzeTimeout    time.Duration
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze text once and print the result",
		Long: `Send text to the analysis service and print the spam and AI verdicts.

The text comes from the arguments, from --file, or from stdin when neither is
given. The exit status is non-zero when the analysis ends in an error.

Examples:
  spamscope analyze "Win a free prize now!"
  spamscope analyze --file message.txt --output json
  echo "Hello friend" | spamscope analyze`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read the text from a file")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "overall timeout for the request (0 = none)")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := newLogger("analyze")

	text, err := readAnalyzeInput(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()
	if analyzeTimeout > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, analyzeTimeout)
		defer timeoutCancel()
	}

	stopTelemetry := startTelemetry(ctx, log)
	defer stopTelemetry()

	a, err := newAnalyzer(log)
	if err != nil {
		return err
	}

	state := a.Submit(ctx, text)

	if err := writeScreen(cmd, analyzer.Render(state)); err != nil {
		return err
	}

	if state.Phase() == analyzer.PhaseError {
		return ErrAnalysisFailed
	}
	return nil
}

// readAnalyzeInput picks the text from args, --file or stdin, in that order
func readAnalyzeInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		if analyzeFile != "" {
			return "", fmt.Errorf("use either text arguments or --file, not both")
		}
		return strings.Join(args, " "), nil
	}

	if analyzeFile != "" {
		return readTextFile(analyzeFile)
	}

	if isVerbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Reading from stdin...\n", emoji.GetEmoji("loading"))
	}
	return readLimited(cmd.InOrStdin())
}

// readTextFile reads a whole text file after validating the path
func readTextFile(path string) (string, error) {
	if err := validateFilePath(path); err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}

	// #nosec G304 - path is validated above
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close file: %v\n", err)
		}
	}()

	return readLimited(file)
}

func readLimited(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) > maxInputBytes {
		return "", fmt.Errorf("input exceeds %d bytes", maxInputBytes)
	}
	return string(data), nil
}

// writeScreen formats a screen and sends it to stdout or --output-file
func writeScreen(cmd *cobra.Command, screen analyzer.Screen) error {
	f, err := getFormatter()
	if err != nil {
		return err
	}

	output, err := f.Format(screen)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if analyzeOutputFile == "" {
		_, err := cmd.OutOrStdout().Write(output)
		return err
	}

	if err := writeOutputBytesToFile(output, analyzeOutputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", analyzeOutputFile)
	}
	return nil
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
