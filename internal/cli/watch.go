package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yildizm/spamscope/internal/analyzer"
	"github.com/yildizm/spamscope/internal/emoji"
	"github.com/yildizm/spamscope/internal/logger"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-analyze a file whenever it changes",
		Long: `Watch a text file and analyze its whole contents every time it is written.

Uses file system notifications to detect changes. Press Ctrl+C to stop watching.

Examples:
  spamscope watch draft.txt
  spamscope watch --output json inbox/latest.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	log := newLogger("watch")

	if err := validateWatchFilePath(filename); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	watcher, err := createWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	stopTelemetry := startTelemetry(ctx, log)
	defer stopTelemetry()

	a, err := newAnalyzer(log)
	if err != nil {
		return err
	}

	writeWatchBanner(cmd.ErrOrStderr(), filename)

	return runWatchLoop(ctx, watcher, filename, a, cmd.OutOrStdout(), log)
}

// writeWatchBanner tells the user which file is being followed
func writeWatchBanner(w io.Writer, filename string) {
	fmt.Fprintf(w, "%s Watching %s (press Ctrl+C to stop)\n", emoji.GetEmoji("eye"), filename)
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "%s failed to close watcher: %v\n", emoji.GetEmoji("warning"), err)
	}
}

// createWatcher watches the file's directory so editors that replace the
// file on save keep being followed
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(filepath.Clean(filename))); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// runWatchLoop analyzes the file on every write until ctx is canceled
func runWatchLoop(ctx context.Context, watcher *fsnotify.Watcher, filename string, a *analyzer.Analyzer, out io.Writer, log *logger.Logger) error {
	target := filepath.Clean(filename)

	for {
		select {
		case <-ctx.Done():
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nStopping watch...\n")
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !isContentEvent(event, target) {
				continue
			}
			if err := analyzeWatchedFile(ctx, target, a, out); err != nil {
				log.Warn("error handling event: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Warn("watcher error: %v", err)
		}
	}
}

// isContentEvent reports whether event changed the contents of target
func isContentEvent(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// analyzeWatchedFile submits the file's current contents and prints the view
func analyzeWatchedFile(ctx context.Context, path string, a *analyzer.Analyzer, out io.Writer) error {
	text, err := readTextFile(path)
	if err != nil {
		return err
	}

	screen := analyzer.Render(a.Submit(ctx, text))

	f, err := getFormatter()
	if err != nil {
		return err
	}
	output, err := f.Format(screen)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	_, err = out.Write(output)
	return err
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
