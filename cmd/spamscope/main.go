package main

import (
	"context"
	"errors"
	"os"

	"github.com/yildizm/spamscope/internal/cli"
)

// Build variables set by ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exit codes
const (
	exitError          = 1
	exitAnalysisFailed = 2
)

func main() {
	cmd := cli.NewRootCommand(version, commit, date)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, cli.ErrAnalysisFailed) {
			os.Exit(exitAnalysisFailed)
		}
		os.Exit(exitError)
	}
}
