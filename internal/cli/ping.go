package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/spamscope/internal/emoji"
)

var pingTimeout time.Duration

func newPingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the analysis service is reachable",
		Long: `Send a GET request to the analysis service root and report whether it answered
with a success status.`,
		Args: cobra.NoArgs,
		RunE: runPing,
	}

	cmd.Flags().DurationVar(&pingTimeout, "timeout", 5*time.Second, "how long to wait for the service")

	return cmd
}

func runPing(cmd *cobra.Command, args []string) error {
	log := newLogger("ping")

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()
	if pingTimeout > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, pingTimeout)
		defer timeoutCancel()
	}

	stopTelemetry := startTelemetry(ctx, log)
	defer stopTelemetry()

	out := cmd.OutOrStdout()
	start := time.Now()
	if err := client.HealthCheck(ctx); err != nil {
		fmt.Fprintf(out, "%s %s is not reachable\n", emoji.GetEmoji("error"), client.BaseURL())
		log.Debug("health check failed: %v", err)
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Fprintf(out, "%s %s is up (%s)\n", emoji.GetEmoji("heartbeat"), client.BaseURL(), time.Since(start).Round(time.Millisecond))
	return nil
}
