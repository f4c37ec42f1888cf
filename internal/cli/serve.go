package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/spamscope/internal/emoji"
	"github.com/yildizm/spamscope/internal/web"
)

var serveListen string

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer as a web page",
		Long: `Start a web server with the analyzer page and a JSON API.

Routes:
  GET  /             the analyzer page
  POST /             submit the page form
  POST /api/analyze  {"text": "..."} -> rendered view as JSON
  GET  /health       liveness

Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (default from web.listen)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := newLogger("serve")

	webCfg := cfg.Web
	if cmd.Flags().Changed("listen") {
		webCfg.Listen = serveListen
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	stopTelemetry := startTelemetry(ctx, log)
	defer stopTelemetry()

	client, err := newClient()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Serving on %s (analysis service %s)\n", emoji.GetEmoji("globe"), webCfg.Listen, client.BaseURL())

	server := web.NewServer(webCfg, client, log)
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Server stopped\n", emoji.GetEmoji("door"))
	return nil
}
