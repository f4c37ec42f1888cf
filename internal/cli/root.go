package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yildizm/spamscope/internal/config"
	"github.com/yildizm/spamscope/internal/emoji"
	"github.com/yildizm/spamscope/internal/ui"
)

var (
	cfgFile        string
	verbose        bool
	noColor        bool
	noEmoji        bool
	outputFmt      string
	serviceBaseURL string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spamscope",
		Short: "Spam and AI-content detector",
		Long: `spamscope sends text to an analysis service and shows whether it is spam
and how likely it was written by AI.

Run without a subcommand to open the interactive analyzer, or use analyze,
watch or serve for scripted, file-driven or browser use.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			cfg, err := loadGlobalConfig(cmd)
			if err != nil {
				return err
			}
			globalConfig = cfg
			ui.SetThemeByName(cfg.UI.Theme)
			return nil
		},
		RunE: runTUI,
	}

	addGlobalFlags(rootCmd.PersistentFlags())

	// Add subcommands
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newPingCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// addGlobalFlags registers the flags shared by every command
func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&cfgFile, "config", "c", "", "config file path")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	flags.StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown, csv)")
	flags.StringVar(&serviceBaseURL, "service-base-url", "", "analysis service root URL (default http://localhost:8000)")
}

// loadGlobalConfig loads the config and applies flag overrides on top
func loadGlobalConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("service-base-url") {
		cfg.Service.BaseURL = serviceBaseURL
	}
	if flags.Changed("verbose") {
		cfg.Output.Verbose = verbose
	}
	if flags.Changed("output") {
		cfg.Output.DefaultFormat = outputFmt
	}
	if flags.Changed("no-color") && noColor {
		cfg.Output.ColorMode = "never"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// GetGlobalConfig returns the loaded configuration, or defaults before loading
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		// version needs no config
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "spamscope %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers
func isVerbose() bool {
	return GetGlobalConfig().Output.Verbose
}
