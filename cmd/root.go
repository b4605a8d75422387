package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mj1618/tilewm/internal/output"
	"github.com/mj1618/tilewm/internal/telemetry"
	"github.com/mj1618/tilewm/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tilewm",
	Short: "Automatic tiling for top-level desktop windows",
	Long: `tilewm arranges top-level application windows into non-overlapping tiles
and keeps them tiled as windows open, close, minimize, move between virtual
desktops, or are dragged onto each other.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Shorthand for --log-level debug")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: <user config dir>/tilewm/config.yaml)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Use the root persistent flags directly so subcommand flags of the
		// same name cannot shadow them.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		level, err := logLevel(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(telemetry.WithLogger(ctx, telemetry.NewLogger(os.Stderr, level)))
		return nil
	}
}

func logLevel(cmd *cobra.Command) (log.Level, error) {
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		return log.DebugLevel, nil
	}
	name, _ := rootCmd.PersistentFlags().GetString("log-level")
	level, err := log.ParseLevel(strings.ToLower(name))
	if err != nil {
		return 0, fmt.Errorf("unsupported log level: %s (use debug, info, warn, or error)", name)
	}
	return level, nil
}

// loggerFrom returns the logger PersistentPreRunE attached to cmd.
func loggerFrom(cmd *cobra.Command) *log.Logger {
	if cmd.Context() == nil {
		return log.Default()
	}
	return telemetry.LoggerFromContext(cmd.Context())
}
