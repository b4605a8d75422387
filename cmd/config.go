package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/tilewm/internal/config"
	"github.com/mj1618/tilewm/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the built-in exclusion lists merged with the user config file. The
user file is created from a commented template the first time it is needed.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("defaults", false, "Print only the built-in defaults")
	configCmd.Flags().Bool("path", false, "Print the user config path and exit")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if showPath, _ := cmd.Flags().GetBool("path"); showPath {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		if path == "" {
			var err error
			if path, err = config.DefaultUserPath(); err != nil {
				return err
			}
		}
		return output.Print(map[string]string{"path": path})
	}

	var cfg *config.Config
	var err error
	if defaults, _ := cmd.Flags().GetBool("defaults"); defaults {
		cfg, err = config.Default()
	} else {
		cfg, err = loadConfig()
	}
	if err != nil {
		return err
	}
	return output.Print(cfg)
}
