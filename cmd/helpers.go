package cmd

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/tilewm/internal/config"
	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/platform"
	"github.com/mj1618/tilewm/internal/preview"
)

// newProvider is swapped out by tests.
var newProvider = platform.NewProvider

// loadConfig returns the built-in defaults merged with the user config named
// by --config, or the default user file.
func loadConfig() (*config.Config, error) {
	path, _ := rootCmd.PersistentFlags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// loadConfigOrDefault is loadConfig when --config is set and the embedded
// defaults otherwise. Commands that do not touch the real desktop use it so
// they never create a user config file.
func loadConfigOrDefault() (*config.Config, error) {
	if path, _ := rootCmd.PersistentFlags().GetString("config"); path != "" {
		return loadConfig()
	}
	return config.Default()
}

// layoutFlag reads a layout name flag; an empty value yields fallback.
func layoutFlag(cmd *cobra.Command, name string, fallback model.LayoutMode) (model.LayoutMode, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return fallback, nil
	}
	return model.ParseLayoutMode(s)
}

// writePNG encodes img to path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := preview.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
