package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/tilewm/internal/platform/memory"
	"github.com/mj1618/tilewm/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server over a simulated desktop",
	Long: `Start a Model Context Protocol (MCP) server exposing the tiler's tools
(status, set_layout, arrange, preview) over an in-memory desktop, so agents
can explore layouts without a real window system. To control a live tiler,
use "tilewm run --control-port".

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  tilewm serve
  tilewm serve --scenario session.yaml
  tilewm serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Preview cache TTL in milliseconds (0 to disable)")
	serveCmd.Flags().String("scenario", "", "Build the simulated desktop from this scenario file")
	serveCmd.Flags().String("layout", "", "Initial layout, overriding the scenario and config")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	scenarioPath, _ := cmd.Flags().GetString("scenario")

	sc := &memory.Scenario{Area: memory.DefaultArea}
	if scenarioPath != "" {
		var err error
		if sc, err = memory.LoadScenario(scenarioPath); err != nil {
			return err
		}
	}
	cfg, err := loadConfigOrDefault()
	if err != nil {
		return err
	}
	if err := applyLayoutOverrides(cmd, cfg, sc); err != nil {
		return err
	}

	logger := loggerFrom(cmd)
	desk, d, _, err := replay(sc, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build simulated desktop: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("event loop stopped", "err", err)
		}
	}()
	defer desk.Queue().Close()

	scfg := server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
	}
	return server.New(d, scfg, logger).Serve(scfg)
}
