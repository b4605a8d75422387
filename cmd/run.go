package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/tilewm/internal/server"
	"github.com/mj1618/tilewm/internal/telemetry"
	"github.com/mj1618/tilewm/internal/wm"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start tiling and keep windows tiled until interrupted",
	Long: `Start the tiler: tile every manageable window that is already open, then
follow window lifecycle notifications until SIGINT or SIGTERM.

Examples:
  tilewm run
  tilewm run --layout columns --metrics-addr :9090
  tilewm run --control-port 8765`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("layout", "", "Initial layout, overriding the config: dwindle, monocle, columns, focus")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	runCmd.Flags().Int("control-port", 0, "Serve the MCP control surface over streamable-http on this port")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := loggerFrom(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode, err := layoutFlag(cmd, "layout", cfg.LayoutMode())
	if err != nil {
		return err
	}
	cfg.Layout = mode.String()

	provider, err := newProvider()
	if err != nil {
		return err
	}
	defer provider.Close()
	provider.SetLogger(logger)

	if provider.Instance != nil {
		release, err := provider.Instance.Acquire()
		if err != nil {
			return err
		}
		defer release()
	}

	metrics := telemetry.NewMetrics()
	d, err := wm.New(wm.Options{
		Provider: provider,
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics,
	})
	if err != nil {
		return err
	}
	if err := d.Bootstrap(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		srv := metrics.NewServer(addr)
		go func() {
			logger.Info("metrics listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
		defer shutdown(srv.Shutdown)
	}

	if port, _ := cmd.Flags().GetInt("control-port"); port > 0 {
		scfg := server.Config{Transport: "streamable-http", Port: port, CacheTTL: 500 * time.Millisecond}
		ctl := server.New(d, scfg, logger)
		go func() {
			if err := ctl.Serve(scfg); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("control surface stopped", "err", err)
			}
		}()
		defer shutdown(ctl.Shutdown)
	}

	logger.Info("tiling", "layout", mode)
	err = d.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("stopping")
		return nil
	}
	return err
}

func shutdown(fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = fn(ctx)
}
