package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mj1618/tilewm/internal/config"
	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/output"
	"github.com/mj1618/tilewm/internal/platform/memory"
	"github.com/mj1618/tilewm/internal/preview"
	"github.com/mj1618/tilewm/internal/wm"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Replay a scripted window session against a simulated desktop",
	Long: `Run the tiler against an in-memory desktop built from a YAML scenario and
print the final registry order and tiles. No real window is touched.

Scenario format:
  area: {left: 0, top: 0, width: 1920, height: 1080}
  layout: dwindle
  windows:                      # present before the tiler starts
    - {handle: 1, title: Editor, process: code.exe}
    - {handle: 2, title: Palette, tool: true, owner: 1}
  steps:                        # one action per step
    - open: {handle: 3, title: Terminal}
    - minimize: 1
    - restore: 1
    - cloak: 3
    - uncloak: 3
    - activate: 3
    - switch_desktop: 1
    - move_to_desktop: {handle: 3, desktop: 0}
    - drag: {handle: 1, x: 1200, y: 200}
    - display: {width: 2560, height: 1400}
    - layout: columns
    - close: 1`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().String("layout", "", "Initial layout, overriding the scenario and config")
	simulateCmd.Flags().String("png", "", "Render the final tiling to this PNG file")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	sc, err := memory.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfigOrDefault()
	if err != nil {
		return err
	}
	if err := applyLayoutOverrides(cmd, cfg, sc); err != nil {
		return err
	}

	desk, d, handled, err := replay(sc, cfg, loggerFrom(cmd))
	if err != nil {
		return err
	}

	result := output.SimulateResult{
		Steps:    len(sc.Steps),
		Handled:  handled,
		State:    d.State(),
		Batches:  len(desk.Batches()),
		Forwards: len(desk.Forwarded()),
	}

	if path, _ := cmd.Flags().GetString("png"); path != "" {
		tiles, labels := placementTiles(result.State.Placements)
		if err := writePNG(path, preview.Render(result.State.WorkingArea, tiles, labels, preview.DefaultScale)); err != nil {
			return err
		}
	}
	return output.Print(result)
}

// applyLayoutOverrides sets cfg.Layout from the scenario, then from --layout.
func applyLayoutOverrides(cmd *cobra.Command, cfg *config.Config, sc *memory.Scenario) error {
	mode := cfg.LayoutMode()
	if sc.Layout != "" {
		m, err := model.ParseLayoutMode(sc.Layout)
		if err != nil {
			return fmt.Errorf("scenario layout: %w", err)
		}
		mode = m
	}
	mode, err := layoutFlag(cmd, "layout", mode)
	if err != nil {
		return err
	}
	cfg.Layout = mode.String()
	return nil
}

// replay bootstraps a dispatcher over the scenario's desktop and applies
// every step, dispatching the notifications each one posts before the next.
func replay(sc *memory.Scenario, cfg *config.Config, logger *log.Logger) (*memory.Desktop, *wm.Dispatcher, int, error) {
	desk := sc.Desktop()
	d, err := wm.New(wm.Options{Provider: desk.Provider(), Config: cfg, Logger: logger})
	if err != nil {
		return nil, nil, 0, err
	}
	if err := d.Bootstrap(); err != nil {
		return nil, nil, 0, err
	}
	handled := 0
	for i, step := range sc.Steps {
		if err := step.Apply(desk); err != nil {
			return nil, nil, 0, fmt.Errorf("step %d: %w", i+1, err)
		}
		handled += desk.Queue().Drain(d.Dispatch)
	}
	return desk, d, handled, nil
}

func placementTiles(ps []wm.Placement) ([]model.Rect, []string) {
	tiles := make([]model.Rect, len(ps))
	labels := make([]string, len(ps))
	for i, p := range ps {
		tiles[i] = p.Tile
		labels[i] = p.Handle.String()
	}
	return tiles, labels
}
