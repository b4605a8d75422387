package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/tilewm/internal/layout"
	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/output"
	"github.com/mj1618/tilewm/internal/platform"
	"github.com/mj1618/tilewm/internal/preview"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print or render the tiles a layout produces",
	Long: `Compute the tiles of a layout for a number of windows without moving
anything. Use --png to render them to an image.

Examples:
  tilewm layout --mode dwindle --count 3
  tilewm layout --mode focus --count 5 --area 0,0,2560,1400 --png focus.png`,
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().String("mode", "dwindle", "Layout: dwindle, monocle, columns, focus")
	layoutCmd.Flags().Int("count", 1, "Number of windows")
	layoutCmd.Flags().String("area", "0,0,1920,1080", "Working area as x,y,w,h")
	layoutCmd.Flags().String("png", "", "Render the tiles to this PNG file")
	layoutCmd.Flags().Float64("scale", preview.DefaultScale, "PNG scale factor 0.05-1.0")
}

func runLayout(cmd *cobra.Command, args []string) error {
	mode, err := layoutFlag(cmd, "mode", model.Dwindle)
	if err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")
	if count < 0 || count > layout.MaxCount {
		return fmt.Errorf("--count must be between 0 and %d", layout.MaxCount)
	}
	areaStr, _ := cmd.Flags().GetString("area")
	area, err := platform.ParseRect(areaStr)
	if err != nil {
		return err
	}

	result := output.LayoutResult{
		Layout: mode,
		Area:   area,
		Tiles:  layout.Arrange(mode, area, count),
	}

	if path, _ := cmd.Flags().GetString("png"); path != "" {
		scale, _ := cmd.Flags().GetFloat64("scale")
		if scale < 0.05 || scale > 1 {
			return fmt.Errorf("--scale must be between 0.05 and 1.0")
		}
		if err := writePNG(path, preview.Render(area, result.Tiles, nil, scale)); err != nil {
			return err
		}
		result.PNG = path
	}
	return output.Print(result)
}
