package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/output"
	"github.com/mj1618/tilewm/internal/platform"
	"github.com/mj1618/tilewm/internal/wm"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List top-level windows and whether they would be tiled",
	Long: `Enumerate top-level windows in z-order and run each through the
manageability rules, showing the reason a window is or is not tiled.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("manageable", false, "Only list windows that would be tiled")
	listCmd.Flags().String("process", "", "Filter by process name substring")
	listCmd.Flags().String("title", "", "Filter by title substring (case-insensitive)")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, err := newProvider()
	if err != nil {
		return err
	}
	defer provider.Close()
	provider.SetLogger(loggerFrom(cmd))

	onlyManageable, _ := cmd.Flags().GetBool("manageable")
	process, _ := cmd.Flags().GetString("process")
	title, _ := cmd.Flags().GetString("title")

	handles, err := provider.Enumerator.TopLevelWindows()
	if err != nil {
		return err
	}
	classifier := wm.NewClassifier(provider.Attributes, cfg, loggerFrom(cmd), nil)

	result := output.ListResult{TS: time.Now().Unix(), Windows: []model.WindowInfo{}}
	for _, h := range handles {
		info := describe(provider, classifier, h)
		if onlyManageable && !info.Manageable {
			continue
		}
		if process != "" && !strings.Contains(info.Process, process) {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(info.Title), strings.ToLower(title)) {
			continue
		}
		result.Windows = append(result.Windows, info)
	}
	return output.Print(result)
}

// describe gathers listing fields for h. Attribute failures leave fields empty.
func describe(p *platform.Provider, c *wm.Classifier, h model.WindowHandle) model.WindowInfo {
	info := model.WindowInfo{Handle: h.String()}
	info.Title, _ = p.Attributes.Title(h)
	info.Class, _ = p.Attributes.ClassName(h)
	info.Process, _ = p.Attributes.ProcessName(h)
	if r, err := p.Positioner.Bounds(h); err == nil {
		info.Bounds = [4]int{r.Left, r.Top, r.Width, r.Height}
	}
	d := c.Explain(h, nil)
	info.Manageable, info.Reason = d.Manageable, d.Reason
	return info
}
