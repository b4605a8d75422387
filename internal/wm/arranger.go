package wm

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/mj1618/tilewm/internal/layout"
	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/platform"
	"github.com/mj1618/tilewm/internal/telemetry"
)

// Placement is one window positioned by an arrangement.
type Placement struct {
	Handle model.WindowHandle `yaml:"handle" json:"handle"`
	// Tile is where the visible frame lands.
	Tile model.Rect `yaml:"tile" json:"tile"`
	// Raw is the rectangle passed to the environment, including invisible borders.
	Raw model.Rect `yaml:"raw" json:"raw"`
}

// Arranger applies a layout to the visible subset of a registry.
type Arranger struct {
	pos     platform.Positioner
	desktop platform.DesktopOracle
	logger  *log.Logger
	metrics *telemetry.Metrics
}

// NewArranger returns an arranger that positions windows through pos.
func NewArranger(pos platform.Positioner, desktop platform.DesktopOracle, logger *log.Logger, metrics *telemetry.Metrics) *Arranger {
	if logger == nil {
		logger = telemetry.Discard()
	}
	return &Arranger{
		pos:     pos,
		desktop: desktop,
		logger:  logger.WithPrefix("arrange"),
		metrics: metrics,
	}
}

// Visible returns the tracked windows that are not minimized and live on the
// current virtual desktop, in registry order. A failed desktop query counts
// as "elsewhere".
func (a *Arranger) Visible(windows []model.ManagedWindow) []model.ManagedWindow {
	out := make([]model.ManagedWindow, 0, len(windows))
	for _, w := range windows {
		if w.Minimized {
			continue
		}
		on, err := a.desktop.IsOnCurrentDesktop(w.Handle)
		if err != nil {
			a.logger.Debug("desktop query failed", "handle", w.Handle, "err", err)
			a.metrics.QueryFailed("current_desktop")
			continue
		}
		if on {
			out = append(out, w)
		}
	}
	return out
}

// Arrange tiles the visible windows of reg inside area with mode and moves
// them in one batch. The visible frame of each window is placed on its tile.
func (a *Arranger) Arrange(reg *Registry, area model.Rect, mode model.LayoutMode) []Placement {
	start := time.Now()
	windows := a.Visible(reg.Windows())
	tiles := layout.Arrange(mode, area, len(windows))

	placements := make([]Placement, 0, len(windows))
	moves := make([]platform.Move, 0, len(windows))
	for i, w := range windows {
		m, err := a.pos.FrameMargins(w.Handle)
		if err != nil {
			a.logger.Debug("frame margins unavailable", "handle", w.Handle, "err", err)
			a.metrics.QueryFailed("frame_margins")
			m = model.Margins{}
		}
		raw := tiles[i].Expand(m)
		placements = append(placements, Placement{Handle: w.Handle, Tile: tiles[i], Raw: raw})
		moves = append(moves, platform.Move{Handle: w.Handle, Rect: raw})
	}

	if len(moves) > 0 {
		if err := a.pos.SetBounds(moves); err != nil {
			a.logger.Warn("reposition failed", "windows", len(moves), "err", err)
		}
		for _, mv := range moves {
			if err := a.pos.InvalidatePreview(mv.Handle); err != nil {
				a.logger.Debug("preview invalidation failed", "handle", mv.Handle, "err", err)
			}
		}
	}

	a.metrics.Arranged(mode, time.Since(start))
	a.logger.Debug("arranged", "layout", mode, "windows", len(placements), "area", area)
	return placements
}
