package wm

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mj1618/tilewm/internal/config"
	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/platform"
	"github.com/mj1618/tilewm/internal/telemetry"
)

// Tracker reports whether a handle is already managed.
type Tracker interface {
	Contains(h model.WindowHandle) bool
}

// Decision is the result of classifying one window.
type Decision struct {
	Manageable bool
	Reason     string
}

func accept(reason string) Decision { return Decision{Manageable: true, Reason: reason} }

func reject(format string, args ...any) Decision {
	return Decision{Reason: fmt.Sprintf(format, args...)}
}

// Classifier decides which top-level windows the tiler manages.
type Classifier struct {
	attrs   platform.AttributeProvider
	cfg     *config.Config
	logger  *log.Logger
	metrics *telemetry.Metrics
}

// NewClassifier returns a classifier over attrs using the exclusion lists in cfg.
// A nil cfg excludes nothing.
func NewClassifier(attrs platform.AttributeProvider, cfg *config.Config, logger *log.Logger, metrics *telemetry.Metrics) *Classifier {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if logger == nil {
		logger = telemetry.Discard()
	}
	return &Classifier{
		attrs:   attrs,
		cfg:     cfg,
		logger:  logger.WithPrefix("classifier"),
		metrics: metrics,
	}
}

// IsManageable reports whether h should be tiled. Tracked handles are always
// manageable.
func (c *Classifier) IsManageable(h model.WindowHandle, tracked Tracker) bool {
	return c.Explain(h, tracked).Manageable
}

// Explain classifies h and says why. Failed attribute queries make the window
// unmanageable; they are never returned to the caller.
func (c *Classifier) Explain(h model.WindowHandle, tracked Tracker) Decision {
	d := c.explain(h, tracked)
	c.logger.Debug("classified", "handle", h, "manageable", d.Manageable, "reason", d.Reason)
	return d
}

func (c *Classifier) explain(h model.WindowHandle, tracked Tracker) Decision {
	if h == 0 {
		return reject("null handle")
	}
	if tracked != nil && tracked.Contains(h) {
		return accept("already managed")
	}

	if c.attrs.TitleLength(h) == 0 {
		return reject("untitled")
	}
	style, err := c.attrs.Style(h)
	if err != nil {
		return c.queryFailed(h, "style", err)
	}
	if style.Has(platform.StyleDisabled) {
		return reject("disabled")
	}
	process, err := c.attrs.ProcessName(h)
	if err != nil {
		return c.queryFailed(h, "process_name", err)
	}

	class, err := c.attrs.ClassName(h)
	if err != nil {
		return c.queryFailed(h, "class_name", err)
	}
	title, err := c.attrs.Title(h)
	if err != nil {
		return c.queryFailed(h, "title", err)
	}
	if strings.Contains(class, config.CoreWindowClass) {
		if m, ok := firstMatch(title, c.cfg.CoreWindowTitles); ok {
			return reject("shell surface %q", m)
		}
	}
	if m, ok := firstMatch(class, c.cfg.ClassNames); ok {
		return reject("excluded class %q", m)
	}
	if m, ok := firstMatch(process, c.cfg.ProcessNames); ok {
		return reject("excluded process %q", m)
	}
	if m, ok := firstMatch(title, c.cfg.Titles); ok {
		return reject("excluded title %q", m)
	}

	exstyle, err := c.attrs.ExStyle(h)
	if err != nil {
		return c.queryFailed(h, "ex_style", err)
	}
	switch {
	case !c.attrs.IsVisible(h):
		return reject("not visible")
	case exstyle.Has(platform.ExStyleNoActivate):
		return reject("no-activate")
	case style.Has(platform.StyleChild) || c.attrs.Parent(h) != 0:
		return reject("child window")
	}

	tool := exstyle.Has(platform.ExStyleToolWindow)
	owned := c.attrs.Owner(h) != 0
	if c.cfg.StrictAltTab() {
		if tool || owned {
			return reject("not an alt-tab window (tool=%t owned=%t)", tool, owned)
		}
	} else if tool && owned {
		return reject("owned tool window")
	}

	cloaked, err := c.attrs.IsCloaked(h)
	if err != nil {
		return c.queryFailed(h, "cloaked", err)
	}
	if cloaked {
		return reject("cloaked")
	}
	return accept("app window")
}

func (c *Classifier) queryFailed(h model.WindowHandle, query string, err error) Decision {
	c.logger.Debug("attribute query failed", "handle", h, "query", query, "err", err)
	c.metrics.QueryFailed(query)
	return reject("%s unavailable", strings.ReplaceAll(query, "_", " "))
}

func firstMatch(s string, substrings []string) (string, bool) {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(s, sub) {
			return sub, true
		}
	}
	return "", false
}
