package wm

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/mj1618/tilewm/internal/config"
	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/platform"
	"github.com/mj1618/tilewm/internal/telemetry"
)

// Options configures a Dispatcher.
type Options struct {
	Provider *platform.Provider
	Config   *config.Config
	Logger   *log.Logger
	// Metrics may be nil.
	Metrics *telemetry.Metrics
}

// State is a read-only snapshot of the dispatcher, published after every
// notification.
type State struct {
	Layout      model.LayoutMode      `yaml:"layout"       json:"layout"`
	WorkingArea model.Rect            `yaml:"working_area" json:"working_area"`
	Windows     []model.ManagedWindow `yaml:"windows"      json:"windows"`
	// Placements are the tiles of the most recent arrangement.
	Placements []Placement `yaml:"placements,omitempty" json:"placements,omitempty"`
}

// Dispatcher owns the registry, the working area and the active layout. It
// consumes one notification at a time; only State and Post may be called
// from other goroutines.
type Dispatcher struct {
	attrs   platform.AttributeProvider
	pos     platform.Positioner
	desktop platform.DesktopOracle
	enum    platform.Enumerator
	events  platform.EventSource

	registry   *Registry
	classifier *Classifier
	arranger   *Arranger

	area       model.Rect
	mode       model.LayoutMode
	placements []Placement

	logger  *log.Logger
	metrics *telemetry.Metrics
	state   atomic.Pointer[State]
}

// New builds a dispatcher over the collaborators in opts.Provider. It fails
// when a collaborator is missing or the working area cannot be read.
func New(opts Options) (*Dispatcher, error) {
	p := opts.Provider
	if p == nil {
		return nil, errors.New("wm: nil provider")
	}
	switch {
	case p.Attributes == nil:
		return nil, errors.New("wm: provider has no attribute provider")
	case p.Positioner == nil:
		return nil, errors.New("wm: provider has no positioner")
	case p.Desktop == nil:
		return nil, errors.New("wm: provider has no virtual desktop oracle")
	case p.Enumerator == nil:
		return nil, errors.New("wm: provider has no window enumerator")
	case p.Events == nil:
		return nil, errors.New("wm: provider has no event source")
	}

	logger := opts.Logger
	if logger == nil {
		logger = telemetry.Discard()
	}
	area, err := p.Positioner.WorkingArea()
	if err != nil {
		return nil, fmt.Errorf("working area: %w", err)
	}

	d := &Dispatcher{
		attrs:      p.Attributes,
		pos:        p.Positioner,
		desktop:    p.Desktop,
		enum:       p.Enumerator,
		events:     p.Events,
		registry:   NewRegistry(),
		classifier: NewClassifier(p.Attributes, opts.Config, logger, opts.Metrics),
		arranger:   NewArranger(p.Positioner, p.Desktop, logger, opts.Metrics),
		area:       area,
		mode:       opts.Config.LayoutMode(),
		logger:     logger.WithPrefix("wm"),
		metrics:    opts.Metrics,
	}
	d.publish()
	return d, nil
}

// Bootstrap manages every manageable top-level window that already exists
// and arranges them. Enumeration failure is returned.
func (d *Dispatcher) Bootstrap() error {
	handles, err := d.enum.TopLevelWindows()
	if err != nil {
		return fmt.Errorf("enumerate windows: %w", err)
	}
	for _, h := range handles {
		if !d.classifier.IsManageable(h, d.registry) {
			continue
		}
		if d.registry.Manage(h) {
			d.registry.SetMinimized(h, d.attrs.IsIconic(h))
		}
	}
	d.logger.Info("bootstrapped", "windows", d.registry.Len(), "layout", d.mode, "area", d.area)
	d.arrange()
	d.publish()
	return nil
}

// Run dispatches notifications from the event source until ctx is done or
// the source stops.
func (d *Dispatcher) Run(ctx context.Context) error {
	return d.events.Run(ctx, d.Dispatch)
}

// Post queues n for the event loop. Safe for concurrent use.
func (d *Dispatcher) Post(n model.Notification) error {
	return d.events.Post(n)
}

// State returns the most recently published snapshot.
func (d *Dispatcher) State() State {
	return *d.state.Load()
}

// Dispatch applies one notification. It returns 0 for every handled kind and
// the event source's default result for pass-through notifications.
func (d *Dispatcher) Dispatch(n model.Notification) uintptr {
	d.metrics.Notification(n.Kind)
	d.logger.Debug("notification", "n", n)
	defer d.publish()

	h := n.Handle
	tracked := d.registry.Contains(h)

	switch n.Kind {
	case model.Created, model.ShellCreated, model.Uncloaked:
		if !tracked && d.classifier.IsManageable(h, d.registry) {
			d.registry.Manage(h)
			d.registry.SetMinimized(h, d.attrs.IsIconic(h))
			d.logger.Info("managing", "handle", h)
			d.arrange()
		}

	case model.Destroyed, model.ShellDestroyed:
		// A destroyed window is no longer on any desktop, so the membership
		// gate does not apply.
		if tracked {
			d.registry.Remove(h)
			d.logger.Info("unmanaging", "handle", h, "reason", n.Kind)
			d.arrange()
		}

	case model.Cloaked:
		if tracked {
			d.unmanageOnCurrentDesktop(h)
			d.arrange()
		}

	case model.MinimizeStart:
		d.registry.SetMinimized(h, true)
		d.arrange()

	case model.MinimizeEnd:
		d.registry.SetMinimized(h, false)
		d.arrange()

	case model.MoveResizeEnd:
		if tracked {
			d.reorder(h)
		}
		d.arrange()

	case model.DisplayChange:
		d.refreshWorkingArea(n.Area)
		d.arrange()

	case model.LayoutSwitch:
		if !n.Layout.Valid() {
			d.logger.Warn("ignoring unknown layout", "mode", n.Layout)
			break
		}
		d.mode = n.Layout
		d.logger.Info("layout", "mode", d.mode)
		d.arrange()

	case model.Activated:
		d.registry.Select(h)

	case model.Arrange:
		d.arrange()

	default:
		return d.events.Forward(n.Payload)
	}
	return 0
}

// unmanageOnCurrentDesktop removes h unless it now lives on another virtual
// desktop. Switching desktops cloaks windows exactly as closing some UWP
// windows does; only the latter should drop them.
func (d *Dispatcher) unmanageOnCurrentDesktop(h model.WindowHandle) {
	on, err := d.desktop.IsOnCurrentDesktop(h)
	if err != nil {
		d.logger.Debug("desktop query failed", "handle", h, "err", err)
		d.metrics.QueryFailed("current_desktop")
		on = false
	}
	if !on {
		d.logger.Debug("cloaked on another desktop, keeping", "handle", h)
		return
	}
	d.registry.Remove(h)
	d.logger.Info("unmanaging", "handle", h, "reason", model.Cloaked)
}

// reorder swaps dragged with the tracked window under the cursor.
func (d *Dispatcher) reorder(dragged model.WindowHandle) {
	cursor, err := d.pos.CursorPos()
	if err != nil {
		d.logger.Debug("cursor query failed", "err", err)
		d.metrics.QueryFailed("cursor")
		return
	}
	for _, w := range d.registry.Windows() {
		if w.Handle == dragged || w.Minimized {
			continue
		}
		on, err := d.desktop.IsOnCurrentDesktop(w.Handle)
		if err != nil || !on {
			continue
		}
		r, err := d.pos.Bounds(w.Handle)
		if err != nil {
			d.metrics.QueryFailed("bounds")
			continue
		}
		if r.Contains(cursor) {
			d.registry.Swap(dragged, w.Handle)
			d.logger.Debug("reordered", "dragged", dragged, "target", w.Handle)
			return
		}
	}
}

func (d *Dispatcher) refreshWorkingArea(hint model.Rect) {
	if !hint.Empty() {
		d.area = hint
		return
	}
	area, err := d.pos.WorkingArea()
	if err != nil {
		d.logger.Warn("working area unavailable, keeping previous", "area", d.area, "err", err)
		d.metrics.QueryFailed("working_area")
		return
	}
	d.area = area
}

func (d *Dispatcher) arrange() {
	d.placements = d.arranger.Arrange(d.registry, d.area, d.mode)
}

func (d *Dispatcher) publish() {
	placements := make([]Placement, len(d.placements))
	copy(placements, d.placements)
	d.state.Store(&State{
		Layout:      d.mode,
		WorkingArea: d.area,
		Windows:     d.registry.Windows(),
		Placements:  placements,
	})
	d.metrics.Managed(d.registry.Len())
}
