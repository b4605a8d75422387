package memory

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/platform"
)

// DefaultArea is the working area of a scenario that does not set one.
var DefaultArea = model.Rect{Width: 1920, Height: 1080}

// Scenario is a scripted desktop session: the windows present before the
// tiler starts, followed by steps that each mutate the desktop and post the
// matching notification.
type Scenario struct {
	Area    model.Rect       `yaml:"area"`
	Layout  string           `yaml:"layout,omitempty"`
	Windows []ScenarioWindow `yaml:"windows"`
	Steps   []Step           `yaml:"steps"`
}

// ScenarioWindow describes one simulated window. Zero values give a visible,
// enabled application window on desktop 0.
type ScenarioWindow struct {
	Handle     model.WindowHandle `yaml:"handle"`
	Title      string             `yaml:"title"`
	Class      string             `yaml:"class,omitempty"`
	Process    string             `yaml:"process,omitempty"`
	Hidden     bool               `yaml:"hidden,omitempty"`
	Disabled   bool               `yaml:"disabled,omitempty"`
	Tool       bool               `yaml:"tool,omitempty"`
	NoActivate bool               `yaml:"no_activate,omitempty"`
	Cloaked    bool               `yaml:"cloaked,omitempty"`
	Minimized  bool               `yaml:"minimized,omitempty"`
	Owner      model.WindowHandle `yaml:"owner,omitempty"`
	Desktop    int                `yaml:"desktop,omitempty"`
	Margins    model.Margins      `yaml:"margins,omitempty"`
}

// Window converts the description into simulated window state.
func (sw ScenarioWindow) Window() Window {
	w := AppWindow(sw.Handle, sw.Title, sw.Process)
	if sw.Class != "" {
		w.Class = sw.Class
	}
	if sw.Process == "" {
		w.Process = "app.exe"
	}
	if sw.Disabled {
		w.Style |= platform.StyleDisabled
	}
	if sw.Tool {
		w.ExStyle |= platform.ExStyleToolWindow
	}
	if sw.NoActivate {
		w.ExStyle |= platform.ExStyleNoActivate
	}
	w.Visible = !sw.Hidden
	w.Cloaked = sw.Cloaked
	w.Minimized = sw.Minimized
	w.Owner = sw.Owner
	w.Desktop = sw.Desktop
	w.Margins = sw.Margins
	return w
}

// MoveTo sends a window to a virtual desktop.
type MoveTo struct {
	Handle  model.WindowHandle `yaml:"handle"`
	Desktop int                `yaml:"desktop"`
}

// DragTo ends a drag of a window with the pointer at X, Y.
type DragTo struct {
	Handle model.WindowHandle `yaml:"handle"`
	X      int                `yaml:"x"`
	Y      int                `yaml:"y"`
}

// Step is one scripted action. Exactly one field must be set.
type Step struct {
	Open          *ScenarioWindow     `yaml:"open,omitempty"`
	Close         *model.WindowHandle `yaml:"close,omitempty"`
	Minimize      *model.WindowHandle `yaml:"minimize,omitempty"`
	Restore       *model.WindowHandle `yaml:"restore,omitempty"`
	Cloak         *model.WindowHandle `yaml:"cloak,omitempty"`
	Uncloak       *model.WindowHandle `yaml:"uncloak,omitempty"`
	Activate      *model.WindowHandle `yaml:"activate,omitempty"`
	SwitchDesktop *int                `yaml:"switch_desktop,omitempty"`
	MoveToDesktop *MoveTo             `yaml:"move_to_desktop,omitempty"`
	Drag          *DragTo             `yaml:"drag,omitempty"`
	Display       *model.Rect         `yaml:"display,omitempty"`
	Layout        *model.LayoutMode   `yaml:"layout,omitempty"`
}

var errEmptyStep = errors.New("step has no action")

// Apply performs the step on d.
func (s Step) Apply(d *Desktop) error {
	var actions []func() error
	add := func(set bool, fn func() error) {
		if set {
			actions = append(actions, fn)
		}
	}
	add(s.Open != nil, func() error { return d.Open(s.Open.Window()) })
	add(s.Close != nil, func() error { return d.Close(*s.Close) })
	add(s.Minimize != nil, func() error { return d.Minimize(*s.Minimize) })
	add(s.Restore != nil, func() error { return d.Restore(*s.Restore) })
	add(s.Cloak != nil, func() error { return d.Cloak(*s.Cloak) })
	add(s.Uncloak != nil, func() error { return d.Uncloak(*s.Uncloak) })
	add(s.Activate != nil, func() error { return d.Activate(*s.Activate) })
	add(s.SwitchDesktop != nil, func() error { return d.SwitchDesktop(*s.SwitchDesktop) })
	add(s.MoveToDesktop != nil, func() error { return d.MoveToDesktop(s.MoveToDesktop.Handle, s.MoveToDesktop.Desktop) })
	add(s.Drag != nil, func() error {
		return d.Drag(s.Drag.Handle, model.Point{X: s.Drag.X, Y: s.Drag.Y})
	})
	add(s.Display != nil, func() error { return d.ChangeDisplay(*s.Display) })
	add(s.Layout != nil, func() error { return d.SwitchLayout(*s.Layout) })

	switch len(actions) {
	case 0:
		return errEmptyStep
	case 1:
		return actions[0]()
	default:
		return fmt.Errorf("step has %d actions, want 1", len(actions))
	}
}

// ParseScenario decodes a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if sc.Area.Empty() {
		sc.Area = DefaultArea
	}
	seen := make(map[model.WindowHandle]bool, len(sc.Windows))
	for i, w := range sc.Windows {
		if w.Handle == 0 {
			return nil, fmt.Errorf("scenario: window %d has no handle", i)
		}
		if seen[w.Handle] {
			return nil, fmt.Errorf("scenario: duplicate window handle %s", w.Handle)
		}
		seen[w.Handle] = true
	}
	return &sc, nil
}

// LoadScenario reads a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// Desktop builds the scenario's initial desktop without posting anything.
func (sc *Scenario) Desktop() *Desktop {
	d := New(sc.Area)
	for _, w := range sc.Windows {
		d.Add(w.Window())
	}
	return d
}
