// Package memory implements every platform collaborator over an in-memory
// desktop. It backs the simulate command and the tiler's tests: scripting
// helpers such as Open, Close and Drag mutate the desktop and post the
// notification a real windowing environment would emit.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/platform"
)

// Window is the simulated state of one native window.
type Window struct {
	Handle  model.WindowHandle `yaml:"handle"`
	Title   string             `yaml:"title"`
	Class   string             `yaml:"class"`
	Process string             `yaml:"process"` // empty means unresolvable
	Style   platform.Style     `yaml:"style"`
	ExStyle platform.ExStyle   `yaml:"ex_style"`
	Visible bool               `yaml:"visible"`
	Cloaked bool               `yaml:"cloaked"`
	// Minimized is the live iconic state.
	Minimized bool               `yaml:"minimized"`
	Parent    model.WindowHandle `yaml:"parent"`
	Owner     model.WindowHandle `yaml:"owner"`
	Desktop   int                `yaml:"desktop"`
	Bounds    model.Rect         `yaml:"bounds"`
	Margins   model.Margins      `yaml:"margins"`
}

// AppWindow returns a visible, unowned top-level application window.
func AppWindow(h model.WindowHandle, title, process string) Window {
	return Window{
		Handle:  h,
		Title:   title,
		Class:   "ApplicationWindow",
		Process: process,
		Style:   platform.StyleVisible,
		Visible: true,
		Bounds:  model.Rect{Left: 100, Top: 100, Width: 800, Height: 600},
	}
}

// Desktop is a simulated windowing environment. All methods are safe for
// concurrent use.
type Desktop struct {
	mu          sync.Mutex
	windows     map[model.WindowHandle]*Window
	zorder      []model.WindowHandle
	current     int
	cursor      model.Point
	area        model.Rect
	batches     [][]platform.Move
	invalidated []model.WindowHandle
	forwarded   []any
	locked      bool

	// Failure injection for tests.
	EnumerateErr error
	DesktopErr   error
	AreaErr      error

	queue *platform.Queue
}

// DefaultQueueSize is the notification buffer of a new Desktop.
const DefaultQueueSize = 1024

// New creates an empty desktop with the given working area.
func New(area model.Rect) *Desktop {
	d := &Desktop{
		windows: make(map[model.WindowHandle]*Window),
		area:    area,
	}
	d.queue = platform.NewQueue(DefaultQueueSize, d.forward)
	return d
}

// Provider bundles the desktop as every collaborator.
func (d *Desktop) Provider() *platform.Provider {
	return &platform.Provider{
		Attributes: d,
		Positioner: d,
		Desktop:    d,
		Enumerator: d,
		Events:     d.queue,
		Instance:   d,
	}
}

// Queue exposes the desktop's event source.
func (d *Desktop) Queue() *platform.Queue {
	return d.queue
}

func (d *Desktop) get(h model.WindowHandle) (*Window, error) {
	w, ok := d.windows[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", platform.ErrUnknownWindow, h)
	}
	return w, nil
}

func (d *Desktop) forward(payload any) uintptr {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.forwarded = append(d.forwarded, payload)
	return 0
}

// Add places w on the desktop without posting a notification. Used to build
// the initial state before the tiler bootstraps.
func (d *Desktop) Add(w Window) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.windows[w.Handle]; !exists {
		d.zorder = append(d.zorder, w.Handle)
	}
	cp := w
	d.windows[w.Handle] = &cp
}

// Window returns a copy of the simulated window state.
func (d *Desktop) Window(h model.WindowHandle) (Window, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[h]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Handles returns every window handle sorted ascending.
func (d *Desktop) Handles() []model.WindowHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]model.WindowHandle, 0, len(d.windows))
	for h := range d.windows {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Batches returns every SetBounds batch applied so far.
func (d *Desktop) Batches() [][]platform.Move {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]platform.Move, len(d.batches))
	copy(out, d.batches)
	return out
}

// LastBatch returns the most recent SetBounds batch, or nil.
func (d *Desktop) LastBatch() []platform.Move {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.batches) == 0 {
		return nil
	}
	return d.batches[len(d.batches)-1]
}

// Invalidated returns the handles whose previews were invalidated, in call order.
func (d *Desktop) Invalidated() []model.WindowHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.WindowHandle(nil), d.invalidated...)
}

// Forwarded returns the payloads handed back through Forward.
func (d *Desktop) Forwarded() []any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]any(nil), d.forwarded...)
}

// CurrentDesktop returns the index of the active virtual desktop.
func (d *Desktop) CurrentDesktop() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}
