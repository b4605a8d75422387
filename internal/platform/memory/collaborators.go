package memory

import (
	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/platform"
)

func (d *Desktop) Style(h model.WindowHandle) (platform.Style, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.get(h)
	if err != nil {
		return 0, err
	}
	return w.Style, nil
}

func (d *Desktop) ExStyle(h model.WindowHandle) (platform.ExStyle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.get(h)
	if err != nil {
		return 0, err
	}
	return w.ExStyle, nil
}

func (d *Desktop) IsVisible(h model.WindowHandle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.get(h)
	return err == nil && w.Visible
}

func (d *Desktop) IsIconic(h model.WindowHandle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.get(h)
	return err == nil && w.Minimized
}

// IsCloaked reports explicit cloaking or residence on another virtual desktop.
func (d *Desktop) IsCloaked(h model.WindowHandle) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.get(h)
	if err != nil {
		return false, err
	}
	return w.Cloaked || w.Desktop != d.current, nil
}

func (d *Desktop) Title(h model.WindowHandle) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.get(h)
	if err != nil {
		return "", err
	}
	return w.Title, nil
}

func (d *Desktop) TitleLength(h model.WindowHandle) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.get(h)
	if err != nil {
		return 0
	}
	return len([]rune(w.Title))
}

func (d *Desktop) ClassName(h model.WindowHandle) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.get(h)
	if err != nil {
		return "", err
	}
	return w.Class, nil
}

// ProcessName fails when the simulated window has no process name.
func (d *Desktop) ProcessName(h model.WindowHandle) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.get(h)
	if err != nil {
		return "", err
	}
	if w.Process == "" {
		return "", errNoProcess
	}
	return w.Process, nil
}

func (d *Desktop) Parent(h model.WindowHandle) model.WindowHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, err := d.get(h); err == nil {
		return w.Parent
	}
	return 0
}

func (d *Desktop) Owner(h model.WindowHandle) model.WindowHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, err := d.get(h); err == nil {
		return w.Owner
	}
	return 0
}

func (d *Desktop) Bounds(h model.WindowHandle) (model.Rect, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.get(h)
	if err != nil {
		return model.Rect{}, err
	}
	return w.Bounds, nil
}

func (d *Desktop) FrameMargins(h model.WindowHandle) (model.Margins, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.get(h)
	if err != nil {
		return model.Margins{}, err
	}
	return w.Margins, nil
}

// SetBounds records the batch and applies each move. Unknown handles are
// skipped, as a real batch would skip windows destroyed mid-flight.
func (d *Desktop) SetBounds(moves []platform.Move) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	batch := append([]platform.Move(nil), moves...)
	d.batches = append(d.batches, batch)
	for _, m := range moves {
		if w, ok := d.windows[m.Handle]; ok {
			w.Bounds = m.Rect
		}
	}
	return nil
}

func (d *Desktop) InvalidatePreview(h model.WindowHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.get(h); err != nil {
		return err
	}
	d.invalidated = append(d.invalidated, h)
	return nil
}

func (d *Desktop) CursorPos() (model.Point, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor, nil
}

func (d *Desktop) WorkingArea() (model.Rect, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.AreaErr != nil {
		return model.Rect{}, d.AreaErr
	}
	return d.area, nil
}

func (d *Desktop) IsOnCurrentDesktop(h model.WindowHandle) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.DesktopErr != nil {
		return false, d.DesktopErr
	}
	w, err := d.get(h)
	if err != nil {
		return false, err
	}
	return w.Desktop == d.current, nil
}

// TopLevelWindows returns handles in insertion (z) order.
func (d *Desktop) TopLevelWindows() ([]model.WindowHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.EnumerateErr != nil {
		return nil, d.EnumerateErr
	}
	return append([]model.WindowHandle(nil), d.zorder...), nil
}

// Acquire fails while another holder has the lock.
func (d *Desktop) Acquire() (func(), error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.locked {
		return nil, platform.ErrAlreadyRunning
	}
	d.locked = true
	return func() {
		d.mu.Lock()
		d.locked = false
		d.mu.Unlock()
	}, nil
}
