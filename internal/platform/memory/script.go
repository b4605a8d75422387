package memory

import (
	"errors"

	"github.com/mj1618/tilewm/internal/model"
)

var errNoProcess = errors.New("process name unavailable")

func (d *Desktop) post(n model.Notification) error {
	return d.queue.Post(n)
}

// Open adds w and posts Created.
func (d *Desktop) Open(w Window) error {
	d.Add(w)
	return d.post(model.Notification{Kind: model.Created, Handle: w.Handle})
}

// Close removes the window and posts Destroyed.
func (d *Desktop) Close(h model.WindowHandle) error {
	d.mu.Lock()
	if _, ok := d.windows[h]; !ok {
		d.mu.Unlock()
		return nil
	}
	delete(d.windows, h)
	for i, z := range d.zorder {
		if z == h {
			d.zorder = append(d.zorder[:i], d.zorder[i+1:]...)
			break
		}
	}
	d.mu.Unlock()
	return d.post(model.Notification{Kind: model.Destroyed, Handle: h})
}

// Minimize iconifies the window and posts MinimizeStart.
func (d *Desktop) Minimize(h model.WindowHandle) error {
	if !d.update(h, func(w *Window) { w.Minimized = true }) {
		return nil
	}
	return d.post(model.Notification{Kind: model.MinimizeStart, Handle: h})
}

// Restore un-iconifies the window and posts MinimizeEnd.
func (d *Desktop) Restore(h model.WindowHandle) error {
	if !d.update(h, func(w *Window) { w.Minimized = false }) {
		return nil
	}
	return d.post(model.Notification{Kind: model.MinimizeEnd, Handle: h})
}

// Cloak hides the window without changing desktops and posts Cloaked.
func (d *Desktop) Cloak(h model.WindowHandle) error {
	if !d.update(h, func(w *Window) { w.Cloaked = true }) {
		return nil
	}
	return d.post(model.Notification{Kind: model.Cloaked, Handle: h})
}

// Uncloak reverses Cloak and posts Uncloaked.
func (d *Desktop) Uncloak(h model.WindowHandle) error {
	if !d.update(h, func(w *Window) { w.Cloaked = false }) {
		return nil
	}
	return d.post(model.Notification{Kind: model.Uncloaked, Handle: h})
}

// Activate posts Activated for h.
func (d *Desktop) Activate(h model.WindowHandle) error {
	return d.post(model.Notification{Kind: model.Activated, Handle: h})
}

// SwitchDesktop makes desktop index current. Windows left behind are
// reported Cloaked and windows on the new desktop Uncloaked, in z-order.
func (d *Desktop) SwitchDesktop(index int) error {
	d.mu.Lock()
	prev := d.current
	d.current = index
	var events []model.Notification
	if prev != index {
		for _, h := range d.zorder {
			w := d.windows[h]
			switch w.Desktop {
			case prev:
				events = append(events, model.Notification{Kind: model.Cloaked, Handle: h})
			case index:
				if !w.Cloaked {
					events = append(events, model.Notification{Kind: model.Uncloaked, Handle: h})
				}
			}
		}
	}
	d.mu.Unlock()
	for _, n := range events {
		if err := d.post(n); err != nil {
			return err
		}
	}
	return nil
}

// MoveToDesktop sends a window to another virtual desktop. A window leaving
// the current desktop is reported Cloaked; one arriving is reported Uncloaked.
func (d *Desktop) MoveToDesktop(h model.WindowHandle, index int) error {
	var kind model.NotificationKind
	ok := d.update(h, func(w *Window) {
		switch {
		case w.Desktop == d.current && index != d.current:
			kind = model.Cloaked
		case w.Desktop != d.current && index == d.current:
			kind = model.Uncloaked
		default:
			kind = model.Passthrough
		}
		w.Desktop = index
	})
	if !ok || kind == model.Passthrough {
		return nil
	}
	return d.post(model.Notification{Kind: kind, Handle: h})
}

// Drag ends a move of h with the pointer at to and posts MoveResizeEnd.
func (d *Desktop) Drag(h model.WindowHandle, to model.Point) error {
	d.mu.Lock()
	d.cursor = to
	d.mu.Unlock()
	return d.post(model.Notification{Kind: model.MoveResizeEnd, Handle: h})
}

// SetCursor moves the simulated pointer.
func (d *Desktop) SetCursor(p model.Point) {
	d.mu.Lock()
	d.cursor = p
	d.mu.Unlock()
}

// ChangeDisplay replaces the working area and posts DisplayChange.
func (d *Desktop) ChangeDisplay(area model.Rect) error {
	d.mu.Lock()
	d.area = area
	d.mu.Unlock()
	return d.post(model.Notification{Kind: model.DisplayChange})
}

// SwitchLayout posts LayoutSwitch.
func (d *Desktop) SwitchLayout(mode model.LayoutMode) error {
	return d.post(model.Notification{Kind: model.LayoutSwitch, Layout: mode})
}

func (d *Desktop) update(h model.WindowHandle, fn func(*Window)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[h]
	if !ok {
		return false
	}
	fn(w)
	return true
}
