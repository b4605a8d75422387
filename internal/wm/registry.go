package wm

import "github.com/mj1618/tilewm/internal/model"

// Registry is the ordered list of managed windows. Order is the tiling
// order: index 0 receives the first tile. A handle appears at most once.
//
// Registry is not safe for concurrent use; the dispatcher owns it and only
// touches it from its event loop.
type Registry struct {
	windows []model.ManagedWindow
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of tracked windows.
func (r *Registry) Len() int {
	return len(r.windows)
}

// Index returns the position of h, or -1 if h is not tracked.
func (r *Registry) Index(h model.WindowHandle) int {
	for i, w := range r.windows {
		if w.Handle == h {
			return i
		}
	}
	return -1
}

// Contains reports whether h is tracked.
func (r *Registry) Contains(h model.WindowHandle) bool {
	return r.Index(h) >= 0
}

// Get returns the entry for h.
func (r *Registry) Get(h model.WindowHandle) (model.ManagedWindow, bool) {
	if i := r.Index(h); i >= 0 {
		return r.windows[i], true
	}
	return model.ManagedWindow{}, false
}

// Manage appends h to the end of the tiling order. It reports false and
// leaves the order untouched when h is already tracked.
func (r *Registry) Manage(h model.WindowHandle) bool {
	if r.Contains(h) {
		return false
	}
	r.windows = append(r.windows, model.ManagedWindow{Handle: h})
	return true
}

// Remove drops h, keeping the relative order of the rest.
func (r *Registry) Remove(h model.WindowHandle) bool {
	i := r.Index(h)
	if i < 0 {
		return false
	}
	r.windows = append(r.windows[:i], r.windows[i+1:]...)
	return true
}

// Swap exchanges the positions of a and b. Both must be tracked.
func (r *Registry) Swap(a, b model.WindowHandle) bool {
	i, j := r.Index(a), r.Index(b)
	if i < 0 || j < 0 {
		return false
	}
	r.windows[i], r.windows[j] = r.windows[j], r.windows[i]
	return true
}

// SetMinimized records whether h is currently minimized.
func (r *Registry) SetMinimized(h model.WindowHandle, minimized bool) bool {
	i := r.Index(h)
	if i < 0 {
		return false
	}
	r.windows[i].Minimized = minimized
	return true
}

// Select marks h as the selected window and clears the flag on every other entry.
func (r *Registry) Select(h model.WindowHandle) bool {
	i := r.Index(h)
	if i < 0 {
		return false
	}
	for k := range r.windows {
		r.windows[k].Selected = k == i
	}
	return true
}

// Windows returns a copy of the entries in tiling order.
func (r *Registry) Windows() []model.ManagedWindow {
	out := make([]model.ManagedWindow, len(r.windows))
	copy(out, r.windows)
	return out
}

// Handles returns the tracked handles in tiling order.
func (r *Registry) Handles() []model.WindowHandle {
	out := make([]model.WindowHandle, len(r.windows))
	for i, w := range r.windows {
		out[i] = w.Handle
	}
	return out
}
