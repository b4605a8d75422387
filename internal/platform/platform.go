package platform

import (
	"context"

	"github.com/mj1618/tilewm/internal/model"
)

// AttributeProvider answers per-window attribute queries. Queries on a window
// that no longer exists return zero values or an error; callers treat both as
// "unknown".
type AttributeProvider interface {
	Style(h model.WindowHandle) (Style, error)
	ExStyle(h model.WindowHandle) (ExStyle, error)
	IsVisible(h model.WindowHandle) bool
	IsIconic(h model.WindowHandle) bool
	IsCloaked(h model.WindowHandle) (bool, error)
	Title(h model.WindowHandle) (string, error)
	TitleLength(h model.WindowHandle) int
	ClassName(h model.WindowHandle) (string, error)
	ProcessName(h model.WindowHandle) (string, error)
	// Parent returns the parent window, or 0 for top-level windows.
	Parent(h model.WindowHandle) model.WindowHandle
	// Owner returns the owning window, or 0 when the window is unowned.
	Owner(h model.WindowHandle) model.WindowHandle
}

// Positioner reads and writes window geometry.
type Positioner interface {
	// Bounds returns the raw window rectangle, including invisible borders.
	Bounds(h model.WindowHandle) (model.Rect, error)
	// FrameMargins returns extended frame bounds minus raw bounds per edge.
	FrameMargins(h model.WindowHandle) (model.Margins, error)
	// SetBounds repositions every window in moves as one batch.
	SetBounds(moves []Move) error
	// InvalidatePreview drops any cached live preview of h.
	InvalidatePreview(h model.WindowHandle) error
	CursorPos() (model.Point, error)
	// WorkingArea returns the usable screen region, excluding the taskbar.
	WorkingArea() (model.Rect, error)
}

// DesktopOracle answers virtual-desktop membership queries.
type DesktopOracle interface {
	IsOnCurrentDesktop(h model.WindowHandle) (bool, error)
}

// Enumerator lists the current top-level windows in z-order.
type Enumerator interface {
	TopLevelWindows() ([]model.WindowHandle, error)
}

// EventSource delivers notifications to a single consumer.
type EventSource interface {
	// Run calls handle for each notification, always from the calling
	// goroutine, until ctx is done or the source is closed.
	Run(ctx context.Context, handle func(model.Notification) uintptr) error
	// Post queues n for delivery. Safe for concurrent use.
	Post(n model.Notification) error
	// Forward hands an unhandled payload back for default processing.
	Forward(payload any) uintptr
}

// InstanceLocker guards against running two tilers at once.
type InstanceLocker interface {
	// Acquire takes the process-wide lock. The returned func releases it.
	Acquire() (release func(), err error)
}
