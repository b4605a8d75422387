//go:build windows

package windows

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/platform"
)

// Positioner implements platform.Positioner with DeferWindowPos batches.
type Positioner struct{}

// NewPositioner creates a Win32 positioner.
func NewPositioner() *Positioner {
	return &Positioner{}
}

func toRect(r windows.Rect) model.Rect {
	return model.Rect{
		Left:   int(r.Left),
		Top:    int(r.Top),
		Width:  int(r.Right - r.Left),
		Height: int(r.Bottom - r.Top),
	}
}

func windowRect(h model.WindowHandle) (windows.Rect, error) {
	var r windows.Rect
	ok, _, err := procGetWindowRect.Call(uintptr(h), uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return r, lastError("GetWindowRect", err)
	}
	return r, nil
}

func (p *Positioner) Bounds(h model.WindowHandle) (model.Rect, error) {
	r, err := windowRect(h)
	if err != nil {
		return model.Rect{}, err
	}
	return toRect(r), nil
}

// FrameMargins returns DWMWA_EXTENDED_FRAME_BOUNDS minus GetWindowRect per
// edge. On Windows 10 and later this is typically {7, 0, -7, -7}.
func (p *Positioner) FrameMargins(h model.WindowHandle) (model.Margins, error) {
	raw, err := windowRect(h)
	if err != nil {
		return model.Margins{}, err
	}
	var frame windows.Rect
	r, _, _ := procDwmGetWindowAttribute.Call(
		uintptr(h),
		dwmwaExtendedFrameBounds,
		uintptr(unsafe.Pointer(&frame)),
		unsafe.Sizeof(frame),
	)
	if err := hresult("DwmGetWindowAttribute(DWMWA_EXTENDED_FRAME_BOUNDS)", r); err != nil {
		return model.Margins{}, err
	}
	return model.MarginsBetween(toRect(raw), toRect(frame)), nil
}

// SetBounds moves every window in one BeginDeferWindowPos/EndDeferWindowPos
// batch so the desktop repaints once. Z-order and activation are left alone.
func (p *Positioner) SetBounds(moves []platform.Move) error {
	if len(moves) == 0 {
		return nil
	}
	hdwp, _, err := procBeginDeferWindowPos.Call(uintptr(len(moves)))
	if hdwp == 0 {
		return lastError("BeginDeferWindowPos", err)
	}
	for _, mv := range moves {
		next, _, err := procDeferWindowPos.Call(
			hdwp,
			uintptr(mv.Handle),
			0,
			uintptr(int32(mv.Rect.Left)),
			uintptr(int32(mv.Rect.Top)),
			uintptr(int32(mv.Rect.Width)),
			uintptr(int32(mv.Rect.Height)),
			swpNoZOrder|swpNoActivate,
		)
		if next == 0 {
			// The batch has already been freed by the failed call.
			return fmt.Errorf("defer position of %s: %w", mv.Handle, lastError("DeferWindowPos", err))
		}
		hdwp = next
	}
	if ok, _, err := procEndDeferWindowPos.Call(hdwp); ok == 0 {
		return lastError("EndDeferWindowPos", err)
	}
	return nil
}

func (p *Positioner) InvalidatePreview(h model.WindowHandle) error {
	r, _, _ := procDwmInvalidateIconicBitmaps.Call(uintptr(h))
	return hresult("DwmInvalidateIconicBitmaps", r)
}

func (p *Positioner) CursorPos() (model.Point, error) {
	var pt point
	if ok, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt))); ok == 0 {
		return model.Point{}, lastError("GetCursorPos", err)
	}
	return model.Point{X: int(pt.X), Y: int(pt.Y)}, nil
}

// WorkingArea returns SPI_GETWORKAREA while the taskbar is visible and the
// whole virtual screen when it is hidden.
func (p *Positioner) WorkingArea() (model.Rect, error) {
	tray, err := windows.UTF16PtrFromString("Shell_TrayWnd")
	if err != nil {
		return model.Rect{}, err
	}
	h, _, _ := procFindWindowW.Call(uintptr(unsafe.Pointer(tray)), 0)
	if h == 0 || !(&Attributes{}).IsVisible(model.WindowHandle(h)) {
		return virtualScreen(), nil
	}
	var r windows.Rect
	if ok, _, err := procSystemParametersInfoW.Call(spiGetWorkArea, 0, uintptr(unsafe.Pointer(&r)), 0); ok == 0 {
		return model.Rect{}, lastError("SystemParametersInfoW(SPI_GETWORKAREA)", err)
	}
	return toRect(r), nil
}

func virtualScreen() model.Rect {
	metric := func(i uintptr) int {
		r, _, _ := procGetSystemMetrics.Call(i)
		return int(int32(r))
	}
	return model.Rect{
		Left:   metric(smXVirtualScreen),
		Top:    metric(smYVirtualScreen),
		Width:  metric(smCXVirtualScreen),
		Height: metric(smCYVirtualScreen),
	}
}
