//go:build windows

package windows

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/platform"
)

// Attributes implements platform.AttributeProvider over user32 and DWM.
type Attributes struct{}

// NewAttributes creates a Win32 attribute provider.
func NewAttributes() *Attributes {
	return &Attributes{}
}

func exists(h model.WindowHandle) bool {
	r, _, _ := procIsWindow.Call(uintptr(h))
	return r != 0
}

func (a *Attributes) Style(h model.WindowHandle) (platform.Style, error) {
	if !exists(h) {
		return 0, platform.ErrUnknownWindow
	}
	r, _, _ := procGetWindowLongPtrW.Call(uintptr(h), index(gwlStyle))
	return platform.Style(uint32(r)), nil
}

func (a *Attributes) ExStyle(h model.WindowHandle) (platform.ExStyle, error) {
	if !exists(h) {
		return 0, platform.ErrUnknownWindow
	}
	r, _, _ := procGetWindowLongPtrW.Call(uintptr(h), index(gwlExStyle))
	return platform.ExStyle(uint32(r)), nil
}

func (a *Attributes) IsVisible(h model.WindowHandle) bool {
	r, _, _ := procIsWindowVisible.Call(uintptr(h))
	return r != 0
}

func (a *Attributes) IsIconic(h model.WindowHandle) bool {
	r, _, _ := procIsIconic.Call(uintptr(h))
	return r != 0
}

// IsCloaked reports any DWM cloak reason: app, shell or inherited.
func (a *Attributes) IsCloaked(h model.WindowHandle) (bool, error) {
	var cloaked uint32
	r, _, _ := procDwmGetWindowAttribute.Call(
		uintptr(h),
		dwmwaCloaked,
		uintptr(unsafe.Pointer(&cloaked)),
		unsafe.Sizeof(cloaked),
	)
	if err := hresult("DwmGetWindowAttribute(DWMWA_CLOAKED)", r); err != nil {
		return false, err
	}
	return cloaked != 0, nil
}

func (a *Attributes) TitleLength(h model.WindowHandle) int {
	r, _, _ := procGetWindowTextLengthW.Call(uintptr(h))
	return int(int32(r))
}

func (a *Attributes) Title(h model.WindowHandle) (string, error) {
	if !exists(h) {
		return "", platform.ErrUnknownWindow
	}
	n := a.TitleLength(h)
	if n <= 0 {
		return "", nil
	}
	buf := make([]uint16, n+1)
	r, _, _ := procGetWindowTextW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:r]), nil
}

func (a *Attributes) ClassName(h model.WindowHandle) (string, error) {
	buf := make([]uint16, maxClassName)
	r, _, err := procGetClassNameW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r == 0 {
		return "", lastError("GetClassNameW", err)
	}
	return windows.UTF16ToString(buf[:r]), nil
}

// ProcessName returns the executable base name of the window's process,
// for example "explorer.exe".
func (a *Attributes) ProcessName(h model.WindowHandle) (string, error) {
	var pid uint32
	procGetWindowThreadProcessID.Call(uintptr(h), uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return "", platform.ErrUnknownWindow
	}
	proc, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", fmt.Errorf("open process %d: %w", pid, err)
	}
	defer windows.CloseHandle(proc)

	buf := make([]uint16, processImageNameMaxLength)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(proc, 0, &buf[0], &size); err != nil {
		return "", fmt.Errorf("query image name of process %d: %w", pid, err)
	}
	return filepath.Base(windows.UTF16ToString(buf[:size])), nil
}

// Parent returns the real parent window. Top-level windows, whose ancestor is
// the desktop window, report 0.
func (a *Attributes) Parent(h model.WindowHandle) model.WindowHandle {
	parent, _, _ := procGetAncestor.Call(uintptr(h), gaParent)
	desktop, _, _ := procGetDesktopWindow.Call()
	if parent == desktop {
		return 0
	}
	return model.WindowHandle(parent)
}

func (a *Attributes) Owner(h model.WindowHandle) model.WindowHandle {
	r, _, _ := procGetWindow.Call(uintptr(h), gwOwner)
	return model.WindowHandle(r)
}
