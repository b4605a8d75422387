//go:build windows

package windows

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	dwmapi   = windows.NewLazySystemDLL("dwmapi.dll")
	ole32    = windows.NewLazySystemDLL("ole32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procBeginDeferWindowPos      = user32.NewProc("BeginDeferWindowPos")
	procCreateWindowExW          = user32.NewProc("CreateWindowExW")
	procDefWindowProcW           = user32.NewProc("DefWindowProcW")
	procDeferWindowPos           = user32.NewProc("DeferWindowPos")
	procDeregisterShellHook      = user32.NewProc("DeregisterShellHookWindow")
	procDestroyWindow            = user32.NewProc("DestroyWindow")
	procDispatchMessageW         = user32.NewProc("DispatchMessageW")
	procEndDeferWindowPos        = user32.NewProc("EndDeferWindowPos")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procFindWindowW              = user32.NewProc("FindWindowW")
	procGetAncestor              = user32.NewProc("GetAncestor")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetCursorPos             = user32.NewProc("GetCursorPos")
	procGetDesktopWindow         = user32.NewProc("GetDesktopWindow")
	procGetMessageW              = user32.NewProc("GetMessageW")
	procGetSystemMetrics         = user32.NewProc("GetSystemMetrics")
	procGetWindow                = user32.NewProc("GetWindow")
	procGetWindowLongPtrW        = user32.NewProc("GetWindowLongPtrW")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
	procIsIconic                 = user32.NewProc("IsIconic")
	procIsWindow                 = user32.NewProc("IsWindow")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procPostMessageW             = user32.NewProc("PostMessageW")
	procPostQuitMessage          = user32.NewProc("PostQuitMessage")
	procRegisterClassExW         = user32.NewProc("RegisterClassExW")
	procRegisterShellHook        = user32.NewProc("RegisterShellHookWindow")
	procRegisterWindowMessageW   = user32.NewProc("RegisterWindowMessageW")
	procSetWinEventHook          = user32.NewProc("SetWinEventHook")
	procSystemParametersInfoW    = user32.NewProc("SystemParametersInfoW")
	procTranslateMessage         = user32.NewProc("TranslateMessage")
	procUnhookWinEvent           = user32.NewProc("UnhookWinEvent")
	procUnregisterClassW         = user32.NewProc("UnregisterClassW")

	procDwmGetWindowAttribute      = dwmapi.NewProc("DwmGetWindowAttribute")
	procDwmInvalidateIconicBitmaps = dwmapi.NewProc("DwmInvalidateIconicBitmaps")

	procCoCreateInstance = ole32.NewProc("CoCreateInstance")
	procCoInitializeEx   = ole32.NewProc("CoInitializeEx")
	procCoUninitialize   = ole32.NewProc("CoUninitialize")

	procGetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
)

const (
	gwlStyle   = -16
	gwlExStyle = -20

	gaParent = 1
	gwOwner  = 4

	dwmwaExtendedFrameBounds = 9
	dwmwaCloaked             = 14

	spiGetWorkArea = 0x0030
	spiSetWorkArea = 0x002F

	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCXVirtualScreen = 78
	smCYVirtualScreen = 79

	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010

	wmDestroy       = 0x0002
	wmSettingChange = 0x001A
	wmDisplayChange = 0x007E
	wmApp           = 0x8000

	hshellWindowCreated   = 1
	hshellWindowDestroyed = 2
	hshellWindowActivated = 4

	eventSystemMoveSizeEnd    = 0x000B
	eventSystemMinimizeStart  = 0x0016
	eventSystemMinimizeEnd    = 0x0017
	eventObjectDestroy        = 0x8001
	eventObjectShow           = 0x8002
	eventObjectCloaked        = 0x8017
	eventObjectUncloaked      = 0x8018
	wineventOutOfContext      = 0x0000
	wineventSkipOwnProcess    = 0x0002
	objidWindow               = 0
	childidSelf               = 0
	clsctxAll                 = 0x17
	coinitMultithreaded       = 0x0
	maxClassName              = 256
	processImageNameMaxLength = 1024
)

type point struct {
	X, Y int32
}

type msg struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
	private uint32
}

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   uintptr
	Icon       uintptr
	Cursor     uintptr
	Background uintptr
	MenuName   *uint16
	ClassName  *uint16
	IconSm     uintptr
}

// index turns a negative GetWindowLongPtr index into its sign-extended argument.
func index(i int32) uintptr { return uintptr(i) }

// hresult converts a failed HRESULT into an error.
func hresult(op string, r uintptr) error {
	if int32(r) >= 0 {
		return nil
	}
	return fmt.Errorf("%s: HRESULT 0x%08x", op, uint32(r))
}

// lastError returns err from a LazyProc.Call when it carries a real errno.
func lastError(op string, err error) error {
	if errno, ok := err.(syscall.Errno); ok && errno == 0 {
		return fmt.Errorf("%s failed", op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
