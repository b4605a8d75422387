//go:build windows

package windows

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/mj1618/tilewm/internal/model"
)

var (
	clsidVirtualDesktopManager = windows.GUID{Data1: 0xAA509086, Data2: 0x5CA9, Data3: 0x4C25, Data4: [8]byte{0x8F, 0x95, 0x58, 0x9D, 0x3C, 0x07, 0xB4, 0x8A}}
	iidVirtualDesktopManager   = windows.GUID{Data1: 0xA5CD92FF, Data2: 0x29BE, Data3: 0x454C, Data4: [8]byte{0x8D, 0x04, 0xD8, 0x28, 0x79, 0xFB, 0x3F, 0x1B}}
)

type virtualDesktopManagerVtbl struct {
	QueryInterface                  uintptr
	AddRef                          uintptr
	Release                         uintptr
	IsWindowOnCurrentVirtualDesktop uintptr
	GetWindowDesktopID              uintptr
	MoveWindowToDesktop             uintptr
}

type virtualDesktopManager struct {
	vtbl *virtualDesktopManagerVtbl
}

// VirtualDesktops implements platform.DesktopOracle with the shell's
// IVirtualDesktopManager.
type VirtualDesktops struct {
	mgr *virtualDesktopManager
}

// NewVirtualDesktops initializes COM for the process (multithreaded apartment,
// so any goroutine may query) and creates the virtual desktop manager.
func NewVirtualDesktops() (*VirtualDesktops, error) {
	// S_FALSE (already initialized) still needs a matching CoUninitialize.
	r, _, _ := procCoInitializeEx.Call(0, coinitMultithreaded)
	if err := hresult("CoInitializeEx", r); err != nil {
		return nil, err
	}
	var mgr *virtualDesktopManager
	r, _, _ = procCoCreateInstance.Call(
		uintptr(unsafe.Pointer(&clsidVirtualDesktopManager)),
		0,
		clsctxAll,
		uintptr(unsafe.Pointer(&iidVirtualDesktopManager)),
		uintptr(unsafe.Pointer(&mgr)),
	)
	if err := hresult("CoCreateInstance(VirtualDesktopManager)", r); err != nil {
		procCoUninitialize.Call()
		return nil, err
	}
	return &VirtualDesktops{mgr: mgr}, nil
}

func (v *VirtualDesktops) IsOnCurrentDesktop(h model.WindowHandle) (bool, error) {
	var on int32
	r, _, _ := syscall.SyscallN(
		v.mgr.vtbl.IsWindowOnCurrentVirtualDesktop,
		uintptr(unsafe.Pointer(v.mgr)),
		uintptr(h),
		uintptr(unsafe.Pointer(&on)),
	)
	if err := hresult("IsWindowOnCurrentVirtualDesktop", r); err != nil {
		return false, err
	}
	return on != 0, nil
}

// Close releases the COM object and uninitializes COM.
func (v *VirtualDesktops) Close() error {
	if v.mgr != nil {
		syscall.SyscallN(v.mgr.vtbl.Release, uintptr(unsafe.Pointer(v.mgr)))
		v.mgr = nil
		procCoUninitialize.Call()
	}
	return nil
}
