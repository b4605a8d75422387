//go:build windows

package windows

import (
	"sync"

	"golang.org/x/sys/windows"

	"github.com/mj1618/tilewm/internal/model"
)

// Enumerator implements platform.Enumerator with EnumWindows.
type Enumerator struct{}

// NewEnumerator creates a Win32 enumerator.
func NewEnumerator() *Enumerator {
	return &Enumerator{}
}

var (
	// Callbacks are a limited resource, so one is shared by every enumeration.
	enumMu       sync.Mutex
	enumFound    []model.WindowHandle
	enumCallback = windows.NewCallback(func(hwnd, _ uintptr) uintptr {
		enumFound = append(enumFound, model.WindowHandle(hwnd))
		return 1
	})
)

// TopLevelWindows lists top-level windows in z-order, topmost first.
func (e *Enumerator) TopLevelWindows() ([]model.WindowHandle, error) {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumFound = nil
	if ok, _, err := procEnumWindows.Call(enumCallback, 0); ok == 0 {
		return nil, lastError("EnumWindows", err)
	}
	found := enumFound
	enumFound = nil
	return found, nil
}
