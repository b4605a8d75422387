//go:build windows

package windows

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/mj1618/tilewm/internal/platform"
)

// mutexName is the session-wide named mutex held while a tiler runs.
const mutexName = `Local\tilewm.instance`

// Instance implements platform.InstanceLocker with a named mutex.
type Instance struct{}

// NewInstance creates a Win32 instance locker.
func NewInstance() *Instance {
	return &Instance{}
}

func (i *Instance) Acquire() (func(), error) {
	name, err := windows.UTF16PtrFromString(mutexName)
	if err != nil {
		return nil, err
	}
	h, err := windows.CreateMutex(nil, false, name)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		windows.CloseHandle(h)
		return nil, platform.ErrAlreadyRunning
	}
	if err != nil {
		return nil, fmt.Errorf("create instance mutex: %w", err)
	}
	return func() { windows.CloseHandle(h) }, nil
}
