// Package windows provides the Win32 backend: window attributes through
// user32, frame bounds and cloaking through DWM, virtual-desktop membership
// through the IVirtualDesktopManager COM interface, and lifecycle events
// through a shell-hook window plus WinEvent hooks pumped on one locked OS thread.
// On other systems the package compiles empty.
package windows
