package model

import "fmt"

// WindowHandle is an opaque identifier for a native window, issued by the
// windowing environment. The tiler never creates or destroys the window behind it.
type WindowHandle uintptr

func (h WindowHandle) String() string {
	return fmt.Sprintf("0x%x", uintptr(h))
}

// ManagedWindow is one entry of the tiling registry.
type ManagedWindow struct {
	Handle    WindowHandle `yaml:"handle"              json:"handle"`
	Minimized bool         `yaml:"minimized,omitempty" json:"minimized,omitempty"`
	Selected  bool         `yaml:"selected,omitempty"  json:"selected,omitempty"`
}

// WindowInfo describes a top-level window for listing output.
type WindowInfo struct {
	Handle     string `yaml:"handle"           json:"handle"`
	Title      string `yaml:"title"            json:"title"`
	Class      string `yaml:"class"            json:"class"`
	Process    string `yaml:"process,omitempty" json:"process,omitempty"`
	Bounds     [4]int `yaml:"bounds,flow"      json:"bounds"`
	Manageable bool   `yaml:"manageable"       json:"manageable"`
	Reason     string `yaml:"reason,omitempty" json:"reason,omitempty"`
}
