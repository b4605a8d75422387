package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/tilewm/internal/model"
)

// Style holds GWL_STYLE window style bits.
type Style uint32

// ExStyle holds GWL_EXSTYLE extended window style bits.
type ExStyle uint32

const (
	StyleChild    Style = 0x40000000 // WS_CHILD
	StyleVisible  Style = 0x10000000 // WS_VISIBLE
	StyleDisabled Style = 0x08000000 // WS_DISABLED
	StyleMinimize Style = 0x20000000 // WS_MINIMIZE

	ExStyleToolWindow ExStyle = 0x00000080 // WS_EX_TOOLWINDOW
	ExStyleAppWindow  ExStyle = 0x00040000 // WS_EX_APPWINDOW
	ExStyleNoActivate ExStyle = 0x08000000 // WS_EX_NOACTIVATE
)

// Has reports whether every bit of flag is set.
func (s Style) Has(flag Style) bool { return s&flag == flag }

// Has reports whether every bit of flag is set.
func (s ExStyle) Has(flag ExStyle) bool { return s&flag == flag }

// Move is one entry of a batched reposition.
type Move struct {
	Handle model.WindowHandle
	Rect   model.Rect
}

// ParseRect parses a "x,y,w,h" string into a Rect.
func ParseRect(s string) (model.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.Rect{}, fmt.Errorf("invalid rect %q: expected x,y,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return model.Rect{}, fmt.Errorf("invalid rect %q: %w", s, err)
		}
		vals[i] = v
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return model.Rect{}, fmt.Errorf("invalid rect %q: width and height must be positive", s)
	}
	return model.Rect{Left: vals[0], Top: vals[1], Width: vals[2], Height: vals[3]}, nil
}
