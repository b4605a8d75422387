package model

import (
	"errors"
	"fmt"
	"strings"
)

// LayoutMode selects the tiling algorithm.
type LayoutMode int

const (
	// Dwindle recursively halves the most recently added region.
	Dwindle LayoutMode = iota
	// Monocle stacks every window over the full area.
	Monocle
	// Columns gives each window an equal-width vertical strip.
	Columns
	// Focus places a master window in the centre with two side columns.
	Focus
)

// ErrUnknownLayout is returned when a layout name cannot be parsed.
var ErrUnknownLayout = errors.New("unknown layout")

var layoutNames = [...]string{
	Dwindle: "dwindle",
	Monocle: "monocle",
	Columns: "columns",
	Focus:   "focus",
}

// LayoutModes lists every mode in declaration order.
func LayoutModes() []LayoutMode {
	return []LayoutMode{Dwindle, Monocle, Columns, Focus}
}

func (m LayoutMode) String() string {
	if m < 0 || int(m) >= len(layoutNames) {
		return fmt.Sprintf("LayoutMode(%d)", int(m))
	}
	return layoutNames[m]
}

// Valid reports whether m is one of the declared modes.
func (m LayoutMode) Valid() bool {
	return m >= 0 && int(m) < len(layoutNames)
}

// Next returns the mode after m, wrapping around.
func (m LayoutMode) Next() LayoutMode {
	return LayoutMode((int(m) + 1) % len(layoutNames))
}

// ParseLayoutMode converts a case-insensitive name to a LayoutMode.
func ParseLayoutMode(s string) (LayoutMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range layoutNames {
		if n == name {
			return LayoutMode(i), nil
		}
	}
	return Dwindle, fmt.Errorf("%w: %q (expected dwindle, monocle, columns, or focus)", ErrUnknownLayout, s)
}

func (m LayoutMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *LayoutMode) UnmarshalText(text []byte) error {
	parsed, err := ParseLayoutMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
