package model

import "fmt"

// Point is a screen position in physical pixels.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Rect is a screen rectangle anchored at its top-left corner.
type Rect struct {
	Left   int `yaml:"left"   json:"left"`
	Top    int `yaml:"top"    json:"top"`
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// NewRect builds a Rect from its edges rather than its size.
func NewRect(left, top, right, bottom int) Rect {
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

func (r Rect) Right() int  { return r.Left + r.Width }
func (r Rect) Bottom() int { return r.Top + r.Height }

// Area returns width*height, or 0 for degenerate rectangles.
func (r Rect) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Area() == 0
}

// Contains reports whether p lies inside r. Right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// Overlaps reports whether r and o share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left < o.Right() && o.Left < r.Right() && r.Top < o.Bottom() && o.Top < r.Bottom()
}

// Expand returns the raw window rectangle whose visible frame, after applying
// the margins m, is exactly r.
func (r Rect) Expand(m Margins) Rect {
	return Rect{
		Left:   r.Left - m.Left,
		Top:    r.Top - m.Top,
		Width:  r.Width + m.Left - m.Right,
		Height: r.Height + m.Top - m.Bottom,
	}
}

// Apply returns the visible frame of a raw window rectangle r with margins m.
// It is the inverse of Expand.
func (r Rect) Apply(m Margins) Rect {
	return NewRect(r.Left+m.Left, r.Top+m.Top, r.Right()+m.Right, r.Bottom()+m.Bottom)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.Left, r.Top, r.Width, r.Height)
}

// Margins is the per-edge offset from a window's raw bounds to its visible
// (extended) frame bounds: frame edge minus raw edge. On Windows 10+ the
// invisible resize border typically gives {7, 0, -7, -7}.
type Margins struct {
	Left   int `yaml:"left"   json:"left"`
	Top    int `yaml:"top"    json:"top"`
	Right  int `yaml:"right"  json:"right"`
	Bottom int `yaml:"bottom" json:"bottom"`
}

// MarginsBetween computes the margins from raw window bounds to frame bounds.
func MarginsBetween(raw, frame Rect) Margins {
	return Margins{
		Left:   frame.Left - raw.Left,
		Top:    frame.Top - raw.Top,
		Right:  frame.Right() - raw.Right(),
		Bottom: frame.Bottom() - raw.Bottom(),
	}
}
