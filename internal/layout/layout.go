package layout

import (
	"github.com/mj1618/tilewm/internal/model"
)

// MaxCount is the largest window count callers outside the tiler may ask
// a layout for.
const MaxCount = 256

// Func computes n tiles inside bounds.
type Func func(bounds model.Rect, n int) []model.Rect

var funcs = map[model.LayoutMode]Func{
	model.Dwindle: Dwindle,
	model.Monocle: Monocle,
	model.Columns: Columns,
	model.Focus:   Focus,
}

// Arrange dispatches to the algorithm for mode. A mode that is not one of the
// declared constants falls back to Dwindle.
func Arrange(mode model.LayoutMode, bounds model.Rect, n int) []model.Rect {
	f, ok := funcs[mode]
	if !ok {
		f = Dwindle
	}
	if n <= 0 {
		return []model.Rect{}
	}
	return f(bounds, n)
}

// Dwindle splits the most recently produced region in half for every extra
// window, alternating side-by-side (odd steps) and stacked (even steps).
// The left/top half gets the floor of an odd dimension.
func Dwindle(bounds model.Rect, n int) []model.Rect {
	if n <= 0 {
		return []model.Rect{}
	}
	tiles := make([]model.Rect, 1, n)
	tiles[0] = bounds
	for i := 1; i < n; i++ {
		last := tiles[len(tiles)-1]
		tiles = tiles[:len(tiles)-1]
		a, b := split(last, i%2 != 0)
		tiles = append(tiles, a, b)
	}
	return tiles
}

func split(r model.Rect, vertical bool) (model.Rect, model.Rect) {
	if vertical {
		half := r.Width / 2
		return model.Rect{Left: r.Left, Top: r.Top, Width: half, Height: r.Height},
			model.Rect{Left: r.Left + half, Top: r.Top, Width: r.Width - half, Height: r.Height}
	}
	half := r.Height / 2
	return model.Rect{Left: r.Left, Top: r.Top, Width: r.Width, Height: half},
		model.Rect{Left: r.Left, Top: r.Top + half, Width: r.Width, Height: r.Height - half}
}

// Monocle returns bounds n times.
func Monocle(bounds model.Rect, n int) []model.Rect {
	if n <= 0 {
		return []model.Rect{}
	}
	tiles := make([]model.Rect, n)
	for i := range tiles {
		tiles[i] = bounds
	}
	return tiles
}

// Columns divides bounds into n strips of width bounds.Width/n. The
// bounds.Width%n leftover pixels on the right edge stay uncovered.
func Columns(bounds model.Rect, n int) []model.Rect {
	if n <= 0 {
		return []model.Rect{}
	}
	w := bounds.Width / n
	tiles := make([]model.Rect, n)
	for i := range tiles {
		tiles[i] = model.Rect{Left: bounds.Left + i*w, Top: bounds.Top, Width: w, Height: bounds.Height}
	}
	return tiles
}

// Focus gives window 0 a master pane. With two windows the master takes the
// left three quarters. With more, the master is the middle half and the rest
// alternate between a right column (odd indices) and a left column (even
// indices), each column stacked evenly; the last member of a column absorbs
// the height remainder.
func Focus(bounds model.Rect, n int) []model.Rect {
	switch {
	case n <= 0:
		return []model.Rect{}
	case n == 1:
		return []model.Rect{bounds}
	case n == 2:
		mw := bounds.Width * 3 / 4
		return []model.Rect{
			{Left: bounds.Left, Top: bounds.Top, Width: mw, Height: bounds.Height},
			{Left: bounds.Left + mw, Top: bounds.Top, Width: bounds.Width - mw, Height: bounds.Height},
		}
	}

	side := bounds.Width / 4
	mw := bounds.Width / 2
	left := model.Rect{Left: bounds.Left, Top: bounds.Top, Width: side, Height: bounds.Height}
	right := model.Rect{Left: bounds.Left + side + mw, Top: bounds.Top, Width: bounds.Width - side - mw, Height: bounds.Height}

	rightCount := n / 2
	leftCount := (n - 1) / 2

	tiles := make([]model.Rect, n)
	tiles[0] = model.Rect{Left: bounds.Left + side, Top: bounds.Top, Width: mw, Height: bounds.Height}
	for i := 1; i < n; i++ {
		if i%2 == 1 {
			tiles[i] = stackSlot(right, (i-1)/2, rightCount)
		} else {
			tiles[i] = stackSlot(left, (i-2)/2, leftCount)
		}
	}
	return tiles
}

// stackSlot returns the j-th of count equal-height rows of col.
func stackSlot(col model.Rect, j, count int) model.Rect {
	h := col.Height / count
	r := model.Rect{Left: col.Left, Top: col.Top + j*h, Width: col.Width, Height: h}
	if j == count-1 {
		r.Height = col.Height - j*h
	}
	return r
}
