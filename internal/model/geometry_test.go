package model

import "testing"

func TestRect_Contains(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Width: 100, Height: 50}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{10, 20}, true},
		{Point{109, 69}, true},
		{Point{110, 20}, false}, // right edge is exclusive
		{Point{10, 70}, false},  // bottom edge is exclusive
		{Point{9, 30}, false},
		{Point{50, 19}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("%v.Contains(%+v) = %v, want %v", r, tt.p, got, tt.want)
		}
	}
}

func TestRect_Area(t *testing.T) {
	if got := (Rect{Width: 1920, Height: 1080}).Area(); got != 1920*1080 {
		t.Errorf("Area() = %d, want %d", got, 1920*1080)
	}
	if got := (Rect{Width: -5, Height: 10}).Area(); got != 0 {
		t.Errorf("Area() of degenerate rect = %d, want 0", got)
	}
}

func TestRect_Overlaps(t *testing.T) {
	a := Rect{0, 0, 100, 100}
	if a.Overlaps(Rect{100, 0, 100, 100}) {
		t.Error("adjacent rectangles should not overlap")
	}
	if !a.Overlaps(Rect{99, 99, 10, 10}) {
		t.Error("corner-sharing rectangles should overlap")
	}
}

func TestRect_ExpandPlacesFrameOnTile(t *testing.T) {
	tile := Rect{Left: 0, Top: 0, Width: 960, Height: 1080}
	m := Margins{Left: 7, Top: 0, Right: -7, Bottom: -7}

	raw := tile.Expand(m)
	want := Rect{Left: -7, Top: 0, Width: 974, Height: 1087}
	if raw != want {
		t.Fatalf("Expand = %+v, want %+v", raw, want)
	}
	if got := raw.Apply(m); got != tile {
		t.Errorf("Apply(Expand(tile)) = %+v, want %+v", got, tile)
	}
}

func TestMarginsBetween(t *testing.T) {
	raw := Rect{Left: 93, Top: 100, Width: 814, Height: 607}
	frame := Rect{Left: 100, Top: 100, Width: 800, Height: 600}
	got := MarginsBetween(raw, frame)
	want := Margins{Left: 7, Top: 0, Right: -7, Bottom: -7}
	if got != want {
		t.Errorf("MarginsBetween = %+v, want %+v", got, want)
	}
}
