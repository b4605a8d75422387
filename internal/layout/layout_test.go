package layout

import (
	"testing"

	"github.com/mj1618/tilewm/internal/model"
)

var screen = model.Rect{Left: 0, Top: 0, Width: 1920, Height: 1080}

func assertNoOverlap(t *testing.T, tiles []model.Rect) {
	t.Helper()
	for i := range tiles {
		for j := i + 1; j < len(tiles); j++ {
			if tiles[i].Overlaps(tiles[j]) {
				t.Errorf("tiles %d %v and %d %v overlap", i, tiles[i], j, tiles[j])
			}
		}
	}
}

func assertInside(t *testing.T, bounds model.Rect, tiles []model.Rect) {
	t.Helper()
	for i, r := range tiles {
		if r.Left < bounds.Left || r.Top < bounds.Top || r.Right() > bounds.Right() || r.Bottom() > bounds.Bottom() {
			t.Errorf("tile %d %v escapes bounds %v", i, r, bounds)
		}
	}
}

func totalArea(tiles []model.Rect) int {
	sum := 0
	for _, r := range tiles {
		sum += r.Area()
	}
	return sum
}

func TestDwindle_Empty(t *testing.T) {
	if got := Dwindle(screen, 0); len(got) != 0 {
		t.Errorf("Dwindle(n=0) = %v, want empty", got)
	}
}

func TestDwindle_Single(t *testing.T) {
	got := Dwindle(screen, 1)
	if len(got) != 1 || got[0] != screen {
		t.Errorf("Dwindle(n=1) = %v, want [%v]", got, screen)
	}
}

func TestDwindle_TwoVerticalHalves(t *testing.T) {
	got := Dwindle(screen, 2)
	want := []model.Rect{
		{Left: 0, Top: 0, Width: 960, Height: 1080},
		{Left: 960, Top: 0, Width: 960, Height: 1080},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tiles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tile %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDwindle_ThreeSplitsSecondHalfHorizontally(t *testing.T) {
	got := Dwindle(screen, 3)
	want := []model.Rect{
		{Left: 0, Top: 0, Width: 960, Height: 1080},
		{Left: 960, Top: 0, Width: 960, Height: 540},
		{Left: 960, Top: 540, Width: 960, Height: 540},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tile %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDwindle_CoversBounds(t *testing.T) {
	odd := model.Rect{Left: 13, Top: 7, Width: 1919, Height: 1041}
	for _, bounds := range []model.Rect{screen, odd} {
		for n := 1; n <= 24; n++ {
			tiles := Dwindle(bounds, n)
			if len(tiles) != n {
				t.Fatalf("Dwindle(%v, %d) returned %d tiles", bounds, n, len(tiles))
			}
			if diff := bounds.Area() - totalArea(tiles); diff < 0 || diff > n {
				t.Errorf("Dwindle(%v, %d): area diff %d", bounds, n, diff)
			}
			assertNoOverlap(t, tiles)
			assertInside(t, bounds, tiles)
		}
	}
}

func TestMonocle(t *testing.T) {
	got := Monocle(screen, 3)
	if len(got) != 3 {
		t.Fatalf("got %d tiles, want 3", len(got))
	}
	for i, r := range got {
		if r != screen {
			t.Errorf("tile %d = %v, want %v", i, r, screen)
		}
	}
}

func TestColumns_EqualStrips(t *testing.T) {
	for n := 1; n <= 7; n++ {
		tiles := Columns(screen, n)
		w := screen.Width / n
		for i, r := range tiles {
			if r.Left != i*w || r.Width != w || r.Top != 0 || r.Height != screen.Height {
				t.Errorf("Columns(n=%d) tile %d = %+v, want left=%d width=%d", n, i, r, i*w, w)
			}
		}
		assertNoOverlap(t, tiles)
	}
}

func TestColumns_RemainderUncovered(t *testing.T) {
	// 1920/7 = 274, 7*274 = 1918: the last two pixels stay free.
	tiles := Columns(screen, 7)
	last := tiles[len(tiles)-1]
	if last.Right() != 1918 {
		t.Errorf("last column ends at %d, want 1918", last.Right())
	}
}

func TestColumns_HonoursOffset(t *testing.T) {
	bounds := model.Rect{Left: 100, Top: 40, Width: 1000, Height: 500}
	tiles := Columns(bounds, 4)
	if tiles[0].Left != 100 || tiles[3].Left != 850 {
		t.Errorf("tiles ignore bounds offset: %v", tiles)
	}
}

func TestFocus_Small(t *testing.T) {
	if got := Focus(screen, 1); len(got) != 1 || got[0] != screen {
		t.Errorf("Focus(n=1) = %v", got)
	}
	got := Focus(screen, 2)
	want := []model.Rect{
		{Left: 0, Top: 0, Width: 1440, Height: 1080},
		{Left: 1440, Top: 0, Width: 480, Height: 1080},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Focus(n=2) tile %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFocus_MasterAndSideColumns(t *testing.T) {
	got := Focus(screen, 5)
	want := []model.Rect{
		{Left: 480, Top: 0, Width: 960, Height: 1080},   // master
		{Left: 1440, Top: 0, Width: 480, Height: 540},   // right 0
		{Left: 0, Top: 0, Width: 480, Height: 540},      // left 0
		{Left: 1440, Top: 540, Width: 480, Height: 540}, // right 1
		{Left: 0, Top: 540, Width: 480, Height: 540},    // left 1
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tile %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFocus_Properties(t *testing.T) {
	for n := 3; n <= 12; n++ {
		tiles := Focus(screen, n)
		if len(tiles) != n {
			t.Fatalf("Focus(n=%d) returned %d tiles", n, len(tiles))
		}
		assertNoOverlap(t, tiles)
		assertInside(t, screen, tiles)
		if totalArea(tiles) != screen.Area() {
			t.Errorf("Focus(n=%d) covers %d, want %d", n, totalArea(tiles), screen.Area())
		}
	}
}

func TestFocus_OrderStable(t *testing.T) {
	// Adding a window must not move the existing master or earlier column heads.
	four := Focus(screen, 4)
	five := Focus(screen, 5)
	if four[0] != five[0] {
		t.Errorf("master moved: %v -> %v", four[0], five[0])
	}
}

func TestArrange_Dispatch(t *testing.T) {
	tests := []struct {
		mode model.LayoutMode
		want model.Rect
	}{
		{model.Dwindle, model.Rect{Left: 0, Top: 0, Width: 960, Height: 1080}},
		{model.Monocle, screen},
		{model.Columns, model.Rect{Left: 0, Top: 0, Width: 960, Height: 1080}},
		{model.Focus, model.Rect{Left: 0, Top: 0, Width: 1440, Height: 1080}},
	}
	for _, tt := range tests {
		got := Arrange(tt.mode, screen, 2)
		if len(got) != 2 || got[0] != tt.want {
			t.Errorf("Arrange(%s) first tile = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestArrange_ZeroCount(t *testing.T) {
	for _, m := range model.LayoutModes() {
		if got := Arrange(m, screen, 0); len(got) != 0 {
			t.Errorf("Arrange(%s, 0) = %v", m, got)
		}
	}
}

func TestArrange_UnknownModeFallsBackToDwindle(t *testing.T) {
	got := Arrange(model.LayoutMode(9), screen, 3)
	want := Dwindle(screen, 3)
	if len(got) != len(want) {
		t.Fatalf("Arrange(LayoutMode(9), 3) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tile %d = %v, want %v", i, got[i], want[i])
		}
	}
}
