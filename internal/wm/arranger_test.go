package wm

import (
	"errors"
	"testing"

	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/platform/memory"
)

func TestArranger_SkipsMinimizedAndOtherDesktops(t *testing.T) {
	desk := memory.New(area)
	desk.Add(memory.AppWindow(1, "One", "one.exe"))
	desk.Add(memory.AppWindow(2, "Two", "two.exe"))
	away := memory.AppWindow(3, "Three", "three.exe")
	away.Desktop = 1
	desk.Add(away)

	reg := NewRegistry()
	for _, h := range []model.WindowHandle{1, 2, 3} {
		reg.Manage(h)
	}
	reg.SetMinimized(2, true)

	a := NewArranger(desk, desk, nil, nil)
	got := a.Arrange(reg, area, model.Dwindle)
	if len(got) != 1 || got[0].Handle != 1 || got[0].Tile != area {
		t.Fatalf("placements = %+v, want window 1 on the full area", got)
	}
	if batch := desk.LastBatch(); len(batch) != 1 {
		t.Errorf("batch size = %d, want 1", len(batch))
	}
}

func TestArranger_CompensatesFrameMargins(t *testing.T) {
	desk := memory.New(area)
	w := memory.AppWindow(1, "One", "one.exe")
	// Typical invisible resize borders: visible frame is 7px inside on three sides.
	w.Margins = model.Margins{Left: 7, Top: 0, Right: -7, Bottom: -7}
	desk.Add(w)

	reg := NewRegistry()
	reg.Manage(1)
	got := NewArranger(desk, desk, nil, nil).Arrange(reg, area, model.Monocle)

	want := model.Rect{Left: -7, Top: 0, Width: 1934, Height: 1087}
	if got[0].Raw != want {
		t.Errorf("raw = %v, want %v", got[0].Raw, want)
	}
	if visible := got[0].Raw.Apply(w.Margins); visible != area {
		t.Errorf("visible frame = %v, want %v", visible, area)
	}
	if b, _ := desk.Window(1); b.Bounds != want {
		t.Errorf("window bounds = %v, want %v", b.Bounds, want)
	}
}

func TestArranger_OneBatchThenInvalidate(t *testing.T) {
	desk := memory.New(area)
	reg := NewRegistry()
	for _, h := range []model.WindowHandle{1, 2, 3} {
		desk.Add(memory.AppWindow(h, "W", "w.exe"))
		reg.Manage(h)
	}
	NewArranger(desk, desk, nil, nil).Arrange(reg, area, model.Columns)

	if n := len(desk.Batches()); n != 1 {
		t.Fatalf("batches = %d, want 1", n)
	}
	want := []model.WindowHandle{1, 2, 3}
	if got := desk.Invalidated(); !equalHandles(got, want) {
		t.Errorf("invalidated = %v, want %v", got, want)
	}
	for i, mv := range desk.LastBatch() {
		if mv.Rect.Left != i*640 || mv.Rect.Width != 640 {
			t.Errorf("move %d = %v, want left %d width 640", i, mv.Rect, i*640)
		}
	}
}

func TestArranger_EmptyRegistryIssuesNoBatch(t *testing.T) {
	desk := memory.New(area)
	got := NewArranger(desk, desk, nil, nil).Arrange(NewRegistry(), area, model.Focus)
	if len(got) != 0 || len(desk.Batches()) != 0 {
		t.Errorf("placements = %v, batches = %d; want none", got, len(desk.Batches()))
	}
}

func TestArranger_DesktopQueryFailureExcludes(t *testing.T) {
	desk := memory.New(area)
	desk.Add(memory.AppWindow(1, "One", "one.exe"))
	desk.DesktopErr = errors.New("virtual desktop service unavailable")
	reg := NewRegistry()
	reg.Manage(1)
	if got := NewArranger(desk, desk, nil, nil).Arrange(reg, area, model.Dwindle); len(got) != 0 {
		t.Errorf("placements = %v, want none", got)
	}
}
