package memory

import (
	"errors"
	"testing"

	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/platform"
)

var area = model.Rect{Width: 1920, Height: 1080}

func drain(t *testing.T, d *Desktop) []model.Notification {
	t.Helper()
	var got []model.Notification
	d.Queue().Drain(func(n model.Notification) uintptr {
		got = append(got, n)
		return 0
	})
	return got
}

func TestDesktop_OpenAndClosePostNotifications(t *testing.T) {
	d := New(area)
	if err := d.Open(AppWindow(1, "Editor", "code.exe")); err != nil {
		t.Fatal(err)
	}
	if err := d.Close(1); err != nil {
		t.Fatal(err)
	}
	got := drain(t, d)
	if len(got) != 2 || got[0].Kind != model.Created || got[1].Kind != model.Destroyed {
		t.Fatalf("notifications = %v, want [created destroyed]", got)
	}
	if _, ok := d.Window(1); ok {
		t.Error("window still present after Close")
	}
	if _, err := d.IsOnCurrentDesktop(1); !errors.Is(err, platform.ErrUnknownWindow) {
		t.Errorf("IsOnCurrentDesktop on closed window = %v, want ErrUnknownWindow", err)
	}
}

func TestDesktop_SwitchDesktopCloaksAndUncloaks(t *testing.T) {
	d := New(area)
	a := AppWindow(1, "A", "a.exe")
	b := AppWindow(2, "B", "b.exe")
	b.Desktop = 1
	d.Add(a)
	d.Add(b)

	if err := d.SwitchDesktop(1); err != nil {
		t.Fatal(err)
	}
	got := drain(t, d)
	if len(got) != 2 {
		t.Fatalf("notifications = %v", got)
	}
	if got[0] != (model.Notification{Kind: model.Cloaked, Handle: 1}) {
		t.Errorf("first = %v, want cloaked(0x1)", got[0])
	}
	if got[1] != (model.Notification{Kind: model.Uncloaked, Handle: 2}) {
		t.Errorf("second = %v, want uncloaked(0x2)", got[1])
	}
	if cloaked, _ := d.IsCloaked(1); !cloaked {
		t.Error("window on previous desktop should report cloaked")
	}
	if on, _ := d.IsOnCurrentDesktop(2); !on {
		t.Error("window 2 should be on the current desktop")
	}
}

func TestDesktop_SetBoundsRecordsBatch(t *testing.T) {
	d := New(area)
	d.Add(AppWindow(1, "A", "a.exe"))
	r := model.Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	if err := d.SetBounds([]platform.Move{{Handle: 1, Rect: r}, {Handle: 99, Rect: r}}); err != nil {
		t.Fatal(err)
	}
	if len(d.LastBatch()) != 2 {
		t.Errorf("batch size = %d, want 2", len(d.LastBatch()))
	}
	if w, _ := d.Window(1); w.Bounds != r {
		t.Errorf("bounds = %v, want %v", w.Bounds, r)
	}
}

func TestDesktop_ProcessNameUnavailable(t *testing.T) {
	d := New(area)
	d.Add(AppWindow(1, "A", ""))
	if _, err := d.ProcessName(1); err == nil {
		t.Error("expected error for window without process")
	}
}

func TestDesktop_Acquire(t *testing.T) {
	d := New(area)
	release, err := d.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Acquire(); !errors.Is(err, platform.ErrAlreadyRunning) {
		t.Errorf("second Acquire = %v, want ErrAlreadyRunning", err)
	}
	release()
	if _, err := d.Acquire(); err != nil {
		t.Errorf("Acquire after release: %v", err)
	}
}

func TestDesktop_MoveToDesktop(t *testing.T) {
	d := New(area)
	d.Add(AppWindow(1, "A", "a.exe"))
	if err := d.MoveToDesktop(1, 2); err != nil {
		t.Fatal(err)
	}
	got := drain(t, d)
	if len(got) != 1 || got[0].Kind != model.Cloaked {
		t.Errorf("notifications = %v, want [cloaked]", got)
	}
}
