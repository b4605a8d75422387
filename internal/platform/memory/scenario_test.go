package memory

import (
	"strings"
	"testing"

	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/platform"
)

const sampleScenario = `
area: {left: 0, top: 0, width: 2560, height: 1400}
layout: columns
windows:
  - handle: 0x10
    title: Editor
    process: code.exe
  - handle: 0x20
    title: Palette
    tool: true
    owner: 0x10
steps:
  - open: {handle: 0x30, title: Terminal}
  - layout: focus
  - drag: {handle: 0x10, x: 10, y: 20}
  - move_to_desktop: {handle: 0x30, desktop: 1}
  - close: 0x10
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(sampleScenario))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Area.Width != 2560 || sc.Layout != "columns" || len(sc.Windows) != 2 || len(sc.Steps) != 5 {
		t.Fatalf("scenario = %+v", sc)
	}
	w := sc.Windows[1].Window()
	if !w.ExStyle.Has(platform.ExStyleToolWindow) || w.Owner != 0x10 || !w.Visible || w.Process != "app.exe" {
		t.Errorf("palette window = %+v", w)
	}
	if *sc.Steps[1].Layout != model.Focus {
		t.Errorf("layout step = %v, want focus", *sc.Steps[1].Layout)
	}
}

func TestScenario_ApplySteps(t *testing.T) {
	sc, err := ParseScenario([]byte(sampleScenario))
	if err != nil {
		t.Fatal(err)
	}
	d := sc.Desktop()
	if got := d.Handles(); len(got) != 2 {
		t.Fatalf("initial handles = %v", got)
	}
	for i, step := range sc.Steps {
		if err := step.Apply(d); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	var kinds []string
	for _, n := range drain(t, d) {
		kinds = append(kinds, n.Kind.String())
	}
	want := "created layout-switch move-resize-end cloaked destroyed"
	if got := strings.Join(kinds, " "); got != want {
		t.Errorf("notifications = %q, want %q", got, want)
	}
	if w, _ := d.Window(0x30); w.Desktop != 1 {
		t.Errorf("terminal desktop = %d, want 1", w.Desktop)
	}
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing handle", "windows:\n  - title: x\n"},
		{"duplicate handle", "windows:\n  - {handle: 1, title: a}\n  - {handle: 1, title: b}\n"},
		{"bad layout", "steps:\n  - layout: spiral\n"},
		{"not yaml", "windows: [\n"},
	}
	for _, tt := range tests {
		if _, err := ParseScenario([]byte(tt.yaml)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestStep_ApplyRequiresOneAction(t *testing.T) {
	d := New(DefaultArea)
	if err := (Step{}).Apply(d); err == nil {
		t.Error("empty step accepted")
	}
	h := model.WindowHandle(1)
	desk := 1
	if err := (Step{Close: &h, SwitchDesktop: &desk}).Apply(d); err == nil {
		t.Error("step with two actions accepted")
	}
}

func TestParseScenario_DefaultArea(t *testing.T) {
	sc, err := ParseScenario([]byte("windows: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Area != DefaultArea {
		t.Errorf("area = %v, want %v", sc.Area, DefaultArea)
	}
}
