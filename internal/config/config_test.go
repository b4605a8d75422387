package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/tilewm/internal/model"
)

func TestDefault_Parses(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded default does not validate: %v", err)
	}
	if cfg.LayoutMode() != model.Dwindle {
		t.Errorf("default layout = %s, want dwindle", cfg.LayoutMode())
	}
	if len(cfg.ClassNames) == 0 || len(cfg.CoreWindowTitles) == 0 {
		t.Errorf("default exclusion lists are empty: %+v", cfg)
	}
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
layout: columns
class_names: [Foo]
Windows.UI.Core.CoreWindow: [Start]
`)
	cfg, err := Parse(data, "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout != "columns" || len(cfg.ClassNames) != 1 || cfg.CoreWindowTitles[0] != "Start" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestParse_TOML(t *testing.T) {
	data := []byte(`
layout = "focus"
process_names = ["steam.exe"]
"Windows.UI.Core.CoreWindow" = ["Search"]
`)
	cfg, err := Parse(data, "toml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LayoutMode() != model.Focus {
		t.Errorf("layout = %s, want focus", cfg.LayoutMode())
	}
	if len(cfg.ProcessNames) != 1 || cfg.ProcessNames[0] != "steam.exe" {
		t.Errorf("process_names = %v", cfg.ProcessNames)
	}
	if len(cfg.CoreWindowTitles) != 1 || cfg.CoreWindowTitles[0] != "Search" {
		t.Errorf("core window titles = %v", cfg.CoreWindowTitles)
	}
}

func TestParse_UnknownFormat(t *testing.T) {
	if _, err := Parse(nil, "ini"); err == nil {
		t.Error("expected error for ini format")
	}
}

func TestMerge_AppendsListsAndOverridesScalars(t *testing.T) {
	base := &Config{ClassNames: []string{"A"}, Layout: "dwindle", AltTab: "loose"}
	user := &Config{ClassNames: []string{"B"}, Layout: "monocle"}

	got := Merge(base, user)
	if strings.Join(got.ClassNames, ",") != "A,B" {
		t.Errorf("class names = %v, want [A B]", got.ClassNames)
	}
	if got.Layout != "monocle" {
		t.Errorf("layout = %q, want monocle", got.Layout)
	}
	if got.AltTab != "loose" {
		t.Errorf("alt_tab = %q, want loose", got.AltTab)
	}
	if len(base.ClassNames) != 1 {
		t.Error("Merge mutated base")
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"layout", Config{Layout: "grid"}},
		{"alt tab", Config{AltTab: "sometimes"}},
		{"empty class", Config{ClassNames: []string{"ok", ""}}},
		{"empty title", Config{Titles: []string{""}}},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestLoad_MergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("layout: focus\nprocess_names: [game.exe]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LayoutMode() != model.Focus {
		t.Errorf("layout = %s, want focus", cfg.LayoutMode())
	}
	last := cfg.ProcessNames[len(cfg.ProcessNames)-1]
	if last != "game.exe" {
		t.Errorf("user process name not appended last: %v", cfg.ProcessNames)
	}
	if len(cfg.ProcessNames) < 2 {
		t.Errorf("defaults dropped: %v", cfg.ProcessNames)
	}
}

func TestLoad_InvalidUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`layout = "spiral"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestEnsureUserFile_CreatesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := EnsureUserFile(path); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if cfg.Layout != "" || len(cfg.ClassNames) != 0 {
		t.Errorf("template should be all comments, got %+v", cfg)
	}
	// Second call leaves the file alone.
	if err := os.WriteFile(path, []byte("layout: columns\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureUserFile(path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "layout: columns\n" {
		t.Errorf("existing file overwritten: %q", data)
	}
}
