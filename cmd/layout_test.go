package cmd

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestLayoutCommand_Flags(t *testing.T) {
	flags := layoutCmd.Flags()

	tests := []struct {
		name     string
		flagType string
		def      string
	}{
		{"mode", "string", "dwindle"},
		{"count", "int", "1"},
		{"area", "string", "0,0,1920,1080"},
		{"png", "string", ""},
		{"scale", "float64", "0.25"},
	}

	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
		if f.DefValue != tt.def {
			t.Errorf("flag %q: default %q, want %q", tt.name, f.DefValue, tt.def)
		}
	}
}

func TestRunLayout_RendersPNG(t *testing.T) {
	flags := layoutCmd.Flags()
	defer func() {
		flags.Set("mode", "dwindle")
		flags.Set("count", "1")
		flags.Set("png", "")
		flags.Set("scale", "0.25")
	}()

	path := filepath.Join(t.TempDir(), "columns.png")
	flags.Set("mode", "columns")
	flags.Set("count", "3")
	flags.Set("png", path)
	flags.Set("scale", "0.5")
	if err := runLayout(layoutCmd, nil); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 960 || b.Dy() != 540 {
		t.Errorf("image size = %dx%d, want 960x540", b.Dx(), b.Dy())
	}
}

func TestRunLayout_RejectsBadInput(t *testing.T) {
	flags := layoutCmd.Flags()
	defer func() {
		flags.Set("mode", "dwindle")
		flags.Set("count", "1")
		flags.Set("area", "0,0,1920,1080")
		flags.Set("png", "")
		flags.Set("scale", "0.25")
	}()

	tests := []struct {
		flag, value string
	}{
		{"mode", "spiral"},
		{"count", "-1"},
		{"count", "257"},
		{"area", "0,0,1920"},
	}
	for _, tt := range tests {
		flags.Set("mode", "dwindle")
		flags.Set("count", "1")
		flags.Set("area", "0,0,1920,1080")
		flags.Set(tt.flag, tt.value)
		if err := runLayout(layoutCmd, nil); err == nil {
			t.Errorf("--%s %s: expected an error", tt.flag, tt.value)
		}
	}

	flags.Set("area", "0,0,1920,1080")
	flags.Set("png", filepath.Join(t.TempDir(), "x.png"))
	flags.Set("scale", "2")
	if err := runLayout(layoutCmd, nil); err == nil {
		t.Error("--scale 2: expected an error")
	}
}
