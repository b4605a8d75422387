// Package config loads the tiler's exclusion lists and default layout.
//
// A built-in default is embedded in the binary; the user's file (YAML, or TOML
// when the path ends in .toml) is merged on top of it once at startup.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/tilewm/internal/model"
)

//go:embed default.yaml
var defaultYAML []byte

// CoreWindowClass is the class name shared by shell surfaces and UWP apps.
const CoreWindowClass = "Windows.UI.Core.CoreWindow"

// Alt-tab policies decide which windows count as alt-tab style top-level windows.
const (
	// AltTabLoose accepts a window without the tool-window style, or a tool
	// window that has no owner.
	AltTabLoose = "loose"
	// AltTabStrict accepts only unowned windows without the tool-window style.
	AltTabStrict = "strict"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds exclusion lists and the default layout. Every list entry is a
// substring; an entry matches when it occurs anywhere in the window attribute.
type Config struct {
	CoreWindowTitles []string `yaml:"Windows.UI.Core.CoreWindow,omitempty" toml:"Windows.UI.Core.CoreWindow" json:"Windows.UI.Core.CoreWindow,omitempty" validate:"dive,required"`
	ClassNames       []string `yaml:"class_names,omitempty"                toml:"class_names"                json:"class_names,omitempty"                validate:"dive,required"`
	ProcessNames     []string `yaml:"process_names,omitempty"              toml:"process_names"              json:"process_names,omitempty"              validate:"dive,required"`
	Titles           []string `yaml:"titles,omitempty"                     toml:"titles"                     json:"titles,omitempty"                     validate:"dive,required"`
	Layout           string   `yaml:"layout,omitempty"                     toml:"layout"                     json:"layout,omitempty"                     validate:"omitempty,oneof=dwindle monocle columns focus"`
	AltTab           string   `yaml:"alt_tab,omitempty"                    toml:"alt_tab"                    json:"alt_tab,omitempty"                    validate:"omitempty,oneof=loose strict"`
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	return Parse(defaultYAML, "yaml")
}

// Parse decodes data as "yaml" or "toml".
func Parse(data []byte, format string) (*Config, error) {
	cfg := &Config{}
	switch format {
	case "toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return nil, fmt.Errorf("toml decode: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("yaml decode: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s (use yaml or toml)", format)
	}
	return cfg, nil
}

// LoadFile reads a single config file. The format follows the extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}

// DefaultUserPath returns <user config dir>/tilewm/config.yaml.
func DefaultUserPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "tilewm", "config.yaml"), nil
}

const userTemplate = `# tilewm user configuration. Entries here are appended to the built-in
# exclusion lists; layout and alt_tab replace the built-in values.
#
# layout: dwindle        # dwindle | monocle | columns | focus
# alt_tab: loose         # loose | strict
# class_names: []
# process_names: []
# titles: []
`

// EnsureUserFile creates path with a commented template if it does not exist.
func EnsureUserFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(userTemplate), 0o644); err != nil {
		return fmt.Errorf("write config template: %w", err)
	}
	return nil
}

// Load returns the embedded defaults merged with the user file at path. An
// empty path means DefaultUserPath, which is created from a template when
// missing. The result is validated.
func Load(path string) (*Config, error) {
	base, err := Default()
	if err != nil {
		return nil, fmt.Errorf("default config: %w", err)
	}
	if path == "" {
		if path, err = DefaultUserPath(); err != nil {
			return nil, err
		}
		if err := EnsureUserFile(path); err != nil {
			return nil, err
		}
	}
	user, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("user config: %w", err)
	}
	merged := Merge(base, user)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Merge returns base overlaid with override: lists are concatenated with
// base entries first, non-empty scalars in override win.
func Merge(base, override *Config) *Config {
	out := &Config{
		CoreWindowTitles: mergeLists(base.CoreWindowTitles, override.CoreWindowTitles),
		ClassNames:       mergeLists(base.ClassNames, override.ClassNames),
		ProcessNames:     mergeLists(base.ProcessNames, override.ProcessNames),
		Titles:           mergeLists(base.Titles, override.Titles),
		Layout:           base.Layout,
		AltTab:           base.AltTab,
	}
	if override.Layout != "" {
		out.Layout = override.Layout
	}
	if override.AltTab != "" {
		out.AltTab = override.AltTab
	}
	return out
}

func mergeLists(a, b []string) []string {
	if a == nil && b == nil {
		return nil
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

var validate = validator.New()

// Validate checks field constraints. An empty exclusion entry is rejected
// because it would match every window.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LayoutMode returns the configured default layout, Dwindle when unset.
func (c *Config) LayoutMode() model.LayoutMode {
	if c == nil || c.Layout == "" {
		return model.Dwindle
	}
	m, err := model.ParseLayoutMode(c.Layout)
	if err != nil {
		return model.Dwindle
	}
	return m
}

// StrictAltTab reports whether the strict alt-tab policy is set.
func (c *Config) StrictAltTab() bool {
	return c != nil && c.AltTab == AltTabStrict
}
