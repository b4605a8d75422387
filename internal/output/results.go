package output

import (
	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/wm"
)

// ListResult is the top-level output of the `list` command.
type ListResult struct {
	TS      int64              `yaml:"ts"      json:"ts"`
	Windows []model.WindowInfo `yaml:"windows" json:"windows"`
}

// LayoutResult is the output of the `layout` command.
type LayoutResult struct {
	Layout model.LayoutMode `yaml:"layout"          json:"layout"`
	Area   model.Rect       `yaml:"area"            json:"area"`
	Tiles  []model.Rect     `yaml:"tiles"           json:"tiles"`
	PNG    string           `yaml:"png,omitempty"   json:"png,omitempty"`
}

// SimulateResult is the output of the `simulate` command.
type SimulateResult struct {
	Steps    int      `yaml:"steps"    json:"steps"`
	Handled  int      `yaml:"handled"  json:"handled"`
	State    wm.State `yaml:"state"    json:"state"`
	Batches  int      `yaml:"batches"  json:"batches"`
	Forwards int      `yaml:"forwards,omitempty" json:"forwards,omitempty"`
}
