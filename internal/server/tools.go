package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/tilewm/internal/layout"
	"github.com/mj1618/tilewm/internal/model"
	"github.com/mj1618/tilewm/internal/preview"
)

func (s *Server) registerTools() {
	// status
	s.mcp.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Show the active layout, working area, managed windows in tiling order, and the tiles of the last arrangement"),
		),
		s.handleStatus,
	)

	// set_layout
	s.mcp.AddTool(
		mcp.NewTool("set_layout",
			mcp.WithDescription("Switch the active layout and re-tile. Use 'next' to cycle."),
			mcp.WithString("mode",
				mcp.Description("Layout: "+strings.Join(modeNames(), ", ")+", or next"),
				mcp.Required(),
			),
		),
		s.handleSetLayout,
	)

	// arrange
	s.mcp.AddTool(
		mcp.NewTool("arrange",
			mcp.WithDescription("Re-apply the active layout to the managed windows"),
		),
		s.handleArrange,
	)

	// preview
	s.mcp.AddTool(
		mcp.NewTool("preview",
			mcp.WithDescription("Render the tiling as a PNG. Without arguments shows the last arrangement; with mode/count shows what that layout would produce on the current working area."),
			mcp.WithString("mode", mcp.Description("Layout to preview instead of the current tiling")),
			mcp.WithNumber("count", mcp.Description("Number of windows to preview, at most 256 (default: managed window count)")),
			mcp.WithNumber("scale", mcp.Description("Image scale 0.05-1.0 (default: 0.25)")),
		),
		s.handlePreview,
	)
}

func modeNames() []string {
	modes := model.LayoutModes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return names
}

func (s *Server) handleStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(s.ctrl.State())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleSetLayout(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	name := stringParam(params, "mode", "")

	var mode model.LayoutMode
	if strings.EqualFold(strings.TrimSpace(name), "next") {
		mode = s.ctrl.State().Layout.Next()
	} else {
		m, err := model.ParseLayoutMode(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		mode = m
	}

	if err := s.ctrl.Post(model.Notification{Kind: model.LayoutSwitch, Layout: mode}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("queue layout switch: %v", err)), nil
	}
	s.cache.InvalidateAll()
	s.logger.Info("layout requested", "mode", mode)
	return mcp.NewToolResultText(fmt.Sprintf("ok: true\nlayout: %s\n", mode)), nil
}

func (s *Server) handleArrange(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.ctrl.Post(model.Notification{Kind: model.Arrange}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("queue arrange: %v", err)), nil
	}
	s.cache.InvalidateAll()
	return mcp.NewToolResultText("ok: true\n"), nil
}

func (s *Server) handlePreview(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	st := s.ctrl.State()
	scale := floatParam(params, "scale", preview.DefaultScale)
	if scale < 0.05 || scale > 1 {
		return mcp.NewToolResultError("scale must be between 0.05 and 1.0"), nil
	}

	key := previewKey{Layout: st.Layout, Area: st.WorkingArea, Scale: scale}
	var tiles []model.Rect
	var labels []string

	if name := stringParam(params, "mode", ""); name != "" {
		mode, err := model.ParseLayoutMode(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		count := intParam(params, "count", len(st.Placements))
		if count < 0 || count > layout.MaxCount {
			return mcp.NewToolResultError(fmt.Sprintf("count must be between 0 and %d", layout.MaxCount)), nil
		}
		tiles = layout.Arrange(mode, st.WorkingArea, count)
		key.Layout, key.Count = mode, count
	} else {
		for _, p := range st.Placements {
			tiles = append(tiles, p.Tile)
			labels = append(labels, p.Handle.String())
		}
		key.Count = len(tiles)
		key.Labels = strings.Join(labels, ",")
	}

	data, err := s.cache.Get(key, func() ([]byte, error) {
		var buf bytes.Buffer
		img := preview.Render(st.WorkingArea, tiles, labels, scale)
		if err := preview.EncodePNG(&buf, img); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("layout: %s\ntiles: %d\n", key.Layout, len(tiles))
	return mcp.NewToolResultImage(text, base64.StdEncoding.EncodeToString(data), "image/png"), nil
}
