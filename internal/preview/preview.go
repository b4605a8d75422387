// Package preview renders a tiling as an image: one outlined, tinted box per
// tile with a centered label. The layout command and the MCP preview tool use
// it to show a layout without moving any window.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/tilewm/internal/model"
)

// DefaultScale shrinks a full-resolution working area to a thumbnail.
const DefaultScale = 0.25

var (
	background   = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	boxColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	fills        = []color.NRGBA{
		{R: 66, G: 133, B: 244, A: 255},
		{R: 219, G: 68, B: 55, A: 255},
		{R: 244, G: 180, B: 0, A: 255},
		{R: 15, G: 157, B: 88, A: 255},
		{R: 171, G: 71, B: 188, A: 255},
		{R: 0, G: 172, B: 193, A: 255},
	}
)

// Render draws tiles, given in screen coordinates inside area, onto an image
// of area's size multiplied by scale. labels[i] is drawn on tiles[i]; a
// missing label defaults to the tile index. A scale <= 0 means DefaultScale.
func Render(area model.Rect, tiles []model.Rect, labels []string, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = DefaultScale
	}
	w := max(1, int(float64(area.Width)*scale))
	h := max(1, int(float64(area.Height)*scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for i, t := range tiles {
		x1 := int(float64(t.Left-area.Left) * scale)
		y1 := int(float64(t.Top-area.Top) * scale)
		x2 := int(float64(t.Right()-area.Left) * scale)
		y2 := int(float64(t.Bottom()-area.Top) * scale)

		fill := fills[i%len(fills)]
		fill.A = 96
		draw.Draw(img, image.Rect(x1+1, y1+1, x2-1, y2-1).Intersect(img.Bounds()), image.NewUniform(fill), image.Point{}, draw.Over)
		drawRectangle(img, x1, y1, x2, y2, boxColor)

		label := fmt.Sprintf("[%d]", i)
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}
		drawTextWithOutline(img, label, (x1+x2)/2, (y1+y2)/2, textColor, outlineColor)
	}
	return img
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

// drawRectangle draws a rectangle outline on the image
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	r := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawTextWithOutline centers text on (x, y) with a one-pixel outline.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	// basicfont.Face7x13: 7px advance, 13px line height, dot on the baseline.
	offsetX := x - len(text)*7/2
	offsetY := y + 13/2 - 2

	stamp := func(dx, dy int, c color.Color) {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(offsetX+dx, offsetY+dy),
		}
		d.DrawString(text)
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx != 0 || dy != 0 {
				stamp(dx, dy, outlineColor)
			}
		}
	}
	stamp(0, 0, textColor)
}
