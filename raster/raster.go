// Package raster draws a Simulation's current state to a PNG frame. It
// replaces the out-of-scope Cairo-based renderer the original
// implementation used (original_source/main.cpp: paint a white background,
// draw each body, write a PNG) — re-expressed with the standard library's
// image/draw plus golang.org/x/image/font, instead of Cairo.
//
// golang.org/x/image is a direct dependency of both gazed-vu and
// g3n-engine in the retrieval pack; basicfont needs no external .ttf asset
// (unlike golang/freetype, which g3n-engine also carries — see DESIGN.md
// for why that one was not wired here).
package raster

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

	"github.com/katalvlaran/marblesim/quantity"
	"github.com/katalvlaran/marblesim/simulation"
)

// Frame rasterizes the current state of s into a width x height RGBA
// image. Each marble is drawn as a filled circle; the current virtual
// time is burned into the top-left corner.
func Frame(s *simulation.Simulation, pixWidth, pixHeight int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, pixWidth, pixHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scaleX := float64(pixWidth) / s.Width()
	scaleY := float64(pixHeight) / s.Height()

	now := quantity.At(s.T())
	for _, m := range s.Marbles() {
		x, y := m.Position(now)
		cx := x.F() * scaleX
		// Flip Y: simulation Y grows upward, image Y grows downward.
		cy := float64(pixHeight) - y.F()*scaleY
		r := m.Radius().F() * (scaleX+scaleY) / 2
		drawCircle(img, cx, cy, r, color.Black)
	}

	drawLabel(img, fmt.Sprintf("t=%.3f", s.T()), 4, 12)
	return img
}

// WritePNG renders s and writes the PNG-encoded frame to w.
func WritePNG(w io.Writer, s *simulation.Simulation, pixWidth, pixHeight int) error {
	return png.Encode(w, Frame(s, pixWidth, pixHeight))
}

func drawCircle(img *image.RGBA, cx, cy, r float64, c color.Color) {
	minX, maxX := int(cx-r), int(cx+r)
	minY, maxY := int(cy-r), int(cy+r)
	bounds := img.Bounds()
	for px := minX; px <= maxX; px++ {
		if px < bounds.Min.X || px >= bounds.Max.X {
			continue
		}
		for py := minY; py <= maxY; py++ {
			if py < bounds.Min.Y || py >= bounds.Max.Y {
				continue
			}
			dx, dy := float64(px)-cx, float64(py)-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(px, py, c)
			}
		}
	}
}

func drawLabel(img *image.RGBA, label string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}
