package qrstyle

import (
	"math"

	"github.com/gogpu/gg"
)

// Shape inset factors keep adjacent styled modules from visually fusing.
const (
	dotInset      = 0.06
	roundedRadius = 0.32
)

// addModulePath appends one module's outline at (x, y) with the given edge
// size to the context's current path. Fill happens once per region so
// gradients span the whole code, not individual modules.
func addModulePath(dc *gg.Context, x, y, size float64, shape Shape) {
	switch shape {
	case ShapeRounded:
		dc.NewSubPath()
		dc.DrawRoundedRectangle(x, y, size, size, size*roundedRadius)
	case ShapeDot:
		r := size/2 - size*dotInset
		dc.NewSubPath()
		dc.DrawCircle(x+size/2, y+size/2, r)
	case ShapeClassy:
		addClassyPath(dc, x, y, size)
	default:
		dc.NewSubPath()
		dc.DrawRectangle(x, y, size, size)
	}
}

// addClassyPath draws a square with the top-left and bottom-right corners
// rounded, giving the leaf-like module used by styled QR generators.
func addClassyPath(dc *gg.Context, x, y, size float64) {
	r := size * roundedRadius
	dc.NewSubPath()
	dc.MoveTo(x+r, y)
	dc.LineTo(x+size, y)
	dc.LineTo(x+size, y+size-r)
	dc.QuadraticTo(x+size, y+size, x+size-r, y+size)
	dc.LineTo(x, y+size)
	dc.LineTo(x, y+r)
	dc.QuadraticTo(x, y, x+r, y)
	dc.ClosePath()
}

// setFillStyle installs the region's brush on the context. Gradients are
// defined over the full code area so the color sweep is continuous across
// modules.
func setFillStyle(dc *gg.Context, f Fill, size float64) {
	switch f.Kind {
	case FillLinear:
		if len(f.Stops) == 0 {
			dc.SetFillBrush(gg.SolidHex(f.Color))
			return
		}
		theta := f.RotationDegrees * math.Pi / 180
		half := size / 2
		dx, dy := math.Cos(theta)*half, math.Sin(theta)*half
		b := gg.NewLinearGradientBrush(half-dx, half-dy, half+dx, half+dy)
		for _, s := range f.Stops {
			b.AddColorStop(s.Offset, gg.Hex(s.Color))
		}
		dc.SetFillBrush(b)
	case FillRadial:
		if len(f.Stops) == 0 {
			dc.SetFillBrush(gg.SolidHex(f.Color))
			return
		}
		b := gg.NewRadialGradientBrush(size/2, size/2, 0, size/2)
		for _, s := range f.Stops {
			b.AddColorStop(s.Offset, gg.Hex(s.Color))
		}
		dc.SetFillBrush(b)
	default:
		dc.SetFillBrush(gg.SolidHex(f.Color))
	}
}
