// Package qrstyle renders QR codes with independently styled structural
// regions: data modules, the three finder rings, and the three finder dots
// each take their own shape and fill (solid color or gradient). Styling is
// purely cosmetic; the module matrix is computed first by a standard QR
// encoder and never altered, so the scanned payload is unaffected by any
// styling combination.
package qrstyle

import (
	"github.com/gogpu/gg"
	qrcode "github.com/skip2/go-qrcode"
)

// Shape selects how a single module is drawn.
type Shape int

const (
	// ShapeSquare draws the module as a plain square.
	ShapeSquare Shape = iota

	// ShapeRounded draws a rounded square.
	ShapeRounded

	// ShapeDot draws a circle inscribed in the module cell.
	ShapeDot

	// ShapeClassy rounds two opposite corners (top-left and bottom-right),
	// leaving the others sharp.
	ShapeClassy
)

// FillKind selects how a region is painted.
type FillKind int

const (
	FillSolid FillKind = iota
	FillLinear
	FillRadial
)

// ColorStop is one gradient stop. Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  string
}

// Fill paints one structural region.
type Fill struct {
	Kind FillKind

	// Color is the solid fill color (hex). Also the fallback when a
	// gradient has no stops.
	Color string

	// Stops define the gradient for FillLinear and FillRadial.
	Stops []ColorStop

	// RotationDegrees rotates a linear gradient's axis. 0 runs left to
	// right. Ignored for solid and radial fills.
	RotationDegrees float64
}

// RegionStyle is the shape and fill of one structural region.
type RegionStyle struct {
	Shape Shape
	Fill  Fill
}

// Options is the full QR styling configuration. The zero value resolves to a
// plain black-on-white square QR.
type Options struct {
	Data       RegionStyle
	FinderRing RegionStyle
	FinderDot  RegionStyle

	// Background paints a plate behind the modules. Opacity 0 resolves to
	// fully opaque; set Transparent to skip the plate entirely.
	BackgroundColor   string
	BackgroundOpacity float64
	BackgroundShape   Shape
	Transparent       bool

	// CenterSizeRatio sizes an optional center image as a fraction of the
	// QR edge. Capped at 0.35 so the knockout stays within what the
	// highest error-correction level tolerates. CenterMarginRatio adds
	// cleared padding around the image, as a fraction of the QR edge.
	CenterSizeRatio   float64
	CenterMarginRatio float64

	resolved bool
}

// maxCenterRatio bounds the center-image knockout. At 0.35 the cleared area
// is ~12% of the modules plus margin, inside the ~30% the Highest recovery
// level can reconstruct.
const maxCenterRatio = 0.35

// Resolve fills every default exactly once and returns the resolved copy.
func (o Options) Resolve() Options {
	if o.resolved {
		return o
	}
	o.Data.Fill = resolveFill(o.Data.Fill)
	o.FinderRing.Fill = resolveFill(o.FinderRing.Fill)
	o.FinderDot.Fill = resolveFill(o.FinderDot.Fill)
	if o.BackgroundColor == "" {
		o.BackgroundColor = "#ffffff"
	}
	if o.BackgroundOpacity <= 0 || o.BackgroundOpacity > 1 {
		o.BackgroundOpacity = 1
	}
	if o.CenterSizeRatio > maxCenterRatio {
		o.CenterSizeRatio = maxCenterRatio
	}
	if o.CenterSizeRatio > 0 && o.CenterMarginRatio <= 0 {
		o.CenterMarginRatio = 0.02
	}
	if o.CenterMarginRatio > 0.05 {
		o.CenterMarginRatio = 0.05
	}
	o.resolved = true
	return o
}

func resolveFill(f Fill) Fill {
	if f.Color == "" {
		f.Color = "#000000"
	}
	return f
}

// Matrix encodes payload and returns the module matrix without the quiet
// border. withCenter selects the Highest recovery level so a center image
// knockout stays scannable; otherwise High is used.
func Matrix(payload string, withCenter bool) ([][]bool, error) {
	level := qrcode.High
	if withCenter {
		level = qrcode.Highest
	}
	q, err := qrcode.New(payload, level)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return q.Bitmap(), nil
}

// Render generates the QR matrix for payload and draws it styled at the given
// pixel size. center, when non-nil, is composited over the middle with the
// modules beneath it left undrawn. The returned surface has the full size
// including the styled background plate.
func Render(payload string, size int, opts Options, center *gg.ImageBuf) (*gg.ImageBuf, error) {
	opts = opts.Resolve()

	matrix, err := Matrix(payload, center != nil && opts.CenterSizeRatio > 0)
	if err != nil {
		return nil, err
	}
	n := len(matrix)

	dc := gg.NewContext(size, size)
	fsize := float64(size)

	if !opts.Transparent {
		drawPlate(dc, fsize, opts)
	}

	// Quiet zone: modules render inside a margin of two module widths.
	module := fsize / float64(n+4)
	origin := 2 * module

	// The knockout is keyed on the image, not the ratio: clearing modules
	// with nothing composited over them would corrupt the payload.
	var knockout *knockoutRect
	if center != nil {
		knockout = centerKnockout(fsize, opts)
	}

	for _, region := range []Region{RegionFinderRing, RegionFinderDot, RegionData} {
		style := opts.regionStyle(region)
		dc.ClearPath()
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if !matrix[y][x] || Classify(x, y, n) != region {
					continue
				}
				px := origin + float64(x)*module
				py := origin + float64(y)*module
				if knockout != nil && knockout.contains(px, py, module) {
					continue
				}
				addModulePath(dc, px, py, module, style.Shape)
			}
		}
		setFillStyle(dc, style.Fill, fsize)
		if err := dc.Fill(); err != nil {
			return nil, err
		}
	}

	if center != nil && knockout != nil {
		drawCenter(dc, center, knockout)
	}

	return gg.ImageBufFromImage(dc.Image()), nil
}

func drawPlate(dc *gg.Context, size float64, opts Options) {
	dc.ClearPath()
	switch opts.BackgroundShape {
	case ShapeRounded, ShapeClassy:
		dc.DrawRoundedRectangle(0, 0, size, size, size*0.08)
	case ShapeDot:
		dc.DrawCircle(size/2, size/2, size/2)
	default:
		dc.DrawRectangle(0, 0, size, size)
	}
	c := gg.SolidHex(opts.BackgroundColor).WithAlpha(opts.BackgroundOpacity)
	dc.SetFillBrush(c)
	dc.Fill() //nolint:errcheck // plate fill cannot fail on a fresh context
}

// knockoutRect is the cleared area beneath the center image, in pixels.
type knockoutRect struct {
	x, y, w, h float64
	margin     float64
}

func (k *knockoutRect) contains(px, py, module float64) bool {
	m := k.margin
	return px+module > k.x-m && px < k.x+k.w+m &&
		py+module > k.y-m && py < k.y+k.h+m
}

func centerKnockout(size float64, opts Options) *knockoutRect {
	if opts.CenterSizeRatio <= 0 {
		return nil
	}
	w := size * opts.CenterSizeRatio
	return &knockoutRect{
		x:      (size - w) / 2,
		y:      (size - w) / 2,
		w:      w,
		h:      w,
		margin: size * opts.CenterMarginRatio,
	}
}

func drawCenter(dc *gg.Context, img *gg.ImageBuf, k *knockoutRect) {
	dc.DrawImageEx(img, gg.DrawImageOptions{
		X:             k.x,
		Y:             k.y,
		DstWidth:      k.w,
		DstHeight:     k.h,
		Interpolation: gg.InterpBicubic,
	})
}
