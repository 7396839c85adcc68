package qrstyle

import (
	"reflect"
	"testing"

	"github.com/gogpu/gg"
	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

// decodePayload scans a rendered code back with an independent decoder.
func decodePayload(t *testing.T, img *gg.ImageBuf) string {
	t.Helper()
	bmp, err := gozxing.NewBinaryBitmapFromImage(img.ToStdImage())
	if err != nil {
		t.Fatalf("bitmap: %v", err)
	}
	res, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return res.GetText()
}

// darkPixels counts opaque dark pixels inside [x0,x1) x [y0,y1).
func darkPixels(img *gg.ImageBuf, x0, y0, x1, y1 int) int {
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, g, b, a := img.GetRGBA(x, y)
			if a > 0 && int(r)+int(g)+int(b) < 384 {
				n++
			}
		}
	}
	return n
}

func TestClassify(t *testing.T) {
	const n = 25
	tests := []struct {
		x, y int
		want Region
	}{
		{0, 0, RegionFinderRing},
		{6, 6, RegionFinderRing},
		{3, 3, RegionFinderDot},
		{2, 4, RegionFinderDot},
		{7, 0, RegionData},
		{0, 7, RegionData},
		{12, 12, RegionData},
		{n - 1, 0, RegionFinderRing},
		{n - 4, 3, RegionFinderDot},
		{0, n - 1, RegionFinderRing},
		{3, n - 4, RegionFinderDot},
		{n - 1, n - 1, RegionData}, // no finder in the bottom-right corner
	}
	for _, tt := range tests {
		if got := Classify(tt.x, tt.y, n); got != tt.want {
			t.Errorf("Classify(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestResolveDefaults(t *testing.T) {
	o := Options{}.Resolve()
	if o.Data.Fill.Color != "#000000" {
		t.Errorf("data color = %q", o.Data.Fill.Color)
	}
	if o.FinderRing.Fill.Color != "#000000" || o.FinderDot.Fill.Color != "#000000" {
		t.Error("finder colors not defaulted")
	}
	if o.BackgroundColor != "#ffffff" {
		t.Errorf("background = %q", o.BackgroundColor)
	}
	if o.BackgroundOpacity != 1 {
		t.Errorf("opacity = %v", o.BackgroundOpacity)
	}
}

func TestResolveIdempotent(t *testing.T) {
	once := Options{Data: RegionStyle{Fill: Fill{Color: "#112233"}}}.Resolve()
	twice := once.Resolve()
	if !reflect.DeepEqual(once, twice) {
		t.Error("second Resolve changed the options")
	}
}

func TestResolveCapsCenterRatio(t *testing.T) {
	o := Options{CenterSizeRatio: 0.9}.Resolve()
	if o.CenterSizeRatio != maxCenterRatio {
		t.Errorf("center ratio = %v, want %v", o.CenterSizeRatio, maxCenterRatio)
	}
	if o.CenterMarginRatio <= 0 {
		t.Error("margin not defaulted for center image")
	}

	o = Options{CenterSizeRatio: 0.2, CenterMarginRatio: 0.4}.Resolve()
	if o.CenterMarginRatio != 0.05 {
		t.Errorf("margin = %v, want capped at 0.05", o.CenterMarginRatio)
	}
}

func TestMatrix(t *testing.T) {
	m, err := Matrix("https://example.com/almanac", false)
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	n := len(m)
	if n < 21 || n%4 != 1 {
		t.Fatalf("matrix edge %d is not a valid QR version size", n)
	}
	for y, row := range m {
		if len(row) != n {
			t.Fatalf("row %d has %d modules, want %d", y, len(row), n)
		}
	}
	// The outer corner of every finder pattern is dark.
	for _, p := range [][2]int{{0, 0}, {n - 1, 0}, {0, n - 1}} {
		if !m[p[1]][p[0]] {
			t.Errorf("finder corner (%d, %d) is light", p[0], p[1])
		}
	}
}

func TestMatrixUnaffectedByStyling(t *testing.T) {
	// Styling is cosmetic: the encoded matrix depends only on payload and
	// recovery level, never on shapes or fills.
	a, err := Matrix("payload", false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Matrix("payload", false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("matrix not deterministic for identical payloads")
	}
	c, err := Matrix("payload", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(c) < len(a) {
		t.Error("Highest recovery produced a smaller matrix than High")
	}
}

func TestRenderSize(t *testing.T) {
	img, err := Render("https://example.com", 120, Options{}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Width() != 120 || img.Height() != 120 {
		t.Errorf("surface %dx%d, want 120x120", img.Width(), img.Height())
	}
	// Opaque white plate at the corner, inside the quiet zone.
	r, g, b, a := img.GetRGBA(1, 1)
	if r != 255 || g != 255 || b != 255 || a != 255 {
		t.Errorf("quiet zone pixel = %d,%d,%d,%d, want opaque white", r, g, b, a)
	}
}

func TestRenderDecodes(t *testing.T) {
	const payload = "https://example.com/almanac"
	img, err := Render(payload, 240, Options{}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := decodePayload(t, img); got != payload {
		t.Errorf("decoded %q, want %q", got, payload)
	}
}

func TestRenderNilCenterKeepsModules(t *testing.T) {
	// A positive center ratio without a center image must not knock out
	// the middle of the code: there is nothing to composite over the gap.
	const payload = "https://example.com/almanac"
	plain, err := Render(payload, 200, Options{}, nil)
	if err != nil {
		t.Fatalf("Render plain: %v", err)
	}
	ratioOnly, err := Render(payload, 200, Options{CenterSizeRatio: 0.35}, nil)
	if err != nil {
		t.Fatalf("Render with ratio: %v", err)
	}

	a := darkPixels(plain, 50, 50, 150, 150)
	b := darkPixels(ratioOnly, 50, 50, 150, 150)
	if a == 0 {
		t.Fatal("plain render has no dark center modules")
	}
	if b != a {
		t.Errorf("center dark pixels = %d with ratio set, %d plain", b, a)
	}
	if got := decodePayload(t, ratioOnly); got != payload {
		t.Errorf("decoded %q, want %q", got, payload)
	}
}

func TestRenderTransparentBackground(t *testing.T) {
	img, err := Render("https://example.com", 120, Options{Transparent: true}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	_, _, _, a := img.GetRGBA(1, 1)
	if a != 0 {
		t.Errorf("quiet zone alpha = %d, want 0", a)
	}
}

func TestRenderShapeAndFillCombos(t *testing.T) {
	// Every shape and fill combination must still scan back to the
	// original payload: styling is cosmetic only.
	const payload = "https://example.com"
	stops := []ColorStop{{0, "#4a0a0a"}, {1, "#1a1a2e"}}
	for _, shape := range []Shape{ShapeSquare, ShapeRounded, ShapeDot, ShapeClassy} {
		for _, fill := range []Fill{
			{Kind: FillSolid, Color: "#201020"},
			{Kind: FillLinear, Stops: stops, RotationDegrees: 45},
			{Kind: FillRadial, Stops: stops},
		} {
			opts := Options{
				Data:       RegionStyle{Shape: shape, Fill: fill},
				FinderRing: RegionStyle{Shape: shape, Fill: fill},
				FinderDot:  RegionStyle{Shape: ShapeDot, Fill: fill},
			}
			img, err := Render(payload, 240, opts, nil)
			if err != nil {
				t.Errorf("Render shape=%v fill=%v: %v", shape, fill.Kind, err)
				continue
			}
			if got := decodePayload(t, img); got != payload {
				t.Errorf("shape=%v fill=%v decoded %q, want %q", shape, fill.Kind, got, payload)
			}
		}
	}
}

func TestRenderWithCenterImage(t *testing.T) {
	center := gg.NewContext(16, 16)
	center.DrawRectangle(0, 0, 16, 16)
	center.SetHexColor("#ff0000")
	if err := center.Fill(); err != nil {
		t.Fatal(err)
	}
	buf := gg.ImageBufFromImage(center.Image())

	const payload = "https://example.com/almanac"
	opts := Options{CenterSizeRatio: 0.3}
	img, err := Render(payload, 240, opts, buf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// The composited center image covers the middle of the code.
	r, _, _, a := img.GetRGBA(120, 120)
	if r != 255 || a != 255 {
		t.Errorf("center pixel = r%d a%d, want opaque red", r, a)
	}
	// The knockout stays inside what the Highest recovery level can
	// reconstruct, so the payload still scans.
	if got := decodePayload(t, img); got != payload {
		t.Errorf("decoded %q, want %q", got, payload)
	}
}
