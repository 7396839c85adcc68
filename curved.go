package grimbound

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// ArcPosition selects which half of the circle curved text follows.
type ArcPosition int

const (
	// ArcTop places text along the upper arc, reading left to right with
	// glyph tops facing outward.
	ArcTop ArcPosition = iota

	// ArcBottom places text along the lower arc. Glyph rotation is
	// mirrored so the text still reads left to right, with glyph tops
	// facing the circle center.
	ArcBottom
)

// glyphArc is one glyph's center angle relative to the arc midpoint.
type glyphArc struct {
	s     string
	theta float64
}

// curvedLayout distributes the glyphs of s along an arc of the given radius.
// Each glyph subtends an angle proportional to its individually measured
// advance plus letterSpacing, so the total arc length matches the total text
// width; the run is centered on the arc midpoint. No monospace assumption.
func curvedLayout(s string, m Measurer, radius, letterSpacing float64) []glyphArc {
	if m == nil || radius <= 0 {
		return nil
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}

	advances := make([]float64, len(runes))
	total := 0.0
	for i, r := range runes {
		advances[i] = m.Advance(string(r))
		total += advances[i]
	}
	total += letterSpacing * float64(len(runes)-1)

	placements := make([]glyphArc, 0, len(runes))
	pos := -total / 2
	for i, r := range runes {
		center := pos + advances[i]/2
		placements = append(placements, glyphArc{
			s:     string(r),
			theta: center / radius,
		})
		pos += advances[i] + letterSpacing
	}
	return placements
}

// DrawCurved draws s along a circular arc of the given radius around
// (cx, cy). face provides both measurement and rendering; color is a hex
// color. letterSpacing is extra advance between glyphs in pixels. shadow,
// when positive, draws a soft dark halo behind each glyph with roughly that
// blur radius in pixels.
//
// Callers are responsible for any required upper-casing before the call.
func DrawCurved(dc *gg.Context, face text.Face, s string, cx, cy, radius float64, pos ArcPosition, color string, letterSpacing, shadow float64) {
	if face == nil || s == "" {
		return
	}
	placements := curvedLayout(s, face, radius, letterSpacing)
	dc.SetFont(face)

	if shadow > 0 {
		offsets := [...][2]float64{
			{-shadow / 2, 0}, {shadow / 2, 0}, {0, -shadow / 2}, {0, shadow / 2},
		}
		for _, off := range offsets {
			drawArcRun(dc, placements, cx+off[0], cy+off[1], radius, pos, gg.RGBA2(0, 0, 0, 0.16))
		}
	}
	drawArcRun(dc, placements, cx, cy, radius, pos, gg.Hex(color))
}

func drawArcRun(dc *gg.Context, placements []glyphArc, cx, cy, radius float64, pos ArcPosition, col gg.RGBA) {
	dc.SetColor(col.Color())
	for _, g := range placements {
		var x, y, rot float64
		if pos == ArcBottom {
			x, y = arcPointBottom(cx, cy, radius, g.theta)
			rot = -g.theta
		} else {
			x, y = arcPointTop(cx, cy, radius, g.theta)
			rot = g.theta
		}
		dc.Push()
		dc.RotateAbout(rot, x, y)
		dc.DrawStringAnchored(g.s, x, y, 0.5, 0.5)
		dc.Pop()
	}
}
