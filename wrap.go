package grimbound

import (
	"strings"

	"github.com/gogpu/gg/text"
)

// Measurer measures text at a fixed font and size. text.Face satisfies it;
// tests substitute deterministic fake metrics.
type Measurer interface {
	Advance(text string) float64
	Metrics() text.Metrics
}

// Line is one wrapped line, positioned by its vertical center.
type Line struct {
	Text  string
	Y     float64
	Width float64
}

// TextLayout is the output of LayoutCircleText: the wrapped lines, the
// vertical advance between them, and the total occupied height. Both the
// ability-text renderer and the icon-sizing step consume it.
type TextLayout struct {
	Lines []Line

	// LineStep is the vertical advance between line centers.
	LineStep float64

	// Top is the upper edge of the occupied block.
	Top float64

	// TotalHeight is LineStep * len(Lines).
	TotalHeight float64
}

// Bottom returns the lower edge of the occupied block.
func (l TextLayout) Bottom() float64 { return l.Top + l.TotalHeight }

// Empty reports whether the layout holds no lines.
func (l TextLayout) Empty() bool { return len(l.Lines) == 0 }

// LayoutCircleText greedily wraps s inside a circle of the given diameter.
// The first line's vertical center sits at startY; each following line
// advances by lineHeight*fontSize. Every line's allowed width is the chord at
// its own vertical center times paddingRatio, so lines shrink as the block
// moves away from the circle's widest point.
//
// A single word wider than the available width is kept alone on its line;
// words are never split at character level.
func LayoutCircleText(s string, m Measurer, diameter, fontSize, lineHeight, startY, paddingRatio float64) TextLayout {
	step := lineHeight * fontSize
	layout := TextLayout{
		LineStep: step,
		Top:      startY - step/2,
	}

	words := strings.Fields(s)
	if len(words) == 0 || m == nil {
		return layout
	}

	y := startY
	i := 0
	for i < len(words) {
		allowed := 2 * MaxHalfWidth(diameter, y) * paddingRatio

		// First word is unconditional: an unsplittable word wider than
		// the chord still occupies the line.
		line := words[i]
		i++
		for i < len(words) {
			candidate := line + " " + words[i]
			if m.Advance(candidate) > allowed {
				break
			}
			line = candidate
			i++
		}

		layout.Lines = append(layout.Lines, Line{
			Text:  line,
			Y:     y,
			Width: m.Advance(line),
		})
		y += step
	}

	layout.TotalHeight = step * float64(len(layout.Lines))
	return layout
}

// IconBand computes the dynamic icon size and vertical center for a character
// token. The icon fills bandRatio of the free vertical band between the
// bottom of the ability block and nameTop (the upper edge of the curved
// name). With no ability text the band runs from topMargin instead. The size
// is additionally capped by the chord at the icon's center so the icon stays
// inside the circle.
func IconBand(l TextLayout, diameter, nameTop, topMargin, bandRatio float64) (size, centerY float64) {
	bandTop := topMargin
	if !l.Empty() {
		bandTop = l.Bottom()
	}
	band := nameTop - bandTop
	if band <= 0 {
		return 0, nameTop
	}
	centerY = bandTop + band/2
	size = band * bandRatio
	if chord := 2 * MaxHalfWidth(diameter, centerY) * 0.95; size > chord {
		size = chord
	}
	return size, centerY
}
