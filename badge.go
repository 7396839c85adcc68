package grimbound

import (
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// maxDots bounds the dots badge. Past this the badge would outgrow its corner
// of the token, so higher counts fall back to arabic numerals.
const maxDots = 8

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// circledDigits are the Unicode circled numbers 1-20.
var circledDigits = []rune("①②③④⑤⑥⑦⑧⑨⑩⑪⑫⑬⑭⑮⑯⑰⑱⑲⑳")

// FormatReminderCount renders a reminder token's occurrence count in the
// configured style. Dots return an empty string because they are drawn as
// geometry, not text; counts past the dot cap fall back to arabic.
func FormatReminderCount(n int, style CountStyle) string {
	if n <= 0 {
		return ""
	}
	switch style {
	case CountRoman:
		var b strings.Builder
		for _, rv := range romanValues {
			for n >= rv.value {
				b.WriteString(rv.symbol)
				n -= rv.value
			}
		}
		return b.String()
	case CountCircled:
		if n <= len(circledDigits) {
			return string(circledDigits[n-1])
		}
		return strconv.Itoa(n)
	case CountDots:
		if n > maxDots {
			return strconv.Itoa(n)
		}
		return ""
	default:
		return strconv.Itoa(n)
	}
}

// drawCountBadge draws the occurrence badge in a reminder token's upper
// right. diameter is the token edge in pixels. face may be nil, in which
// case textual styles are skipped (the dots style still draws).
func drawCountBadge(dc *gg.Context, count int, style CountStyle, diameter float64, face text.Face, color string) {
	if count <= 1 {
		return
	}

	badgeR := diameter * 0.085
	cx := diameter * 0.82
	cy := diameter * 0.18

	if style == CountDots && count <= maxDots {
		// Per-item growth keeps dot clusters legible; maxDots caps it so
		// the badge never outgrows its corner.
		badgeR += diameter * 0.012 * float64(count-1)
		dotR := badgeR * 0.22
		dc.SetHexColor(color)
		for _, a := range slotAngles(count, 1.2) {
			x, y := arcPointTop(cx, cy, badgeR*0.55, a)
			dc.NewSubPath()
			dc.DrawCircle(x, y, dotR)
		}
		dc.Fill() //nolint:errcheck // solid fill on an open surface
		return
	}

	label := FormatReminderCount(count, style)
	if label == "" || face == nil {
		return
	}

	dc.SetHexColor(color)
	dc.SetLineWidth(diameter * 0.008)
	dc.DrawCircle(cx, cy, badgeR)
	dc.Stroke() //nolint:errcheck

	dc.SetFont(face)
	dc.SetHexColor(color)
	dc.DrawStringAnchored(label, cx, cy, 0.5, 0.35)
}
