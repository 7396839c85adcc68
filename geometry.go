package grimbound

import "math"

// MaxHalfWidth returns the maximum horizontal half-width available inside a
// circle of the given diameter, at a horizontal line whose vertical center is
// yFromTop pixels below the circle's top edge. The circle is centered at
// (diameter/2, diameter/2).
//
// This is the half-chord formula: sqrt(r² - (y-r)²). Lines outside the circle
// return 0, which forces callers that wrap text to break immediately.
//
// Every wrapping and sizing computation in this package goes through
// MaxHalfWidth; it is the single source of truth for "how wide can this be".
func MaxHalfWidth(diameter, yFromTop float64) float64 {
	r := diameter / 2
	dy := yFromTop - r
	if math.Abs(dy) > r {
		return 0
	}
	return math.Sqrt(r*r - dy*dy)
}

// arcPointTop returns the point at angle theta along the upper half of a
// circle. theta is measured from the top of the circle (12 o'clock), positive
// clockwise, in radians.
func arcPointTop(cx, cy, radius, theta float64) (x, y float64) {
	return cx + radius*math.Sin(theta), cy - radius*math.Cos(theta)
}

// arcPointBottom returns the point at angle theta along the lower half of a
// circle. theta is measured from the bottom of the circle (6 o'clock),
// positive toward the right (counter-clockwise on screen), in radians.
func arcPointBottom(cx, cy, radius, theta float64) (x, y float64) {
	return cx + radius*math.Sin(theta), cy + radius*math.Cos(theta)
}

// slotAngles returns n angles evenly spaced across an arc span centered on the
// top of a token. span is the full angular extent in radians. A single slot
// sits exactly at the top; with more slots the first is the leftmost.
func slotAngles(n int, span float64) []float64 {
	if n <= 0 {
		return nil
	}
	angles := make([]float64, n)
	if n == 1 {
		angles[0] = 0
		return angles
	}
	step := span / float64(n-1)
	start := -span / 2
	for i := range angles {
		angles[i] = start + float64(i)*step
	}
	return angles
}
