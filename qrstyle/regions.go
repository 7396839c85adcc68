package qrstyle

// Region is one of the three structural areas a QR module can belong to.
type Region int

const (
	// RegionData covers timing, alignment, format and payload modules —
	// everything outside the three finder patterns.
	RegionData Region = iota

	// RegionFinderRing is the 7x7 corner pattern minus its 3x3 center.
	RegionFinderRing

	// RegionFinderDot is the 3x3 center of a corner pattern.
	RegionFinderDot
)

// finderSize is the edge length of a finder pattern in modules.
const finderSize = 7

// Classify returns the region of module (x, y) in an n×n matrix. The three
// finder patterns sit at the top-left, top-right and bottom-left corners.
func Classify(x, y, n int) Region {
	corners := [3][2]int{
		{0, 0},
		{n - finderSize, 0},
		{0, n - finderSize},
	}
	for _, c := range corners {
		dx, dy := x-c[0], y-c[1]
		if dx < 0 || dy < 0 || dx >= finderSize || dy >= finderSize {
			continue
		}
		if dx >= 2 && dx <= 4 && dy >= 2 && dy <= 4 {
			return RegionFinderDot
		}
		return RegionFinderRing
	}
	return RegionData
}

func (o *Options) regionStyle(r Region) RegionStyle {
	switch r {
	case RegionFinderRing:
		return o.FinderRing
	case RegionFinderDot:
		return o.FinderDot
	default:
		return o.Data
	}
}
