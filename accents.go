package grimbound

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/gogpu/gg"
)

// AccentEngine decides how many decorative accents a token gets and where.
// Two independent stochastic sources combine: evenly spaced candidate slots
// along the top arc, and one optional position on each side. The engine holds
// only configuration and its RNG; placements are drawn fresh per render. The
// RNG is guarded so overlapping renders may share one engine.
type AccentEngine struct {
	cfg AccentOptions

	mu  sync.Mutex
	rng *rand.Rand
}

// NewAccentEngine builds an engine from resolved accent options. A zero seed
// in the options draws a fresh seed so each batch scatters differently;
// setting a seed makes sheets reproducible.
func NewAccentEngine(cfg AccentOptions) *AccentEngine {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &AccentEngine{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// AccentPlacement is one render's outcome: which arc slots filled and
// whether each side position did.
type AccentPlacement struct {
	ArcSlots    []bool
	Left, Right bool
}

// Count returns the total number of placed accents.
func (p AccentPlacement) Count() int {
	n := 0
	for _, filled := range p.ArcSlots {
		if filled {
			n++
		}
	}
	if p.Left {
		n++
	}
	if p.Right {
		n++
	}
	return n
}

// Place draws a fresh placement. Arc slots are tried strictly left to right:
// each slot fills on an independent Bernoulli success while the running count
// is still below the cap, so later slots are disadvantaged once the cap is
// hit. First-come filling is a deliberate placement policy, kept as-is.
func (e *AccentEngine) Place() AccentPlacement {
	p := AccentPlacement{}
	if !e.cfg.Enabled {
		return p
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	p.ArcSlots = make([]bool, e.cfg.Slots)
	filled := 0
	for i := range p.ArcSlots {
		if filled >= e.cfg.MaxCount {
			break
		}
		if e.rng.Float64() < e.cfg.Probability {
			p.ArcSlots[i] = true
			filled++
		}
	}
	if e.cfg.LeftSide && e.rng.Float64() < e.cfg.SideProbability {
		p.Left = true
	}
	if e.cfg.RightSide && e.rng.Float64() < e.cfg.SideProbability {
		p.Right = true
	}
	return p
}

// AccentDistribution is the analytic probability table over the total accent
// count, used only for preview statistics. Rendering never consults it; each
// render is an independent draw.
type AccentDistribution struct {
	// Counts[i] is P(total accents == i).
	Counts []float64

	// Display buckets.
	Zero      float64
	OneTwo    float64
	ThreeFour float64
	FivePlus  float64
}

// Distribution computes the analytic total-count table: a binomial over the
// arc slots truncated at the cap (the mass at the cap is one minus the
// cumulative mass below it), convolved with the two-outcome side draws.
func (e *AccentEngine) Distribution() AccentDistribution {
	cfg := e.cfg
	if !cfg.Enabled {
		return AccentDistribution{Counts: []float64{1}, Zero: 1}
	}

	limit := cfg.MaxCount
	if limit > cfg.Slots {
		limit = cfg.Slots
	}

	arc := make([]float64, limit+1)
	below := 0.0
	for k := 0; k < limit; k++ {
		arc[k] = binomialPMF(cfg.Slots, k, cfg.Probability)
		below += arc[k]
	}
	arc[limit] = 1 - below

	sides := sideDistribution(cfg)

	total := make([]float64, len(arc)+len(sides)-1)
	for i, pa := range arc {
		for j, ps := range sides {
			total[i+j] += pa * ps
		}
	}

	d := AccentDistribution{Counts: total}
	for n, p := range total {
		switch {
		case n == 0:
			d.Zero += p
		case n <= 2:
			d.OneTwo += p
		case n <= 4:
			d.ThreeFour += p
		default:
			d.FivePlus += p
		}
	}
	return d
}

// sideDistribution returns P(side accents == 0, 1, 2).
func sideDistribution(cfg AccentOptions) []float64 {
	pl, pr := 0.0, 0.0
	if cfg.LeftSide {
		pl = cfg.SideProbability
	}
	if cfg.RightSide {
		pr = cfg.SideProbability
	}
	return []float64{
		(1 - pl) * (1 - pr),
		pl*(1-pr) + (1-pl)*pr,
		pl * pr,
	}
}

// binomialPMF returns C(n, k) p^k (1-p)^(n-k).
func binomialPMF(n, k int, p float64) float64 {
	if k < 0 || k > n {
		return 0
	}
	c := 1.0
	for i := 0; i < k; i++ {
		c = c * float64(n-i) / float64(i+1)
	}
	return c * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
}

// Draw renders a placement onto a token surface of the given pixel diameter
// and returns how many accents were actually drawn. Accents sit at a
// configured fraction of the token radius, which lets them bleed slightly
// past the edge; callers draw them outside the circular clip. A nil image
// skips its layer, so the return value can be lower than p.Count().
func (e *AccentEngine) Draw(dc *gg.Context, p AccentPlacement, diameter float64, arcImg, sideImg *gg.ImageBuf) int {
	cx, cy := diameter/2, diameter/2
	size := diameter * e.cfg.Scale
	drawn := 0

	if arcImg != nil {
		radius := diameter / 2 * e.cfg.RadialRatio
		span := e.cfg.ArcSpanDegrees * math.Pi / 180
		angles := slotAngles(len(p.ArcSlots), span)
		for i, filled := range p.ArcSlots {
			if !filled {
				continue
			}
			x, y := arcPointTop(cx, cy, radius, angles[i])
			drawAccentImage(dc, arcImg, x, y, angles[i], size)
			drawn++
		}
	}

	if sideImg != nil {
		radius := diameter / 2 * e.cfg.SideRadialRatio
		if p.Left {
			x, y := arcPointTop(cx, cy, radius, -math.Pi/2)
			drawAccentImage(dc, sideImg, x, y, -math.Pi/2, size)
			drawn++
		}
		if p.Right {
			x, y := arcPointTop(cx, cy, radius, math.Pi/2)
			drawAccentImage(dc, sideImg, x, y, math.Pi/2, size)
			drawn++
		}
	}
	return drawn
}

// drawAccentImage draws img centered at (x, y), rotated so its upright axis
// points away from the token center, scaled to size on its longer edge.
func drawAccentImage(dc *gg.Context, img *gg.ImageBuf, x, y, rot, size float64) {
	w, h := float64(img.Width()), float64(img.Height())
	if w <= 0 || h <= 0 {
		return
	}
	scale := size / math.Max(w, h)
	dw, dh := w*scale, h*scale

	dc.Push()
	dc.RotateAbout(rot, x, y)
	dc.DrawImageEx(img, gg.DrawImageOptions{
		X:             x - dw/2,
		Y:             y - dh/2,
		DstWidth:      dw,
		DstHeight:     dh,
		Interpolation: gg.InterpBicubic,
	})
	dc.Pop()
}
