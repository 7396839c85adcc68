package grimbound

import (
	"github.com/Phauks/Grimbound-sub004/qrstyle"
)

// BackgroundMode selects how a token class fills its circle before any other
// layer is drawn.
type BackgroundMode int

const (
	// BackgroundColor fills the circle with a flat color.
	BackgroundColor BackgroundMode = iota

	// BackgroundImage cover-crops a named background image into the circle.
	// Falls back to the flat color if the image cannot be loaded.
	BackgroundImage

	// BackgroundTransparent leaves the circle unfilled.
	BackgroundTransparent
)

// BackgroundStyle configures the background of one token class.
type BackgroundStyle struct {
	Mode BackgroundMode

	// Color is a hex color ("#rrggbb" or "#rrggbbaa") used for
	// BackgroundColor mode and as the fallback for BackgroundImage mode.
	Color string

	// Image names the background asset for BackgroundImage mode.
	Image string
}

// CountStyle selects how a reminder token's count badge renders its number.
type CountStyle int

const (
	CountArabic CountStyle = iota
	CountRoman
	CountCircled
	CountDots
)

// IconStyle configures the portrait placement for one token class.
type IconStyle struct {
	// Scale is the icon diameter as a fraction of the token diameter,
	// used when no ability text constrains the layout.
	Scale float64

	// OffsetY shifts the icon center vertically, as a fraction of the
	// token diameter. Positive moves down.
	OffsetY float64
}

// AccentOptions configures the decorative accent (leaf) placement.
type AccentOptions struct {
	Enabled bool

	// Image and SideImage name the accent assets for arc slots and for the
	// independent left/right positions.
	Image     string
	SideImage string

	// Slots is the number of candidate arc positions; MaxCount caps how
	// many of them may fill. Probability is the per-slot Bernoulli chance.
	Slots       int
	MaxCount    int
	Probability float64

	// ArcSpanDegrees is the full angular extent of the slot arc, centered
	// on the top of the token.
	ArcSpanDegrees float64

	// LeftSide/RightSide enable the two independent side positions, each
	// filled with SideProbability, capped at one accent per side.
	LeftSide        bool
	RightSide       bool
	SideProbability float64

	// RadialRatio and SideRadialRatio place accents at this fraction of the
	// token radius from center. Values near 1 let accents bleed slightly
	// past the token edge.
	RadialRatio     float64
	SideRadialRatio float64

	// Scale is the accent image size as a fraction of token diameter.
	Scale float64

	// Seed seeds the accent RNG for reproducible sheets. Zero means a
	// random seed per batch.
	Seed uint64
}

// TextStyle configures one text role (name, ability, reminder, meta).
type TextStyle struct {
	// Color is a hex color.
	Color string

	// SizeRatio is the font size as a fraction of token diameter.
	SizeRatio float64

	// LetterSpacing is extra per-glyph advance in ems (fraction of font
	// size). Only curved text uses it.
	LetterSpacing float64

	// ShadowBlur is the soft-shadow radius in pixels at 300 DPI, scaled
	// with DPI. Zero disables the shadow.
	ShadowBlur float64
}

// Options is the full generation configuration. The zero value of most fields
// means "use the default"; call Resolve to obtain a validated copy with every
// default filled in exactly once. The rendering core never mutates a resolved
// Options value.
type Options struct {
	// DPI converts physical token sizes (inches) into pixels.
	// Zero resolves to 300; negative fails validation.
	DPI float64

	// TokenInches and ReminderInches are the physical diameters. Character
	// and meta tokens share TokenInches.
	TokenInches    float64
	ReminderInches float64

	// Backgrounds per token class.
	CharacterBackground BackgroundStyle
	ReminderBackground  BackgroundStyle
	MetaBackground      BackgroundStyle

	// Text roles.
	NameText     TextStyle
	AbilityText  TextStyle
	ReminderText TextStyle
	MetaText     TextStyle

	// HideAbilityText suppresses the ability block even when the character
	// has ability text.
	HideAbilityText bool

	// AbilityPaddingRatio shrinks each wrapped line's allowed width so text
	// never touches the circular boundary. Must be in (0, 1].
	AbilityPaddingRatio float64

	// AbilityTopRatio is where the ability block starts, as a fraction of
	// token diameter from the top.
	AbilityTopRatio float64

	// LineHeight is the wrapped-line advance as a multiple of font size.
	LineHeight float64

	// IconBandRatio is the fraction of the free vertical band (between
	// ability text and the curved name) the icon occupies.
	IconBandRatio float64

	// Icons per token class.
	CharacterIcon IconStyle
	ReminderIcon  IconStyle

	// HideReminderCount suppresses the count badge on reminder tokens.
	HideReminderCount bool
	ReminderCount     CountStyle

	// SetupOverlay names the overlay asset drawn on setup characters.
	// Empty disables the overlay.
	SetupOverlay string

	Accents AccentOptions

	// QR styles the almanac token's QR code.
	QR qrstyle.Options

	// Meta token toggles.
	IncludeScriptToken      bool
	IncludeAlmanacToken     bool
	IncludePandemoniumToken bool

	// ExpandVariants emits one character token per portrait variant
	// instead of only the default portrait.
	ExpandVariants bool

	resolved bool
}

// Defaults applied by Resolve.
const (
	defaultDPI            = 300.0
	defaultTokenInches    = 1.75
	defaultReminderInches = 1.0

	defaultPaddingRatio    = 0.9
	defaultAbilityTopRatio = 0.13
	defaultLineHeight      = 1.25
	defaultIconBandRatio   = 0.85

	defaultNameSizeRatio     = 0.085
	defaultAbilitySizeRatio  = 0.055
	defaultReminderSizeRatio = 0.11
	defaultMetaSizeRatio     = 0.09

	defaultAccentSlots      = 7
	defaultAccentMax        = 5
	defaultAccentSpanDeg    = 150.0
	defaultAccentRadial     = 0.96
	defaultAccentSideRadial = 0.88
	defaultAccentScale      = 0.22
)

// Resolve validates the options and returns a copy with every default filled
// in. Defaults are resolved here exactly once; no draw-time code consults a
// fallback. Resolve on an already-resolved value is a no-op.
func (o Options) Resolve() (Options, error) {
	if o.resolved {
		return o, nil
	}
	if o.DPI < 0 {
		return Options{}, &ValidationError{Field: "DPI", Reason: "must be positive"}
	}
	if o.DPI == 0 {
		o.DPI = defaultDPI
	}
	if o.TokenInches <= 0 {
		o.TokenInches = defaultTokenInches
	}
	if o.ReminderInches <= 0 {
		o.ReminderInches = defaultReminderInches
	}
	if o.AbilityPaddingRatio <= 0 || o.AbilityPaddingRatio > 1 {
		o.AbilityPaddingRatio = defaultPaddingRatio
	}
	if o.AbilityTopRatio <= 0 {
		o.AbilityTopRatio = defaultAbilityTopRatio
	}
	if o.LineHeight <= 0 {
		o.LineHeight = defaultLineHeight
	}
	if o.IconBandRatio <= 0 || o.IconBandRatio > 1 {
		o.IconBandRatio = defaultIconBandRatio
	}

	o.CharacterBackground = resolveBackground(o.CharacterBackground, "#efe0b5")
	o.ReminderBackground = resolveBackground(o.ReminderBackground, "#efe0b5")
	o.MetaBackground = resolveBackground(o.MetaBackground, "#1f1f2e")

	o.NameText = resolveText(o.NameText, "#000000", defaultNameSizeRatio)
	o.AbilityText = resolveText(o.AbilityText, "#000000", defaultAbilitySizeRatio)
	o.ReminderText = resolveText(o.ReminderText, "#f4f1ea", defaultReminderSizeRatio)
	o.MetaText = resolveText(o.MetaText, "#f4f1ea", defaultMetaSizeRatio)

	if o.CharacterIcon.Scale <= 0 {
		o.CharacterIcon.Scale = 0.62
	}
	if o.ReminderIcon.Scale <= 0 {
		o.ReminderIcon.Scale = 0.55
	}
	if o.ReminderIcon.OffsetY == 0 {
		o.ReminderIcon.OffsetY = -0.08
	}

	a := &o.Accents
	if a.Slots <= 0 {
		a.Slots = defaultAccentSlots
	}
	if a.MaxCount <= 0 {
		a.MaxCount = defaultAccentMax
	}
	if a.ArcSpanDegrees <= 0 {
		a.ArcSpanDegrees = defaultAccentSpanDeg
	}
	if a.RadialRatio <= 0 {
		a.RadialRatio = defaultAccentRadial
	}
	if a.SideRadialRatio <= 0 {
		a.SideRadialRatio = defaultAccentSideRadial
	}
	if a.Scale <= 0 {
		a.Scale = defaultAccentScale
	}

	o.QR = o.QR.Resolve()

	o.resolved = true
	return o, nil
}

func resolveBackground(b BackgroundStyle, defColor string) BackgroundStyle {
	if b.Color == "" {
		b.Color = defColor
	}
	return b
}

func resolveText(t TextStyle, defColor string, defRatio float64) TextStyle {
	if t.Color == "" {
		t.Color = defColor
	}
	if t.SizeRatio <= 0 {
		t.SizeRatio = defRatio
	}
	return t
}
