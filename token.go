package grimbound

import (
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
)

// Kind tags what a Token depicts.
type Kind int

const (
	KindCharacter Kind = iota
	KindReminder
	KindScriptName
	KindAlmanac
	KindPandemonium
	KindBootlegger
)

var kindNames = [...]string{
	KindCharacter:   "character",
	KindReminder:    "reminder",
	KindScriptName:  "script-name",
	KindAlmanac:     "almanac",
	KindPandemonium: "pandemonium",
	KindBootlegger:  "bootlegger",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// BaseInches returns the physical diameter of this kind under opts. Character
// and meta tokens share one base size; reminder tokens use the smaller one.
func (k Kind) BaseInches(opts Options) float64 {
	if k == KindReminder {
		return opts.ReminderInches
	}
	return opts.TokenInches
}

// Token is one rendered badge. Tokens are immutable once created: a re-render
// produces a new Token, never an in-place mutation, so callers may retain
// references to previous results during regeneration.
type Token struct {
	Kind Kind

	// Character is the owning character's UUID; uuid.Nil for meta tokens.
	Character uuid.UUID

	Team Team

	// Name is the display label: the character name, the reminder text,
	// or the meta token's title.
	Name string

	// Surface is the rendered raster.
	Surface *gg.ImageBuf

	// Diameter is the surface edge in pixels: BaseInches(kind) * DPI.
	Diameter int

	// Order is the generation index; consumers sort by it.
	Order int

	// Variant/VariantTotal identify a portrait variant expansion.
	// Both zero when variants were not expanded.
	Variant      int
	VariantTotal int

	// Official mirrors the character's catalogue origin.
	Official bool

	// Accented reports whether decorative accents were drawn.
	Accented bool
}

// EncodePNG writes the token surface as PNG.
func (t Token) EncodePNG(w io.Writer) error {
	if t.Surface == nil {
		return ErrNoSurface
	}
	return t.Surface.EncodePNG(w)
}

// SavePNG writes the token surface to a file.
func (t Token) SavePNG(path string) error {
	if t.Surface == nil {
		return ErrNoSurface
	}
	return t.Surface.SavePNG(path)
}

// RenderResult is the raw outcome of one generator render call, before it is
// wrapped into a Token.
type RenderResult struct {
	Surface  *gg.ImageBuf
	Diameter int
	Accented bool
}

// Factory wraps render results into Tokens and assigns generation order.
// It renders no pixels itself. Safe for concurrent use.
type Factory struct {
	mu   sync.Mutex
	next int
}

// NewFactory returns a Factory whose order indices start at 0.
func NewFactory() *Factory { return &Factory{} }

// Wrap builds an immutable Token from a render result. ch may be nil for
// meta tokens.
func (f *Factory) Wrap(kind Kind, res RenderResult, ch *Character, name string, variant, variantTotal int) Token {
	f.mu.Lock()
	order := f.next
	f.next++
	f.mu.Unlock()

	t := Token{
		Kind:         kind,
		Name:         name,
		Surface:      res.Surface,
		Diameter:     res.Diameter,
		Order:        order,
		Variant:      variant,
		VariantTotal: variantTotal,
		Accented:     res.Accented,
	}
	if ch != nil {
		t.Character = ch.UUID
		t.Team = ch.Team
		t.Official = ch.Official
	}
	return t
}
