package grimbound

import (
	"context"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Phauks/Grimbound-sub004/assets"
)

// Fonts holds the parsed font sources per text role. A nil source skips the
// corresponding text layer rather than failing the render.
type Fonts struct {
	Name     *text.FontSource
	Ability  *text.FontSource
	Reminder *text.FontSource
	Meta     *text.FontSource
}

// Generator renders single tokens. It holds only immutable configuration:
// resolved options, the shared asset library, font sources and the accent
// engine. Every per-render intermediate value is local to the call, so one
// Generator may serve overlapping renders.
type Generator struct {
	opts    Options
	lib     *assets.Library
	fonts   Fonts
	accents *AccentEngine
}

// NewGenerator builds a Generator. opts is resolved if it was not already;
// resolution failures (negative DPI) surface here, before any render.
func NewGenerator(opts Options, lib *assets.Library, fonts Fonts) (*Generator, error) {
	resolved, err := opts.Resolve()
	if err != nil {
		return nil, err
	}
	return &Generator{
		opts:    resolved,
		lib:     lib,
		fonts:   fonts,
		accents: NewAccentEngine(resolved.Accents),
	}, nil
}

// Options returns the resolved configuration snapshot.
func (g *Generator) Options() Options { return g.opts }

// Accents exposes the accent engine, mainly for preview statistics.
func (g *Generator) Accents() *AccentEngine { return g.accents }

// diameterPx converts a kind's physical size to pixels.
func (g *Generator) diameterPx(k Kind) int {
	return int(math.Round(k.BaseInches(g.opts) * g.opts.DPI))
}

// face derives a sized face from a source; nil source gives nil face.
func face(src *text.FontSource, size float64) text.Face {
	if src == nil || size <= 0 {
		return nil
	}
	return src.Face(size)
}

// upper uppercases display text for curved labels.
func upper(s string) string {
	return cases.Upper(language.English).String(s)
}

// nameArcRadius is the curved-name baseline radius as a fraction of the
// token radius; nameTopRatio derives the upper edge of the name zone used
// for icon-band sizing.
func nameGeometry(fd, nameSize float64) (radius, top float64) {
	radius = fd/2 - nameSize*1.1
	top = fd/2 + radius - nameSize
	return radius, top
}

// RenderCharacter renders one character token for the given portrait
// variant. Asset failures degrade to skipped layers; only validation aborts.
func (g *Generator) RenderCharacter(ctx context.Context, ch *Character, variant int) (RenderResult, error) {
	if err := ch.Validate(); err != nil {
		return RenderResult{}, err
	}

	d := g.diameterPx(KindCharacter)
	fd := float64(d)
	cx, cy := fd/2, fd/2
	dc := gg.NewContext(d, d)

	dc.DrawCircle(cx, cy, fd/2)
	dc.ClipPreserve()
	dc.ClearPath()
	g.drawBackground(ctx, dc, g.opts.CharacterBackground, fd)

	nameSize := fd * g.opts.NameText.SizeRatio
	abilitySize := fd * g.opts.AbilityText.SizeRatio
	nameFace := face(g.fonts.Name, nameSize)
	abilityFace := face(g.fonts.Ability, abilitySize)

	nameRadius, nameTop := nameGeometry(fd, nameSize)

	// Ability layout runs before icon sizing: the icon fills whatever
	// vertical band the text leaves free.
	var layout TextLayout
	showAbility := !g.opts.HideAbilityText && ch.Ability != "" && abilityFace != nil
	if showAbility {
		layout = LayoutCircleText(ch.Ability, abilityFace, fd, abilitySize,
			g.opts.LineHeight, fd*g.opts.AbilityTopRatio, g.opts.AbilityPaddingRatio)
	}

	var iconSize, iconCY float64
	if showAbility && !layout.Empty() {
		iconSize, iconCY = IconBand(layout, fd, nameTop, fd*g.opts.AbilityTopRatio, g.opts.IconBandRatio)
	} else {
		iconSize = fd * g.opts.CharacterIcon.Scale
		iconCY = cy + fd*g.opts.CharacterIcon.OffsetY
	}

	g.drawPortrait(ctx, dc, ch.Portrait(variant), cx, iconCY, iconSize)

	if ch.Setup && g.opts.SetupOverlay != "" {
		if overlay, err := g.lib.Image(ctx, g.opts.SetupOverlay); err == nil {
			dc.DrawImageEx(overlay, gg.DrawImageOptions{
				DstWidth: fd, DstHeight: fd, Interpolation: gg.InterpBicubic,
			})
		} else {
			Logger().Warn("setup overlay skipped", "character", ch.Name, "error", err)
		}
	}

	dc.ResetClip()

	// Accents draw outside the clip so they may bleed past the edge. The
	// flag reflects what actually rendered: a placement whose images all
	// failed to load leaves the token unaccented.
	accented := false
	if g.opts.Accents.Enabled {
		accented = g.drawAccents(ctx, dc, g.accents.Place(), fd) > 0
	}

	if showAbility {
		g.drawAbilityLines(dc, abilityFace, layout, cx)
	}

	if nameFace != nil {
		spacing := g.opts.NameText.LetterSpacing * nameSize
		shadow := g.opts.NameText.ShadowBlur * g.opts.DPI / defaultDPI
		DrawCurved(dc, nameFace, upper(ch.Name), cx, cy, nameRadius,
			ArcBottom, g.opts.NameText.Color, spacing, shadow)
	}

	return RenderResult{
		Surface:  gg.ImageBufFromImage(dc.Image()),
		Diameter: d,
		Accented: accented,
	}, nil
}

// RenderReminder renders one reminder token. count is the number of times
// this reminder text occurs for the character; counts above one draw the
// configured badge.
func (g *Generator) RenderReminder(ctx context.Context, ch *Character, reminder string, count int) (RenderResult, error) {
	if reminder == "" {
		return RenderResult{}, &ValidationError{Field: "reminder text", Reason: "must not be empty"}
	}
	if err := ch.Validate(); err != nil {
		return RenderResult{}, err
	}

	d := g.diameterPx(KindReminder)
	fd := float64(d)
	cx, cy := fd/2, fd/2
	dc := gg.NewContext(d, d)

	dc.DrawCircle(cx, cy, fd/2)
	dc.ClipPreserve()
	dc.ClearPath()
	g.drawBackground(ctx, dc, g.opts.ReminderBackground, fd)

	iconSize := fd * g.opts.ReminderIcon.Scale
	iconCY := cy + fd*g.opts.ReminderIcon.OffsetY
	g.drawPortrait(ctx, dc, ch.Portrait(0), cx, iconCY, iconSize)

	dc.ResetClip()

	reminderSize := fd * g.opts.ReminderText.SizeRatio
	reminderFace := face(g.fonts.Reminder, reminderSize)
	if reminderFace != nil {
		spacing := g.opts.ReminderText.LetterSpacing * reminderSize
		shadow := g.opts.ReminderText.ShadowBlur * g.opts.DPI / defaultDPI
		DrawCurved(dc, reminderFace, upper(reminder), cx, cy, fd/2-reminderSize*1.1,
			ArcBottom, g.opts.ReminderText.Color, spacing, shadow)
	}

	if !g.opts.HideReminderCount {
		badgeFace := face(g.fonts.Reminder, fd*0.09)
		drawCountBadge(dc, count, g.opts.ReminderCount, fd, badgeFace, g.opts.ReminderText.Color)
	}

	return RenderResult{
		Surface:  gg.ImageBufFromImage(dc.Image()),
		Diameter: d,
	}, nil
}

// drawBackground fills the clipped circle per the class style. An image
// failure falls back to the flat color; transparent mode draws nothing.
func (g *Generator) drawBackground(ctx context.Context, dc *gg.Context, style BackgroundStyle, fd float64) {
	switch style.Mode {
	case BackgroundTransparent:
		return
	case BackgroundImage:
		if img, err := g.lib.Image(ctx, style.Image); err == nil {
			cover := imaging.Fill(img.ToStdImage(), int(fd), int(fd), imaging.Center, imaging.Lanczos)
			dc.DrawImage(gg.ImageBufFromImage(cover), 0, 0)
			return
		} else {
			Logger().Warn("background image skipped", "ref", style.Image, "error", err)
		}
		fallthrough
	default:
		dc.SetHexColor(style.Color)
		dc.DrawRectangle(0, 0, fd, fd)
		dc.Fill() //nolint:errcheck // flat fill on an open surface
		dc.ClearPath()
	}
}

// drawPortrait draws the portrait centered at (cx, cy), scaled to fit size
// while preserving aspect. Load failures skip the layer.
func (g *Generator) drawPortrait(ctx context.Context, dc *gg.Context, ref string, cx, cy, size float64) {
	if ref == "" || size <= 0 {
		return
	}
	img, err := g.lib.Image(ctx, ref)
	if err != nil {
		Logger().Warn("portrait skipped", "ref", ref, "error", err)
		return
	}
	g.drawPortraitImage(dc, img, cx, cy, size)
}

// drawAccents loads the accent assets and delegates to the engine, returning
// the number of accents drawn. Missing assets skip their layer.
func (g *Generator) drawAccents(ctx context.Context, dc *gg.Context, p AccentPlacement, fd float64) int {
	var arcImg, sideImg *gg.ImageBuf
	if g.opts.Accents.Image != "" {
		if img, err := g.lib.Image(ctx, g.opts.Accents.Image); err == nil {
			arcImg = img
		} else {
			Logger().Warn("accent image skipped", "ref", g.opts.Accents.Image, "error", err)
		}
	}
	if g.opts.Accents.SideImage != "" {
		if img, err := g.lib.Image(ctx, g.opts.Accents.SideImage); err == nil {
			sideImg = img
		} else {
			Logger().Warn("side accent image skipped", "ref", g.opts.Accents.SideImage, "error", err)
		}
	}
	return g.accents.Draw(dc, p, fd, arcImg, sideImg)
}

// drawAbilityLines draws a wrapped layout centered on each line's position.
func (g *Generator) drawAbilityLines(dc *gg.Context, f text.Face, layout TextLayout, cx float64) {
	if f == nil {
		return
	}
	dc.SetFont(f)
	dc.SetHexColor(g.opts.AbilityText.Color)
	for _, line := range layout.Lines {
		dc.DrawStringAnchored(line.Text, cx, line.Y, 0.5, 0.5)
	}
}
