package grimbound

import (
	"context"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/Phauks/Grimbound-sub004/qrstyle"
)

// metaSurface allocates and clips a meta-sized surface and fills its
// background.
func (g *Generator) metaSurface(ctx context.Context) (*gg.Context, int, float64) {
	d := g.diameterPx(KindScriptName)
	fd := float64(d)
	dc := gg.NewContext(d, d)
	dc.DrawCircle(fd/2, fd/2, fd/2)
	dc.ClipPreserve()
	dc.ClearPath()
	g.drawBackground(ctx, dc, g.opts.MetaBackground, fd)
	return dc, d, fd
}

// centerLayout re-centers a layout's block vertically on cy.
func centerLayout(l TextLayout, cy float64) TextLayout {
	if l.Empty() {
		return l
	}
	shift := cy - (l.Top + l.TotalHeight/2)
	for i := range l.Lines {
		l.Lines[i].Y += shift
	}
	l.Top += shift
	return l
}

// RenderScriptName renders the script title token: the script logo when one
// is configured, otherwise the wrapped title text, plus an optional curved
// author line along the bottom arc.
func (g *Generator) RenderScriptName(ctx context.Context, script Script) (RenderResult, error) {
	if script.Title == "" && script.Logo == "" {
		return RenderResult{}, &ValidationError{Field: "script title", Reason: "must not be empty"}
	}

	dc, d, fd := g.metaSurface(ctx)
	cx, cy := fd/2, fd/2

	metaSize := fd * g.opts.MetaText.SizeRatio
	metaFace := face(g.fonts.Meta, metaSize)

	drewLogo := false
	if script.Logo != "" {
		if img, err := g.lib.Image(ctx, script.Logo); err == nil {
			g.drawPortraitImage(dc, img, cx, cy, fd*0.62)
			drewLogo = true
		} else {
			Logger().Warn("script logo skipped", "ref", script.Logo, "error", err)
		}
	}
	if !drewLogo && metaFace != nil {
		layout := LayoutCircleText(script.Title, metaFace, fd, metaSize,
			g.opts.LineHeight, cy, g.opts.AbilityPaddingRatio)
		layout = centerLayout(layout, cy)
		g.drawMetaLines(dc, metaFace, layout, cx)
	}

	dc.ResetClip()

	if script.Author != "" && metaFace != nil {
		authorFace := face(g.fonts.Meta, metaSize*0.7)
		DrawCurved(dc, authorFace, upper(script.Author), cx, cy, fd/2-metaSize*0.95,
			ArcBottom, g.opts.MetaText.Color, 0, 0)
	}

	return RenderResult{Surface: gg.ImageBufFromImage(dc.Image()), Diameter: d}, nil
}

// RenderAlmanac renders the QR token: the styled almanac QR code, a curved
// "ALMANAC" label along the bottom arc, and a white text plate carrying the
// script name over the code's lower edge.
func (g *Generator) RenderAlmanac(ctx context.Context, script Script) (RenderResult, error) {
	if script.AlmanacURL == "" {
		return RenderResult{}, &ValidationError{Field: "almanac URL", Reason: "must not be empty"}
	}

	dc, d, fd := g.metaSurface(ctx)
	cx, cy := fd/2, fd/2

	var center *gg.ImageBuf
	if g.opts.QR.CenterSizeRatio > 0 && script.Logo != "" {
		if img, err := g.lib.Image(ctx, script.Logo); err == nil {
			center = img
		}
	}

	qrSize := fd * 0.60
	code, err := qrstyle.Render(script.AlmanacURL, int(qrSize), g.opts.QR, center)
	if err != nil {
		// A QR failure leaves nothing worth shipping on this token.
		return RenderResult{}, err
	}
	dc.DrawImageEx(code, gg.DrawImageOptions{
		X: cx - qrSize/2, Y: cy - qrSize/2 - fd*0.04,
		DstWidth: qrSize, DstHeight: qrSize,
		Interpolation: gg.InterpBicubic,
	})

	metaSize := fd * g.opts.MetaText.SizeRatio
	if script.Title != "" {
		g.drawTitlePlate(dc, script.Title, cx, cy+qrSize/2, fd)
	}

	dc.ResetClip()

	labelFace := face(g.fonts.Meta, metaSize*0.8)
	DrawCurved(dc, labelFace, "ALMANAC", cx, cy, fd/2-metaSize*0.9,
		ArcBottom, g.opts.MetaText.Color, metaSize*0.08, 0)

	return RenderResult{Surface: gg.ImageBufFromImage(dc.Image()), Diameter: d}, nil
}

// drawTitlePlate draws the white rounded plate with the script name that
// overlays the almanac QR's lower edge.
func (g *Generator) drawTitlePlate(dc *gg.Context, title string, cx, y, fd float64) {
	plateFace := face(g.fonts.Meta, fd*0.055)
	if plateFace == nil {
		return
	}
	w, h := text.Measure(title, plateFace)
	padX, padY := fd*0.03, fd*0.012
	dc.SetHexColor("#ffffff")
	dc.DrawRoundedRectangle(cx-w/2-padX, y-h/2-padY, w+2*padX, h+2*padY, h/2)
	dc.Fill() //nolint:errcheck
	dc.SetFont(plateFace)
	dc.SetHexColor("#1f1f2e")
	dc.DrawStringAnchored(title, cx, y, 0.5, 0.5)
}

// RenderPandemonium renders the publisher token: a fixed two-line centered
// title with the script title curved along the bottom arc.
func (g *Generator) RenderPandemonium(ctx context.Context, script Script) (RenderResult, error) {
	dc, d, fd := g.metaSurface(ctx)
	cx, cy := fd/2, fd/2

	metaSize := fd * g.opts.MetaText.SizeRatio
	titleFace := face(g.fonts.Meta, metaSize*1.1)
	if titleFace != nil {
		dc.SetFont(titleFace)
		dc.SetHexColor(g.opts.MetaText.Color)
		step := metaSize * 1.1 * g.opts.LineHeight
		dc.DrawStringAnchored("PANDEMONIUM", cx, cy-step/2, 0.5, 0.5)
		dc.DrawStringAnchored("INSTITUTE", cx, cy+step/2, 0.5, 0.5)
	}

	dc.ResetClip()

	if script.Title != "" {
		subFace := face(g.fonts.Meta, metaSize*0.7)
		DrawCurved(dc, subFace, upper(script.Title), cx, cy, fd/2-metaSize*0.9,
			ArcBottom, g.opts.MetaText.Color, 0, 0)
	}

	return RenderResult{Surface: gg.ImageBufFromImage(dc.Image()), Diameter: d}, nil
}

// RenderBootlegger renders one bootlegger rule token: the wrapped rule text
// centered in the circle under a curved "BOOTLEGGER" label.
func (g *Generator) RenderBootlegger(ctx context.Context, rule string) (RenderResult, error) {
	if rule == "" {
		return RenderResult{}, &ValidationError{Field: "bootlegger rule", Reason: "must not be empty"}
	}

	dc, d, fd := g.metaSurface(ctx)
	cx, cy := fd/2, fd/2

	ruleSize := fd * g.opts.AbilityText.SizeRatio * 1.2
	ruleFace := face(g.fonts.Meta, ruleSize)
	if ruleFace != nil {
		layout := LayoutCircleText(rule, ruleFace, fd, ruleSize,
			g.opts.LineHeight, cy, g.opts.AbilityPaddingRatio)
		layout = centerLayout(layout, cy)
		g.drawMetaLines(dc, ruleFace, layout, cx)
	}

	dc.ResetClip()

	metaSize := fd * g.opts.MetaText.SizeRatio
	labelFace := face(g.fonts.Meta, metaSize*0.8)
	DrawCurved(dc, labelFace, "BOOTLEGGER", cx, cy, fd/2-metaSize*0.9,
		ArcBottom, g.opts.MetaText.Color, metaSize*0.08, 0)

	return RenderResult{Surface: gg.ImageBufFromImage(dc.Image()), Diameter: d}, nil
}

// drawPortraitImage draws an already-loaded image centered with aspect fit.
func (g *Generator) drawPortraitImage(dc *gg.Context, img *gg.ImageBuf, cx, cy, size float64) {
	w, h := float64(img.Width()), float64(img.Height())
	if w <= 0 || h <= 0 {
		return
	}
	scale := size / max(w, h)
	dw, dh := w*scale, h*scale
	dc.DrawImageEx(img, gg.DrawImageOptions{
		X: cx - dw/2, Y: cy - dh/2,
		DstWidth: dw, DstHeight: dh,
		Interpolation: gg.InterpBicubic,
	})
}

// drawMetaLines draws a wrapped layout in the meta text style.
func (g *Generator) drawMetaLines(dc *gg.Context, f text.Face, layout TextLayout, cx float64) {
	dc.SetFont(f)
	dc.SetHexColor(g.opts.MetaText.Color)
	for _, line := range layout.Lines {
		dc.DrawStringAnchored(line.Text, cx, line.Y, 0.5, 0.5)
	}
}
