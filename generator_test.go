package grimbound

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/Phauks/Grimbound-sub004/assets"
)

// testGenerator builds a generator over an empty asset directory, so every
// image layer degrades to its fallback. Low DPI keeps surfaces small.
func testGenerator(t *testing.T, mutate func(*Options)) *Generator {
	t.Helper()
	opts := Options{DPI: 24}
	if mutate != nil {
		mutate(&opts)
	}
	lib := assets.NewLibrary(assets.Dir(t.TempDir()))
	g, err := NewGenerator(opts, lib, Fonts{})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

func testCharacter(name string, reminders ...string) Character {
	return Character{
		ID:        "test_" + name,
		Name:      name,
		Team:      TeamTownsfolk,
		Ability:   "Each night, learn something.",
		Portraits: []string{"missing/portrait.png"},
		Reminders: reminders,
		UUID:      uuid.New(),
	}
}

func TestRenderCharacterDiameter(t *testing.T) {
	g := testGenerator(t, nil)
	ch := testCharacter("Washerwoman")
	res, err := g.RenderCharacter(context.Background(), &ch, 0)
	if err != nil {
		t.Fatalf("RenderCharacter: %v", err)
	}
	// 1.75in * 24dpi = 42px.
	if res.Diameter != 42 {
		t.Errorf("diameter = %d, want 42", res.Diameter)
	}
	if res.Surface == nil {
		t.Fatal("no surface")
	}
	if res.Surface.Width() != 42 || res.Surface.Height() != 42 {
		t.Errorf("surface = %dx%d", res.Surface.Width(), res.Surface.Height())
	}
}

func TestRenderCharacterBackgroundColor(t *testing.T) {
	g := testGenerator(t, func(o *Options) {
		o.CharacterBackground = BackgroundStyle{Mode: BackgroundColor, Color: "#ff0000"}
	})
	ch := testCharacter("Imp")
	res, err := g.RenderCharacter(context.Background(), &ch, 0)
	if err != nil {
		t.Fatalf("RenderCharacter: %v", err)
	}
	d := res.Diameter
	r, _, _, a := res.Surface.GetRGBA(d/2, d/2)
	if a == 0 || r < 200 {
		t.Errorf("center pixel = r=%d a=%d, want red opaque", r, a)
	}
	// Corners sit outside the circular clip.
	_, _, _, ca := res.Surface.GetRGBA(0, 0)
	if ca != 0 {
		t.Errorf("corner alpha = %d, want 0", ca)
	}
}

func TestRenderCharacterTransparentBackground(t *testing.T) {
	g := testGenerator(t, func(o *Options) {
		o.CharacterBackground = BackgroundStyle{Mode: BackgroundTransparent}
	})
	ch := testCharacter("Spy")
	res, err := g.RenderCharacter(context.Background(), &ch, 0)
	if err != nil {
		t.Fatalf("RenderCharacter: %v", err)
	}
	// Nothing else draws without fonts or assets, so the whole surface
	// stays transparent.
	d := res.Diameter
	if _, _, _, a := res.Surface.GetRGBA(d/2, d/2); a != 0 {
		t.Errorf("center alpha = %d, want 0", a)
	}
}

func TestRenderCharacterMissingAssetsRecovered(t *testing.T) {
	// Portrait, overlay and accent images all fail to load; the render
	// must still succeed.
	g := testGenerator(t, func(o *Options) {
		o.SetupOverlay = "missing/overlay.png"
		o.Accents = AccentOptions{
			Enabled: true, Image: "missing/leaf.png",
			Probability: 1, Seed: 1,
		}
	})
	ch := testCharacter("Baron")
	ch.Setup = true
	if _, err := g.RenderCharacter(context.Background(), &ch, 0); err != nil {
		t.Fatalf("render should recover from missing assets: %v", err)
	}
}

func TestRenderCharacterAccentedReflectsDrawnAccents(t *testing.T) {
	// Accents count as present only when an accent image actually
	// rendered, not merely because the placement filled slots.
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "leaf.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	opts := Options{DPI: 24, Accents: AccentOptions{
		Enabled: true, Image: "leaf.png", Probability: 1, Seed: 1,
	}}
	g, err := NewGenerator(opts, assets.NewLibrary(assets.Dir(dir)), Fonts{})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	ch := testCharacter("Juggler")
	res, err := g.RenderCharacter(context.Background(), &ch, 0)
	if err != nil {
		t.Fatalf("RenderCharacter: %v", err)
	}
	if !res.Accented {
		t.Error("accent image drew but Accented is false")
	}
}

func TestRenderCharacterMissingAccentImageNotAccented(t *testing.T) {
	g := testGenerator(t, func(o *Options) {
		o.Accents = AccentOptions{
			Enabled: true, Image: "missing/leaf.png",
			SideImage: "missing/side.png",
			Probability: 1, LeftSide: true, RightSide: true,
			SideProbability: 1, Seed: 1,
		}
	})
	ch := testCharacter("Gossip")
	res, err := g.RenderCharacter(context.Background(), &ch, 0)
	if err != nil {
		t.Fatalf("RenderCharacter: %v", err)
	}
	if res.Accented {
		t.Error("no accent image rendered but the token reports accents")
	}
}

func TestRenderCharacterEmptyNameFails(t *testing.T) {
	g := testGenerator(t, nil)
	ch := Character{Name: ""}
	_, err := g.RenderCharacter(context.Background(), &ch, 0)
	if !IsValidation(err) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func TestRenderReminderDiameter(t *testing.T) {
	g := testGenerator(t, nil)
	ch := testCharacter("Monk", "Safe")
	res, err := g.RenderReminder(context.Background(), &ch, "Safe", 1)
	if err != nil {
		t.Fatalf("RenderReminder: %v", err)
	}
	// 1.0in * 24dpi = 24px.
	if res.Diameter != 24 {
		t.Errorf("diameter = %d, want 24", res.Diameter)
	}
}

func TestRenderReminderEmptyTextFails(t *testing.T) {
	g := testGenerator(t, nil)
	ch := testCharacter("Monk")
	_, err := g.RenderReminder(context.Background(), &ch, "", 1)
	if !IsValidation(err) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func TestRenderScriptNameRequiresTitleOrLogo(t *testing.T) {
	g := testGenerator(t, nil)
	if _, err := g.RenderScriptName(context.Background(), Script{}); !IsValidation(err) {
		t.Errorf("err = %v, want ValidationError", err)
	}
	if _, err := g.RenderScriptName(context.Background(), Script{Title: "Trouble Brewing"}); err != nil {
		t.Errorf("titled script failed: %v", err)
	}
}

func TestRenderAlmanacRequiresURL(t *testing.T) {
	g := testGenerator(t, nil)
	if _, err := g.RenderAlmanac(context.Background(), Script{}); !IsValidation(err) {
		t.Errorf("err = %v, want ValidationError", err)
	}
	res, err := g.RenderAlmanac(context.Background(), Script{
		Title:      "Trouble Brewing",
		AlmanacURL: "https://example.com/almanac",
	})
	if err != nil {
		t.Fatalf("RenderAlmanac: %v", err)
	}
	if res.Surface == nil || res.Diameter != 42 {
		t.Errorf("result = %+v", res)
	}
}

func TestRenderPandemonium(t *testing.T) {
	g := testGenerator(t, nil)
	res, err := g.RenderPandemonium(context.Background(), Script{Title: "Sects & Violets"})
	if err != nil {
		t.Fatalf("RenderPandemonium: %v", err)
	}
	if res.Surface == nil {
		t.Fatal("no surface")
	}
}

func TestRenderBootlegger(t *testing.T) {
	g := testGenerator(t, nil)
	if _, err := g.RenderBootlegger(context.Background(), ""); !IsValidation(err) {
		t.Errorf("empty rule: err = %v", err)
	}
	if _, err := g.RenderBootlegger(context.Background(), "Players may not discuss the game."); err != nil {
		t.Errorf("RenderBootlegger: %v", err)
	}
}

func TestGeneratorSharedAcrossRenders(t *testing.T) {
	// A generator holds only immutable configuration, so overlapping use
	// from multiple goroutines must be safe.
	g := testGenerator(t, nil)
	ch := testCharacter("Ravenkeeper", "Woke")
	done := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			_, err := g.RenderCharacter(context.Background(), &ch, 0)
			done <- err
		}()
	}
	for i := 0; i < 4; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent render: %v", err)
		}
	}
}
