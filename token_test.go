package grimbound

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
)

func TestKindBaseInches(t *testing.T) {
	opts, _ := Options{}.Resolve()
	for _, k := range []Kind{KindCharacter, KindScriptName, KindAlmanac, KindPandemonium, KindBootlegger} {
		if got := k.BaseInches(opts); got != opts.TokenInches {
			t.Errorf("%v base = %v, want %v", k, got, opts.TokenInches)
		}
	}
	if got := KindReminder.BaseInches(opts); got != opts.ReminderInches {
		t.Errorf("reminder base = %v, want %v", got, opts.ReminderInches)
	}
}

func TestKindString(t *testing.T) {
	if KindAlmanac.String() != "almanac" || KindScriptName.String() != "script-name" {
		t.Errorf("kind names wrong: %v, %v", KindAlmanac, KindScriptName)
	}
}

func TestFactoryAssignsContiguousOrder(t *testing.T) {
	f := NewFactory()
	ch := &Character{Name: "Imp", Team: TeamDemon, UUID: uuid.New(), Official: true}
	for i := 0; i < 5; i++ {
		tok := f.Wrap(KindCharacter, RenderResult{Diameter: 10}, ch, ch.Name, 0, 0)
		if tok.Order != i {
			t.Errorf("token %d has order %d", i, tok.Order)
		}
	}
}

func TestFactoryWrapCharacterMetadata(t *testing.T) {
	f := NewFactory()
	id := uuid.New()
	ch := &Character{Name: "Librarian", Team: TeamTownsfolk, UUID: id, Official: true}
	tok := f.Wrap(KindCharacter, RenderResult{Diameter: 525, Accented: true}, ch, ch.Name, 1, 3)

	if tok.Character != id || tok.Team != TeamTownsfolk || !tok.Official {
		t.Errorf("character metadata not carried: %+v", tok)
	}
	if tok.Variant != 1 || tok.VariantTotal != 3 {
		t.Errorf("variant = %d/%d", tok.Variant, tok.VariantTotal)
	}
	if !tok.Accented {
		t.Error("accent flag dropped")
	}
}

func TestFactoryWrapMetaToken(t *testing.T) {
	f := NewFactory()
	tok := f.Wrap(KindAlmanac, RenderResult{Diameter: 525}, nil, "My Script", 0, 0)
	if tok.Character != uuid.Nil {
		t.Errorf("meta token owns a character: %v", tok.Character)
	}
	if tok.Name != "My Script" {
		t.Errorf("name = %q", tok.Name)
	}
}

func TestTokenEncodeWithoutSurface(t *testing.T) {
	var buf bytes.Buffer
	err := Token{}.EncodePNG(&buf)
	if err != ErrNoSurface {
		t.Errorf("err = %v, want ErrNoSurface", err)
	}
}

func TestParseTeam(t *testing.T) {
	if ParseTeam("demon") != TeamDemon {
		t.Error("demon not parsed")
	}
	if ParseTeam("unknown-faction") != TeamTownsfolk {
		t.Error("unknown team should default to townsfolk")
	}
	if TeamLoric.String() != "loric" {
		t.Errorf("loric name = %q", TeamLoric)
	}
}

func TestCharacterValidate(t *testing.T) {
	ch := Character{Name: ""}
	if err := ch.Validate(); !IsValidation(err) {
		t.Errorf("empty name: err = %v", err)
	}
	ch = Character{Name: "Butler", Reminders: []string{"Master", ""}}
	if err := ch.Validate(); !IsValidation(err) {
		t.Errorf("empty reminder: err = %v", err)
	}
	ch = Character{Name: "Butler", Reminders: []string{"Master"}}
	if err := ch.Validate(); err != nil {
		t.Errorf("valid character: err = %v", err)
	}
}

func TestCharacterPortrait(t *testing.T) {
	ch := Character{Portraits: []string{"a.png", "b.png"}}
	if ch.Portrait(1) != "b.png" {
		t.Errorf("variant 1 = %q", ch.Portrait(1))
	}
	if ch.Portrait(7) != "a.png" {
		t.Errorf("out of range should fall back to default, got %q", ch.Portrait(7))
	}
	empty := Character{}
	if empty.Portrait(0) != "" {
		t.Error("no portraits should give empty reference")
	}
}
