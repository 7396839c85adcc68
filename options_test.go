package grimbound

import (
	"reflect"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	opts, err := Options{}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if opts.DPI != 300 {
		t.Errorf("DPI = %v, want 300", opts.DPI)
	}
	if opts.TokenInches != 1.75 || opts.ReminderInches != 1.0 {
		t.Errorf("sizes = %v, %v", opts.TokenInches, opts.ReminderInches)
	}
	if opts.AbilityPaddingRatio <= 0 || opts.AbilityPaddingRatio > 1 {
		t.Errorf("padding ratio = %v", opts.AbilityPaddingRatio)
	}
	if opts.Accents.Slots != 7 || opts.Accents.MaxCount != 5 {
		t.Errorf("accent defaults = %+v", opts.Accents)
	}
	if opts.NameText.Color == "" || opts.NameText.SizeRatio <= 0 {
		t.Errorf("name text not resolved: %+v", opts.NameText)
	}
	if opts.CharacterBackground.Color == "" {
		t.Error("character background color not resolved")
	}
}

func TestResolveNegativeDPI(t *testing.T) {
	_, err := Options{DPI: -10}.Resolve()
	if err == nil {
		t.Fatal("expected error for negative DPI")
	}
	if !IsValidation(err) {
		t.Errorf("error %v is not a ValidationError", err)
	}
}

func TestResolveKeepsExplicitValues(t *testing.T) {
	opts, err := Options{
		DPI:         150,
		TokenInches: 2.0,
		NameText:    TextStyle{Color: "#123456", SizeRatio: 0.1},
	}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if opts.DPI != 150 || opts.TokenInches != 2.0 {
		t.Errorf("explicit values overridden: %v, %v", opts.DPI, opts.TokenInches)
	}
	if opts.NameText.Color != "#123456" || opts.NameText.SizeRatio != 0.1 {
		t.Errorf("name text overridden: %+v", opts.NameText)
	}
}

func TestResolveIdempotent(t *testing.T) {
	once, err := Options{DPI: 72}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	twice, err := once.Resolve()
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if !reflect.DeepEqual(twice, once) {
		t.Error("second Resolve changed the options")
	}
}
