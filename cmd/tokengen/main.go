// Command tokengen renders a full token sheet from a script JSON file.
//
// Usage:
//
//	tokengen -script trouble-brewing.json -out tokens/
//
// Environment variables (TOKENGEN_*) provide defaults for every flag; flags
// win when both are set. Interrupting with Ctrl-C stops the batch cleanly
// after the unit in flight and keeps everything rendered so far.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/gogpu/gg/text"

	grimbound "github.com/Phauks/Grimbound-sub004"
	"github.com/Phauks/Grimbound-sub004/assets"
)

type config struct {
	AssetsDir    string  `env:"TOKENGEN_ASSETS" envDefault:"assets"`
	OutDir       string  `env:"TOKENGEN_OUT" envDefault:"tokens"`
	DPI          float64 `env:"TOKENGEN_DPI" envDefault:"300"`
	NameFont     string  `env:"TOKENGEN_NAME_FONT" envDefault:"fonts/name.ttf"`
	AbilityFont  string  `env:"TOKENGEN_ABILITY_FONT" envDefault:"fonts/ability.ttf"`
	ReminderFont string  `env:"TOKENGEN_REMINDER_FONT" envDefault:"fonts/reminder.ttf"`
	MetaFont     string  `env:"TOKENGEN_META_FONT" envDefault:"fonts/meta.ttf"`
	Seed         uint64  `env:"TOKENGEN_ACCENT_SEED"`
	Verbose      bool    `env:"TOKENGEN_VERBOSE"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("tokengen: %v", err)
	}

	scriptPath := flag.String("script", "", "script JSON file (required)")
	flag.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "asset directory (portraits, fonts, leaves)")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory for PNG tokens")
	flag.Float64Var(&cfg.DPI, "dpi", cfg.DPI, "render resolution in dots per inch")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "accent RNG seed (0 = random)")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")
	variants := flag.Bool("variants", false, "render every portrait variant")
	meta := flag.Bool("meta", true, "render script, almanac and publisher tokens")
	flag.Parse()

	if *scriptPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if cfg.Verbose {
		grimbound.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *scriptPath, *variants, *meta); err != nil {
		log.Fatalf("tokengen: %v", err)
	}
}

func run(ctx context.Context, cfg config, scriptPath string, variants, meta bool) error {
	roster, script, err := loadScript(scriptPath)
	if err != nil {
		return err
	}

	lib := assets.NewLibrary(assets.Dir(cfg.AssetsDir), assets.WithLogger(grimbound.Logger()))

	fonts, err := loadFonts(ctx, lib, cfg)
	if err != nil {
		return err
	}

	opts := grimbound.Options{
		DPI:            cfg.DPI,
		ExpandVariants: variants,
		Accents: grimbound.AccentOptions{
			Enabled:         true,
			Image:           "leaves/leaf.png",
			SideImage:       "leaves/side.png",
			Probability:     0.5,
			LeftSide:        true,
			RightSide:       true,
			SideProbability: 0.25,
			Seed:            cfg.Seed,
		},
		SetupOverlay:            "overlays/setup.png",
		IncludeScriptToken:      meta && script.Title != "",
		IncludeAlmanacToken:     meta && script.AlmanacURL != "",
		IncludePandemoniumToken: meta,
	}

	gen, err := grimbound.NewGenerator(opts, lib, fonts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}

	saved := 0
	hooks := grimbound.Hooks{
		Progress: func(done, total int) {
			fmt.Printf("\r%d/%d", done, total)
		},
		OnToken: func(t grimbound.Token) {
			name := tokenFileName(t)
			if err := t.SavePNG(filepath.Join(cfg.OutDir, name)); err != nil {
				fmt.Fprintf(os.Stderr, "\nwrite %s: %v\n", name, err)
				return
			}
			saved++
		},
	}

	tokens, err := grimbound.GenerateAll(ctx, gen, roster, script, hooks)
	fmt.Println()
	if err != nil {
		return err
	}
	fmt.Printf("rendered %d tokens, saved %d to %s\n", len(tokens), saved, cfg.OutDir)
	return nil
}

func loadFonts(ctx context.Context, lib *assets.Library, cfg config) (grimbound.Fonts, error) {
	load := func(ref string) *text.FontSource {
		if ref == "" {
			return nil
		}
		src, err := lib.Font(ctx, ref)
		if err != nil {
			fmt.Fprintf(os.Stderr, "font %s unavailable, text layer skipped: %v\n", ref, err)
			return nil
		}
		return src
	}
	return grimbound.Fonts{
		Name:     load(cfg.NameFont),
		Ability:  load(cfg.AbilityFont),
		Reminder: load(cfg.ReminderFont),
		Meta:     load(cfg.MetaFont),
	}, nil
}

// tokenFileName builds a stable file name: order index, kind or slug, and
// the variant suffix when portrait variants were expanded.
func tokenFileName(t grimbound.Token) string {
	base := slug(t.Name)
	if base == "" {
		base = t.Kind.String()
	}
	if t.VariantTotal > 1 {
		return fmt.Sprintf("%03d-%s-%d.png", t.Order, base, t.Variant+1)
	}
	return fmt.Sprintf("%03d-%s.png", t.Order, base)
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
