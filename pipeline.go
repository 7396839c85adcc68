package grimbound

import (
	"context"
)

// Hooks carries the batch callbacks. Any field may be nil.
type Hooks struct {
	// Progress is invoked after every attempted unit with the number of
	// units handled so far and the fixed total. Failed units still
	// advance the counter, so a finished batch always reports total even
	// when it produced fewer tokens.
	Progress func(completed, total int)

	// OnToken is invoked once per produced Token, immediately when it is
	// ready, enabling incremental delivery.
	OnToken func(Token)
}

func (h Hooks) progress(completed, total int) {
	if h.Progress != nil {
		h.Progress(completed, total)
	}
}

func (h Hooks) deliver(t Token) {
	if h.OnToken != nil {
		h.OnToken(t)
	}
}

// GenerateAll renders the full roster in input order: for each character its
// character token (one per portrait variant when expansion is on), then one
// reminder token per reminder text. Meta tokens follow once at the end when
// enabled. Tokens are produced strictly sequentially because order is a
// visible property of the output.
//
// Cancellation is cooperative: ctx is polled between units, and once it is
// done the pipeline stops issuing renders and returns everything produced so
// far with a nil error. A unit's failure (validation or render) is logged
// with the character's identity and the batch continues; partial success is
// preferred over all-or-nothing failure.
func GenerateAll(ctx context.Context, g *Generator, roster []Character, script Script, hooks Hooks) ([]Token, error) {
	metaUnits := countMetaUnits(g.opts, script)
	if len(roster) == 0 && metaUnits == 0 {
		return nil, ErrNoCharacters
	}

	total := metaUnits
	for i := range roster {
		total += characterUnits(g.opts, &roster[i])
	}

	log := Logger()
	log.Info("batch started", "characters", len(roster), "units", total)

	factory := NewFactory()
	tokens := make([]Token, 0, total)
	completed := 0

	cancelled := func() bool { return ctx.Err() != nil }

	for i := range roster {
		ch := &roster[i]
		if cancelled() {
			log.Info("batch cancelled", "completed", completed, "produced", len(tokens))
			return tokens, nil
		}

		if err := ch.Validate(); err != nil {
			// The whole character is skipped, but its units still
			// advance the counter so the caller never sees a
			// silent wrong total.
			log.Warn("character skipped", "character", ch.Name, "id", ch.ID, "error", err)
			completed += characterUnits(g.opts, ch)
			hooks.progress(completed, total)
			continue
		}

		variants := 1
		if g.opts.ExpandVariants && len(ch.Portraits) > 1 {
			variants = len(ch.Portraits)
		}
		for v := 0; v < variants; v++ {
			if cancelled() {
				log.Info("batch cancelled", "completed", completed, "produced", len(tokens))
				return tokens, nil
			}
			res, err := g.RenderCharacter(ctx, ch, v)
			completed++
			if err != nil {
				log.Warn("character token failed", "character", ch.Name, "error", err)
			} else {
				variant, variantTotal := 0, 0
				if variants > 1 {
					variant, variantTotal = v, variants
				}
				t := factory.Wrap(KindCharacter, res, ch, ch.Name, variant, variantTotal)
				tokens = append(tokens, t)
				hooks.deliver(t)
			}
			hooks.progress(completed, total)
		}

		counts := reminderCounts(ch.Reminders)
		for _, reminder := range ch.Reminders {
			if cancelled() {
				log.Info("batch cancelled", "completed", completed, "produced", len(tokens))
				return tokens, nil
			}
			res, err := g.RenderReminder(ctx, ch, reminder, counts[reminder])
			completed++
			if err != nil {
				log.Warn("reminder token failed", "character", ch.Name, "reminder", reminder, "error", err)
			} else {
				t := factory.Wrap(KindReminder, res, ch, reminder, 0, 0)
				tokens = append(tokens, t)
				hooks.deliver(t)
			}
			hooks.progress(completed, total)
		}
	}

	tokens, completed = generateMeta(ctx, g, script, factory, hooks, tokens, completed, total)

	log.Info("batch finished", "completed", completed, "produced", len(tokens))
	return tokens, nil
}

// generateMeta appends the enabled meta tokens. Each meta unit follows the
// same progress and failure policy as roster units.
func generateMeta(ctx context.Context, g *Generator, script Script, factory *Factory, hooks Hooks, tokens []Token, completed, total int) ([]Token, int) {
	log := Logger()

	type metaUnit struct {
		kind Kind
		name string
		run  func() (RenderResult, error)
	}
	var units []metaUnit
	if g.opts.IncludeScriptToken {
		units = append(units, metaUnit{KindScriptName, script.Title, func() (RenderResult, error) {
			return g.RenderScriptName(ctx, script)
		}})
	}
	if g.opts.IncludeAlmanacToken {
		units = append(units, metaUnit{KindAlmanac, script.Title, func() (RenderResult, error) {
			return g.RenderAlmanac(ctx, script)
		}})
	}
	if g.opts.IncludePandemoniumToken {
		units = append(units, metaUnit{KindPandemonium, "Pandemonium", func() (RenderResult, error) {
			return g.RenderPandemonium(ctx, script)
		}})
	}
	for _, rule := range script.Bootlegger {
		units = append(units, metaUnit{KindBootlegger, rule, func() (RenderResult, error) {
			return g.RenderBootlegger(ctx, rule)
		}})
	}

	for _, u := range units {
		if ctx.Err() != nil {
			log.Info("batch cancelled", "completed", completed, "produced", len(tokens))
			return tokens, completed
		}
		res, err := u.run()
		completed++
		if err != nil {
			log.Warn("meta token failed", "kind", u.kind.String(), "error", err)
		} else {
			t := factory.Wrap(u.kind, res, nil, u.name, 0, 0)
			tokens = append(tokens, t)
			hooks.deliver(t)
		}
		hooks.progress(completed, total)
	}
	return tokens, completed
}

// characterUnits counts the progress units one character contributes.
func characterUnits(opts Options, ch *Character) int {
	variants := 1
	if opts.ExpandVariants && len(ch.Portraits) > 1 {
		variants = len(ch.Portraits)
	}
	return variants + len(ch.Reminders)
}

// countMetaUnits counts the enabled meta tokens.
func countMetaUnits(opts Options, script Script) int {
	n := len(script.Bootlegger)
	if opts.IncludeScriptToken {
		n++
	}
	if opts.IncludeAlmanacToken {
		n++
	}
	if opts.IncludePandemoniumToken {
		n++
	}
	return n
}

// reminderCounts tallies duplicate reminder texts so each token's badge can
// show how many copies exist.
func reminderCounts(reminders []string) map[string]int {
	counts := make(map[string]int, len(reminders))
	for _, r := range reminders {
		counts[r]++
	}
	return counts
}
