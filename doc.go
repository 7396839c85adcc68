// Package grimbound renders circular game-character tokens from structured
// character data: a portrait with a curved name along the bottom arc, optional
// wrapped ability text, decorative accents scattered along the top arc, reminder
// tokens with count badges, and meta tokens (script title, styled almanac QR).
//
// # Overview
//
// The package is a deterministic rendering core. Everything it draws goes
// through a gg drawing context; everything it measures goes through a font
// face. Layout is driven by circle geometry: every line of text and the
// character icon are sized against the chord available at their vertical
// position, so long ability text and the icon never collide.
//
// # Quick Start
//
//	lib := assets.NewLibrary(assets.Dir("assets"))
//	gen, err := grimbound.NewGenerator(grimbound.Options{DPI: 300}, lib, fonts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tokens, err := grimbound.GenerateAll(ctx, gen, roster, script, grimbound.Hooks{})
//
// # Concurrency
//
// Generators hold only immutable configuration; every per-render intermediate
// value is local to the call, so a single Generator may serve overlapping
// renders. Batch generation is sequential because output order is meaningful.
// The asset cache collapses duplicate concurrent loads of the same reference.
//
// # Logging
//
// The package produces no log output by default. Call [SetLogger] to enable
// structured logging of recovered asset failures and batch progress.
package grimbound
