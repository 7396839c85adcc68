package grimbound

import (
	"fmt"

	"github.com/google/uuid"
)

// Team is a character's faction category.
type Team int

// Teams in canonical script order.
const (
	TeamTownsfolk Team = iota
	TeamOutsider
	TeamMinion
	TeamDemon
	TeamTraveller
	TeamFabled
	TeamLoric
)

var teamNames = [...]string{
	TeamTownsfolk: "townsfolk",
	TeamOutsider:  "outsider",
	TeamMinion:    "minion",
	TeamDemon:     "demon",
	TeamTraveller: "traveller",
	TeamFabled:    "fabled",
	TeamLoric:     "loric",
}

func (t Team) String() string {
	if t < 0 || int(t) >= len(teamNames) {
		return fmt.Sprintf("Team(%d)", int(t))
	}
	return teamNames[t]
}

// ParseTeam converts a team name into a Team. Unknown names default to
// townsfolk so externally sourced rosters with novel factions still render.
func ParseTeam(s string) Team {
	for i, name := range teamNames {
		if name == s {
			return Team(i)
		}
	}
	return TeamTownsfolk
}

// Character is one roster entry. The rendering core treats it as read-only
// input; it is owned by the surrounding application.
type Character struct {
	// ID is the script-local identifier, e.g. "fortune_teller".
	ID string

	// Name is the display name drawn along the token's bottom arc.
	// Required: a character with an empty name fails validation.
	Name string

	Team Team

	// Ability is the rules text wrapped inside the token's upper area.
	// Empty means the token renders without an ability block.
	Ability string

	// Portraits holds one or more portrait references in variant order.
	// The first entry is the default portrait.
	Portraits []string

	// Reminders lists the reminder-token texts, one token per entry.
	Reminders []string

	// Setup marks characters that change game setup; rendered as an
	// overlay glyph when the options name one.
	Setup bool

	// Official distinguishes characters from the official catalogue from
	// custom ones. Carried through to the Token record.
	Official bool

	// UUID is the stable identity used to relate Tokens back to their
	// character across regenerations.
	UUID uuid.UUID
}

// Portrait returns the portrait reference for the given variant index,
// falling back to the default when the index is out of range. Returns ""
// when the character has no portraits at all.
func (c *Character) Portrait(variant int) string {
	if len(c.Portraits) == 0 {
		return ""
	}
	if variant < 0 || variant >= len(c.Portraits) {
		return c.Portraits[0]
	}
	return c.Portraits[variant]
}

// Validate checks the fields the renderer depends on. It runs before any
// drawing begins; a failure aborts only this character's units.
func (c *Character) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "character name", Reason: "must not be empty"}
	}
	for i, r := range c.Reminders {
		if r == "" {
			return &ValidationError{
				Field:  "reminder text",
				Reason: fmt.Sprintf("entry %d of %q is empty", i, c.Name),
			}
		}
	}
	return nil
}

// Script is the optional metadata block that feeds meta tokens.
type Script struct {
	Title  string
	Author string

	// Logo is an optional image reference drawn on the script-name token
	// instead of the wrapped title text.
	Logo string

	// AlmanacURL is the payload of the almanac QR token.
	AlmanacURL string

	// Bootlegger lists custom house rules; each renders one token.
	Bootlegger []string
}
