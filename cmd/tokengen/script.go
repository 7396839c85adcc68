package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	grimbound "github.com/Phauks/Grimbound-sub004"
)

// scriptEntry is one element of a script JSON file. The image field accepts
// either a single reference or a list of variant references.
type scriptEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	Ability   string    `json:"ability"`
	Image     imageRefs `json:"image"`
	Reminders []string  `json:"reminders"`
	Setup     bool      `json:"setup"`
	Official  bool      `json:"official"`

	// _meta entries describe the script itself.
	Author     string   `json:"author"`
	Logo       string   `json:"logo"`
	Almanac    string   `json:"almanac"`
	Bootlegger []string `json:"bootlegger"`
}

// imageRefs unmarshals "x" and ["x", "y"] alike.
type imageRefs []string

func (i *imageRefs) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*i = imageRefs{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*i = imageRefs(many)
	return nil
}

// loadScript reads a script JSON file: a list of character entries, with an
// optional leading "_meta" entry carrying the script title, author, logo and
// almanac link.
func loadScript(path string) ([]grimbound.Character, grimbound.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, grimbound.Script{}, err
	}

	var entries []scriptEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, grimbound.Script{}, fmt.Errorf("parse %s: %w", path, err)
	}

	var roster []grimbound.Character
	var script grimbound.Script
	for _, e := range entries {
		if e.ID == "_meta" {
			script.Title = e.Name
			script.Author = e.Author
			script.Logo = e.Logo
			script.AlmanacURL = e.Almanac
			script.Bootlegger = e.Bootlegger
			continue
		}
		roster = append(roster, grimbound.Character{
			ID:        e.ID,
			Name:      e.Name,
			Team:      grimbound.ParseTeam(e.Team),
			Ability:   e.Ability,
			Portraits: e.Image,
			Reminders: e.Reminders,
			Setup:     e.Setup,
			Official:  e.Official,
			UUID:      uuid.NewSHA1(uuid.NameSpaceURL, []byte("grimbound:"+e.ID)),
		})
	}
	return roster, script, nil
}
