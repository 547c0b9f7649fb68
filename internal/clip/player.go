package clip

import (
	"fmt"
	"strings"
)

// Player identifies the athlete whose clip tree is being processed. It is
// supplied once per run and never mutated afterwards.
type Player struct {
	First string
	Last  string
}

// NewPlayer trims surrounding whitespace from both name parts and validates
// that neither is empty.
func NewPlayer(first, last string) (Player, error) {
	p := Player{
		First: strings.TrimSpace(first),
		Last:  strings.TrimSpace(last),
	}
	if p.First == "" || p.Last == "" {
		return Player{}, fmt.Errorf("player first and last name are required")
	}
	return p, nil
}

// FullName returns the canonical space-joined form, e.g. "Keldon Johnson".
func (p Player) FullName() string {
	return p.First + " " + p.Last
}

// LegacyName returns the underscore-joined form used by legacy filenames,
// e.g. "Keldon_Johnson".
func (p Player) LegacyName() string {
	return p.First + "_" + p.Last
}

// MappingCSVName returns the legacy name of the player's URL mapping file.
func (p Player) MappingCSVName() string {
	return p.LegacyName() + mappingCSVSuffix
}

// CanonicalMappingCSVName returns the canonical name of the URL mapping file.
func (p Player) CanonicalMappingCSVName() string {
	return p.FullName() + mappingCSVSuffix
}
