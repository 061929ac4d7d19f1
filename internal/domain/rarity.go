package domain

import (
	"fmt"
	"strings"
)

// RarityTier is the ordered rarity class of a spirit. Higher values are rarer.
type RarityTier int

const (
	RarityCommon RarityTier = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

// RarityTiers lists every tier from most common to rarest.
var RarityTiers = []RarityTier{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
}

var rarityNames = map[RarityTier]string{
	RarityCommon:    "common",
	RarityUncommon:  "uncommon",
	RarityRare:      "rare",
	RarityEpic:      "epic",
	RarityLegendary: "legendary",
}

// String returns the lowercase tier name used in config files and JSON.
func (t RarityTier) String() string {
	if name, ok := rarityNames[t]; ok {
		return name
	}
	return fmt.Sprintf("rarity(%d)", int(t))
}

// Valid reports whether t is one of the five known tiers.
func (t RarityTier) Valid() bool {
	return t >= RarityCommon && t <= RarityLegendary
}

// AtLeast reports whether t is the same tier as min or rarer.
func (t RarityTier) AtLeast(min RarityTier) bool {
	return t >= min
}

// ParseRarityTier converts a tier name into a RarityTier (case-insensitive).
func ParseRarityTier(s string) (RarityTier, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for tier, name := range rarityNames {
		if name == needle {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown rarity %q", ErrInvalidInput, s)
}

// MarshalText encodes the tier by name so YAML and JSON stay human readable.
func (t RarityTier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: rarity %d", ErrInvalidInput, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name.
func (t *RarityTier) UnmarshalText(text []byte) error {
	parsed, err := ParseRarityTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
