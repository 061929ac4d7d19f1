package domain

// SpiritID identifies a collectible in the catalog.
type SpiritID string

// Spirit is one catalog entry. Exclusive spirits never come out of a random draw;
// they are granted through other channels (events, quests, shop).
type Spirit struct {
	ID        SpiritID   `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Element   string     `json:"element,omitempty" yaml:"element"`
	Rarity    RarityTier `json:"rarity" yaml:"rarity"`
	Exclusive bool       `json:"exclusive,omitempty" yaml:"exclusive"`
}

// OwnershipSet is the set of spirits a player has acquired. It only ever grows.
type OwnershipSet map[SpiritID]struct{}

// NewOwnershipSet builds a set from a list of ids, dropping duplicates.
func NewOwnershipSet(ids []SpiritID) OwnershipSet {
	set := make(OwnershipSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is owned.
func (s OwnershipSet) Has(id SpiritID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id and reports whether it was newly added.
func (s OwnershipSet) Add(id SpiritID) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}
