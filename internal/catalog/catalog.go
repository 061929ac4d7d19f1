// Package catalog loads the spirit list and serves the eligible-by-tier view
// the gacha engine draws from.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
)

// File is the on-disk layout of the catalog file
type File struct {
	Version string  `yaml:"version"`
	Spirits []Entry `yaml:"spirits"`
}

// Entry is one spirit as written in the file. Rarity has no default: a
// missing key would otherwise decode as Common.
type Entry struct {
	ID        domain.SpiritID    `yaml:"id"`
	Name      string             `yaml:"name"`
	Element   string             `yaml:"element"`
	Rarity    *domain.RarityTier `yaml:"rarity"`
	Exclusive bool               `yaml:"exclusive"`
}

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	version  string
	byID     map[domain.SpiritID]domain.Spirit
	eligible map[domain.RarityTier][]domain.Spirit
	all      []domain.Spirit
	total    int
}

// Load reads and indexes a YAML catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML catalog data
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	spirits := make([]domain.Spirit, 0, len(f.Spirits))
	for i, e := range f.Spirits {
		if e.Rarity == nil {
			return nil, fmt.Errorf("%w: spirit #%d (%s) has no rarity", domain.ErrInvalidInput, i, e.ID)
		}
		spirits = append(spirits, domain.Spirit{
			ID:        e.ID,
			Name:      e.Name,
			Element:   e.Element,
			Rarity:    *e.Rarity,
			Exclusive: e.Exclusive,
		})
	}
	c, err := New(spirits)
	if err != nil {
		return nil, err
	}
	c.version = f.Version
	return c, nil
}

// New indexes spirits. Ids must be unique and non-empty. Exclusive spirits are
// kept for lookups but never offered to draws.
func New(spirits []domain.Spirit) (*Catalog, error) {
	c := &Catalog{
		byID:     make(map[domain.SpiritID]domain.Spirit, len(spirits)),
		eligible: make(map[domain.RarityTier][]domain.Spirit),
	}

	for i, s := range spirits {
		s.ID = domain.SpiritID(strings.TrimSpace(string(s.ID)))
		if s.ID == "" {
			return nil, fmt.Errorf("%w: spirit #%d has no id", domain.ErrInvalidInput, i)
		}
		if !s.Rarity.Valid() {
			return nil, fmt.Errorf("%w: spirit %s has invalid rarity", domain.ErrInvalidInput, s.ID)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate spirit id %s", domain.ErrInvalidInput, s.ID)
		}

		c.byID[s.ID] = s
		c.total++
		if s.Exclusive {
			continue
		}
		c.eligible[s.Rarity] = append(c.eligible[s.Rarity], s)
		c.all = append(c.all, s)
	}
	return c, nil
}

// Version is the file's version string, empty for catalogs built with New.
func (c *Catalog) Version() string {
	return c.version
}

// Eligible returns the drawable spirits of a tier. Callers must not modify it.
func (c *Catalog) Eligible(tier domain.RarityTier) []domain.Spirit {
	return c.eligible[tier]
}

// AllEligible returns every drawable spirit. Callers must not modify it.
func (c *Catalog) AllEligible() []domain.Spirit {
	return c.all
}

// Get looks a spirit up by id, exclusive or not
func (c *Catalog) Get(id domain.SpiritID) (domain.Spirit, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Len is the number of spirits including exclusives
func (c *Catalog) Len() int {
	return c.total
}

// EligibleCounts reports drawable spirits per tier, for startup logging.
func (c *Catalog) EligibleCounts() map[string]int {
	counts := make(map[string]int, len(domain.RarityTiers))
	for _, tier := range domain.RarityTiers {
		counts[tier.String()] = len(c.eligible[tier])
	}
	return counts
}
