package gacha

import (
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
)

// statusCache holds confirmed pity state for status reads. Only states that
// were durably saved (or loaded) go in; unconfirmed state lives in pending.
// A nil cache is valid and caches nothing.
type statusCache struct {
	lru *expirable.LRU[string, domain.PityState]
}

func newStatusCache(cfg StatusCacheConfig) *statusCache {
	if cfg.Size <= 0 {
		return nil
	}
	return &statusCache{lru: expirable.NewLRU[string, domain.PityState](cfg.Size, nil, cfg.TTL)}
}

func (c *statusCache) get(playerID string) (domain.PityState, bool) {
	if c == nil {
		return domain.PityState{}, false
	}
	return c.lru.Get(playerID)
}

func (c *statusCache) put(playerID string, state domain.PityState) {
	if c == nil {
		return
	}
	c.lru.Add(playerID, state)
}

func (c *statusCache) invalidate(playerID string) {
	if c == nil {
		return
	}
	c.lru.Remove(playerID)
}
