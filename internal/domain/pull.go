package domain

// PityState holds the per-player counters that bias the next draw.
// Both streak counters reset independently, so no ordering holds between them.
type PityState struct {
	PullsSinceRare uint32 `json:"pulls_since_rare"`
	PullsSinceEpic uint32 `json:"pulls_since_epic"`
	TotalPulls     uint32 `json:"total_pulls"`
}

// PityStatus is the read-only view shown to players ("pulls until guarantee").
type PityStatus struct {
	PlayerID                string    `json:"player_id"`
	State                   PityState `json:"state"`
	PullsUntilRareGuarantee uint32    `json:"pulls_until_rare_guarantee"`
	PullsUntilHardPity      uint32    `json:"pulls_until_hard_pity"`
	InSoftPity              bool      `json:"in_soft_pity"`
	Unconfirmed             bool      `json:"unconfirmed,omitempty"`
}

// DuplicateReward is the currency paid out when a drawn spirit is already owned.
type DuplicateReward struct {
	Amount int64 `json:"amount"`
}

// IsZero reports whether no reward is due.
func (r DuplicateReward) IsZero() bool {
	return r.Amount == 0
}

// PullResult is the outcome of one draw.
type PullResult struct {
	SpiritID         SpiritID        `json:"spirit_id"`
	Rarity           RarityTier      `json:"rarity"`
	IsNewAcquisition bool            `json:"is_new_acquisition"`
	IsGuaranteed     bool            `json:"is_guaranteed"`
	DuplicateReward  DuplicateReward `json:"duplicate_reward"`
	// Unconfirmed is set when the durable save after this draw failed.
	Unconfirmed bool `json:"unconfirmed,omitempty"`
}
