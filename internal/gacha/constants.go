package gacha

import (
	"time"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
)

// ============================================================================
// Rate Resolution
// ============================================================================

// LegendarySoftPityShare is the fraction of the soft pity step added to the
// legendary rate on every pull past the soft pity threshold.
const LegendarySoftPityShare = 0.5

// HardPityEpicRate is the epic rate forced once hard pity is reached. Rates are
// never renormalized, so this makes anything below Epic unreachable.
const HardPityEpicRate = 1.0

// BatchGuaranteeTier is the minimum tier every batch must contain.
const BatchGuaranteeTier = domain.RarityRare

// ============================================================================
// Status Cache
// ============================================================================

const (
	DefaultStatusCacheSize = 10000
	DefaultStatusCacheTTL  = 5 * time.Minute
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgPullResolved          = "Pull resolved"
	LogMsgBatchResolved         = "Batch pull resolved"
	LogMsgRareGuaranteeApplied  = "Rare guarantee promoted pull"
	LogMsgHardPityApplied       = "Hard pity forced epic-or-better"
	LogMsgBatchGuaranteeApplied = "Batch guarantee replaced last result"
	LogMsgPersistFailed         = "Failed to persist pity state; durable counters are possibly stale"
	LogMsgPendingFlushed        = "Previously unconfirmed pity state persisted"
	LogMsgPendingFlushFailed    = "Previous draw still unconfirmed; refusing new draw"
	LogMsgPendingSuperseded     = "Stored pity changed since unconfirmed draw; keeping stored counters"
	LogMsgLoadFailed            = "Failed to load pity state"
	LogMsgCatalogEmpty          = "Catalog has no eligible spirits; check catalog configuration"
	LogMsgPityReset             = "Pity state reset by support tooling"
	LogMsgPublishFailed         = "Failed to publish gacha event"
)

// Log field keys for structured logging
const (
	LogFieldPlayerID   = "player_id"
	LogFieldTier       = "tier"
	LogFieldSpiritID   = "spirit_id"
	LogFieldCount      = "count"
	LogFieldPityState  = "pity_state"
	LogFieldGuaranteed = "guaranteed"
	LogFieldError      = "error"
	LogFieldDiscarded  = "discarded_state"
)

// ============================================================================
// Error Context Messages
// ============================================================================

const (
	ErrContextFailedToLoadPity      = "failed to load pity state"
	ErrContextFailedToLoadOwnership = "failed to load owned spirits"
	ErrContextFailedToFlushPending  = "previous draw not yet persisted"
	ErrContextFailedToResetPity     = "failed to reset pity state"
	ErrContextFailedToReadConfig    = "failed to read gacha config file"
	ErrContextFailedToParseConfig   = "failed to parse gacha config"
)
