package gacha

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/osse101/SpiritSummon_Go/internal/concurrency"
	"github.com/osse101/SpiritSummon_Go/internal/domain"
	"github.com/osse101/SpiritSummon_Go/internal/event"
	"github.com/osse101/SpiritSummon_Go/internal/logger"
	"github.com/osse101/SpiritSummon_Go/internal/metrics"
	"github.com/osse101/SpiritSummon_Go/internal/repository"
)

// Service is the gameplay surface of the engine. Payment happens before these
// calls, in the wallet collaborator; this package never debits anything.
type Service interface {
	SinglePull(ctx context.Context, playerID string) (domain.PullResult, error)
	BatchPull(ctx context.Context, playerID string, count uint32) ([]domain.PullResult, error)
	// DefaultBatchSize is the configured batch_pull_count, used when a caller
	// does not name a count.
	DefaultBatchSize() uint32
	GetPityStatus(ctx context.Context, playerID string) (domain.PityStatus, error)
}

// SupportService carries operations for support tooling only. It is never
// wired into a gameplay transport.
type SupportService interface {
	GetPityStatus(ctx context.Context, playerID string) (domain.PityStatus, error)
	ResetPity(ctx context.Context, playerID string) error
}

// pendingSave is a draw outcome whose save failed and must land before the
// player's next draw. base is the persisted state the draw started from.
type pendingSave struct {
	base     domain.PityState
	state    domain.PityState
	acquired []domain.SpiritID
}

type service struct {
	repo    repository.Gacha
	catalog CatalogView
	cfg     Config
	rng     RandomSource
	locks   *concurrency.LockManager
	bus     event.Bus
	cache   *statusCache

	pendingMu sync.Mutex
	pending   map[string]pendingSave
}

// draw is one slot of a single or batch pull before ownership is resolved.
type draw struct {
	spirit     domain.Spirit
	guaranteed bool
}

// NewService creates the gacha engine. rng and lockManager may be nil, in which
// case the crypto source and a private lock manager are used. bus may be nil.
func NewService(repo repository.Gacha, catalog CatalogView, cfg Config, rng RandomSource, lockManager *concurrency.LockManager, bus event.Bus) (Service, error) {
	return newService(repo, catalog, cfg, rng, lockManager, bus)
}

// NewSupportService creates the engine behind the support-only surface.
func NewSupportService(repo repository.Gacha, catalog CatalogView, cfg Config, lockManager *concurrency.LockManager) (SupportService, error) {
	return newService(repo, catalog, cfg, nil, lockManager, nil)
}

func newService(repo repository.Gacha, catalog CatalogView, cfg Config, rng RandomSource, lockManager *concurrency.LockManager, bus event.Bus) (*service, error) {
	if repo == nil {
		return nil, errors.New("gacha: repository is required")
	}
	if catalog == nil {
		return nil, errors.New("gacha: catalog is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	if lockManager == nil {
		lockManager = concurrency.NewLockManager()
	}

	return &service{
		repo:    repo,
		catalog: catalog,
		cfg:     cfg,
		rng:     rng,
		locks:   lockManager,
		bus:     bus,
		cache:   newStatusCache(cfg.StatusCache),
		pending: make(map[string]pendingSave),
	}, nil
}

// SinglePull performs exactly one draw.
func (s *service) SinglePull(ctx context.Context, playerID string) (domain.PullResult, error) {
	results, err := s.pull(ctx, playerID, 1, false)
	if err != nil {
		return domain.PullResult{}, err
	}
	return results[0], nil
}

// BatchPull performs count draws in sequence and enforces the batch guarantee.
func (s *service) BatchPull(ctx context.Context, playerID string, count uint32) ([]domain.PullResult, error) {
	if count == 0 || count > s.cfg.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d (allowed 1..%d)", domain.ErrInvalidBatchSize, count, s.cfg.MaxBatchSize)
	}
	return s.pull(ctx, playerID, count, true)
}

func (s *service) DefaultBatchSize() uint32 {
	return s.cfg.BatchPullCount
}

func (s *service) pull(ctx context.Context, playerID string, count uint32, batch bool) ([]domain.PullResult, error) {
	playerID, err := normalizePlayerID(playerID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	mode := metrics.ModeSingle
	if batch {
		mode = metrics.ModeBatch
	}
	defer func() {
		metrics.PullDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}()

	log := logger.FromContext(ctx).With(LogFieldPlayerID, playerID)

	unlock := s.locks.Lock(playerID)
	defer unlock()

	if err := s.flushPending(ctx, playerID); err != nil {
		return nil, err
	}

	state, owned, err := s.load(ctx, playerID)
	if err != nil {
		return nil, err
	}

	loaded := state
	draws := make([]draw, 0, count)
	for i := uint32(0); i < count; i++ {
		d, next, err := s.drawOne(ctx, state)
		if err != nil {
			return nil, err
		}
		state = next
		draws = append(draws, d)
	}

	if batch {
		if err := s.applyBatchGuarantee(ctx, draws); err != nil {
			return nil, err
		}
	}

	results := make([]domain.PullResult, len(draws))
	acquired := make([]domain.SpiritID, 0, len(draws))
	for i, d := range draws {
		isNew, reward := ResolveOwnership(d.spirit, owned, s.cfg.DuplicateValues)
		if isNew {
			acquired = append(acquired, d.spirit.ID)
		}
		results[i] = domain.PullResult{
			SpiritID:         d.spirit.ID,
			Rarity:           d.spirit.Rarity,
			IsNewAcquisition: isNew,
			IsGuaranteed:     d.guaranteed,
			DuplicateReward:  reward,
		}
	}

	confirmed := s.save(ctx, playerID, loaded, state, acquired)
	if !confirmed {
		for i := range results {
			results[i].Unconfirmed = true
		}
	}

	if batch {
		log.Info(LogMsgBatchResolved, LogFieldCount, len(results), LogFieldPityState, state)
	} else {
		log.Info(LogMsgPullResolved,
			LogFieldSpiritID, results[0].SpiritID,
			LogFieldTier, results[0].Rarity.String(),
			LogFieldGuaranteed, results[0].IsGuaranteed)
	}

	s.publish(ctx, playerID, results, batch, state, !confirmed)
	return results, nil
}

// drawOne runs the rate resolver, tier sampler and item selector for one slot.
// The returned state already reflects this draw's sampled tier.
func (s *service) drawOne(ctx context.Context, state domain.PityState) (draw, domain.PityState, error) {
	th := ResolveThresholds(state, s.cfg.Rates, s.cfg.Pity)
	forceRare := ForceRare(state, s.cfg.Pity)

	tier, guaranteed := SampleTier(s.rng.Float64(), th, forceRare)
	if guaranteed {
		log := logger.FromContext(ctx)
		if th.HardPity && tier.AtLeast(domain.RarityEpic) {
			metrics.GuaranteesApplied.WithLabelValues(metrics.GuaranteeHardPity).Inc()
			log.Debug(LogMsgHardPityApplied, LogFieldPityState, state)
		} else {
			metrics.GuaranteesApplied.WithLabelValues(metrics.GuaranteeRareInterval).Inc()
			log.Debug(LogMsgRareGuaranteeApplied, LogFieldPityState, state)
		}
	}

	next := AdvancePity(state, tier)

	spirit, err := SelectSpirit(s.catalog, tier, s.rng)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgCatalogEmpty, LogFieldTier, tier.String(), LogFieldError, err)
		return draw{}, state, err
	}
	return draw{spirit: spirit, guaranteed: guaranteed}, next, nil
}

// applyBatchGuarantee replaces the last slot with a Rare-or-better spirit when
// nothing in the batch reached Rare. Pity counters are left as the natural
// rolls produced them.
func (s *service) applyBatchGuarantee(ctx context.Context, draws []draw) error {
	for _, d := range draws {
		if d.spirit.Rarity.AtLeast(BatchGuaranteeTier) {
			return nil
		}
	}

	spirit, err := SelectSpiritAtLeast(s.catalog, BatchGuaranteeTier, s.rng)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgCatalogEmpty, LogFieldTier, BatchGuaranteeTier.String(), LogFieldError, err)
		return err
	}

	last := len(draws) - 1
	draws[last] = draw{spirit: spirit, guaranteed: true}

	metrics.GuaranteesApplied.WithLabelValues(metrics.GuaranteeBatch).Inc()
	logger.FromContext(ctx).Debug(LogMsgBatchGuaranteeApplied, LogFieldSpiritID, spirit.ID)
	return nil
}

func (s *service) load(ctx context.Context, playerID string) (domain.PityState, domain.OwnershipSet, error) {
	state, err := s.repo.GetPityState(ctx, playerID)
	if err != nil {
		return domain.PityState{}, nil, s.loadFailure(ctx, ErrContextFailedToLoadPity, err)
	}

	ids, err := s.repo.GetOwnedSpirits(ctx, playerID)
	if err != nil {
		return domain.PityState{}, nil, s.loadFailure(ctx, ErrContextFailedToLoadOwnership, err)
	}

	s.cache.put(playerID, state)
	return state, domain.NewOwnershipSet(ids), nil
}

func (s *service) loadFailure(ctx context.Context, msg string, err error) error {
	metrics.PersistenceFailures.WithLabelValues(metrics.OperationLoad).Inc()
	logger.FromContext(ctx).Error(LogMsgLoadFailed, LogFieldError, err)
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistenceUnavailable, msg, err)
}

// save persists the post-draw state and reports whether it was confirmed.
// A draw that already happened is never rolled back; a failed save becomes a
// pending entry that blocks the player's next draw until it lands.
func (s *service) save(ctx context.Context, playerID string, base, state domain.PityState, acquired []domain.SpiritID) bool {
	err := s.repo.SavePullState(context.WithoutCancel(ctx), playerID, state, acquired)
	if err == nil {
		s.cache.put(playerID, state)
		return true
	}

	metrics.PersistenceFailures.WithLabelValues(metrics.OperationSave).Inc()
	logger.FromContext(ctx).Error(LogMsgPersistFailed,
		LogFieldPlayerID, playerID,
		LogFieldPityState, state,
		LogFieldError, err)

	s.cache.invalidate(playerID)
	s.setPending(playerID, pendingSave{base: base, state: state, acquired: acquired})
	return false
}

// flushPending retries a previously failed save. Must be called with the
// player's lock held. If the stored counters moved since the draw started,
// another writer (a support reset) owns them: only the acquired spirits land.
func (s *service) flushPending(ctx context.Context, playerID string) error {
	p, ok := s.getPending(playerID)
	if !ok {
		return nil
	}

	log := logger.FromContext(ctx)
	saveCtx := context.WithoutCancel(ctx)

	current, err := s.repo.GetPityState(saveCtx, playerID)
	if err != nil {
		return s.flushFailure(ctx, playerID, err)
	}

	state := p.state
	if current != p.base && current != p.state {
		log.Warn(LogMsgPendingSuperseded,
			LogFieldPlayerID, playerID,
			LogFieldPityState, current,
			LogFieldDiscarded, p.state)
		state = current
	}

	if err := s.repo.SavePullState(saveCtx, playerID, state, p.acquired); err != nil {
		return s.flushFailure(ctx, playerID, err)
	}

	s.clearPending(playerID)
	s.cache.put(playerID, state)
	log.Info(LogMsgPendingFlushed, LogFieldPlayerID, playerID, LogFieldPityState, state)
	return nil
}

func (s *service) flushFailure(ctx context.Context, playerID string, err error) error {
	metrics.PersistenceFailures.WithLabelValues(metrics.OperationFlush).Inc()
	logger.FromContext(ctx).Warn(LogMsgPendingFlushFailed, LogFieldPlayerID, playerID, LogFieldError, err)
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistenceUnavailable, ErrContextFailedToFlushPending, err)
}

func (s *service) getPending(playerID string) (pendingSave, bool) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	p, ok := s.pending[playerID]
	return p, ok
}

func (s *service) setPending(playerID string, p pendingSave) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.pending[playerID] = p
	metrics.UnconfirmedPlayers.Set(float64(len(s.pending)))
}

func (s *service) clearPending(playerID string) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	delete(s.pending, playerID)
	metrics.UnconfirmedPlayers.Set(float64(len(s.pending)))
}

func (s *service) publish(ctx context.Context, playerID string, results []domain.PullResult, batch bool, state domain.PityState, unconfirmed bool) {
	if s.bus == nil {
		return
	}

	requestID := logger.GetRequestID(ctx)
	log := logger.FromContext(ctx)

	evt := event.NewPullCompletedEvent(requestID, playerID, results, batch, state, unconfirmed)
	if err := s.bus.Publish(ctx, evt); err != nil {
		log.Warn(LogMsgPublishFailed, "event_type", evt.Type, LogFieldError, err)
	}

	for _, r := range results {
		if r.DuplicateReward.IsZero() {
			continue
		}
		dup := event.NewDuplicateConvertedEvent(requestID, playerID, r.SpiritID, r.Rarity, r.DuplicateReward.Amount)
		if err := s.bus.Publish(ctx, dup); err != nil {
			log.Warn(LogMsgPublishFailed, "event_type", dup.Type, LogFieldError, err)
		}
	}
}

// GetPityStatus returns the player's counters and the derived countdowns.
// An unsaved state is reported as-is with Unconfirmed set.
func (s *service) GetPityStatus(ctx context.Context, playerID string) (domain.PityStatus, error) {
	playerID, err := normalizePlayerID(playerID)
	if err != nil {
		return domain.PityStatus{}, err
	}

	if p, ok := s.getPending(playerID); ok {
		status := s.status(playerID, p.state)
		status.Unconfirmed = true
		return status, nil
	}

	if state, ok := s.cache.get(playerID); ok {
		return s.status(playerID, state), nil
	}

	state, err := s.repo.GetPityState(ctx, playerID)
	if err != nil {
		return domain.PityStatus{}, s.loadFailure(ctx, ErrContextFailedToLoadPity, err)
	}
	s.cache.put(playerID, state)
	return s.status(playerID, state), nil
}

func (s *service) status(playerID string, state domain.PityState) domain.PityStatus {
	return BuildPityStatus(playerID, state, s.cfg.Pity)
}

// BuildPityStatus derives the countdowns shown to players. Both countdowns
// count the draw that triggers the guarantee, so the minimum is 1.
func BuildPityStatus(playerID string, state domain.PityState, tuning PityTuning) domain.PityStatus {
	status := domain.PityStatus{
		PlayerID:                playerID,
		State:                   state,
		PullsUntilRareGuarantee: 1,
		PullsUntilHardPity:      1,
		InSoftPity:              state.PullsSinceEpic >= tuning.SoftPityStart,
	}
	if state.PullsSinceRare < tuning.GuaranteedRareInterval {
		status.PullsUntilRareGuarantee = tuning.GuaranteedRareInterval - state.PullsSinceRare
	}
	if state.PullsSinceEpic < tuning.HardPity {
		status.PullsUntilHardPity = tuning.HardPity - state.PullsSinceEpic + 1
	}
	return status
}

// ResetPity zeroes the player's counters. Owned spirits are untouched. A draw
// still unconfirmed in a gameplay process keeps its spirits but not its
// counters when that process next flushes it.
func (s *service) ResetPity(ctx context.Context, playerID string) error {
	playerID, err := normalizePlayerID(playerID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(playerID)
	defer unlock()

	if err := s.repo.ResetPityState(ctx, playerID); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistenceUnavailable, ErrContextFailedToResetPity, err)
	}

	s.cache.invalidate(playerID)
	logger.FromContext(ctx).Warn(LogMsgPityReset, LogFieldPlayerID, playerID)
	return nil
}

func normalizePlayerID(playerID string) (string, error) {
	id := strings.TrimSpace(playerID)
	if id == "" {
		return "", fmt.Errorf("%w: player id is required", domain.ErrInvalidInput)
	}
	return id, nil
}
