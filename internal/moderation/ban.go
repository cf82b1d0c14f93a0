package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/execwatch/execwatch/internal/database/types"
	"go.uber.org/zap"
)

// BanState describes the outcome of a ban check.
type BanState int

const (
	// BanStateNone means no ban record exists for the player.
	BanStateNone BanState = iota
	// BanStateActive means the player is currently banned.
	BanStateActive
	// BanStateExpired means a temporary ban was found past its expiry.
	// Equivalent to none for blocking purposes, but distinguished so
	// callers can log the transition.
	BanStateExpired
)

// String returns the state name for logging.
func (s BanState) String() string {
	switch s {
	case BanStateNone:
		return "none"
	case BanStateActive:
		return "active"
	case BanStateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// BanStatus is the result of evaluating a player's ban record.
type BanStatus struct {
	State  BanState
	Reason string
}

// EvaluateBan decides the ban state for a record at the given instant.
// The decision is pure; the caller applies any store mutation it implies.
// An expiry exactly equal to now counts as expired so a ban that lapsed
// this instant is never reported as still active.
func EvaluateBan(ban *types.Ban, now time.Time) BanStatus {
	if ban == nil {
		return BanStatus{State: BanStateNone}
	}

	if ban.ExpiresAt != nil && !ban.ExpiresAt.After(now) {
		return BanStatus{State: BanStateExpired}
	}

	return BanStatus{State: BanStateActive, Reason: ban.Reason}
}

// BanManager owns the decision of whether a player is currently banned,
// including lazy removal of expired temporary bans. There is no background
// sweeper; expiry is observed on access.
type BanManager struct {
	store  BanStore
	logger *zap.Logger
}

// NewBanManager creates a new BanManager instance.
func NewBanManager(store BanStore, logger *zap.Logger) *BanManager {
	return &BanManager{
		store:  store,
		logger: logger.Named("ban"),
	}
}

// CheckAndReconcile looks up the ban for a player and removes it if it has
// expired. A store failure fails closed: the caller gets an error rather
// than an unbanned verdict it cannot trust.
func (m *BanManager) CheckAndReconcile(ctx context.Context, playerID string) (BanStatus, error) {
	ban, err := m.store.Get(ctx, playerID)
	if err != nil {
		return BanStatus{}, fmt.Errorf("failed to look up ban for %s: %w", playerID, err)
	}

	status := EvaluateBan(ban, time.Now())
	if status.State == BanStateExpired {
		if _, err := m.store.Delete(ctx, playerID); err != nil {
			return BanStatus{}, fmt.Errorf("failed to remove expired ban for %s: %w", playerID, err)
		}

		m.logger.Info("Removed expired ban",
			zap.String("player_id", playerID),
			zap.String("reason", ban.Reason))
	}

	return status, nil
}

// SetBan creates or replaces the ban for a player. A nil expiry makes the
// ban permanent. No history of prior bans is kept; the execution journal
// is the only audit trail.
func (m *BanManager) SetBan(ctx context.Context, playerID, reason string, expiresAt *time.Time) error {
	record := &types.Ban{
		PlayerID:  playerID,
		Reason:    reason,
		BannedAt:  time.Now().UTC(),
		ExpiresAt: expiresAt,
	}

	if err := m.store.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to set ban for %s: %w", playerID, err)
	}

	m.logger.Info("Set ban",
		zap.String("player_id", playerID),
		zap.String("reason", reason),
		zap.Bool("permanent", expiresAt == nil))

	return nil
}

// ClearBan removes the ban for a player. Clearing a player who isn't
// banned is a no-op, not an error.
func (m *BanManager) ClearBan(ctx context.Context, playerID string) error {
	removed, err := m.store.Delete(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to clear ban for %s: %w", playerID, err)
	}

	m.logger.Info("Cleared ban",
		zap.String("player_id", playerID),
		zap.Bool("existed", removed))

	return nil
}

// ClearAllBans removes every ban record and returns the number removed.
func (m *BanManager) ClearAllBans(ctx context.Context) (int64, error) {
	removed, err := m.store.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear all bans: %w", err)
	}

	m.logger.Info("Cleared all bans", zap.Int64("count", removed))

	return removed, nil
}

// ListBans retrieves all ban records.
func (m *BanManager) ListBans(ctx context.Context) ([]*types.Ban, error) {
	bans, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bans: %w", err)
	}

	return bans, nil
}
