package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/execwatch/execwatch/internal/database/types"
	"go.uber.org/zap"
)

// WhitelistGate decides whether a report should suppress alerting.
// Whitelisted players are exempt from alerts but not from bans.
type WhitelistGate struct {
	store  WhitelistStore
	logger *zap.Logger
}

// NewWhitelistGate creates a new WhitelistGate instance.
func NewWhitelistGate(store WhitelistStore, logger *zap.Logger) *WhitelistGate {
	return &WhitelistGate{
		store:  store,
		logger: logger.Named("whitelist"),
	}
}

// IsWhitelisted checks if a player has a whitelist entry.
func (g *WhitelistGate) IsWhitelisted(ctx context.Context, playerID string) (bool, error) {
	whitelisted, err := g.store.Exists(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("failed to check whitelist for %s: %w", playerID, err)
	}

	return whitelisted, nil
}

// Add creates or replaces a whitelist entry. Adding the same player twice
// is harmless.
func (g *WhitelistGate) Add(ctx context.Context, playerID string, userID uint64, username, displayName string) error {
	entry := &types.WhitelistEntry{
		PlayerID:    playerID,
		UserID:      userID,
		Username:    username,
		DisplayName: displayName,
		AddedAt:     time.Now().UTC(),
	}

	if err := g.store.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("failed to whitelist %s: %w", playerID, err)
	}

	g.logger.Info("Added whitelist entry",
		zap.String("player_id", playerID),
		zap.Uint64("user_id", userID))

	return nil
}

// RemoveByPlayerID removes the whitelist entry for a player. Removing a
// non-member is a no-op.
func (g *WhitelistGate) RemoveByPlayerID(ctx context.Context, playerID string) error {
	removed, err := g.store.DeleteByPlayerID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to remove whitelist entry for %s: %w", playerID, err)
	}

	g.logger.Info("Removed whitelist entry",
		zap.String("player_id", playerID),
		zap.Bool("existed", removed))

	return nil
}

// RemoveByUserID removes the whitelist entry linked to a Discord account.
// Removing a non-member is a no-op.
func (g *WhitelistGate) RemoveByUserID(ctx context.Context, userID uint64) error {
	removed, err := g.store.DeleteByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to remove whitelist entry for user %d: %w", userID, err)
	}

	g.logger.Info("Removed whitelist entry",
		zap.Uint64("user_id", userID),
		zap.Bool("existed", removed))

	return nil
}

// List retrieves all whitelist entries.
func (g *WhitelistGate) List(ctx context.Context) ([]*types.WhitelistEntry, error) {
	entries, err := g.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list whitelist entries: %w", err)
	}

	return entries, nil
}
