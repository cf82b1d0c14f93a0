package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/execwatch/execwatch/internal/database/dbretry"
	"github.com/execwatch/execwatch/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// WhitelistModel handles database operations for alert-exempt players.
type WhitelistModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewWhitelist creates a new WhitelistModel instance.
func NewWhitelist(db *bun.DB, logger *zap.Logger) *WhitelistModel {
	return &WhitelistModel{
		db:     db,
		logger: logger.Named("db_whitelist"),
	}
}

// Upsert creates or replaces a whitelist entry. Adding the same player
// twice is harmless.
func (m *WhitelistModel) Upsert(ctx context.Context, entry *types.WhitelistEntry) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(entry).
			On("CONFLICT (player_id) DO UPDATE").
			Set("user_id = EXCLUDED.user_id").
			Set("username = EXCLUDED.username").
			Set("display_name = EXCLUDED.display_name").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert whitelist entry: %w", err)
		}

		return nil
	})
}

// Exists checks if a player has a whitelist entry.
func (m *WhitelistModel) Exists(ctx context.Context, playerID string) (bool, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (bool, error) {
		exists, err := m.db.NewSelect().
			Model((*types.WhitelistEntry)(nil)).
			Where("player_id = ?", playerID).
			Exists(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("failed to check whitelist entry: %w", err)
		}

		return exists, nil
	})
}

// DeleteByPlayerID removes the whitelist entry for a player.
// Removing a non-member is a no-op.
func (m *WhitelistModel) DeleteByPlayerID(ctx context.Context, playerID string) (bool, error) {
	return m.delete(ctx, "player_id = ?", playerID)
}

// DeleteByUserID removes the whitelist entry linked to a Discord account.
// Removing a non-member is a no-op.
func (m *WhitelistModel) DeleteByUserID(ctx context.Context, userID uint64) (bool, error) {
	return m.delete(ctx, "user_id = ?", userID)
}

func (m *WhitelistModel) delete(ctx context.Context, where string, arg any) (bool, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (bool, error) {
		result, err := m.db.NewDelete().
			Model((*types.WhitelistEntry)(nil)).
			Where(where, arg).
			Exec(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to delete whitelist entry: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return false, err
		}

		return affected > 0, nil
	})
}

// List retrieves all whitelist entries.
func (m *WhitelistModel) List(ctx context.Context) ([]*types.WhitelistEntry, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.WhitelistEntry, error) {
		var entries []*types.WhitelistEntry

		err := m.db.NewSelect().
			Model(&entries).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list whitelist entries: %w", err)
		}

		return entries, nil
	})
}
