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

// BanModel handles database operations for player bans.
type BanModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewBan creates a new BanModel instance.
func NewBan(db *bun.DB, logger *zap.Logger) *BanModel {
	return &BanModel{
		db:     db,
		logger: logger.Named("db_ban"),
	}
}

// Upsert creates or replaces the ban record for a player.
// The player ID is the primary key, so last write wins.
func (m *BanModel) Upsert(ctx context.Context, record *types.Ban) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(record).
			On("CONFLICT (player_id) DO UPDATE").
			Set("reason = EXCLUDED.reason").
			Set("banned_at = EXCLUDED.banned_at").
			Set("expires_at = EXCLUDED.expires_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert ban: %w", err)
		}

		return nil
	})
}

// Get retrieves the ban record for a player.
// Returns nil without error when the player is not banned.
func (m *BanModel) Get(ctx context.Context, playerID string) (*types.Ban, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Ban, error) {
		var ban types.Ban

		err := m.db.NewSelect().
			Model(&ban).
			Where("player_id = ?", playerID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}

			return nil, fmt.Errorf("failed to get ban: %w", err)
		}

		return &ban, nil
	})
}

// Delete removes the ban record for a player.
// Returns true if a ban was removed, false if the player wasn't banned.
func (m *BanModel) Delete(ctx context.Context, playerID string) (bool, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (bool, error) {
		result, err := m.db.NewDelete().
			Model((*types.Ban)(nil)).
			Where("player_id = ?", playerID).
			Exec(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to delete ban: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return false, err
		}

		return affected > 0, nil
	})
}

// DeleteAll removes every ban record and returns the number removed.
func (m *BanModel) DeleteAll(ctx context.Context) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		result, err := m.db.NewDelete().
			Model((*types.Ban)(nil)).
			Where("TRUE").
			Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to delete all bans: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}

		return affected, nil
	})
}

// List retrieves all ban records.
func (m *BanModel) List(ctx context.Context) ([]*types.Ban, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Ban, error) {
		var bans []*types.Ban

		err := m.db.NewSelect().
			Model(&bans).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list bans: %w", err)
		}

		return bans, nil
	})
}
