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

// AdminModel handles database operations for operator authorization checks.
type AdminModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAdmin creates a new AdminModel instance.
func NewAdmin(db *bun.DB, logger *zap.Logger) *AdminModel {
	return &AdminModel{
		db:     db,
		logger: logger.Named("db_admin"),
	}
}

// IsAdmin checks if a Discord account is authorized to run moderation commands.
func (m *AdminModel) IsAdmin(ctx context.Context, discordID uint64) (bool, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (bool, error) {
		exists, err := m.db.NewSelect().
			Model((*types.Admin)(nil)).
			Where("discord_id = ?", discordID).
			Exists(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("failed to check admin status: %w", err)
		}

		return exists, nil
	})
}
