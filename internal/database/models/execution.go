package models

import (
	"context"
	"fmt"

	"github.com/execwatch/execwatch/internal/database/dbretry"
	"github.com/execwatch/execwatch/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ExecutionModel handles database operations for the execution journal.
type ExecutionModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewExecution creates a new ExecutionModel instance.
func NewExecution(db *bun.DB, logger *zap.Logger) *ExecutionModel {
	return &ExecutionModel{
		db:     db,
		logger: logger.Named("db_execution"),
	}
}

// Insert appends one execution record to the journal.
func (m *ExecutionModel) Insert(ctx context.Context, record *types.ExecutionRecord) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(record).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert execution record: %w", err)
		}

		return nil
	})
}

// Search retrieves the most recent execution records whose player ID,
// username or display name exactly equals the given value.
func (m *ExecutionModel) Search(ctx context.Context, value string, limit int) ([]*types.ExecutionRecord, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.ExecutionRecord, error) {
		var records []*types.ExecutionRecord

		err := m.db.NewSelect().
			Model(&records).
			Where("player_id = ? OR username = ? OR display_name = ?", value, value, value).
			OrderExpr("executed_at DESC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to search execution records: %w", err)
		}

		return records, nil
	})
}
