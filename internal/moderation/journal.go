package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/execwatch/execwatch/internal/database/types"
	"go.uber.org/zap"
)

// HistoryLimit caps how many records a history query returns.
const HistoryLimit = 10

// Journal appends one immutable record per report and answers history
// queries. Journaling is on the critical path of report intake: it is the
// only audit evidence, so a store failure aborts the report.
type Journal struct {
	store  ExecutionStore
	logger *zap.Logger
}

// NewJournal creates a new Journal instance.
func NewJournal(store ExecutionStore, logger *zap.Logger) *Journal {
	return &Journal{
		store:  store,
		logger: logger.Named("journal"),
	}
}

// Record appends one execution record with a server-assigned timestamp.
func (j *Journal) Record(ctx context.Context, playerID, username, displayName string) error {
	record := &types.ExecutionRecord{
		PlayerID:    playerID,
		Username:    username,
		DisplayName: displayName,
		ExecutedAt:  time.Now().UTC(),
	}

	if err := j.store.Insert(ctx, record); err != nil {
		return fmt.Errorf("failed to journal execution for %s: %w", playerID, err)
	}

	j.logger.Debug("Journaled execution",
		zap.String("player_id", playerID),
		zap.String("username", username))

	return nil
}

// History retrieves up to HistoryLimit records whose player ID, username
// or display name exactly equals the value, newest first. No match yields
// an empty result, not an error.
func (j *Journal) History(ctx context.Context, value string) ([]*types.ExecutionRecord, error) {
	records, err := j.store.Search(ctx, value, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query execution history: %w", err)
	}

	return records, nil
}
