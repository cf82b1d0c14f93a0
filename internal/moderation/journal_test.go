package moderation_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/execwatch/execwatch/internal/database/types"
	"github.com/execwatch/execwatch/internal/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupJournalTest(t *testing.T) (*moderation.Journal, *fakeExecutionStore) {
	t.Helper()

	store := newFakeExecutionStore()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	return moderation.NewJournal(store, logger), store
}

func TestRecordAssignsTimestamp(t *testing.T) {
	t.Parallel()

	journal, store := setupJournalTest(t)

	ctx := t.Context()
	require.NoError(t, journal.Record(ctx, "P1", "u1", "d1"))

	records, err := store.Search(ctx, "P1", moderation.HistoryLimit)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.WithinDuration(t, time.Now(), records[0].ExecutedAt, 5*time.Second)
}

func TestHistoryMatchesAnyIdentityField(t *testing.T) {
	t.Parallel()

	journal, _ := setupJournalTest(t)

	ctx := t.Context()
	require.NoError(t, journal.Record(ctx, "P1", "alice", "Alice"))
	require.NoError(t, journal.Record(ctx, "P2", "bob", "Bob"))

	for _, value := range []string{"P1", "alice", "Alice"} {
		records, err := journal.History(ctx, value)
		require.NoError(t, err)
		require.Len(t, records, 1, "value %q", value)
		assert.Equal(t, "P1", records[0].PlayerID)
	}

	// Exact equality, not substring match
	records, err := journal.History(ctx, "ali")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryOrderingAndLimit(t *testing.T) {
	t.Parallel()

	journal, store := setupJournalTest(t)

	ctx := t.Context()
	base := time.Now().Add(-time.Hour)

	for i := range 15 {
		require.NoError(t, store.Insert(ctx, &types.ExecutionRecord{
			PlayerID:    "P1",
			Username:    fmt.Sprintf("u%d", i),
			DisplayName: "d1",
			ExecutedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	records, err := journal.History(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, records, moderation.HistoryLimit)

	// Most recent first
	assert.Equal(t, "u14", records[0].Username)

	for i := 1; i < len(records); i++ {
		assert.True(t, records[i].ExecutedAt.Before(records[i-1].ExecutedAt),
			"records must be ordered newest first")
	}
}

func TestHistoryNoMatchIsEmptyNotError(t *testing.T) {
	t.Parallel()

	journal, _ := setupJournalTest(t)

	records, err := journal.History(t.Context(), "missing")
	require.NoError(t, err)
	assert.Empty(t, records)
}
