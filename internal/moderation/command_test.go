package moderation_test

import (
	"testing"
	"time"

	"github.com/execwatch/execwatch/internal/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	adminID    = uint64(1000)
	nonAdminID = uint64(2000)
)

type commandFixture struct {
	engine     *moderation.CommandEngine
	bans       *fakeBanStore
	whitelist  *fakeWhitelistStore
	executions *fakeExecutionStore
	manager    *moderation.BanManager
}

func setupCommandTest(t *testing.T) *commandFixture {
	t.Helper()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	bans := newFakeBanStore()
	whitelist := newFakeWhitelistStore()
	executions := newFakeExecutionStore()

	manager := moderation.NewBanManager(bans, logger)
	gate := moderation.NewWhitelistGate(whitelist, logger)
	journal := moderation.NewJournal(executions, logger)

	return &commandFixture{
		engine:     moderation.NewCommandEngine(newFakeAdminStore(adminID), manager, gate, journal, logger),
		bans:       bans,
		whitelist:  whitelist,
		executions: executions,
		manager:    manager,
	}
}

func TestExecuteUnauthorized(t *testing.T) {
	t.Parallel()

	f := setupCommandTest(t)

	ctx := t.Context()
	_, err := f.engine.Execute(ctx, nonAdminID, moderation.BanCommand{PlayerID: "P1", Reason: "cheating"})
	require.ErrorIs(t, err, moderation.ErrUnauthorized)

	// No state was mutated
	ban, err := f.bans.Get(ctx, "P1")
	require.NoError(t, err)
	assert.Nil(t, ban)
}

func TestExecuteBan(t *testing.T) {
	t.Parallel()

	f := setupCommandTest(t)

	ctx := t.Context()
	_, err := f.engine.Execute(ctx, adminID, moderation.BanCommand{PlayerID: "P1", Reason: "cheating"})
	require.NoError(t, err)

	status, err := f.manager.CheckAndReconcile(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, moderation.BanStateActive, status.State)
	assert.Equal(t, "cheating", status.Reason)

	ban, err := f.bans.Get(ctx, "P1")
	require.NoError(t, err)
	require.NotNil(t, ban)
	assert.True(t, ban.IsPermanent())
}

func TestExecuteTempBan(t *testing.T) {
	t.Parallel()

	f := setupCommandTest(t)

	ctx := t.Context()
	result, err := f.engine.Execute(ctx, adminID, moderation.TempBanCommand{
		PlayerID: "P1",
		Minutes:  30,
		Reason:   "spam",
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), result.ExpiresAt, 5*time.Second)

	status, err := f.manager.CheckAndReconcile(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, moderation.BanStateActive, status.State)
}

func TestExecuteTempBanZeroMinutes(t *testing.T) {
	t.Parallel()

	f := setupCommandTest(t)

	ctx := t.Context()

	// Zero minutes is accepted and yields an immediately expired ban
	_, err := f.engine.Execute(ctx, adminID, moderation.TempBanCommand{
		PlayerID: "P1",
		Minutes:  0,
		Reason:   "spam",
	})
	require.NoError(t, err)

	status, err := f.manager.CheckAndReconcile(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, moderation.BanStateExpired, status.State)
}

func TestExecuteUnbanAbsentPlayer(t *testing.T) {
	t.Parallel()

	f := setupCommandTest(t)

	_, err := f.engine.Execute(t.Context(), adminID, moderation.UnbanCommand{PlayerID: "P1"})
	require.NoError(t, err)
}

func TestExecuteBanList(t *testing.T) {
	t.Parallel()

	f := setupCommandTest(t)

	ctx := t.Context()
	_, err := f.engine.Execute(ctx, adminID, moderation.BanCommand{PlayerID: "P1", Reason: "cheating"})
	require.NoError(t, err)
	_, err = f.engine.Execute(ctx, adminID, moderation.BanCommand{PlayerID: "P2", Reason: "spam"})
	require.NoError(t, err)

	result, err := f.engine.Execute(ctx, adminID, moderation.BanListCommand{})
	require.NoError(t, err)
	assert.Len(t, result.Bans, 2)
}

func TestExecuteClearBans(t *testing.T) {
	t.Parallel()

	f := setupCommandTest(t)

	ctx := t.Context()
	for _, playerID := range []string{"P1", "P2", "P3"} {
		_, err := f.engine.Execute(ctx, adminID, moderation.BanCommand{PlayerID: playerID, Reason: "cheating"})
		require.NoError(t, err)
	}

	result, err := f.engine.Execute(ctx, adminID, moderation.ClearBansCommand{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.RemovedBans)

	result, err = f.engine.Execute(ctx, adminID, moderation.BanListCommand{})
	require.NoError(t, err)
	assert.Empty(t, result.Bans)
}

func TestExecuteWhitelistLifecycle(t *testing.T) {
	t.Parallel()

	f := setupCommandTest(t)

	ctx := t.Context()
	_, err := f.engine.Execute(ctx, adminID, moderation.WhitelistAddCommand{
		PlayerID:    "P1",
		UserID:      42,
		Username:    "u1",
		DisplayName: "d1",
	})
	require.NoError(t, err)

	// Adding twice is harmless
	_, err = f.engine.Execute(ctx, adminID, moderation.WhitelistAddCommand{PlayerID: "P1"})
	require.NoError(t, err)

	result, err := f.engine.Execute(ctx, adminID, moderation.WhitelistListCommand{})
	require.NoError(t, err)
	assert.Len(t, result.Entries, 1)

	_, err = f.engine.Execute(ctx, adminID, moderation.WhitelistRemoveCommand{PlayerID: "P1"})
	require.NoError(t, err)

	// Removing a non-member is harmless
	_, err = f.engine.Execute(ctx, adminID, moderation.WhitelistRemoveCommand{PlayerID: "P1"})
	require.NoError(t, err)

	result, err = f.engine.Execute(ctx, adminID, moderation.WhitelistListCommand{})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestExecuteWhitelistRemoveByUserID(t *testing.T) {
	t.Parallel()

	f := setupCommandTest(t)

	ctx := t.Context()
	_, err := f.engine.Execute(ctx, adminID, moderation.WhitelistAddCommand{PlayerID: "P1", UserID: 42})
	require.NoError(t, err)

	_, err = f.engine.Execute(ctx, adminID, moderation.WhitelistRemoveCommand{UserID: 42})
	require.NoError(t, err)

	result, err := f.engine.Execute(ctx, adminID, moderation.WhitelistListCommand{})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestExecuteHistory(t *testing.T) {
	t.Parallel()

	f := setupCommandTest(t)

	ctx := t.Context()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	journal := moderation.NewJournal(f.executions, logger)
	require.NoError(t, journal.Record(ctx, "P1", "u1", "d1"))
	require.NoError(t, journal.Record(ctx, "P2", "u2", "d2"))

	result, err := f.engine.Execute(ctx, adminID, moderation.HistoryCommand{Value: "P1"})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "P1", result.Records[0].PlayerID)
}

func TestExecuteAdminCheckFailure(t *testing.T) {
	t.Parallel()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	admins := newFakeAdminStore(adminID)
	admins.err = assert.AnError

	bans := newFakeBanStore()
	engine := moderation.NewCommandEngine(
		admins,
		moderation.NewBanManager(bans, logger),
		moderation.NewWhitelistGate(newFakeWhitelistStore(), logger),
		moderation.NewJournal(newFakeExecutionStore(), logger),
		logger,
	)

	_, err = engine.Execute(t.Context(), adminID, moderation.BanCommand{PlayerID: "P1", Reason: "cheating"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, moderation.ErrUnauthorized)
}
