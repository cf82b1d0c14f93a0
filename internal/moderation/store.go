// Package moderation implements the ban/whitelist lifecycle and the
// execution-logging decision engine. All durable state lives behind the
// store interfaces below; the engines hold no caches, so every decision
// re-reads current state.
package moderation

import (
	"context"

	"github.com/execwatch/execwatch/internal/database/types"
)

// BanStore provides keyed access to ban records.
type BanStore interface {
	// Upsert creates or replaces the ban for a player (last write wins).
	Upsert(ctx context.Context, record *types.Ban) error
	// Get retrieves the ban for a player, nil without error when absent.
	Get(ctx context.Context, playerID string) (*types.Ban, error)
	// Delete removes the ban for a player, reporting whether one existed.
	Delete(ctx context.Context, playerID string) (bool, error)
	// DeleteAll removes every ban and returns the number removed.
	DeleteAll(ctx context.Context) (int64, error)
	// List retrieves all ban records.
	List(ctx context.Context) ([]*types.Ban, error)
}

// WhitelistStore provides keyed access to whitelist entries.
type WhitelistStore interface {
	// Upsert creates or replaces a whitelist entry.
	Upsert(ctx context.Context, entry *types.WhitelistEntry) error
	// Exists checks if a player has a whitelist entry.
	Exists(ctx context.Context, playerID string) (bool, error)
	// DeleteByPlayerID removes the entry for a player.
	DeleteByPlayerID(ctx context.Context, playerID string) (bool, error)
	// DeleteByUserID removes the entry linked to a Discord account.
	DeleteByUserID(ctx context.Context, userID uint64) (bool, error)
	// List retrieves all whitelist entries.
	List(ctx context.Context) ([]*types.WhitelistEntry, error)
}

// ExecutionStore provides append and search access to the execution journal.
type ExecutionStore interface {
	// Insert appends one execution record.
	Insert(ctx context.Context, record *types.ExecutionRecord) error
	// Search retrieves the most recent records matching the value exactly
	// on player ID, username or display name, newest first.
	Search(ctx context.Context, value string, limit int) ([]*types.ExecutionRecord, error)
}

// AdminStore answers operator authorization checks.
type AdminStore interface {
	// IsAdmin checks if a Discord account may run moderation commands.
	IsAdmin(ctx context.Context, discordID uint64) (bool, error)
}
