package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/execwatch/execwatch/internal/database/types"
	"go.uber.org/zap"
)

// ErrUnauthorized is returned when a command is invoked by an account
// without an admin entry. No state is mutated in that case.
var ErrUnauthorized = errors.New("admin authorization required")

// Command is one operator action, resolved from the protocol boundary
// into a typed variant so the engine never matches on strings.
type Command interface {
	isCommand()
}

// BanCommand permanently bans a player.
type BanCommand struct {
	PlayerID string
	Reason   string
}

// TempBanCommand bans a player until now plus the given minutes. Zero or
// negative minutes produce an immediately expired ban, which is accepted.
type TempBanCommand struct {
	PlayerID string
	Minutes  int
	Reason   string
}

// UnbanCommand removes a player's ban.
type UnbanCommand struct {
	PlayerID string
}

// BanListCommand retrieves all bans.
type BanListCommand struct{}

// ClearBansCommand removes every ban.
type ClearBansCommand struct{}

// WhitelistAddCommand exempts a player from execution alerts.
type WhitelistAddCommand struct {
	PlayerID    string
	UserID      uint64
	Username    string
	DisplayName string
}

// WhitelistRemoveCommand removes a whitelist entry by player ID or, when
// PlayerID is empty, by the linked Discord account.
type WhitelistRemoveCommand struct {
	PlayerID string
	UserID   uint64
}

// WhitelistListCommand retrieves all whitelist entries.
type WhitelistListCommand struct{}

// HistoryCommand queries the execution journal.
type HistoryCommand struct {
	Value string
}

func (BanCommand) isCommand()             {}
func (TempBanCommand) isCommand()         {}
func (UnbanCommand) isCommand()           {}
func (BanListCommand) isCommand()         {}
func (ClearBansCommand) isCommand()       {}
func (WhitelistAddCommand) isCommand()    {}
func (WhitelistRemoveCommand) isCommand() {}
func (WhitelistListCommand) isCommand()   {}
func (HistoryCommand) isCommand()         {}

// CommandResult carries the typed payload of a successful command for the
// rendering layer. Only the fields relevant to the executed command are set.
type CommandResult struct {
	// ExpiresAt is set for temporary bans.
	ExpiresAt time.Time
	// Bans is set for ban list queries.
	Bans []*types.Ban
	// RemovedBans is set for bulk ban clears.
	RemovedBans int64
	// Entries is set for whitelist list queries.
	Entries []*types.WhitelistEntry
	// Records is set for history queries.
	Records []*types.ExecutionRecord
}

// CommandEngine mutates ban/whitelist state and answers queries on behalf
// of operators, gated by an admin authorization check.
type CommandEngine struct {
	admins    AdminStore
	bans      *BanManager
	whitelist *WhitelistGate
	journal   *Journal
	logger    *zap.Logger
}

// NewCommandEngine creates a new CommandEngine instance.
func NewCommandEngine(
	admins AdminStore, bans *BanManager, whitelist *WhitelistGate, journal *Journal, logger *zap.Logger,
) *CommandEngine {
	return &CommandEngine{
		admins:    admins,
		bans:      bans,
		whitelist: whitelist,
		journal:   journal,
		logger:    logger.Named("command"),
	}
}

// Execute runs one operator command for the invoking Discord account.
// Unauthorized invocations return ErrUnauthorized and perform no mutation.
func (e *CommandEngine) Execute(ctx context.Context, invokerID uint64, cmd Command) (*CommandResult, error) {
	isAdmin, err := e.admins.IsAdmin(ctx, invokerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin status: %w", err)
	}

	if !isAdmin {
		e.logger.Warn("Rejected command from non-admin", zap.Uint64("invoker_id", invokerID))
		return nil, ErrUnauthorized
	}

	switch c := cmd.(type) {
	case BanCommand:
		return &CommandResult{}, e.bans.SetBan(ctx, c.PlayerID, c.Reason, nil)

	case TempBanCommand:
		expiresAt := time.Now().Add(time.Duration(c.Minutes) * time.Minute)
		return &CommandResult{ExpiresAt: expiresAt}, e.bans.SetBan(ctx, c.PlayerID, c.Reason, &expiresAt)

	case UnbanCommand:
		return &CommandResult{}, e.bans.ClearBan(ctx, c.PlayerID)

	case BanListCommand:
		bans, err := e.bans.ListBans(ctx)
		if err != nil {
			return nil, err
		}

		return &CommandResult{Bans: bans}, nil

	case ClearBansCommand:
		removed, err := e.bans.ClearAllBans(ctx)
		if err != nil {
			return nil, err
		}

		return &CommandResult{RemovedBans: removed}, nil

	case WhitelistAddCommand:
		return &CommandResult{}, e.whitelist.Add(ctx, c.PlayerID, c.UserID, c.Username, c.DisplayName)

	case WhitelistRemoveCommand:
		if c.PlayerID != "" {
			return &CommandResult{}, e.whitelist.RemoveByPlayerID(ctx, c.PlayerID)
		}

		return &CommandResult{}, e.whitelist.RemoveByUserID(ctx, c.UserID)

	case WhitelistListCommand:
		entries, err := e.whitelist.List(ctx)
		if err != nil {
			return nil, err
		}

		return &CommandResult{Entries: entries}, nil

	case HistoryCommand:
		records, err := e.journal.History(ctx, c.Value)
		if err != nil {
			return nil, err
		}

		return &CommandResult{Records: records}, nil

	default:
		return nil, fmt.Errorf("unhandled command type %T", cmd)
	}
}
