package types

import (
	"time"

	"github.com/uptrace/bun"
)

// WhitelistEntry represents a game identity exempted from execution alerts.
// Whitelisted players are still journaled and can still be banned.
type WhitelistEntry struct {
	bun.BaseModel `bun:"table:whitelist"`

	PlayerID    string    `bun:",pk"`       // Stable identifier of the player
	UserID      uint64    `bun:",nullzero"` // Discord account linked to the entry, if any
	Username    string    `bun:",nullzero"` // Last known username
	DisplayName string    `bun:",nullzero"` // Last known display name
	AddedAt     time.Time `bun:",notnull"`  // When the entry was created
}
