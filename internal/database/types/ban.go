package types

import (
	"time"

	"github.com/uptrace/bun"
)

// Ban represents a blocked game identity. The player ID is the primary key,
// so at most one ban exists per player at any time.
type Ban struct {
	bun.BaseModel `bun:"table:bans"`

	PlayerID  string     `bun:",pk"`       // Stable identifier of the reporting player
	Reason    string     `bun:",notnull"`  // Reason for the ban
	BannedAt  time.Time  `bun:",notnull"`  // When the ban was issued
	ExpiresAt *time.Time `bun:",nullzero"` // When the ban expires (null for permanent)
}

// IsPermanent checks if the ban has no expiry.
func (b *Ban) IsPermanent() bool {
	return b.ExpiresAt == nil
}
