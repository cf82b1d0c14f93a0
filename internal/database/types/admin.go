package types

import (
	"time"

	"github.com/uptrace/bun"
)

// Admin represents a Discord account authorized to run moderation commands.
// Rows are managed out-of-band; the application only reads them.
type Admin struct {
	bun.BaseModel `bun:"table:admins"`

	DiscordID uint64    `bun:",pk"`                                // Discord user ID of the operator
	AddedAt   time.Time `bun:",notnull,default:current_timestamp"` // When the operator was granted access
}
