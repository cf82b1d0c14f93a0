package types

import (
	"time"

	"github.com/uptrace/bun"
)

// ExecutionRecord is one journaled execution report. Records are append-only
// and never mutated, forming the audit trail for all non-banned activity.
type ExecutionRecord struct {
	bun.BaseModel `bun:"table:executions"`

	ID          int64     `bun:",pk,autoincrement"`
	PlayerID    string    `bun:",notnull"` // Stable identifier of the reporting player
	Username    string    `bun:",notnull"` // Username at the time of the report
	DisplayName string    `bun:",notnull"` // Display name at the time of the report
	ExecutedAt  time.Time `bun:",notnull"` // Server-assigned timestamp of the report
}
