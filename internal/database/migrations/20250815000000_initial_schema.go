package migrations

import (
	"context"
	"fmt"

	"github.com/execwatch/execwatch/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.Admin)(nil),
			(*types.Ban)(nil),
			(*types.WhitelistEntry)(nil),
			(*types.ExecutionRecord)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		// History queries filter on any identity field and sort by recency
		indexes := []struct {
			name   string
			model  any
			column string
		}{
			{"executions_player_id_idx", (*types.ExecutionRecord)(nil), "player_id"},
			{"executions_username_idx", (*types.ExecutionRecord)(nil), "username"},
			{"executions_display_name_idx", (*types.ExecutionRecord)(nil), "display_name"},
			{"executions_executed_at_idx", (*types.ExecutionRecord)(nil), "executed_at"},
			{"whitelist_user_id_idx", (*types.WhitelistEntry)(nil), "user_id"},
		}

		for _, idx := range indexes {
			_, err := db.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				Column(idx.column).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.ExecutionRecord)(nil),
			(*types.WhitelistEntry)(nil),
			(*types.Ban)(nil),
			(*types.Admin)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table for %T: %w", model, err)
			}
		}

		return nil
	})
}
