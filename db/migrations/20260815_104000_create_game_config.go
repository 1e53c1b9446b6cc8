package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS game_config (
					id                         BIGINT PRIMARY KEY,
					blackout_interval_minutes  INTEGER NOT NULL,
					killer_window_seconds      INTEGER NOT NULL,
					paused                     BOOLEAN NOT NULL DEFAULT false,
					paused_at                  TIMESTAMPTZ,
					power_level                INTEGER NOT NULL CHECK (power_level BETWEEN 0 AND 100),
					phase_started_at           TIMESTAMPTZ NOT NULL,
					version                    BIGINT NOT NULL DEFAULT 1,
					updated_at                 TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE TABLE IF NOT EXISTS party_tasks (
					id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					title          TEXT NOT NULL,
					bonus_percent  INTEGER NOT NULL CHECK (bonus_percent BETWEEN 1 AND 100),
					completed_by   UUID REFERENCES party_users(id),
					completed_at   TIMESTAMPTZ,
					created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create power tables: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS party_tasks;
			DROP TABLE IF EXISTS game_config;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop power tables: %w", err)
		}
		return nil
	})
}
