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
				CREATE TABLE IF NOT EXISTS party_games (
					id                 UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					title              TEXT NOT NULL,
					type               TEXT NOT NULL,
					status             TEXT NOT NULL DEFAULT 'OPEN',
					scoring_direction  TEXT NOT NULL,
					betting_closed     BOOLEAN NOT NULL DEFAULT false,
					created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE TABLE IF NOT EXISTS sim_race_entries (
					id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					game_id      UUID NOT NULL REFERENCES party_games(id),
					user_id      UUID NOT NULL REFERENCES party_users(id),
					lap_time_ms  BIGINT NOT NULL,
					car_model    TEXT,
					track        TEXT,
					dnf          BOOLEAN NOT NULL DEFAULT false,
					created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_sim_race_entries_game_user ON sim_race_entries(game_id, user_id);
				CREATE TABLE IF NOT EXISTS trickshot_scores (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					game_id     UUID NOT NULL REFERENCES party_games(id),
					user_id     UUID NOT NULL REFERENCES party_users(id),
					shot_type   TEXT NOT NULL,
					points      BIGINT NOT NULL,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_trickshot_scores_game_user ON trickshot_scores(game_id, user_id);
			`); err != nil {
				return fmt.Errorf("failed to create game tables: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS trickshot_scores;
			DROP TABLE IF EXISTS sim_race_entries;
			DROP TABLE IF EXISTS party_games;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop game tables: %w", err)
		}
		return nil
	})
}
