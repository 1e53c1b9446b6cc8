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
				CREATE TABLE IF NOT EXISTS imposter_rounds (
					id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					game_id           UUID NOT NULL REFERENCES party_games(id),
					status            TEXT NOT NULL DEFAULT 'LOBBY',
					word              TEXT NOT NULL,
					hint              TEXT NOT NULL,
					duration_seconds  INTEGER NOT NULL,
					scheduled_for     TIMESTAMPTZ,
					started_at        TIMESTAMPTZ,
					voting_at         TIMESTAMPTZ,
					ended_at          TIMESTAMPTZ,
					verdict           TEXT,
					warning_sent      BOOLEAN NOT NULL DEFAULT false,
					last_kill_at      TIMESTAMPTZ,
					created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE TABLE IF NOT EXISTS imposter_players (
					id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					round_id   UUID NOT NULL REFERENCES imposter_rounds(id),
					user_id    UUID NOT NULL REFERENCES party_users(id),
					role       TEXT NOT NULL,
					state      TEXT NOT NULL DEFAULT 'ALIVE',
					killed_at  TIMESTAMPTZ,
					killed_by  UUID,
					UNIQUE(round_id, user_id)
				);
				CREATE INDEX IF NOT EXISTS idx_imposter_players_round ON imposter_players(round_id);
			`); err != nil {
				return fmt.Errorf("failed to create imposter tables: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS imposter_players;
			DROP TABLE IF EXISTS imposter_rounds;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop imposter tables: %w", err)
		}
		return nil
	})
}
