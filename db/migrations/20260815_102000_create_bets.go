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
				CREATE TABLE IF NOT EXISTS bets (
					id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					game_id         UUID NOT NULL REFERENCES party_games(id),
					bettor_id       UUID NOT NULL REFERENCES party_users(id),
					target_user_id  UUID NOT NULL REFERENCES party_users(id),
					amount          BIGINT NOT NULL CHECK (amount > 0),
					status          TEXT NOT NULL DEFAULT 'PENDING',
					payout          BIGINT,
					created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					settled_at      TIMESTAMPTZ
				);
				CREATE INDEX IF NOT EXISTS idx_bets_game_status ON bets(game_id, status);
				CREATE INDEX IF NOT EXISTS idx_bets_bettor ON bets(bettor_id);
				ALTER TABLE party_users ADD CONSTRAINT wallet_balance_non_negative CHECK (wallet_balance >= 0);
			`); err != nil {
				return fmt.Errorf("failed to create bets table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			ALTER TABLE party_users DROP CONSTRAINT IF EXISTS wallet_balance_non_negative;
			DROP TABLE IF EXISTS bets;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop bets table: %w", err)
		}
		return nil
	})
}
