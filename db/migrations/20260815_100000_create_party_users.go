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
				CREATE EXTENSION IF NOT EXISTS pgcrypto;
				CREATE TABLE IF NOT EXISTS party_users (
					id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					display_name    TEXT NOT NULL UNIQUE,
					pin             TEXT NOT NULL,
					wallet_balance  BIGINT NOT NULL DEFAULT 0,
					status          TEXT NOT NULL DEFAULT 'PENDING',
					created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_party_users_status ON party_users(status);
			`); err != nil {
				return fmt.Errorf("failed to create party_users table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS party_users;`)
		if err != nil {
			return fmt.Errorf("failed to drop party_users: %w", err)
		}
		return nil
	})
}
