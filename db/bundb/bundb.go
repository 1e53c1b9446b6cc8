package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	imposterdb "github.com/FamilyVerse/party-os/app/modules/imposter/infrastructure/repositories"
	leaderboarddb "github.com/FamilyVerse/party-os/app/modules/leaderboard/infrastructure/repositories"
	partydb "github.com/FamilyVerse/party-os/app/modules/party/infrastructure/repositories"
	powerdb "github.com/FamilyVerse/party-os/app/modules/power/infrastructure/repositories"
	wagerdb "github.com/FamilyVerse/party-os/app/modules/wagering/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/config"
	"github.com/FamilyVerse/party-os/db/migrations"
)

// DBService bundles the per-module repository implementations over one
// connection pool.
type DBService struct {
	PartyUserDB   *partydb.PartyUserDBImpl
	LeaderboardDB *leaderboarddb.LeaderboardDBImpl
	BetDB         *wagerdb.BetDBImpl
	ImposterDB    *imposterdb.ImposterDBImpl
	PowerDB       *powerdb.PowerDBImpl
	db            *bun.DB
}

// GetDB returns the underlying database connection pool.
func (s *DBService) GetDB() *bun.DB {
	return s.db
}

// NewBunDBService initializes a new DBService with the provided Postgres
// configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(&partydb.PartyUser{})
	db.RegisterModel(&leaderboarddb.PartyGame{})
	db.RegisterModel(&leaderboarddb.SimRaceEntry{})
	db.RegisterModel(&leaderboarddb.TrickshotScore{})
	db.RegisterModel(&wagerdb.Bet{})
	db.RegisterModel(&imposterdb.ImposterRound{})
	db.RegisterModel(&imposterdb.PlayerStatus{})
	db.RegisterModel(&powerdb.GameConfig{})
	db.RegisterModel(&powerdb.PartyTask{})

	return &DBService{
		PartyUserDB:   &partydb.PartyUserDBImpl{DB: db},
		LeaderboardDB: &leaderboarddb.LeaderboardDBImpl{DB: db},
		BetDB:         &wagerdb.BetDBImpl{DB: db},
		ImposterDB:    &imposterdb.ImposterDBImpl{DB: db},
		PowerDB:       &powerdb.PowerDBImpl{DB: db},
		db:            db,
	}, nil
}

// Migrate brings the schema up to date.
func (s *DBService) Migrate(ctx context.Context) error {
	migrator := migrate.NewMigrator(s.db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to init migrations table: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if group.IsZero() {
		return nil
	}
	return nil
}

// Close releases the connection pool.
func (s *DBService) Close() error {
	return s.db.Close()
}
