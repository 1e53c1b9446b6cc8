package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FamilyVerse/party-os/app/eventbus"
	imposterservice "github.com/FamilyVerse/party-os/app/modules/imposter/application"
	imposterqueue "github.com/FamilyVerse/party-os/app/modules/imposter/infrastructure/queue"
	leaderboardservice "github.com/FamilyVerse/party-os/app/modules/leaderboard/application"
	partyservice "github.com/FamilyVerse/party-os/app/modules/party/application"
	powerservice "github.com/FamilyVerse/party-os/app/modules/power/application"
	wagerservice "github.com/FamilyVerse/party-os/app/modules/wagering/application"
	wageradapters "github.com/FamilyVerse/party-os/app/modules/wagering/infrastructure/adapters"
	"github.com/FamilyVerse/party-os/app/shared"
	"github.com/FamilyVerse/party-os/config"
	"github.com/FamilyVerse/party-os/db/bundb"
)

// App wires the modules over one database pool and one event bus.
type App struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	EventBus shared.EventBus

	PartyService       *partyservice.PartyService
	LeaderboardService *leaderboardservice.LeaderboardService
	WagerService       *wagerservice.WagerService
	ImposterService    *imposterservice.ImposterService
	PowerService       *powerservice.PowerService
	RoundQueue         *imposterqueue.Service

	db *bundb.DBService
}

// NewApp initializes the application with the necessary services and
// configuration.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}
	for _, stream := range []string{shared.StreamBetting, shared.StreamImposter, shared.StreamPartyTV} {
		if err := bus.CreateStream(ctx, stream); err != nil {
			return nil, fmt.Errorf("failed to create stream %s: %w", stream, err)
		}
	}

	partySvc := partyservice.NewPartyService(dbService.PartyUserDB, bus, logger, cfg.JWT.Secret, cfg.JWT.DefaultTTL, cfg.Game.StartingBalance)
	leaderboardSvc := leaderboardservice.NewLeaderboardService(dbService.LeaderboardDB, bus, logger)
	wagerSvc := wagerservice.NewWagerService(
		dbService.BetDB,
		&wageradapters.LeaderboardOutcome{Leaderboard: leaderboardSvc},
		bus,
		logger,
		cfg.Game.WagerMultiplier,
	)
	imposterSvc := imposterservice.NewImposterService(
		dbService.ImposterDB,
		dbService.PartyUserDB,
		bus,
		imposterservice.NewStaticDeck(),
		logger,
		cfg.Game.KillCooldownSeconds,
		cfg.Game.RoundDuration,
	)
	powerSvc := powerservice.NewPowerService(dbService.PowerDB, bus, logger, cfg.Game.TaskBonusPercent)
	if err := powerSvc.EnsureConfig(ctx, cfg.Game.BlackoutInterval, cfg.Game.KillerWindowSeconds); err != nil {
		return nil, fmt.Errorf("failed to seed game config: %w", err)
	}

	roundQueue, err := imposterqueue.NewService(ctx, dbService.GetDB(), cfg.Postgres.DSN, imposterSvc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize round queue: %w", err)
	}
	imposterSvc.Scheduler = roundQueue

	return &App{
		Cfg:                cfg,
		Logger:             logger,
		EventBus:           bus,
		PartyService:       partySvc,
		LeaderboardService: leaderboardSvc,
		WagerService:       wagerSvc,
		ImposterService:    imposterSvc,
		PowerService:       powerSvc,
		RoundQueue:         roundQueue,
		db:                 dbService,
	}, nil
}

// DB returns the database service.
func (app *App) DB() *bundb.DBService {
	return app.db
}

// Close shuts down the queue, the event bus, and the database pool.
func (app *App) Close(ctx context.Context) {
	if err := app.RoundQueue.Stop(ctx); err != nil {
		app.Logger.Error("Failed to stop round queue", slog.Any("error", err))
	}
	if err := app.EventBus.Close(); err != nil {
		app.Logger.Error("Failed to close event bus", slog.Any("error", err))
	}
	if err := app.db.Close(); err != nil {
		app.Logger.Error("Failed to close database", slog.Any("error", err))
	}
}
