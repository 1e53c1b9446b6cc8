// Package seed fills a fresh database with a plausible party for demos and
// local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"

	leaderboarddomain "github.com/FamilyVerse/party-os/app/modules/leaderboard/domain"
	leaderboarddb "github.com/FamilyVerse/party-os/app/modules/leaderboard/infrastructure/repositories"
	partydb "github.com/FamilyVerse/party-os/app/modules/party/infrastructure/repositories"
	powerdb "github.com/FamilyVerse/party-os/app/modules/power/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/config"
	"github.com/FamilyVerse/party-os/db/bundb"
)

var tracks = []string{"Monza", "Spa", "Suzuka", "Laguna Seca", "Brands Hatch"}

var chores = []struct {
	title string
	bonus int
}{
	{"refill the ice bucket", 10},
	{"carry the drinks crate upstairs", 15},
	{"take the compost out", 10},
	{"set up the projector", 20},
	{"round up the kids for dinner", 15},
}

// Run inserts guests, a race with lap times, and a set of power tasks.
func Run(ctx context.Context, db *bundb.DBService, cfg *config.Config, logger *slog.Logger) error {
	faker := gofakeit.New(0)

	guests := make([]*partydb.PartyUser, 0, 8)
	for i := 0; i < 8; i++ {
		guest := &partydb.PartyUser{
			DisplayName:   faker.FirstName(),
			PIN:           fmt.Sprintf("%04d", faker.Number(0, 9999)),
			WalletBalance: cfg.Game.StartingBalance,
			Status:        partydb.GuestStatusApproved,
		}
		if err := db.PartyUserDB.CreateGuest(ctx, guest); err != nil {
			return fmt.Errorf("failed to seed guest: %w", err)
		}
		guests = append(guests, guest)
	}

	game := &leaderboarddb.PartyGame{
		Title:            "Sim Racing Championship",
		Type:             leaderboarddb.GameTypeSimRace,
		Status:           leaderboarddb.GameStatusOpen,
		ScoringDirection: leaderboarddomain.TimeAsc,
	}
	if err := db.LeaderboardDB.CreateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to seed game: %w", err)
	}

	for _, guest := range guests {
		laps := rand.IntN(3) + 1
		for i := 0; i < laps; i++ {
			entry := &leaderboarddb.SimRaceEntry{
				GameID:    game.ID,
				UserID:    guest.ID,
				LapTimeMS: int64(faker.Number(78000, 105000)),
				CarModel:  faker.CarModel(),
				Track:     tracks[rand.IntN(len(tracks))],
				DNF:       faker.Number(0, 9) == 0,
			}
			if err := db.LeaderboardDB.InsertRaceEntry(ctx, entry); err != nil {
				return fmt.Errorf("failed to seed lap: %w", err)
			}
		}
	}

	for _, chore := range chores {
		task := &powerdb.PartyTask{Title: chore.title, BonusPercent: chore.bonus}
		if err := db.PowerDB.CreateTask(ctx, task); err != nil {
			return fmt.Errorf("failed to seed task: %w", err)
		}
	}

	logger.Info("Database seeded",
		slog.Int("guests", len(guests)),
		slog.String("game_id", game.ID.String()),
	)
	return nil
}
