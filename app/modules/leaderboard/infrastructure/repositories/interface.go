package leaderboarddb

import (
	"context"

	"github.com/google/uuid"

	leaderboarddomain "github.com/FamilyVerse/party-os/app/modules/leaderboard/domain"
)

// LeaderboardDB is the interface for game and score database operations.
type LeaderboardDB interface {
	CreateGame(ctx context.Context, game *PartyGame) error
	GetGame(ctx context.Context, id uuid.UUID) (*PartyGame, error)
	ListGames(ctx context.Context) ([]PartyGame, error)
	SetGameStatus(ctx context.Context, id uuid.UUID, status GameStatus) error

	InsertRaceEntry(ctx context.Context, entry *SimRaceEntry) error
	// BestRaceScores returns each user's single lowest non-DNF lap for a game.
	BestRaceScores(ctx context.Context, gameID uuid.UUID) ([]leaderboarddomain.BestScore, error)

	InsertTrickshot(ctx context.Context, score *TrickshotScore) error
	// TrickshotTotals returns each user's summed points for a game.
	TrickshotTotals(ctx context.Context, gameID uuid.UUID) ([]leaderboarddomain.BestScore, error)
}
